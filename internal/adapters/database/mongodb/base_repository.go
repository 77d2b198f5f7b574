package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the subset of *mongo.Collection the repositories use.
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// Schema maps a record type onto a collection.
type Schema[T domain.Record[T]] interface {
	Collection() string
	// ToDocument returns the document to insert. The _id must be left unset.
	ToDocument(entity T) (any, error)
	Decode(raw bson.Raw) (T, error)
	// SortKey maps a sortable field name to its document key.
	SortKey(field string) (string, bool)
	Indexes() []mongo.IndexModel
}

// EntityRepository implements the generic Repository port on MongoDB.
type EntityRepository[T domain.Record[T]] struct {
	coll   Collection
	schema Schema[T]
	now    func() time.Time
}

// NewEntityRepository creates a repository over coll.
func NewEntityRepository[T domain.Record[T]](coll Collection, schema Schema[T]) *EntityRepository[T] {
	return &EntityRepository[T]{
		coll:   coll,
		schema: schema,
		now:    time.Now,
	}
}

var _ portsrepo.Repository[domain.LoanApplication] = (*EntityRepository[domain.LoanApplication])(nil)

// InsertOne stamps the timestamps, stores entity and returns it as it was
// stored: BSON precision for times and decimals, with the driver-generated
// ObjectID as its id.
func (r *EntityRepository[T]) InsertOne(ctx context.Context, entity T) (T, error) {
	var zero T

	// BSON dates have millisecond precision
	now := r.now().UTC().Truncate(time.Millisecond)
	stamped := entity.WithEntity(domain.Entity{CreatedAt: now, UpdatedAt: now})

	doc, err := r.schema.ToDocument(stamped)
	if err != nil {
		return zero, fmt.Errorf("%w: failed to encode %s document: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("%w: failed to encode %s document: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}
	stored, err := r.schema.Decode(raw)
	if err != nil {
		return zero, fmt.Errorf("%w: failed to decode %s document: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return zero, fmt.Errorf("%w: failed to insert into %s: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}

	base := stored.GetEntity()
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		base.ID = id.Hex()
	default:
		base.ID = fmt.Sprint(id)
	}
	return stored.WithEntity(base), nil
}

func (r *EntityRepository[T]) findOptions(opts *domain.QueryOptions) *options.FindOptions {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if opts == nil {
		return findOpts
	}
	if opts.Sort != nil {
		if key, ok := r.schema.SortKey(opts.Sort.Field); ok {
			dir := -1
			if opts.Sort.Order == domain.SortAsc {
				dir = 1
			}
			findOpts.SetSort(bson.D{{Key: key, Value: dir}, {Key: "_id", Value: 1}})
		}
	}
	if opts.Skip != nil {
		findOpts.SetSkip(*opts.Skip)
	}
	if opts.Take != nil {
		findOpts.SetLimit(*opts.Take)
	}
	return findOpts
}

// FindAll returns one page and the document count of the whole collection.
// The two reads are independent, so the total may drift from the page under
// concurrent inserts.
func (r *EntityRepository[T]) FindAll(ctx context.Context, opts *domain.QueryOptions) (domain.PagedResult[T], error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, r.findOptions(opts))
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("%w: failed to query %s: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	for cursor.Next(ctx) {
		item, err := r.schema.Decode(cursor.Current)
		if err != nil {
			return domain.PagedResult[T]{}, fmt.Errorf("%w: failed to decode %s document: %v", apperrors.ErrStorage, r.schema.Collection(), err)
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("%w: cursor over %s failed: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}

	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("%w: failed to count %s: %v", apperrors.ErrStorage, r.schema.Collection(), err)
	}

	return domain.PagedResult[T]{Items: items, Total: total}, nil
}

// EnsureIndexes creates the indexes schema declares on coll.
func EnsureIndexes[T domain.Record[T]](ctx context.Context, coll *mongo.Collection, schema Schema[T]) error {
	models := schema.Indexes()
	if len(models) == 0 {
		return nil
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("%w: failed to create %s indexes: %v", apperrors.ErrStorage, schema.Collection(), err)
	}
	return nil
}
