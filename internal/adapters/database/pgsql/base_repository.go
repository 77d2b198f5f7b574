package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_application_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// DBTX is the subset of *pgxpool.Pool and pgx.Tx the repositories use.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
}

// Schema maps a record type onto a table. Every table has id, created_at and
// updated_at columns filled by database defaults.
type Schema[T domain.Record[T]] interface {
	Table() string
	// Columns lists the data columns, excluding the base columns.
	Columns() []string
	// Values returns one value per Columns entry, in the same order.
	Values(entity T) ([]any, error)
	// Scan reads a row selected or returned as id, created_at, updated_at, Columns()...
	Scan(row pgx.Row) (T, error)
	// SortColumn maps a sortable field name to its column.
	SortColumn(field string) (string, bool)
}

var baseColumns = []string{"id", "created_at", "updated_at"}

// EntityRepository implements the generic Repository port on PostgreSQL.
type EntityRepository[T domain.Record[T]] struct {
	BaseRepository
	schema Schema[T]
}

// NewEntityRepository creates a repository for the table described by schema.
func NewEntityRepository[T domain.Record[T]](db DBTX, schema Schema[T]) *EntityRepository[T] {
	return &EntityRepository[T]{
		BaseRepository: BaseRepository{DB: db},
		schema:         schema,
	}
}

var _ portsrepo.Repository[domain.LoanApplication] = (*EntityRepository[domain.LoanApplication])(nil)

// selectColumns is the column list Schema.Scan expects.
func (r *EntityRepository[T]) selectColumns() string {
	return strings.Join(append(append([]string{}, baseColumns...), r.schema.Columns()...), ", ")
}

func (r *EntityRepository[T]) insertQuery() string {
	cols := r.schema.Columns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.schema.Table(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		r.selectColumns(),
	)
}

// InsertOne stores entity and returns the row as stored, including the
// generated id and timestamps and column precision for every value.
func (r *EntityRepository[T]) InsertOne(ctx context.Context, entity T) (T, error) {
	var zero T

	values, err := r.schema.Values(entity)
	if err != nil {
		return zero, fmt.Errorf("%w: failed to encode %s row: %v", apperrors.ErrStorage, r.schema.Table(), err)
	}

	stored, err := r.schema.Scan(r.DB.QueryRow(ctx, r.insertQuery(), values...))
	if err != nil {
		return zero, fmt.Errorf("%w: failed to insert into %s: %v", apperrors.ErrStorage, r.schema.Table(), err)
	}

	return stored, nil
}

// selectQuery builds the page query. Only schema-approved column names are
// interpolated; skip and take are bound as arguments.
func (r *EntityRepository[T]) selectQuery(opts *domain.QueryOptions) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(r.selectColumns())
	b.WriteString(" FROM ")
	b.WriteString(r.schema.Table())

	orderBy := "created_at ASC, id ASC"
	if opts != nil && opts.Sort != nil {
		if col, ok := r.schema.SortColumn(opts.Sort.Field); ok {
			dir := "DESC"
			if opts.Sort.Order == domain.SortAsc {
				dir = "ASC"
			}
			orderBy = col + " " + dir + ", id ASC"
		}
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy)

	var args []any
	if opts != nil && opts.Take != nil {
		args = append(args, *opts.Take)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if opts != nil && opts.Skip != nil {
		args = append(args, *opts.Skip)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	return b.String(), args
}

// FindAll returns one page and the row count of the whole table. The two
// statements run outside a transaction, so the total may drift from the page
// under concurrent inserts.
func (r *EntityRepository[T]) FindAll(ctx context.Context, opts *domain.QueryOptions) (domain.PagedResult[T], error) {
	query, args := r.selectQuery(opts)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("%w: failed to query %s: %v", apperrors.ErrStorage, r.schema.Table(), err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return r.schema.Scan(row)
	})
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("%w: failed to collect %s rows: %v", apperrors.ErrStorage, r.schema.Table(), err)
	}

	var total int64
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM "+r.schema.Table()).Scan(&total); err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("%w: failed to count %s: %v", apperrors.ErrStorage, r.schema.Table(), err)
	}

	if items == nil {
		items = []T{}
	}
	return domain.PagedResult[T]{Items: items, Total: total}, nil
}
