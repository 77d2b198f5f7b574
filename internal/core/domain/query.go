package domain

import (
	"strconv"
	"strings"
)

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps raw input to a SortOrder, defaulting to descending.
func ParseSortOrder(raw string) SortOrder {
	if SortOrder(strings.ToLower(raw)) == SortAsc {
		return SortAsc
	}
	return SortDesc
}

// SortableFields is the set of field names an entity type allows sorting by.
type SortableFields map[string]struct{}

// NewSortableFields builds a SortableFields set.
func NewSortableFields(fields ...string) SortableFields {
	set := make(SortableFields, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Contains reports whether field is in the set.
func (s SortableFields) Contains(field string) bool {
	_, ok := s[field]
	return ok
}

// SortOptions describes a single-field sort.
type SortOptions struct {
	Field string
	Order SortOrder
}

// QueryOptions controls sorting and pagination of a listing. Nil fields are
// not applied.
type QueryOptions struct {
	Sort *SortOptions
	Skip *int64
	Take *int64
}

// NewQueryOptions builds QueryOptions from raw request values. A sortBy outside
// sortable is ignored, as are skip and take values that are missing, not
// integers, or not positive.
func NewQueryOptions(sortable SortableFields, sortBy, order, skip, take string) *QueryOptions {
	opts := &QueryOptions{}
	if sortBy != "" && sortable.Contains(sortBy) {
		opts.Sort = &SortOptions{Field: sortBy, Order: ParseSortOrder(order)}
	}
	opts.Skip = parsePositive(skip)
	opts.Take = parsePositive(take)
	return opts
}

func parsePositive(raw string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// PagedResult is one page of a listing plus the size of the whole collection.
type PagedResult[T any] struct {
	Items []T
	Total int64
}
