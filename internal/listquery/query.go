package listquery

import (
	"net/url"
	"strconv"
)

// Direction is a sort order accepted by the listing endpoints.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query is the full state of one paginated list view: 1-based page,
// page size, sort, free-text search and structured advanced filters.
type Query struct {
	Page          int
	PageSize      int
	SortField     string
	SortDirection Direction
	SearchTerm    string
	Filters       map[string]string
}

// Key returns a deterministic composite of every query field. Two queries
// have equal keys exactly when every field matches; url encoding keeps the
// composite unambiguous for values carrying separator characters, and
// Encode's key ordering makes filter insertion order irrelevant. Filter
// names get a prefix so they can never collide with the fixed fields.
func (q Query) Key() string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.PageSize))
	v.Set("sortBy", q.SortField)
	v.Set("sortOrder", string(q.SortDirection))
	v.Set("search", q.SearchTerm)
	for name, value := range q.Filters {
		v.Set("f."+name, value)
	}
	return v.Encode()
}

// Result is one page of a remote collection plus the totals the server
// computes over the filtered set. Immutable once received.
type Result[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Aggregates map[string]float64
}
