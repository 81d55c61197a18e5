package repositories

import (
	"strings"
)

const (
	defaultLimit = 25
	maxLimit     = 200
)

// ListParams is the pagination/sort slice of every listing endpoint.
// SortBy carries the client-side field name; each repository maps it to a
// whitelisted column.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps page and limit into their allowed ranges and returns the
// OFFSET for the normalized page.
func (p *ListParams) Normalize() (offset int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return (p.Page - 1) * p.Limit
}

// OrderClause maps the requested sort onto a whitelisted column. Unknown
// fields fall back to the default column ascending; sort direction is
// normalized so nothing user-controlled reaches the SQL string.
func (p ListParams) OrderClause(allowed map[string]string, defaultColumn string) string {
	column, ok := allowed[p.SortBy]
	if !ok {
		column = defaultColumn
	}
	direction := "ASC"
	if strings.EqualFold(p.SortOrder, "desc") {
		direction = "DESC"
	}
	return " ORDER BY " + column + " " + direction
}

// whereClause collects ANDed conditions with their args.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) and(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// andLike adds a LIKE condition for a trimmed, non-empty term.
func (w *whereClause) andLike(column, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	w.and(column+" LIKE ?", "%"+term+"%")
}

func (w *whereClause) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// TotalPages is the page count for a filtered total at the given limit.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// placeholders renders "?,?,?" for an IN clause of n values.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
