package repositories

import "testing"

func TestNormalizeClampsPageAndLimit(t *testing.T) {
	p := ListParams{Page: 0, Limit: 0}
	offset := p.Normalize()
	if p.Page != 1 || p.Limit != defaultLimit || offset != 0 {
		t.Fatalf("zero params not normalized: %+v offset=%d", p, offset)
	}

	p = ListParams{Page: 3, Limit: 1000}
	offset = p.Normalize()
	if p.Limit != maxLimit {
		t.Fatalf("limit not capped, got %d", p.Limit)
	}
	if offset != 2*maxLimit {
		t.Fatalf("offset wrong, got %d", offset)
	}
}

func TestOrderClauseWhitelistsColumns(t *testing.T) {
	allowed := map[string]string{"fullName": "full_name", "id": "id"}

	p := ListParams{SortBy: "fullName", SortOrder: "desc"}
	if got := p.OrderClause(allowed, "id"); got != " ORDER BY full_name DESC" {
		t.Fatalf("unexpected clause %q", got)
	}

	// unknown field falls back, injection never reaches SQL
	p = ListParams{SortBy: "full_name; DROP TABLE investors", SortOrder: "desc"}
	if got := p.OrderClause(allowed, "id"); got != " ORDER BY id DESC" {
		t.Fatalf("unexpected clause %q", got)
	}

	// anything but desc means asc
	p = ListParams{SortBy: "id", SortOrder: "sideways"}
	if got := p.OrderClause(allowed, "id"); got != " ORDER BY id ASC" {
		t.Fatalf("unexpected clause %q", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{97, 100, 1},
		{97, 25, 4},
		{100, 25, 4},
		{0, 25, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d,%d)=%d want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(3); got != "?,?,?" {
		t.Fatalf("unexpected placeholders %q", got)
	}
	if got := placeholders(0); got != "" {
		t.Fatalf("expected empty placeholders, got %q", got)
	}
}

func TestWhereClause(t *testing.T) {
	var w whereClause
	if w.clause() != "" {
		t.Fatal("empty builder must produce no WHERE")
	}

	w.andLike("full_name", "  ") // ignored
	w.andLike("full_name", "ahmed")
	w.and("currency = ?", "SAR")

	if got := w.clause(); got != " WHERE full_name LIKE ? AND currency = ?" {
		t.Fatalf("unexpected clause %q", got)
	}
	if len(w.args) != 2 || w.args[0] != "%ahmed%" || w.args[1] != "SAR" {
		t.Fatalf("unexpected args %v", w.args)
	}
}
