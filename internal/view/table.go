// Package view renders a collection page for the terminal: a tabular layout
// on wide terminals, stacked cards on narrow ones, both driven by the same
// query and selection state.
package view

import (
	"fmt"
	"io"
	"strings"

	"loyaltyadmin/internal/listquery"
)

// DefaultBreakpoint is the terminal width, in columns, below which the
// stacked-card layout is used.
const DefaultBreakpoint = 100

const skeletonRows = 5

// Column describes one renderable column of an entity list.
type Column[T any] struct {
	// Field is the server-side sort field bound to this column header.
	Field string
	Title string
	Width int
	Value func(T) string
}

// List renders one entity collection. ID extracts the row identifier used
// for selection markers.
type List[T any] struct {
	Columns    []Column[T]
	ID         func(T) int64
	Breakpoint int
}

// Render writes the current snapshot. While the first fetch is in flight it
// draws skeleton rows matching the column shape instead of blocking output.
func (v List[T]) Render(w io.Writer, snap listquery.Snapshot[T], sel *listquery.Selection, width int) {
	breakpoint := v.Breakpoint
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}

	if snap.State == listquery.StateFetching && !snap.HasData {
		v.renderSkeleton(w)
		return
	}

	if width >= breakpoint {
		v.renderTable(w, snap, sel)
	} else {
		v.renderCards(w, snap, sel)
	}

	fmt.Fprintln(w, RangeLabel(snap.Query.Page, snap.Query.PageSize, snap.Data.TotalCount))
	if snap.State == listquery.StateError && snap.Err != nil {
		fmt.Fprintf(w, "! showing last loaded data: %v\n", snap.Err)
	}
}

func (v List[T]) renderTable(w io.Writer, snap listquery.Snapshot[T], sel *listquery.Selection) {
	var header strings.Builder
	header.WriteString("    ")
	for _, col := range v.Columns {
		header.WriteString(pad(col.Title+sortIndicator(col.Field, snap.Query), col.Width))
		header.WriteString("  ")
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))
	fmt.Fprintln(w, strings.Repeat("-", len(strings.TrimRight(header.String(), " "))))

	for _, row := range snap.Data.Items {
		var line strings.Builder
		line.WriteString(v.marker(row, sel))
		for _, col := range v.Columns {
			line.WriteString(pad(col.Value(row), col.Width))
			line.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func (v List[T]) renderCards(w io.Writer, snap listquery.Snapshot[T], sel *listquery.Selection) {
	for _, row := range snap.Data.Items {
		fmt.Fprintln(w, strings.TrimRight(v.marker(row, sel), " "))
		for _, col := range v.Columns {
			fmt.Fprintf(w, "  %s: %s\n", col.Title, col.Value(row))
		}
		fmt.Fprintln(w)
	}
}

func (v List[T]) renderSkeleton(w io.Writer) {
	for range skeletonRows {
		var line strings.Builder
		line.WriteString("    ")
		for _, col := range v.Columns {
			line.WriteString(pad(strings.Repeat("░", min(col.Width, 8)), col.Width))
			line.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func (v List[T]) marker(row T, sel *listquery.Selection) string {
	if v.ID == nil || sel == nil {
		return "    "
	}
	if sel.Has(v.ID(row)) {
		return "[x] "
	}
	return "[ ] "
}

// sortIndicator marks the active sort column with its direction.
func sortIndicator(field string, q listquery.Query) string {
	if field == "" || field != q.SortField {
		return ""
	}
	if q.SortDirection == listquery.Desc {
		return " v"
	}
	return " ^"
}

// pad fits s into width columns, truncating with an ellipsis when too long.
// Width is counted in runes so multibyte names keep the columns aligned.
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) > width {
		if width == 1 {
			return string(r[:1])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
