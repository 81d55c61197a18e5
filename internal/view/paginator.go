package view

import "fmt"

// RangeLabel renders the paginator caption for a 1-based page, e.g.
// "1–97 of 97". The controller is 1-based throughout; any 0-based display
// convention is converted here at the boundary and nowhere else.
func RangeLabel(page, pageSize, totalCount int) string {
	if totalCount <= 0 || page < 1 || pageSize < 1 {
		return "0 of 0"
	}
	start := (page-1)*pageSize + 1
	if start > totalCount {
		return fmt.Sprintf("0 of %d", totalCount)
	}
	end := page * pageSize
	if end > totalCount {
		end = totalCount
	}
	return fmt.Sprintf("%d–%d of %d", start, end, totalCount)
}

// PageLabel renders the "page x of y" caption.
func PageLabel(page, totalPages int) string {
	if totalPages < 1 {
		totalPages = 1
	}
	return fmt.Sprintf("page %d of %d", page, totalPages)
}
