package listquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggleOne(t *testing.T) {
	sel := NewSelection()

	sel.ToggleOne(4)
	assert.True(t, sel.Has(4))
	assert.Equal(t, 1, sel.Count())

	sel.ToggleOne(4)
	assert.False(t, sel.Has(4))
	assert.Equal(t, 0, sel.Count())
}

func TestSelectionAllAndIndeterminateFlags(t *testing.T) {
	pageIDs := []int64{4, 7, 9}
	sel := NewSelection()

	assert.False(t, sel.IsAllSelected(pageIDs), "empty selection is never all-selected")
	assert.False(t, sel.IsIndeterminate(pageIDs))

	sel.ToggleOne(4)
	assert.False(t, sel.IsAllSelected(pageIDs))
	assert.True(t, sel.IsIndeterminate(pageIDs))

	sel.SelectAll(pageIDs)
	assert.True(t, sel.IsAllSelected(pageIDs))
	assert.False(t, sel.IsIndeterminate(pageIDs))

	assert.False(t, sel.IsAllSelected(nil), "empty page is never all-selected")
}

func TestSelectionSelectAllReplacesWholesale(t *testing.T) {
	sel := NewSelection()
	sel.ToggleOne(1)
	sel.ToggleOne(2)

	sel.SelectAll([]int64{9, 4, 7})
	assert.Equal(t, []int64{4, 7, 9}, sel.IDs())

	sel.Clear()
	assert.Equal(t, 0, sel.Count())
	assert.Empty(t, sel.IDs())
}

// Selection survives page changes so a bulk-delete set can be accumulated
// across pages. This is deliberate, not an oversight.
func TestSelectionPreservedAcrossPageChanges(t *testing.T) {
	src := newFakeSource()
	c := newTestController(t, src, Config{})
	sel := NewSelection()

	sel.ToggleOne(4)
	sel.ToggleOne(7)

	c.SetPage(2)
	c.SetSort("fullName")
	c.SetFilters(map[string]string{"tier": "gold"})

	assert.Equal(t, []int64{4, 7}, sel.IDs())
}
