package tui

import (
	"notelist-cli/internal/model"
	"notelist-cli/internal/outline"
)

// outlineRow is one visible line of the outline.
type outlineRow struct {
	note        *model.Note
	depth       int
	hasChildren bool
}

// flattenVisible projects the outline into the row list the screen shows.
// When zoomed, the view root itself is the first row at depth zero; at the
// document root only its children appear. Collapsed subtrees are skipped.
func flattenVisible(o *outline.Outline) []outlineRow {
	var rows []outlineRow
	vr := o.ViewRoot()
	if o.Zoomed() {
		rows = appendRows(rows, vr, 0)
		return rows
	}
	for _, c := range vr.Children() {
		rows = appendRows(rows, c, 0)
	}
	return rows
}

func appendRows(rows []outlineRow, n *model.Note, depth int) []outlineRow {
	rows = append(rows, outlineRow{note: n, depth: depth, hasChildren: n.HasChildren()})
	if n.Open || n.ZoomedIn {
		for _, c := range n.Children() {
			rows = appendRows(rows, c, depth+1)
		}
	}
	return rows
}

func rowIndexOf(rows []outlineRow, n *model.Note) int {
	for i, r := range rows {
		if r.note == n {
			return i
		}
	}
	return -1
}

// firstVisibleAncestor finds the nearest ancestor of n that still has a row,
// for when a collapse or zoom hid n itself. Falls back to the first row.
func firstVisibleAncestor(rows []outlineRow, n *model.Note) int {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if idx := rowIndexOf(rows, p); idx >= 0 {
			return idx
		}
	}
	if len(rows) > 0 {
		return 0
	}
	return -1
}
