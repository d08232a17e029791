package tui

import (
	"testing"

	"notelist-cli/internal/model"
	"notelist-cli/internal/outline"
)

// flattenTree makes:
//
//	root
//	  a
//	    a1
//	    a2
//	  b
func flattenTree(t *testing.T) (o *outline.Outline, a, a1, a2, b *model.Note) {
	t.Helper()
	root := model.NewDocumentRoot()
	a = model.NewNote("a")
	a1 = model.NewNote("a1")
	a2 = model.NewNote("a2")
	b = model.NewNote("b")
	for _, step := range []struct {
		parent, child *model.Note
	}{{root, a}, {a, a1}, {a, a2}, {root, b}} {
		if err := step.parent.AddChild(step.child, model.AtEnd()); err != nil {
			t.Fatalf("AddChild(%q): %v", step.child.Content, err)
		}
	}
	return outline.New(root), a, a1, a2, b
}

func rowContents(rows []outlineRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.note.Content
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlattenOpenAndCollapsed(t *testing.T) {
	t.Parallel()
	o, a, _, _, _ := flattenTree(t)

	a.Open = true
	got := rowContents(flattenVisible(o))
	if !equal(got, []string{"a", "a1", "a2", "b"}) {
		t.Fatalf("open rows = %v", got)
	}

	a.Open = false
	got = rowContents(flattenVisible(o))
	if !equal(got, []string{"a", "b"}) {
		t.Fatalf("collapsed rows = %v", got)
	}
}

func TestFlattenDepths(t *testing.T) {
	t.Parallel()
	o, a, _, _, _ := flattenTree(t)
	a.Open = true

	rows := flattenVisible(o)
	if rows[0].depth != 0 || rows[1].depth != 1 || rows[3].depth != 0 {
		t.Fatalf("depths = %d,%d,%d,%d", rows[0].depth, rows[1].depth, rows[2].depth, rows[3].depth)
	}
	if !rows[0].hasChildren || rows[1].hasChildren {
		t.Fatalf("hasChildren flags wrong")
	}
}

func TestFlattenZoomed(t *testing.T) {
	t.Parallel()
	o, a, _, _, _ := flattenTree(t)

	// A zoom root shows its subtree even while its own Open flag is false.
	a.Open = false
	o.ZoomInto(a)
	got := rowContents(flattenVisible(o))
	if !equal(got, []string{"a", "a1", "a2"}) {
		t.Fatalf("zoomed rows = %v", got)
	}
	if flattenVisible(o)[0].depth != 0 {
		t.Fatalf("zoom root not at depth 0")
	}

	o.ZoomOut()
	got = rowContents(flattenVisible(o))
	if !equal(got, []string{"a", "b"}) {
		t.Fatalf("rows after zoom out = %v", got)
	}
}

func TestRowIndexOf(t *testing.T) {
	t.Parallel()
	o, a, a1, _, _ := flattenTree(t)
	a.Open = true
	rows := flattenVisible(o)

	if got := rowIndexOf(rows, a1); got != 1 {
		t.Fatalf("rowIndexOf(a1) = %d", got)
	}
	if got := rowIndexOf(rows, model.NewNote("x")); got != -1 {
		t.Fatalf("rowIndexOf(stranger) = %d", got)
	}
}

func TestFirstVisibleAncestor(t *testing.T) {
	t.Parallel()
	o, a, a1, _, _ := flattenTree(t)
	a.Open = false
	rows := flattenVisible(o)

	// a1 is hidden by the collapse; its nearest visible ancestor is a.
	if got := firstVisibleAncestor(rows, a1); got != 0 {
		t.Fatalf("firstVisibleAncestor(a1) = %d, want row of a", got)
	}
}
