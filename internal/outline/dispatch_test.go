package outline

import (
	"testing"

	"notelist-cli/internal/model"
)

// dispatchTree makes:
//
//	root
//	  A (open)
//	    A1
//	    A2
//	  B
func dispatchTree(t *testing.T) (o *Outline, A, A1, A2, B *model.Note) {
	t.Helper()
	root := model.NewDocumentRoot()
	A = model.NewNote("A")
	A1 = model.NewNote("A1")
	A2 = model.NewNote("A2")
	B = model.NewNote("B")
	for _, step := range []struct {
		parent, child *model.Note
	}{{root, A}, {A, A1}, {A, A2}, {root, B}} {
		if err := step.parent.AddChild(step.child, model.AtEnd()); err != nil {
			t.Fatalf("AddChild(%q): %v", step.child.Content, err)
		}
	}
	A.Open = true
	return New(root), A, A1, A2, B
}

func atEnd(k Key) KeyEvent   { return KeyEvent{Key: k, CursorAtEnd: true} }
func atStart(k Key) KeyEvent { return KeyEvent{Key: k, CursorAtStart: true} }

func TestDispatchDown(t *testing.T) {
	t.Parallel()
	o, A, A1, A2, B := dispatchTree(t)

	next, handled := o.Dispatch(A, atEnd(KeyDown))
	if !handled || next != A1 {
		t.Fatalf("down from open A: next=%v handled=%v, want A1", next, handled)
	}
	next, _ = o.Dispatch(A2, atEnd(KeyDown))
	if next != B {
		t.Fatalf("down from last child escapes to ancestor sibling: got %v, want B", next)
	}
	next, _ = o.Dispatch(B, atEnd(KeyDown))
	if next != B {
		t.Fatalf("down from last note should stay put, got %v", next)
	}

	A.Open = false
	next, _ = o.Dispatch(A, atEnd(KeyDown))
	if next != B {
		t.Fatalf("down from collapsed A: got %v, want B", next)
	}

	// Cursor not at end: plain down is ordinary text navigation.
	if _, handled := o.Dispatch(A, KeyEvent{Key: KeyDown}); handled {
		t.Fatalf("down with cursor mid-line should be declined")
	}
}

func TestDispatchUp(t *testing.T) {
	t.Parallel()
	o, A, _, A2, B := dispatchTree(t)

	next, handled := o.Dispatch(B, atStart(KeyUp))
	if !handled || next != A2 {
		t.Fatalf("up from B with A open: next=%v, want A2 (deepest visible)", next)
	}
	A.Open = false
	next, _ = o.Dispatch(B, atStart(KeyUp))
	if next != A {
		t.Fatalf("up from B with A closed: next=%v, want A", next)
	}
	next, _ = o.Dispatch(A, atStart(KeyUp))
	if next != A {
		t.Fatalf("up from first note should stay put, got %v", next)
	}

	A.Open = true
	A1 := A.Children()[0]
	next, _ = o.Dispatch(A1, atStart(KeyUp))
	if next != A {
		t.Fatalf("up from first child: next=%v, want parent A", next)
	}
}

func TestDispatchUpDownInverse(t *testing.T) {
	t.Parallel()
	o, A, _, _, _ := dispatchTree(t)

	down, _ := o.Dispatch(A, atEnd(KeyDown))
	back, _ := o.Dispatch(down, atStart(KeyUp))
	if back != A {
		t.Fatalf("down then up landed on %v, want A", back)
	}
}

func TestDispatchEnterInsertsSibling(t *testing.T) {
	t.Parallel()
	o, A, _, _, B := dispatchTree(t)
	root := o.Root()

	next, handled := o.Dispatch(A, atEnd(KeyEnter))
	if !handled || next == nil || next == A {
		t.Fatalf("enter did not produce a new note")
	}
	if next.Content != "" || !next.New {
		t.Fatalf("new note = %+v, want empty and New", next)
	}
	if root.IndexOf(next) != 1 {
		t.Fatalf("new note at index %d, want 1 (between A and B)", root.IndexOf(next))
	}
	if !next.InEdit {
		t.Fatalf("new note did not take the edit cursor")
	}
	_ = B
}

func TestDispatchShiftEnterInsertsFirstChild(t *testing.T) {
	t.Parallel()
	o, A, A1, _, _ := dispatchTree(t)
	A.Open = false

	next, _ := o.Dispatch(A, KeyEvent{Key: KeyEnter, Shift: true, CursorAtEnd: true})
	if next.Parent() != A || A.IndexOf(next) != 0 {
		t.Fatalf("shift+enter child not first under A")
	}
	if !A.Open {
		t.Fatalf("parent not force-opened for the new child")
	}
	if A.IndexOf(A1) != 1 {
		t.Fatalf("existing first child not shifted down")
	}
}

func TestDispatchIndent(t *testing.T) {
	t.Parallel()
	o, A, A1, A2, B := dispatchTree(t)
	rec := &recordingSyncer{}
	o.SetSyncer(rec)
	A.Open = false

	next, handled := o.Dispatch(B, atEnd(KeyTab))
	if !handled || next != B {
		t.Fatalf("indent: next=%v handled=%v", next, handled)
	}
	if B.Parent() != A || A.IndexOf(B) != 2 {
		t.Fatalf("B not appended under previous sibling A")
	}
	if !A.Open {
		t.Fatalf("new parent not force-opened")
	}
	if len(rec.moved) != 1 || rec.moved[0] != B {
		t.Fatalf("move not reported: %+v", rec.moved)
	}
	_, _ = A1, A2
}

func TestDispatchIndentNoPrevSibling(t *testing.T) {
	t.Parallel()
	o, A, A1, _, _ := dispatchTree(t)

	next, handled := o.Dispatch(A, atEnd(KeyTab))
	if !handled || next != A || A.Parent() != o.Root() {
		t.Fatalf("indent without previous sibling should be a silent no-op")
	}
	next, handled = o.Dispatch(A1, atEnd(KeyTab))
	if !handled || A1.Parent() != A {
		t.Fatalf("indent of first child should be a silent no-op")
	}
	_ = next
}

func TestDispatchOutdent(t *testing.T) {
	t.Parallel()
	o, A, A1, A2, B := dispatchTree(t)
	root := o.Root()

	next, handled := o.Dispatch(A1, KeyEvent{Key: KeyTab, Shift: true})
	if !handled || next != A1 {
		t.Fatalf("outdent: next=%v handled=%v", next, handled)
	}
	if A1.Parent() != root {
		t.Fatalf("A1 not re-parented to grandparent")
	}
	if root.IndexOf(A1) != root.IndexOf(A)+1 {
		t.Fatalf("A1 not placed immediately after its old parent")
	}
	// Top level: nowhere further out to go.
	if _, handled := o.Dispatch(B, KeyEvent{Key: KeyTab, Shift: true}); !handled || B.Parent() != root {
		t.Fatalf("top-level outdent should be a silent no-op")
	}
	_ = A2
}

func TestDispatchCollapseExpand(t *testing.T) {
	t.Parallel()
	o, A, _, _, _ := dispatchTree(t)

	next, handled := o.Dispatch(A, atStart(KeyLeft))
	if !handled || next != A || A.Open {
		t.Fatalf("left at line start did not collapse")
	}
	next, handled = o.Dispatch(A, atEnd(KeyRight))
	if !handled || !A.Open {
		t.Fatalf("right at line end did not expand")
	}

	// Ctrl works regardless of cursor position.
	A.Open = true
	if _, handled := o.Dispatch(A, KeyEvent{Key: KeyLeft, Ctrl: true}); !handled || A.Open {
		t.Fatalf("ctrl+left mid-line did not collapse")
	}
	// Plain left mid-line is ordinary cursor movement.
	if _, handled := o.Dispatch(A, KeyEvent{Key: KeyLeft}); handled {
		t.Fatalf("left mid-line should be declined")
	}
}

func TestDispatchBackspaceDeletes(t *testing.T) {
	t.Parallel()
	o, A, _, _, B := dispatchTree(t)
	rec := &recordingSyncer{}
	o.SetSyncer(rec)
	root := o.Root()

	next, handled := o.Dispatch(B, atStart(KeyBackspace))
	if !handled || next != A {
		t.Fatalf("delete B: focus=%v, want previous sibling A", next)
	}
	if !B.Deleted || root.IndexOf(B) >= 0 {
		t.Fatalf("B not tombstoned out of the tree")
	}
	if len(rec.deleted) != 1 || rec.deleted[0] != B {
		t.Fatalf("delete not reported: %+v", rec.deleted)
	}

	// Undo puts it back where it was.
	if restored := o.UndoLast(); restored != B {
		t.Fatalf("undo returned %v", restored)
	}
	if root.IndexOf(A) != 0 || root.IndexOf(B) != 1 {
		t.Fatalf("undo did not restore sibling order")
	}

	// Backspace mid-content is ordinary character deletion.
	if _, handled := o.Dispatch(B, KeyEvent{Key: KeyBackspace}); handled {
		t.Fatalf("backspace mid-line should be declined")
	}
}

func TestDispatchBackspaceFirstChildFocusesParent(t *testing.T) {
	t.Parallel()
	o, A, A1, _, _ := dispatchTree(t)

	next, _ := o.Dispatch(A1, atStart(KeyBackspace))
	if next != A {
		t.Fatalf("deleting first child focused %v, want parent A", next)
	}
}

func TestDispatchBackspaceLastNote(t *testing.T) {
	t.Parallel()
	root := model.NewDocumentRoot()
	o := New(root)
	only := model.NewNote("only")
	if err := root.AddChild(only, model.AtEnd()); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	next, handled := o.Dispatch(only, atStart(KeyBackspace))
	if !handled || next == nil || next == only {
		t.Fatalf("deleting the last note must leave a fresh one, got %v", next)
	}
	if !root.HasChildren() {
		t.Fatalf("document went empty")
	}
	if next.Content != "" {
		t.Fatalf("replacement note not empty: %q", next.Content)
	}
}

func TestDispatchNilFocus(t *testing.T) {
	t.Parallel()
	o, _, _, _, _ := dispatchTree(t)
	if _, handled := o.Dispatch(nil, atEnd(KeyDown)); handled {
		t.Fatalf("nil focus should be declined")
	}
}
