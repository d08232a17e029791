package outline

import "notelist-cli/internal/model"

// Key is an already-decoded keyboard command. The input layer (TUI) decodes
// terminal events into these; the dispatcher never sees raw key codes.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyBackspace
)

// KeyEvent is the dispatcher input: the decoded key, modifier flags, and
// where the text cursor sits inside the focused note's content.
type KeyEvent struct {
	Key   Key
	Shift bool
	Ctrl  bool

	CursorAtStart bool
	CursorAtEnd   bool
}

// Dispatch interprets ev against the focused note, mutates the tree through
// the Note primitives, and returns the note that should receive focus next.
// handled == false means the dispatcher declines and the caller's default
// text-editing behavior applies. Missing-sibling/empty-stack style
// conditions are silent no-ops (handled, focus unchanged), never errors.
func (o *Outline) Dispatch(focused *model.Note, ev KeyEvent) (next *model.Note, handled bool) {
	if focused == nil {
		return nil, false
	}
	switch ev.Key {
	case KeyEnter:
		if ev.Shift {
			return o.insertChild(focused), true
		}
		return o.insertSibling(focused), true
	case KeyDown:
		if !ev.CursorAtEnd {
			return nil, false
		}
		return o.focusDown(focused), true
	case KeyUp:
		if !ev.CursorAtStart {
			return nil, false
		}
		return o.focusUp(focused), true
	case KeyLeft:
		if !(ev.CursorAtStart || ev.Ctrl) || focused.ZoomedIn {
			return nil, false
		}
		if focused.Open {
			focused.Open = false
		}
		return focused, true
	case KeyRight:
		if !(ev.CursorAtEnd || ev.Ctrl) {
			return nil, false
		}
		if !focused.Open {
			focused.Open = true
		}
		return focused, true
	case KeyTab:
		if ev.Shift {
			return o.outdent(focused), true
		}
		return o.indent(focused), true
	case KeyBackspace:
		if !ev.CursorAtStart {
			return nil, false
		}
		return o.deleteNote(focused), true
	default:
		return nil, false
	}
}

// insertSibling creates an empty note immediately after focused under the
// same parent. A note without a parent (the document root) gets a first
// child instead.
func (o *Outline) insertSibling(focused *model.Note) *model.Note {
	parent := focused.Parent()
	if parent == nil {
		return o.insertChild(focused)
	}
	n := model.NewNote("")
	_ = parent.AddChild(n, model.After(focused))
	o.StartEdit(n)
	return n
}

// insertChild creates an empty note as the first child of focused,
// force-opening it so the new note is visible.
func (o *Outline) insertChild(focused *model.Note) *model.Note {
	n := model.NewNote("")
	focused.Open = true
	_ = focused.AddChild(n, model.AtIndex(0))
	o.StartEdit(n)
	return n
}

// focusDown: into the first child when open, otherwise to the next sibling
// of the nearest ancestor that has one. Navigation never escapes the current
// view root.
func (o *Outline) focusDown(focused *model.Note) *model.Note {
	if focused.Open && focused.HasChildren() {
		next := focused.Children()[0]
		o.StartEdit(next)
		return next
	}
	for cur := focused; cur != nil && cur != o.viewRoot; cur = cur.Parent() {
		if sib := cur.NextSibling(); sib != nil {
			o.StartEdit(sib)
			return sib
		}
	}
	return focused
}

// focusUp: to the deepest open descendant of the previous sibling, else to
// the parent. The document root itself is virtual and never takes focus.
func (o *Outline) focusUp(focused *model.Note) *model.Note {
	if focused == o.viewRoot {
		return focused
	}
	if prev := focused.PrevSibling(); prev != nil {
		next := prev.LastVisibleDescendant()
		o.StartEdit(next)
		return next
	}
	parent := focused.Parent()
	if parent == nil || parent == o.root {
		return focused
	}
	o.StartEdit(parent)
	return parent
}

// indent moves focused under its previous sibling (appended), force-opening
// the new parent. No-op without a previous sibling or while zoomed into
// focused.
func (o *Outline) indent(focused *model.Note) *model.Note {
	if focused.ZoomedIn {
		return focused
	}
	prev := focused.PrevSibling()
	if prev == nil {
		return focused
	}
	parent := focused.Parent()
	var after *model.Note
	if prev.HasChildren() {
		after = prev.Children()[len(prev.Children())-1]
	}
	if err := parent.MoveChild(focused, model.AtEnd(), prev); err != nil {
		return focused
	}
	prev.Open = true
	o.noteMoved(focused, prev, after)
	return focused
}

// outdent re-parents focused to its grandparent, as the immediate next
// sibling of its current parent. No-op at the top level or when the parent
// is the zoom root.
func (o *Outline) outdent(focused *model.Note) *model.Note {
	if focused.ZoomedIn {
		return focused
	}
	parent := focused.Parent()
	if parent == nil || parent.ZoomedIn {
		return focused
	}
	grand := parent.Parent()
	if grand == nil {
		return focused
	}
	if err := parent.MoveChild(focused, model.After(parent), grand); err != nil {
		return focused
	}
	o.noteMoved(focused, grand, parent)
	return focused
}

// deleteNote soft-deletes focused, records it for undo, and focuses the
// previous sibling (the former parent when focused was first). Deleting the
// last top-level note leaves a fresh empty one so the document never goes
// empty.
func (o *Outline) deleteNote(focused *model.Note) *model.Note {
	parent := focused.Parent()
	if parent == nil {
		return focused
	}
	prev := focused.PrevSibling()
	if parent.RemoveChild(focused) == nil {
		return focused
	}
	o.RecordDeletion(focused, parent, prev)
	if o.sync != nil {
		o.sync.NoteDeleted(focused)
	}

	next := prev
	if next == nil {
		next = parent
	}
	if next == o.root || next == nil {
		if fresh := o.EnsureNotEmpty(); fresh != nil {
			next = fresh
		} else {
			next = o.root.Children()[0]
		}
	}
	o.StartEdit(next)
	return next
}

func (o *Outline) noteMoved(n, parent, after *model.Note) {
	if o.sync != nil {
		o.sync.NoteMoved(n, parent, after)
	}
}
