package outline

import "notelist-cli/internal/model"

// Crumb is one breadcrumb segment: an ancestor of the current view root.
type Crumb struct {
	ID    string
	Label string
}

// Syncer receives the structural mutations that are synchronized immediately
// (delete/restore/move), as opposed to create/update which the periodic
// sweep batches. Implementations must only touch sync-state fields from
// their completion paths.
type Syncer interface {
	NoteDeleted(n *model.Note)
	NoteRestored(n *model.Note)
	NoteMoved(n *model.Note, parent, after *model.Note)
}

type deletion struct {
	note   *model.Note
	parent *model.Note
	// prev is the sibling that preceded note at deletion time, nil if it was
	// first. Undo re-inserts immediately after it.
	prev *model.Note
}

// Outline coordinates a single open document: the zoom transform, the undo
// stack and the keyboard dispatcher. All methods run on the single
// event-loop goroutine.
type Outline struct {
	root     *model.Note // true document root
	viewRoot *model.Note // current zoom root; == root when not zoomed
	crumbs   []Crumb
	deleted  []deletion
	editing  *model.Note
	sync     Syncer
}

func New(root *model.Note) *Outline {
	return &Outline{root: root, viewRoot: root}
}

// SetSyncer wires the remote-operation collaborator. A nil syncer is valid
// (offline/testing); structural edits then stay local.
func (o *Outline) SetSyncer(s Syncer) { o.sync = s }

func (o *Outline) Root() *model.Note     { return o.root }
func (o *Outline) ViewRoot() *model.Note { return o.viewRoot }
func (o *Outline) Zoomed() bool          { return o.viewRoot != o.root }

// Breadcrumbs returns the ancestors of the view root, document root first.
// Empty when not zoomed.
func (o *Outline) Breadcrumbs() []Crumb { return o.crumbs }

// ZoomInto makes note the root of the visible tree. The structural parent
// link stays intact; only the view changes.
func (o *Outline) ZoomInto(note *model.Note) {
	if note == nil || note == o.viewRoot {
		return
	}
	o.viewRoot.ZoomedIn = false
	o.viewRoot = note
	if note != o.root {
		note.ZoomedIn = true
	}
	var crumbs []Crumb
	for p := note.Parent(); p != nil; p = p.Parent() {
		crumbs = append(crumbs, Crumb{ID: p.ID, Label: p.Content})
	}
	// Walked child->root; breadcrumbs read root->child.
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	o.crumbs = crumbs
}

// ZoomOut restores the true document root as the view root.
func (o *Outline) ZoomOut() {
	o.viewRoot.ZoomedIn = false
	o.viewRoot = o.root
	o.crumbs = nil
}

// StartEdit gives note the single editing cursor, clearing it elsewhere.
func (o *Outline) StartEdit(note *model.Note) {
	if o.editing != nil && o.editing != note {
		o.editing.InEdit = false
	}
	o.editing = note
	if note != nil {
		note.InEdit = true
	}
}

func (o *Outline) Editing() *model.Note { return o.editing }

// RecordDeletion pushes a tombstoned note onto the undo stack together with
// the position info needed to restore it.
func (o *Outline) RecordDeletion(note, parent, prev *model.Note) {
	o.deleted = append(o.deleted, deletion{note: note, parent: parent, prev: prev})
}

func (o *Outline) DeletedCount() int { return len(o.deleted) }

// UndoLast restores the most recently deleted note as a child of its
// original parent, immediately after its captured preceding sibling (front
// if none, or if that sibling has itself been deleted since). No-op on an
// empty stack. Returns the restored note, nil when nothing was undone.
func (o *Outline) UndoLast() *model.Note {
	if len(o.deleted) == 0 {
		return nil
	}
	d := o.deleted[len(o.deleted)-1]
	o.deleted = o.deleted[:len(o.deleted)-1]

	pl := model.AtIndex(0)
	if d.prev != nil && d.parent.IndexOf(d.prev) >= 0 {
		pl = model.After(d.prev)
	}
	d.note.Deleted = false
	if err := d.parent.AddChild(d.note, pl); err != nil {
		// The preceding sibling vanished between the check and the insert;
		// cannot happen on the single mutation thread, but fall back anyway.
		_ = d.parent.AddChild(d.note, model.AtIndex(0))
	}
	if o.sync != nil {
		o.sync.NoteRestored(d.note)
	}
	return d.note
}

// EnsureNotEmpty keeps the document from reaching zero top-level notes: when
// the root has no children a fresh empty note is created and returned.
// Returns nil when the document is already non-empty.
func (o *Outline) EnsureNotEmpty() *model.Note {
	if o.root.HasChildren() {
		return nil
	}
	n := model.NewNote("")
	_ = o.root.AddChild(n, model.AtEnd())
	return n
}
