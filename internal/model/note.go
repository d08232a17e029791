package model

import "errors"

var (
	// ErrInvalidPlacement is returned when an After/Before placement names a
	// sibling that is not currently a member of the target children sequence.
	ErrInvalidPlacement = errors.New("placement sibling is not a child of the target note")

	// ErrWouldCycle is returned when a move would make a note its own descendant.
	ErrWouldCycle = errors.New("move would make a note its own descendant")
)

// Note is one node of the outline tree. Structure (parent, children) is
// mutated only through AddChild/RemoveChild/MoveChild so that the
// parent-pointer/children-slice relation stays consistent in one place.
//
// Sync flags (New/Dirty/Deleted) are set by the mutation primitives and
// cleared by remote acknowledgments; the periodic sweep never sets them.
type Note struct {
	ID      string
	Content string

	// Position is a server-side ordering hint carried through for protocol
	// compatibility. In-memory display order is the children slice order.
	Position int

	// Server-provided timestamps, opaque to the client.
	Created     string
	LastUpdated string

	Open     bool
	InEdit   bool
	ZoomedIn bool

	New     bool
	Dirty   bool
	Deleted bool

	parent   *Note
	children []*Note
}

// NewNote creates a locally-authored note with a client-assigned random id.
// The id is replaced by the server-assigned one after a successful remote
// create.
func NewNote(content string) *Note {
	id, err := newClientID()
	if err != nil {
		// crypto/rand failing is effectively unreachable; fall back to an
		// empty id rather than propagating an error through every caller.
		id = ""
	}
	return &Note{
		ID:      id,
		Content: content,
		Open:    true,
	}
}

// SetContent updates the text content and marks the note dirty when the text
// actually changed.
func (n *Note) SetContent(content string) {
	if n.Content == content {
		return
	}
	n.Content = content
	n.Dirty = true
}

func (n *Note) Parent() *Note { return n.parent }

// Children returns the live ordered children slice. Callers must not splice
// it directly; use the mutation primitives.
func (n *Note) Children() []*Note { return n.children }

func (n *Note) HasChildren() bool { return len(n.children) > 0 }

// IndexOf returns the position of child in n's children, or -1. Lookup is by
// identity, not by id, since a note with a pending create may have its id
// rewritten by the server.
func (n *Note) IndexOf(child *Note) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AddChild splices note into n's children per placement and sets the parent
// back-reference. A note that has never been acknowledged by the server (no
// remote timestamp) is marked New so the next sweep creates it.
func (n *Note) AddChild(note *Note, pl Placement) error {
	idx, err := n.resolveIndex(pl)
	if err != nil {
		return err
	}
	note.parent = n
	n.insertChild(note, idx)
	if note.LastUpdated == "" {
		note.New = true
	}
	return nil
}

// RemoveChild removes note from n's children, clears its parent link and
// marks it deleted (tombstone). The removed note keeps its own children so
// callers can still restore the whole subtree; callers wanting undo must
// capture the preceding sibling before calling, since the parent link is
// severed here. Returns nil if note is not a child of n.
func (n *Note) RemoveChild(note *Note) *Note {
	idx := n.IndexOf(note)
	if idx < 0 {
		return nil
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	note.parent = nil
	note.Deleted = true
	return note
}

// MoveChild atomically removes note from n's children and inserts it into
// newParent's children (n itself when newParent is nil) per placement.
// Rejects moves that would create a cycle.
func (n *Note) MoveChild(note *Note, pl Placement, newParent *Note) error {
	target := newParent
	if target == nil {
		target = n
	}
	if target == note || note.IsAncestorOf(target) {
		return ErrWouldCycle
	}
	idx := n.IndexOf(note)
	if idx < 0 {
		return ErrInvalidPlacement
	}

	// Validate the placement before detaching so a bad sibling leaves the
	// tree untouched.
	if (pl.kind == placementAfter || pl.kind == placementBefore) && target.IndexOf(pl.sibling) < 0 {
		return ErrInvalidPlacement
	}

	n.children = append(n.children[:idx], n.children[idx+1:]...)
	insertAt, err := target.resolveIndex(pl)
	if err != nil {
		// Unreachable after the pre-check above, but restore on principle.
		n.insertChild(note, idx)
		return err
	}
	note.parent = target
	target.insertChild(note, insertAt)
	return nil
}

// NextSibling returns the note immediately after n under the same parent, or
// nil when n has no parent or is last.
func (n *Note) NextSibling() *Note {
	if n.parent == nil {
		return nil
	}
	idx := n.parent.IndexOf(n)
	if idx < 0 || idx+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[idx+1]
}

// PrevSibling returns the note immediately before n under the same parent,
// or nil when n has no parent or is first.
func (n *Note) PrevSibling() *Note {
	if n.parent == nil {
		return nil
	}
	idx := n.parent.IndexOf(n)
	if idx <= 0 {
		return nil
	}
	return n.parent.children[idx-1]
}

// LastVisibleDescendant descends into the last child while the chain is open,
// returning n itself for a closed or childless note. Upward navigation uses
// this to find the "previous visible note".
func (n *Note) LastVisibleDescendant() *Note {
	cur := n
	for cur.Open && len(cur.children) > 0 {
		cur = cur.children[len(cur.children)-1]
	}
	return cur
}

// IsAncestorOf reports whether other sits somewhere below n.
func (n *Note) IsAncestorOf(other *Note) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Walk visits n and its subtree pre-order. Returning false from fn stops the
// walk.
func (n *Note) Walk(fn func(*Note) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

func (n *Note) insertChild(note *Note, idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(n.children) {
		n.children = append(n.children, note)
		return
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = note
}

func (n *Note) resolveIndex(pl Placement) (int, error) {
	switch pl.kind {
	case placementEnd:
		return len(n.children), nil
	case placementIndex:
		idx := pl.index
		if idx < 0 {
			idx = 0
		}
		if idx > len(n.children) {
			idx = len(n.children)
		}
		return idx, nil
	case placementAfter:
		idx := n.IndexOf(pl.sibling)
		if idx < 0 {
			return 0, ErrInvalidPlacement
		}
		return idx + 1, nil
	case placementBefore:
		idx := n.IndexOf(pl.sibling)
		if idx < 0 {
			return 0, ErrInvalidPlacement
		}
		return idx, nil
	default:
		return len(n.children), nil
	}
}
