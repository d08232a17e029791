package model

type placementKind int

const (
	placementEnd placementKind = iota
	placementIndex
	placementAfter
	placementBefore
)

// Placement says where in a children sequence a note goes. The zero value
// appends.
type Placement struct {
	kind    placementKind
	index   int
	sibling *Note
}

func AtEnd() Placement { return Placement{kind: placementEnd} }

func AtIndex(i int) Placement { return Placement{kind: placementIndex, index: i} }

// After places the note immediately after sibling, which must currently be a
// child of the target note.
func After(sibling *Note) Placement { return Placement{kind: placementAfter, sibling: sibling} }

// Before places the note immediately before sibling, which must currently be
// a child of the target note.
func Before(sibling *Note) Placement { return Placement{kind: placementBefore, sibling: sibling} }
