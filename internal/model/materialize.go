package model

// NoteData is the nested document the server returns from a bulk list:
// {id, content, subnotes: [...]}.
type NoteData struct {
	ID       string     `json:"id"`
	Content  string     `json:"content"`
	Position int        `json:"position"`
	Updated  string     `json:"updated,omitempty"`
	Subnotes []NoteData `json:"subnotes"`
}

// NewDocumentRoot creates the virtual top-most note the whole document hangs
// off. It is never sent to the server and never rendered as a row.
func NewDocumentRoot() *Note {
	return &Note{Content: "Home", Open: true}
}

// Materialize builds the subtree described by data under parent. Loaded notes
// carry durable server ids, so they are not marked New and start collapsed
// (the stored default), unlike locally created notes.
func Materialize(parent *Note, data []NoteData) {
	for _, d := range data {
		n := &Note{
			ID:          d.ID,
			Content:     d.Content,
			Position:    d.Position,
			LastUpdated: d.Updated,
			parent:      parent,
		}
		parent.children = append(parent.children, n)
		Materialize(n, d.Subnotes)
	}
}

// Snapshot is the inverse of Materialize, mainly for export and tests.
func Snapshot(n *Note) []NoteData {
	out := make([]NoteData, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, NoteData{
			ID:       c.ID,
			Content:  c.Content,
			Position: c.Position,
			Updated:  c.LastUpdated,
			Subnotes: Snapshot(c),
		})
	}
	return out
}
