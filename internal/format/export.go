package format

import (
	"strings"

	"notelist-cli/internal/model"
)

// ExportText renders a subtree as indented plain text, one " * content" line
// per note, children indented with tabs. Collapsed state is ignored: export
// always shows the full subtree.
func ExportText(root *model.Note) string {
	var b strings.Builder
	exportNote(&b, root, "")
	return b.String()
}

func exportNote(b *strings.Builder, n *model.Note, indent string) {
	b.WriteString(indent)
	b.WriteString(" * ")
	b.WriteString(n.Content)
	b.WriteString("\n")
	for _, c := range n.Children() {
		exportNote(b, c, indent+"\t")
	}
}

// ExportChildren renders only the children of root, for exporting a whole
// document without its virtual root note.
func ExportChildren(root *model.Note) string {
	var b strings.Builder
	for _, c := range root.Children() {
		exportNote(&b, c, "")
	}
	return b.String()
}
