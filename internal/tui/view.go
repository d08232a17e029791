package tui

import (
	"strings"

	"notelist-cli/internal/format"
	"notelist-cli/internal/model"
)

const helpText = `# Keys

| Key | Action |
| --- | --- |
| Enter | New note below (Shift/Alt+Enter: first child) |
| Up / Down | Move focus |
| Left / Right | Collapse / expand (Ctrl: at line edge too) |
| Tab / Shift+Tab | Indent / outdent |
| Backspace at line start | Delete note |
| Ctrl+R | Undo delete |
| Ctrl+O / Esc | Zoom in / out |
| Ctrl+P | Markdown preview of focused subtree |
| Ctrl+E | Plain-text export of focused subtree |
| Ctrl+S | Sync now |
| Ctrl+C | Quit |

Press any key to close.`

func (m appModel) View() string {
	if m.loadErr != nil {
		return styleStatusErr.Render("could not load notes from server: "+m.loadErr.Error()) +
			"\n\npress any key to exit\n"
	}
	if !m.loaded {
		return styleStatus.Render("loading notes...") + "\n"
	}
	if m.showHelp {
		return renderMarkdown(helpText, m.contentWidth()) + "\n"
	}
	if m.showPreview {
		return m.previewView()
	}
	if m.showExport {
		return m.exportView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	visible := m.visibleRowCount()
	end := m.scroll + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.rowView(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	return b.String()
}

func (m appModel) headerView() string {
	title := styleHeading.Render("Notes")
	if !m.o.Zoomed() {
		return title
	}
	var parts []string
	parts = append(parts, "Notes")
	for _, c := range m.o.Breadcrumbs() {
		label := strings.TrimSpace(c.Label)
		if label == "" {
			label = "..."
		}
		parts = append(parts, label)
	}
	trail := styleBreadcrumb.Render(strings.Join(parts, " > ") + " >")
	return trail + " " + styleHeading.Render(m.o.ViewRoot().Content)
}

func (m appModel) rowView(i int) string {
	r := m.rows[i]
	indent := strings.Repeat("  ", r.depth)

	var twisty string
	switch {
	case r.hasChildren && (r.note.Open || r.note.ZoomedIn):
		twisty = styleTwisty.Render("▾ ")
	case r.hasChildren:
		twisty = styleTwisty.Render("▸ ")
	default:
		twisty = styleTwisty.Render("· ")
	}

	mark := "  "
	if r.note.New || r.note.Dirty {
		mark = styleDirtyMark.Render(" ~")
	}

	if i == m.cursor {
		return indent + twisty + m.input.View() + mark
	}
	return indent + twisty + renderSpans(r.note.Content) + mark
}

func renderSpans(content string) string {
	var b strings.Builder
	for _, s := range format.Annotate(content) {
		switch s.Kind {
		case format.SpanTag:
			b.WriteString(styleTag.Render(s.Text))
		case format.SpanLink:
			b.WriteString(styleLink.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func (m appModel) statusView() string {
	if m.status != "" {
		if m.statusIsErr {
			return styleStatusErr.Render(m.status)
		}
		return styleStatus.Render(m.status)
	}
	return styleStatus.Render("enter: new  tab: indent  ctrl+g: help  ctrl+c: quit")
}

// previewView renders the focused subtree as a markdown bullet list.
func (m appModel) previewView() string {
	f := m.focused()
	if f == nil {
		f = m.o.ViewRoot()
	}
	var b strings.Builder
	writeMarkdownOutline(&b, f, 0)
	out := renderMarkdown(b.String(), m.contentWidth())
	return out + "\n\n" + styleStatus.Render("press any key to close") + "\n"
}

func writeMarkdownOutline(b *strings.Builder, n *model.Note, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString("- ")
	b.WriteString(n.Content)
	b.WriteString("\n")
	for _, c := range n.Children() {
		writeMarkdownOutline(b, c, depth+1)
	}
}

// exportView shows the plain-text export of the focused subtree, the same
// rendering `notelist export` prints for the whole document.
func (m appModel) exportView() string {
	f := m.focused()
	if f == nil {
		f = m.o.ViewRoot()
	}
	var out string
	if f.Parent() == nil {
		out = format.ExportChildren(f)
	} else {
		out = format.ExportText(f)
	}
	return out + "\n" + styleStatus.Render("press any key to close") + "\n"
}

func (m appModel) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	if w > 100 {
		w = 100
	}
	return w
}

// visibleRowCount is the number of outline rows that fit between the header
// and the status line.
func (m appModel) visibleRowCount() int {
	if m.height <= 0 {
		return len(m.rows)
	}
	n := m.height - 4
	if n < 1 {
		n = 1
	}
	return n
}
