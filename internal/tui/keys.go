package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"notelist-cli/internal/outline"
)

// keyEventFor decodes a terminal key message into a dispatcher event.
// cursorAtStart/cursorAtEnd come from the edit field, since the dispatcher
// itself never sees the text cursor. ok == false means the key is not a
// structural/navigation command at all.
func keyEventFor(msg tea.KeyMsg, cursorAtStart, cursorAtEnd bool) (outline.KeyEvent, bool) {
	ev := outline.KeyEvent{CursorAtStart: cursorAtStart, CursorAtEnd: cursorAtEnd}
	switch msg.String() {
	case "enter":
		ev.Key = outline.KeyEnter
	case "shift+enter", "alt+enter":
		// alt+enter doubles for shift+enter: many terminals cannot report
		// shift with the enter key.
		ev.Key = outline.KeyEnter
		ev.Shift = true
	case "up":
		ev.Key = outline.KeyUp
	case "down":
		ev.Key = outline.KeyDown
	case "left":
		ev.Key = outline.KeyLeft
	case "right":
		ev.Key = outline.KeyRight
	case "ctrl+left":
		ev.Key = outline.KeyLeft
		ev.Ctrl = true
	case "ctrl+right":
		ev.Key = outline.KeyRight
		ev.Ctrl = true
	case "tab":
		ev.Key = outline.KeyTab
	case "shift+tab":
		ev.Key = outline.KeyTab
		ev.Shift = true
	case "backspace":
		ev.Key = outline.KeyBackspace
	default:
		return outline.KeyEvent{}, false
	}
	return ev, true
}
