package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notelist-cli/internal/config"
	"notelist-cli/internal/model"
	"notelist-cli/internal/outline"
	"notelist-cli/internal/store"
	"notelist-cli/internal/sync"
)

type notesLoadedMsg struct {
	data []model.NoteData
	view *store.ViewState
}

type loadFailedMsg struct{ err error }

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type sweepTickMsg struct{}

type sweepDoneMsg struct{}

// ackMsg carries a remote acknowledgment back onto the event loop; fn writes
// the acked note's sync-state fields. All note-field writes happen in Update,
// never on the goroutine that ran the remote call.
type ackMsg struct{ fn func() }

// statusVisibleFor matches the original error popup: show, then hide.
const statusVisibleFor = 3 * time.Second

type appModel struct {
	cfg     *config.Config
	o       *outline.Outline
	remote  sync.Remote
	sweeper *sync.Sweeper
	st      store.Store

	rows   []outlineRow
	cursor int
	scroll int
	input  textinput.Model

	width  int
	height int

	loaded  bool
	loadErr error

	status      string
	statusIsErr bool

	showHelp    bool
	showPreview bool
	showExport  bool
}

// Run starts the interactive outliner against the given remote store.
func Run(cfg *config.Config, remote sync.Remote, st store.Store) error {
	setThemePreference(cfg.TUI.Theme)

	root := model.NewDocumentRoot()
	o := outline.New(root)

	// The sweeper reports errors from its own goroutines; route them into
	// the program as messages. send is bound after the program exists.
	var send func(tea.Msg)
	notify := func(msg string) {
		if send != nil {
			send(statusMsg{text: msg, isErr: true})
		}
	}
	sweeper := sync.NewSweeper(remote, notify, slog.Default())
	sweeper.SetApply(func(fn func()) {
		if send != nil {
			send(ackMsg{fn: fn})
			return
		}
		fn()
	})
	o.SetSyncer(sweeper)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()

	m := appModel{
		cfg:     cfg,
		o:       o,
		remote:  remote,
		sweeper: sweeper,
		st:      st,
		cursor:  -1,
		input:   ti,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	send = p.Send
	_, err := p.Run()
	sweeper.Wait()
	return err
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadNotesCmd(), m.sweepTickCmd(), textinput.Blink)
}

func (m appModel) loadNotesCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := m.remote.ListNotes(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		// View state is best effort; ignore errors.
		vs, err := m.st.LoadViewState(context.Background())
		if err != nil {
			vs = &store.ViewState{OpenIDs: map[string]bool{}}
		}
		return notesLoadedMsg{data: data, view: vs}
	}
}

func (m appModel) sweepTickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Sync.Interval(), func(time.Time) tea.Msg { return sweepTickMsg{} })
}

// flushCmd sends a collected batch in the background. The batch is a
// snapshot, so the goroutine never touches the tree; acks come back as
// ackMsgs.
func (m appModel) flushCmd(ops []sync.Op) tea.Cmd {
	if len(ops) == 0 {
		return nil
	}
	return func() tea.Msg {
		m.sweeper.Flush(context.Background(), ops)
		return sweepDoneMsg{}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		return m, nil

	case notesLoadedMsg:
		model.Materialize(m.o.Root(), msg.data)
		m.applyViewState(msg.view)
		m.loaded = true
		if fresh := m.o.EnsureNotEmpty(); fresh != nil {
			m.refreshRows()
			m.setFocus(fresh, true)
			return m, nil
		}
		m.refreshRows()
		if m.cursor < 0 && len(m.rows) > 0 {
			m.setFocus(m.rows[0].note, true)
		}
		return m, nil

	case loadFailedMsg:
		m.loadErr = msg.err
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.statusIsErr = msg.isErr
		return m, tea.Tick(statusVisibleFor, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		m.statusIsErr = false
		return m, nil

	case sweepTickMsg:
		if !m.loaded {
			return m, m.sweepTickCmd()
		}
		// Collect reads the tree here on the event loop; only the flush
		// runs in the background.
		ops := m.sweeper.Collect(m.o.Root())
		return m, tea.Batch(m.flushCmd(ops), m.sweepTickCmd())

	case sweepDoneMsg:
		return m, nil

	case ackMsg:
		msg.fn()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.saveViewState()
		return m, tea.Quit
	}
	if m.loadErr != nil {
		// Load failure is fatal to the session; any key exits.
		return m, tea.Quit
	}
	if !m.loaded {
		return m, nil
	}
	if m.showHelp || m.showPreview || m.showExport {
		m.showHelp = false
		m.showPreview = false
		m.showExport = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+g":
		m.showHelp = true
		return m, nil
	case "ctrl+p":
		m.showPreview = true
		return m, nil
	case "ctrl+e":
		m.showExport = true
		return m, nil
	case "ctrl+o":
		if f := m.focused(); f != nil && f != m.o.Root() {
			m.o.ZoomInto(f)
			m.refreshRows()
			m.setFocus(f, true)
		}
		return m, nil
	case "esc":
		if m.o.Zoomed() {
			f := m.focused()
			m.o.ZoomOut()
			m.refreshRows()
			if f != nil {
				m.setFocus(f, true)
			}
		}
		return m, nil
	case "ctrl+r":
		if restored := m.o.UndoLast(); restored != nil {
			m.refreshRows()
			m.setFocus(restored, true)
		}
		return m, nil
	case "ctrl+s":
		return m, m.flushCmd(m.sweeper.Collect(m.o.Root()))
	}

	atStart := m.input.Position() == 0
	atEnd := m.input.Position() >= len([]rune(m.input.Value()))
	if ev, ok := keyEventFor(msg, atStart, atEnd); ok {
		f := m.focused()
		next, handled := m.o.Dispatch(f, ev)
		if handled {
			m.refreshRows()
			if next != nil && next != f {
				m.setFocus(next, ev.Key != outline.KeyUp)
			} else if idx := rowIndexOf(m.rows, f); idx >= 0 {
				m.cursor = idx
			} else {
				m.cursor = firstVisibleAncestor(m.rows, f)
			}
			m.clampScroll()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if f := m.focused(); f != nil {
		f.SetContent(m.input.Value())
	}
	return m, cmd
}

func (m *appModel) focused() *model.Note {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].note
	}
	return nil
}

func (m *appModel) refreshRows() {
	m.rows = flattenVisible(m.o)
}

func (m *appModel) setFocus(n *model.Note, cursorAtEnd bool) {
	if n == nil {
		return
	}
	m.o.StartEdit(n)
	idx := rowIndexOf(m.rows, n)
	if idx < 0 {
		idx = firstVisibleAncestor(m.rows, n)
	}
	m.cursor = idx
	m.input.SetValue(n.Content)
	if cursorAtEnd {
		m.input.CursorEnd()
	} else {
		m.input.SetCursor(0)
	}
	m.clampScroll()
}

func (m *appModel) clampScroll() {
	visible := m.visibleRowCount()
	if visible <= 0 {
		return
	}
	if m.cursor >= 0 {
		if m.cursor < m.scroll {
			m.scroll = m.cursor
		}
		if m.cursor >= m.scroll+visible {
			m.scroll = m.cursor - visible + 1
		}
	}
	maxScroll := len(m.rows) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *appModel) applyViewState(vs *store.ViewState) {
	if vs == nil {
		return
	}
	root := m.o.Root()
	root.Walk(func(n *model.Note) bool {
		if n.ID != "" && vs.OpenIDs[n.ID] {
			n.Open = true
		}
		return true
	})
	if vs.ZoomNoteID != "" {
		if n := findByID(root, vs.ZoomNoteID); n != nil {
			m.o.ZoomInto(n)
		}
	}
	if vs.FocusNoteID != "" {
		if n := findByID(root, vs.FocusNoteID); n != nil {
			m.refreshRows()
			m.setFocus(n, true)
		}
	}
}

func (m *appModel) saveViewState() {
	vs := &store.ViewState{OpenIDs: map[string]bool{}}
	m.o.Root().Walk(func(n *model.Note) bool {
		if n.Open && n.ID != "" && n.HasChildren() {
			vs.OpenIDs[n.ID] = true
		}
		return true
	})
	if m.o.Zoomed() {
		vs.ZoomNoteID = m.o.ViewRoot().ID
	}
	if f := m.focused(); f != nil {
		vs.FocusNoteID = f.ID
	}
	if err := m.st.SaveViewState(context.Background(), vs); err != nil {
		slog.Default().Warn("failed to save view state", "err", err)
	}
}

func findByID(root *model.Note, id string) *model.Note {
	var found *model.Note
	root.Walk(func(n *model.Note) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
