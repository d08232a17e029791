package sync

import (
	"context"
	"log/slog"
	gosync "sync"

	"notelist-cli/internal/model"
)

type opKind int

const (
	opCreate opKind = iota
	opUpdate
)

// Op is one pending create or update captured by Collect. It snapshots
// everything the remote call needs (ids, content, placement) so that Flush
// never reads the live tree. A parent or preceding sibling whose own create
// is still in the same batch is referenced by batch index instead of id; the
// server id becomes known while the batch runs.
type Op struct {
	note    *model.Note
	kind    opKind
	id      string
	content string

	parentID  string
	parentIdx int
	afterID   string
	afterIdx  int
}

// Sweeper flushes pending sync state to the remote store.
//
// Create/update are batched: Collect walks the live tree pre-order and
// snapshots a create for every New note and an update for every Dirty note;
// Flush then issues the remote calls from the snapshot alone.
// Move/delete/restore are not batched; they are issued at mutation time
// through the outline.Syncer methods, fire-and-forget.
//
// All tree reads happen in Collect and all tree writes happen inside apply
// closures, so a caller that runs Collect and the closures on its event loop
// (and Flush anywhere) never has concurrent tree access. The default apply
// runs closures inline, which is correct for single-goroutine callers like
// the CLI and tests.
type Sweeper struct {
	remote Remote
	notify Notify
	logger *slog.Logger
	apply  func(fn func())

	wg gosync.WaitGroup
}

func NewSweeper(remote Remote, notify Notify, logger *slog.Logger) *Sweeper {
	if notify == nil {
		notify = func(string) {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{remote: remote, notify: notify, logger: logger, apply: func(fn func()) { fn() }}
}

// SetApply routes ack application through fn. The TUI uses this to marshal
// every note-field write back onto its event loop. Must be set before any
// Flush or fire-and-forget call is in flight.
func (s *Sweeper) SetApply(fn func(func())) {
	if fn != nil {
		s.apply = fn
	}
}

// Collect walks the tree under root (root itself is the virtual document root
// and is never synced) and snapshots the pending creates and updates.
// Callers must invoke it on the goroutine that owns the tree.
func (s *Sweeper) Collect(root *model.Note) []Op {
	var ops []Op
	index := map[*model.Note]int{}
	for _, child := range root.Children() {
		child.Walk(func(n *model.Note) bool {
			switch {
			case n.New:
				op := Op{note: n, kind: opCreate, content: n.Content, parentIdx: -1, afterIdx: -1}
				if parent := n.Parent(); parent != nil && parent.Parent() != nil {
					if i, ok := index[parent]; ok {
						op.parentIdx = i
					} else {
						op.parentID = parent.ID
					}
				}
				if prev := n.PrevSibling(); prev != nil {
					if i, ok := index[prev]; ok {
						op.afterIdx = i
					} else {
						op.afterID = prev.ID
					}
				}
				index[n] = len(ops)
				ops = append(ops, op)
			case n.Dirty:
				ops = append(ops, Op{note: n, kind: opUpdate, id: n.ID, content: n.Content, parentIdx: -1, afterIdx: -1})
			}
			return true
		})
	}
	return ops
}

// Flush issues the remote calls for a collected batch, in order. It reads
// only the snapshot, so it is safe to run off the tree-owning goroutine.
// Errors are surfaced through notify and otherwise swallowed; the affected
// flags stay set (the ack closure never runs) so the next sweep retries.
func (s *Sweeper) Flush(ctx context.Context, ops []Op) {
	ids := make([]string, len(ops))
	for i, op := range ops {
		if ctx.Err() != nil {
			return
		}
		switch op.kind {
		case opCreate:
			parentID := op.parentID
			if op.parentIdx >= 0 {
				if ids[op.parentIdx] == "" {
					// Parent create failed; the child retries next sweep.
					continue
				}
				parentID = ids[op.parentIdx]
			}
			afterID := op.afterID
			if op.afterIdx >= 0 {
				if ids[op.afterIdx] == "" {
					continue
				}
				afterID = ids[op.afterIdx]
			}
			res, err := s.remote.CreateNote(ctx, CreateRequest{
				ParentID:    parentID,
				AfterNoteID: afterID,
				Content:     op.content,
			})
			if err != nil {
				s.report(err)
				continue
			}
			ids[i] = res.ID
			n := op.note
			s.apply(func() {
				n.ID = res.ID
				n.LastUpdated = res.Updated
				n.New = false
			})
		case opUpdate:
			res, err := s.remote.UpdateNote(ctx, op.id, op.content)
			if err != nil {
				s.report(err)
				continue
			}
			n := op.note
			s.apply(func() {
				n.LastUpdated = res.Updated
				n.Dirty = false
			})
		}
	}
}

// Sweep is Collect followed by Flush in one call, for callers that own the
// tree for the whole duration (CLI, tests).
func (s *Sweeper) Sweep(ctx context.Context, root *model.Note) {
	s.Flush(ctx, s.Collect(root))
}

// NoteDeleted issues the remote delete immediately. A note the server has
// never seen needs no call: dropping it locally is enough.
func (s *Sweeper) NoteDeleted(n *model.Note) {
	if n.New {
		return
	}
	id := n.ID
	s.fire(func(ctx context.Context) {
		res, err := s.remote.DeleteNote(ctx, id)
		if err != nil {
			s.report(err)
			return
		}
		s.apply(func() { n.LastUpdated = res.Updated })
	})
}

// NoteRestored issues the remote restore immediately. A still-pending note
// will simply be created by the next sweep.
func (s *Sweeper) NoteRestored(n *model.Note) {
	if n.New {
		return
	}
	id := n.ID
	s.fire(func(ctx context.Context) {
		res, err := s.remote.RestoreNote(ctx, id)
		if err != nil {
			s.report(err)
			return
		}
		s.apply(func() {
			n.LastUpdated = res.Updated
			n.Deleted = false
		})
	})
}

// NoteMoved issues the remote move immediately. While the note's create is
// still pending the move is skipped: the eventual create already carries the
// note's final parent and position.
func (s *Sweeper) NoteMoved(n *model.Note, parent, after *model.Note) {
	if n.New {
		return
	}
	id := n.ID
	parentID := remoteParentID(parent)
	afterID := ""
	if after != nil {
		afterID = after.ID
	}
	s.fire(func(ctx context.Context) {
		res, err := s.remote.MoveNote(ctx, id, parentID, afterID)
		if err != nil {
			s.report(err)
			return
		}
		s.apply(func() { n.LastUpdated = res.Updated })
	})
}

// Wait blocks until all fire-and-forget calls have completed. Used by the
// TUI on shutdown and by tests.
func (s *Sweeper) Wait() { s.wg.Wait() }

func (s *Sweeper) fire(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(context.Background())
	}()
}

func (s *Sweeper) report(err error) {
	s.logger.Warn("sync error", "err", err)
	s.notify(err.Error())
}

// remoteParentID maps a parent note to the wire parentId. The virtual
// document root is the only live note without a parent; its children are
// top-level notes with an empty parentId.
func remoteParentID(parent *model.Note) string {
	if parent == nil || parent.Parent() == nil {
		return ""
	}
	return parent.ID
}
