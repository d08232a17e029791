package sync

import (
	"context"

	"notelist-cli/internal/model"
)

// CreateRequest is the payload of a remote create: where the note goes and
// what it says. AfterNoteID is empty when the note is first among its
// siblings; ParentID is empty for top-level notes.
type CreateRequest struct {
	ParentID    string
	AfterNoteID string
	Content     string
}

// CreateResult carries the durable server-assigned identity back.
type CreateResult struct {
	ID      string `json:"id"`
	Updated string `json:"updated"`
}

// UpdateResult is the ack shared by update/delete/restore/move.
type UpdateResult struct {
	Updated string `json:"updated"`
	Deleted bool   `json:"deleted,omitempty"`
}

// Remote is the boundary to the server-side note store. Per-note operations
// must be observed by the server in the order issued for that note;
// cross-note ordering is not required.
type Remote interface {
	ListNotes(ctx context.Context) ([]model.NoteData, error)
	CreateNote(ctx context.Context, req CreateRequest) (CreateResult, error)
	UpdateNote(ctx context.Context, id, content string) (UpdateResult, error)
	DeleteNote(ctx context.Context, id string) (UpdateResult, error)
	RestoreNote(ctx context.Context, id string) (UpdateResult, error)
	MoveNote(ctx context.Context, id, parentID, afterNoteID string) (UpdateResult, error)
}

// Notify surfaces a human-readable transient error to the user. The core
// never retries inline; the next sweep naturally re-sends dirty/new notes.
type Notify func(msg string)
