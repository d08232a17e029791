package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"notelist-cli/internal/model"
)

const listRetryAttempts = 3

// RemoteError wraps a failed remote call with the operation name so the
// notification layer can phrase it for the user.
type RemoteError struct {
	Op  string
	Err error
}

func (e RemoteError) Error() string { return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err) }
func (e RemoteError) Unwrap() error { return e.Err }

// Client talks to the note server. Endpoints follow the /note/<op>/<id>
// shape with form-encoded parameters.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	return &Client{http: c, logger: logger}
}

func (c *Client) Close() error { return c.http.Close() }

// ListNotes fetches the whole nested document. Load failure is fatal to the
// session, so unlike the five mutation calls it is retried with backoff
// before giving up.
func (c *Client) ListNotes(ctx context.Context) ([]model.NoteData, error) {
	var notes []model.NoteData
	err := retry.Do(
		func() error {
			response, err := c.http.R().
				SetContext(ctx).
				SetResult(&[]model.NoteData{}).
				Get("/note/list/")
			if err != nil {
				return err
			}
			if response.IsError() {
				return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
			}
			notes = *response.Result().(*[]model.NoteData)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(listRetryAttempts),
		retry.Delay(500*time.Millisecond),
	)
	if err != nil {
		return nil, RemoteError{Op: "list", Err: err}
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, req CreateRequest) (CreateResult, error) {
	res, err := c.post(ctx, "create", "", map[string]string{
		"parentId":  req.ParentID,
		"afterNote": req.AfterNoteID,
		"content":   req.Content,
	}, &CreateResult{})
	if err != nil {
		return CreateResult{}, err
	}
	return *res.(*CreateResult), nil
}

func (c *Client) UpdateNote(ctx context.Context, id, content string) (UpdateResult, error) {
	res, err := c.post(ctx, "update", id, map[string]string{"content": content}, &UpdateResult{})
	if err != nil {
		return UpdateResult{}, err
	}
	return *res.(*UpdateResult), nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) (UpdateResult, error) {
	res, err := c.post(ctx, "delete", id, nil, &UpdateResult{})
	if err != nil {
		return UpdateResult{}, err
	}
	return *res.(*UpdateResult), nil
}

func (c *Client) RestoreNote(ctx context.Context, id string) (UpdateResult, error) {
	res, err := c.post(ctx, "restore", id, nil, &UpdateResult{})
	if err != nil {
		return UpdateResult{}, err
	}
	return *res.(*UpdateResult), nil
}

func (c *Client) MoveNote(ctx context.Context, id, parentID, afterNoteID string) (UpdateResult, error) {
	res, err := c.post(ctx, "move", id, map[string]string{
		"parentId":  parentID,
		"afterNote": afterNoteID,
	}, &UpdateResult{})
	if err != nil {
		return UpdateResult{}, err
	}
	return *res.(*UpdateResult), nil
}

func (c *Client) post(ctx context.Context, op, id string, form map[string]string, result any) (any, error) {
	r := c.http.R().SetContext(ctx).SetResult(result)
	if len(form) > 0 {
		r.SetFormData(form)
	}
	response, err := r.Post("/note/" + op + "/" + id)
	if err != nil {
		c.logger.Warn("remote call failed", "op", op, "id", id, "err", err)
		return nil, RemoteError{Op: op, Err: err}
	}
	if response.IsError() {
		c.logger.Warn("remote call failed", "op", op, "id", id, "status", response.StatusCode())
		return nil, RemoteError{Op: op, Err: fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())}
	}
	return response.Result(), nil
}
