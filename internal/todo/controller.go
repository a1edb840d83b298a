// Package todo owns the task list and the single in-place editing session.
//
// A Controller is not safe for concurrent use. It is driven from one
// goroutine (the UI update loop); persistence happens through a Saver that
// receives immutable snapshots.
package todo

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

// Saver accepts a serialized task list. Implementations must not block on I/O.
type Saver interface {
	Save(payload []byte)
}

// Session is an open in-place edit of one task.
type Session struct {
	TaskID string
	Draft  string
}

type Option func(*Controller)

func WithIDFunc(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithKey(key string) Option {
	return func(c *Controller) {
		if strings.TrimSpace(key) != "" {
			c.key = key
		}
	}
}

type Controller struct {
	store  storage.Store
	saver  Saver
	key    string
	newID  func() string
	logger *log.Logger

	tasks   []model.Task
	session *Session
}

func New(store storage.Store, saver Saver, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		saver:  saver,
		key:    storage.DefaultKey,
		newID:  model.NewID,
		logger: log.New(io.Discard),
		tasks:  []model.Task{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the list with the stored snapshot. On any failure the
// current list is kept; the error is returned for the caller to log and is
// never fatal.
func (c *Controller) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.logger.Debug("no saved task list", "key", c.key)
		} else {
			c.logger.Warn("load task list failed", "key", c.key, "err", err)
		}
		return err
	}
	tasks, err := model.DecodeTasks(raw)
	if err != nil {
		c.logger.Warn("discarding unreadable task list", "key", c.key, "err", err)
		return err
	}
	c.tasks = tasks
	if c.session != nil && c.IndexOf(c.session.TaskID) < 0 {
		c.session = nil
	}
	c.logger.Info("task list loaded", "key", c.key, "tasks", len(tasks))
	return nil
}

// Add appends a task with the trimmed text. Blank text is ignored.
func (c *Controller) Add(raw string) bool {
	text := strings.TrimSpace(raw)
	if text == "" {
		return false
	}
	c.tasks = append(c.tasks, model.Task{ID: c.freshID(), Text: text})
	c.save()
	return true
}

func (c *Controller) ToggleComplete(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	c.save()
	return true
}

// StartEdit opens a session on id seeded with its text, replacing any open
// session. An unknown id leaves the current session as it is.
func (c *Controller) StartEdit(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	c.session = &Session{TaskID: id, Draft: c.tasks[i].Text}
	return true
}

func (c *Controller) UpdateDraft(text string) {
	if c.session == nil {
		return
	}
	c.session.Draft = text
}

// ConfirmEdit commits the trimmed draft. A blank draft cancels the edit.
func (c *Controller) ConfirmEdit() bool {
	if c.session == nil {
		return false
	}
	s := *c.session
	c.session = nil

	text := strings.TrimSpace(s.Draft)
	if text == "" {
		return false
	}
	i := c.IndexOf(s.TaskID)
	if i < 0 || c.tasks[i].Text == text {
		return false
	}
	c.tasks[i].Text = text
	c.save()
	return true
}

func (c *Controller) CancelEdit() {
	c.session = nil
}

func (c *Controller) Remove(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	if c.session != nil && c.session.TaskID == id {
		c.session = nil
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.save()
	return true
}

// ClearCompleted drops every completed task and reports how many went.
func (c *Controller) ClearCompleted() int {
	kept := make([]model.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(c.tasks) - len(kept)
	if removed == 0 {
		return 0
	}
	c.tasks = kept
	if c.session != nil && c.IndexOf(c.session.TaskID) < 0 {
		c.session = nil
	}
	c.save()
	return removed
}

// Tasks returns a copy of the list in display order.
func (c *Controller) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Controller) Task(id string) (model.Task, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return c.tasks[i], true
}

func (c *Controller) IndexOf(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Controller) Counts() model.Counts {
	return model.CountTasks(c.tasks)
}

func (c *Controller) HasCompleted() bool {
	for _, t := range c.tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

func (c *Controller) freshID() string {
	for {
		id := c.newID()
		if strings.TrimSpace(id) != "" && c.IndexOf(id) < 0 {
			return id
		}
		c.logger.Debug("regenerating task id", "id", id)
	}
}

func (c *Controller) save() {
	if c.saver == nil {
		return
	}
	payload, err := model.EncodeTasks(c.tasks)
	if err != nil {
		c.logger.Error("encode task list", "err", err)
		return
	}
	c.saver.Save(payload)
}
