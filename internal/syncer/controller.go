// Package syncer keeps the in-memory task list and its stored copy in step.
//
// A Controller loads the list once at startup and, after every mutation,
// hands a snapshot of the whole list to a background writer. The writer has
// a single pending slot: a newer snapshot replaces one that has not been
// written yet, so bursts of mutations coalesce and writes never go out of
// order.
package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"todo/internal/kv"
	"todo/internal/task"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "todos"

// ErrAlreadyLoaded is returned by a second call to Load.
var ErrAlreadyLoaded = errors.New("tasks already loaded")

// State is the synchronization state of a Controller.
type State int

const (
	// Uninitialized means neither Load nor any save has completed yet.
	Uninitialized State = iota
	// Synced means Load or at least one save has completed.
	Synced
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Synced:
		return "synced"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTaskOptions passes options to the underlying task.Store.
func WithTaskOptions(opts ...task.Option) Option {
	return func(c *Controller) {
		c.taskOpts = append(c.taskOpts, opts...)
	}
}

type snapshot struct {
	seq  uint64
	blob string
}

// Controller owns the task list and its persistence.
// All methods are safe for concurrent use.
type Controller struct {
	store    kv.Store
	key      string
	log      *slog.Logger
	taskOpts []task.Option

	mu       sync.Mutex
	tasks    *task.Store
	state    State
	loaded   bool
	closed   bool
	lastErr  error
	pending  *snapshot
	queued   uint64        // seq of the newest enqueued snapshot
	written  uint64        // seq of the newest snapshot whose write finished
	progress chan struct{} // closed and replaced each time written advances

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	closeErr error
}

// New creates a Controller persisting under key in store and starts its
// writer. An empty key falls back to DefaultKey. The Controller takes
// ownership of store and closes it in Close.
func New(store kv.Store, key string, opts ...Option) *Controller {
	if key == "" {
		key = DefaultKey
	}
	c := &Controller{
		store:    store,
		key:      key,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tasks = task.NewStore(c.taskOpts...)

	go c.writeLoop()
	return c
}

// Key returns the storage key.
func (c *Controller) Key() string { return c.key }

// Load reads the stored list and replaces the in-memory one with it.
// It may be called once; later calls return ErrAlreadyLoaded.
//
// Load never fails on bad storage: a missing value, a read error or a
// malformed value leave the in-memory list as it is (empty at startup) and
// are only logged.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.loaded = true
	c.mu.Unlock()

	tasks, ok := c.read(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.tasks.Replace(tasks)
	}
	c.state = Synced
	return nil
}

func (c *Controller) read(ctx context.Context) ([]task.Task, bool) {
	blob, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.log.Warn("load failed, starting empty", "key", c.key, "error", err)
		return nil, false
	}
	if !ok {
		c.log.Debug("no stored tasks", "key", c.key)
		return nil, false
	}
	tasks, err := task.Decode(blob)
	if err != nil {
		c.log.Warn("stored tasks unreadable, starting empty", "key", c.key, "error", err)
		return nil, false
	}
	c.log.Debug("loaded tasks", "key", c.key, "count", len(tasks))
	return tasks, true
}

// Add appends a task and schedules a save. Blank text is rejected and
// nothing is saved.
func (c *Controller) Add(text string) (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tasks.Add(text)
	if ok {
		c.enqueueLocked()
	}
	return t, ok
}

// Toggle flips a task's completed flag and schedules a save. An unknown id
// is a no-op.
func (c *Controller) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.tasks.Toggle(id)
	if ok {
		c.enqueueLocked()
	}
	return ok
}

// Delete removes a task and schedules a save. An unknown id is a no-op.
func (c *Controller) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.tasks.Delete(id)
	if ok {
		c.enqueueLocked()
	}
	return ok
}

// List returns a copy of the tasks in display order.
func (c *Controller) List() []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.List()
}

// Get returns the task with the given id.
func (c *Controller) Get(id string) (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.Get(id)
}

// State reports whether the Controller has synced with storage yet.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the most recent completed save, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// enqueueLocked snapshots the list into the pending slot. c.mu must be held.
func (c *Controller) enqueueLocked() {
	if c.closed {
		c.log.Debug("controller closed, change not saved", "key", c.key)
		return
	}
	blob, err := task.Encode(c.tasks.List())
	if err != nil {
		c.log.Error("encode tasks", "error", err)
		return
	}
	c.queued++
	c.pending = &snapshot{seq: c.queued, blob: blob}

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Controller) writeLoop() {
	defer close(c.done)
	defer func() {
		c.closeErr = c.store.Close()
	}()

	for {
		select {
		case <-c.wake:
		case <-c.stop:
			return
		}

		for {
			c.mu.Lock()
			snap := c.pending
			c.pending = nil
			c.mu.Unlock()
			if snap == nil {
				break
			}
			c.write(snap)
		}
	}
}

// write stores one snapshot. Saves are not retried; a failure is logged and
// kept for Err and Flush.
func (c *Controller) write(snap *snapshot) {
	err := c.store.Set(context.Background(), c.key, snap.blob)
	if err != nil {
		c.log.Warn("save failed", "key", c.key, "error", err)
	} else {
		c.log.Debug("saved tasks", "key", c.key, "bytes", len(snap.blob))
	}

	c.mu.Lock()
	c.written = snap.seq
	c.lastErr = err
	c.state = Synced
	close(c.progress)
	c.progress = make(chan struct{})
	c.mu.Unlock()
}

// Flush waits until every change made before the call has been written,
// or ctx is done. It returns the error of the last completed save.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	target := c.queued
	for c.written < target {
		ch := c.progress
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
	}
	err := c.lastErr
	c.mu.Unlock()
	return err
}

// Close flushes pending changes, stops the writer and closes the store.
// Changes made after Close stay in memory only. Close is idempotent.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	flushErr := c.Flush(ctx)
	close(c.stop)

	select {
	case <-c.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if flushErr != nil {
		return flushErr
	}
	return c.closeErr
}
