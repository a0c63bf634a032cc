// Package service defines the interfaces commands work against, so that no
// command depends on a storage or Google SDK package directly.
package service

import (
	"context"

	"todo/internal/task"
)

// Service is the task list as seen by commands.
// *syncer.Controller is the production implementation.
type Service interface {
	// Add appends a task. Blank text is rejected with ok=false.
	Add(text string) (t task.Task, ok bool)

	// Toggle flips a task's completed flag. Unknown ids report false and
	// change nothing.
	Toggle(id string) bool

	// Delete removes a task. Unknown ids report false and change nothing.
	Delete(id string) bool

	// List returns the tasks in display order.
	List() []task.Task

	// Flush waits for pending saves and returns the last save error.
	Flush(ctx context.Context) error

	// Close flushes and releases storage.
	Close(ctx context.Context) error
}

// Exporter copies tasks to a remote task list.
type Exporter interface {
	// Export writes tasks into the list titled listName, creating the list
	// if it does not exist. It returns the number of tasks written.
	Export(ctx context.Context, listName string, tasks []task.Task) (int, error)
}
