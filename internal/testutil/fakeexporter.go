package testutil

import (
	"context"
	"sync"

	"todo/internal/task"
)

// ExportCall records one call to FakeExporter.Export.
type ExportCall struct {
	List  string
	Tasks []task.Task
}

// FakeExporter is an in-memory service.Exporter for testing.
type FakeExporter struct {
	mu    sync.Mutex
	calls []ExportCall

	// Err, when set, is returned by Export after FailAfter tasks.
	Err       error
	FailAfter int
}

// NewFakeExporter creates a FakeExporter that accepts every task.
func NewFakeExporter() *FakeExporter {
	return &FakeExporter{}
}

// Export implements service.Exporter.
func (f *FakeExporter) Export(ctx context.Context, listName string, tasks []task.Task) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := make([]task.Task, len(tasks))
	copy(cp, tasks)
	f.calls = append(f.calls, ExportCall{List: listName, Tasks: cp})

	if f.Err != nil {
		n := f.FailAfter
		if n > len(tasks) {
			n = len(tasks)
		}
		return n, f.Err
	}
	return len(tasks), nil
}

// Calls returns the recorded Export calls.
func (f *FakeExporter) Calls() []ExportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]ExportCall, len(f.calls))
	copy(cp, f.calls)
	return cp
}
