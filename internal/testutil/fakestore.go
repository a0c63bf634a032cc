// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is a ready-made error for failure injection.
var ErrInjected = errors.New("injected failure")

// FakeStore is an in-memory kv.Store for testing.
//
// Failures can be injected with FailGets and FailSets, and writes can be
// held open with Hold/Release to observe what happens while a save is in
// flight.
type FakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes []string
	getErr error
	setErr error
	held   chan struct{}
	closed bool
	gets   int

	// Started receives the value of every Set call as it begins.
	Started chan string
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		data:    make(map[string]string),
		Started: make(chan string, 256),
	}
}

// Put seeds a value without recording a write.
func (f *FakeStore) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Value returns the stored value for key.
func (f *FakeStore) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Writes returns every value successfully written, in order.
func (f *FakeStore) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.writes))
	copy(out, f.writes)
	return out
}

// Gets returns how many times Get was called.
func (f *FakeStore) Gets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

// FailGets makes Get return err (nil clears it).
func (f *FakeStore) FailGets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailSets makes Set return err (nil clears it).
func (f *FakeStore) FailSets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

// Hold makes subsequent Set calls block until Release.
func (f *FakeStore) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held == nil {
		f.held = make(chan struct{})
	}
}

// Release unblocks Set calls waiting on Hold.
func (f *FakeStore) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held != nil {
		close(f.held)
		f.held = nil
	}
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Get implements kv.Store.
func (f *FakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements kv.Store.
func (f *FakeStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	held := f.held
	f.mu.Unlock()

	select {
	case f.Started <- value:
	default:
	}

	if held != nil {
		select {
		case <-held:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.writes = append(f.writes, value)
	return nil
}

// Close implements kv.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
