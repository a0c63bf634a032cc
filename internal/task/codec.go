package task

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned by Decode when a stored blob cannot be turned
// into a valid collection.
var ErrMalformed = errors.New("malformed task data")

// Encode serializes the collection as a JSON array of
// {"id","text","completed"} records, in order.
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a blob written by Encode. Missing fields take their zero
// value and unknown fields are ignored. Invalid JSON, empty ids and
// duplicate ids are reported as ErrMalformed.
func Decode(blob string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(blob), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: task %d has no id", ErrMalformed, i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrMalformed, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
