package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todo/internal/task"
)

// TaskRef is a parsed reference to a task: either its 1-based position in
// the list or its id.
type TaskRef struct {
	Num int    // 1-based display number, 0 when ID is set
	ID  string // task id, "" when Num is set

	token string // the token as typed
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// An all-digit token is a display number; anything else is taken as a task
// id. Digits too large for an int are taken as an id. Exactly one token is
// accepted.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	tok := strings.TrimSpace(args[0])
	if isAllDigits(tok) {
		if num, err := strconv.Atoi(tok); err == nil {
			return TaskRef{Num: num, token: tok}, nil
		}
	}
	return TaskRef{ID: tok, token: tok}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Resolve returns the id ref points at within tasks.
// A number inside the list names that position. A number outside it may
// still be a numeric id (lists written by older clients use timestamps);
// otherwise it is an error. An id is returned as given even if no task has
// it; toggling or deleting it is then a no-op.
func (ref TaskRef) Resolve(tasks []task.Task) (string, error) {
	if ref.ID != "" {
		return ref.ID, nil
	}
	if ref.Num >= 1 && ref.Num <= len(tasks) {
		return tasks[ref.Num-1].ID, nil
	}
	for _, t := range tasks {
		if ref.token != "" && t.ID == ref.token {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("task number out of range: %d", ref.Num)
}
