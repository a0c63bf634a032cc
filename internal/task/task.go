// Package task defines the to-do item model and the ordered in-memory
// collection that holds it while the program runs.
package task

import (
	"strings"

	"github.com/google/uuid"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewID returns a fresh random task id.
func NewID() string {
	return uuid.NewString()
}

// normalizeText trims surrounding whitespace from user input and replaces
// invalid UTF-8 with U+FFFD, so the stored JSON decodes back to the same
// text. An empty result means the input must be rejected.
func normalizeText(text string) string {
	return strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))
}
