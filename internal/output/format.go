// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

// EmptyMessage is printed when there are no tasks to show.
const EmptyMessage = "no tasks"

// FormatTask formats one task line.
// Format: "{N:>4}  [ ] {TEXT}\n", with [x] for completed tasks.
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(t.Completed), normalizeText(t.Text))
}

// FormatTasks formats the whole list, numbered from 1.
// Returns false if there was nothing to print.
func FormatTasks(w io.Writer, tasks []task.Task) bool {
	for i, t := range tasks {
		FormatTask(w, i+1, t)
	}
	return len(tasks) > 0
}

// FormatSummary formats the open/done counts, e.g. "2 open, 1 done".
func FormatSummary(w io.Writer, tasks []task.Task) {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	fmt.Fprintf(w, "%d open, %d done\n", len(tasks)-done, done)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText keeps a task on one line.
// Stored text can contain newlines (e.g. data written by another client).
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
