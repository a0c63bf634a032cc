package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

// The helpers below carry out one user intent each. They are shared by the
// one-shot commands and the interactive shell.

func addTask(cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	t, ok := svc.Add(text)
	if !ok {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	cfg.Logger().Debug("task added", "id", t.ID)
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// mutateTask resolves a task reference and applies fn to the id it names.
func mutateTask(cfg *config.Config, svc service.Service, args []string, fn func(id string) bool, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	id, err := ref.Resolve(svc.List())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !fn(id) {
		// Unknown ids are a silent no-op.
		cfg.Logger().Debug("no task with id", "id", id)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func toggleTask(cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return mutateTask(cfg, svc, args, svc.Toggle, out, errOut)
}

func removeTask(cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return mutateTask(cfg, svc, args, svc.Delete, out, errOut)
}

// printTasks renders the list. With openOnly, completed tasks are hidden
// but the remaining ones keep their numbers so refs stay valid.
func printTasks(cfg *config.Config, svc service.Service, openOnly, summary bool, out io.Writer) int {
	tasks := svc.List()

	var printed bool
	if openOnly {
		for i, t := range tasks {
			if !t.Completed {
				output.FormatTask(out, i+1, t)
				printed = true
			}
		}
	} else {
		printed = output.FormatTasks(out, tasks)
	}

	if !printed {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.EmptyMessage)
		}
		return exitcode.Success
	}
	if summary {
		output.FormatSummary(out, tasks)
	}
	return exitcode.Success
}
