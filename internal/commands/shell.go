package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ShellCmd{})
}

const shellHelp = `Commands:
  add <text...>       add a task
  toggle <ref>        mark a task completed, or open again
  rm <ref>            delete a task
  list                list tasks
  help                show this help
  quit                leave the shell
`

// ShellCmd implements the interactive shell. One task list stays loaded
// for the whole session; every change is saved in the background.
type ShellCmd struct {
	in io.Reader
}

// SetInput replaces stdin (for testing).
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Edit tasks interactively" }
func (c *ShellCmd) Usage() string     { return "todo shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.in
	if in == nil {
		in = os.Stdin
	}

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		if !cfg.Quiet {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		verb, rest := fields[0], fields[1:]

		switch verb {
		case "add", "create":
			// The text is kept as typed, inner spacing included.
			text := strings.TrimSpace(strings.TrimPrefix(line, verb))
			addTask(cfg, svc, []string{text}, out, errOut)
		case "toggle", "done":
			toggleTask(cfg, svc, rest, out, errOut)
		case "rm", "delete":
			removeTask(cfg, svc, rest, out, errOut)
		case "list", "ls":
			printTasks(cfg, svc, false, false, out)
		case "help", "?":
			fmt.Fprint(out, shellHelp)
		case "quit", "exit":
			return exitcode.Success
		default:
			fmt.Fprintf(errOut, "error: unknown command: %s\n", verb)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out)
	}
	return exitcode.Success
}
