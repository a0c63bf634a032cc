package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExporterFactory creates the exporter used by the export command.
type ExporterFactory func(ctx context.Context, cfg *config.Config) (service.Exporter, error)

// ExportCmd implements the export command: a one-way copy of the local
// list into a Google Tasks list.
type ExportCmd struct {
	list    string
	factory ExporterFactory
}

// SetList sets the --list flag (for testing).
func (c *ExportCmd) SetList(list string) {
	c.list = list
}

// SetFactory replaces the exporter factory (for testing).
func (c *ExportCmd) SetFactory(f ExporterFactory) {
	c.factory = f
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Copy tasks to a Google Tasks list" }
func (c *ExportCmd) Usage() string     { return "todo export [--list <name>]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.list, "list", "", "")
	fs.StringVar(&c.list, "l", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	listName := strings.TrimSpace(c.list)
	if listName == "" {
		listName = cfg.ExportList
	}

	factory := c.factory
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
			return exitcode.AuthError
		}
		factory = newGoogleExporter
	}

	exp, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	tasks := svc.List()
	n, err := exp.Export(ctx, listName, tasks)
	if err != nil {
		cfg.Logger().Warn("export failed", "list", listName, "exported", n, "err", err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", n, listName)
	}
	return exitcode.Success
}

func newGoogleExporter(ctx context.Context, cfg *config.Config) (service.Exporter, error) {
	return googletasks.New(ctx, cfg)
}
