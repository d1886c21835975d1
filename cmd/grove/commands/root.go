// Package commands implements the CLI commands for the grove directory
// explorer.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/build"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for grove.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	BuildTree(ctx context.Context, kind domain.Kind, query string, depth int) (*domain.TreeNode, error)
	Expanded() domain.ExpandedSet
	Explore(ctx context.Context, kind domain.Kind, query string) error
	Add(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) error
	Remove(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) error
	Move(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) (domain.MoveReport, error)
	List(ctx context.Context, kind domain.Kind, search string) ([]domain.Entity, error)
	CacheStats() cache.Stats
	ClearCache()
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "grove",
		Short:         "Explore and reshape Entra ID group memberships",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newExploreCmd())
	rootCmd.AddCommand(c.newTreeCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newMoveCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func parseKind(arg string) (domain.Kind, error) {
	switch arg {
	case "user":
		return domain.KindUser, nil
	case "group":
		return domain.KindGroup, nil
	case "device":
		return domain.KindDevice, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrEntityNotFound, "unknown kind"), "kind", arg)
	}
}
