package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <user|group|device> [search]",
		Short: "List directory entities, optionally filtered by name prefix",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			search := ""
			if len(args) == 2 {
				search = args[1]
			}

			entities, err := c.app.List(cmd.Context(), kind, search)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entities {
				_, _ = fmt.Fprintf(out, "%s %s (%s)\n", style.KindIcon(string(e.EntityKind())), e.Label(), e.EntityID())
			}
			return nil
		},
	}
}
