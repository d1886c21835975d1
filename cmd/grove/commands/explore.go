package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <user|group|device> <id|name>",
		Short: "Explore memberships interactively",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			return c.app.Explore(cmd.Context(), kind, args[1])
		},
	}
}
