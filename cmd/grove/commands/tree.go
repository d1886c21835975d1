package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/ui/output"
)

func (c *CLI) newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <user|group|device> <id|name>",
		Short: "Print the membership tree for an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			depth, _ := cmd.Flags().GetInt("depth")

			tree, err := c.app.BuildTree(cmd.Context(), kind, args[1], depth)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), output.RenderTree(tree, c.app.Expanded()))
			return nil
		},
	}
	cmd.Flags().IntP("depth", "d", 1, "How many membership levels to expand")
	return cmd
}
