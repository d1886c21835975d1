package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/ui/style"
)

func (c *CLI) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <user|group|device> <entity> <group>",
		Short: "Add an entity to a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Add(cmd.Context(), kind, args[1], args[2]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s added %s to %s\n", style.Check, args[1], args[2])
			return nil
		},
	}
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user|group|device> <entity> <group>",
		Short: "Remove an entity from a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Remove(cmd.Context(), kind, args[1], args[2]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s from %s\n", style.Check, args[1], args[2])
			return nil
		},
	}
}

func (c *CLI) newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <user|group|device> <entity> <group>",
		Short: "Move an entity into a group, leaving its other groups",
		Long: "Move adds the entity to the target group first, then removes it " +
			"from every other group it is a direct member of. Removals that fail " +
			"are reported individually; the add is never rolled back.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			report, err := c.app.Move(cmd.Context(), kind, args[1], args[2])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s added %s to %s\n", style.Check, args[1], args[2])
			for _, rem := range report.Removed {
				if rem.OK {
					_, _ = fmt.Fprintf(out, "%s removed from %s\n", style.Check, rem.GroupID)
				} else {
					_, _ = fmt.Fprintf(out, "%s failed to remove from %s: %v\n", style.Cross, rem.GroupID, rem.Err)
				}
			}
			if !report.AllRemoved() {
				_, _ = fmt.Fprintf(out, "%s move incomplete: the entity is still a member of some source groups\n", style.Warning)
			}
			return nil
		},
	}
}
