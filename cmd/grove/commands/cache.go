package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lookup cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print cache hit, miss, and entry counts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			stats := c.app.CacheStats()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "hits: %d\nmisses: %d\nentries: %d\nbytes: %d\n",
				stats.Hits, stats.Misses, stats.Entries, stats.TotalBytes)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached directory entry",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			c.app.ClearCache()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		},
	})

	return cmd
}
