package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat"},
	Short:   "Print task and project statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.store.Close(cmd.Context())

		taskStats, err := a.tasks.GetStats(cmd.Context())
		if err != nil {
			return err
		}
		projectStats, err := a.projects.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		return printJSON(map[string]any{
			"tasks":    taskStats,
			"projects": projectStats,
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
