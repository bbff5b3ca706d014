package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"projecthub-backend/internal/seed"
)

var seedFlagReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample projects and tasks",
	Long: `Insert two sample projects and a set of tasks attached to them.

Examples:
  projecthub seed
  projecthub seed --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.store.Close(cmd.Context())

		result, err := seed.Run(cmd.Context(), a.projects, a.tasks, seedFlagReset)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedFlagReset, "reset", false, "Remove every task before seeding")
	rootCmd.AddCommand(seedCmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
