package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "skillpath",
	Short: "Learn skills one step at a time",
	Long:  "SkillPath is a terminal app for mastering skills through short, sequential lessons and quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		return app.Run(app.Options{
			Catalog:  svc.catalog,
			Progress: svc.progress,
			Rewards:  svc.rewards,
			Bus:      svc.bus,
			Log:      svc.log,
		})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLPATH_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Progress backend: sqlite, redis or memory (overrides SKILLPATH_BACKEND)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a JSON skill catalog (overrides SKILLPATH_CATALOG)")

	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
