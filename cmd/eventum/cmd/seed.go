package cmd

import (
	"fmt"

	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/db"
	"github.com/eventum-io/eventum/internal/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Load fixture data",
	Long: `Load users and events from a JSON fixture file. Existing usernames
and event names are skipped, so seeding is safe to repeat.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.Log.Format, cfg.Log.Level)

		database, err := db.New(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Migrate(database); err != nil {
			return err
		}

		if err := db.SeedFromFile(database, args[0]); err != nil {
			return err
		}

		fmt.Println("Seed data loaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
