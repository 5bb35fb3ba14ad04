package cmd

import (
	"context"
	"fmt"
	"log"

	"inventory-sync/core/config"
	"inventory-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one synchronization and exit",
	Long: `Fetches device records from every configured source, consolidates
them and pushes the result into the device registry. Exits non-zero
when every device push failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := context.Background()
		a := buildApp(ctx, cfg, logg)
		report := a.run(ctx)

		if report.Summary.Devices > 0 && report.Summary.Failed == report.Summary.Devices {
			return fmt.Errorf("all %d devices failed to sync", report.Summary.Failed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
