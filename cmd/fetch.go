package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"inventory-sync/core/config"
	"inventory-sync/core/logger"
	"inventory-sync/feature/fortigate"
	"inventory-sync/feature/intune"
	"inventory-sync/feature/nagios"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Dump raw source records as JSON",
	Long: `Fetches every configured source and prints its unprocessed records
to stdout as one JSON document keyed by source name. Intended for
debugging source connectivity and field mappings; nothing is pushed
to the registry.`,
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

		records := fetchRaw(context.Background(), cfg, logg)

		body, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
		return nil
	},
}

// fetchRaw collects each enabled source's records exactly as the source
// reports them, keyed by source name. A failing source is logged and
// left out instead of aborting the dump.
func fetchRaw(ctx context.Context, cfg *config.Config, log *zap.Logger) map[string]any {
	out := make(map[string]any)

	if cfg.Sources.Intune.Enabled {
		if client, err := intune.Connect(ctx, cfg.Sources.Intune); err != nil {
			log.Warn("intune fetch skipped", zap.Error(err))
		} else if devices, err := client.FetchDevices(ctx); err != nil {
			log.Warn("intune fetch failed", zap.Error(err))
		} else {
			out[intune.SourceName] = devices
		}
	}

	if cfg.Sources.Fortigate.Enabled {
		if client, err := fortigate.NewClient(cfg.Sources.Fortigate); err != nil {
			log.Warn("fortigate fetch skipped", zap.Error(err))
		} else if devices, err := client.FetchDevices(ctx); err != nil {
			log.Warn("fortigate fetch failed", zap.Error(err))
		} else {
			out[fortigate.SourceName] = devices
		}
	}

	if cfg.Sources.Nagios.Enabled {
		client := nagios.NewClient(cfg.Sources.Nagios)
		if hosts, err := client.FetchHosts(ctx); err != nil {
			log.Warn("nagios fetch failed", zap.Error(err))
		} else {
			out[nagios.SourceName] = hosts
		}
	}

	return out
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}
