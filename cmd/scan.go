package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/secureflow/pkg/config"
	"github.com/user/secureflow/pkg/logging"
	"github.com/user/secureflow/pkg/render"
	"github.com/user/secureflow/pkg/scan"
	"github.com/user/secureflow/pkg/store"
)

var (
	scanTarget   string
	scanScanners string
	scanShowAll  bool
	scanNoSave   bool
	scanJSON     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the security scanners and produce a unified report",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.New(DebugMode)
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		scanners, err := scan.ParseScanners(scanScanners)
		if err != nil {
			return err
		}

		st := store.New(cfg.ScanDir)
		opts := scan.Options{
			Target:   scanTarget,
			Scanners: scanners,
			Save:     !scanNoSave,
		}

		report, err := scan.Run(context.Background(), opts, st, log)
		if err != nil {
			return err
		}

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		render.Report(os.Stdout, report, scanShowAll)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanTarget, "target", "t", ".", "Target path to scan")
	scanCmd.Flags().StringVarP(&scanScanners, "scanner", "s", "all", "Scanners to run (semgrep,trivy,trufflehog or all)")
	scanCmd.Flags().BoolVar(&scanShowAll, "all", false, "Show all findings instead of the top 20")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false, "Skip persisting the report snapshot")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the raw report as JSON")
	rootCmd.AddCommand(scanCmd)
}
