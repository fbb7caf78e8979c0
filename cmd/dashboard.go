package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/secureflow/pkg/config"
	"github.com/user/secureflow/pkg/dashboard"
	"github.com/user/secureflow/pkg/logging"
	"github.com/user/secureflow/pkg/store"
)

var dashboardAddr string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the web dashboard over persisted scan reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; it overrides the config file for deployments.
		_ = godotenv.Load()

		log, err := logging.New(DebugMode)
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		addr := cfg.DashboardAddr
		if env := os.Getenv("SECUREFLOW_ADDR"); env != "" {
			addr = env
		}
		if dashboardAddr != "" {
			addr = dashboardAddr
		}

		scanDir := cfg.ScanDir
		if env := os.Getenv("SECUREFLOW_SCAN_DIR"); env != "" {
			scanDir = env
		}

		srv, err := dashboard.NewServer(store.New(scanDir), log)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(addr)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardAddr, "addr", "", "Listen address (default from config, e.g. :8080)")
	rootCmd.AddCommand(dashboardCmd)
}
