package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/secureflow/pkg/config"
	"github.com/user/secureflow/pkg/engine"
	"github.com/user/secureflow/pkg/render"
	"github.com/user/secureflow/pkg/store"
)

var (
	reportID      string
	reportShowAll bool
	reportList    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a persisted scan report (latest by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		st := store.New(cfg.ScanDir)

		if reportList {
			entries, err := st.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No scan reports found.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("  %s  %-30s  %3d findings (%d critical, %d high)  id=%s\n",
					e.FinishedAt.Format("2006-01-02 15:04:05"), e.Target, e.Total, e.Critical, e.High, e.ID)
			}
			return nil
		}

		var report *engine.ScanReport
		if reportID == "" {
			report, err = st.LoadLatest()
		} else {
			report, err = st.LoadByID(reportID)
		}
		if err != nil {
			return err
		}

		render.Report(os.Stdout, report, reportShowAll)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportID, "id", "", "Report id to show (default: latest)")
	reportCmd.Flags().BoolVar(&reportShowAll, "all", false, "Show all findings instead of the top 20")
	reportCmd.Flags().BoolVarP(&reportList, "list", "l", false, "List stored reports instead of rendering one")
	rootCmd.AddCommand(reportCmd)
}
