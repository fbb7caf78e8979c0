package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/secureflow/pkg/advisor"
	"github.com/user/secureflow/pkg/config"
	"github.com/user/secureflow/pkg/engine"
	"github.com/user/secureflow/pkg/store"
)

var explainID string

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Ask the configured AI provider for remediation advice on a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		st := store.New(cfg.ScanDir)
		var report *engine.ScanReport
		if explainID == "" {
			report, err = st.LoadLatest()
		} else {
			report, err = st.LoadByID(explainID)
		}
		if err != nil {
			return err
		}

		providerName := cfg.SelectedProvider
		if providerName == "" {
			providerName = "gemini"
		}
		apiKey := cfg.GetAPIKey(providerName)
		if apiKey == "" && providerName == "gemini" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("no API key for %s; run 'secureflow config setup' first", providerName)
		}

		ctx := context.Background()
		provider, err := advisor.NewProvider(ctx, providerName, apiKey, cfg.SelectedModel)
		if err != nil {
			return fmt.Errorf("creating AI provider: %w", err)
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		fmt.Printf("Asking %s for remediation advice...\n\n", providerName)
		advice, err := advisor.Advise(ctx, provider, report)
		if err != nil {
			return err
		}
		fmt.Println(advice)
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainID, "id", "", "Report id to explain (default: latest)")
	rootCmd.AddCommand(explainCmd)
}
