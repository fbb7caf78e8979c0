package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/secureflow/pkg/engine"
	"github.com/user/secureflow/pkg/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the external scanner binaries are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		allInstalled := true
		for _, sc := range engine.AllScanners() {
			name := runner.Binary(sc)
			if runner.Installed(sc) {
				fmt.Printf("  [ok]      %s\n", name)
			} else {
				fmt.Printf("  [missing] %s\n", name)
				allInstalled = false
			}
		}
		if !allInstalled {
			return fmt.Errorf("some scanner binaries are missing; scans will mark them as failed")
		}
		fmt.Println("All scanner tools ready.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
