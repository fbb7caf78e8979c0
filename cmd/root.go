package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "secureflow",
	Short: "DevSecOps security scanner orchestrator",
	Long: `SecureFlow runs static analysis (semgrep), dependency scanning (trivy)
and secret detection (trufflehog) against a target, normalizes the three
incompatible output formats into one canonical report, and serves the
results in the terminal or a web dashboard.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
