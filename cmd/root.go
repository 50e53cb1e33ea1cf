package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "a11y-auditor",
	Short: "A CLI tool for auditing web page accessibility",
	Long: `a11y-auditor analyzes a web page's accessibility by combining structural
HTML analysis with an AI model review, producing a weighted 0-100 score
with per-category breakdowns and a prioritized issue list.

When the model service is unavailable the audit falls back to a
deterministic, rule-based analysis of the page structure.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("a11y-auditor - Use 'a11y-auditor help' for available commands")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is .a11yaudit.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "table", "output format (table, json, markdown)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("a11y-auditor version %s\n", Version)
		},
	})
}
