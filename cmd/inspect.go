package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a11yauditor/a11y-auditor/internal/config"
	"github.com/a11yauditor/a11y-auditor/internal/fetch"
	"github.com/a11yauditor/a11y-auditor/internal/metrics"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <url|file.html>",
	Short: "Print the structural accessibility metrics for a page",
	Long: `Extract and print the raw structural metrics (image alt coverage, heading
levels, ARIA landmarks, skip links, and so on) without running any model
analysis or scoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	target := args[0]

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var html string
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		data, err := os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("failed to read HTML file %s: %w", target, err)
		}
		html = string(data)
	} else {
		fetcher := fetch.New(&cfg.Fetch)
		html, err = fetcher.Fetch(cmd.Context(), target)
		if err != nil {
			return fmt.Errorf("failed to fetch page: %w", err)
		}
	}

	m := metrics.Extract(html)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
