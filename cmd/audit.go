package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a11yauditor/a11y-auditor/internal/audit"
	"github.com/a11yauditor/a11y-auditor/internal/config"
	"github.com/a11yauditor/a11y-auditor/internal/fetch"
	"github.com/a11yauditor/a11y-auditor/internal/llmclient"
	"github.com/a11yauditor/a11y-auditor/internal/report"
)

var auditCmd = &cobra.Command{
	Use:   "audit <url|file.html>",
	Short: "Audit a web page for accessibility issues",
	Long: `Audit a web page for accessibility issues. The argument may be a URL,
which is fetched, or a local HTML file.

With screenshots supplied via --screenshot, the audit additionally runs a
vision analysis and combines both signal sources into the final score.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

var (
	screenshotPaths []string
	noModel         bool
	failUnder       int
)

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringArrayVar(&screenshotPaths, "screenshot", nil, "screenshot image file for vision analysis (repeatable)")
	auditCmd.Flags().BoolVar(&noModel, "no-model", false, "skip the model call and use rule-based analysis only")
	auditCmd.Flags().IntVar(&failUnder, "fail-under", 0, "exit with non-zero code if the score is below this value")
}

func runAudit(cmd *cobra.Command, args []string) error {
	auditContext, err := setupAuditContext(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := performAudit(cmd.Context(), auditContext)
	if err != nil {
		return err
	}

	if err := outputResults(cmd, result, auditContext.verbose); err != nil {
		return err
	}

	if failUnder > 0 && result.Score < failUnder {
		os.Exit(1)
	}
	return nil
}

type auditContext struct {
	target  string
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
}

func setupAuditContext(cmd *cobra.Command, target string) (*auditContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	return &auditContext{
		target:  target,
		cfg:     cfg,
		logger:  newLogger(verbose),
		verbose: verbose,
	}, nil
}

func performAudit(ctx context.Context, auditContext *auditContext) (*report.Report, error) {
	input, err := resolveInput(ctx, auditContext)
	if err != nil {
		return nil, err
	}

	if auditContext.verbose {
		fmt.Printf("Auditing: %s\n", auditContext.target)
		fmt.Printf("HTML: %d bytes | Screenshots: %d\n", len(input.HTML), len(input.Images))
		fmt.Println("Running accessibility analysis...")
	}

	var completer audit.Completer
	if !noModel && auditContext.cfg.LLM.APIKey != "" {
		completer = llmclient.New(&auditContext.cfg.LLM, auditContext.logger)
	}

	auditor := audit.New(completer, &auditContext.cfg.Analysis, auditContext.logger)
	return auditor.Audit(ctx, input), nil
}

// resolveInput treats an existing local path as an HTML file and anything
// else as a URL to fetch. Screenshot files are loaded alongside.
func resolveInput(ctx context.Context, auditContext *auditContext) (audit.Input, error) {
	input := audit.Input{}

	if info, err := os.Stat(auditContext.target); err == nil && !info.IsDir() {
		data, err := os.ReadFile(auditContext.target)
		if err != nil {
			return input, fmt.Errorf("failed to read HTML file %s: %w", auditContext.target, err)
		}
		input.HTML = string(data)
		input.URL = filepath.Base(auditContext.target)
	} else if looksLikeURL(auditContext.target) {
		fetcher := fetch.New(&auditContext.cfg.Fetch)
		html, err := fetcher.Fetch(ctx, auditContext.target)
		if err != nil {
			return input, fmt.Errorf("failed to fetch page: %w", err)
		}
		input.HTML = html
		input.URL = fetch.NormalizeURL(auditContext.target)
	} else if len(screenshotPaths) == 0 {
		return input, fmt.Errorf("target %s is neither an existing file nor a URL", auditContext.target)
	}

	for _, path := range screenshotPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("failed to read screenshot %s: %w", path, err)
		}
		input.Images = append(input.Images, data)
	}

	return input, nil
}

func looksLikeURL(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.Contains(target, ".")
}

func outputResults(cmd *cobra.Command, result *report.Report, verbose bool) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	formatter := report.GetFormatter(formatFlag)

	output, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		if err := writeOutputToFile(output, outputPath); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if verbose {
			fmt.Printf("Report written to: %s\n", outputPath)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

func writeOutputToFile(content, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0644)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
