package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

type Formatter interface {
	Format(report *Report) (string, error)
}

type TableFormatter struct {
	colorize bool
}

func NewTableFormatter(colorize bool) *TableFormatter {
	return &TableFormatter{colorize: colorize}
}

func (f *TableFormatter) Format(report *Report) (string, error) {
	var output strings.Builder

	if f.colorize {
		color.Set(color.FgCyan, color.Bold)
	}
	output.WriteString(fmt.Sprintf("Accessibility Report - %s\n", subjectLine(report)))
	output.WriteString(fmt.Sprintf("Analysis source: %s | Completed at: %s (took %s)\n\n",
		report.Source, report.Timestamp.Format("2006-01-02 15:04:05"), report.Duration))
	if f.colorize {
		color.Unset()
	}

	f.writeScore(&output, report)
	f.writeCategories(&output, &report.Categories)
	f.writeMetrics(&output, report.Metrics)
	f.writeWarnings(&output, report.Warnings)

	if report.Summary != "" {
		output.WriteString(fmt.Sprintf("\nSummary: %s\n", report.Summary))
	}

	if len(report.Issues) > 0 {
		output.WriteString("\nIssues Found:\n")
		f.writeIssues(&output, report.Issues)
	} else {
		output.WriteString("\n")
		if f.colorize {
			color.Set(color.FgGreen, color.Bold)
		}
		output.WriteString("✅ No accessibility issues found!\n")
		if f.colorize {
			color.Unset()
		}
	}

	return output.String(), nil
}

func (f *TableFormatter) writeScore(output *strings.Builder, report *Report) {
	if f.colorize {
		color.Set(color.FgYellow, color.Bold)
	}
	output.WriteString("Overall:\n")
	if f.colorize {
		color.Unset()
	}
	output.WriteString(fmt.Sprintf("  Accessibility Score: %d/100 (Grade: %s)\n", report.Score, report.Grade))
	output.WriteString(fmt.Sprintf("  Total Issues: %d\n", len(report.Issues)))
}

func (f *TableFormatter) writeCategories(output *strings.Builder, scores *CategoryScores) {
	output.WriteString("\nCategory Scores:\n")
	output.WriteString(fmt.Sprintf("  WCAG Compliance: %d/100\n", scores.WCAG))
	output.WriteString(fmt.Sprintf("  UX / Psychology: %d/100\n", scores.UX))
	output.WriteString(fmt.Sprintf("  Visual Design:   %d/100\n", scores.VisualDesign))
	output.WriteString(fmt.Sprintf("  SEO:             %d/100\n", scores.SEO))
	output.WriteString(fmt.Sprintf("  Performance:     %d/100\n", scores.Performance))
}

func (f *TableFormatter) writeMetrics(output *strings.Builder, m *Metrics) {
	if m == nil {
		return
	}

	output.WriteString("\nStructural Metrics:\n")
	output.WriteString(fmt.Sprintf("  Images: %d (%d missing alt text)\n", m.ImagesTotal, m.ImagesWithoutAlt))
	output.WriteString(fmt.Sprintf("  Headings: %d H1, %d H2, %d H3, %d H4, %d H5, %d H6\n",
		m.Headings.H1, m.Headings.H2, m.Headings.H3, m.Headings.H4, m.Headings.H5, m.Headings.H6))
	output.WriteString(fmt.Sprintf("  Forms: %d | Tables: %d | Videos: %d\n", m.Forms, m.Tables, m.Videos))
	output.WriteString(fmt.Sprintf("  ARIA landmarks: %d\n", m.ARIALandmarks))
	output.WriteString(fmt.Sprintf("  Buttons without text: %d | Links without text: %d\n",
		m.ButtonsWithoutText, m.LinksWithoutText))
	output.WriteString(fmt.Sprintf("  Skip link: %t | Language attribute: %t\n", m.HasSkipLink, m.HasLang))
}

func (f *TableFormatter) writeWarnings(output *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	output.WriteString("\n")
	if f.colorize {
		color.Set(color.FgYellow)
	}
	output.WriteString("Warnings:\n")
	for _, warning := range warnings {
		output.WriteString(fmt.Sprintf("  - %s\n", warning))
	}
	if f.colorize {
		color.Unset()
	}
}

func (f *TableFormatter) writeIssues(output *strings.Builder, issues []Issue) {
	for i, issue := range issues {
		if i > 0 {
			output.WriteString("\n")
		}

		severity := strings.ToUpper(string(issue.Severity))
		if f.colorize {
			if severityColor := f.getSeverityColor(issue.Severity); severityColor != nil {
				severity = severityColor.Sprint(severity)
			}
		}

		output.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", severity, issue.Title, joinCategories(issue.Categories)))
		if issue.Description != "" {
			output.WriteString(fmt.Sprintf("    Issue:  %s\n", issue.Description))
		}
		if issue.Impact != "" {
			output.WriteString(fmt.Sprintf("    Impact: %s\n", issue.Impact))
		}
		if issue.Fix != "" {
			output.WriteString(fmt.Sprintf("    Fix:    %s\n", issue.Fix))
		}
		if issue.WCAGRef != "" {
			output.WriteString(fmt.Sprintf("    WCAG:   %s\n", issue.WCAGRef))
		}
	}
}

func (f *TableFormatter) getSeverityColor(severity Severity) *color.Color {
	switch severity {
	case SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case SeverityMajor:
		return color.New(color.FgYellow)
	case SeverityMinor:
		return color.New(color.FgBlue)
	default:
		return nil
	}
}

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return string(data), nil
}

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (f *MarkdownFormatter) Format(report *Report) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Accessibility Report - %s\n\n", subjectLine(report)))
	output.WriteString(fmt.Sprintf("**Analysis source:** %s | **Completed:** %s (took %s)\n\n",
		report.Source, report.Timestamp.Format("2006-01-02 15:04:05"), report.Duration))

	output.WriteString("## Summary\n\n")
	output.WriteString(fmt.Sprintf("- **Accessibility Score:** %d/100 (Grade: %s)\n", report.Score, report.Grade))
	output.WriteString(fmt.Sprintf("- **Total Issues:** %d\n\n", len(report.Issues)))
	if report.Summary != "" {
		output.WriteString(report.Summary + "\n\n")
	}

	output.WriteString("## Category Scores\n\n")
	output.WriteString("| Category | Score |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| WCAG Compliance | %d |\n", report.Categories.WCAG))
	output.WriteString(fmt.Sprintf("| UX / Psychology | %d |\n", report.Categories.UX))
	output.WriteString(fmt.Sprintf("| Visual Design | %d |\n", report.Categories.VisualDesign))
	output.WriteString(fmt.Sprintf("| SEO | %d |\n", report.Categories.SEO))
	output.WriteString(fmt.Sprintf("| Performance | %d |\n\n", report.Categories.Performance))

	if len(report.Warnings) > 0 {
		output.WriteString("## Warnings\n\n")
		for _, warning := range report.Warnings {
			output.WriteString(fmt.Sprintf("- %s\n", warning))
		}
		output.WriteString("\n")
	}

	if len(report.Issues) > 0 {
		output.WriteString("## Issues Found\n\n")
		f.writeIssuesMarkdown(&output, report.Issues)
	} else {
		output.WriteString("## ✅ No Issues Found\n\nThis page looks accessible!\n")
	}

	return output.String(), nil
}

func (f *MarkdownFormatter) writeIssuesMarkdown(output *strings.Builder, issues []Issue) {
	for _, issue := range issues {
		output.WriteString(fmt.Sprintf("### %s %s\n\n", f.getSeverityBadge(issue.Severity), issue.Title))
		if issue.Description != "" {
			output.WriteString(fmt.Sprintf("**Description:** %s\n\n", issue.Description))
		}
		if issue.Impact != "" {
			output.WriteString(fmt.Sprintf("**User Impact:** %s\n\n", issue.Impact))
		}
		if issue.Fix != "" {
			output.WriteString(fmt.Sprintf("**Suggested Fix:** %s\n\n", issue.Fix))
		}
		if issue.WCAGRef != "" {
			output.WriteString(fmt.Sprintf("**WCAG Criterion:** %s\n\n", issue.WCAGRef))
		}
		output.WriteString(fmt.Sprintf("**Categories:** %s\n\n", joinCategories(issue.Categories)))
		output.WriteString("---\n\n")
	}
}

func (f *MarkdownFormatter) getSeverityBadge(severity Severity) string {
	switch severity {
	case SeverityCritical:
		return "🔴 **CRITICAL**"
	case SeverityMajor:
		return "🟠 **MAJOR**"
	case SeverityMinor:
		return "🔵 **MINOR**"
	default:
		return "⚪ **UNKNOWN**"
	}
}

func GetFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	case "table":
		fallthrough
	default:
		return NewTableFormatter(isTerminal())
	}
}

func subjectLine(report *Report) string {
	if report.URL != "" {
		return report.URL
	}
	return "local document"
}

func joinCategories(categories []Category) string {
	if len(categories) == 0 {
		return string(CategoryGeneral)
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, string(category))
	}
	return strings.Join(names, ", ")
}

func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return fileInfo.Mode()&os.ModeCharDevice != 0
}
