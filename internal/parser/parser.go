package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

// Result is the structured payload recovered from a model response.
type Result struct {
	Score   float64
	Summary string
	Issues  []IssueStub
}

// IssueStub is one issue as reported by the model, before it is merged
// into the report. Missing fields are filled with defaults during parsing
// so consumers never need nil-checks.
type IssueStub struct {
	Title       string
	Severity    report.Severity
	Categories  []report.Category
	Description string
	Impact      string
	Fix         string
	WCAGRef     string
}

// ParseError reports that no JSON object could be recovered from a model
// response. Callers are expected to fall back to the rule-based analyzer.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no parseable JSON object in model response (%d bytes)", len(e.Raw))
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Parse extracts a Result from free-form model output. Three recovery
// strategies run in order, first success wins: the whole text as JSON, the
// contents of a fenced code block, then the first balanced {...} span.
func Parse(text string) (*Result, error) {
	trimmed := strings.TrimSpace(text)

	if r, ok := tryDecode(trimmed); ok {
		return r, nil
	}

	if match := fencedBlock.FindStringSubmatch(trimmed); match != nil {
		if r, ok := tryDecode(strings.TrimSpace(match[1])); ok {
			return r, nil
		}
	}

	if span := firstObjectSpan(trimmed); span != "" {
		if r, ok := tryDecode(span); ok {
			return r, nil
		}
	}

	return nil, &ParseError{Raw: text}
}

// rawResult mirrors the response schema the prompts ask for. The summary
// may arrive under either key depending on the prompt variant.
type rawResult struct {
	Score          *float64   `json:"score"`
	Summary        string     `json:"summary"`
	ScoreReasoning string     `json:"score_reasoning"`
	Issues         []rawIssue `json:"issues"`
}

type rawIssue struct {
	Title       string   `json:"title"`
	Severity    string   `json:"severity"`
	Categories  []string `json:"categories"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Fix         string   `json:"fix"`
	WCAGRef     string   `json:"wcag_ref"`
}

func tryDecode(candidate string) (*Result, bool) {
	if candidate == "" || candidate[0] != '{' {
		return nil, false
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, false
	}
	if raw.Score == nil {
		// A JSON object without a score is some other payload, not an
		// analysis result; let the next recovery strategy try.
		return nil, false
	}

	result := &Result{
		Score:   *raw.Score,
		Summary: raw.Summary,
	}
	if result.Summary == "" {
		result.Summary = raw.ScoreReasoning
	}

	for _, issue := range raw.Issues {
		result.Issues = append(result.Issues, normalizeIssue(issue))
	}

	return result, true
}

func normalizeIssue(raw rawIssue) IssueStub {
	stub := IssueStub{
		Title:       raw.Title,
		Severity:    normalizeSeverity(raw.Severity),
		Description: raw.Description,
		Impact:      raw.Impact,
		Fix:         raw.Fix,
		WCAGRef:     raw.WCAGRef,
	}

	names := raw.Categories
	if len(names) == 0 && raw.Category != "" {
		names = []string{raw.Category}
	}
	for _, name := range names {
		stub.Categories = append(stub.Categories, normalizeCategory(name))
	}
	if len(stub.Categories) == 0 {
		stub.Categories = []report.Category{report.CategoryGeneral}
	}

	return stub
}

func normalizeSeverity(s string) report.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return report.SeverityCritical
	case "major", "high", "serious":
		return report.SeverityMajor
	default:
		return report.SeverityMinor
	}
}

func normalizeCategory(s string) report.Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wcag", "accessibility", "a11y":
		return report.CategoryWCAG
	case "ux", "usability", "psychological", "psychology":
		return report.CategoryUX
	case "visual_design", "visual design", "design":
		return report.CategoryVisualDesign
	case "seo":
		return report.CategorySEO
	case "performance":
		return report.CategoryPerformance
	default:
		return report.CategoryGeneral
	}
}

// firstObjectSpan returns the first brace-balanced {...} substring,
// tracking string literals so braces inside values don't break the count.
func firstObjectSpan(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}
