package audit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/a11yauditor/a11y-auditor/internal/config"
	"github.com/a11yauditor/a11y-auditor/internal/metrics"
	"github.com/a11yauditor/a11y-auditor/internal/parser"
	"github.com/a11yauditor/a11y-auditor/internal/report"
	"github.com/a11yauditor/a11y-auditor/internal/scoring"
)

const reportVersion = "2.0.0"

// Completer is the outbound model collaborator. llmclient.Client satisfies
// it; tests substitute stubs.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	CompleteVision(ctx context.Context, system, prompt string, images [][]byte) (string, error)
}

// Input carries one audit request. HTML and Images are each optional, but
// at least one should be present for a meaningful report.
type Input struct {
	URL    string
	HTML   string
	Images [][]byte
}

type Auditor struct {
	completer Completer
	cfg       *config.AnalysisConfig
	logger    *slog.Logger
}

// New builds an Auditor. completer may be nil, in which case every audit
// runs on the rule-based path.
func New(completer Completer, cfg *config.AnalysisConfig, logger *slog.Logger) *Auditor {
	return &Auditor{
		completer: completer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Audit runs one audit request end to end and always returns a well-formed
// report: model transport errors and unparsable responses downgrade to the
// rule-based analyzer instead of failing the audit.
func (a *Auditor) Audit(ctx context.Context, input Input) *report.Report {
	start := time.Now()

	hasHTML := strings.TrimSpace(input.HTML) != ""
	images := input.Images
	if len(images) > a.cfg.MaxScreenshots {
		images = images[:a.cfg.MaxScreenshots]
	}
	hasVision := len(images) > 0

	if !hasHTML && !hasVision {
		return &report.Report{
			URL:       input.URL,
			Timestamp: start,
			Grade:     scoring.Grade(0),
			Issues:    []report.Issue{},
			Summary:   "No analyzable input was supplied.",
			Source:    report.SourceHTML,
			Warnings:  []string{"no HTML or screenshots supplied; nothing to analyze"},
			Duration:  time.Since(start).String(),
			Version:   reportVersion,
		}
	}

	var warnings []string
	var m report.Metrics
	siteType := "general"

	if hasHTML {
		m = metrics.Extract(input.HTML)
		siteType = DetectSiteType(input.URL, input.HTML)
		a.logger.Debug("structural metrics extracted",
			"site_type", siteType,
			"images_without_alt", m.ImagesWithoutAlt,
			"aria_landmarks", m.ARIALandmarks,
		)
	} else {
		warnings = append(warnings, "no HTML available; SEO and performance categories cannot be scored")
	}
	if !hasVision {
		warnings = append(warnings, "no screenshots available; visual design is inferred from markup only")
	}

	var htmlRes, visionRes pathResult

	if hasHTML {
		res, warns := a.analyzeHTML(ctx, input.URL, input.HTML, siteType, m)
		warnings = append(warnings, warns...)
		htmlRes = res
	}

	if hasVision {
		res, ok, warns := a.analyzeVision(ctx, input.URL, images)
		warnings = append(warnings, warns...)
		switch {
		case ok:
			visionRes = res
		case hasHTML:
			// The HTML path carries the report on its own.
			hasVision = false
		default:
			// Vision-only request with a failed model path: the rule-based
			// analyzer over zeroed metrics keeps the report shape intact.
			fb := scoring.Fallback(report.Metrics{}, siteType)
			visionRes = pathResult{score: fb.Score, issues: fb.Issues}
		}
	}

	source := report.SourceHTML
	switch {
	case hasHTML && hasVision:
		source = report.SourceCombined
	case hasVision && len(images) > 1:
		source = report.SourceVisionMulti
	case hasVision:
		source = report.SourceVisionSingle
	}

	categories := scoring.ScoreCategories(htmlRes.score, visionRes.score, hasHTML, hasVision)
	overall := scoring.Aggregate(categories)

	issues := append(append([]report.Issue{}, htmlRes.issues...), visionRes.issues...)
	issues = orderAndBound(issues, a.cfg.MaxIssues)

	summary := htmlRes.summary
	if summary == "" {
		summary = visionRes.summary
	}
	if summary == "" {
		summary = bandSummary(overall, input.URL)
	}

	result := &report.Report{
		URL:        input.URL,
		Timestamp:  start,
		Score:      overall,
		Grade:      scoring.Grade(overall),
		Categories: categories,
		Issues:     issues,
		Summary:    summary,
		Source:     source,
		Warnings:   warnings,
		Duration:   time.Since(start).String(),
		Version:    reportVersion,
	}
	if hasHTML {
		result.Metrics = &m
	}

	a.logger.Info("audit complete",
		"url", input.URL,
		"score", overall,
		"grade", result.Grade,
		"source", string(source),
		"issues", len(issues),
	)
	return result
}

type pathResult struct {
	score   int
	summary string
	issues  []report.Issue
}

func (a *Auditor) analyzeHTML(ctx context.Context, url, rawHTML, siteType string, m report.Metrics) (pathResult, []string) {
	if a.completer == nil {
		fb := scoring.Fallback(m, siteType)
		return pathResult{score: fb.Score, issues: fb.Issues},
			[]string{"model service not configured; score derived from structural rules"}
	}

	prompt := buildHTMLPrompt(url, siteType, m, excerpt(rawHTML, a.cfg.HTMLExcerptKB*1024))
	text, err := a.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		a.logger.Warn("model call failed for HTML analysis", "error", err)
		fb := scoring.Fallback(m, siteType)
		return pathResult{score: fb.Score, issues: fb.Issues},
			[]string{"model service unavailable for HTML analysis; structural rules used instead"}
	}

	parsed, err := parser.Parse(text)
	if err != nil {
		a.logger.Warn("model response unparsable for HTML analysis", "error", err)
		fb := scoring.Fallback(m, siteType)
		return pathResult{score: fb.Score, issues: fb.Issues},
			[]string{"model response could not be parsed for HTML analysis; structural rules used instead"}
	}

	return pathResult{
		score:   clampModelScore(parsed.Score),
		summary: strings.TrimSpace(parsed.Summary),
		issues:  convertStubs(parsed.Issues),
	}, nil
}

func (a *Auditor) analyzeVision(ctx context.Context, url string, images [][]byte) (pathResult, bool, []string) {
	if a.completer == nil {
		return pathResult{}, false, []string{"model service not configured; screenshots were not analyzed"}
	}

	prompt := buildVisionPrompt(url, len(images))
	text, err := a.completer.CompleteVision(ctx, systemPrompt, prompt, images)
	if err != nil {
		a.logger.Warn("model call failed for vision analysis", "error", err)
		return pathResult{}, false, []string{"model service unavailable for vision analysis"}
	}

	parsed, err := parser.Parse(text)
	if err != nil {
		a.logger.Warn("model response unparsable for vision analysis", "error", err)
		return pathResult{}, false, []string{"model response could not be parsed for vision analysis"}
	}

	return pathResult{
		score:   clampModelScore(parsed.Score),
		summary: strings.TrimSpace(parsed.Summary),
		issues:  convertStubs(parsed.Issues),
	}, true, nil
}

func convertStubs(stubs []parser.IssueStub) []report.Issue {
	now := time.Now()
	issues := make([]report.Issue, 0, len(stubs))
	for _, stub := range stubs {
		issues = append(issues, report.Issue{
			Title:       stub.Title,
			Severity:    stub.Severity,
			Categories:  stub.Categories,
			Description: stub.Description,
			Impact:      stub.Impact,
			Fix:         stub.Fix,
			WCAGRef:     stub.WCAGRef,
			CreatedAt:   now,
		})
	}
	return issues
}

// orderAndBound sorts issues by severity, preserving insertion order
// within a severity, and truncates to keep the report actionable.
func orderAndBound(issues []report.Issue, maxIssues int) []report.Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		return report.SeverityRank(issues[i].Severity) > report.SeverityRank(issues[j].Severity)
	})
	if len(issues) > maxIssues {
		issues = issues[:maxIssues]
	}
	return issues
}

func bandSummary(score int, url string) string {
	subject := url
	if subject == "" {
		subject = "The page"
	}

	switch {
	case score < 40:
		return fmt.Sprintf("%s has critical accessibility barriers that urgently need attention.", subject)
	case score < 60:
		return fmt.Sprintf("%s has moderate accessibility with room for significant improvements.", subject)
	case score < 75:
		return fmt.Sprintf("%s demonstrates good accessibility with opportunities for enhancement.", subject)
	default:
		return fmt.Sprintf("%s shows strong accessibility practices with minor refinements possible.", subject)
	}
}

func clampModelScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func excerpt(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
