package scoring

import (
	"fmt"
	"time"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

// FallbackResult is the rule-based replacement for a model analysis. It
// carries the same score/issue shape the model path produces, so reports
// built from it are structurally identical.
type FallbackResult struct {
	Score  int
	Issues []report.Issue
}

const (
	fallbackBaseScore    = 70
	maxFallbackIssues    = 5
	landmarkBonusMinimum = 4
)

// Fallback derives an analysis purely from structural metrics. It is
// deterministic and total: the same metrics always produce the same
// result, and there is no external dependency to fail.
//
// Scoring starts from a fixed base and applies capped deductions per
// structural deficiency, plus bonuses for positive signals. News and
// sports sites with a proper H1 get a floor, since dense link-heavy
// layouts otherwise over-penalize well-structured pages.
func Fallback(m report.Metrics, siteType string) FallbackResult {
	score := fallbackBaseScore

	if m.ImagesWithoutAlt > 0 {
		score -= capDeduction(m.ImagesWithoutAlt*2, 20)
	}
	if m.ButtonsWithoutText > 0 {
		score -= capDeduction(m.ButtonsWithoutText*3, 10)
	}
	if m.LinksWithoutText > 0 {
		score -= capDeduction(m.LinksWithoutText*2, 10)
	}
	if !m.HasSkipLink {
		score -= 10
	}
	if !m.HasLang {
		score -= 5
	}
	if m.Headings.H1 == 0 {
		score -= 15
	}

	if m.ARIALandmarks >= landmarkBonusMinimum {
		score += 10
	}
	if m.HasSkipLink {
		score += 5
	}

	if (siteType == "sports" || siteType == "news") && m.Headings.H1 > 0 && score < 65 {
		score = 65
	}

	return FallbackResult{
		Score:  clampScore(score),
		Issues: deriveIssues(m),
	}
}

// deriveIssues builds the issue list from the concrete deficiencies found,
// most severe first. Only deficiencies the metrics actually show produce
// issues; there are no generic placeholders.
func deriveIssues(m report.Metrics) []report.Issue {
	now := time.Now()
	var issues []report.Issue

	if m.ImagesWithoutAlt > 0 {
		issues = append(issues, report.Issue{
			Title:       fmt.Sprintf("%d images missing alt text", m.ImagesWithoutAlt),
			Severity:    report.SeverityCritical,
			Categories:  []report.Category{report.CategoryWCAG},
			Description: "Images without alt text are invisible to screen readers.",
			Impact:      "Screen reader users cannot understand image content.",
			Fix:         `Add descriptive alternative text: <img src="image.jpg" alt="Describe the image">`,
			WCAGRef:     "1.1.1",
			CreatedAt:   now,
		})
	}

	if m.Headings.H1 == 0 {
		issues = append(issues, report.Issue{
			Title:       "Missing H1 heading",
			Severity:    report.SeverityMajor,
			Categories:  []report.Category{report.CategoryWCAG, report.CategorySEO},
			Description: "The page lacks a main H1 heading establishing its structure.",
			Impact:      "Screen reader users cannot understand the page hierarchy.",
			Fix:         "Add a single <h1> describing the main content of the page.",
			WCAGRef:     "1.3.1",
			CreatedAt:   now,
		})
	}

	if !m.HasSkipLink {
		issues = append(issues, report.Issue{
			Title:       "No skip navigation link",
			Severity:    report.SeverityMajor,
			Categories:  []report.Category{report.CategoryWCAG, report.CategoryUX},
			Description: "Users must tab through all navigation to reach the main content.",
			Impact:      "Keyboard users waste time traversing repetitive content.",
			Fix:         `Add a skip link as the first focusable element: <a href="#main">Skip to main content</a>`,
			WCAGRef:     "2.4.1",
			CreatedAt:   now,
		})
	}

	if m.ButtonsWithoutText > 0 {
		issues = append(issues, report.Issue{
			Title:       fmt.Sprintf("%d buttons without accessible names", m.ButtonsWithoutText),
			Severity:    report.SeverityMajor,
			Categories:  []report.Category{report.CategoryWCAG},
			Description: "Buttons with no text or aria-label announce as just \"button\".",
			Impact:      "Assistive technology users cannot tell what the control does.",
			Fix:         "Give every button visible text or an aria-label attribute.",
			WCAGRef:     "4.1.2",
			CreatedAt:   now,
		})
	}

	if m.LinksWithoutText > 0 {
		issues = append(issues, report.Issue{
			Title:       fmt.Sprintf("%d links without accessible names", m.LinksWithoutText),
			Severity:    report.SeverityMajor,
			Categories:  []report.Category{report.CategoryWCAG},
			Description: "Links with no discernible text give no indication of their destination.",
			Impact:      "Screen reader users hear only \"link\" with no context.",
			Fix:         "Add link text, an aria-label, or alt text on the linked image.",
			WCAGRef:     "2.4.4",
			CreatedAt:   now,
		})
	}

	if !m.HasLang {
		issues = append(issues, report.Issue{
			Title:       "Missing language attribute",
			Severity:    report.SeverityMinor,
			Categories:  []report.Category{report.CategoryWCAG, report.CategorySEO},
			Description: "The <html> element does not declare the document language.",
			Impact:      "Screen readers may use the wrong pronunciation rules.",
			Fix:         `Declare the document language: <html lang="en">`,
			WCAGRef:     "3.1.1",
			CreatedAt:   now,
		})
	}

	if len(issues) > maxFallbackIssues {
		issues = issues[:maxFallbackIssues]
	}
	return issues
}

func capDeduction(amount, cap int) int {
	if amount > cap {
		return cap
	}
	return amount
}
