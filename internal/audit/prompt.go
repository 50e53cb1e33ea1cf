package audit

import (
	"fmt"
	"strings"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

const systemPrompt = "You are an expert accessibility auditor. Provide accurate, " +
	"context-aware scores where well-structured sites score 70-90, average sites " +
	"50-70, and poor sites below 50."

const responseSchema = `Return as JSON with structure:
{
  "score": <number>,
  "summary": "<explanation of the score>",
  "issues": [
    {"title": "...", "severity": "Critical|Major|Minor", "categories": ["wcag", "ux", "visual_design", "seo", "performance"], "description": "...", "impact": "...", "fix": "...", "wcag_ref": "..."}
  ]
}`

// buildHTMLPrompt embeds the structural metrics and a truncated raw-HTML
// excerpt into the text-analysis prompt.
func buildHTMLPrompt(url, siteType string, m report.Metrics, htmlExcerpt string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze the accessibility of this %s website and provide detailed, actionable feedback.\n\n", siteType)
	if url != "" {
		fmt.Fprintf(&sb, "URL: %s\n\n", url)
	}

	sb.WriteString("Structural Analysis:\n")
	fmt.Fprintf(&sb, "- Images: %d total, %d missing alt text\n", m.ImagesTotal, m.ImagesWithoutAlt)
	fmt.Fprintf(&sb, "- Forms: %d forms found\n", m.Forms)
	fmt.Fprintf(&sb, "- Headings: %d H1, %d H2, %d H3, %d H4, %d H5, %d H6\n",
		m.Headings.H1, m.Headings.H2, m.Headings.H3, m.Headings.H4, m.Headings.H5, m.Headings.H6)
	fmt.Fprintf(&sb, "- ARIA landmarks: %d\n", m.ARIALandmarks)
	fmt.Fprintf(&sb, "- Buttons without text: %d\n", m.ButtonsWithoutText)
	fmt.Fprintf(&sb, "- Links without text: %d\n", m.LinksWithoutText)
	fmt.Fprintf(&sb, "- Has skip navigation: %t\n", m.HasSkipLink)
	fmt.Fprintf(&sb, "- Has language attribute: %t\n", m.HasLang)
	fmt.Fprintf(&sb, "- Tables: %d\n", m.Tables)
	fmt.Fprintf(&sb, "- Videos/Media: %d\n\n", m.Videos)

	fmt.Fprintf(&sb, "For a %s website, provide:\n\n", siteType)
	sb.WriteString("1. ACCESSIBILITY SCORE (0-100):\n")
	sb.WriteString("- Penalize heavily for: missing alt text, no skip links, poor heading structure\n")
	sb.WriteString("- Reward for: ARIA landmarks, proper semantics, keyboard navigation\n\n")
	sb.WriteString("2. TOP 5 ISSUES, each with title, severity (Critical/Major/Minor), description, impact, and a specific fix with a code example.\n\n")

	if htmlExcerpt != "" {
		fmt.Fprintf(&sb, "HTML excerpt:\n%s\n\n", htmlExcerpt)
	}

	sb.WriteString(responseSchema)
	return sb.String()
}

// buildVisionPrompt asks the vision model for the perceptual checks a
// structural pass cannot make.
func buildVisionPrompt(url string, screenshots int) string {
	var sb strings.Builder

	if screenshots > 1 {
		fmt.Fprintf(&sb, "Analyze these %d website screenshots for accessibility issues.\n", screenshots)
	} else {
		sb.WriteString("Analyze this website screenshot for accessibility issues.\n")
	}
	if url != "" {
		fmt.Fprintf(&sb, "URL: %s\n", url)
	}

	sb.WriteString(`Look for:
1. Color contrast problems
2. Text size issues
3. Layout problems
4. Missing visual indicators
5. Crowded or confusing interfaces

Provide an overall score (0-100) and specific observations.

`)
	sb.WriteString(responseSchema)
	return sb.String()
}
