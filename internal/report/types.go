package report

import "time"

type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// SeverityRank orders severities for sorting and truncation.
// Higher means more urgent.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

type Category string

const (
	CategoryWCAG         Category = "wcag"
	CategoryUX           Category = "ux"
	CategoryVisualDesign Category = "visual_design"
	CategorySEO          Category = "seo"
	CategoryPerformance  Category = "performance"
	CategoryGeneral      Category = "general"
)

// AnalysisSource records which input modalities produced a report, so the
// category weighting applied during aggregation is reproducible.
type AnalysisSource string

const (
	SourceHTML         AnalysisSource = "html"
	SourceVisionSingle AnalysisSource = "vision-single"
	SourceVisionMulti  AnalysisSource = "vision-multi"
	SourceCombined     AnalysisSource = "combined"
)

// Metrics holds structural counts extracted from one HTML document.
// It is created once per analysis and never mutated afterward.
type Metrics struct {
	ImagesTotal        int           `json:"images_total"`
	ImagesWithoutAlt   int           `json:"images_without_alt"`
	Forms              int           `json:"forms"`
	Headings           HeadingCounts `json:"headings"`
	ARIALandmarks      int           `json:"aria_landmarks"`
	ButtonsWithoutText int           `json:"buttons_without_text"`
	LinksWithoutText   int           `json:"links_without_text"`
	HasSkipLink        bool          `json:"has_skip_link"`
	HasLang            bool          `json:"has_lang_attr"`
	Tables             int           `json:"tables"`
	Videos             int           `json:"videos"`
}

// HeadingCounts carries one counter per heading level; levels with no
// occurrences stay at zero rather than being omitted.
type HeadingCounts struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
	H4 int `json:"h4"`
	H5 int `json:"h5"`
	H6 int `json:"h6"`
}

type Issue struct {
	Title       string     `json:"title"`
	Severity    Severity   `json:"severity"`
	Categories  []Category `json:"categories"`
	Description string     `json:"description"`
	Impact      string     `json:"impact"`
	Fix         string     `json:"fix"`
	WCAGRef     string     `json:"wcag_ref,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CategoryScores holds the five weighted sub-scores composing the overall
// score. Every value lies in [0,100].
type CategoryScores struct {
	WCAG         int `json:"wcag"`
	UX           int `json:"ux"`
	VisualDesign int `json:"visual_design"`
	SEO          int `json:"seo"`
	Performance  int `json:"performance"`
}

type Report struct {
	URL        string         `json:"url,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Score      int            `json:"score"`
	Grade      string         `json:"grade"`
	Categories CategoryScores `json:"category_scores"`
	Issues     []Issue        `json:"issues"`
	Summary    string         `json:"summary"`
	Metrics    *Metrics       `json:"metrics,omitempty"`
	Source     AnalysisSource `json:"analysis_source"`
	Warnings   []string       `json:"warnings,omitempty"`
	Duration   string         `json:"duration"`
	Version    string         `json:"version"`
}
