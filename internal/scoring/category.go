package scoring

import "github.com/a11yauditor/a11y-auditor/internal/report"

// weightTable maps one source score pair onto the five categories.
// Weights are integer percentages so the arithmetic stays exact; the
// division truncates, which also floors results at zero. The constants
// are product choices carried over from the original scoring contract;
// they are tunable, not derived from a validated methodology.
type weightTable struct {
	wcagHTML, wcagVision     int
	uxHTML, uxVision         int
	visualHTML, visualVision int
	seoHTML, seoVision       int
	perfHTML, perfVision     int
}

// HTML dominates structural/textual categories; vision dominates
// perceptual ones. SEO and performance require markup, so without HTML
// they stay at zero rather than borrowing a vision signal.
var (
	weightsCombined = weightTable{
		wcagHTML: 70, wcagVision: 30,
		uxHTML: 30, uxVision: 70,
		visualHTML: 20, visualVision: 80,
		seoHTML:  100,
		perfHTML: 100,
	}

	weightsHTMLOnly = weightTable{
		wcagHTML:   40,
		uxHTML:     25,
		visualHTML: 10,
		seoHTML:    15,
		perfHTML:   10,
	}

	weightsVisionOnly = weightTable{
		wcagVision:   35,
		uxVision:     35,
		visualVision: 30,
	}
)

// ScoreCategories folds the per-source scores into the five category
// scores, selecting the weighting regime from which inputs are present.
// Absent sources contribute zero. Every result lies in [0,100].
func ScoreCategories(htmlScore, visionScore int, hasHTML, hasVision bool) report.CategoryScores {
	var table weightTable
	switch {
	case hasHTML && hasVision:
		table = weightsCombined
	case hasHTML:
		table = weightsHTMLOnly
	case hasVision:
		table = weightsVisionOnly
	default:
		return report.CategoryScores{}
	}

	h := clampScore(htmlScore)
	v := clampScore(visionScore)
	if !hasHTML {
		h = 0
	}
	if !hasVision {
		v = 0
	}

	return report.CategoryScores{
		WCAG:         clampScore((table.wcagHTML*h + table.wcagVision*v) / 100),
		UX:           clampScore((table.uxHTML*h + table.uxVision*v) / 100),
		VisualDesign: clampScore((table.visualHTML*h + table.visualVision*v) / 100),
		SEO:          clampScore((table.seoHTML*h + table.seoVision*v) / 100),
		Performance:  clampScore((table.perfHTML*h + table.perfVision*v) / 100),
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
