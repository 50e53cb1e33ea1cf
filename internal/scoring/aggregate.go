package scoring

import (
	"math"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

// Overall score weights. They sum to 1.0 so a uniform category score maps
// to itself.
const (
	weightWCAG         = 0.30
	weightUX           = 0.30
	weightVisualDesign = 0.25
	weightSEO          = 0.10
	weightPerformance  = 0.05
)

// Aggregate combines category scores into the overall score, rounded and
// clamped to [0,100]. It is a pure function.
func Aggregate(scores report.CategoryScores) int {
	weighted := weightWCAG*float64(scores.WCAG) +
		weightUX*float64(scores.UX) +
		weightVisualDesign*float64(scores.VisualDesign) +
		weightSEO*float64(scores.SEO) +
		weightPerformance*float64(scores.Performance)

	return clampScore(int(math.Round(weighted)))
}

func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
