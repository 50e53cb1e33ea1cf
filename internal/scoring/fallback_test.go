package scoring

import (
	"strings"
	"testing"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

func cleanMetrics() report.Metrics {
	return report.Metrics{
		ImagesTotal:   5,
		Headings:      report.HeadingCounts{H1: 1, H2: 3},
		ARIALandmarks: 5,
		HasSkipLink:   true,
		HasLang:       true,
	}
}

func TestFallback_CleanPage(t *testing.T) {
	result := Fallback(cleanMetrics(), "general")

	// base 70 + landmark bonus 10 + skip link bonus 5
	if result.Score != 85 {
		t.Errorf("Expected score 85 for a clean page, got %d", result.Score)
	}
	if len(result.Issues) != 0 {
		t.Errorf("Expected no issues for a clean page, got %d", len(result.Issues))
	}
}

func TestFallback_MissingAltLowersScore(t *testing.T) {
	clean := Fallback(cleanMetrics(), "general")

	degraded := cleanMetrics()
	degraded.ImagesWithoutAlt = 5
	withMissingAlt := Fallback(degraded, "general")

	if withMissingAlt.Score >= clean.Score {
		t.Errorf("Expected missing alt text to lower the score: %d vs %d",
			withMissingAlt.Score, clean.Score)
	}
}

func TestFallback_DeductionCaps(t *testing.T) {
	m := cleanMetrics()
	m.ImagesWithoutAlt = 500

	result := Fallback(m, "general")

	// Alt-text deduction caps at 20: 70 - 20 + 10 + 5
	if result.Score != 65 {
		t.Errorf("Expected capped deduction to yield 65, got %d", result.Score)
	}
}

func TestFallback_WorstCase(t *testing.T) {
	m := report.Metrics{
		ImagesTotal:        50,
		ImagesWithoutAlt:   50,
		ButtonsWithoutText: 10,
		LinksWithoutText:   10,
	}

	result := Fallback(m, "general")

	// 70 - 20 - 10 - 10 - 10 - 5 - 15 = 0
	if result.Score != 0 {
		t.Errorf("Expected worst case to clamp at 0, got %d", result.Score)
	}
	if len(result.Issues) == 0 {
		t.Error("Expected issues for a deficient page")
	}
	if len(result.Issues) > 5 {
		t.Errorf("Expected at most 5 issues, got %d", len(result.Issues))
	}
}

func TestFallback_NewsSiteFloor(t *testing.T) {
	m := report.Metrics{
		ImagesTotal:      20,
		ImagesWithoutAlt: 20,
		Headings:         report.HeadingCounts{H1: 1},
	}

	general := Fallback(m, "general")
	news := Fallback(m, "news")

	if news.Score < 65 {
		t.Errorf("Expected news site with H1 to be floored at 65, got %d", news.Score)
	}
	if general.Score >= news.Score {
		t.Errorf("Expected the floor to raise the news score above general (%d vs %d)",
			news.Score, general.Score)
	}
}

func TestFallback_IssuesDerivedFromDeficiencies(t *testing.T) {
	m := report.Metrics{
		ImagesTotal:      3,
		ImagesWithoutAlt: 3,
		Headings:         report.HeadingCounts{H2: 2},
	}

	result := Fallback(m, "general")

	foundAlt := false
	foundH1 := false
	foundSkip := false
	for _, issue := range result.Issues {
		if strings.Contains(issue.Title, "alt text") {
			foundAlt = true
			if issue.Severity != report.SeverityCritical {
				t.Errorf("Expected missing alt text to be critical, got %s", issue.Severity)
			}
			if !strings.Contains(issue.Title, "3") {
				t.Errorf("Expected the concrete count in the title, got %q", issue.Title)
			}
		}
		if strings.Contains(issue.Title, "H1") {
			foundH1 = true
		}
		if strings.Contains(issue.Title, "skip") {
			foundSkip = true
		}
	}

	if !foundAlt || !foundH1 || !foundSkip {
		t.Errorf("Expected issues for each concrete deficiency, got %+v", result.Issues)
	}
}

func TestFallback_SeverityOrdering(t *testing.T) {
	m := report.Metrics{
		ImagesTotal:      1,
		ImagesWithoutAlt: 1,
	}

	result := Fallback(m, "general")

	for i := 1; i < len(result.Issues); i++ {
		if report.SeverityRank(result.Issues[i].Severity) > report.SeverityRank(result.Issues[i-1].Severity) {
			t.Errorf("Issues out of severity order at index %d", i)
		}
	}
}

func TestFallback_Deterministic(t *testing.T) {
	m := report.Metrics{ImagesTotal: 2, ImagesWithoutAlt: 1}

	first := Fallback(m, "general")
	second := Fallback(m, "general")

	if first.Score != second.Score || len(first.Issues) != len(second.Issues) {
		t.Error("Expected identical results for identical metrics")
	}
	for i := range first.Issues {
		if first.Issues[i].Title != second.Issues[i].Title {
			t.Errorf("Issue %d differs between runs", i)
		}
	}
}
