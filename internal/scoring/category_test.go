package scoring

import (
	"testing"

	"github.com/a11yauditor/a11y-auditor/internal/report"
)

func TestScoreCategories_Combined(t *testing.T) {
	scores := ScoreCategories(80, 60, true, true)

	// wcag = 0.70*80 + 0.30*60 = 74; ux = 0.30*80 + 0.70*60 = 66
	// visual = 0.20*80 + 0.80*60 = 64; seo = 80; performance = 80
	if scores.WCAG != 74 {
		t.Errorf("Expected WCAG 74, got %d", scores.WCAG)
	}
	if scores.UX != 66 {
		t.Errorf("Expected UX 66, got %d", scores.UX)
	}
	if scores.VisualDesign != 64 {
		t.Errorf("Expected VisualDesign 64, got %d", scores.VisualDesign)
	}
	if scores.SEO != 80 {
		t.Errorf("Expected SEO 80, got %d", scores.SEO)
	}
	if scores.Performance != 80 {
		t.Errorf("Expected Performance 80, got %d", scores.Performance)
	}
}

func TestScoreCategories_HTMLOnly(t *testing.T) {
	scores := ScoreCategories(80, 0, true, false)

	if scores.WCAG != 32 { // 0.40*80
		t.Errorf("Expected WCAG 32, got %d", scores.WCAG)
	}
	if scores.UX != 20 { // 0.25*80
		t.Errorf("Expected UX 20, got %d", scores.UX)
	}
	if scores.VisualDesign != 8 { // 0.10*80
		t.Errorf("Expected VisualDesign 8, got %d", scores.VisualDesign)
	}
	// SEO and performance come from markup, so a non-zero HTML score
	// must keep them non-zero.
	if scores.SEO == 0 || scores.Performance == 0 {
		t.Errorf("Expected non-zero SEO and performance for HTML-only input, got %+v", scores)
	}
}

func TestScoreCategories_VisionOnly(t *testing.T) {
	scores := ScoreCategories(0, 80, false, true)

	if scores.WCAG != 28 { // 0.35*80
		t.Errorf("Expected WCAG 28, got %d", scores.WCAG)
	}
	if scores.UX != 28 {
		t.Errorf("Expected UX 28, got %d", scores.UX)
	}
	if scores.VisualDesign != 24 { // 0.30*80
		t.Errorf("Expected VisualDesign 24, got %d", scores.VisualDesign)
	}
	// Without markup there is nothing to score SEO or performance from.
	if scores.SEO != 0 {
		t.Errorf("Expected SEO exactly 0 for vision-only input, got %d", scores.SEO)
	}
	if scores.Performance != 0 {
		t.Errorf("Expected performance exactly 0 for vision-only input, got %d", scores.Performance)
	}
}

func TestScoreCategories_IgnoresAbsentSourceScore(t *testing.T) {
	// A stale vision score must not leak in when has_vision is false.
	withStale := ScoreCategories(80, 99, true, false)
	without := ScoreCategories(80, 0, true, false)

	if withStale != without {
		t.Errorf("Expected absent vision score to be ignored: %+v vs %+v", withStale, without)
	}
}

func TestScoreCategories_NoSources(t *testing.T) {
	scores := ScoreCategories(50, 50, false, false)

	if scores != (report.CategoryScores{}) {
		t.Errorf("Expected all-zero scores with no sources, got %+v", scores)
	}
}

func TestScoreCategories_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		html      int
		vision    int
		hasHTML   bool
		hasVision bool
	}{
		{"max both", 100, 100, true, true},
		{"max html", 100, 0, true, false},
		{"negative html", -50, 0, true, false},
		{"over range", 250, 250, true, true},
	}

	for _, test := range tests {
		scores := ScoreCategories(test.html, test.vision, test.hasHTML, test.hasVision)
		for name, value := range map[string]int{
			"wcag":          scores.WCAG,
			"ux":            scores.UX,
			"visual_design": scores.VisualDesign,
			"seo":           scores.SEO,
			"performance":   scores.Performance,
		} {
			if value < 0 || value > 100 {
				t.Errorf("%s: category %s out of range: %d", test.name, name, value)
			}
		}
	}
}
