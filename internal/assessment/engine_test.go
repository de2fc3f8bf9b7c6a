package assessment

import (
	"reflect"
	"testing"
)

func TestScoreIsLiteralSum(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		answers []int
		want    int
	}{
		{"empty list scores zero", PHQ9, nil, 0},
		{"single answer", GAD7, []int{2}, 2},
		{"partial submission sums what was provided", PHQ9, []int{3, 0, 2}, 5},
		{"full phq9", PHQ9, []int{1, 1, 1, 1, 1, 1, 1, 1, 1}, 9},
		{"full ghq12 maximum", GHQ12, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(tt.typ, tt.answers)
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if res.Score != tt.want {
				t.Errorf("Score = %d, want %d", res.Score, tt.want)
			}
		})
	}
}

func TestSeverityBoundaries(t *testing.T) {
	// Boundaries are inclusive on the upper band: a total equal to a
	// threshold belongs to the next band.
	tests := []struct {
		typ   Type
		total int
		want  string
	}{
		{PHQ9, 0, "Minimal"},
		{PHQ9, 4, "Minimal"},
		{PHQ9, 5, "Mild"},
		{PHQ9, 9, "Mild"},
		{PHQ9, 10, "Moderate"},
		{PHQ9, 14, "Moderate"},
		{PHQ9, 15, "Moderately Severe"},
		{PHQ9, 19, "Moderately Severe"},
		{PHQ9, 20, "Severe"},
		{PHQ9, 27, "Severe"},
		{GAD7, 4, "Minimal"},
		{GAD7, 5, "Mild"},
		{GAD7, 9, "Mild"},
		{GAD7, 10, "Moderate"},
		{GAD7, 14, "Moderate"},
		{GAD7, 15, "Severe"},
		{GAD7, 21, "Severe"},
		{GHQ12, 11, "Good"},
		{GHQ12, 12, "Fair"},
		{GHQ12, 23, "Fair"},
		{GHQ12, 24, "Poor"},
		{GHQ12, 36, "Poor"},
	}
	for _, tt := range tests {
		res, err := Score(tt.typ, answersSumming(tt.typ, tt.total))
		if err != nil {
			t.Fatalf("Score(%s, total %d) returned error: %v", tt.typ, tt.total, err)
		}
		if res.Score != tt.total {
			t.Errorf("Score(%s) total = %d, want %d", tt.typ, res.Score, tt.total)
		}
		if res.Severity != tt.want {
			t.Errorf("Score(%s, total %d) severity = %q, want %q", tt.typ, tt.total, res.Severity, tt.want)
		}
	}
}

func TestScoreScenarios(t *testing.T) {
	// GAD-7 [3,3,3,2,3,2,2] sums to 18 -> Severe.
	res, err := Score(GAD7, []int{3, 3, 3, 2, 3, 2, 2})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Score != 18 || res.Severity != "Severe" {
		t.Errorf("GAD-7 scenario: got score=%d severity=%q, want 18/Severe", res.Score, res.Severity)
	}

	// PHQ-9 all zeros -> Minimal.
	res, err = Score(PHQ9, []int{0, 0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Score != 0 || res.Severity != "Minimal" {
		t.Errorf("PHQ-9 scenario: got score=%d severity=%q, want 0/Minimal", res.Score, res.Severity)
	}
}

func TestScoreAttachesFixedTexts(t *testing.T) {
	res, err := Score(PHQ9, []int{0})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Interpretation == "" {
		t.Error("Interpretation should not be empty")
	}
	wantRecs := []string{
		"Connect with a counsellor",
		"Practice self-care routines",
		"Stay socially connected",
		"Maintain regular sleep schedule",
	}
	if !reflect.DeepEqual(res.Recommendations, wantRecs) {
		t.Errorf("Recommendations = %v, want %v", res.Recommendations, wantRecs)
	}

	// Same inputs, same outputs: no randomness.
	again, _ := Score(PHQ9, []int{0})
	if !reflect.DeepEqual(res, again) {
		t.Error("Score should be deterministic")
	}
}

func TestScoreRejectsBadInput(t *testing.T) {
	if _, err := Score(Type("WHO-5"), []int{1}); err == nil {
		t.Error("Score should reject unknown questionnaire types")
	}
	if _, err := Score(PHQ9, []int{-1}); err == nil {
		t.Error("Score should reject negative answers")
	}
}

func TestQuestionCount(t *testing.T) {
	if got := QuestionCount(PHQ9); got != 9 {
		t.Errorf("QuestionCount(PHQ9) = %d, want 9", got)
	}
	if got := QuestionCount(GAD7); got != 7 {
		t.Errorf("QuestionCount(GAD7) = %d, want 7", got)
	}
	if got := QuestionCount(GHQ12); got != 12 {
		t.Errorf("QuestionCount(GHQ12) = %d, want 12", got)
	}
	if got := QuestionCount(Type("nope")); got != 0 {
		t.Errorf("QuestionCount(unknown) = %d, want 0", got)
	}
}

// answersSumming builds a valid 0-3 answer list for typ totalling total.
func answersSumming(typ Type, total int) []int {
	answers := make([]int, QuestionCount(typ))
	remaining := total
	for i := range answers {
		a := remaining
		if a > 3 {
			a = 3
		}
		answers[i] = a
		remaining -= a
	}
	return answers
}
