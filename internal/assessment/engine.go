// Package assessment scores the three supported questionnaires and maps
// totals to severity bands. Scoring is deterministic and side-effect free;
// persistence is the caller's concern.
package assessment

import (
	"errors"
	"fmt"
)

// Type identifies a questionnaire.
type Type string

const (
	PHQ9  Type = "PHQ-9"
	GAD7  Type = "GAD-7"
	GHQ12 Type = "GHQ-12"
)

// Question counts. All three questionnaires use a 0-3 item scale; range
// checks live in payload validation, not here.
const (
	phq9Questions  = 9
	gad7Questions  = 7
	ghq12Questions = 12
)

var ErrUnknownType = errors.New("unknown questionnaire type")

// Result is the scored outcome of a submission.
type Result struct {
	Score           int
	Severity        string
	Interpretation  string
	Recommendations []string
}

type band struct {
	// upper is the exclusive score bound: a total below upper falls in this
	// band, so boundary scores land in the next band (score 5 on PHQ-9 is
	// Mild, not Minimal).
	upper          int
	severity       string
	interpretation string
}

var phq9Bands = []band{
	{5, "Minimal", "You have minimal depressive symptoms. Continue maintaining good mental health habits."},
	{10, "Mild", "You have mild depressive symptoms. Consider lifestyle changes and monitor your mood."},
	{15, "Moderate", "You have moderate depressive symptoms. Professional support may be helpful."},
	{20, "Moderately Severe", "You have moderately severe depressive symptoms. Please reach out to a counselor."},
	{0, "Severe", "You have severe depressive symptoms. Professional support is recommended."},
}

var gad7Bands = []band{
	{5, "Minimal", "You have minimal anxiety symptoms. Keep up your current coping strategies."},
	{10, "Mild", "You have mild anxiety symptoms. Try relaxation techniques and stress management."},
	{15, "Moderate", "You have moderate anxiety symptoms. Professional support is recommended."},
	{0, "Severe", "You have severe anxiety symptoms. Please reach out to a counselor."},
}

var ghq12Bands = []band{
	{12, "Good", "You appear to be in good mental health."},
	{24, "Fair", "You may be experiencing some psychological distress. Consider support."},
	{0, "Poor", "You appear to be experiencing significant psychological distress."},
}

var recommendations = map[Type][]string{
	PHQ9: {
		"Connect with a counsellor",
		"Practice self-care routines",
		"Stay socially connected",
		"Maintain regular sleep schedule",
	},
	GAD7: {
		"Practice breathing exercises",
		"Try mindfulness meditation",
		"Limit caffeine intake",
		"Seek professional help",
	},
	GHQ12: {
		"Reach out to a counselor",
		"Practice self-care",
		"Build a support network",
		"Seek professional assessment",
	},
}

// Valid reports whether t is a supported questionnaire type.
func Valid(t Type) bool {
	switch t {
	case PHQ9, GAD7, GHQ12:
		return true
	}
	return false
}

// QuestionCount returns the number of questions for t, or 0 for unknown types.
func QuestionCount(t Type) int {
	switch t {
	case PHQ9:
		return phq9Questions
	case GAD7:
		return gad7Questions
	case GHQ12:
		return ghq12Questions
	}
	return 0
}

// Score sums the answers and classifies the total for the given
// questionnaire. The list may be shorter than the question count (a skipped
// question contributes 0); the score is always the literal sum of whatever
// was provided. Negative answers are rejected.
func Score(t Type, answers []int) (Result, error) {
	bands, err := bandsFor(t)
	if err != nil {
		return Result{}, err
	}

	total := 0
	for i, a := range answers {
		if a < 0 {
			return Result{}, fmt.Errorf("answer %d is negative: %d", i+1, a)
		}
		total += a
	}

	b := classify(bands, total)
	return Result{
		Score:           total,
		Severity:        b.severity,
		Interpretation:  b.interpretation,
		Recommendations: recommendations[t],
	}, nil
}

func bandsFor(t Type) ([]band, error) {
	switch t {
	case PHQ9:
		return phq9Bands, nil
	case GAD7:
		return gad7Bands, nil
	case GHQ12:
		return ghq12Bands, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}

func classify(bands []band, total int) band {
	for _, b := range bands[:len(bands)-1] {
		if total < b.upper {
			return b
		}
	}
	return bands[len(bands)-1]
}
