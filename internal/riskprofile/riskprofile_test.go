package riskprofile_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/riskprofile"
)

func answersFor(pick func(q riskprofile.Question) string) map[string]riskprofile.Answer {
	answers := make(map[string]riskprofile.Answer)
	for _, q := range riskprofile.Questions() {
		answers[q.ID] = riskprofile.Answer{pick(q)}
	}
	return answers
}

// TestScore tests the weighted 0-100 questionnaire score.
//
// WHY: The score decides which model allocation seeds a new portfolio, so the
// weighting and checkbox averaging must match the published questionnaire.
func TestScore(t *testing.T) {
	t.Run("highest options score 100", func(t *testing.T) {
		answers := answersFor(func(q riskprofile.Question) string {
			best := q.Options[0]
			for _, o := range q.Options {
				if o.Score > best.Score {
					best = o
				}
			}
			return best.Value
		})
		if got := riskprofile.Score(answers); math.Abs(got-100) > 1e-9 {
			t.Errorf("Expected 100, got %v", got)
		}
	})

	t.Run("lowest options land in conservative band", func(t *testing.T) {
		answers := answersFor(func(q riskprofile.Question) string {
			worst := q.Options[0]
			for _, o := range q.Options {
				if o.Score < worst.Score {
					worst = o
				}
			}
			return worst.Value
		})
		got := riskprofile.Score(answers)
		if math.Abs(got-2.3/1.4*10) > 1e-9 {
			t.Errorf("Expected %v, got %v", 2.3/1.4*10, got)
		}
		if p := riskprofile.ProfileFor(got); p.Type != riskprofile.Conservative {
			t.Errorf("Expected conservative, got %s", p.Type)
		}
	})

	t.Run("checkbox averages selected options", func(t *testing.T) {
		answers := map[string]riskprofile.Answer{
			"investment_goals": {"wealth_creation", "emergency_fund"},
		}
		if got := riskprofile.Score(answers); math.Abs(got-60) > 1e-9 {
			t.Errorf("Expected 60, got %v", got)
		}
	})

	t.Run("no answers scores 0", func(t *testing.T) {
		if got := riskprofile.Score(nil); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})
}

// TestProfileFor tests the score band boundaries.
func TestProfileFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, riskprofile.Conservative},
		{30, riskprofile.Conservative},
		{30.01, riskprofile.ModeratelyConservative},
		{50, riskprofile.ModeratelyConservative},
		{70, riskprofile.Moderate},
		{85, riskprofile.ModeratelyAggressive},
		{85.5, riskprofile.Aggressive},
		{100, riskprofile.Aggressive},
	}
	for _, tt := range tests {
		if got := riskprofile.ProfileFor(tt.score); got.Type != tt.want {
			t.Errorf("ProfileFor(%v) = %s, want %s", tt.score, got.Type, tt.want)
		}
	}
}

// TestModelAllocation tests that every profile's model allocation sums to 100.
//
// WHY: Model allocations seed portfolio target allocations, which must pass the
// same sum check as user-supplied targets.
func TestModelAllocation(t *testing.T) {
	for _, typ := range []string{
		riskprofile.Conservative,
		riskprofile.ModeratelyConservative,
		riskprofile.Moderate,
		riskprofile.ModeratelyAggressive,
		riskprofile.Aggressive,
	} {
		alloc := riskprofile.ModelAllocation(typ)
		var sum float64
		for _, v := range alloc {
			sum += v
		}
		if sum != 100 {
			t.Errorf("%s allocation sums to %v", typ, sum)
		}
	}

	if riskprofile.ModelAllocation("reckless") != nil {
		t.Error("Expected nil allocation for unknown profile")
	}

	// Returned maps are copies.
	riskprofile.ModelAllocation(riskprofile.Moderate)["equity"] = 0
	if riskprofile.ModelAllocation(riskprofile.Moderate)["equity"] != 60 {
		t.Error("ModelAllocation leaked internal state")
	}
}

// TestValidate tests required-answer and option checks.
func TestValidate(t *testing.T) {
	answers := answersFor(func(q riskprofile.Question) string { return q.Options[0].Value })
	if errs := riskprofile.Validate(answers); len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}

	delete(answers, "age")
	answers["income"] = riskprofile.Answer{"lots"}
	answers["dependents"] = riskprofile.Answer{"0", "1-2"}

	errs := riskprofile.Validate(answers)
	if errs["age"] != "What is your age group? is required." {
		t.Errorf("Unexpected age error: %q", errs["age"])
	}
	if _, ok := errs["income"]; !ok {
		t.Error("Expected error for unknown option")
	}
	if _, ok := errs["dependents"]; !ok {
		t.Error("Expected error for multiple radio answers")
	}
}

// TestAnswer_UnmarshalJSON tests that radio and checkbox answers both decode.
func TestAnswer_UnmarshalJSON(t *testing.T) {
	var answers map[string]riskprofile.Answer
	body := `{"age": "18-25", "investment_goals": ["retirement", "tax_saving"], "income": ""}`
	if err := json.Unmarshal([]byte(body), &answers); err != nil {
		t.Fatalf("Unmarshal returned unexpected error: %v", err)
	}
	if len(answers["age"]) != 1 || answers["age"][0] != "18-25" {
		t.Errorf("Unexpected age answer: %v", answers["age"])
	}
	if len(answers["investment_goals"]) != 2 {
		t.Errorf("Unexpected goals answer: %v", answers["investment_goals"])
	}
	if len(answers["income"]) != 0 {
		t.Errorf("Expected empty income answer, got %v", answers["income"])
	}

	if err := json.Unmarshal([]byte(`{"age": 5}`), &answers); err == nil {
		t.Error("Expected error for numeric answer")
	}
}

// TestAssess tests the end-to-end assessment.
func TestAssess(t *testing.T) {
	answers := answersFor(func(q riskprofile.Question) string { return q.Options[0].Value })
	a := riskprofile.Assess(answers)
	if a.Profile.Type == "" || a.Recommendations.InvestmentStrategy == "" {
		t.Errorf("Incomplete assessment: %+v", a)
	}
	if a.Score < 0 || a.Score > 100 {
		t.Errorf("Score out of range: %v", a.Score)
	}
}
