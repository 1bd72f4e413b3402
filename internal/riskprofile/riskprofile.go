// Package riskprofile scores the investor risk questionnaire and maps the
// score to one of five investor profiles, each with a model asset allocation.
package riskprofile

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Question types.
const (
	TypeRadio    = "radio"
	TypeCheckbox = "checkbox"
)

// Profile types, from least to most risk tolerant.
const (
	Conservative           = "conservative"
	ModeratelyConservative = "moderately_conservative"
	Moderate               = "moderate"
	ModeratelyAggressive   = "moderately_aggressive"
	Aggressive             = "aggressive"
)

// Option is one selectable answer.
type Option struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Question is one questionnaire entry. Weight is the share of the question in
// the weighted score.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []Option `json:"options"`
	Required bool     `json:"required"`
	Weight   float64  `json:"weight"`
}

// option returns the option with the given value.
func (q Question) option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Answer holds the selected option values of one question. It unmarshals
// from either a single JSON string (radio) or an array of strings (checkbox).
type Answer []string

// UnmarshalJSON accepts "value" or ["a", "b"].
func (a *Answer) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*a = nil
		} else {
			*a = Answer{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings")
	}
	*a = many
	return nil
}

// Profile is the result for a score band.
type Profile struct {
	Type                string             `json:"type"`
	Label               string             `json:"label"`
	Description         string             `json:"description"`
	Characteristics     []string           `json:"characteristics"`
	SuitableInvestments []string           `json:"suitableInvestments"`
	AssetAllocation     map[string]float64 `json:"assetAllocation"`

	maxScore float64
}

// Strategy holds the profile-specific advice.
type Strategy struct {
	InvestmentStrategy   string `json:"investmentStrategy"`
	PortfolioRebalancing string `json:"portfolioRebalancing"`
	RiskManagement       string `json:"riskManagement"`
	TaxPlanning          string `json:"taxPlanning"`
	Monitoring           string `json:"monitoring"`
}

// Assessment is the scored questionnaire.
type Assessment struct {
	Score           float64  `json:"score"`
	Profile         Profile  `json:"profile"`
	Recommendations Strategy `json:"recommendations"`
}

// Questions returns the questionnaire in display order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Validate returns one message per required question without an answer,
// keyed by question ID. Unknown option values are reported too.
func Validate(answers map[string]Answer) map[string]string {
	errors := make(map[string]string)
	for _, q := range questions {
		answer := answers[q.ID]
		if len(answer) == 0 {
			if q.Required {
				errors[q.ID] = q.Question + " is required."
			}
			continue
		}
		if q.Type == TypeRadio && len(answer) > 1 {
			errors[q.ID] = "exactly one option must be selected"
			continue
		}
		for _, v := range answer {
			if _, ok := q.option(v); !ok {
				errors[q.ID] = fmt.Sprintf("unknown option %q", v)
				break
			}
		}
	}
	return errors
}

// Score returns the weighted questionnaire score on a 0-100 scale.
// Checkbox questions contribute the average score of the selected options.
// Unanswered questions are left out of the weight total.
func Score(answers map[string]Answer) float64 {
	var total, totalWeight float64
	for _, q := range questions {
		answer := answers[q.ID]
		if len(answer) == 0 {
			continue
		}
		var sum float64
		for _, v := range answer {
			if o, ok := q.option(v); ok {
				sum += o.Score
			}
		}
		if q.Type == TypeCheckbox {
			sum /= float64(len(answer))
		}
		total += sum * q.Weight
		totalWeight += q.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Min(100, math.Max(0, total/totalWeight*10))
}

// ProfileFor maps a 0-100 score to its profile.
func ProfileFor(score float64) Profile {
	for _, p := range profiles {
		if score <= p.maxScore {
			return p.clone()
		}
	}
	return profiles[len(profiles)-1].clone()
}

// Profiles returns every profile, from most conservative to most aggressive.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = p.clone()
	}
	return out
}

// Lookup returns the profile with the given type.
func Lookup(profileType string) (Profile, bool) {
	t := strings.ToLower(strings.TrimSpace(profileType))
	for _, p := range profiles {
		if p.Type == t {
			return p.clone(), true
		}
	}
	return Profile{}, false
}

// IsValid reports whether profileType names a known profile.
func IsValid(profileType string) bool {
	_, ok := Lookup(profileType)
	return ok
}

// ModelAllocation returns the model asset allocation of profileType, or nil.
func ModelAllocation(profileType string) map[string]float64 {
	p, ok := Lookup(profileType)
	if !ok {
		return nil
	}
	return p.AssetAllocation
}

// Assess scores answers and returns the matching profile and strategy.
// Callers validate answers first.
func Assess(answers map[string]Answer) Assessment {
	score := Score(answers)
	p := ProfileFor(score)
	return Assessment{
		Score:           math.Round(score*100) / 100,
		Profile:         p,
		Recommendations: strategies[p.Type],
	}
}

func (p Profile) clone() Profile {
	c := p
	c.Characteristics = append([]string(nil), p.Characteristics...)
	c.SuitableInvestments = append([]string(nil), p.SuitableInvestments...)
	c.AssetAllocation = make(map[string]float64, len(p.AssetAllocation))
	for k, v := range p.AssetAllocation {
		c.AssetAllocation[k] = v
	}
	return c
}
