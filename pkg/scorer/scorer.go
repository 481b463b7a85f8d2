package scorer

import (
	"math"
	"sort"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/pkg/errors"
)

// ExclusionScore marks a job that must never be surfaced.
const ExclusionScore = -1000000.0

// Policy selects how character fit combines with trait and condition fit.
type Policy string

const (
	// PolicyGated requires primary-character fit and excludes hard condition mismatches.
	PolicyGated Policy = "gated"
	// PolicyWeighted adds character fit to trait and condition fit and penalizes mismatches.
	PolicyWeighted Policy = "weighted"
)

// ParsePolicy validates a policy name. Empty selects PolicyGated.
func ParsePolicy(name string) (policy Policy, err error) {
	switch Policy(name) {
	case "", PolicyGated:
		policy = PolicyGated
	case PolicyWeighted:
		policy = PolicyWeighted
	default:
		err = errors.Errorf("unknown scoring policy %q: must be %q or %q", name, PolicyGated, PolicyWeighted)
	}
	return policy, err
}

// Breakdown explains how a score was reached.
type Breakdown struct {
	Total          float64              `json:"total"`
	Character      float64              `json:"character"`
	Trait          float64              `json:"trait"`
	ConditionBonus float64              `json:"condition_bonus"`
	Penalty        float64              `json:"penalty"`
	Matched        []model.ConditionTag `json:"matched,omitempty"`
	Mismatched     []string             `json:"mismatched,omitempty"`
	Excluded       bool                 `json:"excluded"`
	ExcludedBy     string               `json:"excluded_by,omitempty"`
}

// Scorer computes job match scores under one policy.
type Scorer struct {
	policy  Policy
	weights Weights
	rules   []Rule
}

// NewScorer creates a scorer for the given policy.
func NewScorer(policy Policy) (scorer *Scorer, err error) {
	switch policy {
	case PolicyGated:
		scorer = &Scorer{policy: policy, weights: GatedWeights, rules: HardMismatchRules}
	case PolicyWeighted:
		scorer = &Scorer{policy: policy, weights: WeightedPenaltyWeights, rules: PenaltyRules}
	default:
		err = errors.Errorf("unknown scoring policy %q", policy)
	}
	return scorer, err
}

// Policy returns the policy the scorer applies.
func (s *Scorer) Policy() (policy Policy) {
	policy = s.policy
	return policy
}

// Score returns the match score of job for profile. Higher is better.
// ExclusionScore means the job must not be shown.
func (s *Scorer) Score(profile model.UserProfile, job *model.JobMasterEntry, primary, secondary string) (score float64) {
	score = s.Explain(profile, job, primary, secondary).Total
	return score
}

// Admits reports whether a score may appear in a ranking.
// The gated policy drops everything at or below zero; the weighted policy only drops exclusions.
func (s *Scorer) Admits(score float64) (ok bool) {
	if math.IsNaN(score) || score <= ExclusionScore {
		return ok
	}
	if s.policy == PolicyGated {
		ok = score > 0
		return ok
	}
	ok = true
	return ok
}

// Explain computes the score of job for profile with its components.
func (s *Scorer) Explain(profile model.UserProfile, job *model.JobMasterEntry, primary, secondary string) (b Breakdown) {
	pScore := float64(job.CharacterScore(primary))
	sScore := float64(job.CharacterScore(secondary))

	if s.policy == PolicyGated {
		if pScore <= 0 {
			b = excluded("NO_PRIMARY_CHARACTER_FIT")
			return b
		}
		for _, rule := range s.rules {
			if rule.Matches(profile.Conditions, job) {
				b = excluded(rule.Name)
				return b
			}
		}
	}

	b.Character = pScore*s.weights.PrimaryCharacter + sScore*s.weights.SecondaryCharacter
	b.Trait = traitAffinity(profile.Traits, job.TraitAffinity, s.weights.TraitDivisor)

	for _, tag := range profile.Conditions {
		if job.HasCondition(tag) {
			b.Matched = append(b.Matched, tag)
		}
	}
	b.ConditionBonus = float64(len(b.Matched)) * s.weights.ConditionMatch

	if s.policy == PolicyWeighted {
		for _, rule := range s.rules {
			if rule.Matches(profile.Conditions, job) {
				b.Mismatched = append(b.Mismatched, rule.Name)
			}
		}
		b.Penalty = float64(len(b.Mismatched)) * s.weights.ConditionMismatch
	}

	b.Total = b.Character + b.Trait + b.ConditionBonus - b.Penalty
	return b
}

func excluded(reason string) (b Breakdown) {
	b = Breakdown{
		Total:      ExclusionScore,
		Excluded:   true,
		ExcludedBy: reason,
	}
	return b
}

// traitAffinity is the dot product of user traits with the job's weights, scaled by divisor.
// Job keys outside the trait set are ignored; NaN weights count as zero.
func traitAffinity(traits model.TraitVector, affinity map[string]float64, divisor float64) (sum float64) {
	if divisor == 0 {
		return sum
	}
	keys := make([]string, 0, len(traits))
	for k := range traits {
		keys = append(keys, string(k))
	}
	// Fixed order keeps float summation reproducible.
	sort.Strings(keys)

	for _, k := range keys {
		userVal := float64(traits[model.TraitKey(k)])
		jobVal := affinity[k]
		if math.IsNaN(jobVal) || math.IsInf(jobVal, 0) {
			continue
		}
		sum += userVal * (jobVal / divisor)
	}
	return sum
}
