package profile

import (
	"github.com/nikogura/talent-match/pkg/model"
)

// WeightTable maps question id -> option id -> trait deltas.
type WeightTable map[int]map[string]map[model.TraitKey]int

// TagTable maps question id -> option id -> condition tags.
type TagTable map[int]map[string][]model.ConditionTag

// WeightsFromQuestions extracts the trait weight table from a question bank.
// Options without trait scores are left out so they contribute nothing.
func WeightsFromQuestions(questions []model.Question) (table WeightTable) {
	table = make(WeightTable, len(questions))
	for _, q := range questions {
		for _, opt := range q.Options {
			if len(opt.TraitScores) == 0 {
				continue
			}
			if table[q.ID] == nil {
				table[q.ID] = make(map[string]map[model.TraitKey]int)
			}
			table[q.ID][opt.ID] = opt.TraitScores
		}
	}
	return table
}

// TagsFromQuestions extracts the per-option condition tag mapping from a question bank.
func TagsFromQuestions(questions []model.Question) (table TagTable) {
	table = make(TagTable)
	for _, q := range questions {
		for _, opt := range q.Options {
			if len(opt.ConditionTags) == 0 {
				continue
			}
			if table[q.ID] == nil {
				table[q.ID] = make(map[string][]model.ConditionTag)
			}
			table[q.ID][opt.ID] = opt.ConditionTags
		}
	}
	return table
}

// AggregateTraits sums the trait deltas of every answered option found in weights.
// Questions missing from the table contribute nothing. No normalization is applied.
func AggregateTraits(answers model.Answers, weights WeightTable) (traits model.TraitVector) {
	traits = model.NewTraitVector()
	for qid, optID := range answers {
		options, ok := weights[qid]
		if !ok {
			continue
		}
		deltas, ok := options[optID]
		if !ok {
			continue
		}
		for key, delta := range deltas {
			traits.Add(key, delta)
		}
	}
	return traits
}

// CollectPrimaryTags gathers the condition tags mapped to primary-quiz answers.
func CollectPrimaryTags(answers model.Answers, table TagTable) (tags model.ConditionSet) {
	var collected []model.ConditionTag
	for qid, optID := range answers {
		collected = append(collected, table[qid][optID]...)
	}
	tags = model.NewConditionSet(collected...)
	return tags
}

// BuildUserProfile derives the trait vector and primary-quiz tags from answers.
func BuildUserProfile(answers model.Answers, questions []model.Question) (p model.UserProfile) {
	p = model.UserProfile{
		Traits:     AggregateTraits(answers, WeightsFromQuestions(questions)),
		Conditions: CollectPrimaryTags(answers, TagsFromQuestions(questions)),
	}
	return p
}
