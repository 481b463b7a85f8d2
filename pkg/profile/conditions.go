package profile

import (
	"github.com/nikogura/talent-match/pkg/model"
)

// CollectTags returns the tags carried by the chosen condition-quiz options.
// Options without a tag, unanswered questions and unknown option ids add nothing.
func CollectTags(answers model.ConditionAnswers, bank []model.ConditionQuestion) (tags model.ConditionSet) {
	var collected []model.ConditionTag
	for _, q := range bank {
		optID, answered := answers[q.ID]
		if !answered {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == optID && opt.Tag != "" {
				collected = append(collected, opt.Tag)
				break
			}
		}
	}
	tags = model.NewConditionSet(collected...)
	return tags
}

// Extend merges the condition-quiz tags into an existing profile.
func Extend(p model.UserProfile, answers model.ConditionAnswers, bank []model.ConditionQuestion) (out model.UserProfile) {
	out = p.WithConditions(CollectTags(answers, bank))
	return out
}
