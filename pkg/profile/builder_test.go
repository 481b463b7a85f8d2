package profile

import (
	"testing"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureQuestions() (questions []model.Question) {
	questions = []model.Question{
		{
			ID:   1,
			Text: "夕食の買い物。あなたの行動は？",
			Options: []model.Option{
				{ID: "A", TraitScores: map[model.TraitKey]int{model.TraitLogicDetail: 2}},
				{ID: "B", TraitScores: map[model.TraitKey]int{model.TraitCommunication: 1}},
				{ID: "C", TraitScores: map[model.TraitKey]int{model.TraitLogicDetail: 1, model.TraitCareSupport: 1}},
			},
		},
		{
			ID:   2,
			Text: "家族内でのあなたの役割は？",
			Options: []model.Option{
				{
					ID:            "A",
					TraitScores:   map[model.TraitKey]int{model.TraitLogicDetail: 2},
					ConditionTags: []model.ConditionTag{model.SittingWork, model.LowCommunicationOK},
				},
				{
					ID:            "B",
					TraitScores:   map[model.TraitKey]int{model.TraitCommunication: 1, model.TraitCareSupport: 1},
					ConditionTags: []model.ConditionTag{model.CustomerFacing, model.TalkActive},
				},
				{ID: "C", TraitScores: map[model.TraitKey]int{}},
			},
		},
		{
			ID:   3,
			Text: "減点のある設問",
			Options: []model.Option{
				{ID: "A", TraitScores: map[model.TraitKey]int{model.TraitCommunication: -1}},
			},
		},
	}
	return questions
}

func TestAggregateTraits(t *testing.T) {
	weights := WeightsFromQuestions(fixtureQuestions())

	tests := []struct {
		name    string
		answers model.Answers
		want    model.TraitVector
	}{
		{
			name:    "empty answers yield a zero vector with every key",
			answers: model.Answers{},
			want:    model.TraitVector{model.TraitLogicDetail: 0, model.TraitCommunication: 0, model.TraitCareSupport: 0},
		},
		{
			name:    "deltas accumulate across questions",
			answers: model.Answers{1: "C", 2: "A"},
			want:    model.TraitVector{model.TraitLogicDetail: 3, model.TraitCommunication: 0, model.TraitCareSupport: 1},
		},
		{
			name:    "unknown question and option are ignored",
			answers: model.Answers{1: "B", 99: "A", 2: "Z"},
			want:    model.TraitVector{model.TraitLogicDetail: 0, model.TraitCommunication: 1, model.TraitCareSupport: 0},
		},
		{
			name:    "option without trait scores contributes nothing",
			answers: model.Answers{2: "C"},
			want:    model.TraitVector{model.TraitLogicDetail: 0, model.TraitCommunication: 0, model.TraitCareSupport: 0},
		},
		{
			name:    "negative deltas are accepted",
			answers: model.Answers{1: "B", 3: "A"},
			want:    model.TraitVector{model.TraitLogicDetail: 0, model.TraitCommunication: 0, model.TraitCareSupport: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateTraits(tt.answers, weights)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateTraitsNilTable(t *testing.T) {
	got := AggregateTraits(model.Answers{1: "A"}, nil)
	assert.Equal(t, model.NewTraitVector(), got)
}

func TestCollectPrimaryTags(t *testing.T) {
	table := TagsFromQuestions(fixtureQuestions())

	got := CollectPrimaryTags(model.Answers{1: "A", 2: "A"}, table)
	assert.Equal(t, model.ConditionSet{model.LowCommunicationOK, model.SittingWork}, got)

	got = CollectPrimaryTags(model.Answers{1: "A"}, table)
	assert.Empty(t, got)
}

func TestBuildUserProfile(t *testing.T) {
	p := BuildUserProfile(model.Answers{1: "A", 2: "B"}, fixtureQuestions())

	assert.Equal(t, 2, p.Traits.Get(model.TraitLogicDetail))
	assert.Equal(t, 1, p.Traits.Get(model.TraitCommunication))
	assert.Equal(t, 1, p.Traits.Get(model.TraitCareSupport))
	require.Len(t, p.Conditions, 2)
	assert.True(t, p.Conditions.Has(model.TalkActive))
	assert.True(t, p.Conditions.Has(model.CustomerFacing))
}
