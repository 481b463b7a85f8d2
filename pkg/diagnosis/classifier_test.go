package diagnosis

import (
	"testing"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	meister   = "一点集中の精密マイスター"
	koho      = "ご近所の広報部長"
	ouendan   = "子育て応援団長"
	kinkoban  = "家計の金庫番長"
	hiddenOne = "未登録キャラ"
)

func fixtureCharacters() (characters []model.CharacterProfile) {
	characters = []model.CharacterProfile{
		{
			Name: kinkoban,
			Factors: map[model.FactorKey]float64{
				model.FactorSteadyExecution: 3, model.FactorPlanning: 3, model.FactorTeamSupport: 1,
			},
		},
		{
			Name: koho,
			Factors: map[model.FactorKey]float64{
				model.FactorEmpathy: 3, model.FactorCreativity: 2, model.FactorTeamSupport: 2,
			},
		},
		{
			Name: ouendan,
			Factors: map[model.FactorKey]float64{
				model.FactorTeamSupport: 3, model.FactorEmpathy: 3,
			},
		},
		{
			Name: meister,
			Factors: map[model.FactorKey]float64{
				model.FactorSteadyExecution: 3, model.FactorPlanning: 2,
			},
		},
	}
	return characters
}

func fixtureQuestions() (questions []model.Question) {
	questions = []model.Question{
		{
			ID: 1,
			Options: []model.Option{
				{ID: "A", CharacterScores: map[string]int{meister: 3, kinkoban: 1}},
				{ID: "B", CharacterScores: map[string]int{koho: 3}},
				{ID: "C", CharacterScores: map[string]int{ouendan: 3}},
			},
		},
		{
			ID: 2,
			Options: []model.Option{
				{ID: "A", CharacterScores: map[string]int{meister: 2, kinkoban: 2}},
				{ID: "B", CharacterScores: map[string]int{koho: 2, ouendan: 1}},
				{ID: "C", CharacterScores: map[string]int{ouendan: 2, hiddenOne: 4}},
			},
		},
		{
			ID: 3,
			Options: []model.Option{
				{ID: "A", CharacterScores: map[string]int{meister: 2}},
				{ID: "B", CharacterScores: map[string]int{koho: 1, kinkoban: 1}},
				{ID: "C"},
			},
		},
		{
			ID: 4,
			Options: []model.Option{
				{ID: "A", CharacterScores: map[string]int{koho: 1, ouendan: 1}},
			},
		},
	}
	return questions
}

func TestClassifyEmptyAnswersFallsBack(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), "")
	result := c.Classify(model.Answers{}, fixtureQuestions())

	assert.Equal(t, DefaultFallbackCharacter, result.PrimaryType)
	assert.Empty(t, result.SecondaryTypes)
	require.Len(t, result.FactorScores, 5)
	for k, v := range result.FactorScores {
		assert.Zerof(t, v, "factor %s should be zero", k)
	}
	for name, v := range result.Scores {
		assert.Zerof(t, v, "character %s should have no score", name)
	}
}

func TestClassifyCustomFallback(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), koho)
	result := c.Classify(model.Answers{3: "C"}, fixtureQuestions())

	assert.Equal(t, koho, result.PrimaryType)
	assert.Equal(t, koho, c.Fallback())
}

func TestClassifyLogicOrientedAnswers(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), "")
	result := c.Classify(model.Answers{1: "A", 2: "A", 3: "A"}, fixtureQuestions())

	assert.Equal(t, meister, result.PrimaryType)
	assert.Equal(t, []string{kinkoban}, result.SecondaryTypes)
	assert.Equal(t, 7, result.Scores[meister])
	assert.Equal(t, 3, result.Scores[kinkoban])

	// (3*7 + 3*3) / 10 = 3, (2*7 + 3*3) / 10 = 2.3
	assert.Equal(t, 3, result.FactorScores[model.FactorSteadyExecution])
	assert.Equal(t, 2, result.FactorScores[model.FactorPlanning])
	assert.Equal(t, 0, result.FactorScores[model.FactorEmpathy])
}

func TestClassifySecondaryTypesCappedAtTwo(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), "")
	// meister 3+2=5, kinkoban 1+2+1=4, koho 1+1=2, ouendan 1
	result := c.Classify(model.Answers{1: "A", 2: "A", 3: "B", 4: "A"}, fixtureQuestions())

	assert.Equal(t, meister, result.PrimaryType)
	require.Len(t, result.SecondaryTypes, 2)
	assert.Equal(t, kinkoban, result.SecondaryTypes[0])
	assert.Equal(t, koho, result.SecondaryTypes[1])
	assert.Equal(t, 1, result.Scores[ouendan])
}

func TestClassifyToleratesUnknownCharacters(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), "")
	result := c.Classify(model.Answers{2: "C"}, fixtureQuestions())

	assert.Equal(t, 4, result.Scores[hiddenOne], "unknown names are kept in raw scores")
	assert.Equal(t, ouendan, result.PrimaryType, "unknown names never become the primary type")
	assert.NotContains(t, result.SecondaryTypes, hiddenOne)
}

func TestClassifyIgnoresUnknownQuestionsAndOptions(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), "")
	result := c.Classify(model.Answers{42: "A", 1: "Z"}, fixtureQuestions())

	assert.Equal(t, DefaultFallbackCharacter, result.PrimaryType)
}

func TestRankTieBreakIsTotalAndOrderIndependent(t *testing.T) {
	names := []string{"さくら", "あおい", "かえで", "Alpha"}
	forward := make([]model.CharacterProfile, 0, len(names))
	backward := make([]model.CharacterProfile, 0, len(names))
	for i := range names {
		forward = append(forward, model.CharacterProfile{Name: names[i]})
		backward = append(backward, model.CharacterProfile{Name: names[len(names)-1-i]})
	}
	raw := map[string]int{"さくら": 2, "あおい": 2, "かえで": 2, "Alpha": 5}

	first := NewClassifier(forward, "").Rank(raw)
	second := NewClassifier(backward, "").Rank(raw)

	assert.Equal(t, first, second)
	assert.Equal(t, "Alpha", first[0], "higher raw score wins before names are compared")
	assert.Equal(t, []string{"あおい", "かえで", "さくら"}, first[1:])

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, NewClassifier(forward, "").Rank(raw))
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewClassifier(fixtureCharacters(), "")
	answers := model.Answers{1: "B", 2: "C", 3: "B"}

	first := c.Classify(answers, fixtureQuestions())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Classify(answers, fixtureQuestions()))
	}
}
