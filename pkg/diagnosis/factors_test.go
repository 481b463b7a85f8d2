package diagnosis

import (
	"testing"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestRawFactorScores(t *testing.T) {
	raw := map[string]int{kinkoban: 1, koho: 1, ouendan: 0, meister: -2}

	// total = 0 keeps every factor at zero even though two characters scored.
	scores := RawFactorScores(fixtureCharacters(), raw)
	for _, k := range model.AllFactors() {
		assert.Zero(t, scores[k])
	}

	raw[meister] = 0
	scores = RawFactorScores(fixtureCharacters(), raw)
	assert.InDelta(t, 1.5, scores[model.FactorSteadyExecution], 1e-9)
	assert.InDelta(t, 1.5, scores[model.FactorTeamSupport], 1e-9)
	assert.InDelta(t, 1.5, scores[model.FactorEmpathy], 1e-9)
	assert.InDelta(t, 1.0, scores[model.FactorCreativity], 1e-9)
	assert.InDelta(t, 1.5, scores[model.FactorPlanning], 1e-9)
}

func TestFactorScoresRoundAndClamp(t *testing.T) {
	characters := []model.CharacterProfile{
		{Name: "big", Factors: map[model.FactorKey]float64{model.FactorCreativity: 9, model.FactorEmpathy: -4}},
	}

	scores := FactorScores(characters, map[string]int{"big": 2})
	assert.Equal(t, 3, scores[model.FactorCreativity])
	assert.Equal(t, 0, scores[model.FactorEmpathy])
	assert.Equal(t, 0, scores[model.FactorPlanning])
	assert.Len(t, scores, 5)
}

func TestFactorIcons(t *testing.T) {
	icons := FactorIcons(map[model.FactorKey]int{
		model.FactorSteadyExecution: 3,
		model.FactorTeamSupport:     2,
		model.FactorEmpathy:         1,
		model.FactorCreativity:      0,
	})

	assert.Equal(t, 5, icons[model.FactorSteadyExecution])
	assert.Equal(t, 3, icons[model.FactorTeamSupport])
	assert.Equal(t, 1, icons[model.FactorEmpathy])
	assert.Equal(t, 1, icons[model.FactorCreativity])
	assert.Equal(t, 1, icons[model.FactorPlanning])
}

func TestIconsMin1(t *testing.T) {
	icons := IconsMin1(map[model.FactorKey]int{
		model.FactorSteadyExecution: 3,
		model.FactorTeamSupport:     1,
	})

	assert.Equal(t, 5, icons[model.FactorSteadyExecution])
	assert.Equal(t, 2, icons[model.FactorTeamSupport])
	assert.Equal(t, 1, icons[model.FactorEmpathy])

	empty := IconsMin1(map[model.FactorKey]int{})
	for _, k := range model.AllFactors() {
		assert.Zero(t, empty[k])
	}
}
