package diagnosis

import (
	"math"

	"github.com/nikogura/talent-match/pkg/model"
)

const (
	factorMin = 0
	factorMax = 3
	iconMax   = 5
)

// RawFactorScores averages each character's fixed factor profile weighted by its raw score.
// Characters with a non-positive score carry no weight. The result is unrounded; a
// non-positive total yields zeros.
func RawFactorScores(characters []model.CharacterProfile, raw map[string]int) (scores map[model.FactorKey]float64) {
	scores = make(map[model.FactorKey]float64, 5)
	for _, k := range model.AllFactors() {
		scores[k] = 0
	}

	total := 0
	for _, v := range raw {
		total += v
	}
	if total <= 0 {
		return scores
	}

	byName := make(map[string]*model.CharacterProfile, len(characters))
	for i := range characters {
		byName[characters[i].Name] = &characters[i]
	}

	for name, weight := range raw {
		if weight <= 0 {
			continue
		}
		ch, ok := byName[name]
		if !ok {
			continue
		}
		for _, k := range model.AllFactors() {
			scores[k] += ch.Factors[k] * float64(weight)
		}
	}

	for _, k := range model.AllFactors() {
		scores[k] /= float64(total)
	}
	return scores
}

// FactorScores is RawFactorScores rounded to the nearest integer and clamped to [0, 3].
func FactorScores(characters []model.CharacterProfile, raw map[string]int) (scores map[model.FactorKey]int) {
	scores = make(map[model.FactorKey]int, 5)
	for k, v := range RawFactorScores(characters, raw) {
		scores[k] = clampFactor(v)
	}
	return scores
}

func clampFactor(v float64) (out int) {
	if math.IsNaN(v) {
		return out
	}
	out = int(math.Round(v))
	if out < factorMin {
		out = factorMin
	}
	if out > factorMax {
		out = factorMax
	}
	return out
}

// FactorIcons maps 0-3 factor scores onto the five-mark result scale (3->5, 2->3, 1->1).
// Out-of-range values are rounded and clamped to [1, 5].
func FactorIcons(scores map[model.FactorKey]int) (icons map[model.FactorKey]int) {
	icons = make(map[model.FactorKey]int, 5)
	for _, k := range model.AllFactors() {
		v := scores[k]
		switch v {
		case 3:
			icons[k] = 5
		case 2:
			icons[k] = 3
		case 1:
			icons[k] = 1
		default:
			n := v
			if n < 1 {
				n = 1
			}
			if n > iconMax {
				n = iconMax
			}
			icons[k] = n
		}
	}
	return icons
}

// IconsMin1 scales scores relative to the highest one onto 0-5 marks.
// Every factor gets at least one mark unless all scores are zero.
func IconsMin1(scores map[model.FactorKey]int) (icons map[model.FactorKey]int) {
	icons = make(map[model.FactorKey]int, 5)
	highest := 0
	for _, k := range model.AllFactors() {
		if scores[k] > highest {
			highest = scores[k]
		}
	}

	for _, k := range model.AllFactors() {
		if highest == 0 {
			icons[k] = 0
			continue
		}
		n := int(math.Round(float64(scores[k]) / float64(highest) * iconMax))
		if n < 1 {
			n = 1
		}
		if n > iconMax {
			n = iconMax
		}
		icons[k] = n
	}
	return icons
}
