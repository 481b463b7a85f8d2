package diagnosis

import (
	"sort"

	"github.com/nikogura/talent-match/pkg/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultFallbackCharacter is the primary type when no character scored above zero.
const DefaultFallbackCharacter = "家計の金庫番長"

// normalizedEpsilon treats normalized scores closer than this as tied.
const normalizedEpsilon = 0.0001

// maxSecondaryTypes is how many runners-up are reported.
const maxSecondaryTypes = 2

// Classifier turns primary-quiz answers into a DiagnosisResult.
type Classifier struct {
	characters []model.CharacterProfile
	fallback   string
}

// NewClassifier creates a classifier over the character catalog.
// An empty fallback selects DefaultFallbackCharacter.
func NewClassifier(characters []model.CharacterProfile, fallback string) (classifier *Classifier) {
	if fallback == "" {
		fallback = DefaultFallbackCharacter
	}
	classifier = &Classifier{
		characters: characters,
		fallback:   fallback,
	}
	return classifier
}

// Fallback returns the character used when every raw score is zero.
func (c *Classifier) Fallback() (name string) {
	name = c.fallback
	return name
}

// Classify scores every character from answers and picks the primary and secondary types.
func (c *Classifier) Classify(answers model.Answers, questions []model.Question) (result model.DiagnosisResult) {
	raw := c.RawScores(answers, questions)
	ranked := c.Rank(raw)

	nonZero := make([]string, 0, len(ranked))
	for _, name := range ranked {
		if raw[name] > 0 {
			nonZero = append(nonZero, name)
		}
	}

	primary := c.fallback
	secondary := []string{}
	if len(nonZero) > 0 {
		primary = nonZero[0]
		end := 1 + maxSecondaryTypes
		if end > len(nonZero) {
			end = len(nonZero)
		}
		secondary = append(secondary, nonZero[1:end]...)
	}

	result = model.DiagnosisResult{
		PrimaryType:    primary,
		SecondaryTypes: secondary,
		Scores:         raw,
		FactorScores:   FactorScores(c.characters, raw),
	}
	return result
}

// RawScores accumulates character deltas from the chosen options.
// Every catalog character starts at zero; names outside the catalog are added on first sight.
func (c *Classifier) RawScores(answers model.Answers, questions []model.Question) (raw map[string]int) {
	raw = make(map[string]int, len(c.characters))
	for _, ch := range c.characters {
		raw[ch.Name] = 0
	}

	for i := range questions {
		q := &questions[i]
		optID, answered := answers[q.ID]
		if !answered {
			continue
		}
		opt, found := q.FindOption(optID)
		if !found {
			continue
		}
		for name, delta := range opt.CharacterScores {
			raw[name] += delta
		}
	}
	return raw
}

// Rank orders the catalog characters by normalized score, raw score, then name.
// Name comparison uses Japanese collation with byte order as the final key, so the
// order is total and independent of catalog order.
func (c *Classifier) Rank(raw map[string]int) (names []string) {
	maxScore := 0
	for _, v := range raw {
		if v > maxScore {
			maxScore = v
		}
	}

	normalized := make(map[string]float64, len(c.characters))
	names = make([]string, 0, len(c.characters))
	for _, ch := range c.characters {
		names = append(names, ch.Name)
		if maxScore > 0 {
			normalized[ch.Name] = float64(raw[ch.Name]) / float64(maxScore)
		}
	}

	// collate.Collator is not safe for concurrent use.
	col := collate.New(language.Japanese)

	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		diff := normalized[b] - normalized[a]
		if diff > normalizedEpsilon || diff < -normalizedEpsilon {
			return diff < 0
		}
		if raw[a] != raw[b] {
			return raw[a] > raw[b]
		}
		if cmp := col.CompareString(a, b); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})
	return names
}
