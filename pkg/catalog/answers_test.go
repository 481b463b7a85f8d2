package catalog

import (
	"testing"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAnswersYAML(t *testing.T) {
	path := writeFile(t, "answers.yaml", `
answers:
  1: A
  15: B
condition_answers:
  "101": A
allowed_categories: [事務, " 接客業 "]
`)

	sheet, err := LoadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, model.Answers{1: "A", 15: "B"}, sheet.Answers)
	assert.Equal(t, model.ConditionAnswers{"101": "A"}, sheet.ConditionAnswers)
	assert.Equal(t, []string{"事務", " 接客業 "}, sheet.AllowedCategories)
}

func TestLoadAnswersJSON(t *testing.T) {
	path := writeFile(t, "answers.json", `{"answers": {"2": "C", "18": "A"}}`)

	sheet, err := LoadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, model.Answers{2: "C", 18: "A"}, sheet.Answers)
	assert.NotNil(t, sheet.ConditionAnswers)
	assert.Empty(t, sheet.AllowedCategories)
}

func TestParseAnswersEmptyDocument(t *testing.T) {
	sheet, err := ParseAnswers([]byte(`{}`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, sheet.Answers)
	assert.Empty(t, sheet.Answers)
}

func TestLoadAnswersRejectsGarbage(t *testing.T) {
	path := writeFile(t, "answers.json", `{"answers": [1, 2`)
	_, err := LoadAnswers(path)
	assert.Error(t, err)
}
