package catalog

import (
	"github.com/nikogura/talent-match/pkg/model"
	"github.com/pkg/errors"
)

// AnswerSheet is one user's quiz input.
type AnswerSheet struct {
	Answers           model.Answers          `json:"answers" yaml:"answers"`
	ConditionAnswers  model.ConditionAnswers `json:"condition_answers,omitempty" yaml:"condition_answers,omitempty"`
	AllowedCategories []string               `json:"allowed_categories,omitempty" yaml:"allowed_categories,omitempty"`
}

// LoadAnswers reads an answer sheet from a JSON or YAML file.
func LoadAnswers(path string) (sheet AnswerSheet, err error) {
	var data []byte
	data, err = fetchFromFile(path)
	if err != nil {
		return sheet, err
	}

	sheet, err = ParseAnswers(data, FormatFor(path))
	if err != nil {
		err = errors.Wrapf(err, "failed to load answers: %s", path)
		return sheet, err
	}
	return sheet, err
}

// ParseAnswers decodes an answer sheet.
func ParseAnswers(data []byte, format Format) (sheet AnswerSheet, err error) {
	err = decode(data, format, &sheet)
	if err != nil {
		err = errors.Wrap(err, "failed to parse answers")
		return sheet, err
	}

	if sheet.Answers == nil {
		sheet.Answers = model.Answers{}
	}
	if sheet.ConditionAnswers == nil {
		sheet.ConditionAnswers = model.ConditionAnswers{}
	}
	return sheet, err
}
