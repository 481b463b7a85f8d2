package model

import "strings"

// OtherCategory is the bucket for jobs with no usable domain or category label.
const OtherCategory = "その他"

// Answers maps a primary-quiz question id to the chosen option id.
type Answers map[int]string

// ConditionAnswers maps a condition-quiz question id to the chosen option id.
type ConditionAnswers map[string]string

// Question is one primary-quiz question.
type Question struct {
	ID      int      `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Options []Option `json:"options" yaml:"options"`
}

// Option is one answer to a primary-quiz question.
type Option struct {
	ID              string           `json:"id" yaml:"id"`
	Text            string           `json:"text" yaml:"text"`
	TraitScores     map[TraitKey]int `json:"trait_scores,omitempty" yaml:"trait_scores,omitempty"`
	CharacterScores map[string]int   `json:"character_scores,omitempty" yaml:"character_scores,omitempty"`
	ConditionTags   []ConditionTag   `json:"condition_tags,omitempty" yaml:"condition_tags,omitempty"`
}

// FindOption returns the option with the given id.
func (q *Question) FindOption(id string) (opt Option, ok bool) {
	for _, o := range q.Options {
		if o.ID == id {
			opt = o
			ok = true
			return opt, ok
		}
	}
	return opt, ok
}

// ConditionQuestion is one second-stage question about working conditions.
type ConditionQuestion struct {
	ID      string            `json:"id" yaml:"id"`
	Text    string            `json:"text" yaml:"text"`
	Options []ConditionOption `json:"options" yaml:"options"`
}

// ConditionOption carries at most one tag.
type ConditionOption struct {
	ID   string       `json:"id" yaml:"id"`
	Text string       `json:"text" yaml:"text"`
	Tag  ConditionTag `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// CharacterProfile is one of the fixed personality archetypes.
type CharacterProfile struct {
	Name               string                `json:"name" yaml:"name"`
	Image              string                `json:"image" yaml:"image"`
	ShortDescription   string                `json:"short_description" yaml:"short_description"`
	Description        string                `json:"description" yaml:"description"`
	StrengthKeywords   []string              `json:"strength_keywords" yaml:"strength_keywords"`
	SuitablePersons    []string              `json:"suitable_persons" yaml:"suitable_persons"`
	SuitableCategories []string              `json:"suitable_categories,omitempty" yaml:"suitable_categories,omitempty"`
	Message            string                `json:"message,omitempty" yaml:"message,omitempty"`
	WorkingStyle       string                `json:"working_style,omitempty" yaml:"working_style,omitempty"`
	Factors            map[FactorKey]float64 `json:"factors" yaml:"factors"`
}

// JobMasterEntry is one row of the job catalog.
type JobMasterEntry struct {
	ID       string `json:"job_id" yaml:"job_id"`
	Name     string `json:"job_name" yaml:"job_name"`
	Domain   string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	Description           string `json:"job_description,omitempty" yaml:"job_description,omitempty"`
	SkillsSummary         string `json:"skills_summary,omitempty" yaml:"skills_summary,omitempty"`
	SuitablePersonType    string `json:"suitable_person_type,omitempty" yaml:"suitable_person_type,omitempty"`
	NotSuitablePersonType string `json:"not_suitable_person_type,omitempty" yaml:"not_suitable_person_type,omitempty"`
	RequiredTraits        string `json:"required_traits,omitempty" yaml:"required_traits,omitempty"`
	Synonyms              string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	EmploymentType        string `json:"employment_type,omitempty" yaml:"employment_type,omitempty"`

	QualificationNecessity string `json:"qualification_necessity,omitempty" yaml:"qualification_necessity,omitempty"`
	RelatedQualifications  string `json:"related_qualifications,omitempty" yaml:"related_qualifications,omitempty"`
	QualificationPath      string `json:"qualification_path,omitempty" yaml:"qualification_path,omitempty"`
	WhatToStartWith        string `json:"what_to_start_with,omitempty" yaml:"what_to_start_with,omitempty"`
	CareerPathExamples     string `json:"career_path_examples,omitempty" yaml:"career_path_examples,omitempty"`
	TeleworkPossible       string `json:"telework_possible,omitempty" yaml:"telework_possible,omitempty"`

	StanbyPlusURL string `json:"stanbyplus_url,omitempty" yaml:"stanbyplus_url,omitempty"`
	SalaryMapURL  string `json:"salary_map_url,omitempty" yaml:"salary_map_url,omitempty"`
	SearchURL     string `json:"search_url,omitempty" yaml:"search_url,omitempty"`
	RHashURL      string `json:"rhash_url,omitempty" yaml:"rhash_url,omitempty"`

	// TraitAffinity may carry keys beyond the three traits.
	TraitAffinity     map[string]float64 `json:"trait_affinity,omitempty" yaml:"trait_affinity,omitempty"`
	ConditionAffinity []ConditionTag     `json:"condition_affinity,omitempty" yaml:"condition_affinity,omitempty"`
	CharacterScores   map[string]int     `json:"character_scores,omitempty" yaml:"character_scores,omitempty"`
}

// CategoryKey returns the bucket key: domain, then category, then OtherCategory.
// Labels are trimmed so spreadsheet whitespace never splits a bucket.
func (j *JobMasterEntry) CategoryKey() (key string) {
	label := strings.TrimSpace(j.Domain)
	if label == "" {
		label = j.Category
	}
	key = NormalizeCategory(label)
	return key
}

// HasCondition reports whether the job carries tag.
func (j *JobMasterEntry) HasCondition(tag ConditionTag) (ok bool) {
	for _, t := range j.ConditionAffinity {
		if t == tag {
			ok = true
			return ok
		}
	}
	return ok
}

// CharacterScore returns the job's affinity for a character, zero when absent.
func (j *JobMasterEntry) CharacterScore(name string) (score int) {
	if name == "" {
		return score
	}
	score = j.CharacterScores[name]
	return score
}

// NormalizeCategory trims a label and maps blanks to OtherCategory.
func NormalizeCategory(label string) (key string) {
	key = strings.TrimSpace(label)
	if key == "" {
		key = OtherCategory
	}
	return key
}

// DiagnosisResult is the outcome of the primary quiz.
type DiagnosisResult struct {
	PrimaryType    string            `json:"primary_type" yaml:"primary_type"`
	SecondaryTypes []string          `json:"secondary_types" yaml:"secondary_types"`
	Scores         map[string]int    `json:"scores" yaml:"scores"`
	FactorScores   map[FactorKey]int `json:"factor_scores" yaml:"factor_scores"`
}

// SecondaryType returns the first secondary character, or "".
func (r *DiagnosisResult) SecondaryType() (name string) {
	if len(r.SecondaryTypes) > 0 {
		name = r.SecondaryTypes[0]
	}
	return name
}

// UserProfile is the trait vector plus the condition tags of one user.
type UserProfile struct {
	Traits     TraitVector  `json:"traits" yaml:"traits"`
	Conditions ConditionSet `json:"conditions" yaml:"conditions"`
}

// NewUserProfile returns an empty profile.
func NewUserProfile() (p UserProfile) {
	p = UserProfile{
		Traits:     NewTraitVector(),
		Conditions: ConditionSet{},
	}
	return p
}

// WithConditions returns a copy of p whose conditions include tags.
func (p UserProfile) WithConditions(tags []ConditionTag) (out UserProfile) {
	out = UserProfile{
		Traits:     p.Traits.Clone(),
		Conditions: p.Conditions.Union(tags),
	}
	return out
}

// JobCardView is a job plus its score, ready for display.
type JobCardView struct {
	JobMasterEntry
	CategoryName string  `json:"category_name" yaml:"category_name"`
	TotalScore   float64 `json:"total_score" yaml:"total_score"`
	ArticleURL   string  `json:"article_url,omitempty" yaml:"article_url,omitempty"`
	LinkURL      string  `json:"link_url,omitempty" yaml:"link_url,omitempty"`
}

// NewJobCardView builds the card for job with the given score.
func NewJobCardView(job JobMasterEntry, score float64) (card JobCardView) {
	card = JobCardView{
		JobMasterEntry: job,
		CategoryName:   job.CategoryKey(),
		TotalScore:     score,
		ArticleURL:     firstNonEmpty(job.StanbyPlusURL, job.SalaryMapURL),
		LinkURL:        firstNonEmpty(job.SearchURL, job.RHashURL),
	}
	return card
}

// JobDomainCardView summarizes one category and its best jobs.
type JobDomainCardView struct {
	CategoryName    string   `json:"category_name" yaml:"category_name"`
	Jobs            []string `json:"jobs" yaml:"jobs"`
	TopScore        float64  `json:"top_score" yaml:"top_score"`
	SuitableSummary string   `json:"suitable_summary,omitempty" yaml:"suitable_summary,omitempty"`
}

func firstNonEmpty(values ...string) (result string) {
	for _, v := range values {
		if v != "" {
			result = v
			return result
		}
	}
	return result
}
