package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/nikogura/talent-match/pkg/diagnosis"
	"github.com/nikogura/talent-match/pkg/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/catalog.yaml
var defaultCatalog []byte

// Format is the encoding of a catalog or answers document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Catalog holds the static reference tables the engine runs against.
type Catalog struct {
	FallbackCharacter  string                    `json:"fallback_character,omitempty" yaml:"fallback_character,omitempty"`
	Characters         []model.CharacterProfile  `json:"characters" yaml:"characters"`
	Questions          []model.Question          `json:"questions" yaml:"questions"`
	ConditionQuestions []model.ConditionQuestion `json:"condition_questions" yaml:"condition_questions"`
	Jobs               []model.JobMasterEntry    `json:"jobs" yaml:"jobs"`
	CategoryReasons    map[string]string         `json:"category_reasons,omitempty" yaml:"category_reasons,omitempty"`
}

// Default returns the built-in catalog.
func Default() (cat *Catalog, err error) {
	cat, err = Parse(defaultCatalog, FormatYAML)
	if err != nil {
		err = errors.Wrap(err, "built-in catalog is invalid")
		return cat, err
	}
	return cat, err
}

// Load reads a catalog from a file. The format follows the file extension.
func Load(path string) (cat *Catalog, err error) {
	var data []byte
	data, err = fetchFromFile(path)
	if err != nil {
		return cat, err
	}

	cat, err = Parse(data, FormatFor(path))
	if err != nil {
		err = errors.Wrapf(err, "failed to load catalog: %s", path)
		return cat, err
	}
	return cat, err
}

// Open reads a catalog from a file path or an http(s) URL.
func Open(ctx context.Context, location string) (cat *Catalog, err error) {
	var data []byte
	data, err = Fetch(ctx, location)
	if err != nil {
		return cat, err
	}

	cat, err = Parse(data, FormatFor(location))
	if err != nil {
		err = errors.Wrapf(err, "failed to load catalog: %s", location)
		return cat, err
	}
	return cat, err
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (cat *Catalog, err error) {
	cat = &Catalog{}
	err = decode(data, format, cat)
	if err != nil {
		err = errors.Wrap(err, "failed to parse catalog")
		return cat, err
	}

	err = cat.Validate()
	if err != nil {
		err = errors.Wrap(err, "catalog validation failed")
		return cat, err
	}
	return cat, err
}

type jobsDocument struct {
	Jobs []model.JobMasterEntry `json:"jobs" yaml:"jobs"`
}

// LoadJobs reads a job catalog from a file path or URL. The document is either a
// list of jobs or an object with a "jobs" list.
func LoadJobs(ctx context.Context, location string) (jobs []model.JobMasterEntry, err error) {
	var data []byte
	data, err = Fetch(ctx, location)
	if err != nil {
		return jobs, err
	}

	format := FormatFor(location)
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) || bytes.HasPrefix(trimmed, []byte("-")) {
		err = decode(data, format, &jobs)
	} else {
		var doc jobsDocument
		err = decode(data, format, &doc)
		jobs = doc.Jobs
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse job catalog: %s", location)
		return jobs, err
	}

	err = validateJobs(jobs)
	if err != nil {
		err = errors.Wrapf(err, "job catalog validation failed: %s", location)
		return jobs, err
	}
	return jobs, err
}

// ReplaceJobs swaps in a job catalog loaded separately.
func (c *Catalog) ReplaceJobs(jobs []model.JobMasterEntry) (err error) {
	err = validateJobs(jobs)
	if err != nil {
		return err
	}
	c.Jobs = jobs
	return err
}

// Fallback returns the character used when nothing scores.
func (c *Catalog) Fallback() (name string) {
	name = c.FallbackCharacter
	if name == "" {
		name = diagnosis.DefaultFallbackCharacter
	}
	return name
}

// ByName looks up a character profile.
func (c *Catalog) ByName(name string) (character model.CharacterProfile, ok bool) {
	for _, ch := range c.Characters {
		if ch.Name == name {
			character = ch
			ok = true
			return character, ok
		}
	}
	return character, ok
}

// Classifier returns a classifier over the catalog's characters.
func (c *Catalog) Classifier() (classifier *diagnosis.Classifier) {
	classifier = diagnosis.NewClassifier(c.Characters, c.Fallback())
	return classifier
}

// Validate checks that the catalog is well-formed.
func (c *Catalog) Validate() (err error) {
	if len(c.Characters) == 0 {
		err = errors.New("no characters found in catalog")
		return err
	}

	names := make(map[string]bool, len(c.Characters))
	for i, ch := range c.Characters {
		if strings.TrimSpace(ch.Name) == "" {
			err = errors.Errorf("character at index %d missing name", i)
			return err
		}
		if names[ch.Name] {
			err = errors.Errorf("duplicate character %s", ch.Name)
			return err
		}
		names[ch.Name] = true
		for factor := range ch.Factors {
			if !factor.Valid() {
				err = errors.Errorf("character %s has unknown factor %q", ch.Name, factor)
				return err
			}
		}
	}

	if !names[c.Fallback()] {
		err = errors.Errorf("fallback character %s is not in the catalog", c.Fallback())
		return err
	}

	err = validateQuestions(c.Questions)
	if err != nil {
		return err
	}

	err = validateConditionQuestions(c.ConditionQuestions)
	if err != nil {
		return err
	}

	err = validateJobs(c.Jobs)
	return err
}

func validateQuestions(questions []model.Question) (err error) {
	ids := make(map[int]bool, len(questions))
	for _, q := range questions {
		if ids[q.ID] {
			err = errors.Errorf("duplicate question id %d", q.ID)
			return err
		}
		ids[q.ID] = true

		options := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if opt.ID == "" {
				err = errors.Errorf("question %d has an option without id", q.ID)
				return err
			}
			if options[opt.ID] {
				err = errors.Errorf("question %d has duplicate option %s", q.ID, opt.ID)
				return err
			}
			options[opt.ID] = true

			for trait := range opt.TraitScores {
				if !trait.Valid() {
					err = errors.Errorf("question %d option %s has unknown trait %q", q.ID, opt.ID, trait)
					return err
				}
			}
			for _, tag := range opt.ConditionTags {
				if !tag.Valid() {
					err = errors.Errorf("question %d option %s has unknown condition tag %q", q.ID, opt.ID, tag)
					return err
				}
			}
		}
	}
	return err
}

func validateConditionQuestions(questions []model.ConditionQuestion) (err error) {
	ids := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			err = errors.New("condition question without id")
			return err
		}
		if ids[q.ID] {
			err = errors.Errorf("duplicate condition question id %s", q.ID)
			return err
		}
		ids[q.ID] = true

		for _, opt := range q.Options {
			if opt.Tag != "" && !opt.Tag.Valid() {
				err = errors.Errorf("condition question %s option %s has unknown tag %q", q.ID, opt.ID, opt.Tag)
				return err
			}
		}
	}
	return err
}

func validateJobs(jobs []model.JobMasterEntry) (err error) {
	ids := make(map[string]bool, len(jobs))
	for i, job := range jobs {
		if job.ID == "" {
			err = errors.Errorf("job at index %d missing job_id", i)
			return err
		}
		if ids[job.ID] {
			err = errors.Errorf("duplicate job_id %s", job.ID)
			return err
		}
		ids[job.ID] = true

		if job.Name == "" {
			err = errors.Errorf("job %s missing job_name", job.ID)
			return err
		}
		for _, tag := range job.ConditionAffinity {
			if !tag.Valid() {
				err = errors.Errorf("job %s has unknown condition tag %q", job.ID, tag)
				return err
			}
		}
	}
	return err
}

// Warnings lists references the engine tolerates but that probably are mistakes:
// character names missing from the catalog and trait keys outside the trait set.
func (c *Catalog) Warnings() (warnings []string) {
	names := make(map[string]bool, len(c.Characters))
	for _, ch := range c.Characters {
		names[ch.Name] = true
	}

	for _, q := range c.Questions {
		for _, opt := range q.Options {
			for _, name := range sortedKeys(opt.CharacterScores) {
				if !names[name] {
					warnings = append(warnings, fmt.Sprintf("question %d option %s scores unknown character %s", q.ID, opt.ID, name))
				}
			}
		}
	}

	for _, job := range c.Jobs {
		for _, name := range sortedKeys(job.CharacterScores) {
			if !names[name] {
				warnings = append(warnings, fmt.Sprintf("job %s scores unknown character %s", job.ID, name))
			}
		}
		for _, key := range sortedKeys(job.TraitAffinity) {
			if !model.TraitKey(key).Valid() {
				warnings = append(warnings, fmt.Sprintf("job %s has trait weight %s outside the trait set", job.ID, key))
			}
		}
	}
	return warnings
}

// FormatFor picks the format from a file name or URL path.
func FormatFor(location string) (format Format) {
	p := location
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		format = FormatJSON
	}
	return format
}

func decode(data []byte, format Format, v any) (err error) {
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	return err
}

func sortedKeys[V any](m map[string]V) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
