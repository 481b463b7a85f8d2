package engine

import (
	"context"
	"math/rand/v2"

	"github.com/nikogura/talent-match/pkg/catalog"
	"github.com/nikogura/talent-match/pkg/config"
	"github.com/nikogura/talent-match/pkg/diagnosis"
	"github.com/nikogura/talent-match/pkg/model"
	"github.com/nikogura/talent-match/pkg/profile"
	"github.com/nikogura/talent-match/pkg/ranking"
	"github.com/nikogura/talent-match/pkg/renderer"
	"github.com/nikogura/talent-match/pkg/scorer"
	"github.com/pkg/errors"
)

// Engine binds a catalog to one scorer. It holds no per-request state.
type Engine struct {
	Catalog    *catalog.Catalog
	Classifier *diagnosis.Classifier
	Ranker     *ranking.Ranker
	Matching   config.MatchingConfig
}

// New builds an engine over cat using the matching settings.
func New(cat *catalog.Catalog, matching config.MatchingConfig, opts ...ranking.Option) (e *Engine, err error) {
	var policy scorer.Policy
	policy, err = scorer.ParsePolicy(matching.Policy)
	if err != nil {
		return e, err
	}

	var s *scorer.Scorer
	s, err = scorer.NewScorer(policy)
	if err != nil {
		return e, err
	}

	opts = append([]ranking.Option{ranking.WithCategoryReasons(cat.CategoryReasons)}, opts...)
	e = &Engine{
		Catalog:    cat,
		Classifier: cat.Classifier(),
		Ranker:     ranking.NewRanker(s, opts...),
		Matching:   matching,
	}
	return e, err
}

// FromConfig loads the configured catalog, or the built-in one, and builds an engine.
// Sampling draws from a source seeded by seed.
func FromConfig(ctx context.Context, cfg config.Config, seed uint64) (e *Engine, err error) {
	var cat *catalog.Catalog
	if cfg.CatalogLocation != "" {
		cat, err = catalog.Open(ctx, cfg.CatalogLocation)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		err = errors.Wrap(err, "failed to load catalog")
		return e, err
	}

	if cfg.JobsLocation != "" {
		var jobs []model.JobMasterEntry
		jobs, err = catalog.LoadJobs(ctx, cfg.JobsLocation)
		if err != nil {
			return e, err
		}
		err = cat.ReplaceJobs(jobs)
		if err != nil {
			return e, err
		}
	}

	e, err = New(cat, cfg.Matching, ranking.WithRand(ranking.LockedSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))))
	return e, err
}

// Diagnose classifies the answers and builds the profile extended by condition answers.
func (e *Engine) Diagnose(sheet catalog.AnswerSheet) (result model.DiagnosisResult, p model.UserProfile) {
	result = e.Classifier.Classify(sheet.Answers, e.Catalog.Questions)
	p = profile.BuildUserProfile(sheet.Answers, e.Catalog.Questions)
	p = profile.Extend(p, sheet.ConditionAnswers, e.Catalog.ConditionQuestions)
	return result, p
}

// Options tunes a Match call. Zero values fall back to the engine's settings.
type Options struct {
	TopN          int
	DomainCount   int
	JobsPerDomain int
	SampleCount   int
	Sample        bool
}

// Match runs the whole flow for one answer sheet: diagnosis, top jobs, best categories
// within the allow-list and optionally a random pick among the strongest matches.
// With no allow-list in the sheet, the categories surfaced by character fit are used.
func (e *Engine) Match(sheet catalog.AnswerSheet, opts Options) (report renderer.Report) {
	result, p := e.Diagnose(sheet)
	report = e.newReport(result, p)

	topN := firstPositive(opts.TopN, e.Matching.TopN)
	domainCount := firstPositive(opts.DomainCount, e.Matching.DomainCount)
	perDomain := firstPositive(opts.JobsPerDomain, e.Matching.JobsPerDomain)

	jobs := e.Catalog.Jobs
	primary, secondary := result.PrimaryType, result.SecondaryType()

	allowed := sheet.AllowedCategories
	if len(allowed) == 0 {
		allowed = e.Ranker.SurfacedFor(jobs, result)
	}

	report.TopJobs = e.Ranker.TopCards(p, jobs, primary, secondary, topN)
	report.Domains = e.Ranker.BestJobDomainsWithin(p, jobs, primary, secondary, allowed, domainCount, perDomain)

	if opts.Sample {
		count := firstPositive(opts.SampleCount, e.Matching.SampleCount)
		report.Sampled = ranking.ToCards(e.Ranker.SampleTopMatches(p, jobs, primary, count))
	}
	return report
}

// Report wraps a diagnosis without any job matching.
func (e *Engine) Report(sheet catalog.AnswerSheet) (report renderer.Report) {
	result, p := e.Diagnose(sheet)
	report = e.newReport(result, p)
	return report
}

func (e *Engine) newReport(result model.DiagnosisResult, p model.UserProfile) (report renderer.Report) {
	var character *model.CharacterProfile
	if ch, ok := e.Catalog.ByName(result.PrimaryType); ok {
		character = &ch
	}
	report = renderer.NewReport(result, character, p)
	report.Policy = string(e.Ranker.Scorer().Policy())
	return report
}

func firstPositive(values ...int) (v int) {
	for _, candidate := range values {
		if candidate > 0 {
			v = candidate
			return v
		}
	}
	return v
}
