package ranking

import (
	"sort"
	"strings"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/nikogura/talent-match/pkg/scorer"
)

// ScoredJob is a job with its match score. Index is the job's position in the catalog.
type ScoredJob struct {
	Job   model.JobMasterEntry `json:"job"`
	Score float64              `json:"score"`
	Index int                  `json:"-"`
}

// Source is the random source used for sampling. *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Option configures a Ranker.
type Option func(r *Ranker)

// WithRand sets the random source used by SampleTopMatches.
func WithRand(src Source) (opt Option) {
	opt = func(r *Ranker) {
		r.rand = src
	}
	return opt
}

// WithCategoryReasons sets the summary texts attached to category cards.
func WithCategoryReasons(reasons map[string]string) (opt Option) {
	opt = func(r *Ranker) {
		r.reasons = reasons
	}
	return opt
}

// Ranker applies one Scorer across a job catalog.
type Ranker struct {
	scorer  *scorer.Scorer
	rand    Source
	reasons map[string]string
}

// NewRanker creates a ranker. Every ranking entry point uses s.
func NewRanker(s *scorer.Scorer, opts ...Option) (ranker *Ranker) {
	ranker = &Ranker{scorer: s}
	for _, opt := range opts {
		opt(ranker)
	}
	return ranker
}

// Scorer returns the scorer behind the ranker.
func (r *Ranker) Scorer() (s *scorer.Scorer) {
	s = r.scorer
	return s
}

// RankAll scores every job, drops the ones the policy does not admit and sorts by
// score descending. Equal scores keep catalog order.
func (r *Ranker) RankAll(profile model.UserProfile, jobs []model.JobMasterEntry, primary, secondary string) (ranked []ScoredJob) {
	ranked = make([]ScoredJob, 0, len(jobs))
	for i := range jobs {
		score := r.scorer.Score(profile, &jobs[i], primary, secondary)
		if !r.scorer.Admits(score) {
			continue
		}
		ranked = append(ranked, ScoredJob{Job: jobs[i], Score: score, Index: i})
	}
	sortScored(ranked)
	return ranked
}

// TopN returns at most n entries of RankAll. n <= 0 returns everything.
func (r *Ranker) TopN(profile model.UserProfile, jobs []model.JobMasterEntry, primary, secondary string, n int) (ranked []ScoredJob) {
	ranked = truncate(r.RankAll(profile, jobs, primary, secondary), n)
	return ranked
}

// TopCards is TopN as display cards.
func (r *Ranker) TopCards(profile model.UserProfile, jobs []model.JobMasterEntry, primary, secondary string, n int) (cards []model.JobCardView) {
	cards = ToCards(r.TopN(profile, jobs, primary, secondary, n))
	return cards
}

// BestMatch returns the single highest-scoring admitted job.
func (r *Ranker) BestMatch(profile model.UserProfile, jobs []model.JobMasterEntry, primary string) (best ScoredJob, ok bool) {
	ranked := r.TopN(profile, jobs, primary, "", 1)
	if len(ranked) == 0 {
		return best, ok
	}
	best = ranked[0]
	ok = true
	return best, ok
}

// MatchDiagnosis ranks the catalog on character fit alone, using the primary type and
// the first secondary type of a diagnosis with an empty profile.
func (r *Ranker) MatchDiagnosis(jobs []model.JobMasterEntry, result model.DiagnosisResult) (cards []model.JobCardView) {
	ranked := r.RankAll(model.NewUserProfile(), jobs, result.PrimaryType, result.SecondaryType())
	cards = ToCards(ranked)
	return cards
}

// ToCards converts scored jobs into display cards.
func ToCards(ranked []ScoredJob) (cards []model.JobCardView) {
	cards = make([]model.JobCardView, 0, len(ranked))
	for _, s := range ranked {
		cards = append(cards, model.NewJobCardView(s.Job, s.Score))
	}
	return cards
}

// SurfacedCategories returns the distinct category keys among the first scan cards,
// at most limit of them, in rank order. These form the allow-list for the second stage.
func SurfacedCategories(cards []model.JobCardView, scan, limit int) (keys []string) {
	keys = make([]string, 0, limit)
	seen := make(map[string]bool)
	for i, card := range cards {
		if scan > 0 && i >= scan {
			break
		}
		key := card.CategoryName
		if key == "" {
			key = card.JobMasterEntry.CategoryKey()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
		if limit > 0 && len(keys) >= limit {
			break
		}
	}
	return keys
}

// FilterByCategories keeps the jobs whose category key is in allowed. Allowed keys are
// trimmed before comparison. An empty allow-list, or one that matches nothing, returns jobs.
func FilterByCategories(jobs []model.JobMasterEntry, allowed []string) (filtered []model.JobMasterEntry) {
	if len(allowed) == 0 {
		filtered = jobs
		return filtered
	}

	allow := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allow[model.NormalizeCategory(strings.TrimSpace(key))] = true
	}

	filtered = make([]model.JobMasterEntry, 0, len(jobs))
	for i := range jobs {
		if allow[jobs[i].CategoryKey()] {
			filtered = append(filtered, jobs[i])
		}
	}
	if len(filtered) == 0 {
		filtered = jobs
	}
	return filtered
}

func sortScored(ranked []ScoredJob) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
}

func truncate(ranked []ScoredJob, n int) (out []ScoredJob) {
	out = ranked
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
