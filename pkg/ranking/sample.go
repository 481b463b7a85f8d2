package ranking

import (
	"sync"

	"github.com/nikogura/talent-match/pkg/model"
)

const (
	sampleNarrow   = 60
	samplePoolMin  = 30
	samplePoolMult = 3
)

// SampleTopMatches picks count jobs at random from the strongest matches for the primary
// character. Candidates are the top jobs by primary character score, then by full match
// score; positive scores only, unless none are positive. With no primary character the
// whole catalog is ranked. The random source is the one set with WithRand; without one
// the pool is not shuffled and the top count are returned.
func (r *Ranker) SampleTopMatches(profile model.UserProfile, jobs []model.JobMasterEntry, primary string, count int) (sampled []ScoredJob) {
	if count <= 0 {
		return sampled
	}

	candidates := jobs
	if primary != "" {
		candidates = narrowByCharacter(jobs, primary, sampleNarrow)
	}
	ranked := positiveOrAll(r.RankAll(profile, candidates, primary, ""))
	if len(ranked) == 0 {
		return sampled
	}

	poolSize := max(samplePoolMult*count, samplePoolMin)
	pool := truncate(ranked, poolSize)
	pool = append([]ScoredJob(nil), pool...)

	if r.rand != nil {
		shuffle(r.rand, pool)
	}

	sampled = truncate(pool, count)
	return sampled
}

// positiveOrAll keeps the positive scores when there are any.
func positiveOrAll(ranked []ScoredJob) (out []ScoredJob) {
	for _, s := range ranked {
		if s.Score > 0 {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = ranked
	}
	return out
}

// narrowByCharacter keeps at most n jobs with a positive score for name, highest first.
func narrowByCharacter(jobs []model.JobMasterEntry, name string, n int) (out []model.JobMasterEntry) {
	scored := make([]ScoredJob, 0, len(jobs))
	for i := range jobs {
		score := jobs[i].CharacterScore(name)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredJob{Job: jobs[i], Score: float64(score), Index: i})
	}
	sortScored(scored)
	scored = truncate(scored, n)

	out = make([]model.JobMasterEntry, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Job)
	}
	return out
}

// shuffle is a Fisher-Yates shuffle over src.
func shuffle(src Source, items []ScoredJob) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// LockedSource makes src safe for concurrent use.
func LockedSource(src Source) (locked Source) {
	locked = &lockedSource{src: src}
	return locked
}

func (l *lockedSource) IntN(n int) (v int) {
	l.mu.Lock()
	v = l.src.IntN(n)
	l.mu.Unlock()
	return v
}
