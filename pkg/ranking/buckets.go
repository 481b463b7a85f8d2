package ranking

import (
	"sort"

	"github.com/nikogura/talent-match/pkg/model"
)

// SurfacedScan and SurfacedLimit bound the first stage of the two-stage category flow.
const (
	SurfacedScan  = 30
	SurfacedLimit = 4
)

type bucket struct {
	key      string
	order    int
	topScore float64
	names    []string
}

// BestJobDomains groups the admitted jobs by category key and returns the domainCount
// categories with the highest top score. Each card lists at most jobsPerDomain job names
// in score order. Categories with equal top scores keep first-appearance order.
func (r *Ranker) BestJobDomains(profile model.UserProfile, jobs []model.JobMasterEntry, primary, secondary string, domainCount, jobsPerDomain int) (cards []model.JobDomainCardView) {
	ranked := r.RankAll(profile, jobs, primary, secondary)

	buckets := make([]*bucket, 0)
	byKey := make(map[string]*bucket)
	for _, s := range ranked {
		key := s.Job.CategoryKey()
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key, order: len(buckets), topScore: s.Score}
			byKey[key] = b
			buckets = append(buckets, b)
		}
		if jobsPerDomain <= 0 || len(b.names) < jobsPerDomain {
			b.names = append(b.names, s.Job.Name)
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].topScore != buckets[j].topScore {
			return buckets[i].topScore > buckets[j].topScore
		}
		return buckets[i].order < buckets[j].order
	})

	if domainCount > 0 && len(buckets) > domainCount {
		buckets = buckets[:domainCount]
	}

	cards = make([]model.JobDomainCardView, 0, len(buckets))
	for _, b := range buckets {
		cards = append(cards, model.JobDomainCardView{
			CategoryName:    b.key,
			Jobs:            b.names,
			TopScore:        b.topScore,
			SuitableSummary: r.reasons[b.key],
		})
	}
	return cards
}

// BestJobDomainsWithin is BestJobDomains over the jobs whose category is in allowed.
// When allowed is empty or matches nothing, the whole catalog is used.
func (r *Ranker) BestJobDomainsWithin(profile model.UserProfile, jobs []model.JobMasterEntry, primary, secondary string, allowed []string, domainCount, jobsPerDomain int) (cards []model.JobDomainCardView) {
	cards = r.BestJobDomains(profile, FilterByCategories(jobs, allowed), primary, secondary, domainCount, jobsPerDomain)
	return cards
}

// SurfacedFor runs the first stage of the category flow: rank on character fit alone
// and collect the categories among the top results.
func (r *Ranker) SurfacedFor(jobs []model.JobMasterEntry, result model.DiagnosisResult) (keys []string) {
	keys = SurfacedCategories(r.MatchDiagnosis(jobs, result), SurfacedScan, SurfacedLimit)
	return keys
}
