package scorer

import "github.com/nikogura/talent-match/pkg/model"

// Rule pairs a user preference with a job attribute that contradicts it.
type Rule struct {
	Name        string
	User        model.ConditionTag
	Job         model.ConditionTag
	Severity    string // exclusion, penalty
	Description string
}

// Matches reports whether the rule fires for the given user and job.
func (r Rule) Matches(user model.ConditionSet, job *model.JobMasterEntry) (ok bool) {
	ok = user.Has(r.User) && job.HasCondition(r.Job)
	return ok
}

//nolint:gochecknoglobals // Scoring configuration constants
var HardMismatchRules = []Rule{
	{
		Name:        "REMOTE_BUT_ON_SITE",
		User:        model.RemoteOK,
		Job:         model.OnSite,
		Severity:    "exclusion",
		Description: "Wants to work from home but the job must be done on site",
	},
	{
		Name:        "QUIET_BUT_TALKATIVE",
		User:        model.LowCommunicationOK,
		Job:         model.TalkActive,
		Severity:    "exclusion",
		Description: "Prefers little conversation but the job is talk-heavy",
	},
	{
		Name:        "QUIET_BUT_CUSTOMER_FACING",
		User:        model.LowCommunicationOK,
		Job:         model.CustomerFacing,
		Severity:    "exclusion",
		Description: "Prefers little conversation but the job serves customers",
	},
	{
		Name:        "SITTING_BUT_ACTIVE",
		User:        model.SittingWork,
		Job:         model.ActiveWork,
		Severity:    "exclusion",
		Description: "Wants desk work but the job keeps you moving",
	},
}

//nolint:gochecknoglobals // Scoring configuration constants
var PenaltyRules = []Rule{
	{
		Name:        "SITTING_BUT_ACTIVE",
		User:        model.SittingWork,
		Job:         model.ActiveWork,
		Severity:    "penalty",
		Description: "Wants desk work but the job keeps you moving",
	},
	{
		Name:        "SITTING_BUT_MOVING",
		User:        model.SittingWork,
		Job:         model.CanMoveSometimes,
		Severity:    "penalty",
		Description: "Wants desk work but the job involves some moving around",
	},
	{
		Name:        "QUIET_BUT_TALKATIVE",
		User:        model.LowCommunicationOK,
		Job:         model.TalkActive,
		Severity:    "penalty",
		Description: "Prefers little conversation but the job is talk-heavy",
	},
	{
		Name:        "QUIET_BUT_CUSTOMER_FACING",
		User:        model.LowCommunicationOK,
		Job:         model.CustomerFacing,
		Severity:    "penalty",
		Description: "Prefers little conversation but the job serves customers",
	},
}

// Weights holds the constants of one scoring policy.
type Weights struct {
	PrimaryCharacter   float64
	SecondaryCharacter float64
	TraitDivisor       float64
	ConditionMatch     float64
	ConditionMismatch  float64
}

//nolint:gochecknoglobals // Scoring configuration constants
var GatedWeights = Weights{
	PrimaryCharacter:   10000,
	SecondaryCharacter: 1000,
	TraitDivisor:       100,
	ConditionMatch:     500,
}

//nolint:gochecknoglobals // Scoring configuration constants
var WeightedPenaltyWeights = Weights{
	PrimaryCharacter:   1.0,
	SecondaryCharacter: 0.6,
	TraitDivisor:       50,
	ConditionMatch:     3,
	ConditionMismatch:  10,
}
