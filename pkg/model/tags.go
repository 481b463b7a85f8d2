package model

import (
	"encoding/json"
	"sort"
)

// TraitKey is one of the three personality dimensions used for job affinity.
type TraitKey string

const (
	TraitLogicDetail   TraitKey = "LOGIC_DETAIL"
	TraitCommunication TraitKey = "COMMUNICATION"
	TraitCareSupport   TraitKey = "CARE_SUPPORT"
)

// AllTraits returns the trait keys in canonical order.
func AllTraits() (keys []TraitKey) {
	keys = []TraitKey{TraitLogicDetail, TraitCommunication, TraitCareSupport}
	return keys
}

// Valid reports whether k belongs to the closed trait set.
func (k TraitKey) Valid() (ok bool) {
	switch k {
	case TraitLogicDetail, TraitCommunication, TraitCareSupport:
		ok = true
	}
	return ok
}

// TraitVector maps every trait key to an accumulated score.
type TraitVector map[TraitKey]int

// NewTraitVector returns a vector with every trait seeded at zero.
func NewTraitVector() (v TraitVector) {
	v = make(TraitVector, 3)
	for _, k := range AllTraits() {
		v[k] = 0
	}
	return v
}

// Get returns the value for k, zero when absent.
func (v TraitVector) Get(k TraitKey) (value int) {
	value = v[k]
	return value
}

// Add accumulates delta into k.
func (v TraitVector) Add(k TraitKey, delta int) {
	v[k] += delta
}

// Clone returns a copy that always carries every canonical key.
func (v TraitVector) Clone() (out TraitVector) {
	out = NewTraitVector()
	for k, val := range v {
		out[k] = val
	}
	return out
}

// ConditionTag labels a work-style preference or a job attribute.
type ConditionTag string

const (
	RemoteOK           ConditionTag = "REMOTE_OK"
	HybridOK           ConditionTag = "HYBRID_OK"
	ShortHoursOK       ConditionTag = "SHORT_HOURS_OK"
	FlexibleShift      ConditionTag = "FLEXIBLE_SHIFT"
	FullTimeOriented   ConditionTag = "FULL_TIME_ORIENTED"
	LowCommunicationOK ConditionTag = "LOW_COMMUNICATION_OK"
	TalkActive         ConditionTag = "TALK_ACTIVE"
	SittingWork        ConditionTag = "SITTING_WORK"
	CanMoveSometimes   ConditionTag = "CAN_MOVE_SOMETIMES"
	ActiveWork         ConditionTag = "ACTIVE_WORK"
	LowStress          ConditionTag = "LOW_STRESS"
	SkillBuilding      ConditionTag = "SKILL_BUILDING"
	HelpingPeople      ConditionTag = "HELPING_PEOPLE"

	// Job-side operational tags. No question produces them.
	OnSite         ConditionTag = "ON_SITE"
	CustomerFacing ConditionTag = "CUSTOMER_FACING"
)

//nolint:gochecknoglobals // Closed enum ordering
var conditionOrder = map[ConditionTag]int{
	RemoteOK:           0,
	HybridOK:           1,
	ShortHoursOK:       2,
	FlexibleShift:      3,
	FullTimeOriented:   4,
	LowCommunicationOK: 5,
	TalkActive:         6,
	SittingWork:        7,
	CanMoveSometimes:   8,
	ActiveWork:         9,
	LowStress:          10,
	SkillBuilding:      11,
	HelpingPeople:      12,
	OnSite:             13,
	CustomerFacing:     14,
}

// AllConditionTags returns every condition tag in canonical order.
func AllConditionTags() (tags []ConditionTag) {
	tags = make([]ConditionTag, len(conditionOrder))
	for tag, idx := range conditionOrder {
		tags[idx] = tag
	}
	return tags
}

// Valid reports whether t belongs to the closed tag set.
func (t ConditionTag) Valid() (ok bool) {
	_, ok = conditionOrder[t]
	return ok
}

// ConditionSet is a deduplicated set of tags kept in canonical order.
type ConditionSet []ConditionTag

// NewConditionSet builds a set from tags, dropping duplicates.
func NewConditionSet(tags ...ConditionTag) (set ConditionSet) {
	set = ConditionSet{}
	set = set.Union(tags)
	return set
}

// Has reports whether tag is in the set.
func (s ConditionSet) Has(tag ConditionTag) (ok bool) {
	for _, t := range s {
		if t == tag {
			ok = true
			return ok
		}
	}
	return ok
}

// Union returns a new set holding the tags of s and others.
func (s ConditionSet) Union(others []ConditionTag) (out ConditionSet) {
	seen := make(map[ConditionTag]bool, len(s)+len(others))
	out = make(ConditionSet, 0, len(s)+len(others))
	for _, group := range [][]ConditionTag{s, others} {
		for _, t := range group {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return tagRank(out[i]) < tagRank(out[j])
	})
	return out
}

// MarshalJSON keeps an empty set as [] rather than null.
func (s ConditionSet) MarshalJSON() (data []byte, err error) {
	tags := []ConditionTag(s)
	if tags == nil {
		tags = []ConditionTag{}
	}
	data, err = json.Marshal(tags)
	return data, err
}

// tagRank places unknown tags after the closed set.
func tagRank(t ConditionTag) (rank int) {
	rank, ok := conditionOrder[t]
	if !ok {
		rank = len(conditionOrder)
	}
	return rank
}

// FactorKey is one of the five display factors.
type FactorKey string

const (
	FactorSteadyExecution FactorKey = "コツコツ実行力"
	FactorTeamSupport     FactorKey = "チームサポート力"
	FactorEmpathy         FactorKey = "共感コミュ力"
	FactorCreativity      FactorKey = "アイデア創造力"
	FactorPlanning        FactorKey = "段取り&分析力"
)

// AllFactors returns the factor keys in display order.
func AllFactors() (keys []FactorKey) {
	keys = []FactorKey{
		FactorSteadyExecution,
		FactorTeamSupport,
		FactorEmpathy,
		FactorCreativity,
		FactorPlanning,
	}
	return keys
}

// Valid reports whether k is one of the five factors.
func (k FactorKey) Valid() (ok bool) {
	for _, f := range AllFactors() {
		if f == k {
			ok = true
			return ok
		}
	}
	return ok
}
