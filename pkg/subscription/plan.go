package subscription

import (
	"slices"
	"time"

	"github.com/terravia/quotakit/pkg/quota"
)

// Plan describes a pricing tier and its resource/feature constraints.
// Plans are reference data: loaded once from a Catalog at startup and never
// mutated by tenant actions.
type Plan struct {
	ID          string                   `yaml:"id"`
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Price       Money                    `yaml:"price"`
	Interval    BillingInterval          `yaml:"interval"`
	TrialDays   int                      `yaml:"trial_days"`
	Public      bool                     `yaml:"public"` // available for self-service signup
	Limits      map[quota.Resource]int64 `yaml:"limits"`
	Features    []quota.Feature          `yaml:"features"`
}

// TrialEndsAt calculates when the trial period ends.
// Returns startedAt unchanged if the plan has no trial.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// IsTrialActive reports whether a trial started at the given time is still
// within its window.
func (p Plan) IsTrialActive(startedAt time.Time) bool {
	if p.TrialDays <= 0 {
		return false
	}
	return time.Now().UTC().Before(p.TrialEndsAt(startedAt))
}

// LimitsView converts the catalog entry into the resolved form the quota
// checker consumes.
func (p Plan) LimitsView(status Status) *quota.PlanLimits {
	features := make(map[quota.Feature]bool, len(p.Features))
	for _, f := range p.Features {
		features[f] = true
	}

	limits := make(map[quota.Resource]int64, len(p.Limits))
	for res, n := range p.Limits {
		limits[res] = n
	}

	return &quota.PlanLimits{
		PlanID:   p.ID,
		PlanName: p.Name,
		Limits:   limits,
		Features: features,
		Trialing: status == StatusTrialing,
		Active:   status == StatusActive,
	}
}

// PlanComparison contains the differences between two plans.
// Used to validate downgrades and communicate changes to users.
type PlanComparison struct {
	NewFeatures      []quota.Feature
	LostFeatures     []quota.Feature
	IncreasedLimits  map[quota.Resource]LimitChange
	DecreasedLimits  map[quota.Resource]LimitChange
	NewResources     map[quota.Resource]int64
	RemovedResources map[quota.Resource]int64
}

// LimitChange represents a change in a resource ceiling.
type LimitChange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// HasDecreases returns true if any ceilings shrink or disappear in the target.
func (c *PlanComparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedResources) > 0
}

// ComparePlans returns the differences between current and target plans.
func ComparePlans(current, target *Plan) *PlanComparison {
	if current == nil || target == nil {
		return nil
	}

	comparison := &PlanComparison{
		NewFeatures:      make([]quota.Feature, 0),
		LostFeatures:     make([]quota.Feature, 0),
		IncreasedLimits:  make(map[quota.Resource]LimitChange),
		DecreasedLimits:  make(map[quota.Resource]LimitChange),
		NewResources:     make(map[quota.Resource]int64),
		RemovedResources: make(map[quota.Resource]int64),
	}

	for _, feature := range target.Features {
		if !slices.Contains(current.Features, feature) {
			comparison.NewFeatures = append(comparison.NewFeatures, feature)
		}
	}
	for _, feature := range current.Features {
		if !slices.Contains(target.Features, feature) {
			comparison.LostFeatures = append(comparison.LostFeatures, feature)
		}
	}

	for resource, targetLimit := range target.Limits {
		currentLimit, exists := current.Limits[resource]
		if !exists {
			comparison.NewResources[resource] = targetLimit
			continue
		}
		if targetLimit == currentLimit {
			continue
		}

		change := LimitChange{From: currentLimit, To: targetLimit}

		// Leaving unlimited is always a decrease, entering it an increase.
		switch {
		case currentLimit == quota.Unlimited:
			comparison.DecreasedLimits[resource] = change
		case targetLimit == quota.Unlimited:
			comparison.IncreasedLimits[resource] = change
		case targetLimit > currentLimit:
			comparison.IncreasedLimits[resource] = change
		default:
			comparison.DecreasedLimits[resource] = change
		}
	}

	for resource, currentLimit := range current.Limits {
		if _, exists := target.Limits[resource]; !exists {
			comparison.RemovedResources[resource] = currentLimit
		}
	}

	return comparison
}
