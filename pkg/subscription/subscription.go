package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Subscription binds a tenant to a plan with a lifecycle status.
// Status transitions are driven by the external billing collaborator; this
// package only reads them. A tenant can accumulate historical rows
// (cancelled, expired), but at most one row is in force at a time.
type Subscription struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PlanID      string
	Status      Status
	PeriodStart time.Time
	PeriodEnd   time.Time
	TrialEndsAt *time.Time // set only for plans with trials
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time // set when subscription is cancelled
}

func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// InForce reports whether this subscription currently grants plan access.
func (s *Subscription) InForce() bool {
	return s.Status.InForce()
}

// IsTrialExpired returns true if the trial period has ended.
func (s *Subscription) IsTrialExpired() bool {
	if s.TrialEndsAt == nil {
		return false
	}
	return time.Now().UTC().After(*s.TrialEndsAt)
}

// TrialDaysRemainingAt returns the number of days remaining in the trial at
// a given time. Returns 0 if not in trial or the trial has expired.
// This method is useful for testing with fixed time values.
func (s *Subscription) TrialDaysRemainingAt(now time.Time) int {
	if !s.IsTrialing() || s.TrialEndsAt == nil {
		return 0
	}

	remaining := s.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	// Round up partial days for better UX
	days := remaining.Hours() / 24
	return int(days + 0.5)
}

// TrialDaysRemaining returns the number of days remaining in the trial.
func (s *Subscription) TrialDaysRemaining() int {
	return s.TrialDaysRemainingAt(time.Now().UTC())
}
