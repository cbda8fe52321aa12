package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// LimitsResolver resolves the in-force plan limits for a tenant.
// It must fail closed: when the tenant has no subscription with an in-force
// status the resolver returns ErrNoActiveSubscription (possibly wrapped),
// never a nil-error "unlimited" result. Any other error is treated as an
// infrastructure failure and kept distinct from a denial.
type LimitsResolver func(ctx context.Context, tenantID uuid.UUID) (*PlanLimits, error)

// Service checks tenant resource usage against plan ceilings.
//
// It is read-only: it never mutates subscriptions, plans, or resource
// records, performs no locking, and makes no atomicity guarantee between a
// check and a subsequent write. Two concurrent creates racing for the last
// slot can both pass; this mirrors the advisory-quota semantics the product
// ships with. See usage.GuardedInsert for the transactional variant.
type Service struct {
	// Both fields are set at construction and treated as immutable after;
	// thread-safety relies on that.
	limits   LimitsResolver
	counters CounterRegistry
}

// NewService creates a quota Service from a limits resolver and a counter
// registry. The resolver is required; a nil registry is replaced with an
// empty one (all checks then fail with ErrNoCounterRegistered).
func NewService(limits LimitsResolver, counters CounterRegistry) (*Service, error) {
	if limits == nil {
		return nil, ErrNoLimitsResolver
	}
	if counters == nil {
		counters = NewRegistry()
	}
	return &Service{limits: limits, counters: counters}, nil
}

// CheckLimit reports whether the tenant may create one more instance of the
// given resource. Denials (no tenant, no in-force subscription, ceiling
// reached) come back as a CheckResult with Allowed=false and a localized
// message; the error return is reserved for infrastructure failures, so
// callers can always tell "you are not allowed" from "we couldn't find out".
func (s *Service) CheckLimit(ctx context.Context, tenantID uuid.UUID, res Resource) (CheckResult, error) {
	m := messagesFor(ctx)

	if tenantID == uuid.Nil {
		return CheckResult{Allowed: false, Message: m.noTenant}, nil
	}

	plan, err := s.limits(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSubscription) {
			return CheckResult{Allowed: false, Message: m.noSubscription}, nil
		}
		return CheckResult{}, errors.Join(ErrFailedToResolvePlan, err)
	}

	limit, ok := plan.LimitFor(res)
	if !ok {
		return CheckResult{}, ErrInvalidResource
	}

	if limit == Unlimited {
		return CheckResult{Allowed: true, Current: 0, Limit: Unlimited, Message: ""}, nil
	}

	counter, ok := s.counters[res]
	if !ok {
		return CheckResult{}, ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return CheckResult{}, errors.Join(ErrFailedToCountUsage, err)
	}

	// Strict less-than: a plan with max=10 permits the 10th record when the
	// count is 9 and denies once the count reaches 10.
	if current < limit {
		return CheckResult{
			Allowed: true,
			Current: current,
			Limit:   limit,
			Message: m.usageMessage(res, current, limit),
		}, nil
	}

	return CheckResult{
		Allowed: false,
		Current: current,
		Limit:   limit,
		Message: m.limitReachedMessage(res, current, limit),
	}, nil
}

// CanCreate is the advisory boolean form used to gate UI affordances
// (disable a "new property" button, show an upgrade prompt). It returns a
// denial sentinel instead of a result struct; nil means allowed. It is not
// authoritative: the guarded wrapper must still run before the write.
func (s *Service) CanCreate(ctx context.Context, tenantID uuid.UUID, res Resource) error {
	if tenantID == uuid.Nil {
		return ErrNoTenant
	}

	plan, err := s.limits(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSubscription) {
			return ErrNoActiveSubscription
		}
		return errors.Join(ErrFailedToResolvePlan, err)
	}

	limit, ok := plan.LimitFor(res)
	if !ok {
		return ErrInvalidResource
	}
	if limit == Unlimited {
		return nil
	}

	counter, ok := s.counters[res]
	if !ok {
		return ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return errors.Join(ErrFailedToCountUsage, err)
	}

	if current >= limit {
		return ErrLimitReached
	}
	return nil
}

// GetUsage returns the current usage and ceiling for a resource.
func (s *Service) GetUsage(ctx context.Context, tenantID uuid.UUID, res Resource) (used, limit int64, err error) {
	if tenantID == uuid.Nil {
		return 0, 0, ErrNoTenant
	}

	plan, err := s.limits(ctx, tenantID)
	if err != nil {
		return 0, 0, err
	}

	resourceLimit, ok := plan.LimitFor(res)
	if !ok {
		return 0, 0, ErrInvalidResource
	}

	counter, ok := s.counters[res]
	if !ok {
		return 0, 0, ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return 0, 0, errors.Join(ErrFailedToCountUsage, err)
	}

	return current, resourceLimit, nil
}

// GetUsageSafe is a convenience wrapper for dashboard widgets. It returns
// zero values if usage cannot be obtained.
func (s *Service) GetUsageSafe(ctx context.Context, tenantID uuid.UUID, res Resource) (used, limit int64) {
	used, limit, _ = s.GetUsage(ctx, tenantID, res)
	return used, limit
}

// UsagePercentage returns usage as a percentage (0-100, or -1 for unlimited).
func (s *Service) UsagePercentage(ctx context.Context, tenantID uuid.UUID, res Resource) int {
	used, limit, err := s.GetUsage(ctx, tenantID, res)
	if err != nil {
		return 0
	}

	if limit == Unlimited {
		return -1
	}
	if limit == 0 {
		return 100
	}

	return min(int((used*100)/limit), 100)
}

// HasFeature quickly tells whether a feature flag is enabled for the
// tenant's in-force plan. Any resolution failure reads as "not enabled".
func (s *Service) HasFeature(ctx context.Context, tenantID uuid.UUID, feature Feature) bool {
	if tenantID == uuid.Nil {
		return false
	}
	plan, err := s.limits(ctx, tenantID)
	if err != nil {
		return false
	}
	return plan.HasFeature(feature)
}

// GetAllUsage returns usage for every resource the tenant's plan defines a
// ceiling for. Counter failures leave that resource's usage at zero rather
// than failing the whole dashboard snapshot.
func (s *Service) GetAllUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]UsageInfo, error) {
	if tenantID == uuid.Nil {
		return nil, ErrNoTenant
	}

	plan, err := s.limits(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make(map[Resource]UsageInfo, len(plan.Limits))
	for res, limit := range plan.Limits {
		info := UsageInfo{Current: 0, Limit: limit}
		if counter, ok := s.counters[res]; ok {
			if current, err := counter(ctx, tenantID); err == nil {
				info.Current = current
			}
		}
		result[res] = info
	}
	return result, nil
}

// CanDowngrade checks whether the tenant's current usage fits inside the
// target plan's ceilings. Resources without a registered counter cannot be
// verified and are allowed through.
func (s *Service) CanDowngrade(ctx context.Context, tenantID uuid.UUID, target *PlanLimits) error {
	if tenantID == uuid.Nil {
		return ErrNoTenant
	}
	if target == nil {
		return ErrFailedToResolvePlan
	}

	for res, targetLimit := range target.Limits {
		if targetLimit == Unlimited {
			continue
		}

		counter, ok := s.counters[res]
		if !ok {
			continue
		}

		current, err := counter(ctx, tenantID)
		if err != nil {
			return errors.Join(ErrFailedToCountUsage, err)
		}

		if current > targetLimit {
			return ErrDowngradeBlocked
		}
	}

	return nil
}
