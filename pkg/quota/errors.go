package quota

import "errors"

// Domain errors for quota operations
var (
	// Denial reasons
	ErrNoTenant             = errors.New("quota.errors.tenant_not_identified")
	ErrNoActiveSubscription = errors.New("quota.errors.no_active_subscription")
	ErrLimitReached         = errors.New("quota.errors.limit_reached")

	// Configuration errors
	ErrInvalidResource     = errors.New("quota.errors.invalid_resource")
	ErrNoCounterRegistered = errors.New("quota.errors.no_counter_registered")
	ErrNoLimitsResolver    = errors.New("quota.errors.no_limits_resolver")
	ErrDowngradeBlocked    = errors.New("quota.errors.downgrade_blocked")

	// System errors
	ErrFailedToCountUsage   = errors.New("quota.errors.failed_to_count_usage")
	ErrFailedToResolvePlan  = errors.New("quota.errors.failed_to_resolve_plan")
	ErrOperationNotProvided = errors.New("quota.errors.operation_not_provided")
)

// IsDenial reports whether err is one of the expected, user-facing denial
// reasons as opposed to an infrastructure failure. Denials are non-retryable
// until the tenant's state changes (onboarding, billing, freeing a slot).
func IsDenial(err error) bool {
	return errors.Is(err, ErrNoTenant) ||
		errors.Is(err, ErrNoActiveSubscription) ||
		errors.Is(err, ErrLimitReached)
}
