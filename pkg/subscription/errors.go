package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription.errors.not_found")
	ErrPlanNotFound         = errors.New("subscription.errors.plan_not_found")
	ErrFailedToLoadCatalog  = errors.New("subscription.errors.failed_to_load_catalog")
	ErrInvalidCatalog       = errors.New("subscription.errors.invalid_catalog")
	ErrFailedToQueryStore   = errors.New("subscription.errors.failed_to_query_store")
)
