package subscription

// Status represents the current state of a subscription.
type Status string

const (
	StatusTrialing  Status = "trialing"
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// InForce reports whether a subscription in this status grants plan access.
// Only trialing and active subscriptions count; everything else is treated
// as absent so quota checks fail closed.
func (s Status) InForce() bool {
	return s == StatusActive || s == StatusTrialing
}

// InForceStatuses is the closed set of statuses that grant plan access,
// in the form the store queries use.
var InForceStatuses = []string{string(StatusActive), string(StatusTrialing)}

// BillingInterval represents the billing frequency for a subscription plan.
type BillingInterval string

const (
	BillingIntervalNone    BillingInterval = "none" // free plans with no billing
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalAnnual  BillingInterval = "annual"
)

// Money represents a monetary amount in the smallest currency unit.
// For example, R$49.00 BRL is Amount: 4900, Currency: "BRL".
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount"`
	Currency string `yaml:"currency" json:"currency"` // ISO 4217 code
}
