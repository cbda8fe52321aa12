// Package subscription models the binding between a tenant and a pricing
// plan. It exposes the plan catalog (reference data loaded from memory or a
// YAML file), a read-only subscription store backed by Postgres, and the
// fail-closed resolver that feeds plan ceilings into the quota package.
//
// Subscription lifecycle transitions (trial to active, active to past_due,
// cancellation) are written by the external billing system; this package
// never mutates subscription rows.
package subscription
