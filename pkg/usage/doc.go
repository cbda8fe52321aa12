// Package usage counts a tenant's quota-governed resources in Postgres.
//
// Seats are the sum of accepted memberships and pending, unexpired
// invitations; properties and clients are plain per-tenant record counts.
// Every query carries an explicit tenant_id predicate in addition to the
// database's row-level security, and uses a count-only form.
//
//	counters := usage.Counters(pool)
//	svc, err := quota.NewService(limitsResolver, counters)
//
// GuardedInsert offers a transactional alternative to the advisory
// check-then-act path for callers that cannot tolerate a quota overrun.
package usage
