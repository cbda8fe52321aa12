package quota

// Resource represents a countable tenant resource type.
//
// The set is closed on purpose: every resource needs a registered counter
// and a ceiling in the plan catalog, so adding a constant here is only the
// first step of wiring a new quota.
type Resource string

const (
	// ResourceUsers counts seats: accepted memberships plus pending,
	// unexpired invitations. An invitation reserves a seat before it is
	// accepted.
	ResourceUsers Resource = "users"
	// ResourceProperties counts surveyed property records.
	ResourceProperties Resource = "properties"
	// ResourceClients counts client records.
	ResourceClients Resource = "clients"
)

// Unlimited marks a resource with no ceiling (-1 chosen for SQL compatibility).
const Unlimited int64 = -1

// Feature is a plan-specific capability flag.
type Feature string

const (
	FeatureGeometryImport Feature = "geometry_import" // KML/KMZ property geometry import
	FeatureReportExport   Feature = "report_export"   // PDF report generation
	FeatureAPIAccess      Feature = "api_access"
)

// UsageInfo contains the current usage and ceiling for one resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}

// CheckResult is the outcome of a single quota check.
//
// Denials (no tenant, no in-force subscription, ceiling reached) are carried
// here rather than as errors so callers can branch on data instead of
// unwrapping error chains. Infrastructure failures are returned separately.
type CheckResult struct {
	Allowed bool   `json:"allowed"`
	Current int64  `json:"current_count"`
	Limit   int64  `json:"max_allowed"`
	Message string `json:"message"`
}

// PlanLimits is the resolved view of a tenant's in-force plan: the ceilings
// and feature flags the quota checker enforces. Produced by a LimitsResolver
// (typically backed by the subscription store) and never mutated here.
type PlanLimits struct {
	PlanID   string
	PlanName string
	Limits   map[Resource]int64
	Features map[Feature]bool
	Trialing bool
	Active   bool
}

// LimitFor returns the ceiling for a resource and whether the plan defines one.
func (p *PlanLimits) LimitFor(res Resource) (int64, bool) {
	limit, ok := p.Limits[res]
	return limit, ok
}

// HasFeature reports whether the plan enables a feature flag.
func (p *PlanLimits) HasFeature(f Feature) bool {
	return p.Features[f]
}
