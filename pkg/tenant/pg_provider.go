package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/terravia/quotakit/pkg/pg"
)

// Querier is the subset of pgxpool.Pool the provider needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgProvider struct {
	db Querier
}

// NewPgProvider returns a Provider that reads the membership binding from
// Postgres.
func NewPgProvider(db Querier) Provider {
	return &pgProvider{db: db}
}

const tenantForPrincipalQuery = `
SELECT t.id, t.name, t.slug, t.settings, t.active, t.created_at
FROM tenants t
JOIN tenant_members m ON m.tenant_id = t.id
WHERE m.user_id = $1
LIMIT 1`

func (p *pgProvider) TenantForPrincipal(ctx context.Context, principalID uuid.UUID) (*Tenant, error) {
	var t Tenant
	err := p.db.QueryRow(ctx, tenantForPrincipalQuery, principalID).Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Settings,
		&t.Active,
		&t.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrFailedToLookupTenant, err)
	}
	return &t, nil
}
