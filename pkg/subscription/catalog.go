package subscription

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog loads the plan reference data.
type Catalog interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// inMemCatalog implements Catalog using an in-memory plan map.
type inMemCatalog struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemCatalog returns a Catalog with a deep copy of the given plans.
func NewInMemCatalog(plans map[string]Plan) Catalog {
	return &inMemCatalog{plans: clonePlans(plans)}
}

// Load returns a copy of all plans from memory.
func (c *inMemCatalog) Load(ctx context.Context) (map[string]Plan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clonePlans(c.plans), nil
}

func clonePlans(plans map[string]Plan) map[string]Plan {
	out := make(map[string]Plan, len(plans))
	for id, plan := range plans {
		plan.Limits = maps.Clone(plan.Limits)
		plan.Features = slices.Clone(plan.Features)
		out[id] = plan
	}
	return out
}

// yamlCatalog loads plans from an ops-managed YAML file.
type yamlCatalog struct {
	path string
}

// NewYAMLCatalog returns a Catalog backed by a YAML file of the form:
//
//	plans:
//	  - id: starter
//	    name: Starter
//	    price: {amount: 4900, currency: BRL}
//	    interval: monthly
//	    trial_days: 14
//	    public: true
//	    limits:
//	      users: 3
//	      properties: 50
//	      clients: 100
//	    features: [report_export]
func NewYAMLCatalog(path string) Catalog {
	return &yamlCatalog{path: path}
}

func (c *yamlCatalog) Load(ctx context.Context) (map[string]Plan, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var file struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	plans := make(map[string]Plan, len(file.Plans))
	for _, plan := range file.Plans {
		if plan.ID == "" {
			return nil, errors.Join(ErrInvalidCatalog, errors.New("plan without id"))
		}
		if _, dup := plans[plan.ID]; dup {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("duplicate plan id %q", plan.ID))
		}
		if plan.TrialDays < 0 {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q has negative trial days", plan.ID))
		}
		plans[plan.ID] = plan
	}

	return plans, nil
}
