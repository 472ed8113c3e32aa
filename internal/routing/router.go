// Package routing resolves logical service filters into the concrete set of
// (collection, service value) targets a query or write must touch.
package routing

import (
	"pcbxpress/internal/registry"
	"pcbxpress/pkg/model"
)

// Target is one physical query spec: a backing collection and the service
// value the per-collection query is restricted to.
type Target struct {
	Collection string
	Service    registry.Service
}

// Router expands a service filter across the registry. In strict mode a
// filter that resolves to no known service is an error; otherwise the
// resolution falls back (to all services, or to the default service alone)
// so a query never targets nothing.
type Router struct {
	reg    *registry.Registry
	strict bool
}

// New constructs a router over the given registry.
func New(reg *registry.Registry, strict bool) *Router {
	return &Router{reg: reg, strict: strict}
}

// Resolve returns the ordered, deduplicated list of targets for the filter.
// Each resolved service key is expanded to every backing collection that may
// legitimately hold documents tagged with it, so documents written under an
// older physical layout are still found without a prior data migration.
func (r *Router) Resolve(f model.ServiceFilter) ([]Target, error) {
	services, err := r.resolveServices(f)
	if err != nil {
		return nil, err
	}

	type pair struct {
		coll string
		svc  registry.Service
	}
	seen := make(map[pair]bool)
	var targets []Target
	for _, svc := range services {
		for _, coll := range r.reg.CollectionsFor(svc) {
			p := pair{coll, svc}
			if seen[p] {
				continue
			}
			seen[p] = true
			targets = append(targets, Target{Collection: coll, Service: svc})
		}
	}
	return targets, nil
}

func (r *Router) resolveServices(f model.ServiceFilter) ([]registry.Service, error) {
	switch f.Mode {
	case model.ServiceExact:
		if len(f.Values) == 0 {
			return r.reg.Services(), nil
		}
		return []registry.Service{r.reg.Normalize(f.Values[0])}, nil

	case model.ServiceInclude:
		included := make(map[registry.Service]bool, len(f.Values))
		for _, v := range f.Values {
			if r.reg.Known(v) {
				included[registry.Service(v)] = true
			}
		}
		// Intersect in registry order so target order is deterministic.
		var out []registry.Service
		for _, svc := range r.reg.Services() {
			if included[svc] {
				out = append(out, svc)
			}
		}
		if len(out) == 0 {
			if r.strict {
				return nil, model.ErrNoTargets
			}
			return r.reg.Services(), nil
		}
		return out, nil

	case model.ServiceExclude:
		excluded := make(map[registry.Service]bool, len(f.Values))
		for _, v := range f.Values {
			excluded[registry.Service(v)] = true
		}
		var out []registry.Service
		for _, svc := range r.reg.Services() {
			if !excluded[svc] {
				out = append(out, svc)
			}
		}
		if len(out) == 0 {
			if r.strict {
				return nil, model.ErrNoTargets
			}
			return []registry.Service{r.reg.DefaultService()}, nil
		}
		return out, nil

	default:
		return r.reg.Services(), nil
	}
}
