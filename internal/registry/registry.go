// Package registry holds the closed, build-time mapping from service keys to
// their backing collections. The table is immutable after construction, so it
// is safe to share across request workers without locking.
package registry

// Service is a quote service discriminant. The set is closed; adding a
// service means extending the descriptor table below.
type Service string

const (
	ServicePCB         Service = "pcb"
	ServicePCBAssembly Service = "pcb_assembly"
	ServicePrinting3D  Service = "3d_printing"
	ServiceTesting     Service = "testing"
	ServiceWireHarness Service = "wire_harness"
)

// DefaultService receives documents whose service value is missing or not in
// the closed set. Coercion is silent: the registry is a routing aid, not a
// validator.
const DefaultService = ServicePCB

// Descriptor describes one service's physical layout.
type Descriptor struct {
	Service    Service
	Collection string
	Model      string

	// Allowed lists every service value documents in Collection may carry.
	// A collection allowing more than one value marks a migration window:
	// the extra service is being moved out of (or into) this collection and
	// its documents may live here until the migration completes.
	Allowed []Service
}

// descriptors is the build-time layout, in registry order. testing quotes
// historically lived in printing_quotes and wire_harness quotes in
// assembly_quotes, so those collections still admit the migrating values.
var descriptors = []Descriptor{
	{
		Service:    ServicePCB,
		Collection: "pcb_quotes",
		Model:      "PcbQuote",
		Allowed:    []Service{ServicePCB},
	},
	{
		Service:    ServicePCBAssembly,
		Collection: "assembly_quotes",
		Model:      "PcbAssemblyQuote",
		Allowed:    []Service{ServicePCBAssembly, ServiceWireHarness},
	},
	{
		Service:    ServicePrinting3D,
		Collection: "printing_quotes",
		Model:      "PrintingQuote",
		Allowed:    []Service{ServicePrinting3D, ServiceTesting},
	},
	{
		Service:    ServiceTesting,
		Collection: "testing_quotes",
		Model:      "TestingQuote",
		Allowed:    []Service{ServiceTesting},
	},
	{
		Service:    ServiceWireHarness,
		Collection: "harness_quotes",
		Model:      "HarnessQuote",
		Allowed:    []Service{ServiceWireHarness},
	},
}

// Registry resolves service keys to descriptors. Built once at process start
// and never mutated afterwards.
type Registry struct {
	defaultService Service
	order          []Service
	byService      map[Service]Descriptor
}

// New builds a registry over the static descriptor table with the standard
// default service.
func New() *Registry {
	return NewWithDefault(DefaultService)
}

// NewWithDefault builds a registry whose unknown-key fallback is the given
// service. An unknown default falls back to the standard one.
func NewWithDefault(def Service) *Registry {
	r := &Registry{
		defaultService: def,
		order:          make([]Service, 0, len(descriptors)),
		byService:      make(map[Service]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		r.order = append(r.order, d.Service)
		r.byService[d.Service] = d
	}
	if _, ok := r.byService[def]; !ok {
		r.defaultService = DefaultService
	}
	return r
}

// DefaultService returns the configured fallback service key.
func (r *Registry) DefaultService() Service {
	return r.defaultService
}

// Known reports whether the key belongs to the closed set.
func (r *Registry) Known(key string) bool {
	_, ok := r.byService[Service(key)]
	return ok
}

// Normalize coerces a caller-supplied service value into the closed set,
// silently substituting the default service for unknown or missing values.
func (r *Registry) Normalize(key string) Service {
	if _, ok := r.byService[Service(key)]; ok {
		return Service(key)
	}
	return r.defaultService
}

// Descriptor returns the descriptor for the (normalized) service key.
func (r *Registry) Descriptor(key Service) Descriptor {
	if d, ok := r.byService[key]; ok {
		return d
	}
	return r.byService[r.defaultService]
}

// Services returns all service keys in registry order.
func (r *Registry) Services() []Service {
	out := make([]Service, len(r.order))
	copy(out, r.order)
	return out
}

// Collections returns every backing collection once, in registry order.
func (r *Registry) Collections() []string {
	seen := make(map[string]bool, len(r.order))
	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		coll := r.byService[key].Collection
		if !seen[coll] {
			seen[coll] = true
			out = append(out, coll)
		}
	}
	return out
}

// CollectionsFor returns every collection that may hold documents tagged
// with the service key: the authoritative collection first, then any
// collection still admitting the value through a migration window.
func (r *Registry) CollectionsFor(key Service) []string {
	key = r.Normalize(string(key))
	authoritative := r.byService[key].Collection
	out := []string{authoritative}
	for _, other := range r.order {
		d := r.byService[other]
		if d.Collection == authoritative {
			continue
		}
		for _, allowed := range d.Allowed {
			if allowed == key {
				out = append(out, d.Collection)
				break
			}
		}
	}
	return out
}
