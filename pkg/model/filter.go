package model

// FilterOp defines the supported filter operators.
type FilterOp string

const (
	OpEq     FilterOp = "=="     // Equal
	OpNe     FilterOp = "!="     // Not equal
	OpGt     FilterOp = ">"      // Greater than
	OpGte    FilterOp = ">="     // Greater than or equal
	OpLt     FilterOp = "<"      // Less than
	OpLte    FilterOp = "<="     // Less than or equal
	OpIn     FilterOp = "in"     // Value in set
	OpNin    FilterOp = "nin"    // Value not in set
	OpExists FilterOp = "exists" // Field present (value is a bool)
)

// IsValid checks if the operator is valid.
func (op FilterOp) IsValid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin, OpExists:
		return true
	}
	return false
}

// Condition is a single field predicate.
type Condition struct {
	Field string      `json:"field"`
	Op    FilterOp    `json:"op"`
	Value interface{} `json:"value"`
}

// Validate checks if the condition is well formed.
func (c Condition) Validate() bool {
	return c.Field != "" && c.Op.IsValid()
}

// ServiceMode selects how a filter constrains the service discriminant.
type ServiceMode int

const (
	// ServiceAny places no constraint: all known services are targeted.
	ServiceAny ServiceMode = iota
	// ServiceExact names a single service key.
	ServiceExact
	// ServiceInclude names a "one of" set of service keys.
	ServiceInclude
	// ServiceExclude names a "none of" set of service keys.
	ServiceExclude
)

// ServiceFilter constrains which service keys a logical query spans.
// The zero value means "any service".
type ServiceFilter struct {
	Mode   ServiceMode `json:"mode"`
	Values []string    `json:"values,omitempty"`
}

// AnyService matches every known service key.
func AnyService() ServiceFilter {
	return ServiceFilter{Mode: ServiceAny}
}

// ServiceIs matches exactly one service key.
func ServiceIs(key string) ServiceFilter {
	return ServiceFilter{Mode: ServiceExact, Values: []string{key}}
}

// ServiceIn matches any of the given service keys.
func ServiceIn(keys ...string) ServiceFilter {
	return ServiceFilter{Mode: ServiceInclude, Values: keys}
}

// ServiceNotIn matches every known service key except the given ones.
func ServiceNotIn(keys ...string) ServiceFilter {
	return ServiceFilter{Mode: ServiceExclude, Values: keys}
}

// Filter describes a logical query over the quote entity: a service
// constraint plus simple equality/range/set conditions on fields.
// Filters are constructed per call and consumed once.
type Filter struct {
	Service ServiceFilter `json:"service"`
	Conds   []Condition   `json:"conds,omitempty"`
}

// Where appends a condition and returns the filter for chaining.
func (f Filter) Where(field string, op FilterOp, value interface{}) Filter {
	f.Conds = append(f.Conds, Condition{Field: field, Op: op, Value: value})
	return f
}

// SortKey is one (field, direction) pair of a sort specification.
type SortKey struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// SortSpec is an ordered list of sort keys.
type SortSpec []SortKey

// DefaultSort orders by creation time, newest first.
func DefaultSort() SortSpec {
	return SortSpec{{Field: "createdAt", Desc: true}}
}

// FindOptions control pagination and representation of FindMany results.
type FindOptions struct {
	Sort  SortSpec
	Skip  int64
	Limit int64

	// Lean is a representation detail carried for API compatibility: it
	// requests plain data rather than persistence-aware objects and has no
	// semantic effect on results.
	Lean bool
}

// UpdateOptions control what FindByIDAndUpdate returns.
type UpdateOptions struct {
	// ReturnNew returns the post-update document instead of the pre-update
	// one.
	ReturnNew bool
}
