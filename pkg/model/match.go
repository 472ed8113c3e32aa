package model

// Matches evaluates the condition against a quote. It is the in-memory
// counterpart of the storage-level bson translation and must agree with it.
func (c Condition) Matches(q *Quote) bool {
	v, present := q.Value(c.Field)

	switch c.Op {
	case OpExists:
		want := true
		if b, ok := c.Value.(bool); ok {
			want = b
		}
		return present == want
	case OpEq:
		return present && CompareValues(v, c.Value) == 0
	case OpNe:
		return !present || CompareValues(v, c.Value) != 0
	case OpGt:
		return present && CompareValues(v, c.Value) > 0
	case OpGte:
		return present && CompareValues(v, c.Value) >= 0
	case OpLt:
		return present && CompareValues(v, c.Value) < 0
	case OpLte:
		return present && CompareValues(v, c.Value) <= 0
	case OpIn:
		return present && valueInSet(v, c.Value)
	case OpNin:
		return !present || !valueInSet(v, c.Value)
	}
	return false
}

// MatchesAll reports whether the quote satisfies every condition.
func MatchesAll(q *Quote, conds []Condition) bool {
	for _, c := range conds {
		if !c.Matches(q) {
			return false
		}
	}
	return true
}

func valueInSet(v, set interface{}) bool {
	for _, item := range asSlice(set) {
		if CompareValues(v, item) == 0 {
			return true
		}
	}
	return false
}

func asSlice(set interface{}) []interface{} {
	switch s := set.(type) {
	case []interface{}:
		return s
	case []string:
		out := make([]interface{}, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case []int:
		out := make([]interface{}, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case []float64:
		out := make([]interface{}, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out
	case nil:
		return nil
	default:
		return []interface{}{set}
	}
}
