package model

import "time"

// Quote is the logical quote entity. Instances are physically partitioned
// across several backing collections keyed by the service discriminant, but
// callers interact with them as one uniform collection.
//
// The struct carries only the fields the persistence core interprets; every
// other service-specific or common field travels opaquely in Fields.
type Quote struct {
	// ID is storage-assigned and unique within its backing collection only.
	// Cross-collection lookups by ID therefore scan every collection.
	ID string `bson:"_id,omitempty" json:"id,omitempty"`

	// QuoteID is the human-readable identifier (Q<yyyymmdd><seq>), unique
	// across all backing collections combined. Uniqueness is enforced by a
	// per-collection unique index plus single-collection generation targets.
	QuoteID string `bson:"quote_id,omitempty" json:"quoteId,omitempty"`

	// Service is the discriminant that routes the quote to its collection.
	Service string `bson:"service" json:"service"`

	// CreatedAt is the default sort key and the basis of day-scoped
	// identifier sequences.
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`

	// Fields is the uninterpreted payload, stored inline alongside the
	// known fields.
	Fields map[string]interface{} `bson:",inline" json:"fields,omitempty"`
}

// Value returns the value of a field by its logical name. Both the logical
// (camelCase) and the stored (snake_case) spellings of the known fields are
// accepted; anything else is looked up in the payload.
func (q *Quote) Value(field string) (interface{}, bool) {
	switch field {
	case "id", "_id":
		return q.ID, q.ID != ""
	case "quoteId", "quote_id":
		return q.QuoteID, q.QuoteID != ""
	case "service":
		return q.Service, q.Service != ""
	case "createdAt", "created_at":
		return q.CreatedAt, !q.CreatedAt.IsZero()
	default:
		v, ok := q.Fields[field]
		return v, ok
	}
}

// Clone returns a deep-enough copy: the payload map is copied, payload
// values are shared.
func (q *Quote) Clone() *Quote {
	if q == nil {
		return nil
	}
	c := *q
	if q.Fields != nil {
		c.Fields = make(map[string]interface{}, len(q.Fields))
		for k, v := range q.Fields {
			c.Fields[k] = v
		}
	}
	return &c
}

// SetField stores a payload field, allocating the map on first use.
func (q *Quote) SetField(key string, value interface{}) {
	if q.Fields == nil {
		q.Fields = make(map[string]interface{})
	}
	q.Fields[key] = value
}
