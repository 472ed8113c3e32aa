package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"pcbxpress/internal/storage"
	"pcbxpress/pkg/model"
)

// makeFilterBSON translates a physical query into a MongoDB filter document.
// Conditions on the same field merge into one operator document so ranges
// (>= start, < end) work as expected.
func makeFilterBSON(q storage.Query) bson.M {
	perField := make(map[string]bson.M)

	for _, c := range q.Conds {
		op := mapOp(c.Op)
		if op == "" {
			continue
		}
		field := mapField(c.Field)
		if perField[field] == nil {
			perField[field] = bson.M{}
		}
		perField[field][op] = c.Value
	}

	filter := bson.M{}
	for field, ops := range perField {
		filter[field] = ops
	}
	if q.Service != "" {
		filter["service"] = q.Service
	}
	return filter
}

// mapField maps logical field names to their stored spellings. Payload
// fields are stored inline at the top level, so unknown names pass through.
func mapField(field string) string {
	switch field {
	case "id", "_id":
		return "_id"
	case "quoteId":
		return "quote_id"
	case "createdAt":
		return "created_at"
	case "invoiceId":
		return "invoice_id"
	default:
		return field
	}
}

func mapOp(op model.FilterOp) string {
	switch op {
	case model.OpEq:
		return "$eq"
	case model.OpNe:
		return "$ne"
	case model.OpGt:
		return "$gt"
	case model.OpGte:
		return "$gte"
	case model.OpLt:
		return "$lt"
	case model.OpLte:
		return "$lte"
	case model.OpIn:
		return "$in"
	case model.OpNin:
		return "$nin"
	case model.OpExists:
		return "$exists"
	default:
		return ""
	}
}

func makeSortBSON(spec model.SortSpec) bson.D {
	sort := bson.D{}
	for _, key := range spec {
		dir := 1
		if key.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: mapField(key.Field), Value: dir})
	}
	return sort
}
