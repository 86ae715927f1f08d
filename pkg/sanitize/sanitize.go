// Package sanitize converts raw MongoDB documents into their external form:
// every ObjectID becomes its hex string, recursively, so no internal
// identifier type ever reaches a response payload.
package sanitize

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document walks v and returns a copy with every primitive.ObjectID replaced
// by its hex string. All other values pass through unchanged. Total over
// well-formed documents and idempotent: Document(Document(v)) == Document(v).
func Document(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case bson.M:
		out := make(bson.M, len(t))
		for k, val := range t {
			out[k] = Document(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = Document(val)
		}
		return out
	case bson.D:
		out := make(bson.D, len(t))
		for i, e := range t {
			out[i] = bson.E{Key: e.Key, Value: Document(e.Value)}
		}
		return out
	case bson.A:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = Document(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Document(e)
		}
		return out
	case []bson.M:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Document(e)
		}
		return out
	default:
		return v
	}
}
