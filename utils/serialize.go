package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DisplayTimeLayout is the human-readable timestamp pattern used on FIR and
// alert endpoints.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// Sanitize returns a transport-safe copy of a stored document: secret
// hashes are removed at every nesting level, ObjectIDs become hex strings
// and timestamps become RFC 3339 strings, or the display pattern when
// displayTime is set. A nil document sanitizes to nil. The transformation
// is idempotent.
func Sanitize(doc bson.M, displayTime bool) bson.M {
	if doc == nil {
		return nil
	}
	out := make(bson.M, len(doc))
	for key, value := range doc {
		if key == "password_hash" {
			continue
		}
		out[key] = sanitizeValue(value, displayTime)
	}
	return out
}

// SanitizeAll applies Sanitize to a slice of documents, returning an empty
// slice rather than nil so list endpoints serialize to [].
func SanitizeAll(docs []bson.M, displayTime bool) []bson.M {
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Sanitize(doc, displayTime))
	}
	return out
}

func sanitizeValue(value interface{}, displayTime bool) interface{} {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return formatTime(v.Time(), displayTime)
	case time.Time:
		return formatTime(v, displayTime)
	case bson.M:
		return Sanitize(v, displayTime)
	case map[string]interface{}:
		return Sanitize(bson.M(v), displayTime)
	case bson.D:
		return Sanitize(v.Map(), displayTime)
	case bson.A:
		out := make(bson.A, 0, len(v))
		for _, item := range v {
			out = append(out, sanitizeValue(item, displayTime))
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, sanitizeValue(item, displayTime))
		}
		return out
	case []bson.M:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, Sanitize(item, displayTime))
		}
		return out
	case primitive.Null:
		return nil
	default:
		return value
	}
}

func formatTime(t time.Time, displayTime bool) string {
	t = t.UTC()
	if displayTime {
		return t.Format(DisplayTimeLayout)
	}
	return t.Format(time.RFC3339)
}
