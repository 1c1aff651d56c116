package controllers

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type requiredField struct {
	name  string
	value string
}

// missingFields returns the names of empty required fields, in declaration
// order, so validation responses are deterministic.
func missingFields(fields []requiredField) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// capitalize uppercases the first letter of a role name for response
// messages.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// asDoc round-trips a typed model through bson so it can be passed to the
// shared sanitizer like any other stored document.
func asDoc(v interface{}) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc
}
