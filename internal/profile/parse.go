// package profile parses the lookup tool's line-oriented text output into field records
package profile

import (
	"strings"

	"github.com/atredan/sheetgram/internal/models"
)

// subDelimiter joins multiple fields on one output line, e.g.
// "Follower: 120 | Following: 85".
const subDelimiter = " | "

// Field is a single key/value assignment produced by the parser, in source order.
type Field struct {
	Key   string
	Value string
}

// Parse converts raw lookup output into an ordered list of field assignments.
//
// The grammar is: split on newline; split each line containing ':' on the first
// colon; when the value contains " | ", split it and parse each part with the same
// first-colon rule. A part without a colon keeps the outer line's key, so
// "Biography: Hi | Love travel" assigns Biography twice and the last part wins on
// merge. That quirk matches the lookup tool's inconsistent output format and is
// preserved deliberately.
func Parse(raw string) []Field {
	var fields []Field

	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, ":") {
			continue
		}

		key, value, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if !strings.Contains(value, subDelimiter) {
			fields = append(fields, Field{Key: key, Value: value})
			continue
		}

		for _, part := range strings.Split(value, subDelimiter) {
			part = strings.TrimSpace(part)
			if subKey, subValue, ok := strings.Cut(part, ":"); ok {
				fields = append(fields, Field{
					Key:   strings.TrimSpace(subKey),
					Value: strings.TrimSpace(subValue),
				})
			} else {
				fields = append(fields, Field{Key: key, Value: part})
			}
		}
	}

	return fields
}

// Merge flattens ordered fields into a record. Duplicate keys overwrite earlier
// entries; the last occurrence wins.
func Merge(fields []Field) models.ProfileRecord {
	record := make(models.ProfileRecord, len(fields))
	for _, f := range fields {
		record[f.Key] = f.Value
	}
	return record
}

// Record parses raw lookup output straight into a flat [models.ProfileRecord].
func Record(raw string) models.ProfileRecord {
	return Merge(Parse(raw))
}
