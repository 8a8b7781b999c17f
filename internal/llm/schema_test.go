package llm

import (
	"strings"
	"testing"
)

const validPayload = `{
	"events": [{
		"title": "CA1 English Paper",
		"date": "2026-02-11",
		"start_time": "08:00",
		"end_time": "09:30",
		"location": "Hall",
		"event_type": "exam",
		"attire": null,
		"things_to_bring": ["pencil"],
		"notes": "Bring entry proof",
		"is_all_day": false
	}]
}`

func TestSchema_AcceptsValidPayload(t *testing.T) {
	if err := ValidateJSONAgainstSchema(BuildEventsJSONSchema(), []byte(validPayload)); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestSchema_AcceptsEmptyEvents(t *testing.T) {
	// "No events found" is a successful extraction, so the schema admits it.
	if err := ValidateJSONAgainstSchema(BuildEventsJSONSchema(), []byte(`{"events": []}`)); err != nil {
		t.Fatalf("empty events rejected: %v", err)
	}
}

func TestSchema_AcceptsAllNullOptionals(t *testing.T) {
	payload := `{
		"events": [{
			"title": "Youth Day",
			"date": "2026-07-06",
			"start_time": null,
			"end_time": null,
			"location": null,
			"event_type": "holiday",
			"attire": null,
			"things_to_bring": null,
			"notes": null,
			"is_all_day": true
		}]
	}`
	if err := ValidateJSONAgainstSchema(BuildEventsJSONSchema(), []byte(payload)); err != nil {
		t.Fatalf("all-null optionals rejected: %v", err)
	}
}

func TestSchema_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		blocked string
	}{
		{
			name:    "unknown extra property",
			mutate:  func(s string) string { return strings.Replace(s, `"title"`, `"teacher": "Ms Tan", "title"`, 1) },
			blocked: "additionalProperties",
		},
		{
			name:    "unrecognized event_type",
			mutate:  func(s string) string { return strings.Replace(s, `"exam"`, `"assembly"`, 1) },
			blocked: "enum",
		},
		{
			name:    "missing required key",
			mutate:  func(s string) string { return strings.Replace(s, `"attire": null,`, ``, 1) },
			blocked: "required",
		},
		{
			name:    "non-ISO date",
			mutate:  func(s string) string { return strings.Replace(s, `"2026-02-11"`, `"11 Feb 2026"`, 1) },
			blocked: "pattern",
		},
		{
			name:    "missing events wrapper",
			mutate:  func(string) string { return `[]` },
			blocked: "type",
		},
	}

	schema := BuildEventsJSONSchema()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := tc.mutate(validPayload)
			if err := ValidateJSONAgainstSchema(schema, []byte(payload)); err == nil {
				t.Errorf("expected %s violation to be rejected", tc.blocked)
			}
		})
	}
}
