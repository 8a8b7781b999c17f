package llm

import "github.com/jklim/schoolcal/internal/event"

// SchemaName identifies the structured-output schema in provider requests.
const SchemaName = "school_events_extraction"

// BuildEventsJSONSchema returns the events JSON-Schema (draft 2020-12
// subset) as a generic map. We pass this to the provider as a structured
// output constraint and also use it locally to validate the response.
//
// Strictness is load-bearing: every key is required (nullable keys are
// present with explicit null), and additionalProperties is false so any
// property outside the event shape is rejected rather than coerced.
func BuildEventsJSONSchema() map[string]any {
	types := make([]string, 0, len(event.AllTypes()))
	for _, t := range event.AllTypes() {
		types = append(types, string(t))
	}

	eventSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"date":  map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"start_time": map[string]any{
				"type":    []string{"string", "null"},
				"pattern": `^\d{2}:\d{2}$`,
			},
			"end_time": map[string]any{
				"type":    []string{"string", "null"},
				"pattern": `^\d{2}:\d{2}$`,
			},
			"location": map[string]any{"type": []string{"string", "null"}},
			"event_type": map[string]any{
				"type": "string",
				"enum": types,
			},
			"attire": map[string]any{"type": []string{"string", "null"}},
			"things_to_bring": map[string]any{
				"type":  []string{"array", "null"},
				"items": map[string]any{"type": "string"},
			},
			"notes":      map[string]any{"type": []string{"string", "null"}},
			"is_all_day": map[string]any{"type": "boolean"},
		},
		"required":             event.FieldNames,
		"additionalProperties": false,
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"events": map[string]any{
				"type":  "array",
				"items": eventSchema,
			},
		},
		"required":             []string{"events"},
		"additionalProperties": false,
	}
}
