package event

// FieldNames lists every event field in schema order. This is the order
// used when naming disabled fields in the extraction prompt.
var FieldNames = []string{
	"title",
	"date",
	"start_time",
	"end_time",
	"location",
	"event_type",
	"attire",
	"things_to_bring",
	"notes",
	"is_all_day",
}

// EnabledFields is the per-field toggle mask controlling which fields the
// extractor is asked to populate. Title and date are structurally required
// (every event needs an identity and a place in time) and are forced on no
// matter what the mask says.
type EnabledFields struct {
	Title         bool `json:"title"`
	Date          bool `json:"date"`
	StartTime     bool `json:"start_time"`
	EndTime       bool `json:"end_time"`
	Location      bool `json:"location"`
	EventType     bool `json:"event_type"`
	Attire        bool `json:"attire"`
	ThingsToBring bool `json:"things_to_bring"`
	Notes         bool `json:"notes"`
	IsAllDay      bool `json:"is_all_day"`
}

// DefaultEnabledFields returns a mask with every field enabled.
func DefaultEnabledFields() EnabledFields {
	return EnabledFields{
		Title:         true,
		Date:          true,
		StartTime:     true,
		EndTime:       true,
		Location:      true,
		EventType:     true,
		Attire:        true,
		ThingsToBring: true,
		Notes:         true,
		IsAllDay:      true,
	}
}

// Disabled returns the names of disabled fields in schema order.
// Title and date never appear here regardless of the mask.
func (f EnabledFields) Disabled() []string {
	byName := map[string]bool{
		"title":           true, // forced
		"date":            true, // forced
		"start_time":      f.StartTime,
		"end_time":        f.EndTime,
		"location":        f.Location,
		"event_type":      f.EventType,
		"attire":          f.Attire,
		"things_to_bring": f.ThingsToBring,
		"notes":           f.Notes,
		"is_all_day":      f.IsAllDay,
	}
	var out []string
	for _, name := range FieldNames {
		if !byName[name] {
			out = append(out, name)
		}
	}
	return out
}
