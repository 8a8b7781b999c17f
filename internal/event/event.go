package event

// Type classifies an extracted school event.
type Type string

const (
	TypeExam        Type = "exam"
	TypeFieldTrip   Type = "field_trip"
	TypeCelebration Type = "celebration"
	TypeMeeting     Type = "meeting"
	TypeWorkshop    Type = "workshop"
	TypeHoliday     Type = "holiday"
	TypeDeadline    Type = "deadline"
	TypeOther       Type = "other"
)

// AllTypes returns every recognized event type in a stable order.
func AllTypes() []Type {
	return []Type{
		TypeExam,
		TypeFieldTrip,
		TypeCelebration,
		TypeMeeting,
		TypeWorkshop,
		TypeHoliday,
		TypeDeadline,
		TypeOther,
	}
}

// Valid reports whether t is one of the recognized event types.
func (t Type) Valid() bool {
	for _, k := range AllTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// Event is one extracted calendar item. The JSON shape is fixed: all ten
// keys are always present, with explicit null for absent optional fields.
// Pointer fields (and the nil slice) marshal to null, which is why none of
// them carry omitempty.
type Event struct {
	Title         string   `json:"title"`
	Date          string   `json:"date"`       // YYYY-MM-DD
	StartTime     *string  `json:"start_time"` // HH:MM, 24-hour
	EndTime       *string  `json:"end_time"`   // HH:MM, 24-hour
	Location      *string  `json:"location"`
	EventType     Type     `json:"event_type"`
	Attire        *string  `json:"attire"`
	ThingsToBring []string `json:"things_to_bring"`
	Notes         *string  `json:"notes"`
	IsAllDay      bool     `json:"is_all_day"`
}

// HasStartTime reports whether a usable start time is present.
func (e Event) HasStartTime() bool {
	return e.StartTime != nil && *e.StartTime != ""
}

// HasEndTime reports whether a usable end time is present.
func (e Event) HasEndTime() bool {
	return e.EndTime != nil && *e.EndTime != ""
}
