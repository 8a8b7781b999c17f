package calendar

import (
	"net/url"

	"github.com/jklim/schoolcal/internal/event"
)

const googleCalendarBase = "https://calendar.google.com/calendar/render"

// GoogleCalendarURL builds a one-tap "add event" link for a single event.
// Opening it on a phone pre-fills Google Calendar's event form; the user
// only taps Save.
//
// The all-day/timed branch mirrors GenerateICS exactly (shared
// IsWholeDay), only the serialization differs: all-day events become a
// start/end calendar-date pair with an exclusive end one real calendar day
// later (month and year boundaries roll over correctly); timed events
// become local date-time stamps with zero seconds and no zone suffix,
// paired with the fixed ctz parameter.
func GoogleCalendarURL(ev event.Event) (string, error) {
	day, err := parseDate(ev)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", ev.Title)

	if IsWholeDay(ev) {
		start := day.Format("20060102")
		end := day.AddDate(0, 0, 1).Format("20060102")
		params.Set("dates", start+"/"+end)
	} else {
		start, end, err := span(ev, day)
		if err != nil {
			return "", err
		}
		params.Set("dates", start.Format("20060102T150405")+"/"+end.Format("20060102T150405"))
	}

	if desc := BuildDescription(ev); desc != "" {
		params.Set("details", desc)
	}
	if ev.Location != nil && *ev.Location != "" {
		params.Set("location", *ev.Location)
	}
	params.Set("ctz", Timezone)

	return googleCalendarBase + "?" + params.Encode(), nil
}

// GoogleCalendarURLs builds one quick-add link per event, independently;
// a malformed record fails the whole batch since records that passed the
// extraction schema can only be malformed through a programming error.
func GoogleCalendarURLs(events []event.Event) ([]string, error) {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		u, err := GoogleCalendarURL(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
