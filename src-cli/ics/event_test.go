package ics_test

import (
	"testing"
	"worklens/src-cli/ics"
)

func TestDurationHours(t *testing.T) {
	event := ics.Event{
		DTStart: "DTSTART;TZID=W. Europe Standard Time:20250114T090000",
		DTEnd:   "DTEND;TZID=W. Europe Standard Time:20250114T103000",
	}
	if got := event.DurationHours(); got != 1.5 {
		t.Errorf("expected 1.5 hours, got %v", got)
	}
}

func TestDurationHoursMalformed(t *testing.T) {
	cases := []ics.Event{
		{},
		{DTStart: "DTSTART:20250114T090000"},
		{DTStart: "DTSTART:garbage", DTEnd: "DTEND:20250114T100000"},
		// all-day events carry bare dates, no time token
		{DTStart: "DTSTART;VALUE=DATE:20250114", DTEnd: "DTEND;VALUE=DATE:20250115"},
	}
	for i, event := range cases {
		if got := event.DurationHours(); got != 0 {
			t.Errorf("case %d: expected 0, got %v", i, got)
		}
	}
}

func TestDurationHoursNeverNegative(t *testing.T) {
	event := ics.Event{
		DTStart: "DTSTART:20250114T100000",
		DTEnd:   "DTEND:20250114T090000",
	}
	if got := event.DurationHours(); got != 0 {
		t.Errorf("expected 0 for end before start, got %v", got)
	}
}

func TestDateMonthWeekday(t *testing.T) {
	event := ics.Event{DTStart: "DTSTART;TZID=Pacific Standard Time:20250114T090000"}
	if got := event.Date(); got != "2025-01-14" {
		t.Errorf("got date %q", got)
	}
	if got := event.Month(); got != "2025-01" {
		t.Errorf("got month %q", got)
	}
	// 2025-01-14 is a Tuesday
	if got := event.Weekday(); got != "Tuesday" {
		t.Errorf("got weekday %q", got)
	}
}

func TestDateMissingOrMalformed(t *testing.T) {
	var empty ics.Event
	if got := empty.Date(); got != "" {
		t.Errorf("got date %q", got)
	}
	if got := empty.Month(); got != "" {
		t.Errorf("got month %q", got)
	}
	if got := empty.Weekday(); got != "Unknown" {
		t.Errorf("got weekday %q", got)
	}
	if got := empty.TimeOfDay(); got != "Unknown" {
		t.Errorf("got time of day %q", got)
	}
}

func TestTimeOfDayBands(t *testing.T) {
	cases := []struct {
		hour string
		want string
	}{
		{"03", "Night (00:00-06:00)"},
		{"07", "Early Morning (06:00-09:00)"},
		{"10", "Morning (09:00-12:00)"},
		{"13", "Lunch (12:00-14:00)"},
		{"15", "Afternoon (14:00-17:00)"},
		{"18", "Evening (17:00-20:00)"},
		{"22", "Night (20:00-24:00)"},
	}
	for _, c := range cases {
		event := ics.Event{DTStart: "DTSTART:20250114T" + c.hour + "0000"}
		if got := event.TimeOfDay(); got != c.want {
			t.Errorf("hour %s: expected %q, got %q", c.hour, c.want, got)
		}
	}
}
