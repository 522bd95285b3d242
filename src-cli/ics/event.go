package ics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A single attendee line, as it appeared in the source. Duplicates are kept.
type Attendee struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Event is one VEVENT block. The DTStart/DTEnd fields keep the raw
// "fieldspec:value" text so TZID parameters stay available to the derived
// accessors below.
type Event struct {
	Summary       string
	DTStart       string
	DTEnd         string
	Description   string
	Location      string
	Organizer     string
	OrganizerName string
	Attendees     []Attendee
	Categories    []string

	// the owner's own PARTSTAT, picked up from the matching ATTENDEE line
	Status string

	BusyStatus   string
	Transp       string
	Created      string
	UID          string
	RecurrenceID string
	IsRecurring  bool
	RRule        string
}

var (
	dateTimeRe = regexp.MustCompile(`\d{8}T\d{6}`)
	dateRe     = regexp.MustCompile(`\d{8}`)
	hourRe     = regexp.MustCompile(`T(\d{2})\d{4}`)
)

// discard everything up to and including a TZID parameter so the raw
// timestamp token is what the regexes see
func stripTZID(s string) string {
	if idx := strings.LastIndex(s, "TZID="); idx >= 0 {
		return s[idx+len("TZID="):]
	}
	return s
}

// DurationHours returns end minus start in hours. Malformed or missing
// timestamps yield 0, never an error.
func (e *Event) DurationHours() float64 {
	startToken := dateTimeRe.FindString(stripTZID(e.DTStart))
	endToken := dateTimeRe.FindString(stripTZID(e.DTEnd))
	if startToken == "" || endToken == "" {
		return 0
	}
	start, err := time.Parse("20060102T150405", startToken)
	if err != nil {
		return 0
	}
	end, err := time.Parse("20060102T150405", endToken)
	if err != nil {
		return 0
	}
	if hours := end.Sub(start).Hours(); hours > 0 {
		return hours
	}
	return 0
}

// Date returns the start date as YYYY-MM-DD, or "" when absent.
func (e *Event) Date() string {
	token := dateRe.FindString(stripTZID(e.DTStart))
	if token == "" {
		return ""
	}
	parsed, err := time.Parse("20060102", token)
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02")
}

// Month returns the start month as YYYY-MM, or "" when absent.
func (e *Event) Month() string {
	date := e.Date()
	if date == "" {
		return ""
	}
	return date[:7]
}

// Weekday returns the start day name ("Monday"...), or "Unknown".
func (e *Event) Weekday() string {
	date := e.Date()
	if date == "" {
		return "Unknown"
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "Unknown"
	}
	return parsed.Weekday().String()
}

// TimeOfDay buckets the start hour into fixed bands, or "Unknown".
func (e *Event) TimeOfDay() string {
	match := hourRe.FindStringSubmatch(stripTZID(e.DTStart))
	if match == nil {
		return "Unknown"
	}
	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return "Unknown"
	}
	switch {
	case hour < 6:
		return "Night (00:00-06:00)"
	case hour < 9:
		return "Early Morning (06:00-09:00)"
	case hour < 12:
		return "Morning (09:00-12:00)"
	case hour < 14:
		return "Lunch (12:00-14:00)"
	case hour < 17:
		return "Afternoon (14:00-17:00)"
	case hour < 20:
		return "Evening (17:00-20:00)"
	default:
		return "Night (20:00-24:00)"
	}
}
