// The `ics` package parses a calendar export into a flat list of events.
//
// # Notes:
// - This is not a full RFC5545 reader. VTIMEZONE/VALARM blocks and every
//   property the analyzer doesn't need are skipped. Recurrence rules are
//   recorded but never expanded.
// - Outlook exports fold long field values: a trailing "=" on the raw line
//   means the value continues on the following space/tab-indented lines.
//   Unfolding concatenates the left-trimmed continuation text with no
//   separator, so the decoded value is byte-identical to the unfolded form.
// - Malformed lines and unterminated events are dropped, never fatal. The
//   only error this package returns is a whole-file read failure.
package ics

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Calendar holds the events parsed out of a single export, in source order.
type Calendar struct {
	id     string
	events []Event
}

func NewCalendar() Calendar {
	return Calendar{
		id: uuid.NewString(),
	}
}

// Unmarshal an ICS file into a Calendar{} struct. selfEmail is the calendar
// owner's address, matched against ATTENDEE lines to find their own RSVP.
func FromFile(path string, selfEmail string) (*Calendar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open calendar file %s: %w", path, err)
	}
	defer file.Close()

	return Parse(file, selfEmail)
}

// The shared parsing logic behind FromFile, usable on any reader.
func Parse(reader io.Reader, selfEmail string) (*Calendar, error) {
	cal := NewCalendar()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *Event
	var pendingField string
	var pendingValue string
	lineCount := 0

	// a field line ending in "=" keeps accumulating until a
	// non-continuation line shows up
	flushPending := func() {
		if current != nil && pendingField != "" {
			decodeField(current, pendingField, pendingValue, selfEmail)
		}
		pendingField = ""
		pendingValue = ""
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		lineCount++

		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if pendingField != "" {
				pendingValue += strings.TrimLeft(line, " \t")
			}
			// a stray continuation with nothing pending is skipped
			continue
		}

		flushPending()

		switch {
		case line == "BEGIN:VEVENT":
			if current != nil {
				slog.Warn("BEGIN:VEVENT while another event is open, discarding it",
					"line", lineCount, "summary", current.Summary)
			}
			current = &Event{}
		case line == "END:VEVENT":
			// END with no open event is a no-op
			if current != nil {
				cal.events = append(cal.events, *current)
				current = nil
			}
		case current != nil && strings.Contains(line, ":"):
			slice := strings.SplitN(line, ":", 2)
			if strings.HasSuffix(line, "=") {
				pendingField = slice[0]
				pendingValue = slice[1]
			} else {
				decodeField(current, slice[0], slice[1], selfEmail)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read calendar data: %w", err)
	}

	if current != nil {
		slog.Warn("unterminated VEVENT at end of input, discarded",
			"summary", current.Summary)
	}

	slog.Debug("parsed calendar", "lines", lineCount, "events", len(cal.events))
	return &cal, nil
}

// #region Getters

func (c *Calendar) GetID() string {
	return c.id
}

func (c *Calendar) GetEvents() []Event {
	return c.events
}

func (c *Calendar) EventCount() int {
	return len(c.events)
}

// #endregion
