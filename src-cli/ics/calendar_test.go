package ics_test

import (
	"strings"
	"testing"
	"unicode/utf8"
	"worklens/src-cli/ics"
)

const selfEmail = "me@example.com"

func TestParseOneEventPerBlock(t *testing.T) {
	raw := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"SUMMARY:Weekly Sync",
		"DTSTART;TZID=W. Europe Standard Time:20250114T090000",
		"DTEND;TZID=W. Europe Standard Time:20250114T100000",
		"UID:event-1",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:Planning",
		"UID:event-2",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	events := cal.GetEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Summary != "Weekly Sync" {
		t.Errorf("expected summary 'Weekly Sync', got %q", events[0].Summary)
	}
	if events[0].UID != "event-1" || events[1].UID != "event-2" {
		t.Errorf("source order not preserved: %q, %q", events[0].UID, events[1].UID)
	}
}

func TestParseFoldedField(t *testing.T) {
	// a trailing "=" means the value continues on indented lines; the "="
	// itself stays in the value and continuations join with no separator
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"DESCRIPTION:first part=",
		" second part=",
		"\tthird part",
		"SUMMARY:After Fold",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	events := cal.GetEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := "first part=second part=third part"
	if events[0].Description != want {
		t.Errorf("expected description %q, got %q", want, events[0].Description)
	}
	// the next field line flushed the pending value and was decoded itself
	if events[0].Summary != "After Fold" {
		t.Errorf("expected summary 'After Fold', got %q", events[0].Summary)
	}
}

func TestParseStrayContinuation(t *testing.T) {
	// an indented line with nothing pending must be skipped, not crash
	raw := strings.Join([]string{
		" orphan continuation",
		"BEGIN:VEVENT",
		"SUMMARY:Still Works",
		" another orphan",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if cal.EventCount() != 1 {
		t.Fatalf("expected 1 event, got %d", cal.EventCount())
	}
	if cal.GetEvents()[0].Summary != "Still Works" {
		t.Errorf("got summary %q", cal.GetEvents()[0].Summary)
	}
}

func TestParseUnterminatedEventDropped(t *testing.T) {
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Complete",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:Never Closed",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if cal.EventCount() != 1 {
		t.Fatalf("expected 1 event, got %d", cal.EventCount())
	}
	if cal.GetEvents()[0].Summary != "Complete" {
		t.Errorf("got summary %q", cal.GetEvents()[0].Summary)
	}
}

func TestParseEndWithoutBegin(t *testing.T) {
	raw := strings.Join([]string{
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:Real Event",
		"END:VEVENT",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if cal.EventCount() != 1 {
		t.Fatalf("expected 1 event, got %d", cal.EventCount())
	}
}

func TestParseBeginDiscardsOpenEvent(t *testing.T) {
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Abandoned",
		"BEGIN:VEVENT",
		"SUMMARY:Kept",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if cal.EventCount() != 1 {
		t.Fatalf("expected 1 event, got %d", cal.EventCount())
	}
	if cal.GetEvents()[0].Summary != "Kept" {
		t.Errorf("got summary %q", cal.GetEvents()[0].Summary)
	}
}

func TestParseFieldsOutsideEventIgnored(t *testing.T) {
	raw := strings.Join([]string{
		"SUMMARY:Not In An Event",
		"BEGIN:VEVENT",
		"SUMMARY:In An Event",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if cal.EventCount() != 1 {
		t.Fatalf("expected 1 event, got %d", cal.EventCount())
	}
	if cal.GetEvents()[0].Summary != "In An Event" {
		t.Errorf("got summary %q", cal.GetEvents()[0].Summary)
	}
}

func TestParseAttendeesAndOrganizer(t *testing.T) {
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Project Review",
		`ORGANIZER;CN="Alice Chen":mailto:alice@acme.com`,
		`ATTENDEE;ROLE=REQ-PARTICIPANT;PARTSTAT=ACCEPTED;CN="Bob Li":mailto:bob@acme.com`,
		"ATTENDEE;PARTSTAT=ACCEPTED:mailto:me@example.com",
		"ATTENDEE:mailto:carol@widgets.io",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	events := cal.GetEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]

	if event.Organizer != "alice@acme.com" {
		t.Errorf("got organizer %q", event.Organizer)
	}
	if event.OrganizerName != "Alice Chen" {
		t.Errorf("got organizer name %q", event.OrganizerName)
	}
	if len(event.Attendees) != 3 {
		t.Fatalf("expected 3 attendees, got %d", len(event.Attendees))
	}
	if event.Attendees[0].Name != "Bob Li" || event.Attendees[0].Status != "ACCEPTED" {
		t.Errorf("got first attendee %+v", event.Attendees[0])
	}
	// no CN parameter: name falls back to the email local part
	if event.Attendees[2].Name != "carol" {
		t.Errorf("got third attendee name %q", event.Attendees[2].Name)
	}
	// no PARTSTAT parameter: status falls back to UNKNOWN
	if event.Attendees[2].Status != "UNKNOWN" {
		t.Errorf("got third attendee status %q", event.Attendees[2].Status)
	}
	// the owner's own PARTSTAT lands on the event
	if event.Status != "ACCEPTED" {
		t.Errorf("got own status %q", event.Status)
	}
}

func TestParseDescriptionTruncated(t *testing.T) {
	long := strings.Repeat("x", 800)
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"DESCRIPTION:" + long,
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(cal.GetEvents()[0].Description); got != 500 {
		t.Errorf("expected description clipped to 500, got %d", got)
	}
}

func TestParseDescriptionTruncatedOnRuneBoundary(t *testing.T) {
	// a three-byte rune straddling the 500-byte boundary must be dropped
	// whole, never split
	long := strings.Repeat("x", 499) + "日本語"
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"DESCRIPTION:" + long,
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	got := cal.GetEvents()[0].Description
	if !utf8.ValidString(got) {
		t.Errorf("description is not valid UTF-8: %q", got)
	}
	if len(got) != 499 {
		t.Errorf("expected 499 bytes, got %d", len(got))
	}
}

func TestParseSummaryStrippedToASCII(t *testing.T) {
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Café Sync – Q3",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	if got := cal.GetEvents()[0].Summary; got != "Caf Sync  Q3" {
		t.Errorf("got summary %q", got)
	}
}

func TestParseRecurrenceAndMisc(t *testing.T) {
	raw := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Standup",
		"RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
		"CATEGORIES:Work, Important",
		"X-MICROSOFT-CDO-BUSYSTATUS:BUSY",
		"TRANSP:OPAQUE",
		"END:VEVENT",
	}, "\n")

	cal, err := ics.Parse(strings.NewReader(raw), selfEmail)
	if err != nil {
		t.Fatal(err)
	}
	event := cal.GetEvents()[0]
	if !event.IsRecurring {
		t.Error("expected IsRecurring")
	}
	if event.RRule != "FREQ=WEEKLY;BYDAY=MO,WE,FR" {
		t.Errorf("got rrule %q", event.RRule)
	}
	if len(event.Categories) != 2 || event.Categories[1] != "Important" {
		t.Errorf("got categories %v", event.Categories)
	}
	if event.BusyStatus != "BUSY" || event.Transp != "OPAQUE" {
		t.Errorf("got busy=%q transp=%q", event.BusyStatus, event.Transp)
	}
}
