package ics

import (
	"regexp"
	"strings"
	"unicode/utf8"
	"worklens/src-cli/utils"
)

// DESCRIPTION values past this point add nothing to keyword matching
const maxDescriptionLen = 500

var (
	mailtoRe   = regexp.MustCompile(`mailto:([^\s]+)`)
	partstatRe = regexp.MustCompile(`PARTSTAT=([^;:]+)`)
	cnRe       = regexp.MustCompile(`CN="?([^";:]+)"?`)
)

// decodeField applies one decoded field line to the event. `field` is the
// raw name+parameters part ("DTSTART;TZID=..."), `value` everything after the
// first colon. Unknown field names are ignored. `selfEmail` is the calendar
// owner's address, used to pick up their own PARTSTAT from ATTENDEE lines.
func decodeField(event *Event, field, value, selfEmail string) {
	name := field
	if idx := strings.Index(field, ";"); idx >= 0 {
		name = field[:idx]
	}

	switch name {
	case "SUMMARY":
		event.Summary = utils.StripNonASCII(value)
	case "DTSTART":
		event.DTStart = field + ":" + value
	case "DTEND":
		event.DTEnd = field + ":" + value
	case "DESCRIPTION":
		if len(value) > maxDescriptionLen {
			// never cut through a multi-byte rune
			cut := maxDescriptionLen
			for cut > 0 && !utf8.RuneStart(value[cut]) {
				cut--
			}
			value = value[:cut]
		}
		event.Description = value
	case "LOCATION":
		event.Location = value
	case "ORGANIZER":
		if match := mailtoRe.FindStringSubmatch(value); match != nil {
			event.Organizer = match[1]
		}
		if match := cnRe.FindStringSubmatch(field); match != nil {
			event.OrganizerName = match[1]
		}
	case "ATTENDEE":
		partstat := ""
		if match := partstatRe.FindStringSubmatch(field); match != nil {
			partstat = match[1]
		}
		if selfEmail != "" && partstat != "" &&
			strings.Contains(strings.ToLower(value), strings.ToLower(selfEmail)) {
			event.Status = partstat
		}
		match := mailtoRe.FindStringSubmatch(value)
		if match == nil {
			return
		}
		email := match[1]
		name := strings.SplitN(email, "@", 2)[0]
		if cn := cnRe.FindStringSubmatch(field); cn != nil {
			name = cn[1]
		}
		if partstat == "" {
			partstat = "UNKNOWN"
		}
		event.Attendees = append(event.Attendees, Attendee{
			Email:  email,
			Name:   name,
			Status: partstat,
		})
	case "CATEGORIES":
		var categories []string
		for _, token := range strings.Split(value, ",") {
			categories = append(categories, strings.TrimSpace(token))
		}
		event.Categories = categories
	case "X-MICROSOFT-CDO-BUSYSTATUS":
		event.BusyStatus = value
	case "TRANSP":
		event.Transp = value
	case "CREATED":
		event.Created = value
	case "UID":
		event.UID = value
	case "RRULE":
		event.IsRecurring = true
		event.RRule = value
	case "RECURRENCE-ID":
		event.RecurrenceID = value
	}
}
