package classify

import (
	"strings"
	"worklens/src-cli/ics"
)

// Meeting types are a coarser, aggregation-facing labelling than the category
// table: they answer "what kind of meeting was this" for stakeholder and
// time-bucket stats, not whether it counts as work.
var (
	typeOneOnOne = []string{"1:1", "one on one", "1-1", "sync", "catch up", "check in"}
	typeCustomer = []string{"customer", "client", "external", "demo", "presentation"}
	typeTeam     = []string{"team meeting", "standup", "stand-up", "all hands", "town hall"}
	typeTraining = []string{"training", "workshop", "learning", "course", "webinar"}
	typePlanning = []string{"planning", "roadmap", "strategy", "review", "retrospective", "sprint"}
	typeFocus    = []string{"focus", "blocked", "do not book", "heads down"}
)

// MeetingType labels an event for analytics. Always returns a non-empty
// label, defaulting to "General Meetings".
func MeetingType(event *ics.Event) string {
	title := strings.ToLower(event.Summary)
	desc := strings.ToLower(event.Description)

	switch {
	case containsAny(title, typeOneOnOne):
		return "1:1 & Syncs"
	case containsAny(title, typeCustomer) || containsAny(desc, typeCustomer):
		return "Customer/External"
	case containsAny(title, typeTeam):
		return "Team Meetings"
	case containsAny(title, typeTraining):
		return "Training/Learning"
	case containsAny(title, typePlanning):
		return "Planning/Strategy"
	case containsAny(title, typeFocus):
		return "Focus Time"
	default:
		return "General Meetings"
	}
}
