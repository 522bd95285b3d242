// The `classify` package assigns every calendar event exactly one category
// label via an ordered rule table: first matching rule wins, so earlier rules
// encode real-world precedence (an explicit decline beats "looks like a
// customer meeting"). Classification is pure and total.
package classify

import (
	"strings"
	"worklens/src-cli/ics"
)

type Category string

const (
	CategoryNonMeeting    Category = "non_meetings_excluded"
	CategoryDeclined      Category = "declined_tentative_declined"
	CategoryTentative     Category = "declined_tentative_tentative"
	CategoryOutOfOffice   Category = "out_of_office"
	CategoryPersonalTime  Category = "personal_time_off"
	CategoryFocusFridays  Category = "focus_fridays_excluded"
	CategoryWorkAdmin     Category = "work_admin_it"
	CategoryPersonalAppts Category = "personal_appointments_excluded"
	CategoryBusinessMeals Category = "business_meals_networking"
	CategoryBreaks        Category = "breaks_personal_excluded"
	CategoryFreeTime      Category = "free_time_transparent_excluded"
	CategoryCustomer      Category = "customer_external"
	CategoryOneOnOneSync  Category = "internal_meetings_1on1_sync"
	CategoryTraining      Category = "training_learning"
	CategoryPlanning      Category = "planning_strategy"
	CategoryRecruiting    Category = "recruiting_hiring"
	CategoryFocusTime     Category = "focus_time_blocked"
	CategoryGeneralWork   Category = "general_work_meetings"
	CategoryUncategorized Category = "uncategorized"
)

// All lists every category a classifier can produce.
var All = []Category{
	CategoryNonMeeting,
	CategoryDeclined,
	CategoryTentative,
	CategoryOutOfOffice,
	CategoryPersonalTime,
	CategoryFocusFridays,
	CategoryWorkAdmin,
	CategoryPersonalAppts,
	CategoryBusinessMeals,
	CategoryBreaks,
	CategoryFreeTime,
	CategoryCustomer,
	CategoryOneOnOneSync,
	CategoryTraining,
	CategoryPlanning,
	CategoryRecruiting,
	CategoryFocusTime,
	CategoryGeneralWork,
	CategoryUncategorized,
}

// categories that never count toward actual work time
var excludedCategories = map[Category]struct{}{
	CategoryNonMeeting:    {},
	CategoryDeclined:      {},
	CategoryTentative:     {},
	CategoryOutOfOffice:   {},
	CategoryPersonalTime:  {},
	CategoryFocusFridays:  {},
	CategoryPersonalAppts: {},
	CategoryBreaks:        {},
	CategoryFreeTime:      {},
}

// WorkRelevant reports whether time in this category counts as work.
func (c Category) WorkRelevant() bool {
	_, excluded := excludedCategories[c]
	return !excluded
}

// ruleInput carries the event plus its pre-lowered text, so every rule
// matches against the same strings.
type ruleInput struct {
	event *ics.Event
	title string
	desc  string
}

// a rule returns its label on match, "" otherwise
type rule struct {
	name  string
	apply func(in ruleInput) Category
}

type Classifier struct {
	keywords Keywords
	rules    []rule
}

// New builds the fixed, numbered rule table from the keyword lists. Rule
// order is part of the contract; see the table itself.
func New(keywords Keywords) *Classifier {
	c := &Classifier{keywords: keywords}
	kw := keywords

	c.rules = []rule{
		{"non-meeting", func(in ruleInput) Category {
			if len(in.event.Attendees) == 0 {
				return CategoryNonMeeting
			}
			return ""
		}},
		{"own-rsvp", func(in ruleInput) Category {
			switch in.event.Status {
			case "DECLINED":
				return CategoryDeclined
			case "TENTATIVE":
				return CategoryTentative
			}
			return ""
		}},
		{"out-of-office", func(in ruleInput) Category {
			if in.event.BusyStatus == "OOF" {
				return CategoryOutOfOffice
			}
			return ""
		}},
		{"personal-time-off", func(in ruleInput) Category {
			if containsAny(in.title, kw.PersonalTimeOff) {
				return CategoryPersonalTime
			}
			return ""
		}},
		{"excluded-recurring", func(in ruleInput) Category {
			if containsAny(in.title, kw.ExcludedRecurring) {
				return CategoryFocusFridays
			}
			return ""
		}},
		{"work-admin", func(in ruleInput) Category {
			if containsAny(in.title, kw.WorkAdmin) {
				return CategoryWorkAdmin
			}
			return ""
		}},
		{"personal-appointment", func(in ruleInput) Category {
			if containsAny(in.title, kw.PersonalAppts) && !containsAny(in.title, kw.Clients) {
				return CategoryPersonalAppts
			}
			return ""
		}},
		{"meals", func(in ruleInput) Category {
			if containsAny(in.title, kw.Meals) {
				if containsAny(in.title, kw.BusinessMeal) || containsAny(in.desc, kw.BusinessMeal) {
					return CategoryBusinessMeals
				}
				return CategoryBreaks
			}
			if containsAny(in.title, kw.Fitness) {
				return CategoryBreaks
			}
			return ""
		}},
		{"free-time", func(in ruleInput) Category {
			if in.event.Transp == "TRANSPARENT" || in.event.BusyStatus == "FREE" {
				return CategoryFreeTime
			}
			return ""
		}},
		{"customer-external", func(in ruleInput) Category {
			if containsAny(in.title, kw.CustomerExternal) || containsAny(in.desc, kw.CustomerExternal) {
				return CategoryCustomer
			}
			return ""
		}},
		{"one-on-one-sync", func(in ruleInput) Category {
			if containsAny(in.title, kw.OneOnOneSync) {
				return CategoryOneOnOneSync
			}
			return ""
		}},
		{"training", func(in ruleInput) Category {
			if containsAny(in.title, kw.Training) {
				return CategoryTraining
			}
			return ""
		}},
		{"planning", func(in ruleInput) Category {
			if containsAny(in.title, kw.Planning) {
				return CategoryPlanning
			}
			return ""
		}},
		{"recruiting", func(in ruleInput) Category {
			if containsAny(in.title, kw.Recruiting) {
				return CategoryRecruiting
			}
			return ""
		}},
		{"focus-time", func(in ruleInput) Category {
			if containsAny(in.title, kw.FocusTime) && !containsAny(in.title, kw.ExcludedRecurring) {
				return CategoryFocusTime
			}
			return ""
		}},
		{"busy-opaque", func(in ruleInput) Category {
			if in.event.BusyStatus == "BUSY" || in.event.Transp == "OPAQUE" {
				return CategoryGeneralWork
			}
			return ""
		}},
	}

	return c
}

// Classify maps an event to its category. Deterministic, no side effects.
func (c *Classifier) Classify(event *ics.Event) Category {
	in := ruleInput{
		event: event,
		title: strings.ToLower(event.Summary),
		desc:  strings.ToLower(event.Description),
	}
	for _, r := range c.rules {
		if category := r.apply(in); category != "" {
			return category
		}
	}
	return CategoryUncategorized
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
