package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keywords are the substrings the rule table matches against lower-cased
// titles (and descriptions where noted). They ship with tuned defaults and
// can be overridden per-list from a YAML file, so adjusting a rule never
// means touching code.
type Keywords struct {
	PersonalTimeOff   []string `yaml:"personal_time_off"`
	ExcludedRecurring []string `yaml:"excluded_recurring"`
	WorkAdmin         []string `yaml:"work_admin"`
	PersonalAppts     []string `yaml:"personal_appointments"`
	Clients           []string `yaml:"clients"`
	Meals             []string `yaml:"meals"`
	BusinessMeal      []string `yaml:"business_meal"`
	Fitness           []string `yaml:"fitness"`
	CustomerExternal  []string `yaml:"customer_external"`
	OneOnOneSync      []string `yaml:"one_on_one_sync"`
	Training          []string `yaml:"training"`
	Planning          []string `yaml:"planning"`
	Recruiting        []string `yaml:"recruiting"`
	FocusTime         []string `yaml:"focus_time"`
}

func DefaultKeywords() Keywords {
	return Keywords{
		PersonalTimeOff:   []string{"out of office", "ooo", "pto", "vacation", "holiday"},
		ExcludedRecurring: []string{"focus friday", "focus fridays"},
		WorkAdmin:         []string{"laptop", "it support", "setup"},
		PersonalAppts:     []string{"dentist", "doctor", "personal bookings"},
		Clients:           []string{"customer", "client"},
		Meals:             []string{"lunch", "breakfast"},
		BusinessMeal: []string{
			"customer", "client", "dinner", "reception", "networking", "team",
		},
		Fitness: []string{"gym", "workout", "exercise"},
		CustomerExternal: []string{
			"customer", "client", "external", "demo", "presentation",
			"sales", "prospect", "dinner", "reception",
		},
		OneOnOneSync: []string{"1:1", "one on one", "1-1", "sync", "catch up", "check in"},
		Training: []string{
			"training", "workshop", "learning", "course", "webinar",
			"certification", "onboarding",
		},
		Planning: []string{
			"planning", "roadmap", "strategy", "review", "retrospective",
			"sprint", "scrum", "project", "initiative", "backlog", "refinement",
		},
		Recruiting: []string{"interview", "candidate", "hiring", "recruiting", "screening"},
		FocusTime: []string{
			"focus time", "blocked", "do not book", "dnb",
			"heads down", "deep work", "no meetings",
		},
	}
}

// LoadKeywords reads a YAML overrides file on top of the defaults. Lists
// absent from the file keep their default values.
func LoadKeywords(path string) (Keywords, error) {
	keywords := DefaultKeywords()
	data, err := os.ReadFile(path)
	if err != nil {
		return keywords, fmt.Errorf("can't read keywords file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &keywords); err != nil {
		return keywords, fmt.Errorf("can't parse keywords file %s: %w", path, err)
	}
	return keywords, nil
}
