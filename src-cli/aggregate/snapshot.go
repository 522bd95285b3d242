package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotFileName is the flat JSON artifact the report/query/serve layers
// consume.
const SnapshotFileName = "snapshot.json"

type SampleEvent struct {
	Summary       string  `json:"summary"`
	DurationHours float64 `json:"duration_hours"`
}

type CategoryStats struct {
	Count        int           `json:"count"`
	Hours        float64       `json:"hours"`
	WorkRelevant bool          `json:"is_work_relevant"`
	Samples      []SampleEvent `json:"sample_events"`
}

// StakeholderRecord is the final, read-only aggregate for one person.
type StakeholderRecord struct {
	Count        int            `json:"count"`
	Hours        float64        `json:"hours"`
	AsOrganizer  int            `json:"as_organizer"`
	AsAttendee   int            `json:"as_attendee"`
	Companies    []string       `json:"companies"`
	MeetingTypes map[string]int `json:"meeting_types"`
	MonthsActive []string       `json:"months_active"`
}

// OrganizerRecord aggregates the meetings someone else scheduled with the
// calendar owner.
type OrganizerRecord struct {
	Count        int      `json:"count"`
	Hours        float64  `json:"hours"`
	Company      string   `json:"company"`
	MonthsActive []string `json:"months_active"`
}

// TagSample carries the organizer alongside the usual sample fields; the tag
// breakdown shows who ran each sampled meeting.
type TagSample struct {
	Summary       string  `json:"summary"`
	Organizer     string  `json:"organizer"`
	DurationHours float64 `json:"duration_hours"`
}

// TagStats aggregates the work-relevant events carrying one CATEGORIES tag.
// An event with several tags counts fully under each.
type TagStats struct {
	Count        int         `json:"count"`
	Hours        float64     `json:"hours"`
	MonthsActive []string    `json:"months_active"`
	Samples      []TagSample `json:"sample_events"`
}

// UntaggedStats tracks the work-relevant events with no CATEGORIES at all.
type UntaggedStats struct {
	Count   int         `json:"count"`
	Hours   float64     `json:"hours"`
	Samples []TagSample `json:"sample_events"`
}

type BucketStats struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
}

type RecurringSplit struct {
	Recurring      int     `json:"recurring"`
	Adhoc          int     `json:"adhoc"`
	RecurringHours float64 `json:"recurring_hours"`
	AdhocHours     float64 `json:"adhoc_hours"`
}

type TimeStats struct {
	ByMonth       map[string]*BucketStats `json:"by_month"`
	ByWeekday     map[string]*BucketStats `json:"by_day_of_week"`
	ByTimeOfDay   map[string]*BucketStats `json:"by_time_of_day"`
	ByMeetingType map[string]*BucketStats `json:"by_meeting_type"`
	ByCompany     map[string]*BucketStats `json:"by_company"`
	ByLocation    map[string]*BucketStats `json:"by_location"`
	ByMeetingSize map[string]*BucketStats `json:"meeting_size_distribution"`
	ByCadence     map[string]*BucketStats `json:"by_recurrence_cadence"`
	Recurring     RecurringSplit          `json:"recurring_vs_adhoc"`
}

type Summary struct {
	TotalEvents    int            `json:"total_events"`
	WorkEvents     int            `json:"work_relevant_events"`
	WorkHours      float64        `json:"work_relevant_hours"`
	ExcludedEvents int            `json:"excluded_events"`
	ExcludedHours  float64        `json:"excluded_hours"`
	ByStatus       map[string]int `json:"by_status"`
	ByBusyStatus   map[string]int `json:"by_busy_status"`
}

// Snapshot is the whole aggregate data model, serialized as flat JSON.
type Snapshot struct {
	ID           string                        `json:"id"`
	GeneratedAt  string                        `json:"generated_at"`
	SelfEmail    string                        `json:"self_email"`
	Summary      Summary                       `json:"summary"`
	ByCategory   map[string]*CategoryStats     `json:"by_category"`
	Stakeholders map[string]*StakeholderRecord `json:"stakeholders"`
	Organizers   map[string]*OrganizerRecord   `json:"organizers"`
	ByTag        map[string]*TagStats          `json:"by_tag"`
	Untagged     UntaggedStats                 `json:"untagged"`
	TimeStats    TimeStats                     `json:"time_stats"`
}

// WriteFile serializes the snapshot, creating the output directory if needed.
func (s *Snapshot) WriteFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("can't marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("can't create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("can't write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot back for the report/query/serve layers.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read snapshot %s: %w", path, err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("can't parse snapshot %s: %w", path, err)
	}
	return &snapshot, nil
}
