// The `aggregate` package folds classified events into category, stakeholder
// and time-bucket statistics in one pass over the event sequence. It is the
// sole writer of its accumulators; Snapshot() freezes them into the read-only
// data model the reporting layers consume.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"
	"worklens/src-cli/classify"
	"worklens/src-cli/ics"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

// sample events kept per category and per tag
const maxSamples = 5

// untagged events keep a longer sample list; they're the ones worth
// reviewing for missing tags
const maxUntaggedSamples = 20

type stakeholderAcc struct {
	count        int
	hours        float64
	asOrganizer  int
	asAttendee   int
	companies    map[string]struct{}
	meetingTypes map[string]int
	months       map[string]struct{}
}

type organizerAcc struct {
	count   int
	hours   float64
	company string
	months  map[string]struct{}
}

type categoryAcc struct {
	count   int
	hours   float64
	samples []SampleEvent
}

type tagAcc struct {
	count   int
	hours   float64
	months  map[string]struct{}
	samples []TagSample
}

type Aggregator struct {
	selfEmail      string
	internalDomain string
	classifier     *classify.Classifier

	total        int
	byStatus     map[string]int
	byBusyStatus map[string]int
	workEvents   int
	workHours    float64
	exclEvents   int
	exclHours    float64

	byCategory   map[classify.Category]*categoryAcc
	stakeholders map[string]*stakeholderAcc
	organizers   map[string]*organizerAcc
	byTag        map[string]*tagAcc
	untagged     UntaggedStats
	time         TimeStats
}

func New(classifier *classify.Classifier, selfEmail, internalDomain string) *Aggregator {
	return &Aggregator{
		selfEmail:      strings.ToLower(selfEmail),
		internalDomain: strings.ToLower(internalDomain),
		classifier:     classifier,
		byStatus:       make(map[string]int),
		byBusyStatus:   make(map[string]int),
		byCategory:     make(map[classify.Category]*categoryAcc),
		stakeholders:   make(map[string]*stakeholderAcc),
		organizers:     make(map[string]*organizerAcc),
		byTag:          make(map[string]*tagAcc),
		time: TimeStats{
			ByMonth:       make(map[string]*BucketStats),
			ByWeekday:     make(map[string]*BucketStats),
			ByTimeOfDay:   make(map[string]*BucketStats),
			ByMeetingType: make(map[string]*BucketStats),
			ByCompany:     make(map[string]*BucketStats),
			ByLocation:    make(map[string]*BucketStats),
			ByMeetingSize: make(map[string]*BucketStats),
			ByCadence:     make(map[string]*BucketStats),
		},
	}
}

// Add classifies one event and folds it into every aggregate view. Events in
// excluded categories still count toward totals but never touch stakeholder
// or time-bucket stats. Returns the assigned category.
func (a *Aggregator) Add(event *ics.Event) classify.Category {
	category := a.classifier.Classify(event)
	duration := event.DurationHours()

	a.total++
	if event.Status != "" {
		a.byStatus[event.Status]++
	}
	if event.BusyStatus != "" {
		a.byBusyStatus[event.BusyStatus]++
	}

	cat := a.category(category)
	cat.count++
	cat.hours += duration
	if len(cat.samples) < maxSamples {
		cat.samples = append(cat.samples, SampleEvent{
			Summary:       truncate(event.Summary, 80),
			DurationHours: round2(duration),
		})
	}

	if !category.WorkRelevant() {
		a.exclEvents++
		a.exclHours += duration
		return category
	}
	a.workEvents++
	a.workHours += duration

	month := event.Month()
	meetingType := classify.MeetingType(event)

	a.foldOrganizer(event, duration, month)
	a.foldAttendees(event, duration, month, meetingType)
	a.foldTimeBuckets(event, duration, month, meetingType)
	a.foldTags(event, duration, month)

	return category
}

func (a *Aggregator) foldTags(event *ics.Event, duration float64, month string) {
	sample := TagSample{
		Summary:       truncate(event.Summary, 80),
		Organizer:     event.OrganizerName,
		DurationHours: round2(duration),
	}

	var tags []string
	for _, tag := range event.Categories {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		a.untagged.Count++
		a.untagged.Hours += duration
		if len(a.untagged.Samples) < maxUntaggedSamples {
			a.untagged.Samples = append(a.untagged.Samples, sample)
		}
		return
	}

	// a multi-tag event counts fully under each of its tags
	for _, tag := range tags {
		acc := a.tag(tag)
		acc.count++
		acc.hours += duration
		if month != "" {
			acc.months[month] = struct{}{}
		}
		if len(acc.samples) < maxSamples {
			acc.samples = append(acc.samples, sample)
		}
	}
}

func (a *Aggregator) foldOrganizer(event *ics.Event, duration float64, month string) {
	if event.Organizer == "" || strings.EqualFold(event.Organizer, a.selfEmail) {
		return
	}
	key := event.OrganizerName
	if key == "" {
		key = event.Organizer
	}
	rec, ok := a.organizers[key]
	if !ok {
		rec = &organizerAcc{months: make(map[string]struct{})}
		a.organizers[key] = rec
	}
	rec.count++
	rec.hours += duration
	rec.company = OrganizationFromEmail(event.Organizer, a.internalDomain)
	if month != "" {
		rec.months[month] = struct{}{}
	}
}

func (a *Aggregator) foldAttendees(event *ics.Event, duration float64, month, meetingType string) {
	selfOrganized := strings.EqualFold(event.Organizer, a.selfEmail)

	for _, attendee := range event.Attendees {
		if strings.EqualFold(attendee.Email, a.selfEmail) {
			continue
		}
		key := attendee.Name
		if key == "" {
			key = attendee.Email
		}
		rec := a.stakeholder(key)
		rec.count++
		rec.hours += duration
		rec.companies[OrganizationFromEmail(attendee.Email, a.internalDomain)] = struct{}{}
		rec.meetingTypes[meetingType]++
		if month != "" {
			rec.months[month] = struct{}{}
		}
		if selfOrganized {
			rec.asOrganizer++
		} else {
			rec.asAttendee++
		}
	}
}

func (a *Aggregator) foldTimeBuckets(event *ics.Event, duration float64, month, meetingType string) {
	if month != "" {
		bucket(a.time.ByMonth, month).add(duration)
	}
	bucket(a.time.ByWeekday, event.Weekday()).add(duration)
	bucket(a.time.ByTimeOfDay, event.TimeOfDay()).add(duration)
	bucket(a.time.ByMeetingType, meetingType).add(duration)

	// hours split evenly across the distinct organizations on the event
	organizations := make(map[string]struct{})
	for _, attendee := range event.Attendees {
		organizations[OrganizationFromEmail(attendee.Email, a.internalDomain)] = struct{}{}
	}
	for organization := range organizations {
		b := bucket(a.time.ByCompany, organization)
		b.Count++
		b.Hours += duration / float64(len(organizations))
	}

	bucket(a.time.ByLocation, locationLabel(event.Location)).add(duration)
	bucket(a.time.ByMeetingSize, sizeLabel(len(event.Attendees))).add(duration)

	if event.IsRecurring {
		a.time.Recurring.Recurring++
		a.time.Recurring.RecurringHours += duration
		bucket(a.time.ByCadence, cadenceLabel(event.RRule)).add(duration)
	} else {
		a.time.Recurring.Adhoc++
		a.time.Recurring.AdhocHours += duration
	}
}

// Snapshot freezes the accumulators into the exported data model. Hours are
// rounded for the artifact; set-typed fields become sorted slices.
func (a *Aggregator) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		SelfEmail:   a.selfEmail,
		Summary: Summary{
			TotalEvents:    a.total,
			WorkEvents:     a.workEvents,
			WorkHours:      round2(a.workHours),
			ExcludedEvents: a.exclEvents,
			ExcludedHours:  round2(a.exclHours),
			ByStatus:       a.byStatus,
			ByBusyStatus:   a.byBusyStatus,
		},
		ByCategory:   make(map[string]*CategoryStats, len(a.byCategory)),
		Stakeholders: make(map[string]*StakeholderRecord, len(a.stakeholders)),
		Organizers:   make(map[string]*OrganizerRecord, len(a.organizers)),
		ByTag:        make(map[string]*TagStats, len(a.byTag)),
		Untagged: UntaggedStats{
			Count:   a.untagged.Count,
			Hours:   round2(a.untagged.Hours),
			Samples: a.untagged.Samples,
		},
		// rounded copies of the live buckets; the accumulators keep
		// exact hours
		TimeStats: TimeStats{
			ByMonth:       roundBuckets(a.time.ByMonth),
			ByWeekday:     roundBuckets(a.time.ByWeekday),
			ByTimeOfDay:   roundBuckets(a.time.ByTimeOfDay),
			ByMeetingType: roundBuckets(a.time.ByMeetingType),
			ByCompany:     roundBuckets(a.time.ByCompany),
			ByLocation:    roundBuckets(a.time.ByLocation),
			ByMeetingSize: roundBuckets(a.time.ByMeetingSize),
			ByCadence:     roundBuckets(a.time.ByCadence),
			Recurring: RecurringSplit{
				Recurring:      a.time.Recurring.Recurring,
				Adhoc:          a.time.Recurring.Adhoc,
				RecurringHours: round2(a.time.Recurring.RecurringHours),
				AdhocHours:     round2(a.time.Recurring.AdhocHours),
			},
		},
	}

	for category, acc := range a.byCategory {
		snapshot.ByCategory[string(category)] = &CategoryStats{
			Count:        acc.count,
			Hours:        round2(acc.hours),
			WorkRelevant: category.WorkRelevant(),
			Samples:      acc.samples,
		}
	}
	for name, acc := range a.stakeholders {
		snapshot.Stakeholders[name] = &StakeholderRecord{
			Count:        acc.count,
			Hours:        round2(acc.hours),
			AsOrganizer:  acc.asOrganizer,
			AsAttendee:   acc.asAttendee,
			Companies:    sortedKeys(acc.companies),
			MeetingTypes: acc.meetingTypes,
			MonthsActive: sortedKeys(acc.months),
		}
	}
	for name, acc := range a.organizers {
		snapshot.Organizers[name] = &OrganizerRecord{
			Count:        acc.count,
			Hours:        round2(acc.hours),
			Company:      acc.company,
			MonthsActive: sortedKeys(acc.months),
		}
	}
	for tag, acc := range a.byTag {
		snapshot.ByTag[tag] = &TagStats{
			Count:        acc.count,
			Hours:        round2(acc.hours),
			MonthsActive: sortedKeys(acc.months),
			Samples:      acc.samples,
		}
	}

	return snapshot
}

// #region get-or-create lookups

func (a *Aggregator) category(category classify.Category) *categoryAcc {
	acc, ok := a.byCategory[category]
	if !ok {
		acc = &categoryAcc{}
		a.byCategory[category] = acc
	}
	return acc
}

func (a *Aggregator) stakeholder(key string) *stakeholderAcc {
	acc, ok := a.stakeholders[key]
	if !ok {
		acc = &stakeholderAcc{
			companies:    make(map[string]struct{}),
			meetingTypes: make(map[string]int),
			months:       make(map[string]struct{}),
		}
		a.stakeholders[key] = acc
	}
	return acc
}

func (a *Aggregator) tag(name string) *tagAcc {
	acc, ok := a.byTag[name]
	if !ok {
		acc = &tagAcc{months: make(map[string]struct{})}
		a.byTag[name] = acc
	}
	return acc
}

func bucket(buckets map[string]*BucketStats, key string) *BucketStats {
	b, ok := buckets[key]
	if !ok {
		b = &BucketStats{}
		buckets[key] = b
	}
	return b
}

func (b *BucketStats) add(hours float64) {
	b.Count++
	b.Hours += hours
}

// #endregion

func locationLabel(location string) string {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "teams.microsoft.com") || strings.Contains(lower, "zoom"):
		return "Virtual (Teams/Zoom)"
	case location != "":
		return "Physical Location"
	default:
		return "No Location"
	}
}

func sizeLabel(attendees int) string {
	switch {
	case attendees <= 2:
		return "1:1 (2 people)"
	case attendees <= 5:
		return "Small (3-5 people)"
	case attendees <= 10:
		return "Medium (6-10 people)"
	case attendees <= 20:
		return "Large (11-20 people)"
	default:
		return "Very Large (20+ people)"
	}
}

// cadenceLabel parses the retained RRULE value and buckets it by frequency.
// Anything unparsable or sub-daily lands in "Other".
func cadenceLabel(raw string) string {
	if raw == "" {
		return "Other"
	}
	rule, err := rrule.StrToRRule(raw)
	if err != nil {
		return "Other"
	}
	switch rule.Options.Freq {
	case rrule.DAILY:
		return "Daily"
	case rrule.WEEKLY:
		return "Weekly"
	case rrule.MONTHLY:
		return "Monthly"
	case rrule.YEARLY:
		return "Yearly"
	default:
		return "Other"
	}
}

func roundBuckets(src map[string]*BucketStats) map[string]*BucketStats {
	out := make(map[string]*BucketStats, len(src))
	for key, b := range src {
		out[key] = &BucketStats{Count: b.Count, Hours: round2(b.Hours)}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
