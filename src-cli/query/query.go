// The `query` package is a read-only projection over a snapshot: point
// lookups by stakeholder name, month, organization and top-N rankings.
// Nothing here recomputes from raw events.
package query

import (
	"sort"
	"strings"
	"worklens/src-cli/aggregate"
)

// StakeholderEntry pairs a stakeholder name with its aggregate record.
type StakeholderEntry struct {
	Name   string
	Record *aggregate.StakeholderRecord
}

// CompanyEntry aggregates every stakeholder associated with one organization.
type CompanyEntry struct {
	Company  string
	Hours    float64
	Meetings int
	People   []StakeholderEntry
}

// MonthEntry is one month's bucket plus the stakeholders active in it.
type MonthEntry struct {
	Month       string
	Bucket      aggregate.BucketStats
	ActiveThere []StakeholderEntry
}

// TagEntry pairs a CATEGORIES tag with its aggregate stats.
type TagEntry struct {
	Tag   string
	Stats *aggregate.TagStats
}

// TopStakeholders returns the n stakeholders with the most hours,
// descending. Ties break by name so output order is stable.
func TopStakeholders(snapshot *aggregate.Snapshot, n int) []StakeholderEntry {
	entries := allStakeholders(snapshot)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// FindStakeholders returns every stakeholder whose name contains the search
// string, case-insensitively, sorted by hours descending.
func FindStakeholders(snapshot *aggregate.Snapshot, search string) []StakeholderEntry {
	search = strings.ToLower(search)
	var matches []StakeholderEntry
	for _, entry := range allStakeholders(snapshot) {
		if strings.Contains(strings.ToLower(entry.Name), search) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// FindCompanies groups stakeholders under every organization whose name
// contains the search string, case-insensitively.
func FindCompanies(snapshot *aggregate.Snapshot, search string) []CompanyEntry {
	search = strings.ToLower(search)
	grouped := make(map[string]*CompanyEntry)

	for _, entry := range allStakeholders(snapshot) {
		for _, company := range entry.Record.Companies {
			if !strings.Contains(strings.ToLower(company), search) {
				continue
			}
			group, ok := grouped[company]
			if !ok {
				group = &CompanyEntry{Company: company}
				grouped[company] = group
			}
			group.Hours += entry.Record.Hours
			group.Meetings += entry.Record.Count
			group.People = append(group.People, entry)
		}
	}

	entries := make([]CompanyEntry, 0, len(grouped))
	for _, group := range grouped {
		entries = append(entries, *group)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Hours != entries[j].Hours {
			return entries[i].Hours > entries[j].Hours
		}
		return entries[i].Company < entries[j].Company
	})
	return entries
}

// Month returns the bucket for a YYYY-MM month plus the stakeholders active
// in it, or false when the snapshot has no data for that month.
func Month(snapshot *aggregate.Snapshot, month string) (MonthEntry, bool) {
	bucket, ok := snapshot.TimeStats.ByMonth[month]
	if !ok {
		return MonthEntry{}, false
	}
	entry := MonthEntry{Month: month, Bucket: *bucket}
	for _, stakeholder := range allStakeholders(snapshot) {
		for _, active := range stakeholder.Record.MonthsActive {
			if active == month {
				entry.ActiveThere = append(entry.ActiveThere, stakeholder)
				break
			}
		}
	}
	return entry, true
}

// Tags returns every CATEGORIES tag with its stats, sorted by hours
// descending. Ties break by tag name so output order is stable.
func Tags(snapshot *aggregate.Snapshot) []TagEntry {
	entries := make([]TagEntry, 0, len(snapshot.ByTag))
	for tag, stats := range snapshot.ByTag {
		entries = append(entries, TagEntry{Tag: tag, Stats: stats})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Hours != entries[j].Stats.Hours {
			return entries[i].Stats.Hours > entries[j].Stats.Hours
		}
		return entries[i].Tag < entries[j].Tag
	})
	return entries
}

// Months lists every month present in the snapshot, ascending.
func Months(snapshot *aggregate.Snapshot) []string {
	months := make([]string, 0, len(snapshot.TimeStats.ByMonth))
	for month := range snapshot.TimeStats.ByMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

func allStakeholders(snapshot *aggregate.Snapshot) []StakeholderEntry {
	entries := make([]StakeholderEntry, 0, len(snapshot.Stakeholders))
	for name, record := range snapshot.Stakeholders {
		entries = append(entries, StakeholderEntry{Name: name, Record: record})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Record.Hours != entries[j].Record.Hours {
			return entries[i].Record.Hours > entries[j].Record.Hours
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
