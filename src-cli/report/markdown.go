// The `report` package renders a human-readable Markdown summary of a
// snapshot. Pure formatting: all numbers come from the aggregate artifact,
// nothing is recomputed from raw events.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"worklens/src-cli/aggregate"
)

const topStakeholders = 15

// Render produces the full Markdown document for one snapshot.
func Render(snapshot *aggregate.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("# Calendar Analysis - Work Activity Summary\n\n")
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n---\n\n", snapshot.GeneratedAt))

	writeExecutiveSummary(&sb, snapshot)
	writeStakeholderTable(&sb, snapshot)
	writeCategoryTable(&sb, snapshot)
	writeMeetingTypeTable(&sb, snapshot)
	writeMonthTable(&sb, snapshot)

	return sb.String()
}

// RenderToFile writes the rendered document to path.
func RenderToFile(snapshot *aggregate.Snapshot, path string) error {
	if err := os.WriteFile(path, []byte(Render(snapshot)), 0o644); err != nil {
		return fmt.Errorf("can't write report %s: %w", path, err)
	}
	return nil
}

func writeExecutiveSummary(sb *strings.Builder, snapshot *aggregate.Snapshot) {
	summary := snapshot.Summary
	internal := 0
	for _, rec := range snapshot.Stakeholders {
		for _, company := range rec.Companies {
			if company == "Internal" {
				internal++
				break
			}
		}
	}

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Calendar Events**: %d\n", summary.TotalEvents))
	sb.WriteString(fmt.Sprintf("- **Work-Relevant Events**: %d (%s)\n",
		summary.WorkEvents, percent(summary.WorkEvents, summary.TotalEvents)))
	sb.WriteString(fmt.Sprintf("- **Work Hours Tracked**: %.1f hours\n", summary.WorkHours))
	sb.WriteString(fmt.Sprintf("- **Unique Stakeholders Engaged**: %d\n", len(snapshot.Stakeholders)))
	sb.WriteString(fmt.Sprintf("- **Internal Stakeholders**: %d\n", internal))
	sb.WriteString(fmt.Sprintf("- **External Stakeholders**: %d\n\n---\n\n", len(snapshot.Stakeholders)-internal))
}

func writeStakeholderTable(sb *strings.Builder, snapshot *aggregate.Snapshot) {
	type entry struct {
		name string
		rec  *aggregate.StakeholderRecord
	}
	entries := make([]entry, 0, len(snapshot.Stakeholders))
	for name, rec := range snapshot.Stakeholders {
		entries = append(entries, entry{name, rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].rec.Hours != entries[j].rec.Hours {
			return entries[i].rec.Hours > entries[j].rec.Hours
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > topStakeholders {
		entries = entries[:topStakeholders]
	}

	sb.WriteString(fmt.Sprintf("## Top %d Stakeholders by Engagement Time\n\n", topStakeholders))
	sb.WriteString("| Rank | Name | Hours | Meetings | Months Active | Primary Company |\n")
	sb.WriteString("|------|------|-------|----------|---------------|-----------------|\n")
	for i, e := range entries {
		company := "Unknown"
		if len(e.rec.Companies) > 0 {
			company = e.rec.Companies[0]
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %.1f | %d | %d | %s |\n",
			i+1, e.name, e.rec.Hours, e.rec.Count, len(e.rec.MonthsActive), company))
	}
	sb.WriteString("\n")
}

func writeCategoryTable(sb *strings.Builder, snapshot *aggregate.Snapshot) {
	type entry struct {
		name  string
		stats *aggregate.CategoryStats
	}
	entries := make([]entry, 0, len(snapshot.ByCategory))
	for name, stats := range snapshot.ByCategory {
		entries = append(entries, entry{name, stats})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].stats.Count != entries[j].stats.Count {
			return entries[i].stats.Count > entries[j].stats.Count
		}
		return entries[i].name < entries[j].name
	})

	sb.WriteString("## Events by Category\n\n")
	sb.WriteString("| Category | Count | Hours | Work-Relevant |\n")
	sb.WriteString("|----------|-------|-------|---------------|\n")
	for _, e := range entries {
		marker := "no"
		if e.stats.WorkRelevant {
			marker = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f | %s |\n",
			e.name, e.stats.Count, e.stats.Hours, marker))
	}
	sb.WriteString("\n")
}

func writeMeetingTypeTable(sb *strings.Builder, snapshot *aggregate.Snapshot) {
	type entry struct {
		name   string
		bucket *aggregate.BucketStats
	}
	entries := make([]entry, 0, len(snapshot.TimeStats.ByMeetingType))
	total := 0.0
	for name, b := range snapshot.TimeStats.ByMeetingType {
		entries = append(entries, entry{name, b})
		total += b.Hours
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].bucket.Hours != entries[j].bucket.Hours {
			return entries[i].bucket.Hours > entries[j].bucket.Hours
		}
		return entries[i].name < entries[j].name
	})

	sb.WriteString("## Time by Meeting Type\n\n")
	sb.WriteString("| Meeting Type | Meetings | Hours | % of Total |\n")
	sb.WriteString("|--------------|----------|-------|------------|\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f | %s |\n",
			e.name, e.bucket.Count, e.bucket.Hours, percentHours(e.bucket.Hours, total)))
	}
	sb.WriteString("\n")
}

func writeMonthTable(sb *strings.Builder, snapshot *aggregate.Snapshot) {
	months := make([]string, 0, len(snapshot.TimeStats.ByMonth))
	for month := range snapshot.TimeStats.ByMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	sb.WriteString("## Monthly Breakdown\n\n")
	sb.WriteString("| Month | Meetings | Hours | Avg/Meeting |\n")
	sb.WriteString("|-------|----------|-------|-------------|\n")
	for _, month := range months {
		b := snapshot.TimeStats.ByMonth[month]
		avg := 0.0
		if b.Count > 0 {
			avg = b.Hours / float64(b.Count)
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f | %.2f |\n", month, b.Count, b.Hours, avg))
	}
	sb.WriteString("\n")
}

func percent(part, whole int) string {
	if whole == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

func percentHours(part, whole float64) string {
	if whole == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}
