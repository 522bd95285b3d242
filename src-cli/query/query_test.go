package query_test

import (
	"testing"
	"worklens/src-cli/aggregate"
	"worklens/src-cli/query"
)

func testSnapshot() *aggregate.Snapshot {
	return &aggregate.Snapshot{
		Stakeholders: map[string]*aggregate.StakeholderRecord{
			"Jane Doe": {
				Count: 10, Hours: 12.5,
				Companies:    []string{"Acme"},
				MonthsActive: []string{"2025-01", "2025-02"},
			},
			"Bob Li": {
				Count: 4, Hours: 3.0,
				Companies:    []string{"Internal"},
				MonthsActive: []string{"2025-01"},
			},
			"Janet Park": {
				Count: 6, Hours: 3.0,
				Companies:    []string{"Acme", "Internal"},
				MonthsActive: []string{"2025-02"},
			},
		},
		ByTag: map[string]*aggregate.TagStats{
			"Platform":   {Count: 8, Hours: 10.0, MonthsActive: []string{"2025-01", "2025-02"}},
			"Leadership": {Count: 3, Hours: 4.0, MonthsActive: []string{"2025-01"}},
			"Hiring":     {Count: 2, Hours: 4.0, MonthsActive: []string{"2025-02"}},
		},
		TimeStats: aggregate.TimeStats{
			ByMonth: map[string]*aggregate.BucketStats{
				"2025-01": {Count: 8, Hours: 9.0},
				"2025-02": {Count: 12, Hours: 14.0},
			},
		},
	}
}

func TestTopStakeholders(t *testing.T) {
	entries := query.TopStakeholders(testSnapshot(), 2)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Jane Doe" {
		t.Errorf("got first %q", entries[0].Name)
	}
	// equal hours tie-break by name
	if entries[1].Name != "Bob Li" {
		t.Errorf("got second %q", entries[1].Name)
	}
}

func TestFindStakeholders(t *testing.T) {
	matches := query.FindStakeholders(testSnapshot(), "jan")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Name != "Jane Doe" || matches[1].Name != "Janet Park" {
		t.Errorf("got matches %q, %q", matches[0].Name, matches[1].Name)
	}
	if matches := query.FindStakeholders(testSnapshot(), "nobody"); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestFindCompanies(t *testing.T) {
	matches := query.FindCompanies(testSnapshot(), "acme")
	if len(matches) != 1 {
		t.Fatalf("expected 1 company, got %d", len(matches))
	}
	acme := matches[0]
	if acme.Company != "Acme" {
		t.Errorf("got company %q", acme.Company)
	}
	if acme.Hours != 15.5 || acme.Meetings != 16 {
		t.Errorf("got hours %v meetings %d", acme.Hours, acme.Meetings)
	}
	if len(acme.People) != 2 {
		t.Errorf("got %d people", len(acme.People))
	}
}

func TestMonth(t *testing.T) {
	entry, ok := query.Month(testSnapshot(), "2025-02")
	if !ok {
		t.Fatal("expected month to exist")
	}
	if entry.Bucket.Count != 12 || entry.Bucket.Hours != 14.0 {
		t.Errorf("got bucket %+v", entry.Bucket)
	}
	if len(entry.ActiveThere) != 2 {
		t.Fatalf("got %d active stakeholders", len(entry.ActiveThere))
	}
	if entry.ActiveThere[0].Name != "Jane Doe" {
		t.Errorf("got first active %q", entry.ActiveThere[0].Name)
	}

	if _, ok := query.Month(testSnapshot(), "2024-12"); ok {
		t.Error("expected missing month to report false")
	}
}

func TestTags(t *testing.T) {
	entries := query.Tags(testSnapshot())
	if len(entries) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(entries))
	}
	if entries[0].Tag != "Platform" {
		t.Errorf("got first tag %q", entries[0].Tag)
	}
	// equal hours tie-break by tag name
	if entries[1].Tag != "Hiring" || entries[2].Tag != "Leadership" {
		t.Errorf("got order %q, %q", entries[1].Tag, entries[2].Tag)
	}
	if entries[0].Stats.Count != 8 || entries[0].Stats.Hours != 10.0 {
		t.Errorf("got stats %+v", entries[0].Stats)
	}
}

func TestMonths(t *testing.T) {
	months := query.Months(testSnapshot())
	if len(months) != 2 || months[0] != "2025-01" || months[1] != "2025-02" {
		t.Errorf("got months %v", months)
	}
}
