package classify_test

import (
	"os"
	"path/filepath"
	"testing"
	"worklens/src-cli/classify"
)

func TestLoadKeywordsOverridesOneList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	raw := "excluded_recurring:\n  - focus monday\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	keywords, err := classify.LoadKeywords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(keywords.ExcludedRecurring) != 1 || keywords.ExcludedRecurring[0] != "focus monday" {
		t.Errorf("got excluded_recurring %v", keywords.ExcludedRecurring)
	}
	// untouched lists keep their defaults
	defaults := classify.DefaultKeywords()
	if len(keywords.Planning) != len(defaults.Planning) {
		t.Errorf("planning list changed: %v", keywords.Planning)
	}
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	if _, err := classify.LoadKeywords("/nonexistent/keywords.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
