package archive

import (
	"path/filepath"
	"testing"
)

func TestIndex_PublishAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	ix, err := NewIndex(path)
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	if ix.IsPublished("2025-01-02") {
		t.Fatal("fresh index must not report published dates")
	}

	ix.MarkPublished("2025-01-02", 12, 1)
	if !ix.IsPublished("2025-01-02") {
		t.Fatal("expected date to be published")
	}

	// Reload from disk and verify persistence.
	reloaded, err := NewIndex(path)
	if err != nil {
		t.Fatalf("reload index: %v", err)
	}
	if !reloaded.IsPublished("2025-01-02") {
		t.Error("published date lost on reload")
	}
	sum := reloaded.Summary()
	if sum.PublishedDates != 1 || sum.TotalRuns != 1 || sum.TotalFailures != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}
	if sum.LastDate != "2025-01-02" {
		t.Errorf("unexpected last date: %q", sum.LastDate)
	}
}

func TestIndex_TouchRun(t *testing.T) {
	ix, err := NewIndex(filepath.Join(t.TempDir(), "index.json"))
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	ix.TouchRun()
	ix.TouchRun()
	sum := ix.Summary()
	if sum.TotalRuns != 2 || sum.PublishedDates != 0 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}
