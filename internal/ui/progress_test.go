package ui

import (
	"strings"
	"testing"

	"layoutlint/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	files := []string{"src/a.ts", "src/b.ts"}
	m := NewProgressModel("lint", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "src/a.ts", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q, want parsing", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "src/a.ts", Stage: driver.StageLint, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "src/b.ts", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.ts", Stage: driver.StageParse, Status: driver.StatusError})

	if got := m.finishedCount(); got != 2 {
		t.Fatalf("finished = %d, want 2", got)
	}
	view := m.View()
	if !strings.Contains(view, "lint 2/2") || !strings.Contains(view, "error") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestVisibleItemsPutsActiveFirst(t *testing.T) {
	files := make([]string, maxRows+3)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".ts"
	}
	m := NewProgressModel("fix", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: files[0], Stage: driver.StageLint, Status: driver.StatusDone})

	visible := m.visibleItems()
	if len(visible) != maxRows {
		t.Fatalf("visible = %d, want %d", len(visible), maxRows)
	}
	if visible[0].path == files[0] {
		t.Fatalf("finished file listed before active ones")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate kept = %q", got)
	}
	got := truncate("very/long/path/to/file.ts", 12)
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "file.ts") {
		t.Fatalf("truncate = %q", got)
	}
}
