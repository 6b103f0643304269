package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)
	ctx, file := Start(ctx, ScopeFile, "file:a.ts")
	_, pass := Start(ctx, ScopePass, "lint")
	pass.WithExtra("rules", "3").End("")
	_, rule := Start(ctx, ScopeRule, "curly")
	rule.End("")
	file.End("ok")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad json %q: %v", lines[1], err)
	}
	if ev.Name != "lint" || ev.Kind != "begin" || ev.ParentID == 0 {
		t.Fatalf("unexpected pass begin event: %+v", ev)
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("bad json %q: %v", lines[2], err)
	}
	if ev.Extra["rules"] != "3" || ev.Extra["dur"] == "" {
		t.Fatalf("missing extras on end event: %+v", ev)
	}
}

func TestRingKeepsTail(t *testing.T) {
	r := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Begin(r, ScopeFile, name, 0)
	}
	Begin(r, ScopeRule, "ignored", 0)
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	if snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("unexpected order: %s..%s", snap[0].Name, snap[2].Name)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), "→ d") {
		t.Fatalf("text dump lacks begin marker:\n%s", buf.String())
	}
}

func TestRingInsideMulti(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r, ok := Ring(tr)
	if !ok {
		t.Fatalf("expected a ring inside %T", tr)
	}
	Begin(tr, ScopeDriver, "lint", 0).End("")
	if len(r.Snapshot()) != 2 {
		t.Fatalf("ring missed events")
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream missed events:\n%s", buf.String())
	}
}

func TestNopIsInert(t *testing.T) {
	ctx, span := Start(context.Background(), ScopeDriver, "lint")
	if span.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("nop tracer produced a live span")
	}
	if d := span.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("nop span reported duration %v", d)
	}
	if tr, err := New(Config{Level: LevelOff}); err != nil || tr.Enabled() {
		t.Fatalf("LevelOff should yield the nop tracer")
	}
	StartHeartbeat(Nop, 0).Stop()
}
