package diag

import (
	"testing"

	"layoutlint/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevWarning, "b", "m", span(5, 6), "x"))
	bag.Add(New(SevWarning, "a", "m", span(1, 2), "x"))
	bag.Add(New(SevError, "c", "m", span(5, 6), "x"))
	bag.Add(New(SevWarning, "a", "m", span(1, 2), "x"))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("dedup: want 3 items, got %d", bag.Len())
	}
	bag.Sort()
	got := []string{}
	for _, d := range bag.Items() {
		got = append(got, d.RuleID)
	}
	want := []string{"a", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sort: want %v, got %v", want, got)
		}
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(New(SevInfo, "a", "m", span(0, 0), "")) {
		t.Fatal("first add must succeed")
	}
	if bag.Add(New(SevInfo, "a", "m", span(1, 1), "")) {
		t.Fatal("second add must hit the limit")
	}
	other := NewBag(0)
	other.Add(New(SevInfo, "b", "m", span(2, 2), ""))
	bag.Merge(other)
	if bag.Len() != 2 || bag.Cap() != 2 {
		t.Fatalf("merge: len=%d cap=%d", bag.Len(), bag.Cap())
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	b := NewReportBuilder(r, SevWarning, "curly", "missingCurlyBrackets", span(0, 3), "msg").
		WithFix("wrap", Insert(0, 0, "{"), Insert(0, 3, "}")).
		WithFix("empty").
		Deprecated(true)
	b.Emit()
	b.Emit()
	NewReportBuilder(r, SevWarning, "curly", "missingCurlyBrackets", span(0, 3), "msg").
		WithFix("wrap again", Insert(0, 0, "{"), Insert(0, 3, "}")).
		Emit()

	if bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Fixes) != 1 || !d.Fixable() || !d.Deprecated {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if got := d.Fixes[0].Range(); got.Start != 0 || got.End != 3 {
		t.Fatalf("fix range: %v", got)
	}
	if bag.Fixable() != 1 {
		t.Fatalf("fixable count: %d", bag.Fixable())
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in      string
		sev     Severity
		enabled bool
		err     bool
	}{
		{"off", SevInfo, false, false},
		{"Warning", SevWarning, true, false},
		{"error", SevError, true, false},
		{"2", SevError, true, false},
		{"loud", SevInfo, false, true},
	}
	for _, tc := range cases {
		sev, enabled, err := ParseSeverity(tc.in)
		if (err != nil) != tc.err {
			t.Fatalf("%q: err=%v", tc.in, err)
		}
		if err == nil && (sev != tc.sev || enabled != tc.enabled) {
			t.Fatalf("%q: got %v/%v", tc.in, sev, enabled)
		}
	}
}
