package diag

import "layoutlint/internal/source"

type dedupKey struct {
	rule      string
	messageID string
	file      source.FileID
	start     uint32
	end       uint32
	msg       string
	fixStart  uint32
	fixEnd    uint32
}

func keyOf(d Diagnostic) dedupKey {
	k := dedupKey{
		rule:      d.RuleID,
		messageID: d.MessageID,
		file:      d.Primary.File,
		start:     d.Primary.Start,
		end:       d.Primary.End,
		msg:       d.Message,
	}
	// two fixes anchored on one node are different findings
	if len(d.Fixes) > 0 {
		r := d.Fixes[0].Range()
		k.fixStart, k.fixEnd = r.Start+1, r.End+1
	}
	return k
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same rule, message, primary span and fix range.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := keyOf(d)
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
