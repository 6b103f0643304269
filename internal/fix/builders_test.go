package fix

import (
	"testing"

	"layoutlint/internal/source"
)

// TestBuilders проверяет форму правок, создаваемых билдерами
func TestBuilders(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte("let x = 1"))
	span := source.Span{File: fileID, Start: 4, End: 5}

	ins := InsertAfter("after", span, "y")
	if e := ins.Edits[0]; e.Span.Start != 5 || e.Span.End != 5 || e.NewText != "y" {
		t.Fatalf("InsertAfter: %+v", e)
	}
	ins = InsertBefore("before", span, "_")
	if e := ins.Edits[0]; e.Span.Start != 4 || e.Span.End != 4 {
		t.Fatalf("InsertBefore: %+v", e)
	}

	del := DeleteSpan("del", span)
	if e := del.Edits[0]; e.NewText != "" || e.Span != span {
		t.Fatalf("DeleteSpan: %+v", e)
	}

	rep := ReplaceSpan("rep", span, "z")
	if e := rep.Edits[0]; e.NewText != "z" || e.Span != span {
		t.Fatalf("ReplaceSpan: %+v", e)
	}

	wrap := WrapWith("wrap", span, "(", ")")
	if len(wrap.Edits) != 2 || wrap.Edits[0].Span.Start != 4 || wrap.Edits[1].Span.Start != 5 {
		t.Fatalf("WrapWith: %+v", wrap.Edits)
	}

	both := Combine("both", ins, rep)
	if both.Title != "both" || len(both.Edits) != 2 {
		t.Fatalf("Combine: %+v", both)
	}
}
