package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.ts", []byte("const a = 1"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// второй снимок того же пути получает новый ID
	id2 := fs.Add("test.ts", []byte("const a = 2"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.ts")
	if !exists {
		t.Fatal("Expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	if got := string(fs.Get(id1).Content); got != "const a = 1" {
		t.Errorf("Expected first snapshot to stay intact, got %q", got)
	}
	if fs.Get(id1).Path != fs.Get(id2).Path {
		t.Error("Expected both snapshots to share a path")
	}
	if fs.Get(42) != nil {
		t.Error("Expected unknown FileID to resolve to nil")
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.ts", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
	if file.LineCount() != 3 {
		t.Errorf("Expected 3 lines, got %d", file.LineCount())
	}
}

func TestCRLFIsPreserved(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.ts", []byte("a\r\n  b\r\n"))
	file := fs.Get(id)

	if string(file.Content) != "a\r\n  b\r\n" {
		t.Errorf("Expected content to be untouched, got %q", string(file.Content))
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("Expected FileHasCRLF flag to be set")
	}
	if got := file.GetLine(1); got != "a" {
		t.Errorf("Expected line 1 without \\r, got %q", got)
	}
	if got := file.LineIndent(2); got != "  " {
		t.Errorf("Expected indent of line 2 to be two spaces, got %q", got)
	}
}

func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Errorf("Expected content without BOM %q, got %q", "x\n", string(withoutBOM))
	}

	fs := NewFileSet()
	id := fs.AddVirtual("bom.ts", []byte("\xEF\xBB\xBFx\n"))
	file := fs.Get(id)
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
	if string(file.Encoded()) != "\xEF\xBB\xBFx\n" {
		t.Errorf("Expected Encoded to restore the BOM, got %q", string(file.Encoded()))
	}
}

// TestResolveUTF8 проверяет разрешение позиций в UTF-8 тексте
func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.ts", []byte("α\n")) // α = 2 байта

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("Expected start 1:1, got %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("Expected end 1:2, got %+v", end)
	}
}

func TestLineColRoundTrip(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.ts", []byte("ab\n\n  cd\n"))
	file := fs.Get(id)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // '\n' belongs to its line
		{3, LineCol{2, 1}},
		{4, LineCol{3, 1}},
		{6, LineCol{3, 3}},
		{9, LineCol{4, 1}},
	}
	for _, tc := range cases {
		got := file.LineCol(tc.off)
		if got != tc.want {
			t.Errorf("LineCol(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
		if back := file.Offset(got); back != tc.off {
			t.Errorf("Offset(%+v) = %d, want %d", got, back, tc.off)
		}
	}

	if got := file.Offset(LineCol{Line: 1, Col: 40}); got != 2 {
		t.Errorf("Expected column past line end to clamp to 2, got %d", got)
	}
	if got := file.LineIndent(3); got != "  " {
		t.Errorf("Expected indent %q, got %q", "  ", got)
	}
	if got := file.LineIndent(2); got != "" {
		t.Errorf("Expected empty indent for blank line, got %q", got)
	}
}

// TestEdgeCases проверяет граничные случаи
func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	file1 := fs.Get(fs.AddVirtual("empty.ts", []byte{}))
	if len(file1.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(file1.LineIdx))
	}
	if file1.GetLine(1) != "" {
		t.Errorf("Expected empty first line, got %q", file1.GetLine(1))
	}

	file2 := fs.Get(fs.AddVirtual("only_newline.ts", []byte("\n")))
	if len(file2.LineIdx) != 1 || file2.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", file2.LineIdx)
	}
	if file2.GetLine(5) != "" {
		t.Error("Expected out of range line to be empty")
	}
}

func TestLoad(t *testing.T) {
	fs := NewFileSet()
	path := filepath.Join(t.TempDir(), "input.ts")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\n"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\r\nb\n" {
		t.Errorf("Expected file content %q, got %q", "a\r\nb\n", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
	if file.Flags&FileVirtual != 0 {
		t.Error("Expected loaded file not to be virtual")
	}

	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.ts")); err == nil {
		t.Error("Expected error for missing file")
	}
}
