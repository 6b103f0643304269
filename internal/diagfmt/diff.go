package diagfmt

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// DiffContext is the number of unchanged lines around each hunk.
const DiffContext = 3

// UnifiedDiff renders the change from before to after as a unified diff
// with a/ and b/ prefixed names. Identical inputs give nil.
func UnifiedDiff(path string, before, after []byte) ([]byte, error) {
	a, b := splitKeepEOL(string(before)), splitKeepEOL(string(after))
	groups := difflib.NewMatcher(a, b).GetGroupedOpCodes(DiffContext)
	if len(groups) == 0 {
		return nil, nil
	}
	fd := &diff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
	}
	for _, group := range groups {
		fd.Hunks = append(fd.Hunks, buildHunk(group, a, b))
	}
	return diff.PrintFileDiff(fd)
}

func buildHunk(group []difflib.OpCode, a, b []string) *diff.Hunk {
	first, last := group[0], group[len(group)-1]
	h := &diff.Hunk{
		OrigStartLine: int32(first.I1 + 1),
		OrigLines:     int32(last.I2 - first.I1),
		NewStartLine:  int32(first.J1 + 1),
		NewLines:      int32(last.J2 - first.J1),
	}
	// для пустых диапазонов unified diff указывает строку перед вставкой
	if h.OrigLines == 0 {
		h.OrigStartLine--
	}
	if h.NewLines == 0 {
		h.NewStartLine--
	}
	var body strings.Builder
	for _, op := range group {
		switch op.Tag {
		case 'e':
			writeDiffLines(&body, ' ', a[op.I1:op.I2])
		case 'd':
			writeDiffLines(&body, '-', a[op.I1:op.I2])
		case 'i':
			writeDiffLines(&body, '+', b[op.J1:op.J2])
		case 'r':
			writeDiffLines(&body, '-', a[op.I1:op.I2])
			writeDiffLines(&body, '+', b[op.J1:op.J2])
		}
	}
	h.Body = []byte(body.String())
	return h
}

func writeDiffLines(b *strings.Builder, prefix byte, lines []string) {
	for _, l := range lines {
		b.WriteByte(prefix)
		if strings.HasSuffix(l, "\n") {
			b.WriteString(l)
			continue
		}
		b.WriteString(l)
		b.WriteString("\n\\ No newline at end of file\n")
	}
}

func splitKeepEOL(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// WriteDiff prints a diff, coloring added and removed lines when enabled.
func WriteDiff(w io.Writer, d []byte, enabled bool) error {
	if !enabled {
		_, err := w.Write(d)
		return err
	}
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, c := range []*color.Color{add, del, hunk} {
		c.EnableColor()
	}
	for _, line := range strings.SplitAfter(string(d), "\n") {
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = io.WriteString(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = add.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = del.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = hunk.Fprint(w, line)
		default:
			_, err = io.WriteString(w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
