package testkit

import "strings"

// Unindent drops the blank lines that open and close s and removes the
// indentation shared by the remaining lines, so test sources can be
// written as indented raw strings.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")
	blank := make([]bool, len(lines))
	common := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			blank[i] = true
			continue
		}
		w := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || w < common {
			common = w
		}
	}
	if common < 0 {
		return ""
	}

	head, tail := 0, len(lines)
	for head < tail && blank[head] {
		head++
	}
	for tail > head && blank[tail-1] {
		tail--
	}
	out := make([]string, 0, tail-head)
	for _, l := range lines[head:tail] {
		if len(l) <= common {
			out = append(out, strings.TrimLeft(l, " \t"))
			continue
		}
		out = append(out, l[common:])
	}
	return strings.Join(out, "\n")
}
