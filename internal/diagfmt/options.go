// Package diagfmt renders diagnostics and fix diffs for the CLI.
package diagfmt

import (
	"fmt"
	"strings"

	"layoutlint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // relative when under BaseDir, else absolute
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a flag value.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected: auto|absolute|relative|basename)", s)
}

// Format is an output format of the lint command.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
)

// ParseFormat converts a flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatPretty, fmt.Errorf("invalid format %q (expected: pretty|short|json)", s)
}

// PrettyOpts configures Pretty and Short.
type PrettyOpts struct {
	Color    bool
	Context  int // lines shown around the primary line
	PathMode PathMode
	BaseDir  string
	// TabWidth is used only for caret alignment; the line itself is printed
	// as written.
	TabWidth  int
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures the JSON report.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	IncludeFixes bool
	Max          int // 0 is unlimited
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		return f.FormatPath("relative", baseDir)
	}
}
