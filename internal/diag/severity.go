package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity decodes a configuration value. "off" returns enabled=false.
func ParseSeverity(s string) (sev Severity, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SevInfo, false, nil
	case "info":
		return SevInfo, true, nil
	case "warning", "warn", "1":
		return SevWarning, true, nil
	case "error", "2":
		return SevError, true, nil
	}
	return SevInfo, false, fmt.Errorf("unknown severity %q", s)
}
