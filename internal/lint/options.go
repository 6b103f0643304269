package lint

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrUnknownOption is returned for option keys a rule does not declare.
	ErrUnknownOption = errors.New("unknown option")
	// ErrOptionType is returned when an option value has the wrong type.
	ErrOptionType = errors.New("invalid option value")
)

// OptionType is the accepted shape of one option value.
type OptionType uint8

const (
	OptBool OptionType = iota
	// OptInt accepts a non-negative integer.
	OptInt
	// OptIndent accepts a non-negative integer or the string "tab".
	OptIndent
	OptString
	OptStrings
)

func (t OptionType) String() string {
	switch t {
	case OptBool:
		return "boolean"
	case OptInt:
		return "non-negative integer"
	case OptIndent:
		return `non-negative integer or "tab"`
	case OptString:
		return "string"
	case OptStrings:
		return "list of strings"
	}
	return "unknown"
}

// Schema lists the option keys a rule recognizes.
type Schema map[string]OptionType

// Keys returns the recognized keys in sorted order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options holds decoded rule options as produced by the TOML/YAML decoders.
type Options map[string]any

// ValidateOptions checks opts against the rule schema.
func ValidateOptions(meta Meta, opts Options) error {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		typ, ok := meta.Schema[k]
		if !ok {
			return fmt.Errorf("%s: %w %q (known: %s)", meta.Name, ErrUnknownOption, k, strings.Join(meta.Schema.Keys(), ", "))
		}
		if !typ.accepts(opts[k]) {
			return fmt.Errorf("%s: %w for %q: want %s, got %v", meta.Name, ErrOptionType, k, typ, opts[k])
		}
	}
	return nil
}

func (t OptionType) accepts(v any) bool {
	switch t {
	case OptBool:
		_, ok := v.(bool)
		return ok
	case OptInt:
		_, ok := asInt(v)
		return ok
	case OptIndent:
		if s, ok := v.(string); ok {
			return s == "tab"
		}
		_, ok := asInt(v)
		return ok
	case OptString:
		_, ok := v.(string)
		return ok
	case OptStrings:
		_, ok := asStrings(v)
		return ok
	}
	return false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= 0
	case int64:
		if n < 0 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func asStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Bool returns the boolean option key or def.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// Int returns the integer option key or def.
func (o Options) Int(key string, def int) int {
	if n, ok := asInt(o[key]); ok {
		return n
	}
	return def
}

// Strings returns the string list option key or def.
func (o Options) Strings(key string, def []string) []string {
	if list, ok := asStrings(o[key]); ok {
		return list
	}
	return def
}

// Indent renders an indent option as the whitespace of one level.
// "tab" becomes a single tab, a number n becomes n spaces.
func (o Options) Indent(key string, def int) string {
	if s, ok := o[key].(string); ok && s == "tab" {
		return "\t"
	}
	return strings.Repeat(" ", o.Int(key, def))
}
