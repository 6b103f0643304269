package lint

import (
	"fmt"
	"sort"
	"sync"

	"layoutlint/internal/diag"
)

// Registry holds every known rule by name.
type Registry struct {
	mu     sync.RWMutex
	rules  []Rule
	byName map[string]int // name -> index into rules
}

// NewRegistry creates a registry with rules; duplicate names panic.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{byName: make(map[string]int, len(rules))}
	for _, rule := range rules {
		if err := r.Add(rule); err != nil {
			panic(err)
		}
	}
	return r
}

// Add registers a rule.
func (r *Registry) Add(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := rule.Meta().Name
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("rule %q registered twice", name)
	}
	r.byName[name] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// Get returns the rule called name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.rules[idx], true
}

// All returns the rules in registration order.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.rules...)
}

// Names returns the sorted rule names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Setting is the configured state of one rule.
type Setting struct {
	Enabled  bool
	Severity diag.Severity
	Options  Options
}

// Resolve turns per-rule settings into the enabled list, in registration
// order. Rules absent from settings use their defaults. Unknown rule names
// and invalid options are errors.
func (r *Registry) Resolve(settings map[string]Setting) ([]Enabled, error) {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rule, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		if err := ValidateOptions(rule.Meta(), settings[name].Options); err != nil {
			return nil, err
		}
	}

	var out []Enabled
	for _, rule := range r.All() {
		meta := rule.Meta()
		s, ok := settings[meta.Name]
		if !ok {
			if !meta.Default {
				continue
			}
			s = Setting{Enabled: true, Severity: meta.DefaultSeverity}
		}
		if !s.Enabled {
			continue
		}
		out = append(out, Enabled{Rule: rule, Severity: s.Severity, Options: s.Options})
	}
	return out, nil
}
