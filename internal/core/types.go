package core

import (
	"fmt"
	"sort"
)

// Factory constructs a Rule from flag-style key/value parameters. Unknown keys
// are ignored and malformed values fall back to the rule's defaults.
type Factory func(cfg map[string]string) (Rule, error)

var rules = map[string]Factory{}

// Register adds a rule factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	rules[name] = f
}

// Rules exposes the registry of available rule factories.
func Rules() map[string]Factory {
	return rules
}

// RuleNames returns the registered rule names in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the rule registered under name.
func Lookup(name string, cfg map[string]string) (Rule, error) {
	f, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}
	return f(cfg)
}
