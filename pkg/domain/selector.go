package domain

import (
	"fmt"
	"strings"
)

// Selector picks nodes either by exact name or by suffix. Name takes
// precedence when both are set; the zero Selector matches nothing.
type Selector struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty" mapstructure:"suffix"`
}

// ByName selects exactly one node.
func ByName(name string) Selector { return Selector{Name: name} }

// BySuffix selects every node whose ID ends in suffix.
func BySuffix(suffix string) Selector { return Selector{Suffix: suffix} }

// Match reports whether id is selected.
func (s Selector) Match(id string) bool {
	switch {
	case s.Name != "":
		return id == s.Name
	case s.Suffix != "":
		return strings.HasSuffix(id, s.Suffix)
	default:
		return false
	}
}

// IsZero reports whether the selector is unset.
func (s Selector) IsZero() bool { return s.Name == "" && s.Suffix == "" }

func (s Selector) String() string {
	switch {
	case s.Name != "":
		return fmt.Sprintf("name=%s", s.Name)
	case s.Suffix != "":
		return fmt.Sprintf("suffix=%s", s.Suffix)
	default:
		return "none"
	}
}

// ParseSelector reads the textual form produced by String: "name=ID" or
// "suffix=S". A bare value is taken as a suffix.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	key, value, found := strings.Cut(s, "=")
	if !found {
		key, value = "suffix", s
	}
	if value == "" {
		return Selector{}, fmt.Errorf("empty selector %q", s)
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		return ByName(value), nil
	case "suffix":
		return BySuffix(value), nil
	default:
		return Selector{}, fmt.Errorf("unknown selector kind %q in %q", key, s)
	}
}
