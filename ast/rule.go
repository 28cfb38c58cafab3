package ast

import "strings"

type SelectorKind int

const (
	SelectorID SelectorKind = iota
	SelectorClass
	SelectorType
)

type Selector struct {
	Kind SelectorKind
	Name string
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectorID:
		return "#" + s.Name
	case SelectorClass:
		return "." + s.Name
	}
	return s.Name
}

// Weight is the selector's contribution to rule specificity.
func (s Selector) Weight() int {
	switch s.Kind {
	case SelectorID:
		return 100
	case SelectorClass:
		return 10
	case SelectorType:
		return 1
	}
	return 0
}

type KeyValue struct {
	Key   string
	Value Expression
}

// StyleRule is a selector list with its declarations. Specificity is fixed
// when the rule is built.
type StyleRule struct {
	Selectors    []Selector
	Declarations []KeyValue
	Specificity  int
}

func NewStyleRule(selectors []Selector, declarations []KeyValue) StyleRule {
	spec := 0
	for _, s := range selectors {
		spec += s.Weight()
	}
	return StyleRule{
		Selectors:    selectors,
		Declarations: declarations,
		Specificity:  spec,
	}
}

func (r StyleRule) SelectorText() string {
	parts := make([]string, 0, len(r.Selectors))
	for _, s := range r.Selectors {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}
