package hlir

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"inkc/ast"
	"inkc/style"
)

// ResolveStyles computes style of every element of the module: inherited
// properties of the parent first, then matching rules from the least to the
// most specific, then inline attributes of the element. Elements are visited
// in index order, which puts parents before their children. Running it again
// on an unchanged module gives the same result.
func ResolveStyles(m *Module, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cascade")

	rules := slices.Clone(m.Rules)
	slices.SortStableFunc(rules, func(a, b ast.StyleRule) int {
		return cmp.Compare(a.Specificity, b.Specificity)
	})

	for i := range m.Metadata {
		md := &m.Metadata[i]
		node, ok := m.Attributes.Find(md.Attributes)
		if !ok {
			return fmt.Errorf("element %d: %w", i, style.ErrNodeNotFound)
		}

		var computed style.Attributes

		if md.Parent != NoElement {
			parent, ok := m.Attributes.Find(m.Metadata[md.Parent].Attributes)
			if !ok {
				return fmt.Errorf("parent of element %d: %w", i, style.ErrNodeNotFound)
			}
			computed.ApplyInherited(&parent.Computed)
		}

		matched := 0
		for _, r := range rules {
			if !Matches(&r, md) {
				continue
			}
			matched++
			for _, decl := range r.Declarations {
				if decl.Value == nil {
					continue
				}
				computed.Set(decl.Key, decl.Value.String())
			}
		}

		applyInline(&computed, &node.Inline)
		if err := m.Attributes.SetComputed(md.Attributes, computed); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}

		log.Debug("Element resolved",
			zap.Int("index", i),
			zap.String("type", md.ElementType),
			zap.Int("rules", matched),
			zap.Stringer("computed", computed))
	}
	return nil
}

// Matches reports whether any selector of the rule selects the element.
func Matches(r *ast.StyleRule, md *ElementMetadata) bool {
	for _, s := range r.Selectors {
		switch s.Kind {
		case ast.SelectorID:
			if md.ID != "" && md.ID == s.Name {
				return true
			}
		case ast.SelectorClass:
			if slices.Contains(md.Classes, s.Name) {
				return true
			}
		case ast.SelectorType:
			if md.ElementType == s.Name {
				return true
			}
		}
	}
	return false
}

func applyInline(dst, inline *style.Attributes) {
	for _, k := range slices.Sorted(maps.Keys(inline.Style)) {
		dst.Set(k, inline.Style[k])
	}
	if inline.ID != "" {
		dst.ID = inline.ID
	}
	if len(inline.Class) > 0 {
		dst.Class = slices.Clone(inline.Class)
	}
	if inline.Margin != nil {
		m := *inline.Margin
		dst.Margin = &m
	}
	if inline.Padding != nil {
		p := *inline.Padding
		dst.Padding = &p
	}
	if inline.Align != style.AlignUnset {
		dst.Align = inline.Align
	}
	if inline.Hidden {
		dst.Hidden = true
	}
	if inline.Condition != "" {
		dst.Condition = inline.Condition
	}
	if inline.PageBreak != style.PageBreakNone {
		dst.PageBreak = inline.PageBreak
	}
	if inline.Role != "" {
		dst.Role = inline.Role
	}
}
