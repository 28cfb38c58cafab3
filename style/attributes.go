// Package style models element style state: typed attribute sets and the
// tree that keeps inline and computed styles of every document element.
package style

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"inkc/ast"
)

// Known property names. Everything else lives in the free-form map.
const (
	PropID        = "id"
	PropClass     = "class"
	PropMargin    = "margin"
	PropPadding   = "padding"
	PropAlign     = "align"
	PropHidden    = "hidden"
	PropCondition = "condition"
	PropPageBreak = "page_break"
	PropRole      = "role"

	// markup only, expanded into the free-form map
	propStyle = "style"
)

// inherited lists properties copied from parent to child by ApplyInherited.
var inherited = []string{
	"font-family",
	"font-size",
	"font-weight",
	"color",
	"line-height",
	PropAlign,
}

// Attributes is a set of style properties. Zero value is the default style:
// nothing set, hidden is false and page break is none.
type Attributes struct {
	ID        string
	Class     []string
	Margin    *float64
	Padding   *float64
	Align     Align
	Hidden    bool
	Condition string
	PageBreak PageBreak
	Role      string

	Style map[string]string
}

// NewFromMarkup builds inline attributes from the raw markup of an element.
// Values which could not be parsed keep their defaults, attributes which are
// not style related are ignored.
func NewFromMarkup(attrs ast.Attributes) Attributes {
	var a Attributes
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		expr := attrs[key]
		if expr == nil {
			continue
		}
		value := expr.String()
		if key == propStyle {
			for name, v := range ParseInline(value) {
				a.setFree(name, v)
			}
			continue
		}
		if isKnown(key) {
			a.Set(key, value)
		}
	}
	return a
}

// ParseInline splits "key: value; key: value" into pairs. Empty segments and
// segments without a colon are dropped.
func ParseInline(s string) map[string]string {
	res := make(map[string]string)
	for decl := range strings.SplitSeq(s, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" {
			continue
		}
		res[key] = value
	}
	return res
}

func canonical(property string) string {
	if property == "page-break" {
		return PropPageBreak
	}
	return property
}

func isKnown(property string) bool {
	switch canonical(property) {
	case PropID, PropClass, PropMargin, PropPadding, PropAlign,
		PropHidden, PropCondition, PropPageBreak, PropRole:
		return true
	}
	return false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Get returns textual value of the property. Free-form values take
// precedence over typed ones. Hidden and page break always have a value.
func (a *Attributes) Get(property string) (string, bool) {
	if v, ok := a.Style[property]; ok {
		return v, true
	}
	switch canonical(property) {
	case PropID:
		return a.ID, a.ID != ""
	case PropClass:
		return strings.Join(a.Class, " "), len(a.Class) > 0
	case PropMargin:
		if a.Margin != nil {
			return formatFloat(*a.Margin), true
		}
	case PropPadding:
		if a.Padding != nil {
			return formatFloat(*a.Padding), true
		}
	case PropAlign:
		if a.Align != AlignUnset {
			return a.Align.String(), true
		}
	case PropHidden:
		return strconv.FormatBool(a.Hidden), true
	case PropCondition:
		return a.Condition, a.Condition != ""
	case PropPageBreak:
		return a.PageBreak.String(), true
	case PropRole:
		return a.Role, a.Role != ""
	}
	return "", false
}

// Set assigns the property. Known properties are parsed into their typed
// form and left untouched when value does not parse, anything else goes to
// the free-form map as is.
func (a *Attributes) Set(property, value string) {
	switch canonical(property) {
	case PropID:
		a.ID = value
	case PropClass:
		a.Class = strings.Fields(value)
	case PropMargin:
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			a.Margin = &f
		}
	case PropPadding:
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			a.Padding = &f
		}
	case PropAlign:
		if al, err := ParseAlign(strings.TrimSpace(value)); err == nil {
			a.Align = al
		}
	case PropHidden:
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			a.Hidden = b
		}
	case PropCondition:
		a.Condition = value
	case PropPageBreak:
		if pb, err := ParsePageBreak(strings.TrimSpace(value)); err == nil {
			a.PageBreak = pb
		}
	case PropRole:
		a.Role = value
	default:
		a.setFree(property, value)
	}
}

func (a *Attributes) setFree(property, value string) {
	if a.Style == nil {
		a.Style = make(map[string]string)
	}
	a.Style[property] = value
}

// Merge fills properties not yet set in a from other.
func (a *Attributes) Merge(other *Attributes) {
	if a.ID == "" {
		a.ID = other.ID
	}
	if len(a.Class) == 0 && len(other.Class) > 0 {
		a.Class = slices.Clone(other.Class)
	}
	if a.Margin == nil && other.Margin != nil {
		m := *other.Margin
		a.Margin = &m
	}
	if a.Padding == nil && other.Padding != nil {
		p := *other.Padding
		a.Padding = &p
	}
	if a.Align == AlignUnset {
		a.Align = other.Align
	}
	a.Hidden = a.Hidden || other.Hidden
	if a.Condition == "" {
		a.Condition = other.Condition
	}
	if a.PageBreak == PageBreakNone {
		a.PageBreak = other.PageBreak
	}
	if a.Role == "" {
		a.Role = other.Role
	}
	for k, v := range other.Style {
		if _, ok := a.Style[k]; !ok {
			a.setFree(k, v)
		}
	}
}

// ApplyInherited copies inheritable properties of parent which are not set
// in a.
func (a *Attributes) ApplyInherited(parent *Attributes) {
	for _, prop := range inherited {
		if _, ok := a.Get(prop); ok {
			continue
		}
		if v, ok := parent.Get(prop); ok {
			a.Set(prop, v)
		}
	}
}

// Clone returns a deep copy.
func (a Attributes) Clone() Attributes {
	c := a
	c.Class = slices.Clone(a.Class)
	if a.Margin != nil {
		m := *a.Margin
		c.Margin = &m
	}
	if a.Padding != nil {
		p := *a.Padding
		c.Padding = &p
	}
	c.Style = maps.Clone(a.Style)
	return c
}

// IsDefault reports whether nothing is set.
func (a *Attributes) IsDefault() bool {
	return a.ID == "" && len(a.Class) == 0 && a.Margin == nil && a.Padding == nil &&
		a.Align == AlignUnset && !a.Hidden && a.Condition == "" &&
		a.PageBreak == PageBreakNone && a.Role == "" && len(a.Style) == 0
}

// Properties returns every property which differs from its default, in the
// canonical textual form.
func (a *Attributes) Properties() map[string]string {
	res := make(map[string]string, len(a.Style)+4)
	for _, prop := range []string{PropID, PropClass, PropMargin, PropPadding, PropAlign, PropCondition, PropRole} {
		if v, ok := a.Get(prop); ok {
			res[prop] = v
		}
	}
	if a.Hidden {
		res[PropHidden] = "true"
	}
	if a.PageBreak != PageBreakNone {
		res[PropPageBreak] = a.PageBreak.String()
	}
	maps.Copy(res, a.Style)
	return res
}

func (a Attributes) String() string {
	props := a.Properties()
	parts := make([]string, 0, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		parts = append(parts, k+"="+props[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
