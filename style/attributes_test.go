package style

import (
	"reflect"
	"strings"
	"testing"

	"inkc/ast"
)

func TestNewFromMarkup(t *testing.T) {
	attrs := ast.Attributes{
		"id":         ast.StringLiteral("intro"),
		"class":      ast.StringLiteral("large  bold"),
		"margin":     ast.Int(15),
		"padding":    ast.Float(10),
		"align":      ast.StringLiteral("Center"),
		"hidden":     ast.StringLiteral("true"),
		"condition":  ast.Identifier("show_intro"),
		"page_break": ast.StringLiteral("before"),
		"role":       ast.StringLiteral("heading"),
		"style":      ast.StringLiteral(" font-size: 10 ; color:red;;broken"),
		"href":       ast.StringLiteral("ignored"),
	}

	a := NewFromMarkup(attrs)

	if a.ID != "intro" {
		t.Errorf("ID = %q", a.ID)
	}
	if !reflect.DeepEqual(a.Class, []string{"large", "bold"}) {
		t.Errorf("Class = %v", a.Class)
	}
	if a.Margin == nil || *a.Margin != 15.0 {
		t.Errorf("Margin = %v", a.Margin)
	}
	if a.Padding == nil || *a.Padding != 10.0 {
		t.Errorf("Padding = %v", a.Padding)
	}
	if a.Align != AlignCenter {
		t.Errorf("Align = %v", a.Align)
	}
	if !a.Hidden {
		t.Error("Hidden not set")
	}
	if a.Condition != "show_intro" {
		t.Errorf("Condition = %q", a.Condition)
	}
	if a.PageBreak != PageBreakBefore {
		t.Errorf("PageBreak = %v", a.PageBreak)
	}
	if a.Role != "heading" {
		t.Errorf("Role = %q", a.Role)
	}
	want := map[string]string{"font-size": "10", "color": "red"}
	if !reflect.DeepEqual(a.Style, want) {
		t.Errorf("Style = %v, want %v", a.Style, want)
	}
}

func TestNewFromMarkupSilentDegrade(t *testing.T) {
	a := NewFromMarkup(ast.Attributes{
		"margin":     ast.StringLiteral("wide"),
		"align":      ast.StringLiteral("middle"),
		"hidden":     ast.StringLiteral("maybe"),
		"page_break": ast.Int(3),
	})
	if !a.IsDefault() {
		t.Errorf("expected defaults, got %s", a)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	tests := []struct {
		property string
		value    string
		want     string
	}{
		{"id", "header", "header"},
		{"class", "a b", "a b"},
		{"margin", "20", "20"},
		{"margin", "2.50", "2.5"},
		{"padding", "7.25", "7.25"},
		{"align", "right", "right"},
		{"hidden", "true", "true"},
		{"hidden", "false", "false"},
		{"condition", "has_title", "has_title"},
		{"page_break", "avoid", "avoid"},
		{"page-break", "after", "after"},
		{"role", "note", "note"},
		{"font-size", "24", "24"},
		{"color", "blue", "blue"},
	}

	for _, tt := range tests {
		t.Run(tt.property+"="+tt.value, func(t *testing.T) {
			var a Attributes
			a.Set(tt.property, tt.value)
			got, ok := a.Get(tt.property)
			if !ok || got != tt.want {
				t.Errorf("Get(%q) = %q, %v; want %q", tt.property, got, ok, tt.want)
			}
		})
	}
}

func TestSetIgnoresBadValues(t *testing.T) {
	var a Attributes
	a.Set("margin", "12")
	a.Set("margin", "twelve")
	if v, _ := a.Get("margin"); v != "12" {
		t.Errorf("margin = %q, previous value must be kept", v)
	}
	a.Set("align", "sideways")
	if _, ok := a.Get("align"); ok {
		t.Error("align must stay unset")
	}
}

func TestGetDefaults(t *testing.T) {
	var a Attributes
	for _, prop := range []string{"id", "class", "margin", "padding", "align", "condition", "role", "color"} {
		if v, ok := a.Get(prop); ok {
			t.Errorf("Get(%q) = %q on default attributes", prop, v)
		}
	}
	if v, ok := a.Get("hidden"); !ok || v != "false" {
		t.Errorf("hidden = %q, %v", v, ok)
	}
	if v, ok := a.Get("page_break"); !ok || v != "none" {
		t.Errorf("page_break = %q, %v", v, ok)
	}
}

func TestGetPrefersFreeForm(t *testing.T) {
	a := Attributes{Style: map[string]string{"align": "center-ish"}, Align: AlignLeft}
	if v, _ := a.Get("align"); v != "center-ish" {
		t.Errorf("align = %q", v)
	}
}

func TestMerge(t *testing.T) {
	m1, m2 := 5.0, 9.0
	a := Attributes{
		ID:     "own",
		Margin: &m1,
		Style:  map[string]string{"color": "red"},
	}
	other := Attributes{
		ID:        "other",
		Class:     []string{"x"},
		Margin:    &m2,
		Padding:   &m2,
		Align:     AlignJustify,
		Hidden:    true,
		PageBreak: PageBreakAfter,
		Role:      "aside",
		Style:     map[string]string{"color": "blue", "font-size": "12"},
	}

	a.Merge(&other)

	if a.ID != "own" || *a.Margin != 5.0 {
		t.Errorf("merge overwrote set values: %s", a)
	}
	if !reflect.DeepEqual(a.Class, []string{"x"}) || *a.Padding != 9.0 || a.Align != AlignJustify || a.Role != "aside" {
		t.Errorf("merge did not fill unset values: %s", a)
	}
	if !a.Hidden {
		t.Error("hidden must OR")
	}
	if a.PageBreak != PageBreakAfter {
		t.Errorf("page break = %v", a.PageBreak)
	}
	if a.Style["color"] != "red" || a.Style["font-size"] != "12" {
		t.Errorf("style = %v", a.Style)
	}

	// page break of self wins once set
	b := Attributes{PageBreak: PageBreakBefore}
	b.Merge(&other)
	if b.PageBreak != PageBreakBefore {
		t.Errorf("page break = %v", b.PageBreak)
	}
}

func TestApplyInherited(t *testing.T) {
	m := 20.0
	parent := Attributes{
		Margin: &m,
		Align:  AlignCenter,
		Role:   "chapter",
		Style: map[string]string{
			"color":       "blue",
			"font-size":   "14",
			"font-family": "serif",
			"font-style":  "italic",
			"border":      "1px",
		},
	}
	child := Attributes{Style: map[string]string{"font-size": "10"}}

	child.ApplyInherited(&parent)

	want := map[string]string{"color": "blue", "font-size": "10", "font-family": "serif"}
	if !reflect.DeepEqual(child.Style, want) {
		t.Errorf("Style = %v, want %v", child.Style, want)
	}
	if child.Align != AlignCenter {
		t.Errorf("align not inherited: %v", child.Align)
	}
	if child.Margin != nil || child.Role != "" {
		t.Errorf("non inheritable properties copied: %s", child)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := 1.0
	a := Attributes{Class: []string{"a"}, Margin: &m, Style: map[string]string{"k": "v"}}
	c := a.Clone()
	c.Class[0] = "b"
	*c.Margin = 2
	c.Style["k"] = "w"
	if a.Class[0] != "a" || *a.Margin != 1 || a.Style["k"] != "v" {
		t.Errorf("clone shares state: %s", a)
	}
}

func TestAttributesString(t *testing.T) {
	a := Attributes{ID: "x", Hidden: true, Style: map[string]string{"color": "red"}}
	got := a.String()
	for _, part := range []string{"id=x", "hidden=true", "color=red"} {
		if !strings.Contains(got, part) {
			t.Errorf("%q does not contain %q", got, part)
		}
	}
	if (&Attributes{}).String() != "{}" {
		t.Errorf("default renders as %q", (&Attributes{}).String())
	}
}
