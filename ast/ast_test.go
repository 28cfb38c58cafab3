package ast

import "testing"

func TestExpressionString(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{"string", StringLiteral("blue"), "blue"},
		{"int", Int(24), "24"},
		{"negative int", Int(-3), "-3"},
		{"float", Float(1.5), "1.5"},
		{"whole float", Float(15), "15"},
		{"identifier", Identifier("base_size"), "base_size"},
		{"struct default", StructDefault("Page"), "default(Page)"},
		{"interpolated", InterpolatedString{
			{Text: "Hello, "},
			{Expr: Identifier("name")},
			{Text: "!"},
		}, "Hello, name!"},
		{"binary", &Binary{Left: Int(1), Op: Add, Right: Identifier("x")}, "1 Add x"},
		{"nested binary", &Binary{
			Left:  &Binary{Left: Int(2), Op: Multiply, Right: Int(3)},
			Op:    Equals,
			Right: Int(6),
		}, "2 Multiply 3 Equals 6"},
		{"unary", &Unary{Op: Negate, Operand: Float(2.5)}, "Negate 2.5"},
		{"not", &Unary{Op: Not, Operand: Identifier("hidden")}, "Not hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewStyleRuleSpecificity(t *testing.T) {
	tests := []struct {
		name      string
		selectors []Selector
		want      int
	}{
		{"none", nil, 0},
		{"id", []Selector{{SelectorID, "header"}}, 100},
		{"class", []Selector{{SelectorClass, "note"}}, 10},
		{"type", []Selector{{SelectorType, "text"}}, 1},
		{"list", []Selector{
			{SelectorID, "a"},
			{SelectorClass, "b"},
			{SelectorClass, "c"},
			{SelectorType, "section"},
		}, 121},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStyleRule(tt.selectors, nil)
			if r.Specificity != tt.want {
				t.Errorf("Specificity = %d, want %d", r.Specificity, tt.want)
			}
		})
	}
}

func TestSelectorText(t *testing.T) {
	r := NewStyleRule([]Selector{
		{SelectorID, "top"},
		{SelectorClass, "wide"},
		{SelectorType, "list"},
	}, nil)
	if got := r.SelectorText(); got != "#top, .wide, list" {
		t.Errorf("SelectorText() = %q", got)
	}
}

func TestChildren(t *testing.T) {
	a := &Text{Content: "a"}
	b := &Text{Content: "b"}
	c := &Text{Content: "c"}

	tbl := &Table{Rows: [][]DocElement{{a, b}, {c}}}
	got := Children(tbl)
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("table cells out of order: %v", got)
	}

	if Children(a) != nil {
		t.Error("text must be a leaf")
	}
	if (&Call{Name: "f"}).Attrs() != nil {
		t.Error("call carries no attributes")
	}
}
