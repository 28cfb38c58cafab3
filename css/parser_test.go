package css_test

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"inkc/ast"
	"inkc/css"
)

func TestParser_ParseTheme(t *testing.T) {
	data, err := os.ReadFile("testdata/theme.css")
	if err != nil {
		t.Fatalf("failed to read theme.css: %v", err)
	}

	sheet := css.NewParser(zap.NewNop()).Parse(data, "theme.css")

	if len(sheet.Rules) != 3 {
		for _, r := range sheet.Rules {
			t.Logf("rule %s", r.SelectorText())
		}
		t.Fatalf("expected 3 rules, got %d", len(sheet.Rules))
	}
	if len(sheet.Imports) != 1 || sheet.Imports[0] != "fonts.css" {
		t.Errorf("imports = %v", sheet.Imports)
	}

	text := sheet.Rules[0]
	if text.SelectorText() != "text" || text.Specificity != 1 {
		t.Errorf("rule 0 = %s [%d]", text.SelectorText(), text.Specificity)
	}
	if len(text.Declarations) != 2 || text.Declarations[0].Key != "font-family" || text.Declarations[1].Key != "line-height" {
		t.Errorf("declarations out of order: %+v", text.Declarations)
	}
	if v := text.Declarations[1].Value; v != ast.Float(1.4) {
		t.Errorf("line-height = %#v", v)
	}

	group := sheet.Rules[1]
	if group.SelectorText() != "#header, .title" || group.Specificity != 110 {
		t.Errorf("rule 1 = %s [%d]", group.SelectorText(), group.Specificity)
	}
	if v := group.Declarations[0].Value; v != ast.Int(24) {
		t.Errorf("font-size = %#v", v)
	}
	if v := group.Declarations[1].Value.String(); v != "#336699" {
		t.Errorf("color = %q", v)
	}

	section := sheet.Rules[2]
	if len(section.Declarations) != 2 || section.Declarations[1].Value.String() != "before" {
		t.Errorf("section = %+v", section.Declarations)
	}

	var pseudo, media bool
	for _, w := range sheet.Warnings {
		pseudo = pseudo || strings.Contains(w, ".note::before")
		media = media || strings.Contains(w, "@media")
	}
	if !pseudo || !media {
		t.Errorf("warnings = %v", sheet.Warnings)
	}
}

func TestParser_Selectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		rules int
	}{
		{"element", `text { color: red }`, "text", 1},
		{"class", `.wide { color: red }`, ".wide", 1},
		{"hyphenated class", `.side-note { color: red }`, ".side-note", 1},
		{"id", `#main { color: red }`, "#main", 1},
		{"descendant skipped", `section text { color: red }`, "", 0},
		{"compound skipped", `text.note { color: red }`, "", 0},
		{"child skipped", `section > text { color: red }`, "", 0},
		{"partially supported group", `a > b, .ok { color: red }`, ".ok", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := css.NewParser(nil).Parse([]byte(tt.input))
			if len(sheet.Rules) != tt.rules {
				t.Fatalf("got %d rules, want %d (warnings %v)", len(sheet.Rules), tt.rules, sheet.Warnings)
			}
			if tt.rules > 0 && sheet.Rules[0].SelectorText() != tt.want {
				t.Errorf("selector = %q, want %q", sheet.Rules[0].SelectorText(), tt.want)
			}
			if tt.rules == 0 && len(sheet.Warnings) == 0 {
				t.Error("expected a warning for skipped selector")
			}
		})
	}
}

func TestParser_Values(t *testing.T) {
	sheet := css.NewParser(nil).Parse([]byte(`
		.x {
			margin: 4;
			padding: 2.5;
			content: 'quoted';
			border: 1px solid black;
			color: red !important;
		}`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules", len(sheet.Rules))
	}

	want := []struct {
		key   string
		value string
	}{
		{"margin", "4"},
		{"padding", "2.5"},
		{"content", "quoted"},
		{"border", "1px solid black"},
		{"color", "red"},
	}
	decls := sheet.Rules[0].Declarations
	if len(decls) != len(want) {
		t.Fatalf("declarations = %+v", decls)
	}
	for i, w := range want {
		if decls[i].Key != w.key || decls[i].Value.String() != w.value {
			t.Errorf("declaration %d = %s: %q, want %s: %q", i, decls[i].Key, decls[i].Value, w.key, w.value)
		}
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "!important") {
		t.Errorf("warnings = %v", sheet.Warnings)
	}
}

func TestParser_Empty(t *testing.T) {
	sheet := css.NewParser(nil).Parse(nil)
	if len(sheet.Rules) != 0 || len(sheet.Warnings) != 0 {
		t.Errorf("sheet = %+v", sheet)
	}
}
