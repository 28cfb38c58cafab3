package syntax_test

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"inkc/ast"
	"inkc/syntax"
)

func parse(t *testing.T, src string) *ast.Ast {
	t.Helper()
	tree, err := syntax.NewParser(zaptest.NewLogger(t)).Parse("test.ink", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func TestParseSampleDocument(t *testing.T) {
	data, err := os.ReadFile("testdata/report.ink")
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	tree, err := syntax.NewParser(zap.NewNop()).Parse("report.ink", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if tree.Template == nil || len(tree.Template.Statements) != 5 {
		t.Fatalf("template = %+v", tree.Template)
	}
	stmts := tree.Template.Statements
	if s, ok := stmts[0].(*ast.DefaultSet); !ok || s.Key != "title" || s.Value != ast.StringLiteral("Quarterly report") {
		t.Errorf("stmt 0 = %#v", stmts[0])
	}
	if s, ok := stmts[1].(*ast.DefaultSet); !ok || s.Value != ast.Int(12) {
		t.Errorf("stmt 1 = %#v", stmts[1])
	}
	if s, ok := stmts[2].(*ast.ConstAssign); !ok || s.Name != "AUTHOR" {
		t.Errorf("stmt 2 = %#v", stmts[2])
	}
	if s, ok := stmts[3].(*ast.VarAssign); !ok || s.Value != ast.Float(1.5) {
		t.Errorf("stmt 3 = %#v", stmts[3])
	}
	fn, ok := stmts[4].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("stmt 4 = %#v", stmts[4])
	}
	if fn.Name != "signature" || !reflect.DeepEqual(fn.Params, []ast.FuncParam{{Name: "name", Type: "String"}, {Name: "year", Type: "Int"}}) {
		t.Errorf("function = %+v", fn)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("function body = %v", fn.Body)
	}
	if ret, ok := fn.Body[1].(*ast.Return); !ok || ret.Element.Kind() != ast.KindText {
		t.Errorf("return = %#v", fn.Body[1])
	}

	if tree.Document == nil {
		t.Fatal("document missing")
	}
	var kinds []string
	for _, el := range tree.Document.Elements {
		kinds = append(kinds, el.Kind())
	}
	wantKinds := []string{"text", "section", "table", "image", "link", "code", "call", "call"}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Errorf("kinds = %v, want %v", kinds, wantKinds)
	}

	els := tree.Document.Elements
	if h := els[0].(*ast.Text); h.Content != "Quarterly report" || h.Attributes["class"] != ast.StringLiteral("title large") {
		t.Errorf("header = %+v", h)
	}
	sec := els[1].(*ast.Section)
	if len(sec.Elements) != 2 {
		t.Fatalf("section = %+v", sec)
	}
	list := sec.Elements[1].(*ast.List)
	if len(list.Items) != 2 || list.Items[1].Attrs()["hidden"] != ast.StringLiteral("true") {
		t.Errorf("list = %+v", list)
	}
	tbl := els[2].(*ast.Table)
	if len(tbl.Rows) != 2 || len(tbl.Rows[1]) != 2 || tbl.Rows[1][1].(*ast.Text).Content != "12.5" {
		t.Errorf("table = %+v", tbl)
	}
	if img := els[3].(*ast.Image); img.Src != "chart.png" {
		t.Errorf("image = %+v", img)
	}
	if l := els[4].(*ast.Link); l.Href != "https://example.com" || l.Content != "Details" {
		t.Errorf("link = %+v", l)
	}
	if c := els[5].(*ast.Code); c.Language != "go" || c.Content != "fmt.Println(1)" {
		t.Errorf("code = %+v", c)
	}
	call := els[6].(*ast.Call)
	if call.Name != "signature" || !reflect.DeepEqual(call.Args, []ast.ArgType{{Name: "AUTHOR", Type: "var"}, {Name: "2024", Type: "int"}}) {
		t.Errorf("call = %+v", call)
	}
	call = els[7].(*ast.Call)
	if !reflect.DeepEqual(call.Args, []ast.ArgType{{Name: "Board", Type: "string"}, {Name: "-1", Type: "int"}}) {
		t.Errorf("call = %+v", call)
	}

	if tree.Style == nil || len(tree.Style.Rules) != 4 {
		t.Fatalf("style = %+v", tree.Style)
	}
	rules := tree.Style.Rules
	if rules[0].Specificity != 100 || len(rules[0].Declarations) != 2 {
		t.Errorf("rule 0 = %+v", rules[0])
	}
	if rules[1].Specificity != 11 || rules[1].SelectorText() != ".title, text" {
		t.Errorf("rule 1 = %+v", rules[1])
	}
	if d := rules[1].Declarations[1]; d.Key != "line-height" || d.Value != ast.Float(1.2) {
		t.Errorf("decl = %+v", d)
	}
	if d := rules[2].Declarations; len(d) != 2 || d[0].Key != "page-break" || d[1].Value != ast.Int(20) {
		t.Errorf("decls = %+v", d)
	}
	if v := rules[3].Declarations[0].Value; v.String() != "by AUTHOR" {
		t.Errorf("interpolated = %q", v)
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`1 + 2`, "1 Add 2"},
		{`a * b - c`, "a Multiply b Subtract c"},
		{`-3`, "-3"},
		{`-x`, "Negate x"},
		{`!visible`, "Not visible"},
		{`x == 2.5`, "x Equals 2.5"},
		{`(1 % 2)`, "1 Mod 2"},
		{`default(Page)`, "default(Page)"},
		{`"plain"`, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := syntax.ParseExpression(tt.src)
			if err != nil {
				t.Fatalf("ParseExpression() error = %v", err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseEmptyBlocks(t *testing.T) {
	tree := parse(t, "template {} document {} style {}")
	if tree.Template == nil || tree.Document == nil || tree.Style == nil {
		t.Fatalf("tree = %+v", tree)
	}
	if len(tree.Template.Statements) != 0 || len(tree.Document.Elements) != 0 || len(tree.Style.Rules) != 0 {
		t.Errorf("tree = %+v", tree)
	}

	tree = parse(t, `document { text { "only" } }`)
	if tree.Template != nil || tree.Style != nil {
		t.Errorf("absent blocks must stay nil: %+v", tree)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown block", `header { }`},
		{"unclosed block", `document { text { "x" }`},
		{"missing value", `template { x = }`},
		{"bad attribute", `document { text (id) { "x" } }`},
		{"bad selector", `style { { color = "red" } }`},
		{"broken interpolation", `style { .a { content = "{oops" } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := syntax.NewParser(nil).Parse("bad.ink", []byte(tt.src))
			if !errors.Is(err, syntax.ErrSyntax) {
				t.Errorf("Parse() error = %v, want ErrSyntax", err)
			}
		})
	}
}
