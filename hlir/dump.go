package hlir

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"inkc/ast"
	"inkc/utils/debug"
)

// Dump renders the module as indented text.
func (m *Module) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "module %s", m.ID)

	tw.Line(1, "globals: %d", len(m.Globals))
	for _, id := range slices.Sorted(maps.Keys(m.Globals)) {
		g := m.Globals[id]
		tw.Line(2, "@%d %s %s = %s", g.ID, g.Name, g.Type, g.Init)
	}

	tw.Line(1, "functions: %d", len(m.Functions))
	for _, id := range slices.Sorted(maps.Keys(m.Functions)) {
		f := m.Functions[id]
		args := make([]string, 0, len(f.Args))
		for _, a := range f.Args {
			args = append(args, a.String())
		}
		tw.Line(2, "func#%d %s(%s) -> %s", f.ID, f.Name, strings.Join(args, ", "), f.ReturnType)
		for _, op := range f.Body.Ops {
			tw.Line(3, "%s", op)
		}
	}

	tw.Line(1, "rules: %d", len(m.Rules))
	for _, r := range m.Rules {
		tw.Line(2, "%s [%d]", r.SelectorText(), r.Specificity)
		for _, d := range r.Declarations {
			tw.Line(3, "%s = %s", d.Key, d.Value)
		}
	}

	tw.Line(1, "elements: %d", len(m.Elements))
	for i, el := range m.Elements {
		md := m.Metadata[i]
		depth := 2 + m.depth(i)
		tw.Line(depth, "[%d] %s id=%q classes=%v node=%d", i, md.ElementType, md.ID, md.Classes, md.Attributes)
		if text, ok := Content(el); ok {
			tw.TextBlock(depth+1, "content", text)
		}
		if computed, ok := m.Computed(i); ok && !computed.IsDefault() {
			tw.Line(depth+1, "computed: %s", computed)
		}
	}

	tw.Block(1, m.Attributes.Dump())
	return tw.String()
}

func (m *Module) depth(index int) int {
	d := 0
	for p := m.Metadata[index].Parent; p != NoElement; p = m.Metadata[p].Parent {
		d++
	}
	return d
}

// Content returns textual payload of leaf elements.
func Content(el ast.DocElement) (string, bool) {
	switch e := el.(type) {
	case *ast.Text:
		return e.Content, true
	case *ast.Code:
		return e.Content, true
	case *ast.Link:
		return cmp.Or(e.Content, e.Href), true
	case *ast.Image:
		return e.Src, true
	}
	return "", false
}
