package compile

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"inkc/common"
	"inkc/hlir"
)

type (
	outGlobal struct {
		Name  string `yaml:"name"`
		Type  string `yaml:"type"`
		Value any    `yaml:"value"`
	}

	outFunc struct {
		Name    string   `yaml:"name"`
		Args    []string `yaml:"args,omitempty,flow"`
		Returns string   `yaml:"returns"`
		Ops     []string `yaml:"ops,omitempty"`
	}

	outDecl struct {
		Key   string `yaml:"key"`
		Value string `yaml:"value"`
	}

	outRule struct {
		Selectors    string    `yaml:"selectors"`
		Specificity  int       `yaml:"specificity"`
		Declarations []outDecl `yaml:"declarations,omitempty"`
	}

	outElement struct {
		Index    int               `yaml:"index"`
		Type     string            `yaml:"type"`
		ID       string            `yaml:"id,omitempty"`
		Classes  []string          `yaml:"classes,omitempty,flow"`
		Parent   int               `yaml:"parent"`
		Content  string            `yaml:"content,omitempty"`
		Computed map[string]string `yaml:"computed,omitempty"`
	}

	outDocument struct {
		ID        string       `yaml:"id"`
		Source    string       `yaml:"source"`
		Globals   []outGlobal  `yaml:"globals,omitempty"`
		Functions []outFunc    `yaml:"functions,omitempty"`
		Rules     []outRule    `yaml:"rules,omitempty"`
		Elements  []outElement `yaml:"elements"`
	}
)

func newOutDocument(m *hlir.Module, source string) *outDocument {
	doc := &outDocument{ID: m.ID.String(), Source: source}

	for _, id := range slices.Sorted(maps.Keys(m.Globals)) {
		g := m.Globals[id]
		doc.Globals = append(doc.Globals, outGlobal{Name: g.Name, Type: g.Type.String(), Value: g.Init.Value()})
	}

	for _, id := range slices.Sorted(maps.Keys(m.Functions)) {
		f := m.Functions[id]
		of := outFunc{Name: f.Name, Returns: f.ReturnType.String()}
		for _, a := range f.Args {
			of.Args = append(of.Args, a.String())
		}
		for _, op := range f.Body.Ops {
			of.Ops = append(of.Ops, op.String())
		}
		doc.Functions = append(doc.Functions, of)
	}

	for _, r := range m.Rules {
		or := outRule{Selectors: r.SelectorText(), Specificity: r.Specificity}
		for _, d := range r.Declarations {
			if d.Value == nil {
				continue
			}
			or.Declarations = append(or.Declarations, outDecl{Key: d.Key, Value: d.Value.String()})
		}
		doc.Rules = append(doc.Rules, or)
	}

	doc.Elements = make([]outElement, 0, len(m.Elements))
	for i, el := range m.Elements {
		md := m.Metadata[i]
		oe := outElement{
			Index:   i,
			Type:    md.ElementType,
			ID:      md.ID,
			Classes: md.Classes,
			Parent:  md.Parent,
		}
		oe.Content, _ = hlir.Content(el)
		if computed, ok := m.Computed(i); ok && !computed.IsDefault() {
			oe.Computed = computed.Properties()
		}
		doc.Elements = append(doc.Elements, oe)
	}
	return doc
}

// Render serializes compiled module in requested format.
func Render(m *hlir.Module, source string, format common.OutputFmt) ([]byte, error) {
	switch format {
	case common.OutputFmtYaml:
		buf := new(bytes.Buffer)
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(2)
		if err := enc.Encode(newOutDocument(m, source)); err != nil {
			return nil, fmt.Errorf("unable to encode module: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("unable to encode module: %w", err)
		}
		return buf.Bytes(), nil
	case common.OutputFmtTree:
		return []byte(m.Dump()), nil
	}
	return nil, fmt.Errorf("unsupported output format %s: %w", format, common.ErrInvalidOutputFmt)
}
