// Package compile drives .ink documents through parsing, lowering and style
// resolution and writes the results.
package compile

import (
	"fmt"

	"go.uber.org/zap"

	"inkc/ast"
	"inkc/css"
	"inkc/hlir"
	"inkc/syntax"
)

// Options controls compilation of a single document.
type Options struct {
	// Resolve runs style cascade after lowering.
	Resolve bool
	// Rules come from external stylesheet and are appended after the rules
	// of the document style block.
	Rules []ast.StyleRule
}

// Compile parses, lowers and (optionally) resolves styles of a single
// document. The first error stops compilation.
func Compile(name string, data []byte, opts Options, log *zap.Logger) (*hlir.Module, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tree, err := syntax.NewParser(log).Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse source: %w", err)
	}

	if len(opts.Rules) > 0 {
		if tree.Style == nil {
			tree.Style = &ast.StyleBlock{}
		}
		tree.Style.Rules = append(tree.Style.Rules, opts.Rules...)
	}

	m, err := hlir.Lower(tree, log)
	if err != nil {
		return nil, fmt.Errorf("unable to lower source: %w", err)
	}

	if opts.Resolve {
		if err := hlir.ResolveStyles(m, log); err != nil {
			return nil, fmt.Errorf("unable to resolve styles: %w", err)
		}
	}
	return m, nil
}

// LoadRules parses external stylesheet. Problems found in the stylesheet are
// reported as warnings and never stop compilation.
func LoadRules(data []byte, source string, log *zap.Logger) []ast.StyleRule {
	if len(data) == 0 {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	sheet := css.NewParser(log).Parse(data, source)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet problem", zap.String("source", source), zap.String("warning", w))
	}
	for _, imp := range sheet.Imports {
		log.Warn("Stylesheet imports are not followed", zap.String("source", source), zap.String("import", imp))
	}
	log.Debug("Stylesheet loaded", zap.String("source", source), zap.Int("rules", len(sheet.Rules)))
	return sheet.Rules
}
