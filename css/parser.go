// Package css loads external stylesheets into style rules. Only simple
// selectors (#id, .class and element type) and selector lists are supported,
// everything else is reported as a warning and skipped.
package css

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"inkc/ast"
)

// Stylesheet is the result of parsing. Rules keep source order.
type Stylesheet struct {
	Rules    []ast.StyleRule
	Imports  []string
	Warnings []string
}

// Parser parses CSS stylesheets into style rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var pending []ast.Selector
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported @-rule: "+string(data))
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.AtRuleGrammar:
			if atRule := string(data); atRule == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Imports = append(sheet.Imports, url)
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.QualifiedRuleGrammar:
			// leading members of a selector group
			pending = append(pending, p.parseSelectors(data, parser.Values(), sheet)...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values(), sheet)...)
			pending = nil
			decls := p.parseDeclarations(parser, sheet)
			if len(selectors) == 0 {
				continue
			}
			sheet.Rules = append(sheet.Rules, ast.NewStyleRule(selectors, decls))
		}
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// parseSelectors splits selector group and keeps simple selectors only.
func (p *Parser) parseSelectors(data []byte, values []css.Token, sheet *Stylesheet) []ast.Selector {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []ast.Selector
	for s := range strings.SplitSeq(strings.Trim(sb.String(), "{ \t\n"), ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sel, ok := parseSimpleSelector(s)
		if !ok {
			sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+s)
			p.log.Debug("Skipping selector", zap.String("selector", s))
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors
}

// parseSimpleSelector accepts "#name", ".name" and "name".
func parseSimpleSelector(s string) (ast.Selector, bool) {
	kind := ast.SelectorType
	name := s
	switch s[0] {
	case '#':
		kind, name = ast.SelectorID, s[1:]
	case '.':
		kind, name = ast.SelectorClass, s[1:]
	}
	if name == "" || strings.ContainsAny(name, " \t\n.#:[]>+~*()") {
		return ast.Selector{}, false
	}
	return ast.Selector{Kind: kind, Name: name}, true
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
// Declaration order is preserved.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet) []ast.KeyValue {
	var decls []ast.KeyValue

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			value, important := p.parsePropertyValue(values)
			if important {
				sheet.Warnings = append(sheet.Warnings, "!important ignored: "+name)
			}
			decls = append(decls, ast.KeyValue{Key: name, Value: value})

		case css.CustomPropertyGrammar:
			continue
		}
	}
}

// parsePropertyValue converts CSS tokens to an expression. Numbers become
// numeric literals, everything else is kept as text.
func (p *Parser) parsePropertyValue(tokens []css.Token) (ast.Expression, bool) {
	var (
		rawParts  []string
		important bool
		meaning   []css.Token
	)
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.TokenType == css.DelimToken && string(t.Data) == "!" &&
			i+1 < len(tokens) && strings.EqualFold(string(tokens[i+1].Data), "important") {
			important = true
			i++
			continue
		}
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
			meaning = append(meaning, t)
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	if len(meaning) == 1 {
		t := meaning[0]
		switch t.TokenType {
		case css.NumberToken:
			if i, err := strconv.ParseInt(string(t.Data), 10, 64); err == nil {
				return ast.Int(i), important
			}
			if f, err := strconv.ParseFloat(string(t.Data), 64); err == nil {
				return ast.Float(f), important
			}
		case css.StringToken:
			return ast.StringLiteral(unquote(string(t.Data))), important
		}
	}
	return ast.StringLiteral(raw), important
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
