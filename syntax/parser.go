// Package syntax reads .ink sources into the syntax tree.
package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"go.uber.org/zap"

	"inkc/ast"
)

// ErrSyntax is wrapped by every error caused by malformed source.
var ErrSyntax = errors.New("syntax error")

// Parser turns .ink sources into ast.Ast. Control flow statements are not
// part of the accepted language.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("syntax")}
}

// Parse parses source. Name is only used in error positions.
func (p *Parser) Parse(name string, data []byte) (*ast.Ast, error) {
	file, err := fileParser.ParseBytes(name, data)
	if err != nil {
		return nil, wrapError(err)
	}

	tree := &ast.Ast{}
	for _, b := range file.Blocks {
		switch {
		case b.Template != nil:
			if tree.Template == nil {
				tree.Template = &ast.TemplateBlock{}
			}
			stmts, err := convertStmts(b.Template.Stmts)
			if err != nil {
				return nil, err
			}
			tree.Template.Statements = append(tree.Template.Statements, stmts...)
		case b.Document != nil:
			if tree.Document == nil {
				tree.Document = &ast.DocumentBlock{}
			}
			elems, err := convertElements(b.Document.Elements)
			if err != nil {
				return nil, err
			}
			tree.Document.Elements = append(tree.Document.Elements, elems...)
		case b.Style != nil:
			if tree.Style == nil {
				tree.Style = &ast.StyleBlock{}
			}
			rules, err := convertRules(b.Style.Rules)
			if err != nil {
				return nil, err
			}
			tree.Style.Rules = append(tree.Style.Rules, rules...)
		}
	}

	p.log.Debug("Source parsed", zap.String("name", name), zap.Int("blocks", len(file.Blocks)))
	return tree, nil
}

// ParseExpression parses a standalone expression, string interpolation uses
// it for embedded expressions.
func ParseExpression(src string) (ast.Expression, error) {
	node, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, wrapError(err)
	}
	return convertExpr(node)
}

func wrapError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return fmt.Errorf("%s: %w: %s", perr.Position(), ErrSyntax, perr.Message())
	}
	return fmt.Errorf("%w: %w", ErrSyntax, err)
}

func convertStmts(nodes []*stmtNode) ([]ast.Statement, error) {
	res := make([]ast.Statement, 0, len(nodes))
	for _, n := range nodes {
		st, err := convertStmt(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Pos, err)
		}
		res = append(res, st)
	}
	return res, nil
}

func convertStmt(n *stmtNode) (ast.Statement, error) {
	switch {
	case n.Func != nil:
		body, err := convertStmts(n.Func.Body)
		if err != nil {
			return nil, err
		}
		decl := &ast.FunctionDecl{Name: n.Func.Name, Body: body}
		for _, p := range n.Func.Params {
			decl.Params = append(decl.Params, ast.FuncParam{Name: p.Name, Type: p.Type})
		}
		return decl, nil
	case n.Let != nil:
		v, err := convertExpr(n.Let.Value)
		if err != nil {
			return nil, err
		}
		return &ast.VarAssign{Name: n.Let.Name, Value: v}, nil
	case n.Const != nil:
		v, err := convertExpr(n.Const.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ConstAssign{Name: n.Const.Name, Value: v}, nil
	case n.Return != nil:
		el, err := convertElement(n.Return)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Element: el}, nil
	case n.Default != nil:
		v, err := convertExpr(n.Default.Value)
		if err != nil {
			return nil, err
		}
		return &ast.DefaultSet{Key: n.Default.Name, Value: v}, nil
	}
	return nil, fmt.Errorf("empty statement: %w", ErrSyntax)
}

func convertElements(nodes []*elementNode) ([]ast.DocElement, error) {
	res := make([]ast.DocElement, 0, len(nodes))
	for _, n := range nodes {
		el, err := convertElement(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Pos, err)
		}
		res = append(res, el)
	}
	return res, nil
}

func convertElement(n *elementNode) (ast.DocElement, error) {
	switch {
	case n.Text != nil:
		attrs, err := convertAttrs(n.Text.Attrs)
		if err != nil {
			return nil, err
		}
		return &ast.Text{Content: strings.Join(n.Text.Body, " "), Attributes: attrs}, nil
	case n.Code != nil:
		attrs, err := convertAttrs(n.Code.Attrs)
		if err != nil {
			return nil, err
		}
		return &ast.Code{
			Language:   attrText(attrs, "language"),
			Content:    strings.Join(n.Code.Body, "\n"),
			Attributes: attrs,
		}, nil
	case n.Image != nil:
		attrs, err := convertAttrs(n.Image.Attrs)
		if err != nil {
			return nil, err
		}
		src := strings.Join(n.Image.Body, "")
		if src == "" {
			src = attrText(attrs, "src")
		}
		return &ast.Image{Src: src, Attributes: attrs}, nil
	case n.Link != nil:
		attrs, err := convertAttrs(n.Link.Attrs)
		if err != nil {
			return nil, err
		}
		return &ast.Link{
			Href:       attrText(attrs, "href"),
			Content:    strings.Join(n.Link.Body, " "),
			Attributes: attrs,
		}, nil
	case n.Section != nil:
		attrs, err := convertAttrs(n.Section.Attrs)
		if err != nil {
			return nil, err
		}
		children, err := convertElements(n.Section.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.Section{Elements: children, Attributes: attrs}, nil
	case n.List != nil:
		attrs, err := convertAttrs(n.List.Attrs)
		if err != nil {
			return nil, err
		}
		list := &ast.List{Attributes: attrs}
		for _, item := range n.List.Items {
			itemAttrs, err := convertAttrs(item.Attrs)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, &ast.Text{Content: strings.Join(item.Body, " "), Attributes: itemAttrs})
		}
		return list, nil
	case n.Table != nil:
		attrs, err := convertAttrs(n.Table.Attrs)
		if err != nil {
			return nil, err
		}
		table := &ast.Table{Attributes: attrs}
		for _, row := range n.Table.Rows {
			cells, err := convertElements(row.Cells)
			if err != nil {
				return nil, err
			}
			table.Rows = append(table.Rows, cells)
		}
		return table, nil
	case n.Call != nil:
		call := &ast.Call{Name: n.Call.Name}
		for _, a := range n.Call.Args {
			call.Args = append(call.Args, convertArg(a))
		}
		return call, nil
	}
	return nil, fmt.Errorf("empty element: %w", ErrSyntax)
}

func convertArg(a *argNode) ast.ArgType {
	switch {
	case a.String != nil:
		return ast.ArgType{Name: *a.String, Type: "string"}
	case a.Number != nil:
		if strings.Contains(*a.Number, ".") {
			return ast.ArgType{Name: *a.Number, Type: "float"}
		}
		return ast.ArgType{Name: *a.Number, Type: "int"}
	case a.Var != nil:
		return ast.ArgType{Name: *a.Var, Type: "var"}
	}
	return ast.ArgType{}
}

func convertAttrs(n *attrListNode) (ast.Attributes, error) {
	if n == nil || len(n.Items) == 0 {
		return nil, nil
	}
	attrs := make(ast.Attributes, len(n.Items))
	for _, item := range n.Items {
		v, err := convertExpr(item.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", item.Key, err)
		}
		attrs[item.Key] = v
	}
	return attrs, nil
}

func attrText(attrs ast.Attributes, key string) string {
	if v, ok := attrs[key]; ok && v != nil {
		return v.String()
	}
	return ""
}

func convertRules(nodes []*ruleNode) ([]ast.StyleRule, error) {
	res := make([]ast.StyleRule, 0, len(nodes))
	for _, n := range nodes {
		selectors := make([]ast.Selector, 0, len(n.Selectors))
		for _, s := range n.Selectors {
			switch {
			case s.ID != nil:
				selectors = append(selectors, ast.Selector{Kind: ast.SelectorID, Name: *s.ID})
			case s.Class != nil:
				selectors = append(selectors, ast.Selector{Kind: ast.SelectorClass, Name: *s.Class})
			case s.Type != nil:
				selectors = append(selectors, ast.Selector{Kind: ast.SelectorType, Name: *s.Type})
			}
		}
		decls := make([]ast.KeyValue, 0, len(n.Decls))
		for _, d := range n.Decls {
			v, err := convertExpr(d.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: declaration %q: %w", n.Pos, d.Key, err)
			}
			decls = append(decls, ast.KeyValue{Key: d.Key, Value: v})
		}
		res = append(res, ast.NewStyleRule(selectors, decls))
	}
	return res, nil
}

var binaryOps = map[string]ast.BinaryOp{
	"+":  ast.Add,
	"-":  ast.Subtract,
	"*":  ast.Multiply,
	"/":  ast.Divide,
	"%":  ast.Mod,
	"==": ast.Equals,
}

func convertExpr(n *exprNode) (ast.Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("missing expression: %w", ErrSyntax)
	}
	left, err := convertUnary(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Right == nil {
		return left, nil
	}
	right, err := convertExpr(n.Right)
	if err != nil {
		return nil, err
	}
	op, ok := binaryOps[n.Op]
	if !ok {
		return nil, fmt.Errorf("unknown operator %q: %w", n.Op, ErrSyntax)
	}
	return &ast.Binary{Left: left, Op: op, Right: right}, nil
}

func convertUnary(n *unaryNode) (ast.Expression, error) {
	switch {
	case n == nil:
		return nil, fmt.Errorf("missing operand: %w", ErrSyntax)
	case n.Not != nil:
		operand, err := convertUnary(n.Not)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Not, Operand: operand}, nil
	case n.Neg != nil:
		operand, err := convertOperand(n.Neg)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.Negate, Operand: operand}, nil
	}
	return convertOperand(n.Operand)
}

func convertOperand(n *operandNode) (ast.Expression, error) {
	switch {
	case n == nil:
		return nil, fmt.Errorf("missing operand: %w", ErrSyntax)
	case n.Number != nil:
		if strings.Contains(*n.Number, ".") {
			f, err := strconv.ParseFloat(*n.Number, 64)
			if err != nil {
				return nil, fmt.Errorf("bad float %q: %w", *n.Number, ErrSyntax)
			}
			return ast.Float(f), nil
		}
		i, err := strconv.ParseInt(*n.Number, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int %q: %w", *n.Number, ErrSyntax)
		}
		return ast.Int(i), nil
	case n.String != nil:
		return Interpolate(*n.String)
	case n.Default != nil:
		return ast.StructDefault(*n.Default), nil
	case n.Ident != nil:
		return ast.Identifier(*n.Ident), nil
	case n.Group != nil:
		return convertExpr(n.Group)
	}
	return nil, fmt.Errorf("empty operand: %w", ErrSyntax)
}
