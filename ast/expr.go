// Package ast holds the syntax tree handed over by the front end to the
// lowering pass. Values are immutable once built: nothing downstream of the
// parser modifies them.
package ast

import (
	"strconv"
	"strings"
)

// Expression is an unevaluated expression as written in the source. String
// renders its textual form without evaluating anything: identifiers are kept
// as raw names and operators fall back to a debug notation.
type Expression interface {
	String() string
	expression()
}

type (
	StringLiteral string
	Int           int64
	Float         float64
	Identifier    string
	// StructDefault refers to the default value of a named struct.
	StructDefault string
)

func (StringLiteral) expression() {}
func (Int) expression()           {}
func (Float) expression()         {}
func (Identifier) expression()    {}
func (StructDefault) expression() {}

func (s StringLiteral) String() string { return string(s) }
func (i Int) String() string           { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string         { return strconv.FormatFloat(float64(f), 'f', -1, 64) }
func (id Identifier) String() string   { return string(id) }
func (sd StructDefault) String() string {
	return "default(" + string(sd) + ")"
}

// InterpPart is a piece of an interpolated string: either literal text or an
// embedded expression (Expr != nil).
type InterpPart struct {
	Text string
	Expr Expression
}

type InterpolatedString []InterpPart

func (InterpolatedString) expression() {}

func (is InterpolatedString) String() string {
	var b strings.Builder
	for _, p := range is {
		if p.Expr != nil {
			b.WriteString(p.Expr.String())
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Mod
	Equals
)

var binaryOpNames = [...]string{"Add", "Subtract", "Multiply", "Divide", "Mod", "Equals"}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
	return binaryOpNames[op]
}

type Binary struct {
	Left  Expression
	Op    BinaryOp
	Right Expression
}

func (*Binary) expression() {}

func (b *Binary) String() string {
	return b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}

type UnaryOp int

const (
	Negate UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "Negate"
	case Not:
		return "Not"
	}
	return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
}

type Unary struct {
	Op      UnaryOp
	Operand Expression
}

func (*Unary) expression() {}

func (u *Unary) String() string {
	return u.Op.String() + " " + u.Operand.String()
}
