package ast

// Ast is a parsed document. Any of the three blocks may be absent.
type Ast struct {
	Template *TemplateBlock
	Document *DocumentBlock
	Style    *StyleBlock
}

type TemplateBlock struct {
	Statements []Statement
}

type DocumentBlock struct {
	Elements []DocElement
}

type StyleBlock struct {
	Rules []StyleRule
}

// Statement is a template level or function body statement.
type Statement interface {
	statement()
}

// DefaultSet assigns a document default, e.g. "font_size = 12".
type DefaultSet struct {
	Key   string
	Value Expression
}

type VarAssign struct {
	Name  string
	Value Expression
}

type ConstAssign struct {
	Name  string
	Value Expression
}

type If struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
}

type While struct {
	Condition Expression
	Body      []Statement
}

type For struct {
	Var      string
	Iterable Expression
	Body     []Statement
}

// Return hands a content element back to the caller of a template function.
type Return struct {
	Element DocElement
}

// FuncParam is a declared parameter, Type is the source spelling ("Int",
// "Float", "String").
type FuncParam struct {
	Name string
	Type string
}

type FunctionDecl struct {
	Name   string
	Params []FuncParam
	Body   []Statement
}

func (*DefaultSet) statement()   {}
func (*VarAssign) statement()    {}
func (*ConstAssign) statement()  {}
func (*If) statement()           {}
func (*While) statement()        {}
func (*For) statement()          {}
func (*Return) statement()       {}
func (*FunctionDecl) statement() {}
