// Package hlir lowers a parsed document into an intermediate representation
// and resolves the style cascade over its content elements.
package hlir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"inkc/ast"
	"inkc/style"
)

// NoElement is used where an element index is optional.
const NoElement = -1

// DocumentFunc is the name of the synthetic function holding the document
// flow.
const DocumentFunc = "__document"

type Type int

const (
	TypeNone Type = iota
	TypeInt
	TypeFloat
	TypeString
	// TypeContent marks functions producing document content.
	TypeContent
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeContent:
		return "content"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Literal is a typed constant value.
type Literal struct {
	Type  Type
	Int   int64
	Float float64
	Str   string
}

func (l Literal) String() string {
	switch l.Type {
	case TypeInt:
		return strconv.FormatInt(l.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(l.Float, 'f', -1, 64)
	case TypeString:
		return strconv.Quote(l.Str)
	}
	return l.Type.String()
}

// Value returns literal as a plain Go value.
func (l Literal) Value() any {
	switch l.Type {
	case TypeInt:
		return l.Int
	case TypeFloat:
		return l.Float
	case TypeString:
		return l.Str
	}
	return nil
}

func literalFrom(expr ast.Expression) (Literal, error) {
	switch e := expr.(type) {
	case ast.StringLiteral:
		return Literal{Type: TypeString, Str: string(e)}, nil
	case ast.Int:
		return Literal{Type: TypeInt, Int: int64(e)}, nil
	case ast.Float:
		return Literal{Type: TypeFloat, Float: float64(e)}, nil
	case nil:
		return Literal{}, fmt.Errorf("missing value: %w", ErrUnsupported)
	}
	return Literal{}, fmt.Errorf("expression %T (%s) is not a literal: %w", expr, expr, ErrUnsupported)
}

type Global struct {
	ID   GlobalID
	Name string
	Type Type
	Init Literal
}

type Func struct {
	ID         FuncID
	Name       string
	Args       []Type
	ReturnType Type
	Body       *FuncBlock
}

// FuncBlock is the instruction sequence of a function. Returned is the index
// of the element produced by return or NoElement.
type FuncBlock struct {
	Ops      []Op
	Returned int
}

func newFuncBlock() *FuncBlock {
	return &FuncBlock{Returned: NoElement}
}

// ElementMetadata describes an element at the same index of Module.Elements.
type ElementMetadata struct {
	ID          string
	Classes     []string
	ElementType string
	Parent      int
	Attributes  style.NodeID
}

// Module is the result of lowering a single document.
type Module struct {
	ID         uuid.UUID
	Globals    map[GlobalID]*Global
	Functions  map[FuncID]*Func
	Rules      []ast.StyleRule
	Elements   []ast.DocElement
	Metadata   []ElementMetadata
	Attributes *style.Tree
	Document   FuncID
}

func newModule(id uuid.UUID) *Module {
	return &Module{
		ID:         id,
		Globals:    make(map[GlobalID]*Global),
		Functions:  make(map[FuncID]*Func),
		Attributes: style.NewTree(),
	}
}

// DocumentBody returns instruction block of the document flow.
func (m *Module) DocumentBody() *FuncBlock {
	if f, ok := m.Functions[m.Document]; ok && f.Name == DocumentFunc {
		return f.Body
	}
	return nil
}

// FindFunc looks a function up by name.
func (m *Module) FindFunc(name string) (*Func, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindGlobal looks a global up by name.
func (m *Module) FindGlobal(name string) (*Global, bool) {
	for _, g := range m.Globals {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// ElementByID returns index of the first element with markup id.
func (m *Module) ElementByID(id string) (int, bool) {
	for i, md := range m.Metadata {
		if md.ID == id {
			return i, true
		}
	}
	return NoElement, false
}

// Computed returns computed style of the element at index.
func (m *Module) Computed(index int) (style.Attributes, bool) {
	if index < 0 || index >= len(m.Metadata) {
		return style.Attributes{}, false
	}
	n, ok := m.Attributes.Find(m.Metadata[index].Attributes)
	if !ok {
		return style.Attributes{}, false
	}
	return n.Computed, true
}

// Op is a single IR operation.
type Op interface {
	fmt.Stringer
	op()
}

// Const binds a value to a literal.
type Const struct {
	Result ValueID
	Name   string
	Value  Literal
}

// Var binds a value to a function parameter.
type Var struct {
	Result ValueID
	Name   string
	Type   Type
}

// Load reads a global into a value.
type Load struct {
	Result ValueID
	Global GlobalID
}

type Call struct {
	Func FuncID
	Args []ValueID
}

// Return hands element at index back to the caller.
type Return struct {
	Element int
}

// DocElementEmit places element at index into the document flow.
type DocElementEmit struct {
	Index      int
	Attributes style.NodeID
}

func (*Const) op()          {}
func (*Var) op()            {}
func (*Load) op()           {}
func (*Call) op()           {}
func (*Return) op()         {}
func (*DocElementEmit) op() {}

func (o *Const) String() string {
	return fmt.Sprintf("%%%d = const %s %s (%s)", o.Result, o.Value.Type, o.Value, o.Name)
}

func (o *Var) String() string {
	return fmt.Sprintf("%%%d = param %s %s", o.Result, o.Type, o.Name)
}

func (o *Load) String() string {
	return fmt.Sprintf("%%%d = load @%d", o.Result, o.Global)
}

func (o *Call) String() string {
	args := make([]string, 0, len(o.Args))
	for _, a := range o.Args {
		args = append(args, "%"+strconv.FormatUint(uint64(a), 10))
	}
	return fmt.Sprintf("call func#%d(%s)", o.Func, strings.Join(args, ", "))
}

func (o *Return) String() string {
	return fmt.Sprintf("return element[%d]", o.Element)
}

func (o *DocElementEmit) String() string {
	return fmt.Sprintf("emit element[%d] attrs=%d", o.Index, o.Attributes)
}
