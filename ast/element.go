package ast

// Element type tags. They double as type selectors in style rules.
const (
	KindText    = "text"
	KindImage   = "image"
	KindTable   = "table"
	KindList    = "list"
	KindCode    = "code"
	KindLink    = "link"
	KindSection = "section"
	KindCall    = "call"
)

// Attributes is the raw markup attribute map of an element.
type Attributes map[string]Expression

// DocElement is a content element of the document block.
type DocElement interface {
	Kind() string
	Attrs() Attributes
}

type Text struct {
	Content    string
	Attributes Attributes
}

type Image struct {
	Src        string
	Attributes Attributes
}

type Table struct {
	Rows       [][]DocElement
	Attributes Attributes
}

type List struct {
	Items      []DocElement
	Attributes Attributes
}

type Code struct {
	Language   string
	Content    string
	Attributes Attributes
}

type Link struct {
	Href       string
	Content    string
	Attributes Attributes
}

type Section struct {
	Elements   []DocElement
	Attributes Attributes
}

// ArgType is a call argument as the parser saw it: Type is one of "var",
// "int", "float" or "string" and Name holds the identifier or the literal
// text.
type ArgType struct {
	Name string
	Type string
}

// Call invokes a template function from the document block.
type Call struct {
	Name string
	Args []ArgType
}

func (*Text) Kind() string    { return KindText }
func (*Image) Kind() string   { return KindImage }
func (*Table) Kind() string   { return KindTable }
func (*List) Kind() string    { return KindList }
func (*Code) Kind() string    { return KindCode }
func (*Link) Kind() string    { return KindLink }
func (*Section) Kind() string { return KindSection }
func (*Call) Kind() string    { return KindCall }

func (e *Text) Attrs() Attributes    { return e.Attributes }
func (e *Image) Attrs() Attributes   { return e.Attributes }
func (e *Table) Attrs() Attributes   { return e.Attributes }
func (e *List) Attrs() Attributes    { return e.Attributes }
func (e *Code) Attrs() Attributes    { return e.Attributes }
func (e *Link) Attrs() Attributes    { return e.Attributes }
func (e *Section) Attrs() Attributes { return e.Attributes }
func (*Call) Attrs() Attributes      { return nil }

// Children returns nested content of container elements in document order
// (table cells row by row). Leaves return nil.
func Children(el DocElement) []DocElement {
	switch e := el.(type) {
	case *Section:
		return e.Elements
	case *List:
		return e.Items
	case *Table:
		var cells []DocElement
		for _, row := range e.Rows {
			cells = append(cells, row...)
		}
		return cells
	}
	return nil
}
