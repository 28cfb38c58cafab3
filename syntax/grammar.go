package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// inkLexer tokenizes .ink sources. Keywords are plain identifiers matched by
// the grammar.
var inkLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `==|[-+*/%=!#.,:;(){}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parserOptions = []participle.Option{
	participle.Lexer(inkLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
}

var (
	fileParser = participle.MustBuild[fileNode](parserOptions...)
	exprParser = participle.MustBuild[exprNode](parserOptions...)
)

//nolint:govet // participle grammar tags are not standard struct tags
type fileNode struct {
	Blocks []*blockNode `@@*`
}

//nolint:govet
type blockNode struct {
	Template *templateNode `  @@`
	Document *documentNode `| @@`
	Style    *styleNode    `| @@`
}

//nolint:govet
type templateNode struct {
	Keyword string      `@"template" "{"`
	Stmts   []*stmtNode `@@* "}"`
}

//nolint:govet
type documentNode struct {
	Keyword  string         `@"document" "{"`
	Elements []*elementNode `@@* "}"`
}

//nolint:govet
type styleNode struct {
	Keyword string      `@"style" "{"`
	Rules   []*ruleNode `@@* "}"`
}

//nolint:govet
type stmtNode struct {
	Pos lexer.Position

	Func    *funcNode    `  @@`
	Let     *assignNode  `| "let" @@`
	Const   *assignNode  `| "const" @@`
	Return  *elementNode `| "return" @@`
	Default *assignNode  `| @@`
}

//nolint:govet
type assignNode struct {
	Name  string    `@Ident "="`
	Value *exprNode `@@ ";"?`
}

//nolint:govet
type funcNode struct {
	Name   string       `"func" @Ident`
	Params []*paramNode `"(" ( @@ ( "," @@ )* )? ")"`
	Body   []*stmtNode  `"{" @@* "}"`
}

//nolint:govet
type paramNode struct {
	Name string `@Ident ":"`
	Type string `@Ident`
}

//nolint:govet
type elementNode struct {
	Pos lexer.Position

	Text    *leafNode      `  "text" @@`
	Code    *leafNode      `| "code" @@`
	Image   *leafNode      `| "image" @@`
	Link    *leafNode      `| "link" @@`
	Section *containerNode `| "section" @@`
	List    *listNode      `| "list" @@`
	Table   *tableNode     `| "table" @@`
	Call    *callNode      `| @@`
}

//nolint:govet
type attrListNode struct {
	Items []*attrNode `"(" ( @@ ( ","? @@ )* )? ")"`
}

//nolint:govet
type attrNode struct {
	Key   string    `@Ident ( @"-" @Ident )* "="`
	Value *exprNode `@@`
}

//nolint:govet
type leafNode struct {
	Attrs *attrListNode `@@?`
	Body  []string      `"{" @String* "}"`
}

//nolint:govet
type containerNode struct {
	Attrs    *attrListNode  `@@?`
	Elements []*elementNode `"{" @@* "}"`
}

//nolint:govet
type listNode struct {
	Attrs *attrListNode `@@?`
	Items []*leafNode   `"{" ( "item" @@ )* "}"`
}

//nolint:govet
type tableNode struct {
	Attrs *attrListNode `@@?`
	Rows  []*rowNode    `"{" @@* "}"`
}

//nolint:govet
type rowNode struct {
	Cells []*elementNode `"row" "{" @@* "}"`
}

//nolint:govet
type callNode struct {
	Name string     `@Ident`
	Args []*argNode `"(" ( @@ ( "," @@ )* )? ")"`
}

//nolint:govet
type argNode struct {
	String *string `  @String`
	Number *string `| @( "-"? ( Float | Int ) )`
	Var    *string `| @Ident`
}

//nolint:govet
type ruleNode struct {
	Pos lexer.Position

	Selectors []*selectorNode `@@ ( "," @@ )*`
	Decls     []*declNode     `"{" @@* "}"`
}

//nolint:govet
type selectorNode struct {
	ID    *string `  "#" @Ident ( @"-" @Ident )*`
	Class *string `| "." @Ident ( @"-" @Ident )*`
	Type  *string `| @Ident`
}

//nolint:govet
type declNode struct {
	Key   string    `@Ident ( @"-" @Ident )* "="`
	Value *exprNode `@@ ";"?`
}

// Expressions have a single precedence level and associate to the right.
//
//nolint:govet
type exprNode struct {
	Left  *unaryNode `@@`
	Op    string     `( @( "==" | "+" | "-" | "*" | "/" | "%" )`
	Right *exprNode  `  @@ )?`
}

//nolint:govet
type unaryNode struct {
	Not     *unaryNode   `  "!" @@`
	Operand *operandNode `| @@`
	Neg     *operandNode `| "-" @@`
}

//nolint:govet
type operandNode struct {
	Number  *string   `  @( "-"? ( Float | Int ) )`
	String  *string   `| @String`
	Default *string   `| "default" "(" @Ident ")"`
	Ident   *string   `| @Ident`
	Group   *exprNode `| "(" @@ ")"`
}
