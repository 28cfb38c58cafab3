package hlir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkc/ast"
	"inkc/style"
)

// Prefix of globals created by default-set statements.
const defaultPrefix = "__"

// lowerer holds state of a single lowering pass.
type lowerer struct {
	log    *zap.Logger
	mod    *Module
	scopes ScopeStack
	ids    idAllocator
}

// Lower converts parsed document into a module. The first error aborts
// lowering and no module is returned.
//
// Every call assigns a fresh time ordered module ID, so lowering the same
// document twice yields modules that differ only in ID. The ID is used for
// output naming and debug reports, nothing in the lowered content depends on
// it.
func Lower(tree *ast.Ast, log *zap.Logger) (*Module, error) {
	if tree == nil {
		return nil, fmt.Errorf("nothing to lower: %w", ErrUnsupported)
	}
	if log == nil {
		log = zap.NewNop()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate module id: %w", err)
	}

	l := &lowerer{
		log: log.Named("lower"),
		mod: newModule(id),
	}
	if tree.Style != nil {
		l.mod.Rules = slices.Clone(tree.Style.Rules)
	}

	l.scopes.Push()
	defer l.scopes.Pop()

	if err := l.lowerTemplate(tree.Template); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	if err := l.lowerDocument(tree.Document); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	l.log.Debug("Module lowered",
		zap.Stringer("id", l.mod.ID),
		zap.Int("globals", len(l.mod.Globals)),
		zap.Int("functions", len(l.mod.Functions)),
		zap.Int("elements", len(l.mod.Elements)),
		zap.Int("rules", len(l.mod.Rules)))
	return l.mod, nil
}

func (l *lowerer) lowerTemplate(tmpl *ast.TemplateBlock) error {
	if tmpl == nil {
		return nil
	}
	for _, stmt := range tmpl.Statements {
		var err error
		switch s := stmt.(type) {
		case *ast.DefaultSet:
			err = l.lowerGlobal(defaultPrefix+s.Key, s.Value)
		case *ast.ConstAssign:
			err = l.lowerGlobal(s.Name, s.Value)
		case *ast.VarAssign:
			err = l.lowerGlobal(s.Name, s.Value)
		case *ast.FunctionDecl:
			err = l.lowerFunction(s)
		default:
			err = fmt.Errorf("statement %T in template: %w", stmt, ErrUnsupported)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) lowerGlobal(name string, value ast.Expression) error {
	lit, err := literalFrom(value)
	if err != nil {
		return fmt.Errorf("global %q: %w", name, err)
	}
	id := l.ids.nextGlobal()
	l.mod.Globals[id] = &Global{ID: id, Name: name, Type: lit.Type, Init: lit}
	if err := l.scopes.Add(name, GlobalIdent(id)); err != nil {
		return err
	}
	l.log.Debug("Global", zap.String("name", name), zap.Uint32("id", uint32(id)), zap.Stringer("type", lit.Type))
	return nil
}

func paramType(name string) (Type, error) {
	switch name {
	case "Int":
		return TypeInt, nil
	case "Float":
		return TypeFloat, nil
	case "String":
		return TypeString, nil
	}
	return TypeNone, fmt.Errorf("parameter type %q: %w", name, ErrUnsupported)
}

// lowerFunction lowers body in its own scope and binds function name in the
// enclosing one afterwards, so a function sees only what was declared before
// it.
func (l *lowerer) lowerFunction(decl *ast.FunctionDecl) error {
	id := l.ids.nextFunc()
	fn := &Func{ID: id, Name: decl.Name, Body: newFuncBlock()}

	l.scopes.Push()
	err := l.lowerFunctionBody(fn, decl)
	l.scopes.Pop()
	if err != nil {
		return fmt.Errorf("function %q: %w", decl.Name, err)
	}

	if fn.Body.Returned != NoElement {
		fn.ReturnType = TypeContent
	}
	if err := l.scopes.Add(decl.Name, FuncIdent(id)); err != nil {
		return err
	}
	l.mod.Functions[id] = fn
	l.log.Debug("Function", zap.String("name", decl.Name), zap.Uint32("id", uint32(id)), zap.Int("ops", len(fn.Body.Ops)))
	return nil
}

func (l *lowerer) lowerFunctionBody(fn *Func, decl *ast.FunctionDecl) error {
	for _, p := range decl.Params {
		ty, err := paramType(p.Type)
		if err != nil {
			return err
		}
		vid := l.ids.nextValue()
		fn.Args = append(fn.Args, ty)
		fn.Body.Ops = append(fn.Body.Ops, &Var{Result: vid, Name: p.Name, Type: ty})
		if err := l.scopes.Add(p.Name, ValueIdent(vid)); err != nil {
			return err
		}
	}

	for _, stmt := range decl.Body {
		switch s := stmt.(type) {
		case *ast.ConstAssign:
			lit, err := literalFrom(s.Value)
			if err != nil {
				return fmt.Errorf("constant %q: %w", s.Name, err)
			}
			vid := l.ids.nextValue()
			fn.Body.Ops = append(fn.Body.Ops, &Const{Result: vid, Name: s.Name, Value: lit})
			if err := l.scopes.Add(s.Name, ValueIdent(vid)); err != nil {
				return err
			}
		case *ast.Return:
			if s.Element == nil {
				return fmt.Errorf("return without element: %w", ErrUnsupported)
			}
			index, err := l.recordTree(s.Element, NoElement)
			if err != nil {
				return err
			}
			fn.Body.Ops = append(fn.Body.Ops, &Return{Element: index})
			fn.Body.Returned = index
		default:
			return fmt.Errorf("statement %T in function body: %w", stmt, ErrUnsupported)
		}
	}
	return nil
}

func (l *lowerer) lowerDocument(doc *ast.DocumentBlock) error {
	body := newFuncBlock()

	if doc != nil {
		l.scopes.Push()
		for _, el := range doc.Elements {
			if err := l.lowerElement(body, el, NoElement); err != nil {
				l.scopes.Pop()
				return err
			}
		}
		l.scopes.Pop()
	}

	id := l.ids.nextFunc()
	l.mod.Functions[id] = &Func{ID: id, Name: DocumentFunc, ReturnType: TypeContent, Body: body}
	l.mod.Document = id
	return nil
}

func (l *lowerer) lowerElement(body *FuncBlock, el ast.DocElement, parent int) error {
	if call, ok := el.(*ast.Call); ok {
		return l.lowerCall(body, call)
	}

	index, node, err := l.record(el, parent)
	if err != nil {
		return err
	}
	body.Ops = append(body.Ops, &DocElementEmit{Index: index, Attributes: node})

	for _, child := range ast.Children(el) {
		if err := l.lowerElement(body, child, index); err != nil {
			return err
		}
	}
	return nil
}

// record appends element together with its metadata and attribute node.
func (l *lowerer) record(el ast.DocElement, parent int) (int, style.NodeID, error) {
	attrs := el.Attrs()

	parentNode := style.RootNode
	if parent != NoElement {
		parentNode = l.mod.Metadata[parent].Attributes
	}
	node, err := l.mod.Attributes.Add(parentNode, style.NewFromMarkup(attrs))
	if err != nil {
		return NoElement, style.NoParent, err
	}

	md := ElementMetadata{
		ElementType: el.Kind(),
		Parent:      parent,
		Attributes:  node,
	}
	if v, ok := attrs[style.PropID]; ok && v != nil {
		md.ID = v.String()
	}
	if v, ok := attrs[style.PropClass]; ok && v != nil {
		md.Classes = strings.Fields(v.String())
	}

	index := len(l.mod.Elements)
	l.mod.Elements = append(l.mod.Elements, el)
	l.mod.Metadata = append(l.mod.Metadata, md)

	l.log.Debug("Element",
		zap.Int("index", index),
		zap.String("type", md.ElementType),
		zap.Int("parent", parent),
		zap.Int("node", int(node)))
	return index, node, nil
}

// recordTree records element and all its descendants without emitting any
// operations.
func (l *lowerer) recordTree(el ast.DocElement, parent int) (int, error) {
	if call, ok := el.(*ast.Call); ok {
		return NoElement, fmt.Errorf("call of %q inside returned content: %w", call.Name, ErrUnsupported)
	}
	index, _, err := l.record(el, parent)
	if err != nil {
		return NoElement, err
	}
	for _, child := range ast.Children(el) {
		if _, err := l.recordTree(child, index); err != nil {
			return NoElement, err
		}
	}
	return index, nil
}

func (l *lowerer) lowerCall(body *FuncBlock, call *ast.Call) error {
	ident, ok := l.scopes.Find(call.Name)
	if !ok {
		return fmt.Errorf("function not found: %s: %w", call.Name, ErrNaming)
	}
	fid, ok := ident.Func()
	if !ok {
		return fmt.Errorf("%s is %s, not a function: %w", call.Name, ident.Kind, ErrNaming)
	}

	args := make([]ValueID, 0, len(call.Args))
	for _, arg := range call.Args {
		vid, err := l.lowerArg(body, arg)
		if err != nil {
			return fmt.Errorf("call of %s: %w", call.Name, err)
		}
		args = append(args, vid)
	}
	body.Ops = append(body.Ops, &Call{Func: fid, Args: args})
	return nil
}

func (l *lowerer) lowerArg(body *FuncBlock, arg ast.ArgType) (ValueID, error) {
	var lit Literal
	switch arg.Type {
	case "var":
		ident, ok := l.scopes.Find(arg.Name)
		if !ok {
			return 0, fmt.Errorf("argument %q not handled: %w", arg.Name, ErrNaming)
		}
		switch ident.Kind {
		case IdentValue:
			vid, _ := ident.Value()
			return vid, nil
		case IdentGlobal:
			gid, _ := ident.Global()
			vid := l.ids.nextValue()
			body.Ops = append(body.Ops, &Load{Result: vid, Global: gid})
			return vid, nil
		}
		return 0, fmt.Errorf("argument %q is a function: %w", arg.Name, ErrUnsupported)
	case "int":
		n, err := strconv.ParseInt(arg.Name, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("int argument %q: %w", arg.Name, ErrUnsupported)
		}
		lit = Literal{Type: TypeInt, Int: n}
	case "float":
		f, err := strconv.ParseFloat(arg.Name, 64)
		if err != nil {
			return 0, fmt.Errorf("float argument %q: %w", arg.Name, ErrUnsupported)
		}
		lit = Literal{Type: TypeFloat, Float: f}
	case "string":
		lit = Literal{Type: TypeString, Str: unquote(arg.Name)}
	default:
		return 0, fmt.Errorf("argument type %q: %w", arg.Type, ErrUnsupported)
	}

	vid := l.ids.nextValue()
	body.Ops = append(body.Ops, &Const{Result: vid, Name: "raw_arg_" + strconv.FormatUint(uint64(vid), 10), Value: lit})
	return vid, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
