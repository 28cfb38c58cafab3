package hlir

import "fmt"

type (
	FuncID   uint32
	GlobalID uint32
	ValueID  uint32
)

type IdentKind int

const (
	IdentFunc IdentKind = iota
	IdentGlobal
	IdentValue
)

func (k IdentKind) String() string {
	switch k {
	case IdentFunc:
		return "func"
	case IdentGlobal:
		return "global"
	case IdentValue:
		return "value"
	}
	return fmt.Sprintf("IdentKind(%d)", int(k))
}

// Identifier is what a name in scope is bound to.
type Identifier struct {
	Kind IdentKind
	N    uint32
}

func FuncIdent(id FuncID) Identifier     { return Identifier{Kind: IdentFunc, N: uint32(id)} }
func GlobalIdent(id GlobalID) Identifier { return Identifier{Kind: IdentGlobal, N: uint32(id)} }
func ValueIdent(id ValueID) Identifier   { return Identifier{Kind: IdentValue, N: uint32(id)} }

func (i Identifier) Func() (FuncID, bool)     { return FuncID(i.N), i.Kind == IdentFunc }
func (i Identifier) Global() (GlobalID, bool) { return GlobalID(i.N), i.Kind == IdentGlobal }
func (i Identifier) Value() (ValueID, bool)   { return ValueID(i.N), i.Kind == IdentValue }

func (i Identifier) String() string {
	return fmt.Sprintf("%s#%d", i.Kind, i.N)
}

// idAllocator hands out dense ids, one sequence per category. Ids are never
// reused within a module.
type idAllocator struct {
	funcs   uint32
	globals uint32
	values  uint32
}

func (a *idAllocator) nextFunc() FuncID {
	id := FuncID(a.funcs)
	a.funcs++
	return id
}

func (a *idAllocator) nextGlobal() GlobalID {
	id := GlobalID(a.globals)
	a.globals++
	return id
}

func (a *idAllocator) nextValue() ValueID {
	id := ValueID(a.values)
	a.values++
	return id
}
