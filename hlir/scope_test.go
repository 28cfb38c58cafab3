package hlir

import (
	"errors"
	"testing"
)

func TestScopeStack(t *testing.T) {
	var s ScopeStack

	if err := s.Add("x", GlobalIdent(0)); !errors.Is(err, ErrNaming) {
		t.Fatalf("Add on empty stack: err = %v", err)
	}

	s.Push()
	if err := s.Add("x", GlobalIdent(0)); err != nil {
		t.Fatal(err)
	}
	s.Push()
	if err := s.Add("y", ValueIdent(3)); err != nil {
		t.Fatal(err)
	}

	t.Run("find innermost first", func(t *testing.T) {
		id, ok := s.Find("y")
		if !ok || id != ValueIdent(3) {
			t.Errorf("Find(y) = %v, %v", id, ok)
		}
		id, ok = s.Find("x")
		if !ok || id != GlobalIdent(0) {
			t.Errorf("Find(x) = %v, %v", id, ok)
		}
		if _, ok := s.Find("z"); ok {
			t.Error("Find(z) must fail")
		}
	})

	t.Run("no shadowing of outer scopes", func(t *testing.T) {
		if err := s.Add("x", ValueIdent(9)); !errors.Is(err, ErrNaming) {
			t.Errorf("err = %v, want ErrNaming", err)
		}
		if err := s.Add("y", ValueIdent(9)); !errors.Is(err, ErrNaming) {
			t.Errorf("err = %v, want ErrNaming", err)
		}
	})

	t.Run("pop drops bindings", func(t *testing.T) {
		s.Pop()
		if s.Depth() != 1 {
			t.Errorf("Depth() = %d", s.Depth())
		}
		if _, ok := s.Find("y"); ok {
			t.Error("y must be gone with its scope")
		}
		if err := s.Add("y", FuncIdent(1)); err != nil {
			t.Errorf("rebinding after pop: %v", err)
		}
	})

	s.Pop()
	s.Pop()
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d after popping everything", s.Depth())
	}
}

func TestIdentifier(t *testing.T) {
	id := FuncIdent(4)
	if f, ok := id.Func(); !ok || f != 4 {
		t.Errorf("Func() = %d, %v", f, ok)
	}
	if _, ok := id.Value(); ok {
		t.Error("func identifier reported as value")
	}
	if _, ok := id.Global(); ok {
		t.Error("func identifier reported as global")
	}
	if id.String() != "func#4" {
		t.Errorf("String() = %q", id.String())
	}
	if GlobalIdent(4) == id {
		t.Error("identifiers of different kinds must differ")
	}
}

func TestIDAllocator(t *testing.T) {
	var a idAllocator
	for want := range 3 {
		if got := a.nextValue(); got != ValueID(want) {
			t.Errorf("nextValue() = %d, want %d", got, want)
		}
	}
	if a.nextFunc() != 0 || a.nextGlobal() != 0 {
		t.Error("categories must be numbered independently")
	}
	if a.nextFunc() != 1 {
		t.Error("func ids must be dense")
	}
}
