package hlir

import "fmt"

// ScopeStack tracks lexical bindings during lowering. Innermost scope is the
// last one.
type ScopeStack struct {
	scopes []map[string]Identifier
}

func (s *ScopeStack) Push() {
	s.scopes = append(s.scopes, make(map[string]Identifier))
}

func (s *ScopeStack) Pop() {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *ScopeStack) Depth() int {
	return len(s.scopes)
}

// Add binds name in the innermost scope. Binding a name already known to any
// active scope is an error, so inner scopes cannot shadow outer ones.
func (s *ScopeStack) Add(name string, id Identifier) error {
	if len(s.scopes) == 0 {
		return fmt.Errorf("no active scope to bind %q: %w", name, ErrNaming)
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if prev, ok := s.scopes[i][name]; ok {
			return fmt.Errorf("symbol %q already exists (%s): %w", name, prev, ErrNaming)
		}
	}
	s.scopes[len(s.scopes)-1][name] = id
	return nil
}

// Find resolves name starting from the innermost scope.
func (s *ScopeStack) Find(name string) (Identifier, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if id, ok := s.scopes[i][name]; ok {
			return id, true
		}
	}
	return Identifier{}, false
}
