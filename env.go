package slist

// Environment is one frame of lexical bindings. Frames point at their parent
// and never at their children, so the chain is acyclic and ends at the global
// environment.
type Environment struct {
	bindings map[string]Expression
	parent   *Environment
}

// NewEnvironment returns an empty frame whose parent is parent, which may be
// nil for a global environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{bindings: map[string]Expression{}, parent: parent}
}

// Extend returns a fresh child frame.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Parent returns the enclosing frame, or nil for the global environment.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Environment) Define(name string, v Expression) {
	e.bindings[name] = v
}

// Set overwrites the nearest enclosing binding of name. It returns false if
// name is unbound.
func (e *Environment) Set(name string, v Expression) bool {
	if where := e.where(name); where != nil {
		where.bindings[name] = v
		return true
	}
	return false
}

// Lookup walks the parent chain for name.
func (e *Environment) Lookup(name string) (Expression, bool) {
	if where := e.where(name); where != nil {
		return where.bindings[name], true
	}
	return nil, false
}

func (e *Environment) where(name string) *Environment {
	for e != nil {
		if _, ok := e.bindings[name]; ok {
			return e
		}
		e = e.parent
	}
	return nil
}
