// Package mock substitutes unavailable dependency modules with inert
// placeholder objects so documentation of code depending on optional or
// heavy packages still resolves.
package mock

import (
	"docscope/internal/engine/object"
)

// Substitute is the absorbing placeholder. Every operation a consumer may
// perform on it succeeds and yields either the substitute itself or a
// structurally compatible one. Substitutes are identity-free; the
// qualified name and module name exist only for display.
type Substitute struct {
	QualName string
	ModName  string
}

func NewSubstitute(qualname, module string) *Substitute {
	return &Substitute{QualName: qualname, ModName: module}
}

func (s *Substitute) TypeLabel() string { return "mock" }

func (s *Substitute) Inspect() string {
	name := s.QualName
	if s.ModName != "" {
		name = s.ModName + "." + s.QualName
	}
	return "<mock " + name + ">"
}

func (s *Substitute) Attr(name string) (object.Object, error) {
	qual := name
	if s.QualName != "" {
		qual = s.QualName + "." + name
	}
	return &Substitute{QualName: qual, ModName: s.ModName}, nil
}

// Call absorbs invocation. A function passed as the first argument is a
// decorator application: the wrapped callable comes back unchanged so
// later introspection still finds the real function.
func (s *Substitute) Call(args ...object.Object) (object.Object, error) {
	if len(args) > 0 && isFunction(args[0]) {
		return args[0], nil
	}
	return &Substitute{QualName: s.QualName, ModName: s.ModName}, nil
}

func isFunction(obj object.Object) bool {
	switch v := obj.(type) {
	case *object.Function:
		return true
	case *object.GoValue:
		return v.IsFunc()
	default:
		return false
	}
}

func (s *Substitute) Iterate() []object.Object { return nil }

func (s *Substitute) Len() int { return 0 }

func (s *Substitute) Contains(string) bool { return false }

func (s *Substitute) Index(object.Object) (object.Object, error) { return s, nil }

func (s *Substitute) OwnMembers() map[string]object.Object { return map[string]object.Object{} }

func (s *Substitute) MemberNames() []string { return nil }

// DeriveType lets a substitute stand in as a base class: the derived type
// is itself a substitute, so class definition over a mocked parent never
// fails.
func (s *Substitute) DeriveType(name string, members map[string]object.Object) object.Object {
	return &Substitute{QualName: name, ModName: s.ModName}
}
