package mock

import (
	"docscope/internal/engine/object"
)

// Module is a mocked module: attributes are not pre-populated, every
// unknown attribute access synthesizes a fresh substitute stamped with
// the module name.
type Module struct {
	Name string
}

func NewModule(name string) *Module {
	return &Module{Name: name}
}

func (m *Module) TypeLabel() string { return "module" }
func (m *Module) Inspect() string   { return "<module " + m.Name + " (mocked)>" }

func (m *Module) Attr(name string) (object.Object, error) {
	return &Substitute{QualName: name, ModName: m.Name}, nil
}

func (m *Module) OwnMembers() map[string]object.Object { return map[string]object.Object{} }

func (m *Module) MemberNames() []string { return nil }

func (m *Module) Contains(string) bool { return false }

func (m *Module) Len() int { return 0 }
