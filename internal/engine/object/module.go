package object

import (
	"docscope/internal/shared/util"
)

// Module is a named attribute container, the unit the registry caches.
type Module struct {
	Name    string
	members map[string]Object
}

func NewModule(name string, members map[string]Object) *Module {
	m := &Module{Name: name, members: make(map[string]Object, len(members))}
	for k, v := range members {
		m.members[k] = v
	}
	return m
}

func (m *Module) TypeLabel() string { return "module" }
func (m *Module) Inspect() string   { return "<module " + m.Name + ">" }

func (m *Module) Attr(name string) (Object, error) {
	if v, ok := m.members[name]; ok {
		return v, nil
	}
	return nil, NoAttr(m, name)
}

// Set registers or replaces a member. Providers use this while building
// module contents.
func (m *Module) Set(name string, value Object) {
	if m.members == nil {
		m.members = make(map[string]Object)
	}
	m.members[name] = value
}

func (m *Module) OwnMembers() map[string]Object {
	out := make(map[string]Object, len(m.members))
	for k, v := range m.members {
		out[k] = v
	}
	return out
}

func (m *Module) MemberNames() []string {
	return util.SortedStringKeys(m.members)
}

func (m *Module) Contains(name string) bool {
	_, ok := m.members[name]
	return ok
}

func (m *Module) Len() int { return len(m.members) }
