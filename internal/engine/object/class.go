package object

import (
	"sort"

	"docscope/internal/shared/util"
)

// Class is a named type with single- or multiple-base inheritance. Own
// members shadow inherited ones; base order decides lookup on conflicts.
type Class struct {
	Name    string
	Bases   []Object
	members map[string]Object
}

// NewClass builds a class object. When any base can absorb derivation
// (a mocked symbol used as a parent type), the base builds the result
// instead, so class definition over a mock never fails.
func NewClass(name string, bases []Object, members map[string]Object) Object {
	for _, base := range bases {
		if d, ok := base.(TypeDeriver); ok {
			return d.DeriveType(name, members)
		}
	}
	c := &Class{Name: name, Bases: bases, members: make(map[string]Object, len(members))}
	for k, v := range members {
		c.members[k] = v
	}
	return c
}

func (c *Class) TypeLabel() string { return "class" }
func (c *Class) Inspect() string   { return "<class " + c.Name + ">" }

func (c *Class) Attr(name string) (Object, error) {
	if v, ok := c.members[name]; ok {
		return v, nil
	}
	for _, base := range c.Bases {
		getter, ok := base.(AttrGetter)
		if !ok {
			continue
		}
		if v, err := getter.Attr(name); err == nil {
			return v, nil
		}
	}
	return nil, NoAttr(c, name)
}

func (c *Class) OwnMembers() map[string]Object {
	out := make(map[string]Object, len(c.members))
	for k, v := range c.members {
		out[k] = v
	}
	return out
}

func (c *Class) MemberNames() []string {
	seen := make(map[string]bool, len(c.members))
	for name := range c.members {
		seen[name] = true
	}
	for _, base := range c.Bases {
		enum, ok := base.(MemberEnumerable)
		if !ok {
			continue
		}
		for _, name := range enum.MemberNames() {
			seen[name] = true
		}
	}
	return util.SortedStringKeys(seen)
}

func (c *Class) Contains(name string) bool {
	_, err := c.Attr(name)
	return err == nil
}

// Function is a named callable. The wrapped implementation is optional;
// a nil Impl makes the function documentable but inert.
type Function struct {
	Name string
	Doc  string
	Impl func(args ...Object) (Object, error)
}

func (f *Function) TypeLabel() string { return "function" }
func (f *Function) Inspect() string   { return "<function " + f.Name + ">" }

func (f *Function) Call(args ...Object) (Object, error) {
	if f.Impl == nil {
		return None, nil
	}
	return f.Impl(args...)
}

// EnumMember is a named constant belonging to an EnumType.
type EnumMember struct {
	Name  string
	Value Object
	Owner *EnumType
}

func (m *EnumMember) TypeLabel() string { return "enum member" }
func (m *EnumMember) Inspect() string {
	if m.Owner != nil {
		return "<" + m.Owner.Name + "." + m.Name + ">"
	}
	return "<" + m.Name + ">"
}

// EnumType is an enumerated-constant type: ordered named constants plus
// helper attributes, with a single immediate base type.
type EnumType struct {
	Name      string
	Base      Object
	constants []*EnumMember
	helpers   map[string]Object
}

func NewEnumType(name string, base Object) *EnumType {
	return &EnumType{Name: name, Base: base, helpers: make(map[string]Object)}
}

func (e *EnumType) TypeLabel() string { return "enum" }
func (e *EnumType) Inspect() string   { return "<enum " + e.Name + ">" }

// AddConstant appends a named constant, preserving declaration order.
func (e *EnumType) AddConstant(name string, value Object) *EnumMember {
	m := &EnumMember{Name: name, Value: value, Owner: e}
	e.constants = append(e.constants, m)
	return m
}

// SetHelper declares a non-constant attribute on the enum itself.
func (e *EnumType) SetHelper(name string, value Object) {
	e.helpers[name] = value
}

// Constants returns the named constants in declaration order.
func (e *EnumType) Constants() []*EnumMember {
	out := make([]*EnumMember, len(e.constants))
	copy(out, e.constants)
	return out
}

func (e *EnumType) Attr(name string) (Object, error) {
	for _, m := range e.constants {
		if m.Name == name {
			return m, nil
		}
	}
	if v, ok := e.helpers[name]; ok {
		return v, nil
	}
	if getter, ok := e.Base.(AttrGetter); ok {
		if v, err := getter.Attr(name); err == nil {
			return v, nil
		}
	}
	return nil, NoAttr(e, name)
}

// OwnMembers lists everything declared on the enum itself: constants and
// helper attributes, not the base's members.
func (e *EnumType) OwnMembers() map[string]Object {
	out := make(map[string]Object, len(e.constants)+len(e.helpers))
	for _, m := range e.constants {
		out[m.Name] = m
	}
	for k, v := range e.helpers {
		out[k] = v
	}
	return out
}

func (e *EnumType) MemberNames() []string {
	seen := make(map[string]bool)
	for _, m := range e.constants {
		seen[m.Name] = true
	}
	for name := range e.helpers {
		seen[name] = true
	}
	if enum, ok := e.Base.(MemberEnumerable); ok {
		for _, name := range enum.MemberNames() {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *EnumType) Iterate() []Object {
	out := make([]Object, len(e.constants))
	for i, m := range e.constants {
		out[i] = m
	}
	return out
}

func (e *EnumType) Len() int { return len(e.constants) }
