// Package object defines the runtime object model that resolution and
// member enumeration operate on. Entities expose only the capabilities the
// documentation pipeline consumes: attribute access, calls, iteration,
// sizing, containment, indexing, and member listing.
package object

import (
	"fmt"

	"docscope/internal/core/errors"
)

type Object interface {
	// TypeLabel is the human-readable kind label used in diagnostics
	// ("module", "class", "function", "mock", ...).
	TypeLabel() string
	// Inspect returns a short display form of the object.
	Inspect() string
}

// AttrGetter is implemented by objects supporting attribute access.
type AttrGetter interface {
	Attr(name string) (Object, error)
}

// Callable is implemented by objects that can be invoked.
type Callable interface {
	Call(args ...Object) (Object, error)
}

// Iterable yields the object's elements.
type Iterable interface {
	Iterate() []Object
}

// Sized reports the object's length.
type Sized interface {
	Len() int
}

// Container answers membership queries.
type Container interface {
	Contains(name string) bool
}

// Indexable supports subscript access.
type Indexable interface {
	Index(key Object) (Object, error)
}

// MemberLister exposes the members declared directly on the entity itself,
// excluding anything inherited.
type MemberLister interface {
	OwnMembers() map[string]Object
}

// MemberEnumerable exposes the full member name set, inherited members
// included. The dir()-style sweep of the enumerator is built on this.
type MemberEnumerable interface {
	MemberNames() []string
}

// TypeDeriver is implemented by objects that can stand in as a base type.
// NewClass consults it so deriving from such a base never fails.
type TypeDeriver interface {
	DeriveType(name string, members map[string]Object) Object
}

// NoAttr builds the distinguished attribute-missing failure.
func NoAttr(obj Object, name string) error {
	err := errors.New(errors.CodeAttributeMissing,
		fmt.Sprintf("%s object has no attribute %q", obj.TypeLabel(), name))
	return errors.AddContext(err, errors.CtxAttribute, name)
}

// IsNoAttr reports whether err is the attribute-missing failure.
func IsNoAttr(err error) bool {
	return errors.IsCode(err, errors.CodeAttributeMissing)
}

// Sentinel is a named marker object carrying no value.
type Sentinel struct {
	Name string
}

func (s *Sentinel) TypeLabel() string { return "sentinel" }
func (s *Sentinel) Inspect() string   { return "<" + s.Name + ">" }

// None is the absent-value marker.
var None = &Sentinel{Name: "None"}

// Str is a string leaf value.
type Str struct {
	Value string
}

func (s *Str) TypeLabel() string { return "str" }
func (s *Str) Inspect() string   { return s.Value }
func (s *Str) Len() int          { return len(s.Value) }

// Int is an integer leaf value.
type Int struct {
	Value int64
}

func (i *Int) TypeLabel() string { return "int" }
func (i *Int) Inspect() string   { return fmt.Sprintf("%d", i.Value) }
