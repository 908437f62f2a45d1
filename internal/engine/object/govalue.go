package object

import (
	"fmt"
	"reflect"
	"sort"
)

// GoValue adapts an arbitrary Go value into the object model via
// reflection. Exported struct fields and methods become attributes;
// fields and methods promoted from embedded types count as inherited,
// everything declared on the type itself counts as direct.
//
// Pass a pointer when pointer-receiver methods should be visible.
type GoValue struct {
	v reflect.Value
}

// WrapGo wraps value. A nil value maps to None.
func WrapGo(value interface{}) Object {
	if value == nil {
		return None
	}
	if obj, ok := value.(Object); ok {
		return obj
	}
	return &GoValue{v: reflect.ValueOf(value)}
}

func (g *GoValue) TypeLabel() string {
	switch g.elem().Kind() {
	case reflect.Struct:
		return "struct"
	case reflect.Func:
		return "function"
	case reflect.Map:
		return "map"
	case reflect.Slice, reflect.Array:
		return "sequence"
	default:
		return g.elem().Kind().String()
	}
}

func (g *GoValue) Inspect() string {
	if !g.v.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%v", g.v.Interface())
}

// IsFunc reports whether the wrapped value is a Go function. The mock
// substitute uses this for decorator pass-through detection.
func (g *GoValue) IsFunc() bool {
	return g.v.IsValid() && g.v.Kind() == reflect.Func
}

// Value returns the wrapped reflect value.
func (g *GoValue) Value() reflect.Value { return g.v }

func (g *GoValue) elem() reflect.Value {
	v := g.v
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func (g *GoValue) Attr(name string) (Object, error) {
	if !g.v.IsValid() {
		return nil, NoAttr(g, name)
	}
	if m := g.v.MethodByName(name); m.IsValid() {
		return &GoValue{v: m}, nil
	}
	elem := g.elem()
	if m := elem.MethodByName(name); m.IsValid() {
		return &GoValue{v: m}, nil
	}
	if elem.Kind() == reflect.Struct {
		if f := elem.FieldByName(name); f.IsValid() && f.CanInterface() {
			return WrapGo(f.Interface()), nil
		}
	}
	return nil, NoAttr(g, name)
}

// OwnMembers returns attributes declared on the type itself: fields not
// promoted from an embedded type, and methods no embedded type provides.
func (g *GoValue) OwnMembers() map[string]Object {
	out := make(map[string]Object)
	if !g.v.IsValid() {
		return out
	}

	elem := g.elem()
	if elem.Kind() == reflect.Struct {
		t := elem.Type()
		promoted := promotedMethodNames(t)
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.Anonymous || !sf.IsExported() {
				continue
			}
			f := elem.Field(i)
			if f.CanInterface() {
				out[sf.Name] = WrapGo(f.Interface())
			}
		}
		rt := g.v.Type()
		for i := 0; i < rt.NumMethod(); i++ {
			name := rt.Method(i).Name
			if promoted[name] {
				continue
			}
			out[name] = &GoValue{v: g.v.Method(i)}
		}
	}
	return out
}

// MemberNames enumerates every reachable attribute name, promoted fields
// and methods included.
func (g *GoValue) MemberNames() []string {
	if !g.v.IsValid() {
		return nil
	}
	seen := make(map[string]bool)

	rt := g.v.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		seen[rt.Method(i).Name] = true
	}

	elem := g.elem()
	if elem.Kind() == reflect.Struct {
		collectFieldNames(elem.Type(), seen)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *GoValue) Len() int {
	switch g.elem().Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return g.elem().Len()
	}
	return 0
}

func (g *GoValue) Iterate() []Object {
	elem := g.elem()
	switch elem.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]Object, elem.Len())
		for i := 0; i < elem.Len(); i++ {
			out[i] = WrapGo(elem.Index(i).Interface())
		}
		return out
	}
	return nil
}

func (g *GoValue) Index(key Object) (Object, error) {
	elem := g.elem()
	switch elem.Kind() {
	case reflect.Slice, reflect.Array:
		idx, ok := key.(*Int)
		if !ok || idx.Value < 0 || idx.Value >= int64(elem.Len()) {
			return nil, NoAttr(g, key.Inspect())
		}
		return WrapGo(elem.Index(int(idx.Value)).Interface()), nil
	case reflect.Map:
		k, ok := key.(*Str)
		if !ok {
			return nil, NoAttr(g, key.Inspect())
		}
		v := elem.MapIndex(reflect.ValueOf(k.Value))
		if !v.IsValid() {
			return nil, NoAttr(g, k.Value)
		}
		return WrapGo(v.Interface()), nil
	}
	return nil, NoAttr(g, key.Inspect())
}

func (g *GoValue) Call(args ...Object) (Object, error) {
	if !g.IsFunc() {
		return nil, fmt.Errorf("%s object is not callable", g.TypeLabel())
	}
	in := make([]reflect.Value, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case *Str:
			in = append(in, reflect.ValueOf(a.Value))
		case *Int:
			in = append(in, reflect.ValueOf(a.Value))
		case *GoValue:
			in = append(in, a.v)
		default:
			return nil, fmt.Errorf("unsupported argument kind %s", arg.TypeLabel())
		}
	}
	out := g.v.Call(in)
	if len(out) == 0 {
		return None, nil
	}
	return WrapGo(out[0].Interface()), nil
}

func promotedMethodNames(t reflect.Type) map[string]bool {
	out := make(map[string]bool)
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		for _, cand := range []reflect.Type{f.Type, reflect.PtrTo(f.Type)} {
			for j := 0; j < cand.NumMethod(); j++ {
				out[cand.Method(j).Name] = true
			}
		}
	}
	return out
}

func collectFieldNames(t reflect.Type, seen map[string]bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous {
			collectFieldNames(sf.Type, seen)
			continue
		}
		seen[sf.Name] = true
	}
}
