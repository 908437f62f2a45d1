package object

import "testing"

func TestModuleAttr(t *testing.T) {
	m := NewModule("pkg", map[string]Object{"answer": &Int{Value: 42}})

	v, err := m.Attr("answer")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*Int).Value != 42 {
		t.Fatalf("unexpected value %s", v.Inspect())
	}

	if _, err := m.Attr("missing"); !IsNoAttr(err) {
		t.Fatalf("expected attribute-missing failure, got %v", err)
	}
}

func TestClassInheritedLookup(t *testing.T) {
	base := NewClass("Base", nil, map[string]Object{
		"shared":  &Str{Value: "from base"},
		"helper":  &Function{Name: "helper"},
		"shadowed": &Str{Value: "base"},
	})
	child := NewClass("Child", []Object{base}, map[string]Object{
		"own":      &Str{Value: "child"},
		"shadowed": &Str{Value: "child"},
	})

	c := child.(*Class)
	v, err := c.Attr("shared")
	if err != nil {
		t.Fatal(err)
	}
	if v.Inspect() != "from base" {
		t.Fatalf("unexpected inherited value %q", v.Inspect())
	}

	v, err = c.Attr("shadowed")
	if err != nil {
		t.Fatal(err)
	}
	if v.Inspect() != "child" {
		t.Fatal("own member must shadow inherited member")
	}

	own := c.OwnMembers()
	if _, ok := own["shared"]; ok {
		t.Fatal("inherited member leaked into OwnMembers")
	}

	names := c.MemberNames()
	want := map[string]bool{"shared": true, "helper": true, "shadowed": true, "own": true}
	if len(names) != len(want) {
		t.Fatalf("unexpected member names: %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected member %q", n)
		}
	}
}

func TestEnumTypeMembers(t *testing.T) {
	base := NewClass("Enum", nil, map[string]Object{
		"name": &Function{Name: "name"},
	})
	colors := NewEnumType("Color", base)
	colors.AddConstant("RED", &Int{Value: 1})
	colors.AddConstant("GREEN", &Int{Value: 2})
	colors.SetHelper("values", &Function{Name: "values"})

	if colors.Len() != 2 {
		t.Fatalf("expected 2 constants, got %d", colors.Len())
	}

	red, err := colors.Attr("RED")
	if err != nil {
		t.Fatal(err)
	}
	if red.(*EnumMember).Owner != colors {
		t.Fatal("constant must know its owning enum")
	}

	// inherited through the base
	if _, err := colors.Attr("name"); err != nil {
		t.Fatalf("expected inherited attribute, got %v", err)
	}

	own := colors.OwnMembers()
	if _, ok := own["RED"]; !ok {
		t.Fatal("constants belong to OwnMembers")
	}
	if _, ok := own["values"]; !ok {
		t.Fatal("helpers belong to OwnMembers")
	}
	if _, ok := own["name"]; ok {
		t.Fatal("base members must not appear in OwnMembers")
	}

	items := colors.Iterate()
	if len(items) != 2 || items[0].(*EnumMember).Name != "RED" {
		t.Fatalf("iteration must preserve declaration order, got %v", items)
	}
}

func TestFunctionCallDefaultsToNone(t *testing.T) {
	f := &Function{Name: "stub"}
	out, err := f.Call()
	if err != nil {
		t.Fatal(err)
	}
	if out != None {
		t.Fatalf("expected None, got %s", out.Inspect())
	}
}
