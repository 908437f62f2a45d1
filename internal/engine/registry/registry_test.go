package registry

import (
	stderrors "errors"
	"testing"

	"docscope/internal/core/errors"
	"docscope/internal/engine/object"
)

func TestImportThroughProvider(t *testing.T) {
	reg := New()
	finder := NewProviderFinder()
	finder.RegisterProvider("pkg", func() (object.Object, error) {
		return object.NewModule("pkg", map[string]object.Object{
			"answer": &object.Int{Value: 42},
		}), nil
	})
	reg.AppendFinder(finder)

	mod, err := reg.Import("pkg")
	if err != nil {
		t.Fatal(err)
	}
	if mod.TypeLabel() != "module" {
		t.Fatalf("unexpected kind %q", mod.TypeLabel())
	}
}

func TestImportReturnsCachedObject(t *testing.T) {
	reg := New()
	calls := 0
	finder := NewProviderFinder()
	finder.RegisterProvider("pkg", func() (object.Object, error) {
		calls++
		return object.NewModule("pkg", nil), nil
	})
	reg.AppendFinder(finder)

	first, err := reg.Import("pkg")
	if err != nil {
		t.Fatal(err)
	}
	second, err := reg.Import("pkg")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("re-import must return the identical cached object")
	}
	if calls != 1 {
		t.Fatalf("provider ran %d times, want 1", calls)
	}
}

func TestImportUnknownModule(t *testing.T) {
	reg := New()
	_, err := reg.Import("ghost")
	if err == nil {
		t.Fatal("expected import failure")
	}
	if !errors.IsCode(err, errors.CodeImportFailure) {
		t.Fatalf("expected IMPORT_FAILURE, got %v", err)
	}
}

func TestImportRecoversProviderPanic(t *testing.T) {
	reg := New()
	finder := NewProviderFinder()
	finder.RegisterProvider("exiting", func() (object.Object, error) {
		panic("sys.exit")
	})
	reg.AppendFinder(finder)

	_, err := reg.Import("exiting")
	if err == nil {
		t.Fatal("expected failure for panicking provider")
	}
	var lp *LoadPanic
	if !stderrors.As(err, &lp) {
		t.Fatalf("expected LoadPanic in chain, got %v", err)
	}
	if lp.Module != "exiting" {
		t.Fatalf("unexpected module name %q", lp.Module)
	}
}

func TestFinderOrderAndRemoval(t *testing.T) {
	reg := New()

	back := NewProviderFinder()
	back.RegisterProvider("pkg", func() (object.Object, error) {
		return object.NewModule("back", nil), nil
	})
	front := NewProviderFinder()
	front.RegisterProvider("pkg", func() (object.Object, error) {
		return object.NewModule("front", nil), nil
	})

	reg.AppendFinder(back)
	reg.InsertFinder(front)

	mod, err := reg.Import("pkg")
	if err != nil {
		t.Fatal(err)
	}
	if mod.(*object.Module).Name != "front" {
		t.Fatal("inserted finder must win over appended finder")
	}

	reg.RemoveFinder(front)
	reg.RemoveFinder(front) // removing twice is a no-op
	reg.Evict("pkg")
	reg.Evict("pkg") // absent eviction is ignored

	mod, err = reg.Import("pkg")
	if err != nil {
		t.Fatal(err)
	}
	if mod.(*object.Module).Name != "back" {
		t.Fatal("removal must fall through to the remaining finder")
	}
}
