package mock

import (
	"fmt"
	"testing"

	"docscope/internal/engine/registry"
)

func TestMatchingRule(t *testing.T) {
	inst, err := Install(registry.New(), []string{"numpy", "scipy.sparse"})
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Disable()

	cases := []struct {
		name string
		want bool
	}{
		{"numpy", true},
		{"numpy.linalg", true},
		{"numpy.linalg.blas", true},
		{"numpydoc", false},
		{"scipy", false},
		{"scipy.sparse", true},
		{"scipy.sparse.csgraph", true},
	}
	for _, tc := range cases {
		if got := inst.Matches(tc.name); got != tc.want {
			t.Fatalf("Matches(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestGlobPatterns(t *testing.T) {
	inst, err := Install(registry.New(), []string{"tensorflow.*"})
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Disable()

	if !inst.Matches("tensorflow.keras") {
		t.Fatal("expected glob pattern match")
	}
	if inst.Matches("tensorflow") {
		t.Fatal("glob with trailing segment must not match the bare name")
	}
}

func TestInvalidPatternRejected(t *testing.T) {
	if _, err := Install(registry.New(), []string{"numpy["}); err == nil {
		t.Fatal("expected invalid glob pattern error")
	}
}

func TestMockedImportIdempotence(t *testing.T) {
	reg := registry.New()
	inst, err := Install(reg, []string{"numpy"})
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Disable()

	first, err := reg.Import("numpy.linalg")
	if err != nil {
		t.Fatal(err)
	}
	second, err := reg.Import("numpy.linalg")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("re-import of a mocked module must return the cached object")
	}
	if got := inst.MockedModules(); len(got) != 1 {
		t.Fatalf("mocked-name registry must not re-append, got %v", got)
	}
}

func TestDisablePurgesOnlyOwnEntries(t *testing.T) {
	reg := registry.New()
	realMod := NewModule("real") // stands in for a real module in the cache
	reg.Register("real", realMod)

	inst, err := Install(reg, []string{"numpy"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Import("numpy"); err != nil {
		t.Fatal(err)
	}

	inst.Disable()
	inst.Disable() // idempotent teardown

	if _, ok := reg.Cached("numpy"); ok {
		t.Fatal("disable must purge mocked names from the module cache")
	}
	if cached, ok := reg.Cached("real"); !ok || cached != realMod {
		t.Fatal("disable must never evict modules it did not create")
	}
	if _, err := reg.Import("numpy"); err == nil {
		t.Fatal("finder must be inactive after disable")
	}
}

func TestInvalidateKeepsMockingActive(t *testing.T) {
	reg := registry.New()
	inst, err := Install(reg, []string{"numpy"})
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Disable()

	if _, err := reg.Import("numpy"); err != nil {
		t.Fatal(err)
	}
	inst.Invalidate()

	if _, ok := reg.Cached("numpy"); ok {
		t.Fatal("invalidate must purge mocked names")
	}
	if _, err := reg.Import("numpy"); err != nil {
		t.Fatal("future mocking must stay enabled after invalidate")
	}
}

func TestWithMockCleansUpOnError(t *testing.T) {
	reg := registry.New()
	err := WithMock(reg, []string{"numpy"}, func() error {
		if _, err := reg.Import("numpy.linalg"); err != nil {
			return err
		}
		return fmt.Errorf("downstream failure")
	})
	if err == nil {
		t.Fatal("expected fn error to propagate")
	}
	if _, ok := reg.Cached("numpy.linalg"); ok {
		t.Fatal("scope exit must purge mocked names even on failure")
	}
}

func TestWithMockCleansUpOnPanic(t *testing.T) {
	reg := registry.New()
	func() {
		defer func() { _ = recover() }()
		_ = WithMock(reg, []string{"numpy"}, func() error {
			if _, err := reg.Import("numpy"); err != nil {
				return err
			}
			panic("renderer crashed")
		})
	}()

	if _, ok := reg.Cached("numpy"); ok {
		t.Fatal("scope exit must purge mocked names on panic")
	}
	if _, err := reg.Import("numpy"); err == nil {
		t.Fatal("finder must be removed after panic teardown")
	}
}
