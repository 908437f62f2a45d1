package util

import "testing"

func TestHasDottedPrefix(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		want   bool
	}{
		{"numpy", "numpy", true},
		{"numpy.linalg", "numpy", true},
		{"numpy.linalg.blas", "numpy", true},
		{"numpydoc", "numpy", false},
		{"numpy", "numpy.linalg", false},
		{"", "", true},
		{"numpy", "", false},
	}
	for _, tc := range cases {
		if got := HasDottedPrefix(tc.name, tc.prefix); got != tc.want {
			t.Fatalf("HasDottedPrefix(%q, %q) = %v, want %v", tc.name, tc.prefix, got, tc.want)
		}
	}
}

func TestSplitLastSegment(t *testing.T) {
	head, tail := SplitLastSegment("pkg.sub.Class")
	if head != "pkg.sub" || tail != "Class" {
		t.Fatalf("got %q, %q", head, tail)
	}

	head, tail = SplitLastSegment("pkg")
	if head != "pkg" || tail != "" {
		t.Fatalf("got %q, %q", head, tail)
	}
}

func TestContainsGlobMeta(t *testing.T) {
	if !ContainsGlobMeta("scipy.*") {
		t.Fatal("expected glob meta detection")
	}
	if ContainsGlobMeta("scipy.sparse") {
		t.Fatal("plain dotted name is not a glob")
	}
}

func TestSortedStringKeys(t *testing.T) {
	keys := SortedStringKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Fatalf("unexpected order: %v", keys)
	}
}

func TestLimiterRegistryReusesLimiter(t *testing.T) {
	reg := NewLimiterRegistry(1, 1)
	a := reg.Get("numpy")
	b := reg.Get("numpy")
	if a != b {
		t.Fatal("expected the same limiter instance per key")
	}
	if !a.Allow(1) {
		t.Fatal("expected first event to pass")
	}
	if a.Allow(1) {
		t.Fatal("expected second immediate event to be throttled")
	}
}
