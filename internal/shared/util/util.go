package util

import (
	"sort"
	"strings"
)

// HasDottedPrefix returns true when name equals prefix or is nested under
// prefix in dotted notation ("numpy" covers "numpy.linalg.blas").
func HasDottedPrefix(name, prefix string) bool {
	name = strings.TrimSpace(name)
	prefix = strings.TrimSpace(prefix)
	if name == "" || prefix == "" {
		return name == prefix
	}
	if name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+".")
}

// SplitLastSegment splits a dotted name at its final separator.
// The second return is empty when no separator is present.
func SplitLastSegment(name string) (head, tail string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// ContainsGlobMeta returns true when value uses glob metacharacters.
func ContainsGlobMeta(value string) bool {
	return strings.ContainsAny(value, "*?[]{}")
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
