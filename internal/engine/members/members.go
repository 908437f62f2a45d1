// Package members enumerates the complete member set of a resolved
// object with provenance: declared directly on the entity vs inherited.
package members

import (
	"log/slog"
	"strings"
	"time"

	"docscope/internal/engine/object"
	"docscope/internal/shared/observability"
)

// Attribute is one member record. DirectlyDefined marks members declared
// on the entity itself rather than inherited from an ancestor.
type Attribute struct {
	Name            string
	DirectlyDefined bool
	Value           object.Object
}

// InstanceAttr marks attributes documented in source but absent as
// runtime values.
var InstanceAttr = &object.Sentinel{Name: "instance attribute"}

// AttrDoc is one documented-attribute fact supplied by the source
// analyzer: Namespace is the dotted path of the owning entity.
type AttrDoc struct {
	Namespace string
	Name      string
}

// Analyzer supplies documented-instance-attribute facts.
type Analyzer interface {
	FindAttrDocs() ([]AttrDoc, error)
}

// Enumerate produces the member mapping of subject. Each name appears at
// most once; the first writer wins, so enum constants recorded up front
// are never overwritten by the generic sweep. Per-member read failures
// degrade to omission; Enumerate itself never fails.
func Enumerate(subject object.Object, objPath []string, getattr AttrGetterFunc, analyzer Analyzer) map[string]Attribute {
	start := time.Now()
	defer func() {
		observability.MemberEnumerationDuration.Observe(time.Since(start).Seconds())
	}()
	if getattr == nil {
		getattr = SafeGetAttr
	}

	ownMembers := ownMemberMap(subject)
	members := make(map[string]Attribute)

	// Enum constants first: they are directly defined by construction and
	// take precedence over anything the reflective sweep finds later.
	if enum, ok := subject.(*object.EnumType); ok {
		for _, constant := range enum.Constants() {
			if _, seen := members[constant.Name]; !seen {
				members[constant.Name] = Attribute{Name: constant.Name, DirectlyDefined: true, Value: constant}
			}
		}

		// Enum-specific helpers: own members the immediate base does not
		// declare. Only the single immediate base is consulted.
		baseMembers := ownMemberMap(enum.Base)
		for name, value := range ownMembers {
			if _, inBase := baseMembers[name]; !inBase {
				members[name] = Attribute{Name: name, DirectlyDefined: true, Value: value}
			}
		}
	}

	if enum, ok := subject.(object.MemberEnumerable); ok {
		for _, name := range enum.MemberNames() {
			if _, seen := members[name]; seen {
				continue
			}
			value, err := getattr(subject, name)
			if err != nil {
				slog.Debug("skipping unreadable member", "name", name, "error", err)
				continue
			}
			_, direct := ownMembers[name]
			members[name] = Attribute{Name: name, DirectlyDefined: direct, Value: value}
		}
	}

	if analyzer != nil {
		namespace := strings.Join(objPath, ".")
		docs, err := analyzer.FindAttrDocs()
		if err != nil {
			slog.Debug("analyzer facts unavailable", "error", err)
			docs = nil
		}
		for _, doc := range docs {
			if doc.Namespace != namespace {
				continue
			}
			if _, seen := members[doc.Name]; !seen {
				members[doc.Name] = Attribute{Name: doc.Name, DirectlyDefined: true, Value: InstanceAttr}
			}
		}
	}

	return members
}

// ownMemberMap reads the entity's direct-member mapping, empty on any
// failure.
func ownMemberMap(subject object.Object) (out map[string]object.Object) {
	defer func() {
		if rec := recover(); rec != nil {
			out = map[string]object.Object{}
		}
	}()
	lister, ok := subject.(object.MemberLister)
	if !ok {
		return map[string]object.Object{}
	}
	if m := lister.OwnMembers(); m != nil {
		return m
	}
	return map[string]object.Object{}
}
