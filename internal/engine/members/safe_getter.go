package members

import (
	"fmt"

	"docscope/internal/core/errors"
	"docscope/internal/engine/object"
)

// AttrGetterFunc walks one attribute step. Implementations signal a
// uniform attribute-missing failure; they never propagate arbitrary
// errors.
type AttrGetterFunc func(obj object.Object, name string) (object.Object, error)

// SafeGetAttr is the default accessor: any failure during attribute
// access, panics in capability implementations included, degrades to the
// distinguished attribute-missing error.
func SafeGetAttr(obj object.Object, name string) (res object.Object, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = errors.Wrap(
				fmt.Errorf("attribute access panicked: %v", rec),
				errors.CodeAttributeMissing,
				fmt.Sprintf("%s object has no readable attribute %q", obj.TypeLabel(), name))
		}
	}()

	getter, ok := obj.(object.AttrGetter)
	if !ok {
		return nil, object.NoAttr(obj, name)
	}
	v, err := getter.Attr(name)
	if err != nil {
		if object.IsNoAttr(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.CodeAttributeMissing,
			fmt.Sprintf("%s object has no readable attribute %q", obj.TypeLabel(), name))
	}
	return v, nil
}
