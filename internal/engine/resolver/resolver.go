// Package resolver turns a dotted symbol path into a live object. The
// module/attribute boundary is discovered by optimistic import of the
// full name followed by retreat: on failure the last segment moves to the
// attribute side and the shortened module name is retried.
package resolver

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"docscope/internal/core/errors"
	"docscope/internal/engine/members"
	"docscope/internal/engine/object"
	"docscope/internal/engine/registry"
	"docscope/internal/shared/observability"
	"docscope/internal/shared/util"
)

// ResolvedSymbol is the product of one resolution call, produced fresh
// per call and never cached. Parent is nil for a pure module reference.
type ResolvedSymbol struct {
	ModuleName string
	Module     object.Object
	Parent     object.Object
	Name       string
	Object     object.Object
}

type Resolver struct {
	registry     *registry.Registry
	getattr      members.AttrGetterFunc
	warnLimiters *util.LimiterRegistry
}

func New(reg *registry.Registry, getattr members.AttrGetterFunc) *Resolver {
	if getattr == nil {
		getattr = members.SafeGetAttr
	}
	return &Resolver{
		registry: reg,
		getattr:  getattr,
		// one warning per module name per second keeps repeated retreat
		// rounds from flooding the log
		warnLimiters: util.NewLimiterRegistry(1, 1),
	}
}

// SetWarnRate adjusts how many import-failure warnings per second are
// logged per module name.
func (r *Resolver) SetWarnRate(perSec float64) {
	if perSec <= 0 {
		return
	}
	r.warnLimiters = util.NewLimiterRegistry(perSec, 1)
}

// ResolveSymbol resolves target ("pkg.sub.Class.method") to an object.
// objType labels the expected entity kind in diagnostics ("class",
// "function", ...) and has no semantic effect.
func (r *Resolver) ResolveSymbol(target, objType string) (*ResolvedSymbol, error) {
	modname := target
	var objpath []string
	var importErr error
	var module object.Object

	for {
		slog.Debug("import attempt", "module", modname, "objpath", strings.Join(objpath, "."))
		mod, err := r.registry.Import(modname)
		if err == nil {
			module = mod
			break
		}
		importErr = err
		if r.warnLimiters.Get(modname).Allow(1) {
			slog.Warn("import failed", "module", modname, "error", err)
		}
		head, tail := util.SplitLastSegment(modname)
		if tail == "" {
			return nil, r.resolutionError(objType, modname, objpath, importErr)
		}
		// retry with the parent module; the segment becomes an attribute
		objpath = append([]string{tail}, objpath...)
		modname = head
	}

	obj := module
	var parent object.Object
	name := ""
	for _, attrname := range objpath {
		slog.Debug("attribute lookup", "attribute", attrname, "on", obj.TypeLabel())
		v, err := r.getattr(obj, attrname)
		if err != nil {
			observability.AttributeLookupsTotal.WithLabelValues(observability.OutcomeFailed).Inc()
			// When the retreat loop consumed segments, the earlier import
			// failure is the more truthful cause than a missing attribute
			// on some shorter prefix.
			cause := err
			if importErr != nil {
				cause = importErr
			}
			return nil, r.resolutionError(objType, modname, objpath, cause)
		}
		observability.AttributeLookupsTotal.WithLabelValues(observability.OutcomeOK).Inc()
		parent = obj
		obj = v
		name = attrname
	}

	return &ResolvedSymbol{
		ModuleName: modname,
		Module:     module,
		Parent:     parent,
		Name:       name,
		Object:     obj,
	}, nil
}

// resolutionError builds the single structured failure a resolution call
// may produce, classifying the underlying cause.
func (r *Resolver) resolutionError(objType, modname string, objpath []string, cause error) error {
	var msg string
	if len(objpath) > 0 {
		msg = fmt.Sprintf("failed to import %s %q from module %q", objType, strings.Join(objpath, "."), modname)
	} else {
		msg = fmt.Sprintf("failed to import %s %q", objType, modname)
	}

	var lp *registry.LoadPanic
	switch {
	case stderrors.As(cause, &lp):
		msg += "; the module executes a top-level statement and it might terminate the process"
	case nestedImportFailure(cause) != nil:
		msg += "; the following failure was raised during import:\n" + nestedImportFailure(cause).Error()
	default:
		msg += "; the following failure was raised:\n" + cause.Error()
	}

	err := errors.Wrap(cause, errors.CodeResolutionFailure, msg)
	err = errors.AddContext(err, errors.CtxModule, modname)
	if len(objpath) > 0 {
		err = errors.AddContext(err, errors.CtxSymbol, strings.Join(objpath, "."))
	}
	slog.Debug("resolution failed", "module", modname, "error", err)
	return err
}

// nestedImportFailure returns the inner import failure when the module's
// own initialization failed on a further import, nil otherwise.
func nestedImportFailure(cause error) error {
	var outer *errors.DomainError
	if !stderrors.As(cause, &outer) || outer.Code != errors.CodeImportFailure {
		return nil
	}
	if outer.Err != nil && errors.IsCode(outer.Err, errors.CodeImportFailure) {
		return outer.Err
	}
	return nil
}
