package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docscope/internal/core/errors"
	"docscope/internal/core/ports"
	"docscope/internal/engine/members"
	"docscope/internal/engine/mock"
	"docscope/internal/shared/observability"
)

type resolutionService struct {
	app *App
}

var _ ports.ResolutionService = (*resolutionService)(nil)

func NewResolutionService(app *App) ports.ResolutionService {
	return &resolutionService{app: app}
}

func (a *App) ResolutionService() ports.ResolutionService {
	return NewResolutionService(a)
}

func (s *resolutionService) ResolveSymbol(ctx context.Context, req ports.ResolveRequest) (ports.ResolveResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "resolutionService.ResolveSymbol",
		trace.WithAttributes(attribute.String("target", req.Target)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ports.ResolveResult{}, err
	}
	if s.app == nil {
		return ports.ResolveResult{}, fmt.Errorf("app is required")
	}
	target := strings.TrimSpace(req.Target)
	if target == "" {
		return ports.ResolveResult{}, errors.New(errors.CodeValidationError, "resolve target must not be empty")
	}
	objType := req.ObjectType
	if objType == "" {
		objType = s.app.Config.Resolve.ObjectType
	}

	start := time.Now()
	sym, err := s.app.Resolver.ResolveSymbol(target, objType)
	if err != nil {
		observability.ResolutionDuration.WithLabelValues(observability.OutcomeFailed).Observe(time.Since(start).Seconds())
		return ports.ResolveResult{}, errors.AddContext(err, errors.CtxOperation, "resolve_symbol")
	}
	observability.ResolutionDuration.WithLabelValues(observability.OutcomeOK).Observe(time.Since(start).Seconds())

	mocked := false
	if inst := s.app.Mocks(); inst != nil {
		mocked = inst.Matches(sym.ModuleName)
	}
	if mocked && s.app.Config.Mock.WarnIsError {
		err := errors.New(errors.CodeResolutionFailure,
			fmt.Sprintf("%q resolved to a mock substitute and warn_is_error is set", target))
		return ports.ResolveResult{}, errors.AddContext(err, errors.CtxModule, sym.ModuleName)
	}

	return ports.ResolveResult{
		ModuleName: sym.ModuleName,
		Name:       sym.Name,
		TypeLabel:  sym.Object.TypeLabel(),
		Display:    sym.Object.Inspect(),
		Mocked:     mocked,
	}, nil
}

func (s *resolutionService) EnumerateMembers(ctx context.Context, target string) (ports.MembersResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "resolutionService.EnumerateMembers",
		trace.WithAttributes(attribute.String("target", target)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ports.MembersResult{}, err
	}
	if s.app == nil {
		return ports.MembersResult{}, fmt.Errorf("app is required")
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return ports.MembersResult{}, errors.New(errors.CodeValidationError, "member target must not be empty")
	}

	sym, err := s.app.Resolver.ResolveSymbol(target, s.app.Config.Resolve.ObjectType)
	if err != nil {
		return ports.MembersResult{}, errors.AddContext(err, errors.CtxOperation, "enumerate_members")
	}

	enumerated := members.Enumerate(sym.Object, strings.Split(target, "."), members.SafeGetAttr, s.app.Analyzer())

	records := make([]ports.MemberRecord, 0, len(enumerated))
	for _, attr := range enumerated {
		records = append(records, ports.MemberRecord{
			Name:            attr.Name,
			DirectlyDefined: attr.DirectlyDefined,
			TypeLabel:       attr.Value.TypeLabel(),
			Display:         attr.Value.Inspect(),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	return ports.MembersResult{Target: target, Members: records}, nil
}

func (s *resolutionService) MockedModules(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.app == nil {
		return nil, fmt.Errorf("app is required")
	}
	inst := s.app.Mocks()
	if inst == nil {
		return nil, nil
	}
	return inst.MockedModules(), nil
}

// WithMock runs fn with additional modules mocked, restoring the
// registry afterwards even when fn fails.
func (s *resolutionService) WithMock(ctx context.Context, names []string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.app == nil {
		return fmt.Errorf("app is required")
	}
	return mock.WithMock(s.app.Registry, names, fn)
}
