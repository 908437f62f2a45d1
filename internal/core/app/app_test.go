package app

import (
	"context"
	"path/filepath"
	"testing"

	"docscope/internal/core/config"
	"docscope/internal/core/errors"
	"docscope/internal/core/ports"
	"docscope/internal/engine/object"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	a.Providers.RegisterProvider("pkg.sub", func() (object.Object, error) {
		class := object.NewClass("Widget", nil, map[string]object.Object{
			"render": &object.Function{Name: "render"},
		})
		return object.NewModule("pkg.sub", map[string]object.Object{
			"Widget": class,
		}), nil
	})
	return a
}

func TestResolveSymbolThroughService(t *testing.T) {
	a := newTestApp(t, nil)
	svc := a.ResolutionService()

	res, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "pkg.sub.Widget"})
	if err != nil {
		t.Fatal(err)
	}
	if res.ModuleName != "pkg.sub" || res.Name != "Widget" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.TypeLabel != "class" {
		t.Fatalf("expected class, got %q", res.TypeLabel)
	}
	if res.Mocked {
		t.Fatal("real module must not be reported as mocked")
	}
}

func TestResolveSymbolValidation(t *testing.T) {
	a := newTestApp(t, nil)
	svc := a.ResolutionService()

	_, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "  "})
	if !errors.IsCode(err, errors.CodeValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMockedModulesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Mock.Modules = []string{"numpy"}

	a := newTestApp(t, cfg)
	svc := a.ResolutionService()

	res, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "numpy.linalg.solve"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Mocked {
		t.Fatalf("configured mock must be reported, got %+v", res)
	}

	mocked, err := svc.MockedModules(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(mocked) == 0 {
		t.Fatal("mocked module list must record the import")
	}
}

func TestWarnIsErrorRejectsMockedResolution(t *testing.T) {
	cfg := config.Default()
	cfg.Mock.Modules = []string{"numpy"}
	cfg.Mock.WarnIsError = true

	a := newTestApp(t, cfg)
	svc := a.ResolutionService()

	_, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "numpy.linalg"})
	if !errors.IsCode(err, errors.CodeResolutionFailure) {
		t.Fatalf("mocked resolution must fail under warn_is_error, got %v", err)
	}

	// Real modules still resolve.
	if _, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "pkg.sub.Widget"}); err != nil {
		t.Fatal(err)
	}
}

func TestReloadSwapsMockSet(t *testing.T) {
	cfg := config.Default()
	cfg.Mock.Modules = []string{"numpy"}
	a := newTestApp(t, cfg)
	svc := a.ResolutionService()

	next := config.Default()
	next.Mock.Modules = []string{"scipy"}
	if err := a.Reload(next); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "numpy"}); err == nil {
		t.Fatal("previous mock set must be gone after reload")
	}
	if _, err := svc.ResolveSymbol(context.Background(), ports.ResolveRequest{Target: "scipy"}); err != nil {
		t.Fatalf("new mock set must be active, got %v", err)
	}
}

func TestWithMockScopedToCall(t *testing.T) {
	a := newTestApp(t, nil)
	svc := a.ResolutionService()
	ctx := context.Background()

	err := svc.WithMock(ctx, []string{"torch"}, func() error {
		_, err := svc.ResolveSymbol(ctx, ports.ResolveRequest{Target: "torch.nn"})
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ResolveSymbol(ctx, ports.ResolveRequest{Target: "torch.nn"}); err == nil {
		t.Fatal("scoped mock must not leak past the call")
	}
}

func TestEnumerateMembersWithStoreFacts(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Enabled = true
	cfg.DB.Path = filepath.Join(t.TempDir(), "facts.db")

	a := newTestApp(t, cfg)
	if err := a.AttrStore().UpsertDoc("pkg.sub.Widget", "color", "display color"); err != nil {
		t.Fatal(err)
	}

	svc := a.ResolutionService()
	res, err := svc.EnumerateMembers(context.Background(), "pkg.sub.Widget")
	if err != nil {
		t.Fatal(err)
	}

	byName := make(map[string]ports.MemberRecord, len(res.Members))
	for _, m := range res.Members {
		byName[m.Name] = m
	}
	if rec, ok := byName["render"]; !ok || !rec.DirectlyDefined {
		t.Fatalf("declared method must be a direct member, got %+v", byName)
	}
	if rec, ok := byName["color"]; !ok || !rec.DirectlyDefined {
		t.Fatalf("documented attribute must appear as direct member, got %+v", byName)
	}
}

func TestHealthCheck(t *testing.T) {
	cfg := config.Default()
	cfg.Mock.Modules = []string{"numpy"}
	a := newTestApp(t, cfg)

	status := NewHealthService(a).Check(context.Background())
	if status.Status != "up" {
		t.Fatalf("expected healthy app, got %+v", status)
	}
	if status.Components["registry"] != "ok" {
		t.Fatalf("registry component missing: %+v", status.Components)
	}
	if _, ok := status.Components["mocks"]; !ok {
		t.Fatalf("mocks component missing: %+v", status.Components)
	}
}
