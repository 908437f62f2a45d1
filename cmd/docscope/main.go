package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"docscope/internal/core/app"
	"docscope/internal/core/config"
	"docscope/internal/core/ports"
	"docscope/internal/shared/observability"
	"docscope/internal/ui/cli"
)

var (
	configPath = flag.String("config", "./docscope.toml", "Path to config file")
	mockList   = flag.String("mock", "", "Comma-separated module names to mock for this run")
	members    = flag.Bool("members", false, "Enumerate members of each target instead of resolving only")
	objType    = flag.String("type", "", "Expected entity kind used in diagnostics (class, function, ...)")
	serve      = flag.Bool("serve", false, "Keep running with the observability server and config reload")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("docscope v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./docscope.toml" {
			cfg, err = config.Load("./docscope.example.toml")
			if err != nil && os.IsNotExist(err) {
				cfg, err = config.Default(), nil
			}
		}
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	config.ApplyEnvOverrides(cfg)

	if *mockList != "" {
		cfg.Mock.Modules = append(cfg.Mock.Modules, splitMockFlag(*mockList)...)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	ctx := context.Background()
	defer a.Close(ctx)

	if cfg.Observability.Enabled && cfg.Observability.EnableTracing {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	svc := a.ResolutionService()

	exitCode := 0
	for _, target := range flag.Args() {
		if err := processTarget(ctx, svc, target); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			exitCode = 1
		}
	}

	if !*serve {
		os.Exit(exitCode)
	}

	runServer(ctx, cfg, a, svc)
}

func processTarget(ctx context.Context, svc ports.ResolutionService, target string) error {
	if *members {
		res, err := svc.EnumerateMembers(ctx, target)
		if err != nil {
			return err
		}
		fmt.Print(cli.FormatMembers(res))
		return nil
	}

	res, err := svc.ResolveSymbol(ctx, ports.ResolveRequest{Target: target, ObjectType: *objType})
	if err != nil {
		return err
	}
	fmt.Print(cli.FormatResolveResult(res))
	return nil
}

func runServer(ctx context.Context, cfg *config.Config, a *app.App, svc ports.ResolutionService) {
	var obs *cli.ObservabilityServer
	if cfg.Observability.Enabled {
		addr := fmt.Sprintf(":%d", cfg.Observability.Port)
		obs = cli.NewObservabilityServer(addr, app.NewHealthService(a), svc)
		if err := obs.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
	}

	watcher := config.NewWatcher(*configPath, func(next *config.Config) {
		if err := a.Reload(next); err != nil {
			slog.Error("failed to apply reloaded config", "error", err)
		}
	})
	if err := watcher.Start(ctx); err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		defer watcher.Stop()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	if obs != nil {
		_ = obs.Stop(ctx)
	}
}

func splitMockFlag(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
