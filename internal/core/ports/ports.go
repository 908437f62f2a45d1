// Package ports declares the driving interfaces the application core
// exposes to adapters (CLI, observability server, tests).
package ports

import (
	"context"
)

// ResolveRequest defines one symbol resolution for driving adapters.
type ResolveRequest struct {
	// Target is the dotted path, e.g. "pkg.sub.Class.method".
	Target string
	// ObjectType labels the expected entity in diagnostics ("class",
	// "function", ...). Empty falls back to the configured default.
	ObjectType string
}

// ResolveResult summarizes one resolved symbol.
type ResolveResult struct {
	ModuleName string
	Name       string
	TypeLabel  string
	Display    string
	Mocked     bool
}

// MemberRecord is one enumerated member of a resolved entity.
type MemberRecord struct {
	Name            string
	DirectlyDefined bool
	TypeLabel       string
	Display         string
}

// MembersResult carries the enumerated member set of a target.
type MembersResult struct {
	Target  string
	Members []MemberRecord
}

// ResolutionService exposes resolution and enumeration use cases.
type ResolutionService interface {
	ResolveSymbol(ctx context.Context, req ResolveRequest) (ResolveResult, error)
	EnumerateMembers(ctx context.Context, target string) (MembersResult, error)
	MockedModules(ctx context.Context) ([]string, error)
	WithMock(ctx context.Context, names []string, fn func() error) error
}
