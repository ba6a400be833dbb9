//go:build linux || freebsd

package sane

import (
	"context"

	"github.com/scanbridge/scanbridge/abstract"
)

// Backend is the SANE adapter.
type Backend struct{}

// NewBackend constructs the SANE adapter.
func NewBackend() *Backend { return &Backend{} }

// Name implements abstract.Backend.
func (*Backend) Name() string { return "sane" }

// Kind implements abstract.Backend.
func (*Backend) Kind() abstract.BackendKind { return abstract.BackendSane }

// Enumerate implements abstract.Backend. No libsane binding is wired
// up, so this reports no devices rather than failing the registry's
// discovery pass.
func (*Backend) Enumerate(ctx context.Context) ([]abstract.ScannerInfo, error) {
	return nil, nil
}

// Capabilities implements abstract.Backend.
func (*Backend) Capabilities(ctx context.Context, id string) (abstract.Capabilities, error) {
	return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "device %s not known to the SANE backend", id)
}

// StartScan implements abstract.Backend.
func (*Backend) StartScan(ctx context.Context, id string, cfg abstract.ScanConfig) (abstract.Session, error) {
	return nil, abstract.NewError(abstract.ErrNotImplemented, "SANE scanning is not wired into this build")
}
