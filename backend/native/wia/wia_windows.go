//go:build windows

package wia

import (
	"context"

	"github.com/scanbridge/scanbridge/abstract"
)

// Backend is the WIA adapter. It holds no state here: a real
// implementation would own the apartment-pinned COM device manager
// handle acquired by CoInitialize.
type Backend struct{}

// NewBackend constructs the WIA adapter.
func NewBackend() *Backend { return &Backend{} }

// Name implements abstract.Backend.
func (*Backend) Name() string { return "wia" }

// Kind implements abstract.Backend.
func (*Backend) Kind() abstract.BackendKind { return abstract.BackendWia }

// Enumerate implements abstract.Backend. No COM bridge is wired up,
// so this reports no devices rather than failing the discovery pass.
func (*Backend) Enumerate(ctx context.Context) ([]abstract.ScannerInfo, error) {
	return nil, nil
}

// Capabilities implements abstract.Backend.
func (*Backend) Capabilities(ctx context.Context, id string) (abstract.Capabilities, error) {
	return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "device %s not known to the WIA backend", id)
}

// StartScan implements abstract.Backend.
func (*Backend) StartScan(ctx context.Context, id string, cfg abstract.ScanConfig) (abstract.Session, error) {
	return nil, abstract.NewError(abstract.ErrNotImplemented, "WIA scanning is not wired into this build")
}
