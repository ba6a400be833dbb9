//go:build darwin

package ica

import (
	"context"

	"github.com/scanbridge/scanbridge/abstract"
)

// Backend is the Image Capture adapter.
type Backend struct{}

// NewBackend constructs the ICA adapter.
func NewBackend() *Backend { return &Backend{} }

// Name implements abstract.Backend.
func (*Backend) Name() string { return "ica" }

// Kind implements abstract.Backend.
func (*Backend) Kind() abstract.BackendKind { return abstract.BackendIca }

// Enumerate implements abstract.Backend. No Image Capture bridge is
// wired up, so this reports no devices rather than failing.
func (*Backend) Enumerate(ctx context.Context) ([]abstract.ScannerInfo, error) {
	return nil, nil
}

// Capabilities implements abstract.Backend.
func (*Backend) Capabilities(ctx context.Context, id string) (abstract.Capabilities, error) {
	return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "device %s not known to the ICA backend", id)
}

// StartScan implements abstract.Backend.
func (*Backend) StartScan(ctx context.Context, id string, cfg abstract.ScanConfig) (abstract.Session, error) {
	return nil, abstract.NewError(abstract.ErrNotImplemented, "ICA scanning is not wired into this build")
}
