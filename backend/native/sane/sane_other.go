//go:build !linux && !freebsd

package sane

import (
	"context"

	"github.com/scanbridge/scanbridge/abstract"
)

// Backend is a stand-in for platforms without a SANE daemon: SANE is
// a Linux/BSD thing, so this backend never has anything to report.
type Backend struct{}

// NewBackend constructs the SANE adapter.
func NewBackend() *Backend { return &Backend{} }

// Name implements abstract.Backend.
func (*Backend) Name() string { return "sane" }

// Kind implements abstract.Backend.
func (*Backend) Kind() abstract.BackendKind { return abstract.BackendSane }

// Enumerate implements abstract.Backend.
func (*Backend) Enumerate(ctx context.Context) ([]abstract.ScannerInfo, error) {
	return nil, nil
}

// Capabilities implements abstract.Backend.
func (*Backend) Capabilities(ctx context.Context, id string) (abstract.Capabilities, error) {
	return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "device %s not known to the SANE backend", id)
}

// StartScan implements abstract.Backend.
func (*Backend) StartScan(ctx context.Context, id string, cfg abstract.ScanConfig) (abstract.Session, error) {
	return nil, abstract.NewError(abstract.ErrNotImplemented, "SANE is only available on Linux/BSD")
}
