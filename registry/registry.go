// Package registry implements the composition root described in
// spec §4.2: a flat, ordered list of backends that ListDevices fans
// discovery out to, and that Capabilities/StartScan route to by
// ownership. It never guesses at ownership — StartScan re-enumerates
// and only ever delegates to the backend whose own listing contains
// the requested device ID, so a coincidentally-accepted ID on the
// wrong backend can never be scanned.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/scanbridge/scanbridge/abstract"
	"github.com/scanbridge/scanbridge/internal/logging"
)

// Registry fans discovery out across every registered [abstract.Backend]
// and routes capability/scan requests to whichever one owns a device
// ID. Order reflects discovery concatenation order only, not
// priority; a Registry is safe for concurrent use, since the backends
// it wraps are required to be safe for concurrent discovery and
// capability queries by their own contract.
type Registry struct {
	backends []abstract.Backend
}

// New builds a Registry over the given backends, in the order
// ListDevices should concatenate their results.
func New(backends ...abstract.Backend) *Registry {
	return &Registry{backends: backends}
}

// ListDevices concatenates every backend's Enumerate output. Device
// IDs are expected to be unique across backends by construction (each
// backend prefixes its own namespace); if a duplicate does occur, the
// first occurrence wins and the collision is logged and counted,
// rather than silently or fatally dropped.
func (r *Registry) ListDevices(ctx context.Context) []abstract.ScannerInfo {
	log := logging.Component("registry")

	seen := make(map[string]bool)
	var out []abstract.ScannerInfo

	for _, b := range r.backends {
		start := time.Now()
		infos, err := b.Enumerate(ctx)
		discoveryDuration.WithLabelValues(b.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			// Enumerate is contractually not allowed to fail; a
			// backend that does so anyway is treated the same as one
			// that found nothing, logged as a bug rather than
			// propagated.
			log.Error().Err(err).Str("backend", b.Name()).Msg("backend.Enumerate returned an error; treating as empty")
			continue
		}

		devicesDiscovered.WithLabelValues(b.Name()).Set(float64(len(infos)))

		for _, info := range infos {
			if seen[info.ID] {
				duplicateDeviceIDs.Inc()
				log.Warn().Str("id", info.ID).Str("backend", b.Name()).Msg("duplicate device id from backend; keeping the first one seen")
				continue
			}
			seen[info.ID] = true
			out = append(out, info)
		}
	}

	return out
}

// Capabilities tries each backend in order until one succeeds or
// reports something other than [abstract.ErrNotFound]. If every
// backend reports NotFound, Capabilities does too; any other error is
// propagated immediately without trying the remaining backends,
// since a communication failure isn't evidence the device belongs
// elsewhere.
func (r *Registry) Capabilities(ctx context.Context, id string) (abstract.Capabilities, error) {
	log := logging.Component("registry")

	for _, b := range r.backends {
		caps, err := b.Capabilities(ctx, id)
		switch {
		case err == nil:
			capabilityRequests.WithLabelValues(b.Name(), "ok").Inc()
			return caps, nil

		case isNotFound(err):
			continue

		default:
			capabilityRequests.WithLabelValues(b.Name(), "error").Inc()
			log.Warn().Err(err).Str("backend", b.Name()).Str("id", id).Msg("capability query failed")
			return abstract.Capabilities{}, err
		}
	}

	capabilityRequests.WithLabelValues("none", "not_found").Inc()
	return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "device %s not found in any backend", id)
}

// StartScan determines which backend owns id by running Enumerate
// across all backends and finding the one whose listing contains it,
// then delegates StartScan to that backend only. This is the
// ownership-by-enumeration strategy spec §4.2 calls out as the safe
// default (the ID-prefix shortcut is also acceptable, but requires
// every backend to cooperate on a shared prefix convention that
// Enumerate-based routing doesn't need).
func (r *Registry) StartScan(ctx context.Context, id string, cfg abstract.ScanConfig) (abstract.Session, error) {
	owner := r.findOwner(ctx, id)
	if owner == nil {
		scanStarts.WithLabelValues("none", "not_found").Inc()
		return nil, abstract.NewError(abstract.ErrNotFound, "device %s not found in any backend", id)
	}

	session, err := owner.StartScan(ctx, id, cfg)
	if err != nil {
		scanStarts.WithLabelValues(owner.Name(), "error").Inc()
		return nil, err
	}

	scanStarts.WithLabelValues(owner.Name(), "ok").Inc()
	return session, nil
}

// findOwner returns the backend whose Enumerate output currently
// contains id, or nil if none does.
func (r *Registry) findOwner(ctx context.Context, id string) abstract.Backend {
	for _, b := range r.backends {
		infos, err := b.Enumerate(ctx)
		if err != nil {
			continue
		}
		for _, info := range infos {
			if info.ID == id {
				return b
			}
		}
	}
	return nil
}

// isNotFound reports whether err is an [*abstract.Error] of kind
// [abstract.ErrNotFound].
func isNotFound(err error) bool {
	var aerr *abstract.Error
	return errors.As(err, &aerr) && aerr.Kind == abstract.ErrNotFound
}
