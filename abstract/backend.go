package abstract

import "context"

// Backend is implemented by every scanning framework the registry
// can route to: the eSCL network backend and the native WIA/ICA/
// TWAIN/SANE adapters.
//
// Enumerate must never fail outright: a backend that can't currently
// see any devices (discovery window still open, framework not
// installed) returns an empty list rather than an error, so the
// registry can still query the backends that do have something to
// report. Capabilities and StartScan return [ErrNotFound] when id
// doesn't belong to this backend, which the registry uses to try the
// next one.
type Backend interface {
	// Name is a short, stable identifier for logging and metrics.
	Name() string

	// Kind identifies the framework this backend wraps.
	Kind() BackendKind

	// Enumerate lists the devices currently visible to this backend.
	Enumerate(ctx context.Context) ([]ScannerInfo, error)

	// Capabilities fetches the capabilities of the device identified
	// by id.
	Capabilities(ctx context.Context, id string) (Capabilities, error)

	// StartScan begins a scan job against the device identified by
	// id and returns a [Session] to pull events from.
	StartScan(ctx context.Context, id string, cfg ScanConfig) (Session, error)
}

// Session represents one in-progress (or finished) scan job.
//
// NextEvent is pull-based: the caller calls it repeatedly until it
// returns a [JobComplete] event or an error. Implementations must
// make a best-effort attempt to release any device-side job state
// (e.g. DELETE the eSCL job resource) once the session is done,
// whether that's because the caller drained it to JobComplete or
// abandoned it early by calling Close.
type Session interface {
	// NextEvent blocks until the next [ScanEvent] is available.
	NextEvent(ctx context.Context) (ScanEvent, error)

	// Close releases any resources held by the session. It is
	// idempotent and safe to call after the session has already
	// reached JobComplete.
	Close() error
}
