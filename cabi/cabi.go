package cabi

import (
	"sync"

	"github.com/scanbridge/scanbridge/backend/escl"
	"github.com/scanbridge/scanbridge/backend/native/ica"
	"github.com/scanbridge/scanbridge/backend/native/sane"
	"github.com/scanbridge/scanbridge/backend/native/twain"
	"github.com/scanbridge/scanbridge/backend/native/wia"
	"github.com/scanbridge/scanbridge/registry"
)

// state holds the process-wide singletons spec §4.5 calls for: one
// registry and one session table, built on Init and torn down on
// Cleanup. Guarded by mu so concurrent Init/Cleanup calls from a host
// embedder can't race each other; the exported functions in
// exports.go hold the C-string/unsafe.Pointer plumbing and call
// through to the methods below.
var (
	stateMu  sync.Mutex
	reg      *registry.Registry
	sessions *sessionTable
)

// initState builds the registry (eSCL plus every native adapter) and a
// fresh session table. Idempotent: calling it again while already
// initialized rebuilds both from scratch, matching papyr_init's
// behavior of simply overwriting the global statics.
func initState() {
	stateMu.Lock()
	defer stateMu.Unlock()

	reg = registry.New(
		escl.NewBackend(),
		wia.NewBackend(),
		ica.NewBackend(),
		twain.NewBackend(),
		sane.NewBackend(),
	)
	sessions = newSessionTable()
}

// cleanupState tears down the singletons. After this call, every
// other entry point in this package behaves as if Init had never been
// called, until Init is called again.
func cleanupState() {
	stateMu.Lock()
	defer stateMu.Unlock()

	if sessions != nil {
		sessions.reset()
	}
	reg = nil
	sessions = nil
}

// currentState returns the live registry and session table, or false
// if initState hasn't been called yet (or cleanupState has run since).
func currentState() (*registry.Registry, *sessionTable, bool) {
	stateMu.Lock()
	defer stateMu.Unlock()
	return reg, sessions, reg != nil
}
