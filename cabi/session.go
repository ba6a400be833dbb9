package cabi

import (
	"sync"

	"github.com/scanbridge/scanbridge/abstract"
)

// sessionTable is the global session map described in spec §4.5/§6: a
// monotonically increasing uint32 counter starting at 1 (0 is
// reserved, negative values are the error sentinel at the C
// boundary), guarding a map from session id to live [abstract.Session].
//
// Grounded on original_source/papyr_core/src/ffi.rs's
// SCAN_SESSIONS/NEXT_SESSION_ID statics, translated from a
// process-global `unsafe` pair into a mutex-guarded struct so cabi's
// own package state stays encapsulated and testable without cgo.
type sessionTable struct {
	mu      sync.Mutex
	nextID  uint32
	entries map[uint32]abstract.Session
}

func newSessionTable() *sessionTable {
	return &sessionTable{nextID: 1, entries: make(map[uint32]abstract.Session)}
}

// add inserts session and returns its newly allocated id.
func (t *sessionTable) add(session abstract.Session) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.entries[id] = session
	return id
}

// get looks up a session by id. ok is false for id 0, for an unknown
// id, or after the session has been removed.
func (t *sessionTable) get(id uint32) (abstract.Session, bool) {
	if id == 0 {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.entries[id]
	return s, ok
}

// remove drops id from the table, closing its session first. Removing
// an unknown or already-removed id is a no-op.
func (t *sessionTable) remove(id uint32) {
	t.mu.Lock()
	s, ok := t.entries[id]
	delete(t.entries, id)
	t.mu.Unlock()

	if ok {
		_ = s.Close()
	}
}

// reset clears the table, closing every live session. Used by cleanup().
func (t *sessionTable) reset() {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[uint32]abstract.Session)
	t.nextID = 1
	t.mu.Unlock()

	for _, s := range entries {
		_ = s.Close()
	}
}
