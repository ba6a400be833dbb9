// Package cabi is the C-ABI boundary described in spec §4.5/§6: a
// singleton registry, a monotonically increasing session-id counter,
// and a map from session id to live session, all exported as
// //export functions a host process can call across the cgo
// boundary. No Go type ever crosses the boundary directly — every
// exported function takes and returns C-friendly structs built from
// fixed-width ints, C strings, and raw pointers, with a paired
// free-function for anything heap-allocated on this side.
//
// Grounded on original_source/papyr_core/src/ffi.rs: the same global
// statics (registry, session table, next-id counter), the same
// function names (papyr_init, papyr_list_scanners, ...) translated to
// the scanbridge_ prefix, and the same numeric encodings from spec §6.
package cabi
