// Package wia adapts Windows Image Acquisition to the abstract
// backend contract. WIA sessions are COM objects: apartment threading
// means a session must be created, driven and released on the same
// OS thread, which must call CoInitialize before the first WIA call
// and CoUninitialize when the backend is dropped. Session objects are
// pinned to the thread that created them.
//
// No COM bridge is wired up in this build; wia_windows.go and
// wia_other.go both report an installation with nothing plugged in.
package wia
