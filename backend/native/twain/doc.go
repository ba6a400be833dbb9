// Package twain adapts the cross-platform TWAIN driver interface
// (available on Windows and macOS) to the abstract backend contract.
// A real binding opens the TWAIN data source manager, negotiates a
// data source, and drains its native transfer one in-memory blob at a
// time, synthesizing the PageStarted/PageData/PageComplete/
// JobComplete sequence the way the native-backend contract requires
// of any framework that completes a scan atomically.
//
// No TWAIN data source manager is wired up in this build;
// twain_supported.go reports a manager with nothing plugged in, on
// every platform.
package twain
