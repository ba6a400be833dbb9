// Package sane adapts the SANE (Scanner Access Now Easy) daemon
// interface, the standard Linux/BSD scanner API, to the abstract
// backend contract. A real binding opens libsane via sane_init,
// enumerates devices with sane_get_devices, and drives a scan with
// sane_open/sane_start/sane_read, synthesizing the
// PageStarted/PageData/PageComplete/JobComplete sequence from SANE's
// single continuous sane_read stream the way the native-backend
// contract requires of any framework that doesn't expose discrete
// per-chunk progress the way eSCL's NextDocument polling does.
//
// No libsane binding is wired up in this build; sane_supported.go and
// sane_other.go both report a daemon with nothing plugged in.
package sane
