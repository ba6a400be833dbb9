// Package ica adapts macOS's Image Capture framework to the abstract
// backend contract. A real binding would run on an Image Capture
// device-browser delegate and synthesize PageStarted/PageData/
// PageComplete/JobComplete from ICA's atomic "scan produced one
// file" completion callback, since ICA doesn't expose per-chunk
// progress the way eSCL's NextDocument polling does.
//
// No Image Capture bridge is wired up in this build; ica_darwin.go
// and ica_other.go both report a framework with nothing plugged in.
package ica
