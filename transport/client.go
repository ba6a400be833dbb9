package transport

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Default timeouts used by the eSCL backend, per the scan lifecycle:
// capability fetches and job creation are short request/response
// round trips, while NextDocument may legitimately block for minutes
// while the scanner head moves and the page is digitized.
const (
	DefaultCapabilityTimeout = 30 * time.Second
	DefaultDocumentTimeout   = 120 * time.Second
)

// ClientOptions configures [NewClient].
type ClientOptions struct {
	// Timeout bounds a single request/response round trip. Zero
	// means no timeout (the caller is expected to use
	// context.Context deadlines instead).
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	// Network scanners overwhelmingly present self-signed
	// certificates on their HTTPS port, so eSCL clients default to
	// true; it only affects traffic used to reach devices addressed
	// by the user or discovered on the local network.
	InsecureSkipVerify bool
}

// NewClient builds an *http.Client suitable for talking to an eSCL
// device.
func NewClient(opts ClientOptions) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec
		},
	}

	return &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}
}
