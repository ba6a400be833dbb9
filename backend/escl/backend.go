package escl

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/scanbridge/scanbridge/abstract"
	"github.com/scanbridge/scanbridge/escl"
	"github.com/scanbridge/scanbridge/internal/logging"
	"github.com/scanbridge/scanbridge/transport"
	"github.com/scanbridge/scanbridge/xmldoc"
)

// Backend implements abstract.Backend against network scanners
// speaking the eSCL (AirPrint/AirScan) protocol, discovered over
// mDNS.
//
// A capability-fetch or job-creation breaker trips after repeated
// HTTP failures to a device, so a scanner that's gone offline or
// stuck mid-job doesn't make every subsequent registry-wide
// Capabilities/StartScan call pay its full request timeout.
type Backend struct {
	client          *http.Client
	capTimeout      time.Duration
	discoveryWindow time.Duration

	mu      sync.RWMutex
	devices map[string]device

	breakers   sync.Map // device id -> *gobreaker.CircuitBreaker
}

// Option configures a [Backend].
type Option func(*Backend)

// WithDiscoveryWindow overrides [DefaultDiscoveryTimeout].
func WithDiscoveryWindow(d time.Duration) Option {
	return func(b *Backend) { b.discoveryWindow = d }
}

// WithHTTPClient overrides the client used for all eSCL requests.
// Mainly useful for tests, to point Backend at an httptest.Server.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) { b.client = c }
}

// NewBackend constructs an eSCL backend with no devices yet known;
// Enumerate populates the device table via mDNS discovery.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		client:          transport.NewClient(transport.ClientOptions{Timeout: transport.DefaultDocumentTimeout, InsecureSkipVerify: true}),
		capTimeout:      transport.DefaultCapabilityTimeout,
		discoveryWindow: DefaultDiscoveryTimeout,
		devices:         make(map[string]device),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements abstract.Backend.
func (b *Backend) Name() string { return "escl" }

// Kind implements abstract.Backend.
func (b *Backend) Kind() abstract.BackendKind { return abstract.BackendEscl }

// Enumerate implements abstract.Backend. It never returns an error: a
// discovery window that finds nothing just reports an empty list, the
// same way the registry would see a backend with no devices plugged
// in.
func (b *Backend) Enumerate(ctx context.Context) ([]abstract.ScannerInfo, error) {
	found := discover(ctx, b.discoveryWindow)

	b.mu.Lock()
	b.devices = make(map[string]device, len(found))
	for _, d := range found {
		b.devices[d.id] = d
	}
	b.mu.Unlock()

	infos := make([]abstract.ScannerInfo, 0, len(found))
	for _, d := range found {
		infos = append(infos, abstract.ScannerInfo{ID: d.id, Name: d.name, Backend: abstract.BackendEscl})
	}
	return infos, nil
}

// Capabilities implements abstract.Backend. It returns
// [abstract.ErrNotFound] if id isn't a device this backend has seen,
// and falls back to a conservative default capability set if the
// device is reachable but its ScannerCapabilities document can't be
// fetched or parsed, matching what a real AirScan client does rather
// than failing the whole operation over a flaky capabilities request.
func (b *Backend) Capabilities(ctx context.Context, id string) (abstract.Capabilities, error) {
	d, ok := b.lookup(id)
	if !ok {
		return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "device %s not known to the eSCL backend", id)
	}

	log := logging.Component("backend.escl")

	raw, err := b.breakerFor(id).Execute(func() (any, error) {
		return b.fetchCapabilities(ctx, d)
	})
	if err != nil {
		log.Warn().Err(err).Str("device", id).Msg("falling back to default capabilities")
		return defaultCapabilities(), nil
	}

	caps, ok := raw.(escl.ScannerCapabilities)
	if !ok {
		return defaultCapabilities(), nil
	}

	return toAbstractCapabilities(caps), nil
}

// StartScan implements abstract.Backend.
func (b *Backend) StartScan(ctx context.Context, id string, cfg abstract.ScanConfig) (abstract.Session, error) {
	d, ok := b.lookup(id)
	if !ok {
		return nil, abstract.NewError(abstract.ErrNotFound, "device %s not known to the eSCL backend", id)
	}

	return newSession(d, cfg, b.client, b.breakerFor(id)), nil
}

func (b *Backend) lookup(id string) (device, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	d, ok := b.devices[id]
	return d, ok
}

// breakerFor returns the circuit breaker guarding HTTP calls to the
// given device, creating one on first use.
func (b *Backend) breakerFor(id string) *gobreaker.CircuitBreaker {
	if cb, ok := b.breakers.Load(id); ok {
		return cb.(*gobreaker.CircuitBreaker)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "escl-" + id,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	actual, _ := b.breakers.LoadOrStore(id, cb)
	return actual.(*gobreaker.CircuitBreaker)
}

func (b *Backend) fetchCapabilities(ctx context.Context, d device) (escl.ScannerCapabilities, error) {
	ctx, cancel := context.WithTimeout(ctx, b.capTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL()+"/ScannerCapabilities", nil)
	if err != nil {
		return escl.ScannerCapabilities{}, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return escl.ScannerCapabilities{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return escl.ScannerCapabilities{}, abstract.NewError(abstract.ErrBackend, "ScannerCapabilities: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return escl.ScannerCapabilities{}, err
	}

	root, err := xmldoc.DecodeRoot(bytes.NewReader(body))
	if err != nil {
		return escl.ScannerCapabilities{}, err
	}

	return escl.DecodeScannerCapabilities(root)
}

// defaultCapabilities is the fallback reported when a device can't be
// queried, matching the widest set a plain AirScan-class flatbed
// scanner is expected to support.
func defaultCapabilities() abstract.Capabilities {
	return abstract.Capabilities{
		Sources:        []abstract.ScanSource{abstract.SourceFlatbed},
		Dpis:           []int{75, 150, 300, 600},
		ColorModes:     []abstract.ColorMode{abstract.ColorModeColor, abstract.ColorModeGray, abstract.ColorModeBW},
		PageSizes:      []abstract.PageSize{abstract.PageSizeA4, abstract.PageSizeLetter},
		SupportsDuplex: false,
	}
}

// toAbstractCapabilities flattens the richer eSCL capability document
// down to the backend-agnostic abstract.Capabilities shape the
// registry and callers deal in.
func toAbstractCapabilities(caps escl.ScannerCapabilities) abstract.Capabilities {
	var out abstract.Capabilities

	dpiSet := map[int]bool{}
	colorSet := map[abstract.ColorMode]bool{}

	addProfiles := func(ic *escl.InputCapabilities) {
		if ic == nil {
			return
		}
		for _, prof := range ic.Profiles {
			for _, dpi := range prof.SupportedResolutions.Dpis() {
				dpiSet[dpi] = true
			}
			if prof.ColorModes.Contains(escl.RGB24) || prof.ColorModes.Contains(escl.RGB48) {
				colorSet[abstract.ColorModeColor] = true
			}
			if prof.ColorModes.Contains(escl.Grayscale8) || prof.ColorModes.Contains(escl.Grayscale16) {
				colorSet[abstract.ColorModeGray] = true
			}
			if prof.ColorModes.Contains(escl.BlackAndWhite1) {
				colorSet[abstract.ColorModeBW] = true
			}
		}
	}

	if caps.Platen != nil {
		out.Sources = append(out.Sources, abstract.SourceFlatbed)
		addProfiles(caps.Platen)
	}
	if caps.ADFSimplex != nil {
		out.Sources = append(out.Sources, abstract.SourceADF)
		addProfiles(caps.ADFSimplex)
	}
	if caps.ADFDuplex != nil {
		out.Sources = append(out.Sources, abstract.SourceADFDuplex)
		out.SupportsDuplex = true
		addProfiles(caps.ADFDuplex)
	}

	for dpi := range dpiSet {
		out.Dpis = append(out.Dpis, dpi)
	}
	for cm := range colorSet {
		out.ColorModes = append(out.ColorModes, cm)
	}

	if len(out.Sources) == 0 {
		out.Sources = []abstract.ScanSource{abstract.SourceFlatbed}
	}
	if len(out.Dpis) == 0 {
		out.Dpis = defaultCapabilities().Dpis
	}
	if len(out.ColorModes) == 0 {
		out.ColorModes = defaultCapabilities().ColorModes
	}
	if len(out.PageSizes) == 0 {
		out.PageSizes = defaultCapabilities().PageSizes
	}

	return out
}
