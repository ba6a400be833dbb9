package escl

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/scanbridge/scanbridge/abstract"
	"github.com/scanbridge/scanbridge/escl"
	"github.com/scanbridge/scanbridge/internal/logging"
)

// sessionState steps through the ScanJobs lifecycle.
//
// Page 0's PageStarted is synthesized right after job creation, per
// spec's own recommendation, before we know whether the device will
// deliver any document at all (stateFetchCurrent resolves that into
// either PageData or a document-less JobComplete). Every later page's
// PageStarted is synthesized only after fetchNextDocument has already
// confirmed there's a document to buffer (stateAwaitingNextPage), so
// a PageStarted is never emitted without a PageComplete to follow —
// the naive "synthesize eagerly after every PageComplete" approach
// can emit a trailing PageStarted when the feeder actually had no
// further page, breaking the session's well-formedness grammar.
type sessionState int

const (
	stateNotStarted sessionState = iota
	stateFetchCurrent
	stateCompletePending
	stateAwaitingNextPage
	stateGotNextPageData
	stateCompleted
)

// session implements abstract.Session against one eSCL ScanJobs
// resource.
type session struct {
	device  device
	cfg     abstract.ScanConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker

	mu           sync.Mutex
	state        sessionState
	jobURL       string
	pageIndex    int
	pendingMeta  abstract.PageMeta
	bufferedData []byte
}

func newSession(d device, cfg abstract.ScanConfig, client *http.Client, breaker *gobreaker.CircuitBreaker) *session {
	return &session{
		device:  d,
		cfg:     cfg,
		client:  client,
		breaker: breaker,
		state:   stateNotStarted,
	}
}

// NextEvent implements abstract.Session.
func (s *session) NextEvent(ctx context.Context) (abstract.ScanEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateNotStarted:
		if err := s.createJob(ctx); err != nil {
			return abstract.ScanEvent{}, err
		}
		s.state = stateFetchCurrent
		return abstract.PageStarted(s.pageIndex), nil

	case stateFetchCurrent:
		data, done, err := s.fetchNextDocument(ctx)
		if err != nil {
			return abstract.ScanEvent{}, err
		}
		if done {
			s.deleteJob(ctx)
			s.state = stateCompleted
			return abstract.JobComplete(), nil
		}

		s.pendingMeta = s.pageMeta()
		s.state = stateCompletePending
		return abstract.PageData(data), nil

	case stateCompletePending:
		meta := s.pendingMeta
		s.state = stateAwaitingNextPage
		return abstract.PageComplete(meta), nil

	case stateAwaitingNextPage:
		data, done, err := s.fetchNextDocument(ctx)
		if err != nil {
			return abstract.ScanEvent{}, err
		}
		if done {
			s.deleteJob(ctx)
			s.state = stateCompleted
			return abstract.JobComplete(), nil
		}

		s.pageIndex++
		s.bufferedData = data
		s.state = stateGotNextPageData
		return abstract.PageStarted(s.pageIndex), nil

	case stateGotNextPageData:
		data := s.bufferedData
		s.bufferedData = nil
		s.pendingMeta = s.pageMeta()
		s.state = stateCompletePending
		return abstract.PageData(data), nil

	case stateCompleted:
		return abstract.ScanEvent{}, abstract.NewError(abstract.ErrOther, "session already completed")
	}

	return abstract.ScanEvent{}, abstract.NewError(abstract.ErrOther, "unreachable session state")
}

// pageMeta builds the PageMeta for the session's current pageIndex.
// Dimensions come from the requested config, not the delivered bytes:
// eSCL devices are expected to honor the ScanSettings they were given.
func (s *session) pageMeta() abstract.PageMeta {
	return abstract.PageMeta{
		Index:     s.pageIndex,
		WidthPx:   escl.MMToPWG(float64(s.cfg.PageSize.WidthMM), s.cfg.Dpi),
		HeightPx:  escl.MMToPWG(float64(s.cfg.PageSize.HeightMM), s.cfg.Dpi),
		Dpi:       s.cfg.Dpi,
		ColorMode: s.cfg.ColorMode,
	}
}

// Close implements abstract.Session. It's idempotent: calling it
// after the session already drained to completion, or more than
// once, is a no-op beyond the best-effort DELETE.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateCompleted || s.jobURL == "" {
		return nil
	}
	s.deleteJob(context.Background())
	s.state = stateCompleted
	return nil
}

func (s *session) createJob(ctx context.Context) error {
	settings := toWireSettings(s.cfg)
	body, err := settings.ToXML().EncodeString()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.device.baseURL()+"/ScanJobs", bytes.NewReader([]byte(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := s.do(req)
	if err != nil {
		return abstract.WrapError(abstract.ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return abstract.NewError(abstract.ErrBackend, "ScanJobs: HTTP %d: %s", resp.StatusCode, respBody)
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return abstract.NewError(abstract.ErrBackend, "ScanJobs response carried no Location header")
	}
	s.jobURL = loc
	return nil
}

func (s *session) fetchNextDocument(ctx context.Context) (data []byte, done bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.jobURL+"/NextDocument", nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "image/jpeg,image/png,application/pdf")

	resp, err := s.do(req)
	if err != nil {
		return nil, false, abstract.WrapError(abstract.ErrBackend, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, false, abstract.WrapError(abstract.ErrBackend, err)
		}
		return body, false, nil
	case http.StatusNotFound:
		return nil, true, nil
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, false, abstract.NewError(abstract.ErrBackend, "NextDocument: HTTP %d: %s", resp.StatusCode, respBody)
	}
}

// deleteJob makes a best-effort attempt to release the device-side
// job resource. Failure is logged, not propagated: the caller is
// already done with the session either way.
func (s *session) deleteJob(ctx context.Context) {
	if s.jobURL == "" {
		return
	}

	log := logging.Component("backend.escl.session")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.jobURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("job", s.jobURL).Msg("failed to build job delete request")
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("job", s.jobURL).Msg("failed to delete scan job")
		return
	}
	resp.Body.Close()
}

func (s *session) do(req *http.Request) (*http.Response, error) {
	raw, err := s.breaker.Execute(func() (any, error) {
		return s.client.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return raw.(*http.Response), nil
}

// toWireSettings translates the backend-agnostic ScanConfig into the
// eSCL wire format's ScanSettings document.
func toWireSettings(cfg abstract.ScanConfig) escl.ScanSettings {
	input := escl.InputPlaten
	duplex := false
	switch cfg.Source {
	case abstract.SourceADF:
		input = escl.InputFeeder
	case abstract.SourceADFDuplex:
		input = escl.InputFeeder
		duplex = true
	}
	if cfg.Duplex {
		duplex = true
	}

	var colorMode escl.ColorMode
	switch cfg.ColorMode {
	case abstract.ColorModeColor:
		colorMode = escl.RGB24
	case abstract.ColorModeGray:
		colorMode = escl.Grayscale8
	case abstract.ColorModeBW:
		colorMode = escl.BlackAndWhite1
	}

	width := escl.MMToPWG(float64(cfg.PageSize.WidthMM), cfg.Dpi)
	height := escl.MMToPWG(float64(cfg.PageSize.HeightMM), cfg.Dpi)
	if area, ok := cfg.Area.Get(); ok {
		width = escl.MMToPWG(area.WidthMM, cfg.Dpi)
		height = escl.MMToPWG(area.HeightMM, cfg.Dpi)
	}

	return escl.ScanSettings{
		Version:        escl.Version{Major: 2, Minor: 1},
		Intent:         "Document",
		InputSource:    input,
		Duplex:         duplex,
		ColorMode:      colorMode,
		XResolution:    cfg.Dpi,
		YResolution:    cfg.Dpi,
		Width:          width,
		Height:         height,
		DocumentFormat: "image/jpeg",
	}
}
