package escl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbridge/scanbridge/abstract"
)

// testDevice points a device at an httptest.Server's host:port.
func testDevice(t *testing.T, ts *httptest.Server) device {
	t.Helper()
	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return device{id: "test-device", name: "Test Device", host: u.Hostname(), port: port}
}

func noTripBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"})
}

// TestSessionSinglePage covers spec scenario S1: one flatbed page,
// then a 404 NextDocument ending the job.
func TestSessionSinglePage(t *testing.T) {
	var deletes int32
	mux := http.NewServeMux()
	mux.HandleFunc("/eSCL/ScanJobs", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Location", "http://"+r.Host+"/eSCL/ScanJobs/7")
		w.WriteHeader(http.StatusCreated)
	})

	var docCalls int32
	mux.HandleFunc("/eSCL/ScanJobs/7/NextDocument", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&docCalls, 1)
		if n == 1 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/eSCL/ScanJobs/7", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			atomic.AddInt32(&deletes, 1)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	d := testDevice(t, ts)
	cfg := abstract.ScanConfig{
		Source:    abstract.SourceFlatbed,
		Dpi:       150,
		ColorMode: abstract.ColorModeColor,
		PageSize:  abstract.PageSizeA4,
	}
	s := newSession(d, cfg, ts.Client(), noTripBreaker())
	ctx := context.Background()

	ev, err := s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventPageStarted, ev.Type)
	assert.Equal(t, 0, ev.Index)

	ev, err = s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventPageData, ev.Type)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0}, ev.Data)

	ev, err = s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventPageComplete, ev.Type)
	assert.Equal(t, 0, ev.Meta.Index)

	ev, err = s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventJobComplete, ev.Type)

	assert.EqualValues(t, 1, atomic.LoadInt32(&deletes))
}

// TestSessionTwoPages covers spec scenario S2: an ADF feed of two
// pages before the feeder runs dry.
func TestSessionTwoPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/eSCL/ScanJobs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "http://"+r.Host+"/eSCL/ScanJobs/9")
		w.WriteHeader(http.StatusCreated)
	})

	pages := [][]byte{{0x01, 0x02}, {0x03, 0x04}}
	var docCalls int32
	mux.HandleFunc("/eSCL/ScanJobs/9/NextDocument", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&docCalls, 1)
		if int(n) <= len(pages) {
			w.WriteHeader(http.StatusOK)
			w.Write(pages[n-1])
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/eSCL/ScanJobs/9", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	d := testDevice(t, ts)
	cfg := abstract.ScanConfig{
		Source:    abstract.SourceADF,
		Dpi:       300,
		ColorMode: abstract.ColorModeGray,
		PageSize:  abstract.PageSizeLetter,
	}
	s := newSession(d, cfg, ts.Client(), noTripBreaker())
	ctx := context.Background()

	var types []abstract.EventType
	var indexes []int
	for {
		ev, err := s.NextEvent(ctx)
		require.NoError(t, err)
		types = append(types, ev.Type)
		if ev.Type == abstract.EventPageStarted {
			indexes = append(indexes, ev.Index)
		}
		if ev.Type == abstract.EventJobComplete {
			break
		}
	}

	assert.Equal(t, []abstract.EventType{
		abstract.EventPageStarted,
		abstract.EventPageData,
		abstract.EventPageComplete,
		abstract.EventPageStarted,
		abstract.EventPageData,
		abstract.EventPageComplete,
		abstract.EventJobComplete,
	}, types)
	assert.Equal(t, []int{0, 1}, indexes)
}

// TestSessionJobCreationFailure covers spec scenario S3: the device
// refuses to create a scan job at all. No DELETE should ever be sent.
func TestSessionJobCreationFailure(t *testing.T) {
	var deletes int32
	mux := http.NewServeMux()
	mux.HandleFunc("/eSCL/ScanJobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/eSCL/ScanJobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			atomic.AddInt32(&deletes, 1)
		}
		w.WriteHeader(http.StatusNotFound)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	d := testDevice(t, ts)
	s := newSession(d, abstract.ScanConfig{Dpi: 150, PageSize: abstract.PageSizeA4}, ts.Client(), noTripBreaker())

	_, err := s.NextEvent(context.Background())
	require.Error(t, err)

	var abstractErr *abstract.Error
	require.ErrorAs(t, err, &abstractErr)
	assert.Equal(t, abstract.ErrBackend, abstractErr.Kind)
	assert.Contains(t, err.Error(), "503")

	assert.EqualValues(t, 0, atomic.LoadInt32(&deletes))
}

// TestSessionCloseIsIdempotent exercises spec property 5: calling
// Close twice, or after the session already drained, is a no-op.
func TestSessionCloseIsIdempotent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/eSCL/ScanJobs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "http://"+r.Host+"/eSCL/ScanJobs/1")
		w.WriteHeader(http.StatusCreated)
	})
	var deletes int32
	mux.HandleFunc("/eSCL/ScanJobs/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			atomic.AddInt32(&deletes, 1)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	d := testDevice(t, ts)
	s := newSession(d, abstract.ScanConfig{Dpi: 150, PageSize: abstract.PageSizeA4}, ts.Client(), noTripBreaker())

	_, err := s.NextEvent(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.EqualValues(t, 1, atomic.LoadInt32(&deletes))
}
