package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbridge/scanbridge/abstract"
)

// fakeBackend is a minimal in-memory abstract.Backend used to drive
// the registry's routing logic without any real protocol.
type fakeBackend struct {
	name    string
	kind    abstract.BackendKind
	devices []abstract.ScannerInfo
	caps    map[string]abstract.Capabilities
	capErr  error
	anyID   bool // StartScan accepts every id, owned or not
}

func (b *fakeBackend) Name() string                 { return b.name }
func (b *fakeBackend) Kind() abstract.BackendKind    { return b.kind }
func (b *fakeBackend) Enumerate(context.Context) ([]abstract.ScannerInfo, error) {
	return b.devices, nil
}

func (b *fakeBackend) Capabilities(_ context.Context, id string) (abstract.Capabilities, error) {
	if b.capErr != nil {
		return abstract.Capabilities{}, b.capErr
	}
	caps, ok := b.caps[id]
	if !ok {
		return abstract.Capabilities{}, abstract.NewError(abstract.ErrNotFound, "unknown device %s", id)
	}
	return caps, nil
}

func (b *fakeBackend) StartScan(_ context.Context, id string, _ abstract.ScanConfig) (abstract.Session, error) {
	if b.anyID {
		return &fakeSession{owner: b.name}, nil
	}
	for _, d := range b.devices {
		if d.ID == id {
			return &fakeSession{owner: b.name}, nil
		}
	}
	return nil, abstract.NewError(abstract.ErrNotFound, "unknown device %s", id)
}

// fakeSession is a trivial abstract.Session that immediately
// completes with a single blank page, recording which backend created it.
type fakeSession struct {
	owner string
	step  int
}

func (s *fakeSession) NextEvent(context.Context) (abstract.ScanEvent, error) {
	defer func() { s.step++ }()
	switch s.step {
	case 0:
		return abstract.PageStarted(0), nil
	case 1:
		return abstract.PageData([]byte{0xFF}), nil
	case 2:
		return abstract.PageComplete(abstract.PageMeta{Index: 0}), nil
	case 3:
		return abstract.JobComplete(), nil
	default:
		return abstract.ScanEvent{}, abstract.NewError(abstract.ErrOther, "end of stream")
	}
}

func (s *fakeSession) Close() error { return nil }

func TestListDevicesConcatenatesAllBackends(t *testing.T) {
	a := &fakeBackend{name: "a", devices: []abstract.ScannerInfo{{ID: "escl_1", Name: "A1"}}}
	b := &fakeBackend{name: "b", devices: []abstract.ScannerInfo{{ID: "sane_1", Name: "B1"}}}

	r := New(a, b)
	devices := r.ListDevices(context.Background())

	require.Len(t, devices, 2)
	ids := []string{devices[0].ID, devices[1].ID}
	assert.ElementsMatch(t, []string{"escl_1", "sane_1"}, ids)
}

func TestListDevicesDedupsKeepingFirst(t *testing.T) {
	a := &fakeBackend{name: "a", devices: []abstract.ScannerInfo{{ID: "dup", Name: "FromA"}}}
	b := &fakeBackend{name: "b", devices: []abstract.ScannerInfo{{ID: "dup", Name: "FromB"}}}

	r := New(a, b)
	devices := r.ListDevices(context.Background())

	require.Len(t, devices, 1)
	assert.Equal(t, "FromA", devices[0].Name)
}

func TestCapabilitiesTriesNextBackendOnNotFound(t *testing.T) {
	a := &fakeBackend{name: "a", caps: map[string]abstract.Capabilities{}}
	wantCaps := abstract.Capabilities{
		Sources:    []abstract.ScanSource{abstract.SourceFlatbed},
		Dpis:       []int{300},
		ColorModes: []abstract.ColorMode{abstract.ColorModeColor},
	}
	b := &fakeBackend{name: "b", caps: map[string]abstract.Capabilities{"sane_1": wantCaps}}

	r := New(a, b)
	caps, err := r.Capabilities(context.Background(), "sane_1")

	require.NoError(t, err)
	assert.Equal(t, wantCaps, caps)
}

func TestCapabilitiesNotFoundWhenNoBackendOwnsID(t *testing.T) {
	a := &fakeBackend{name: "a", caps: map[string]abstract.Capabilities{}}
	b := &fakeBackend{name: "b", caps: map[string]abstract.Capabilities{}}

	r := New(a, b)
	_, err := r.Capabilities(context.Background(), "unknown")

	require.Error(t, err)
	assert.True(t, isNotFound(err))
}

func TestCapabilitiesPropagatesBackendErrorWithoutFallback(t *testing.T) {
	a := &fakeBackend{name: "a", capErr: abstract.NewError(abstract.ErrBackend, "device offline")}
	b := &fakeBackend{name: "b", caps: map[string]abstract.Capabilities{"x": {}}}

	r := New(a, b)
	_, err := r.Capabilities(context.Background(), "x")

	require.Error(t, err)
	assert.False(t, isNotFound(err))
}

// TestStartScanRoutesByOwnershipNotByAccident is the routing-soundness
// property from spec §8: a device ID listed by backend A must be
// scanned by A, even if B would also (incorrectly) accept it.
func TestStartScanRoutesByOwnershipNotByAccident(t *testing.T) {
	a := &fakeBackend{name: "a", devices: []abstract.ScannerInfo{{ID: "escl_x"}}}
	b := &fakeBackend{name: "b", anyID: true} // does not own escl_x, but would accept any id if asked directly

	r := New(b, a)
	session, err := r.StartScan(context.Background(), "escl_x", abstract.ScanConfig{})

	require.NoError(t, err)
	fs, ok := session.(*fakeSession)
	require.True(t, ok)
	assert.Equal(t, "a", fs.owner)
}

func TestStartScanNotFoundWhenNoBackendOwnsID(t *testing.T) {
	a := &fakeBackend{name: "a"}

	r := New(a)
	_, err := r.StartScan(context.Background(), "missing", abstract.ScanConfig{})

	require.Error(t, err)
	assert.True(t, isNotFound(err))
}

// TestEventWellFormedness exercises the event-sequence grammar
// property against the fake session shared by the routing tests.
func TestEventWellFormedness(t *testing.T) {
	s := &fakeSession{owner: "a"}
	ctx := context.Background()

	ev, err := s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventPageStarted, ev.Type)

	ev, err = s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventPageData, ev.Type)

	ev, err = s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventPageComplete, ev.Type)

	ev, err = s.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, abstract.EventJobComplete, ev.Type)

	_, err = s.NextEvent(ctx)
	assert.Error(t, err)
}
