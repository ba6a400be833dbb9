//go:build cgo

package cabi

/*
#include <stdlib.h>

typedef struct CScannerInfo {
    char *id;
    char *name;
    int   backend;
} CScannerInfo;

typedef struct CScannerInfoList {
    CScannerInfo *scanners;
    size_t        count;
} CScannerInfoList;

typedef struct CCapabilities {
    int    *sources;
    size_t  sources_count;
    int    *dpis;
    size_t  dpis_count;
    int    *color_modes;
    size_t  color_modes_count;
    int     supports_duplex;
} CCapabilities;

typedef struct CScanConfig {
    int source;
    int duplex;
    int dpi;
    int color_mode;
    int page_width_mm;
    int page_height_mm;
} CScanConfig;

typedef struct CScanEvent {
    int    event_type;
    void  *data;
    size_t data_size;
} CScanEvent;
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/scanbridge/scanbridge/abstract"
)

// scanbridge_init builds the process-wide registry and session table.
// Returns 0 on success; this implementation never fails.
//
//export scanbridge_init
func scanbridge_init() C.int {
	initState()
	return 0
}

// scanbridge_cleanup tears down the registry and every live session.
//
//export scanbridge_cleanup
func scanbridge_cleanup() {
	cleanupState()
}

// scanbridge_list_scanners lists every device visible across all
// backends. Returns NULL if Init hasn't been called. The result must
// be released with scanbridge_free_scanner_list.
//
//export scanbridge_list_scanners
func scanbridge_list_scanners() *C.CScannerInfoList {
	reg, _, ok := currentState()
	if !ok {
		return nil
	}

	infos := reg.ListDevices(context.Background())

	cArray := C.malloc(C.size_t(len(infos)) * C.size_t(unsafe.Sizeof(C.CScannerInfo{})))
	slice := unsafe.Slice((*C.CScannerInfo)(cArray), len(infos))
	for i, info := range infos {
		slice[i] = C.CScannerInfo{
			id:      C.CString(info.ID),
			name:    C.CString(info.Name),
			backend: C.int(backendToInt(info.Backend)),
		}
	}

	list := (*C.CScannerInfoList)(C.malloc(C.size_t(unsafe.Sizeof(C.CScannerInfoList{}))))
	list.scanners = (*C.CScannerInfo)(cArray)
	list.count = C.size_t(len(infos))
	return list
}

// scanbridge_free_scanner_list releases a list returned by
// scanbridge_list_scanners. A NULL argument is a no-op.
//
//export scanbridge_free_scanner_list
func scanbridge_free_scanner_list(list *C.CScannerInfoList) {
	if list == nil {
		return
	}
	if list.count > 0 {
		slice := unsafe.Slice(list.scanners, int(list.count))
		for _, s := range slice {
			if s.id != nil {
				C.free(unsafe.Pointer(s.id))
			}
			if s.name != nil {
				C.free(unsafe.Pointer(s.name))
			}
		}
	}
	if list.scanners != nil {
		C.free(unsafe.Pointer(list.scanners))
	}
	C.free(unsafe.Pointer(list))
}

// scanbridge_get_capabilities fetches the capability record for id.
// Returns NULL on any error (device not found, backend communication
// failure) or if Init hasn't been called. The result must be released
// with scanbridge_free_capabilities.
//
//export scanbridge_get_capabilities
func scanbridge_get_capabilities(id *C.char) *C.CCapabilities {
	reg, _, ok := currentState()
	if !ok || id == nil {
		return nil
	}

	caps, err := reg.Capabilities(context.Background(), C.GoString(id))
	if err != nil {
		return nil
	}

	sources := C.malloc(C.size_t(len(caps.Sources)) * C.size_t(unsafe.Sizeof(C.int(0))))
	sourceSlice := unsafe.Slice((*C.int)(sources), len(caps.Sources))
	for i, s := range caps.Sources {
		sourceSlice[i] = C.int(scanSourceToInt(s))
	}

	dpis := C.malloc(C.size_t(len(caps.Dpis)) * C.size_t(unsafe.Sizeof(C.int(0))))
	dpiSlice := unsafe.Slice((*C.int)(dpis), len(caps.Dpis))
	for i, d := range caps.Dpis {
		dpiSlice[i] = C.int(d)
	}

	colorModes := C.malloc(C.size_t(len(caps.ColorModes)) * C.size_t(unsafe.Sizeof(C.int(0))))
	colorSlice := unsafe.Slice((*C.int)(colorModes), len(caps.ColorModes))
	for i, c := range caps.ColorModes {
		colorSlice[i] = C.int(colorModeToInt(c))
	}

	duplex := C.int(0)
	if caps.SupportsDuplex {
		duplex = 1
	}

	out := (*C.CCapabilities)(C.malloc(C.size_t(unsafe.Sizeof(C.CCapabilities{}))))
	out.sources = (*C.int)(sources)
	out.sources_count = C.size_t(len(caps.Sources))
	out.dpis = (*C.int)(dpis)
	out.dpis_count = C.size_t(len(caps.Dpis))
	out.color_modes = (*C.int)(colorModes)
	out.color_modes_count = C.size_t(len(caps.ColorModes))
	out.supports_duplex = duplex
	return out
}

// scanbridge_free_capabilities releases a record returned by
// scanbridge_get_capabilities. A NULL argument is a no-op.
//
//export scanbridge_free_capabilities
func scanbridge_free_capabilities(caps *C.CCapabilities) {
	if caps == nil {
		return
	}
	if caps.sources != nil {
		C.free(unsafe.Pointer(caps.sources))
	}
	if caps.dpis != nil {
		C.free(unsafe.Pointer(caps.dpis))
	}
	if caps.color_modes != nil {
		C.free(unsafe.Pointer(caps.color_modes))
	}
	C.free(unsafe.Pointer(caps))
}

// scanbridge_start_scan begins a scan against id using the given
// config. Returns a positive session id on success, or a negative
// error sentinel (-1) if the device is unknown, the config is
// invalid, or Init hasn't been called.
//
//export scanbridge_start_scan
func scanbridge_start_scan(id *C.char, config *C.CScanConfig) C.int32_t {
	reg, sessions, ok := currentState()
	if !ok || id == nil || config == nil {
		return -1
	}

	cfg := abstract.ScanConfig{
		Source:    intToScanSource(int32(config.source)),
		Duplex:    config.duplex != 0,
		Dpi:       int(config.dpi),
		ColorMode: intToColorMode(int32(config.color_mode)),
		PageSize: abstract.PageSize{
			WidthMM:  int(config.page_width_mm),
			HeightMM: int(config.page_height_mm),
		},
	}

	deviceID := C.GoString(id)
	caps, err := reg.Capabilities(context.Background(), deviceID)
	if err != nil {
		return -1
	}
	if err := cfg.Validate(caps); err != nil {
		return -1
	}

	session, err := reg.StartScan(context.Background(), deviceID, cfg)
	if err != nil {
		return -1
	}

	return C.int32_t(sessions.add(session))
}

// scanbridge_next_scan_event pulls the next event from a scan
// session. Returns NULL on end-of-stream, on a terminal error, or if
// session_id is unknown or zero. The result must be released with
// scanbridge_free_scan_event.
//
// Per spec §6, page image bytes are not carried across the ABI in
// this cut: data/data_size are always NULL/0, and a host that needs
// the bytes reads them through a side channel the registry doesn't
// define. Richer transfer is tracked as a follow-up once a concrete
// host binding requests it.
//
//export scanbridge_next_scan_event
func scanbridge_next_scan_event(sessionID C.int32_t) *C.CScanEvent {
	_, sessions, ok := currentState()
	if !ok {
		return nil
	}

	session, ok := sessions.get(uint32(sessionID))
	if !ok {
		return nil
	}

	event, err := session.NextEvent(context.Background())
	if err != nil {
		sessions.remove(uint32(sessionID))
		return nil
	}

	out := (*C.CScanEvent)(C.malloc(C.size_t(unsafe.Sizeof(C.CScanEvent{}))))
	out.event_type = C.int(eventTypeToInt(event.Type))
	out.data = nil
	out.data_size = 0

	if event.Type == abstract.EventJobComplete {
		sessions.remove(uint32(sessionID))
	}

	return out
}

// scanbridge_free_scan_event releases an event returned by
// scanbridge_next_scan_event. A NULL argument is a no-op.
//
//export scanbridge_free_scan_event
func scanbridge_free_scan_event(event *C.CScanEvent) {
	if event == nil {
		return
	}
	if event.data != nil {
		C.free(event.data)
	}
	C.free(unsafe.Pointer(event))
}
