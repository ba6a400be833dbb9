package abstract

// EventType identifies which case of [ScanEvent] is populated.
type EventType int

// Known event types. Numeric values match the cabi wire encoding.
const (
	EventPageStarted EventType = iota
	EventPageData
	EventPageComplete
	EventJobComplete
)

// ScanEvent is one entry in a scan session's event stream.
//
// Exactly one of the fields matching Type is meaningful: Index for
// EventPageStarted, Data for EventPageData, Meta for
// EventPageComplete. EventJobComplete carries nothing and is always
// the session's final event.
type ScanEvent struct {
	Type  EventType
	Index int
	Data  []byte
	Meta  PageMeta
}

// PageStarted builds a EventPageStarted event for the given
// zero-based page index.
func PageStarted(index int) ScanEvent {
	return ScanEvent{Type: EventPageStarted, Index: index}
}

// PageData builds a EventPageData event carrying a chunk of the
// current page's image bytes.
func PageData(data []byte) ScanEvent {
	return ScanEvent{Type: EventPageData, Data: data}
}

// PageComplete builds a EventPageComplete event reporting the
// finished page's metadata.
func PageComplete(meta PageMeta) ScanEvent {
	return ScanEvent{Type: EventPageComplete, Meta: meta}
}

// JobComplete builds the terminal EventJobComplete event.
func JobComplete() ScanEvent {
	return ScanEvent{Type: EventJobComplete}
}
