package cabi

import "github.com/scanbridge/scanbridge/abstract"

// Numeric encodings fixed by spec §6. These must never be renumbered;
// a host binding compiled against an older version of this table
// depends on the exact values.
const (
	backendWia     = 0
	backendSane    = 1
	backendIca     = 2
	backendEscl    = 3
	backendTwain   = 4
	backendUnknown = 99

	sourceFlatbed   = 0
	sourceADF       = 1
	sourceADFDuplex = 2

	colorModeColor = 0
	colorModeGray  = 1
	colorModeBW    = 2

	eventPageStarted  = 0
	eventPageData     = 1
	eventPageComplete = 2
	eventJobComplete  = 3
)

func backendToInt(k abstract.BackendKind) int32 {
	switch k {
	case abstract.BackendWia:
		return backendWia
	case abstract.BackendSane:
		return backendSane
	case abstract.BackendIca:
		return backendIca
	case abstract.BackendEscl:
		return backendEscl
	case abstract.BackendTwain:
		return backendTwain
	default:
		return backendUnknown
	}
}

func scanSourceToInt(s abstract.ScanSource) int32 {
	switch s {
	case abstract.SourceFlatbed:
		return sourceFlatbed
	case abstract.SourceADF:
		return sourceADF
	case abstract.SourceADFDuplex:
		return sourceADFDuplex
	default:
		return sourceFlatbed
	}
}

func intToScanSource(v int32) abstract.ScanSource {
	switch v {
	case sourceADF:
		return abstract.SourceADF
	case sourceADFDuplex:
		return abstract.SourceADFDuplex
	default:
		return abstract.SourceFlatbed
	}
}

func colorModeToInt(c abstract.ColorMode) int32 {
	switch c {
	case abstract.ColorModeColor:
		return colorModeColor
	case abstract.ColorModeGray:
		return colorModeGray
	case abstract.ColorModeBW:
		return colorModeBW
	default:
		return colorModeColor
	}
}

func intToColorMode(v int32) abstract.ColorMode {
	switch v {
	case colorModeGray:
		return abstract.ColorModeGray
	case colorModeBW:
		return abstract.ColorModeBW
	default:
		return abstract.ColorModeColor
	}
}

func eventTypeToInt(t abstract.EventType) int32 {
	switch t {
	case abstract.EventPageStarted:
		return eventPageStarted
	case abstract.EventPageData:
		return eventPageData
	case abstract.EventPageComplete:
		return eventPageComplete
	default:
		return eventJobComplete
	}
}
