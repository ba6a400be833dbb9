package escl

import "github.com/scanbridge/scanbridge/internal/generic"

// ColorMode is the wire-level color mode a scanner reports or is
// asked to scan in (eSCL's scan:ColorMode, e.g. "RGB24").
type ColorMode int

// Known color modes.
const (
	UnknownColorMode ColorMode = iota
	BlackAndWhite1             // 1-bit line art
	Grayscale8                 // 8-bit grayscale
	Grayscale16                // 16-bit grayscale
	RGB24                      // 24-bit color
	RGB48                      // 48-bit color
	colorModeMax
)

// String returns the XML string representation of the color mode.
func (m ColorMode) String() string {
	switch m {
	case BlackAndWhite1:
		return "BlackAndWhite1"
	case Grayscale8:
		return "Grayscale8"
	case Grayscale16:
		return "Grayscale16"
	case RGB24:
		return "RGB24"
	case RGB48:
		return "RGB48"
	}
	return "Unknown"
}

// DecodeColorMode decodes [ColorMode] from its string representation.
func DecodeColorMode(s string) ColorMode {
	switch s {
	case "BlackAndWhite1":
		return BlackAndWhite1
	case "Grayscale8":
		return Grayscale8
	case "Grayscale16":
		return Grayscale16
	case "RGB24":
		return RGB24
	case "RGB48":
		return RGB48
	}
	return UnknownColorMode
}

// ColorModes is a set of [ColorMode] values.
type ColorModes struct {
	generic.Bitset[ColorMode]
}

// MakeColorModes makes a [ColorModes] set out of the given values.
func MakeColorModes(list ...ColorMode) ColorModes {
	var bs generic.Bitset[ColorMode]
	for _, m := range list {
		bs.Add(m)
	}
	return ColorModes{bs}
}
