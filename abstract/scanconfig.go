package abstract

import "github.com/scanbridge/scanbridge/internal/optional"

// ScanConfig specifies the parameters of a single scan job.
//
// All fields except Source, Dpi, ColorMode and PageSize are optional;
// use zero-value [optional.Val] to mean "let the device decide".
type ScanConfig struct {
	Source    ScanSource
	Duplex    bool
	Dpi       int
	ColorMode ColorMode
	PageSize  PageSize

	Area       optional.Val[ScanArea]
	Brightness optional.Val[int]
	Contrast   optional.Val[int]
	MaxPages   optional.Val[int]
}

// Validate checks cfg against caps and reports the first
// incompatibility found, in the style of the teacher's parameter
// validation: look the requested value up in the capability set built
// from the device's reported capabilities, and fail closed if it
// isn't a member.
func (cfg ScanConfig) Validate(caps Capabilities) error {
	if !containsSource(caps.Sources, cfg.Source) {
		return &ParamError{Kind: ErrUnsupportedParam, Field: "Source", Value: cfg.Source}
	}

	if cfg.Source != SourceADFDuplex && cfg.Duplex && !caps.SupportsDuplex {
		return &ParamError{Kind: ErrUnsupportedParam, Field: "Duplex", Value: cfg.Duplex}
	}

	if !containsInt(caps.Dpis, cfg.Dpi) {
		return &ParamError{Kind: ErrUnsupportedParam, Field: "Dpi", Value: cfg.Dpi}
	}

	if !containsColorMode(caps.ColorModes, cfg.ColorMode) {
		return &ParamError{Kind: ErrUnsupportedParam, Field: "ColorMode", Value: cfg.ColorMode}
	}

	if len(caps.PageSizes) > 0 && !containsPageSize(caps.PageSizes, cfg.PageSize) {
		return &ParamError{Kind: ErrUnsupportedParam, Field: "PageSize", Value: cfg.PageSize}
	}

	if area, ok := cfg.Area.Get(); ok {
		if area.WidthMM <= 0 || area.HeightMM <= 0 {
			return &ParamError{Kind: ErrInvalidParam, Field: "Area", Value: area}
		}
		if area.WidthMM > float64(cfg.PageSize.WidthMM) ||
			area.HeightMM > float64(cfg.PageSize.HeightMM) {
			return &ParamError{Kind: ErrInvalidParam, Field: "Area", Value: area}
		}
	}

	if v, ok := cfg.MaxPages.Get(); ok && v <= 0 {
		return &ParamError{Kind: ErrInvalidParam, Field: "MaxPages", Value: v}
	}

	return nil
}

func containsSource(list []ScanSource, v ScanSource) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsColorMode(list []ColorMode, v ColorMode) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}

func containsPageSize(list []PageSize, v PageSize) bool {
	for _, p := range list {
		if p == v {
			return true
		}
	}
	return false
}
