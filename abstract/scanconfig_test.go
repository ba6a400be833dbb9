package abstract

import (
	"testing"

	"github.com/scanbridge/scanbridge/internal/optional"
)

func testCapabilities() Capabilities {
	return Capabilities{
		Sources:        []ScanSource{SourceFlatbed, SourceADF},
		Dpis:           []int{75, 150, 300, 600},
		ColorModes:     []ColorMode{ColorModeColor, ColorModeGray, ColorModeBW},
		PageSizes:      []PageSize{PageSizeA4, PageSizeLetter},
		SupportsDuplex: false,
	}
}

func TestScanConfigValidateOK(t *testing.T) {
	cfg := ScanConfig{
		Source:    SourceFlatbed,
		Dpi:       300,
		ColorMode: ColorModeColor,
		PageSize:  PageSizeA4,
	}

	if err := cfg.Validate(testCapabilities()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScanConfigValidateUnsupportedDpi(t *testing.T) {
	cfg := ScanConfig{
		Source:    SourceFlatbed,
		Dpi:       1200,
		ColorMode: ColorModeColor,
		PageSize:  PageSizeA4,
	}

	err := cfg.Validate(testCapabilities())
	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var pe *ParamError
	if !asParamError(err, &pe) {
		t.Fatalf("expected *ParamError, got %T: %v", err, err)
	}
	if pe.Field != "Dpi" {
		t.Errorf("Field = %q, want Dpi", pe.Field)
	}
}

func TestScanConfigValidateDuplexUnsupported(t *testing.T) {
	cfg := ScanConfig{
		Source:    SourceADF,
		Duplex:    true,
		Dpi:       300,
		ColorMode: ColorModeColor,
		PageSize:  PageSizeA4,
	}

	if err := cfg.Validate(testCapabilities()); err == nil {
		t.Fatal("expected duplex to be rejected on a simplex-only device")
	}
}

func TestScanConfigValidateAreaExceedsPage(t *testing.T) {
	cfg := ScanConfig{
		Source:    SourceFlatbed,
		Dpi:       300,
		ColorMode: ColorModeColor,
		PageSize:  PageSizeA4,
		Area:      optional.New(ScanArea{WidthMM: 1000, HeightMM: 1000}),
	}

	if err := cfg.Validate(testCapabilities()); err == nil {
		t.Fatal("expected an oversized area to be rejected")
	}
}

func asParamError(err error, out **ParamError) bool {
	pe, ok := err.(*ParamError)
	if ok {
		*out = pe
	}
	return ok
}
