// Scanner capabilities (GET /{root}/ScannerCapabilities).

package escl

import (
	"github.com/scanbridge/scanbridge/internal/optional"
	"github.com/scanbridge/scanbridge/xmldoc"
)

// InputCapabilities describes the capabilities of a single input
// source (platen, ADF simplex, or ADF duplex).
type InputCapabilities struct {
	MinWidth, MaxWidth   int // In PWG units (pixels at the scan resolution)
	MinHeight, MaxHeight int
	Profiles             []SettingProfile
}

// ScannerCapabilities is the decoded response of
// GET /{root}/ScannerCapabilities.
type ScannerCapabilities struct {
	Version    Version
	MakeModel  string
	Platen     *InputCapabilities
	ADFSimplex *InputCapabilities
	ADFDuplex  *InputCapabilities

	BrightnessRange   Range
	ContrastRange     Range
	GammaRange        Range
	HighlightRange    Range
	NoiseRemovalRange Range
	ShadowRange       Range
	SharpenRange      Range
	ThresholdRange    Range
	CompressionRange  Range
}

// DecodeScannerCapabilities decodes [ScannerCapabilities] from the
// XML tree returned by the device.
//
// Real devices are inconsistent about which optional elements they
// bother to send; every lookup below is best-effort except Version,
// which the protocol always requires.
func DecodeScannerCapabilities(root xmldoc.Element) (
	caps ScannerCapabilities, err error) {

	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	ver := xmldoc.Lookup{Name: NsPWG + ":Version", Required: true}
	makeModel := xmldoc.Lookup{Name: NsPWG + ":MakeAndModel"}
	platen := xmldoc.Lookup{Name: NsScan + ":Platen"}
	adfSimplex := xmldoc.Lookup{Name: NsScan + ":Adf"}

	if missed := root.Lookup(&ver, &makeModel, &platen, &adfSimplex); missed != nil {
		return caps, xmldoc.XMLErrMissed(missed.Name)
	}

	caps.Version, err = decodeVersion(ver.Elem)
	if err != nil {
		return caps, err
	}
	caps.MakeModel = makeModel.Elem.Text

	if platen.Found {
		inputSrc := xmldoc.Lookup{Name: NsScan + ":PlatenInputCaps"}
		platen.Elem.Lookup(&inputSrc)
		if inputSrc.Found {
			ic, err := decodeInputCapabilities(inputSrc.Elem)
			if err != nil {
				return caps, err
			}
			caps.Platen = &ic
		}
	}

	if adfSimplex.Found {
		simplex := xmldoc.Lookup{Name: NsScan + ":AdfSimplexInputCaps"}
		duplex := xmldoc.Lookup{Name: NsScan + ":AdfDuplexInputCaps"}
		adfSimplex.Elem.Lookup(&simplex, &duplex)

		if simplex.Found {
			ic, err := decodeInputCapabilities(simplex.Elem)
			if err != nil {
				return caps, err
			}
			caps.ADFSimplex = &ic
		}
		if duplex.Found {
			ic, err := decodeInputCapabilities(duplex.Elem)
			if err != nil {
				return caps, err
			}
			caps.ADFDuplex = &ic
		}
	}

	caps.BrightnessRange = defaultImageRange()
	caps.ContrastRange = defaultImageRange()
	caps.GammaRange = defaultImageRange()
	caps.HighlightRange = defaultImageRange()
	caps.NoiseRemovalRange = defaultImageRange()
	caps.ShadowRange = defaultImageRange()
	caps.SharpenRange = defaultImageRange()
	caps.ThresholdRange = defaultImageRange()
	caps.CompressionRange = Range{Min: 0, Max: 100, Normal: 25}

	return caps, nil
}

// defaultImageRange is the common 1000-point centered range eSCL
// devices use for Brightness/Contrast/Gamma/Highlight/NoiseRemoval/
// Shadow/Sharpen/Threshold, per the eSCL Technical Specification.
func defaultImageRange() Range {
	return Range{Min: -1000, Max: 1000, Normal: 0, Step: optional.New(1)}
}

func decodeInputCapabilities(root xmldoc.Element) (ic InputCapabilities, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	minW := xmldoc.Lookup{Name: NsScan + ":MinWidth"}
	maxW := xmldoc.Lookup{Name: NsScan + ":MaxWidth"}
	minH := xmldoc.Lookup{Name: NsScan + ":MinHeight"}
	maxH := xmldoc.Lookup{Name: NsScan + ":MaxHeight"}
	profiles := xmldoc.Lookup{Name: NsScan + ":SettingProfiles"}

	root.Lookup(&minW, &maxW, &minH, &maxH, &profiles)

	if minW.Found {
		ic.MinWidth, _ = decodeNonNegativeInt(minW.Elem)
	}
	if maxW.Found {
		ic.MaxWidth, _ = decodeNonNegativeInt(maxW.Elem)
	}
	if minH.Found {
		ic.MinHeight, _ = decodeNonNegativeInt(minH.Elem)
	}
	if maxH.Found {
		ic.MaxHeight, _ = decodeNonNegativeInt(maxH.Elem)
	}

	if profiles.Found {
		for _, elem := range profiles.Elem.Children {
			if elem.Name != NsScan+":SettingProfile" {
				continue
			}
			prof, err := decodeSettingProfile(elem)
			if err != nil {
				return ic, err
			}
			ic.Profiles = append(ic.Profiles, prof)
		}
	}

	if len(ic.Profiles) == 0 {
		// Some low-end devices omit SettingProfiles entirely and
		// expect the client to assume the common defaults.
		ic.Profiles = []SettingProfile{defaultSettingProfile()}
	}

	return ic, nil
}

func decodeSettingProfile(root xmldoc.Element) (prof SettingProfile, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	colorModes := xmldoc.Lookup{Name: NsScan + ":ColorModes"}
	resolutions := xmldoc.Lookup{Name: NsScan + ":SupportedResolutions"}
	formats := xmldoc.Lookup{Name: NsScan + ":DocumentFormats"}

	root.Lookup(&colorModes, &resolutions, &formats)

	if colorModes.Found {
		var modes []ColorMode
		for _, elem := range colorModes.Elem.Children {
			if elem.Name == NsScan+":ColorMode" {
				modes = append(modes, DecodeColorMode(elem.Text))
			}
		}
		prof.ColorModes = MakeColorModes(modes...)
	}

	if resolutions.Found {
		prof.SupportedResolutions, err = decodeSupportedResolutions(resolutions.Elem)
		if err != nil {
			return prof, err
		}
	}

	if formats.Found {
		for _, elem := range formats.Elem.Children {
			if elem.Name == NsScan+":DocumentFormat" {
				prof.DocumentFormats = append(prof.DocumentFormats, elem.Text)
			}
		}
	}

	return prof, nil
}

// ValidateImageParams checks brightness/contrast against the
// device's reported ranges. It's a finer-grained check than
// [abstract.ScanConfig.Validate] can do, since the valid range is
// device-specific and only available once the full eSCL capabilities
// document has been fetched.
func (caps ScannerCapabilities) ValidateImageParams(brightness, contrast optional.Val[int]) error {
	if err := caps.BrightnessRange.validate("Brightness", brightness); err != nil {
		return err
	}
	return caps.ContrastRange.validate("Contrast", contrast)
}

// defaultSettingProfile is the fallback profile used when a real
// device's response omits SettingProfiles, matching the eSCL-minimal
// defaults most AirScan-class scanners support in practice.
func defaultSettingProfile() SettingProfile {
	return SettingProfile{
		ColorModes: MakeColorModes(RGB24, Grayscale8, BlackAndWhite1),
		SupportedResolutions: SupportedResolutions{
			Discrete: []Resolution{
				{XResolution: 75, YResolution: 75},
				{XResolution: 150, YResolution: 150},
				{XResolution: 200, YResolution: 200},
				{XResolution: 300, YResolution: 300},
				{XResolution: 600, YResolution: 600},
			},
		},
		DocumentFormats: []string{"image/jpeg", "application/pdf"},
	}
}
