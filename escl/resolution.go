package escl

import "github.com/scanbridge/scanbridge/xmldoc"

// Resolution is a single supported scan resolution, in DPI.
type Resolution struct {
	XResolution int
	YResolution int
}

// SupportedResolutions lists the discrete resolutions a setting
// profile supports (scan:DiscreteResolutions).
type SupportedResolutions struct {
	Discrete []Resolution
}

// decodeSupportedResolutions decodes [SupportedResolutions] from the
// XML tree.
func decodeSupportedResolutions(root xmldoc.Element) (
	sr SupportedResolutions, err error) {

	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	discrete := xmldoc.Lookup{Name: NsScan + ":DiscreteResolutions"}
	root.Lookup(&discrete)
	if !discrete.Found {
		return sr, nil
	}

	for _, elem := range discrete.Elem.Children {
		if elem.Name != NsScan+":DiscreteResolution" {
			continue
		}

		xres := xmldoc.Lookup{Name: NsScan + ":XResolution", Required: true}
		yres := xmldoc.Lookup{Name: NsScan + ":YResolution", Required: true}
		if missed := elem.Lookup(&xres, &yres); missed != nil {
			return sr, xmldoc.XMLErrMissed(missed.Name)
		}

		var res Resolution
		res.XResolution, err = decodeNonNegativeInt(xres.Elem)
		if err != nil {
			return sr, err
		}
		res.YResolution, err = decodeNonNegativeInt(yres.Elem)
		if err != nil {
			return sr, err
		}

		sr.Discrete = append(sr.Discrete, res)
	}

	return sr, nil
}

// Dpis flattens the discrete resolutions into their X component, the
// shape the abstract.Capabilities model expects.
func (sr SupportedResolutions) Dpis() []int {
	out := make([]int, len(sr.Discrete))
	for i, r := range sr.Discrete {
		out[i] = r.XResolution
	}
	return out
}
