// Scan settings (POST /{root}/ScanJobs body).

package escl

import (
	"strconv"

	"github.com/scanbridge/scanbridge/xmldoc"
)

// InputSourceName is the wire-level scan:InputSource value.
type InputSourceName string

// Known input sources.
const (
	InputPlaten InputSourceName = "Platen"
	InputFeeder InputSourceName = "Feeder"
)

// ScanSettings is the body of the ScanJobs creation request.
type ScanSettings struct {
	Version        Version
	Intent         string // "Document", "Photo", ...
	InputSource    InputSourceName
	Duplex         bool
	ColorMode      ColorMode
	XResolution    int
	YResolution    int
	Width          int // PWG units (pixels at the scan resolution)
	Height         int
	DocumentFormat string
}

// ToXML generates the scan:ScanSettings XML document sent to the
// device to create a job.
func (s ScanSettings) ToXML() xmldoc.Element {
	root := xmldoc.Element{
		Name: NsScan + ":ScanSettings",
		Children: []xmldoc.Element{
			s.Version.toXML(NsPWG + ":Version"),
			{Name: NsScan + ":Intent", Text: s.Intent},
			{
				Name: NsScan + ":ScanRegions",
				Children: []xmldoc.Element{
					{
						Name: NsScan + ":ScanRegion",
						Children: []xmldoc.Element{
							{Name: NsScan + ":Height", Text: strconv.Itoa(s.Height)},
							{Name: NsScan + ":Width", Text: strconv.Itoa(s.Width)},
							{Name: NsScan + ":XOffset", Text: "0"},
							{Name: NsScan + ":YOffset", Text: "0"},
						},
					},
				},
			},
			{Name: NsScan + ":InputSource", Text: string(s.InputSource)},
			{Name: NsScan + ":ColorMode", Text: s.ColorMode.String()},
			{Name: NsScan + ":XResolution", Text: strconv.Itoa(s.XResolution)},
			{Name: NsScan + ":YResolution", Text: strconv.Itoa(s.YResolution)},
			{Name: NsPWG + ":DocumentFormat", Text: s.DocumentFormat},
		},
	}

	if s.InputSource == InputFeeder {
		root.Children = append(root.Children, xmldoc.Element{
			Name: NsScan + ":Duplex",
			Text: strconv.FormatBool(s.Duplex),
		})
	}

	return root
}
