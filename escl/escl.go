// Package escl implements the eSCL/AirScan wire protocol: the XML
// schema for scanner capabilities and scan settings, used by the escl
// backend to talk to a real network scanner.
package escl

import (
	"strconv"

	"github.com/scanbridge/scanbridge/xmldoc"
)

// Namespace prefixes used throughout the eSCL XML schema.
const (
	NsPWG  = "pwg"
	NsScan = "scan"
)

// decodeNonNegativeInt decodes a non-negative integer from an XML
// element's text content.
func decodeNonNegativeInt(root xmldoc.Element) (int, error) {
	v, err := strconv.ParseUint(root.Text, 10, 32)
	if err != nil {
		return 0, xmldoc.XMLErrWrap(root, err)
	}
	return int(v), nil
}
