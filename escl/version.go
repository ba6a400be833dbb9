package escl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scanbridge/scanbridge/xmldoc"
)

// Version identifies the eSCL protocol version a scanner speaks, as
// reported in pwg:Version ("2.0", "2.1", ...).
type Version struct {
	Major int
	Minor int
}

// String returns the "Major.Minor" textual form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// decodeVersion decodes [Version] from its XML element.
func decodeVersion(root xmldoc.Element) (v Version, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	parts := strings.SplitN(root.Text, ".", 2)
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("malformed version %q", root.Text)
	}

	v.Major, err = strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, err
	}
	v.Minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, err
	}
	return v, nil
}

// toXML generates the XML element for [Version].
func (v Version) toXML(name string) xmldoc.Element {
	return xmldoc.Element{Name: name, Text: v.String()}
}
