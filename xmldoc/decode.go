package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"
)

// DecodeRoot parses an XML document and returns its root [Element],
// with the full tree reachable through Children.
//
// Namespace prefixes are rewritten to the short, protocol-level
// prefixes ("pwg", "scan") via their namespace URL, so downstream code
// never has to deal with whatever prefix the device actually sent on
// the wire.
func DecodeRoot(in io.Reader) (Element, error) {
	var stack []*Element
	var root *Element
	var path bytes.Buffer

	decoder := xml.NewDecoder(in)
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Element{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := qualify(t.Name)

			path.WriteByte('/')
			path.WriteString(name)

			elem := &Element{Name: name, Path: path.String()}
			for _, a := range t.Attr {
				elem.Attrs = append(elem.Attrs, Attr{
					Name:  qualify(a.Name),
					Value: a.Value,
				})
			}

			if len(stack) == 0 {
				root = elem
			} else {
				parent := stack[len(stack)-1]
				elem.Parent = parent
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			finished := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, *finished)
				path.Truncate(len(parent.Path))
			} else {
				root = finished
				path.Truncate(0)
			}

		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.Text += string(bytes.TrimSpace(t))
			}
		}
	}

	if root == nil {
		return Element{}, errMalformed
	}

	return *root, nil
}

// qualify translates a parsed xml.Name into the "prefix:local" form
// used throughout the escl package, based on well-known namespace
// URLs. Unknown namespaces fall back to the bare local name.
func qualify(name xml.Name) string {
	switch name.Space {
	case nsPWGURL:
		return "pwg:" + name.Local
	case nsScanURL:
		return "scan:" + name.Local
	default:
		return name.Local
	}
}
