package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"
)

// nsPWGURL and nsScanURL are the two XML namespaces the eSCL protocol
// uses. They're declared here, rather than in the escl package,
// because the decoder needs them to translate incoming prefixes and
// the encoder needs them to emit the xmlns declarations.
const (
	nsPWGURL  = "http://www.pwg.org/schemas/2010/12/sm"
	nsScanURL = "http://schemas.hp.com/imaging/escl/2011/05/03"
)

// EncodeString renders the element tree as a compact XML document,
// with the standard eSCL namespace declarations attached to the root.
func (e Element) EncodeString() (string, error) {
	buf := &bytes.Buffer{}
	if err := e.Encode(buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Encode writes the element tree to w as a compact XML document.
func (e Element) Encode(w io.Writer) error {
	enc := xml.NewEncoder(w)

	if err := enc.EncodeToken(xml.ProcInst{
		Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`),
	}); err != nil {
		return err
	}

	root := e
	root.Attrs = append([]Attr{
		{Name: "xmlns:pwg", Value: nsPWGURL},
		{Name: "xmlns:scan", Value: nsScanURL},
	}, root.Attrs...)

	if err := root.encodeRecursive(enc); err != nil {
		return err
	}

	return enc.Flush()
}

func (e Element) encodeRecursive(enc *xml.Encoder) error {
	name := xml.Name{Local: e.Name}

	attrs := make([]xml.Attr, len(e.Attrs))
	for i, a := range e.Attrs {
		attrs[i] = xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value}
	}

	if err := enc.EncodeToken(xml.StartElement{Name: name, Attr: attrs}); err != nil {
		return err
	}

	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}

	for _, c := range e.Children {
		if err := c.encodeRecursive(enc); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: name})
}
