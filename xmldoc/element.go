// Package xmldoc is a small XML element-tree library used to decode
// and encode the eSCL wire protocol.
//
// It represents a parsed document as a tree of [Element] values and
// offers a declarative [Lookup] helper for pulling expected children
// out of a parent element, in the style of a hand-rolled DOM.
package xmldoc

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a single node of the decoded XML tree.
//
// Name carries the namespace-qualified element name (e.g.
// "scan:ColorMode"). Path is the full path from the document root,
// slash-separated. Text is the element's character content, trimmed
// of leading and trailing whitespace. Children holds direct children
// only; Parent is nil for the root element.
type Element struct {
	Name     string
	Path     string
	Text     string
	Attrs    []Attr
	Children []Element
	Parent   *Element `json:"-"`
}

// ChildrenByName returns all direct children with the given name.
func (e Element) ChildrenByName(name string) []Element {
	var out []Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the named attribute and whether it was
// present.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
