package xmldoc

import "errors"

var errMalformed = errors.New("xmldoc: malformed XML document")

// Lookup describes a single child element to pull out of a parent
// during decode. Required lookups that aren't found cause
// [Element.Lookup] to report the missing Lookup back to the caller.
type Lookup struct {
	Name     string
	Required bool
	Found    bool
	Elem     Element
}

// Lookup searches root's direct children for each of the given
// lookups by name, filling in Found/Elem on a match. It returns the
// first *Lookup marked Required that wasn't found, or nil if every
// required lookup was satisfied.
func (root Element) Lookup(lookups ...*Lookup) *Lookup {
	for _, l := range lookups {
		for _, c := range root.Children {
			if c.Name == l.Name {
				l.Found = true
				l.Elem = c
				break
			}
		}
		if l.Required && !l.Found {
			return l
		}
	}
	return nil
}

// XMLErrWrap wraps err with context identifying elem, the element
// being decoded when the error occurred. It passes a nil err through
// unchanged, so it's safe to defer unconditionally.
func XMLErrWrap(elem Element, err error) error {
	if err == nil {
		return nil
	}
	path := elem.Path
	if path == "" {
		path = elem.Name
	}
	return &xmlError{path: path, err: err}
}

// XMLErrMissed reports that a required element named name was not
// found.
func XMLErrMissed(name string) error {
	return &xmlError{path: name, err: errors.New("missed element")}
}

type xmlError struct {
	path string
	err  error
}

func (e *xmlError) Error() string {
	return e.path + ": " + e.err.Error()
}

func (e *xmlError) Unwrap() error {
	return e.err
}
