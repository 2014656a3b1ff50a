package dom

import "github.com/vango-dev/forge/internal/errors"

// Parent resolves the element an element should be inserted into.
// It is implemented by Selector and *Element.
type Parent interface {
	Resolve(doc *Document) (*Element, error)
}

// Selector is a CSS selector resolved against the document.
type Selector string

// Resolve returns the first element matching the selector. No match fails
// with ParentNotFound.
func (s Selector) Resolve(doc *Document) (*Element, error) {
	el, err := doc.Query(string(s))
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, errors.New(errors.CodeParentNotFound).WithSubject(string(s))
	}
	return el, nil
}

// Resolve returns e itself.
func (e *Element) Resolve(*Document) (*Element, error) {
	if e == nil {
		return nil, errors.New(errors.CodeNotElement)
	}
	return e, nil
}

// Into appends e to the resolved parent and returns e. When the parent
// cannot be resolved e is left where it was.
func (e *Element) Into(p Parent) (*Element, error) {
	if p == nil {
		return e, errors.New(errors.CodeNotElement)
	}
	parent, err := p.Resolve(e.doc)
	if err != nil {
		return e, err
	}
	if err := parent.AppendChild(e); err != nil {
		return e, err
	}
	return e, nil
}
