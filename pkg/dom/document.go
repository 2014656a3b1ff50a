package dom

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/forge/internal/errors"
)

const skeleton = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory HTML document.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
}

// NewDocument returns an empty html/head/body document.
func NewDocument() *Document {
	doc, err := Parse(strings.NewReader(skeleton))
	if err != nil {
		// The skeleton is a constant; html.Parse only fails on reader errors.
		panic(err)
	}
	return doc
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.findFirst(atom.Body)
}

// Head returns the head element.
func (d *Document) Head() *Element {
	return d.findFirst(atom.Head)
}

func (d *Document) findFirst(a atom.Atom) *Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
	return d.wrap(n)
}

// Wrap returns the Element for an element node of this document.
// Non-element nodes fail with a NotElement error.
func (d *Document) Wrap(n *html.Node) (*Element, error) {
	if n == nil || n.Type != html.ElementNode {
		return nil, errors.New(errors.CodeNotElement)
	}
	return d.wrap(n), nil
}

func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{node: n, doc: d}
	d.elements[n] = el
	return el
}

// Query returns the first element matching selector, or nil when nothing
// matches. An invalid selector fails with InvalidSelector.
func (d *Document) Query(selector string) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	n := sel.MatchFirst(d.root)
	if n == nil {
		return nil, nil
	}
	return d.wrap(n), nil
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := sel.MatchAll(d.root)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out, nil
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidSelector).WithSubject(selector).Wrap(err)
	}
	return sel, nil
}

// Contains reports whether el is currently attached to this document.
func (d *Document) Contains(el *Element) bool {
	if el == nil || el.doc != d {
		return false
	}
	for n := el.node; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// walk visits n and its descendants depth-first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
