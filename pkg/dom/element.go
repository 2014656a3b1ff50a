package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/forge/internal/errors"
)

// Element is a handle to one element node of a Document.
type Element struct {
	node *html.Node
	doc  *Document

	listeners map[string][]listener
	nextID    uint64

	cleanups []func()
	disposed bool
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attached reports whether the element is currently part of its document.
func (e *Element) Attached() bool {
	return e.doc.Contains(e)
}

// =============================================================================
// Content
// =============================================================================

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	e.clearChildren()
	if text == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text of all descendant text nodes.
func (e *Element) Text() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// SetInnerHTML replaces all children with the parsed markup. The markup is
// inserted as-is, without sanitizing.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return err
	}
	e.clearChildren()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return ""
	}
	return buf.String()
}

func (e *Element) clearChildren() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// =============================================================================
// Tree
// =============================================================================

// AppendChild appends child as the last child. A child attached elsewhere is
// moved.
func (e *Element) AppendChild(child *Element) error {
	if child == nil {
		return errors.New(errors.CodeNotElement)
	}
	for n := e.node; n != nil; n = n.Parent {
		if n == child.node {
			return errors.New(errors.CodeNotElement).
				WithDetail("An element cannot be appended to itself or to one of its descendants.")
		}
	}
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
	return nil
}

// Parent returns the parent element, or nil when detached or directly under
// the document node.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Remove detaches the element from its parent. Listeners and cleanups are
// kept so the element can be attached again.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// Clone returns a detached deep copy of the element. Attributes and
// descendants are copied; listeners and cleanups are not.
func (e *Element) Clone() *Element {
	return e.doc.wrap(cloneNode(e.node))
}

func cloneNode(n *html.Node) *html.Node {
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(cloneNode(c))
	}
	return cp
}

// =============================================================================
// Attributes
// =============================================================================

// SetAttribute sets or replaces an attribute.
func (e *Element) SetAttribute(key, value string) {
	key = strings.ToLower(key)
	for i := range e.node.Attr {
		if e.node.Attr[i].Key == key && e.node.Attr[i].Namespace == "" {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// Attribute returns an attribute value and whether it is present.
func (e *Element) Attribute(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, a := range e.node.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

// RemoveAttribute deletes an attribute if present.
func (e *Element) RemoveAttribute(key string) {
	key = strings.ToLower(key)
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key == key && a.Namespace == "" {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Attributes returns a copy of the attributes in document order.
func (e *Element) Attributes() []html.Attribute {
	return append([]html.Attribute(nil), e.node.Attr...)
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attribute("id")
	return v
}

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(classes string) {
	classes = strings.Join(strings.Fields(classes), " ")
	if classes == "" {
		e.RemoveAttribute("class")
		return
	}
	e.SetAttribute("class", classes)
}

// ClassName returns the class attribute.
func (e *Element) ClassName() string {
	v, _ := e.Attribute("class")
	return v
}

// HasClass reports whether name is one of the element's classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.ClassName()) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds classes that are not already present.
func (e *Element) AddClass(names ...string) {
	current := strings.Fields(e.ClassName())
	for _, name := range names {
		if !e.HasClass(name) {
			current = append(current, name)
			e.SetClassName(strings.Join(current, " "))
		}
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

// AddCleanup registers fn to run when the element is disposed.
func (e *Element) AddCleanup(fn func()) {
	if fn == nil {
		return
	}
	if e.disposed {
		fn()
		return
	}
	e.cleanups = append(e.cleanups, fn)
}

// Dispose detaches the element and runs the cleanups and drops the listeners
// of the element and every wrapped descendant. Dispose is idempotent.
func (e *Element) Dispose() {
	e.Remove()
	walk(e.node, func(n *html.Node) bool {
		if el, ok := e.doc.elements[n]; ok {
			el.dispose()
		}
		return true
	})
}

func (e *Element) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	cleanups := e.cleanups
	e.cleanups = nil
	e.listeners = nil
	for _, fn := range cleanups {
		fn()
	}
	delete(e.doc.elements, e.node)
}

// Disposed reports whether Dispose has run.
func (e *Element) Disposed() bool {
	return e.disposed
}
