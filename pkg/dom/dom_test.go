package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/vango-dev/forge/internal/errors"
)

func TestNewDocument_Skeleton(t *testing.T) {
	doc := NewDocument()

	require.NotNil(t, doc.Body())
	require.NotNil(t, doc.Head())
	assert.Equal(t, "body", doc.Body().Tag())
	assert.True(t, doc.Contains(doc.Body()))
}

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><body><div id="app"><p class="x">hi</p></div></body></html>`))
	require.NoError(t, err)

	app, err := doc.Query("#app")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, "hi", app.Text())

	ps, err := doc.QueryAll("p.x")
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}

func TestQuery_IdentityIsStable(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("section")
	el.SetAttribute("id", "s")
	require.NoError(t, doc.Body().AppendChild(el))

	got, err := doc.Query("#s")
	require.NoError(t, err)
	assert.Same(t, el, got)
}

func TestQuery_NoMatchAndInvalid(t *testing.T) {
	doc := NewDocument()

	el, err := doc.Query("#missing")
	assert.NoError(t, err)
	assert.Nil(t, el)

	_, err = doc.Query("div[")
	assert.True(t, errors.Is(err, errors.ErrInvalidSelector))
}

func TestWrap_RejectsNonElements(t *testing.T) {
	doc := NewDocument()

	_, err := doc.Wrap(&html.Node{Type: html.TextNode, Data: "x"})
	assert.True(t, errors.Is(err, errors.ErrNotElement))

	_, err = doc.Wrap(nil)
	assert.True(t, errors.Is(err, errors.ErrNotElement))
}

func TestContains_IsLive(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	assert.False(t, doc.Contains(el), "created elements start detached")

	require.NoError(t, doc.Body().AppendChild(el))
	assert.True(t, doc.Contains(el))

	el.Remove()
	assert.False(t, doc.Contains(el))

	other := NewDocument()
	assert.False(t, other.Contains(doc.Body()))
}

func TestContains_DetachedAncestor(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	require.NoError(t, outer.AppendChild(inner))
	require.NoError(t, doc.Body().AppendChild(outer))
	assert.True(t, doc.Contains(inner))

	outer.Remove()
	assert.False(t, doc.Contains(inner))
}

func TestSetText_ReplacesChildren(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("p")
	require.NoError(t, el.SetInnerHTML("<b>bold</b> tail"))

	el.SetText("<plain>")
	assert.Equal(t, "<plain>", el.Text())
	assert.Empty(t, el.Children())
	assert.Equal(t, "&lt;plain&gt;", el.InnerHTML())
}

func TestSetInnerHTML(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("ul")
	require.NoError(t, el.SetInnerHTML("<li>a</li><li>b</li>"))

	kids := el.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "li", kids[0].Tag())
	assert.Equal(t, "ab", el.Text())
}

func TestAppendChild_MovesAndRejectsCycles(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	c := doc.CreateElement("span")

	require.NoError(t, a.AppendChild(c))
	require.NoError(t, b.AppendChild(c))
	assert.Empty(t, a.Children())
	assert.Same(t, b, c.Parent())

	assert.True(t, errors.Is(c.AppendChild(b), errors.ErrNotElement))
	assert.True(t, errors.Is(b.AppendChild(b), errors.ErrNotElement))
	assert.True(t, errors.Is(b.AppendChild(nil), errors.ErrNotElement))
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("input")

	el.SetAttribute("Type", "text")
	el.SetAttribute("type", "email")
	v, ok := el.Attribute("type")
	assert.True(t, ok)
	assert.Equal(t, "email", v)
	assert.Len(t, el.Attributes(), 1)

	el.RemoveAttribute("type")
	_, ok = el.Attribute("type")
	assert.False(t, ok)
}

func TestClasses(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetClassName("  card   wide ")
	assert.Equal(t, "card wide", el.ClassName())
	assert.True(t, el.HasClass("wide"))

	el.AddClass("wide", "active")
	assert.Equal(t, "card wide active", el.ClassName())

	el.SetClassName("")
	_, ok := el.Attribute("class")
	assert.False(t, ok)
}

func TestStyle(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetStyle("color", "red")
	el.SetStyle("margin-top", "4px")
	el.SetStyle("color", "blue")
	style, _ := el.Attribute("style")
	assert.Equal(t, "color: blue; margin-top: 4px", style)
	assert.Equal(t, "4px", el.Style("margin-top"))

	el.SetStyle("color", "")
	el.SetStyle("margin-top", "")
	_, ok := el.Attribute("style")
	assert.False(t, ok)
}

func TestEvents_DispatchAndRemove(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	btn := doc.CreateElement("button")
	require.NoError(t, parent.AppendChild(btn))

	var got []string
	remove := btn.AddEventListener("click", func(ev *Event) {
		got = append(got, "btn:"+ev.Detail.(string))
	})
	parent.AddEventListener("click", func(ev *Event) {
		assert.Same(t, btn, ev.Target)
		got = append(got, "parent")
	})

	n := btn.Dispatch(&Event{Type: "click", Detail: "1"})
	assert.Equal(t, 1, n)

	n = btn.Dispatch(&Event{Type: "click", Detail: "2", Bubbles: true})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"btn:1", "btn:2", "parent"}, got)

	remove()
	assert.Equal(t, 0, btn.ListenerCount("click"))
}

func TestEvents_StopPropagation(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")
	require.NoError(t, parent.AppendChild(child))

	child.AddEventListener("x", func(ev *Event) { ev.StopPropagation() })
	parentCalled := false
	parent.AddEventListener("x", func(*Event) { parentCalled = true })

	child.Dispatch(&Event{Type: "x", Bubbles: true})
	assert.False(t, parentCalled)
}

func TestInto_SelectorAndHandle(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<body><main id="app"></main></body>`))
	require.NoError(t, err)

	el := doc.CreateElement("p")
	_, err = el.Into(Selector("#app"))
	require.NoError(t, err)
	assert.Equal(t, "main", el.Parent().Tag())

	other := doc.CreateElement("aside")
	_, err = el.Into(other)
	require.NoError(t, err)
	assert.Same(t, other, el.Parent())
}

func TestInto_MissingParent(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("p")

	_, err := el.Into(Selector("#missing-selector"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParentNotFound))
	assert.Nil(t, el.Node().Parent)

	var nilEl *Element
	_, err = el.Into(nilEl)
	assert.True(t, errors.Is(err, errors.ErrNotElement))
}

func TestClone_IsIndependent(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttribute("data-x", "1")
	require.NoError(t, el.SetInnerHTML("<span>in</span>"))
	el.AddEventListener("click", func(*Event) {})

	cp := el.Clone()
	cp.SetAttribute("data-x", "2")
	cp.Children()[0].SetText("changed")

	v, _ := el.Attribute("data-x")
	assert.Equal(t, "1", v)
	assert.Equal(t, "in", el.Text())
	assert.Equal(t, 0, cp.ListenerCount("click"))
}

func TestDispose_RunsSubtreeCleanupsOnce(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	require.NoError(t, outer.AppendChild(inner))
	require.NoError(t, doc.Body().AppendChild(outer))

	var calls []string
	outer.AddCleanup(func() { calls = append(calls, "outer") })
	inner.AddCleanup(func() { calls = append(calls, "inner") })

	outer.Dispose()
	outer.Dispose()

	assert.ElementsMatch(t, []string{"outer", "inner"}, calls)
	assert.False(t, doc.Contains(outer))
	assert.True(t, inner.Disposed())

	late := false
	inner.AddCleanup(func() { late = true })
	assert.True(t, late, "cleanups added after dispose run immediately")
}

func TestRender(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("h1")
	el.SetText("Title")
	require.NoError(t, doc.Body().AppendChild(el))

	assert.Contains(t, doc.String(), "<body><h1>Title</h1></body>")
	assert.Equal(t, "<h1>Title</h1>", el.OuterHTML())
}
