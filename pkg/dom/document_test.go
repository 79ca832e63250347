package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/dom"
)

const page = `<!DOCTYPE html>
<html><head><title>t</title></head>
<body>
<div id="hd"><input class="search first" name="q"></div>
<div id="bd"><p class="first">existing</p></div>
<span id="graph">1,0,-1</span>
</body></html>`

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(s)
	require.NoError(t, err)
	return doc
}

func TestDocumentLookup(t *testing.T) {
	t.Parallel()

	doc := parse(t, page)

	bd, ok := doc.ByID("bd")
	require.True(t, ok)
	assert.Equal(t, "div", bd.Tag())

	_, ok = doc.ByID("missing")
	assert.False(t, ok)

	first, ok := doc.FirstByClass("first")
	require.True(t, ok)
	assert.Equal(t, "input", first.Tag(), "first in document order")
	name, _ := first.Attr("name")
	assert.Equal(t, "q", name)

	_, ok = doc.FirstByClass("firs")
	assert.False(t, ok, "class match is by whole token")

	graph, ok := doc.ByID("graph")
	require.True(t, ok)
	assert.Equal(t, "1,0,-1", doc.Text(graph))
}

func TestDocumentCreateAndInsert(t *testing.T) {
	t.Parallel()

	doc := parse(t, page)
	bd, _ := doc.ByID("bd")

	el := doc.Create("DIV", dom.A("id", "note"))
	assert.Equal(t, "div", el.Tag())
	assert.False(t, doc.Contains(el))

	doc.Prepend(bd, el)
	assert.True(t, doc.Contains(el))
	require.NoError(t, doc.AppendHTML(el, "Hello <b>World</b>"))

	out, err := doc.OuterHTML(bd)
	require.NoError(t, err)
	assert.Equal(t, `<div id="bd"><div id="note">Hello <b>World</b></div><p class="first">existing</p></div>`, out)

	tail := doc.Create("span")
	doc.SetText(tail, "tail")
	doc.Append(bd, tail)
	assert.True(t, strings.HasSuffix(doc.Text(bd), "existingtail"))

	parent, ok := doc.Parent(el)
	require.True(t, ok)
	id, _ := parent.Attr("id")
	assert.Equal(t, "bd", id)

	doc.Remove(el)
	assert.False(t, doc.Contains(el))
	assert.Len(t, doc.Find("#note"), 0)
}

func TestDocumentSetAttrAndText(t *testing.T) {
	t.Parallel()

	doc := parse(t, page)
	graph, _ := doc.ByID("graph")

	doc.SetAttr(graph, "class", "spark")
	doc.SetAttr(graph, "class", "sparkline")
	v, ok := graph.Attr("class")
	require.True(t, ok)
	assert.Equal(t, "sparkline", v)

	doc.SetText(graph, "")
	assert.Empty(t, doc.Text(graph))
}

func TestDocumentFocus(t *testing.T) {
	t.Parallel()

	doc := parse(t, page)

	_, ok := doc.Focused()
	assert.False(t, ok)

	first, _ := doc.FirstByClass("first")
	doc.Focus(first)
	focused, ok := doc.Focused()
	require.True(t, ok)
	assert.Equal(t, first, focused)

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<input class="search first" name="q" autofocus=""/>`)

	bd, _ := doc.ByID("bd")
	doc.Focus(bd)
	_, ok = first.Attr("autofocus")
	assert.False(t, ok, "autofocus moves with focus")
}

func TestDocumentClickBubbles(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><body><div id="outer"><div id="inner"><a id="btn" href="#">X</a></div></div></body></html>`)
	btn, _ := doc.ByID("btn")
	outer, _ := doc.ByID("outer")

	var order []string
	doc.OnClick(outer, func(ev *dom.Event) {
		order = append(order, "outer")
		assert.Equal(t, btn, ev.Target)
		assert.Equal(t, outer, ev.Current)
	})
	doc.OnClick(btn, func(ev *dom.Event) {
		order = append(order, "btn")
		ev.PreventDefault()
	})

	ev := doc.Click(btn)
	assert.Equal(t, []string{"btn", "outer"}, order)
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, ev.Stopped())
}

func TestDocumentClickStopPropagation(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><body><div id="outer"><a id="btn" href="#">X</a></div></body></html>`)
	btn, _ := doc.ByID("btn")
	outer, _ := doc.ByID("outer")

	called := false
	doc.OnClick(outer, func(*dom.Event) { called = true })
	doc.OnClick(btn, func(ev *dom.Event) { ev.StopPropagation() })

	ev := doc.Click(btn)
	assert.True(t, ev.Stopped())
	assert.False(t, called)
	assert.False(t, ev.DefaultPrevented())
}

func TestDocumentClickHandlerMayRemoveAncestor(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><body><div id="box"><div><a id="btn" href="#">X</a></div></div></body></html>`)
	btn, _ := doc.ByID("btn")
	box, _ := doc.ByID("box")

	doc.OnClick(btn, func(ev *dom.Event) {
		container, ok := dom.Ancestor(doc, ev.Target, 2)
		require.True(t, ok)
		doc.Remove(container)
	})

	doc.Click(btn)
	assert.False(t, doc.Contains(box))
	_, ok := doc.ByID("box")
	assert.False(t, ok)
}

func TestAncestor(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><body><div id="a"><div id="b"><span id="c"></span></div></div></body></html>`)
	c, _ := doc.ByID("c")

	got, ok := dom.Ancestor(doc, c, 2)
	require.True(t, ok)
	id, _ := got.Attr("id")
	assert.Equal(t, "a", id)

	self, ok := dom.Ancestor(doc, c, 0)
	require.True(t, ok)
	assert.Equal(t, c, self)

	_, ok = dom.Ancestor(doc, c, 10)
	assert.False(t, ok)
}

func TestDocumentForeignElement(t *testing.T) {
	t.Parallel()

	doc := parse(t, page)
	var foreign fakeElement

	assert.ErrorIs(t, doc.AppendHTML(foreign, "x"), dom.ErrForeignNode)
	_, err := doc.OuterHTML(foreign)
	assert.ErrorIs(t, err, dom.ErrForeignNode)
	assert.False(t, doc.Contains(foreign))
	assert.Empty(t, doc.Text(foreign))
	ev := doc.Click(foreign)
	assert.False(t, ev.DefaultPrevented())
}

type fakeElement struct{}

func (fakeElement) Tag() string                { return "div" }
func (fakeElement) Attr(string) (string, bool) { return "", false }
