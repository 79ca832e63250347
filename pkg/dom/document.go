package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an in-memory Tree over a parsed HTML document.
// Clicks are delivered with Click; focus is rendered as autofocus.
type Document struct {
	root     *html.Node
	doc      *goquery.Document
	handlers map[*html.Node][]ClickHandler
	focused  *html.Node
}

var _ Tree = (*Document)(nil)

// element is the Element handle of a Document.
type element struct {
	n *html.Node
}

func (e element) Tag() string {
	return e.n.Data
}

func (e element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Node returns the underlying html node of an element produced by a Document.
func Node(el Element) (*html.Node, bool) {
	e, ok := el.(element)
	if !ok || e.n == nil {
		return nil, false
	}
	return e.n, true
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return newDocument(root), nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:     root,
		doc:      goquery.NewDocumentFromNode(root),
		handlers: make(map[*html.Node][]ClickHandler),
	}
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.Join(ErrRender, err)
	}
	return nil
}

// HTML renders the document to a string.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OuterHTML renders one element.
func (d *Document) OuterHTML(el Element) (string, error) {
	n, ok := Node(el)
	if !ok {
		return "", ErrForeignNode
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return buf.String(), nil
}

// Find returns the attached elements matching a CSS selector, in document order.
func (d *Document) Find(selector string) []Element {
	sel := d.doc.Find(selector)
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{n: s.Get(0)})
	})
	return out
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) (Element, bool) {
	sel := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
	return d.wrap(sel)
}

// FirstByClass returns the first element carrying class.
func (d *Document) FirstByClass(class string) (Element, bool) {
	sel := d.doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	}).First()
	return d.wrap(sel)
}

// Create returns a new detached element.
func (d *Document) Create(tag string, attrs ...Attr) Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	return element{n: n}
}

// SetAttr sets or replaces an attribute.
func (d *Document) SetAttr(el Element, name, value string) {
	n, ok := Node(el)
	if !ok {
		return
	}
	setAttr(n, name, value)
}

// Text returns the text content of el.
func (d *Document) Text(el Element) string {
	n, ok := Node(el)
	if !ok {
		return ""
	}
	return goquery.NewDocumentFromNode(n).Text()
}

// SetText replaces the children of el with text.
func (d *Document) SetText(el Element, text string) {
	n, ok := Node(el)
	if !ok {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// AppendHTML parses markup in the context of parent and appends the result.
func (d *Document) AppendHTML(parent Element, markup string) error {
	n, ok := Node(parent)
	if !ok {
		return ErrForeignNode
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return errors.Join(ErrParse, err)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// Append moves child to the end of parent's children.
func (d *Document) Append(parent, child Element) {
	p, ok := Node(parent)
	if !ok {
		return
	}
	c, ok := Node(child)
	if !ok {
		return
	}
	detach(c)
	p.AppendChild(c)
}

// Prepend moves child to the start of parent's children.
func (d *Document) Prepend(parent, child Element) {
	p, ok := Node(parent)
	if !ok {
		return
	}
	c, ok := Node(child)
	if !ok {
		return
	}
	detach(c)
	p.InsertBefore(c, p.FirstChild)
}

// Parent returns the parent element of el.
func (d *Document) Parent(el Element) (Element, bool) {
	n, ok := Node(el)
	if !ok || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil, false
	}
	return element{n: n.Parent}, true
}

// Remove detaches el and its subtree.
func (d *Document) Remove(el Element) {
	n, ok := Node(el)
	if !ok {
		return
	}
	detach(n)
}

// Focus makes el the focused element.
func (d *Document) Focus(el Element) {
	n, ok := Node(el)
	if !ok {
		return
	}
	if d.focused != nil {
		removeAttr(d.focused, "autofocus")
	}
	d.focused = n
	setAttr(n, "autofocus", "")
}

// Focused returns the focused element, if it is still attached.
func (d *Document) Focused() (Element, bool) {
	if d.focused == nil || !d.attached(d.focused) {
		return nil, false
	}
	return element{n: d.focused}, true
}

// OnClick subscribes fn to clicks on el and its descendants.
func (d *Document) OnClick(el Element, fn ClickHandler) {
	n, ok := Node(el)
	if !ok || fn == nil {
		return
	}
	d.handlers[n] = append(d.handlers[n], fn)
}

// Click delivers a click to el, bubbling through its ancestors.
// The propagation path is fixed before the first handler runs, so handlers
// may detach nodes on it.
func (d *Document) Click(el Element) *Event {
	ev := &Event{Target: el}
	n, ok := Node(el)
	if !ok {
		return ev
	}

	var path []*html.Node
	for cur := n; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}

	for _, cur := range path {
		hs := d.handlers[cur]
		if len(hs) == 0 {
			continue
		}
		ev.Current = element{n: cur}
		for _, h := range hs {
			h(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.Current = nil
	return ev
}

// Contains reports whether el is attached to the document.
func (d *Document) Contains(el Element) bool {
	n, ok := Node(el)
	return ok && d.attached(n)
}

func (d *Document) attached(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

func (d *Document) wrap(sel *goquery.Selection) (Element, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return element{n: sel.Get(0)}, true
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
