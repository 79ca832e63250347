//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/dmitrymomot/flashkit/pkg/dom"
)

// element wraps a live DOM node.
type element struct {
	v js.Value
}

func (e element) Tag() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

// tree implements dom.Tree over the browser document.
type tree struct {
	doc js.Value
}

func newTree(doc js.Value) *tree {
	return &tree{doc: doc}
}

func wrap(v js.Value) (dom.Element, bool) {
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return element{v: v}, true
}

func node(el dom.Element) js.Value {
	return el.(element).v
}

func (t *tree) ByID(id string) (dom.Element, bool) {
	return wrap(t.doc.Call("getElementById", id))
}

func (t *tree) FirstByClass(class string) (dom.Element, bool) {
	return wrap(t.doc.Call("getElementsByClassName", class).Index(0))
}

func (t *tree) Create(tag string, attrs ...dom.Attr) dom.Element {
	v := t.doc.Call("createElement", tag)
	for _, a := range attrs {
		v.Call("setAttribute", a.Name, a.Value)
	}
	return element{v: v}
}

func (t *tree) SetAttr(el dom.Element, name, value string) {
	node(el).Call("setAttribute", name, value)
}

func (t *tree) Text(el dom.Element) string {
	return node(el).Get("textContent").String()
}

func (t *tree) SetText(el dom.Element, text string) {
	node(el).Set("textContent", text)
}

func (t *tree) AppendHTML(parent dom.Element, markup string) error {
	node(parent).Call("insertAdjacentHTML", "beforeend", markup)
	return nil
}

func (t *tree) Append(parent, child dom.Element) {
	node(parent).Call("appendChild", node(child))
}

func (t *tree) Prepend(parent, child dom.Element) {
	p := node(parent)
	p.Call("insertBefore", node(child), p.Get("firstChild"))
}

func (t *tree) Parent(el dom.Element) (dom.Element, bool) {
	return wrap(node(el).Get("parentElement"))
}

func (t *tree) Remove(el dom.Element) {
	node(el).Call("remove")
}

func (t *tree) Focus(el dom.Element) {
	node(el).Call("focus")
}

// OnClick registers a listener that lives as long as the page.
func (t *tree) OnClick(el dom.Element, fn dom.ClickHandler) {
	current := node(el)
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		jsEv := args[0]
		target, ok := wrap(jsEv.Get("target"))
		if !ok {
			return nil
		}
		ev := &dom.Event{Target: target, Current: element{v: current}}
		fn(ev)
		if ev.DefaultPrevented() {
			jsEv.Call("preventDefault")
		}
		if ev.Stopped() {
			jsEv.Call("stopPropagation")
		}
		return nil
	})
	current.Call("addEventListener", "click", cb)
}
