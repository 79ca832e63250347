// Package dom abstracts the page tree that page-ready routines manipulate.
//
// [Tree] is the small surface those routines need: lookup by id and class,
// element creation, insertion, removal, focus and click subscription. Code
// written against it runs unchanged on the server, in tests and in the
// browser binding.
//
// [Document] implements Tree over golang.org/x/net/html with goquery
// selectors. It also delivers synthetic clicks, which makes event handlers
// testable:
//
//	doc, _ := dom.ParseString(`<div id="bd"><a id="x" href="#">X</a></div>`)
//	a, _ := doc.ByID("x")
//	doc.OnClick(a, func(ev *dom.Event) { ev.PreventDefault() })
//	ev := doc.Click(a)
//	ev.DefaultPrevented() // true
//
// Focus is rendered as an autofocus attribute so a server-rendered page
// opens with the same element focused.
package dom
