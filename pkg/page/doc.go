// Package page runs the page-ready routine shared by the browser binding, the
// server-side renderer and the pageready command.
//
//	doc, _ := dom.Parse(r)
//	res := page.Ready(ctx, doc, jar.NewMemory())
//	_ = doc.Render(w)
//
// Ready focuses the first element with class "first", turns the text of
// #graph into a tristate sparkline and shows the flash_message banner.
package page
