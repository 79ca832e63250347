// Package jar provides cookie jars that back [cookie.Store].
//
// A jar is the ambient cookie string of one page: reading it yields every
// visible cookie as "a=1; b=2", writing it applies one assignment such as
// "a=1; expires=Thu, 01 Jan 1970 00:00:00 GMT; path=/". Three implementations
// are provided:
//
//   - [Memory]: in-process, browser semantics (name+path keys, expiry,
//     path scoping, longer paths listed first). Used by tests and previews.
//   - [HTTP]: request scoped. Seeded from the request's Cookie header, writes
//     Set-Cookie headers. Used when the page-ready routine runs on the server.
//   - [SQLite]: persistent store on modernc.org/sqlite, modelled on a browser
//     profile's cookie database.
//
// Duplicate names arise naturally when the same name is set on two paths:
//
//	j := jar.NewMemory(jar.WithDocumentPath("/books/1"))
//	j.SetCookie("view=list; path=/")
//	j.SetCookie("view=grid; path=/books")
//	j.Cookie() // "view=grid; view=list"
package jar

import "github.com/dmitrymomot/flashkit/pkg/cookie"

var (
	_ cookie.Jar = (*Memory)(nil)
	_ cookie.Jar = (*HTTP)(nil)
	_ cookie.Jar = (*SQLite)(nil)
)
