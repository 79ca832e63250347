// Package cookie manipulates cookies on both sides of a page load.
//
// # Page side
//
// [Store] works on a [Jar], the ambient "document cookie" string of a page.
// It mirrors what page script can do with that string and nothing more:
//
//	s := cookie.NewStore(jar)
//	s.Create("theme", "dark", 7)      // theme=dark; expires=<now+7d>; path=/
//	s.Create("seen", "1", 0)          // session cookie
//	v, ok := s.Read("theme")          // "dark", true
//	s.Erase("theme")                  // theme=; expires=<yesterday>; path=/
//
// [Store.Read] scans the jar string with [Scan]: it splits on ';', trims leading
// spaces and returns the first entry starting with "name=". When two cookies
// share a name, the first one listed wins. A missing cookie is reported with
// ok == false, never with an error.
//
// Values are written verbatim. Callers pre-encode ';' and '=' themselves.
//
// # Server side
//
// [Manager] sets and reads cookies on net/http requests and responses. Its
// [Manager.SetFlash] writes the flash_message cookie that the page-ready banner
// consumes, escaped with the legacy codec from package escape:
//
//	m := cookie.New(cookie.WithSecure(true))
//	_ = m.SetFlash(w, "Please specify a page.")
//	http.Redirect(w, r, "/", http.StatusSeeOther)
//
// # Configuration
//
// Manager options:
//   - [WithDomain]: Set the cookie domain
//   - [WithPath]: Set the cookie path (default: "/")
//   - [WithSecure]: Set the Secure flag (HTTPS only)
//   - [WithHTTPOnly]: Set the HttpOnly flag (default: true, ignored for flash)
//   - [WithSameSite]: Set the SameSite attribute (default: Lax)
//
// Store options:
//   - [WithClock]: Time source for expiry dates (default: time.Now)
//   - [WithStorePath]: Path attribute of written cookies (default: "/")
//
// # Errors
//
// The package defines these sentinel errors:
//   - [ErrNotFound]: Cookie does not exist
//   - [ErrBadFlash]: Flash message is empty
//   - [ErrBadHeader]: Cookie assignment or expiry date cannot be parsed
package cookie
