// Package escape implements the legacy percent codec used for flash message
// cookie values.
//
// The codec is not URL encoding. A plus sign stays a plus sign, %XX decodes to
// the Latin-1 character 0xXX (so "%C3%A9" becomes "Ã©", not "é"), and %uXXXX
// decodes to a single UTF-16 code unit:
//
//	escape.Unescape("Hello%20World")  // "Hello World"
//	escape.Unescape("caf%E9")         // "café"
//	escape.Unescape("%u263A")         // "☺"
//	escape.Escape("café ☺")           // "caf%E9%20%u263A"
//
// Writers must use [Escape] so that the reader's [Unescape] reproduces the
// original text. Malformed sequences such as "%zz" or a trailing "%" are kept
// literally.
package escape
