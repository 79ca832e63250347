// Package sanitizer cleans untrusted markup with bluemonday policies.
//
// [FlashHTML] is applied to flash messages before the banner inserts them,
// since a flash cookie can be set by anything that can write to the cookie
// jar. [StripHTML] reduces markup to text and [SanitizeHTMLCustom] applies a
// caller supplied policy.
package sanitizer
