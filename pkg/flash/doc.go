// Package flash shows a one-shot notice carried by the flash_message cookie.
//
// A server handler stores the notice with cookie.Manager.SetFlash, usually
// after rendering it with Markdown. On the next page load Banner.Ready reads
// the cookie, decodes it with the legacy percent codec, prepends a dismissible
// banner to the #bd region and erases the cookie, so the notice is shown
// exactly once:
//
//	<div id="flash-message">
//	  <div id="flash-message-close">
//	    <a title="dismiss this message" id="flash-message-button" href="#">X</a>
//	  </div>
//	  Your message was successfully sent.
//	</div>
//
// Clicking the close control removes the banner and suppresses the
// placeholder navigation.
//
// # Usage
//
//	store := cookie.NewStore(jar)
//	banner := flash.New(store, flash.WithLogger(log))
//	if banner.Ready(ctx, doc) {
//		// banner is on the page
//	}
//
// # Sanitizing
//
// Decoded messages go through sanitizer.FlashHTML before insertion, which keeps
// inline formatting and links and drops scripts and event handlers. Pass
// WithRawHTML when every writer of the cookie is trusted and the markup must be
// inserted verbatim, or WithSanitizer to supply another policy.
package flash
