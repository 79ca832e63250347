// Package internal implements the flashkit web runtime: an App built on chi,
// a request Context with cookie and flash helpers, HTTPError based error
// handling, health endpoints and graceful shutdown.
//
// The root flashkit package re-exports this API; applications import that
// package instead.
//
// # Flash messages
//
// Handlers queue a one-shot notice for the next page load:
//
//	func (h *ContactHandler) send(c flashkit.Context) error {
//	    if err := c.SetFlash("Your message was successfully sent."); err != nil {
//	        return err
//	    }
//	    return c.Redirect(http.StatusFound, "/")
//	}
//
// The notice travels in the flash_message cookie, legacy percent escaped. It
// is shown by the page-ready routine, either in the browser or on the server
// through middlewares.PageReady.
//
// # Errors
//
// Handlers return errors; the app hands them to its ErrorHandler. Return an
// *HTTPError to pick the status code and user message, anything else renders
// as a 500 with a generic message and is logged.
//
// # Lifecycle
//
// App.Run listens on the address, serves until the context is cancelled or
// SIGINT/SIGTERM arrives, then shuts the server down and runs the shutdown
// hooks under one timeout.
package internal
