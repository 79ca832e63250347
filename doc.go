// Package flashkit is a small web framework for server-rendered pages that
// carry one-shot flash messages in a cookie.
//
// A handler stores a notice with Context.SetFlash and redirects. The next
// page load shows it once as a dismissible banner and erases the cookie,
// either in the browser (cmd/flashwasm) or on the server with the
// middlewares.PageReady middleware. The cookie store, banner, sparkline and
// page-ready routine live in pkg/ and work against injected interfaces, so
// they run the same way in tests, on the server and in the browser.
//
// # Quick Start
//
//	app := flashkit.New(
//	    flashkit.WithLogger(log),
//	    flashkit.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    flashkit.WithHandlers(handlers.NewEntries(book)),
//	)
//
//	if err := app.Run(ctx, ":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] to declare routes:
//
//	type ContactHandler struct{}
//
//	func (h *ContactHandler) Routes(r flashkit.Router) {
//	    r.GET("/contact", h.show)
//	    r.POST("/contact", h.send)
//	}
//
//	func (h *ContactHandler) send(c flashkit.Context) error {
//	    if err := c.SetFlash("Your message was successfully sent."); err != nil {
//	        return err
//	    }
//	    return c.Redirect(http.StatusSeeOther, "/")
//	}
//
// # Errors
//
// Returning an error from a handler hands it to the app's [ErrorHandler].
// [HTTPError] carries the status code and the message shown to the user;
// any other error becomes a generic 500.
//
// # Shutdown
//
// Run handles SIGINT and SIGTERM and shuts down gracefully. Cleanup runs in
// shutdown hooks:
//
//	app.Run(ctx, addr, flashkit.ShutdownHook(func(context.Context) error {
//	    return sqliteJar.Close()
//	}))
package flashkit
