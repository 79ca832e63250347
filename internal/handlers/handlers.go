// Package handlers serves the reading tracker: the progress page, page
// entries and the contact form. Outcomes reach the reader as flash messages
// shown on the page they are redirected to.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/flashkit/internal"
	"github.com/dmitrymomot/flashkit/internal/reading"
	"github.com/dmitrymomot/flashkit/internal/views"
)

// recentEntries is how many entries the index page lists.
const recentEntries = 10

// Reading serves the progress page and records entries.
type Reading struct {
	log *reading.Log
}

// NewReading returns the handler for log.
func NewReading(log *reading.Log) *Reading {
	return &Reading{log: log}
}

// Routes implements internal.Handler.
func (h *Reading) Routes(r internal.Router) {
	r.GET("/", h.index)
	r.GET("/entries", h.redirectHome)
	r.POST("/entries", h.record)
}

func (h *Reading) index(c internal.Context) error {
	return c.Render(http.StatusOK, views.Index(views.IndexData{
		Book:     h.log.Book(),
		Deadline: h.log.Deadline(),
		Status:   h.log.Status(),
		Percent:  h.log.Percent(),
		Graph:    h.log.GraphString(),
		Entries:  h.log.Recent(recentEntries),
	}))
}

func (h *Reading) redirectHome(c internal.Context) error {
	return c.Redirect(http.StatusFound, "/")
}

func (h *Reading) record(c internal.Context) error {
	page, err := reading.ParsePage(c.Form("page"))
	if err == nil {
		_, err = h.log.Record(page)
	}
	if err != nil {
		c.LogInfo("entry rejected", "page", c.Form("page"), "error", err)
		if ferr := c.SetFlash(h.log.Message(err)); ferr != nil {
			return ferr
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}

	c.LogInfo("entry recorded", "page", page)
	if err := c.SetFlashMarkdown(fmt.Sprintf("Recorded page **%d**.", page)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Contact serves the contact form.
type Contact struct{}

// NewContact returns the contact form handler.
func NewContact() *Contact {
	return &Contact{}
}

// Routes implements internal.Handler.
func (h *Contact) Routes(r internal.Router) {
	r.GET("/contact", h.show)
	r.POST("/contact", h.send)
}

func (h *Contact) show(c internal.Context) error {
	return c.Render(http.StatusOK, views.Contact())
}

// send records the message in the log. Delivery is left to log shipping.
func (h *Contact) send(c internal.Context) error {
	c.LogInfo("contact message",
		"from", c.Form("from"),
		"subject", c.Form("subject"),
		"body", c.Form("body"),
	)
	if err := c.SetFlash("Your message was successfully sent."); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
