package page_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/jar"
	"github.com/dmitrymomot/flashkit/pkg/page"
	"github.com/dmitrymomot/flashkit/pkg/sparkline"
)

const index = `<html><body>
<div id="hd"><span id="graph">-1,0,1</span></div>
<div id="bd">
<form><input class="first" name="page"/><input class="first" name="other"/></form>
</div>
</body></html>`

func TestReady(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(index)
	require.NoError(t, err)

	m := jar.NewMemory()
	m.SetCookie("flash_message=Please%20specify%20a%20page.; path=/")

	res := page.Ready(context.Background(), doc, m)
	assert.True(t, res.Focused)
	assert.True(t, res.Graph)
	assert.True(t, res.Flash)
	require.NotNil(t, res.Banner)
	assert.Equal(t, flash.Shown, res.Banner.State())

	focused, ok := doc.Focused()
	require.True(t, ok)
	name, _ := focused.Attr("name")
	assert.Equal(t, "page", name)

	assert.Len(t, doc.Find("#graph .sparkline > span"), 3)
	assert.Len(t, doc.Find("#bd > #flash-message"), 1)
	assert.Equal(t, 0, m.Len())
}

func TestReadyBareDocument(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(`<html><body><p>plain</p></body></html>`)
	require.NoError(t, err)

	before, err := doc.HTML()
	require.NoError(t, err)

	res := page.Ready(context.Background(), doc, jar.NewMemory())
	assert.False(t, res.Focused)
	assert.False(t, res.Graph)
	assert.False(t, res.Flash)

	after, err := doc.HTML()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReadyStepsIndependent(t *testing.T) {
	t.Parallel()

	// no #bd: the banner is skipped but focus and graph still run
	doc, err := dom.ParseString(`<html><body><input class="first"/><span id="graph">1</span></body></html>`)
	require.NoError(t, err)

	m := jar.NewMemory()
	m.SetCookie("flash_message=hi; path=/")

	res := page.Ready(context.Background(), doc, m)
	assert.True(t, res.Focused)
	assert.True(t, res.Graph)
	assert.False(t, res.Flash)
	assert.Equal(t, 0, m.Len())
}

func TestReadyOptions(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(`<html><body>
<input class="start" name="a"/>
<span id="chart">1,1</span>
<main id="content"></main>
</body></html>`)
	require.NoError(t, err)

	m := jar.NewMemory()
	m.SetCookie("flash_message=%3Cb%3Ebold%3C/b%3E; path=/")

	res := page.Ready(context.Background(), doc, m,
		page.WithFocusClass("start"),
		page.WithGraphID("chart"),
		page.WithSparklineOptions(sparkline.WithHeight(10)),
		page.WithFlashOptions(flash.WithRegion("content"), flash.WithRawHTML()),
	)
	assert.True(t, res.Focused)
	assert.True(t, res.Graph)
	assert.True(t, res.Flash)

	assert.Len(t, doc.Find("#content > #flash-message b"), 1)
	assert.Len(t, doc.Find("#chart .sparkline > span"), 2)
}

func TestReadyDismiss(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(index)
	require.NoError(t, err)

	m := jar.NewMemory()
	m.SetCookie("flash_message=Done; path=/")

	res := page.Ready(context.Background(), doc, m)
	require.True(t, res.Flash)

	button, ok := doc.ByID(flash.ButtonID)
	require.True(t, ok)
	ev := doc.Click(button)

	assert.True(t, ev.DefaultPrevented())
	assert.Empty(t, doc.Find("#flash-message"))
	assert.Equal(t, flash.Idle, res.Banner.State())
}

func TestReadyAttachesRenderedBanner(t *testing.T) {
	t.Parallel()

	server, err := dom.ParseString(index)
	require.NoError(t, err)

	m := jar.NewMemory()
	m.SetCookie("flash_message=Saved; path=/")
	require.True(t, page.Ready(context.Background(), server, m).Flash)

	rendered, err := server.HTML()
	require.NoError(t, err)

	// The browser loads the rendered page after the cookie was erased.
	doc, err := dom.ParseString(rendered)
	require.NoError(t, err)

	res := page.Ready(context.Background(), doc, m)
	assert.False(t, res.Flash)
	require.True(t, res.Attached)
	assert.Len(t, doc.Find("#flash-message"), 1)

	button, ok := doc.ByID(flash.ButtonID)
	require.True(t, ok)
	ev := doc.Click(button)

	assert.True(t, ev.DefaultPrevented())
	assert.Empty(t, doc.Find("#flash-message"))
	assert.Equal(t, flash.Idle, res.Banner.State())
}

func TestReadyNothingToAttach(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(index)
	require.NoError(t, err)

	res := page.Ready(context.Background(), doc, jar.NewMemory())
	assert.False(t, res.Flash)
	assert.False(t, res.Attached)
	assert.Equal(t, flash.Idle, res.Banner.State())
}
