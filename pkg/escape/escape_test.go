package escape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/flashkit/pkg/escape"
)

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no escapes", input: "Hello", expected: "Hello"},
		{name: "space", input: "Hello%20World", expected: "Hello World"},
		{name: "plus stays plus", input: "a+b", expected: "a+b"},
		{name: "latin1 byte", input: "caf%E9", expected: "café"},
		{name: "utf8 bytes decode as latin1", input: "%C3%A9", expected: "Ã©"},
		{name: "unicode escape", input: "%u263A", expected: "☺"},
		{name: "lowercase hex", input: "%u263a%3c", expected: "☺<"},
		{name: "surrogate pair", input: "%uD83D%uDE00", expected: "😀"},
		{name: "lone surrogate", input: "%uD83D", expected: "�"},
		{name: "markup", input: "%3Cb%3Ebold%3C/b%3E", expected: "<b>bold</b>"},
		{name: "trailing percent", input: "100%", expected: "100%"},
		{name: "short escape", input: "%2", expected: "%2"},
		{name: "invalid hex", input: "%zz%", expected: "%zz%"},
		{name: "invalid unicode falls back to byte escape", input: "%u12", expected: "%u12"},
		{name: "non-ascii input passes through", input: "héllo%21", expected: "héllo!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, escape.Unescape(tt.input))
		})
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "safe characters", input: "AZaz09@*_+-./", expected: "AZaz09@*_+-./"},
		{name: "space", input: "Hello World", expected: "Hello%20World"},
		{name: "cookie delimiters", input: "a=b; c", expected: "a%3Db%3B%20c"},
		{name: "latin1", input: "café", expected: "caf%E9"},
		{name: "bmp", input: "☺", expected: "%u263A"},
		{name: "astral", input: "😀", expected: "%uD83D%uDE00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, escape.Escape(tt.input))
		})
	}
}

func TestEscapeUnescapeInverse(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"Please specify a page.",
		"Your message was successfully sent.",
		`<p class="x">Saved &amp; done</p>`,
		"ünïcødé ☺ 😀",
		"100% sure",
	} {
		assert.Equal(t, s, escape.Unescape(escape.Escape(s)), s)
	}
}
