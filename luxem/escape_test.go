package luxem

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

var escapeTests = []struct {
	testName string
	in       string
	delim    byte
	want     string
}{{
	testName: "empty",
	in:       "",
	delim:    '"',
	want:     "",
}, {
	testName: "no special bytes",
	in:       "hello",
	delim:    '"',
	want:     "hello",
}, {
	testName: "escapes delimiter",
	in:       `a"b`,
	delim:    '"',
	want:     `a\"b`,
}, {
	testName: "escapes backslash regardless of delimiter",
	in:       `a\b`,
	delim:    ')',
	want:     `a\\b`,
}, {
	testName: "different delimiter left alone",
	in:       `a"b`,
	delim:    ')',
	want:     `a"b`,
}, {
	testName: "multiple escapes",
	in:       `"\"\"`,
	delim:    '"',
	want:     `\"\\\"\\\"`,
}}

func TestEscape(t *testing.T) {
	c := qt.New(t)
	for _, test := range escapeTests {
		c.Run(test.testName, func(c *qt.C) {
			got := Escape([]byte(test.in), test.delim)
			c.Assert(string(got), qt.Equals, test.want)
		})
	}
}

func TestEscapeReturnsInputWhenUnchanged(t *testing.T) {
	c := qt.New(t)
	in := []byte("hello")
	got := Escape(in, '"')
	c.Assert(&got[0], qt.Equals, &in[0])
}

func TestUnescapeRoundTrip(t *testing.T) {
	c := qt.New(t)
	for _, test := range escapeTests {
		c.Run(test.testName, func(c *qt.C) {
			got, err := Unescape([]byte(test.want))
			c.Assert(err, qt.IsNil)
			c.Assert(string(got), qt.Equals, test.in)
		})
	}
}

func TestUnescapeReturnsInputWhenUnchanged(t *testing.T) {
	c := qt.New(t)
	in := []byte("hello")
	got, err := Unescape(in)
	c.Assert(err, qt.IsNil)
	c.Assert(&got[0], qt.Equals, &in[0])
}

func TestUnescapeTrailingBackslash(t *testing.T) {
	c := qt.New(t)
	_, err := Unescape([]byte(`a\`))
	c.Assert(err, qt.ErrorIs, ErrTrailingBackslash)
}
