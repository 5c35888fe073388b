package luxem

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
)

// TestCorpus replays a hand-written fixture document against the
// reader twice: once fed whole, once fed one byte at a time. Besides
// confirming the reader accepts realistic documents without error,
// this checks the depth-conservation and chunking-transparency
// properties over a larger, more varied input than the individual
// scenario tests in reader_test.go.
func TestCorpus(t *testing.T) {
	c := qt.New(t)
	data, err := os.ReadFile(filepath.Join("testdata", "corpus.luxem"))
	c.Assert(err, qt.IsNil)

	var whole []event
	rWhole := NewReader()
	rWhole.Handler = recordingHandler(&whole)
	_, err = rWhole.Feed(data)
	c.Assert(err, qt.IsNil)
	c.Assert(len(whole) > 0, qt.IsTrue)
	assertBalanced(c, whole)

	var byteAtATime []event
	r := NewReader()
	r.Handler = recordingHandler(&byteAtATime)
	var buf []byte
	for _, b := range data {
		buf = append(buf, b)
		n, err := r.Feed(buf)
		c.Assert(err, qt.IsNil)
		buf = buf[n:]
	}
	if diff := cmp.Diff(whole, byteAtATime, cmp.AllowUnexported(event{})); diff != "" {
		t.Fatalf("byte-at-a-time feed diverged from whole feed (-whole +byteAtATime):\n%s", diff)
	}
}

// assertBalanced checks the depth-conservation testable property:
// every *_begin has a matching *_end.
func assertBalanced(c *qt.C, events []event) {
	depth := 0
	for _, e := range events {
		switch e.kind {
		case "object_begin", "array_begin":
			depth++
		case "object_end", "array_end":
			depth--
			c.Assert(depth >= 0, qt.IsTrue, qt.Commentf("unbalanced close at %+v", e))
		}
	}
	c.Assert(depth, qt.Equals, 0)
}
