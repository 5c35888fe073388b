package luxem

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestIsWordByte(t *testing.T) {
	c := qt.New(t)
	for _, b := range []byte(" \t\n:,(){}[]\"\\") {
		c.Assert(isWordByte(b), qt.IsFalse, qt.Commentf("byte %q", b))
	}
	for _, b := range []byte("abcXYZ019_-.") {
		c.Assert(isWordByte(b), qt.IsTrue, qt.Commentf("byte %q", b))
	}
}

func TestIsWord(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsWord([]byte("")), qt.IsFalse)
	c.Assert(IsWord([]byte("hello")), qt.IsTrue)
	c.Assert(IsWord([]byte("hello world")), qt.IsFalse)
	c.Assert(IsWord([]byte(`a"b`)), qt.IsFalse)
	c.Assert(IsWord([]byte(`a\b`)), qt.IsFalse)
	c.Assert(IsWord([]byte("a(b)")), qt.IsFalse)
}
