package luxem

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestASCII16RoundTrip(t *testing.T) {
	c := qt.New(t)
	for _, in := range [][]byte{
		{},
		{0x00},
		{0xFF},
		[]byte("hello world"),
		{0x00, 0x01, 0x0F, 0x10, 0xAB, 0xFF},
	} {
		encoded := ToASCII16(in)
		for _, b := range encoded {
			c.Assert(b >= 'a' && b <= 'p', qt.IsTrue, qt.Commentf("byte %q out of alphabet", b))
		}
		decoded, err := FromASCII16(encoded)
		c.Assert(err, qt.IsNil)
		c.Assert(decoded, qt.DeepEquals, in)
	}
}

func TestFromASCII16OddLength(t *testing.T) {
	c := qt.New(t)
	_, err := FromASCII16([]byte("a"))
	c.Assert(err, qt.ErrorIs, ErrInvalidASCII16)
}

func TestFromASCII16OutOfRange(t *testing.T) {
	c := qt.New(t)
	_, err := FromASCII16([]byte("az"))
	c.Assert(err, qt.ErrorIs, ErrInvalidASCII16)
}

func TestToASCII16KnownValue(t *testing.T) {
	c := qt.New(t)
	c.Assert(string(ToASCII16([]byte{0x00})), qt.Equals, "aa")
	c.Assert(string(ToASCII16([]byte{0xFF})), qt.Equals, "pp")
}
