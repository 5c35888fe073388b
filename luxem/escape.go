package luxem

import (
	"bytes"
	"errors"
)

// ErrTrailingBackslash is returned by Unescape when s ends in an
// unpaired backslash. The source format leaves this case undefined;
// per the design notes this implementation treats it as an error
// rather than guessing at the intended byte.
var ErrTrailingBackslash = errors.New("luxem: trailing backslash with no following byte")

// Escape returns a copy of s in which every occurrence of delim or \
// is preceded by a \. If s contains neither byte, Escape returns s
// itself unchanged so that callers writing the result directly can
// skip an allocation.
func Escape(s []byte, delim byte) []byte {
	n := countEscapes(s, delim)
	if n == 0 {
		return s
	}
	out := make([]byte, 0, len(s)+n)
	for _, b := range s {
		if b == delim || b == '\\' {
			out = append(out, '\\')
		}
		out = append(out, b)
	}
	return out
}

func countEscapes(s []byte, delim byte) int {
	n := 0
	for _, b := range s {
		if b == delim || b == '\\' {
			n++
		}
	}
	return n
}

// Unescape returns a copy of s in which every \ is removed and the
// byte that follows it is copied verbatim. If s contains no
// backslash, Unescape returns s itself unchanged. A trailing,
// unpaired backslash is reported via ErrTrailingBackslash.
func Unescape(s []byte) ([]byte, error) {
	if bytes.IndexByte(s, '\\') < 0 {
		return s, nil
	}
	out := make([]byte, 0, len(s))
	escaped := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		if escaped {
			out = append(out, b)
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}
		out = append(out, b)
	}
	if escaped {
		return nil, ErrTrailingBackslash
	}
	return out, nil
}
