//go:build go1.18
// +build go1.18

package luxem

import "testing"

// FuzzReader checks that Feed never panics and always either
// terminates with hungry (consuming a prefix no longer than the
// input) or latches a single error, on arbitrary bytes.
func FuzzReader(f *testing.F) {
	f.Add([]byte(`{a:1,}`))
	f.Add([]byte(`(T)[x,(U)y]`))
	f.Add([]byte(`{"k v":"a,b"}`))
	f.Add([]byte(`{a\:b:1}`))
	f.Fuzz(func(t *testing.T, data []byte) {
		r := NewReader()
		n, err := r.Feed(data)
		if n > len(data) {
			t.Fatalf("consumed %d bytes out of %d", n, len(data))
		}
		if err == nil && n < len(data) {
			// Hungry: feeding the remainder must not panic either.
			rest := data[n:]
			if _, err2 := r.Feed(rest); err2 != nil && r.Err() == nil {
				t.Fatalf("Feed returned an error not reflected in Err(): %v", err2)
			}
		}
	})
}

// FuzzEscapeUnescape checks the escape involution testable property
// for arbitrary byte sequences and both delimiters.
func FuzzEscapeUnescape(f *testing.F) {
	f.Add([]byte(`a"b\c`), byte('"'))
	f.Add([]byte(`a)b\c`), byte(')'))
	f.Fuzz(func(t *testing.T, data []byte, delimSeed byte) {
		delim := byte('"')
		if delimSeed%2 == 1 {
			delim = ')'
		}
		escaped := Escape(data, delim)
		unescaped, err := Unescape(escaped)
		if err != nil {
			t.Fatalf("Unescape(Escape(data)) failed: %v", err)
		}
		if string(unescaped) != string(data) {
			t.Fatalf("round trip mismatch: got %q, want %q", unescaped, data)
		}
	})
}
