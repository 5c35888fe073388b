package luxem

// byteSet is a compact bitset over the 256 possible byte values.
type byteSet [4]uint64

// newByteSet returns a set containing the bytes of s.
func newByteSet(s string) *byteSet {
	var set byteSet
	for i := 0; i < len(s); i++ {
		set.set(s[i])
	}
	return &set
}

// get reports whether x is a member of the set.
func (b *byteSet) get(x byte) bool {
	return b[x>>6]&(1<<(x&63)) != 0
}

// set ensures that x is a member of the set.
func (b *byteSet) set(x byte) {
	b[x>>6] |= 1 << (x & 63)
}

// union returns the union of b and b1.
func (b *byteSet) union(b1 *byteSet) *byteSet {
	r := *b
	for i := range r {
		r[i] |= b1[i]
	}
	return &r
}

// invert returns the complement of b.
func (b *byteSet) invert() *byteSet {
	r := *b
	for i := range r {
		r[i] = ^r[i]
	}
	return &r
}
