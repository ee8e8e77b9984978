package frame

import (
	"fmt"
	"strings"
)

// wordSize is the width of the Bitmap storage word in bits.
const wordSize = 8

// Bitmap is a compact bit vector with room for up to 8 bits, used by Frame
// as one row of the frame buffer. Bits are stored MSB-aligned so that
// narrow patterns keep their left-to-right visual order. Bitmap is a value
// type; copy it, never share it.
type Bitmap struct {
	data  uint8
	nbits int
}

// NewBitmap stores the low nbits of pattern shifted up against the most
// significant bits of the word. nbits must be in [1, 8].
func NewBitmap(pattern uint8, nbits int) Bitmap {
	if nbits < 1 || nbits > wordSize {
		panic(fmt.Sprintf("frame: bitmap width %d out of range [1, %d]", nbits, wordSize))
	}
	if nbits < wordSize {
		pattern <<= uint(wordSize - nbits)
	}
	return Bitmap{data: pattern, nbits: nbits}
}

// EmptyBitmap returns an all-zero bitmap of the given width.
func EmptyBitmap(nbits int) Bitmap {
	return NewBitmap(0, nbits)
}

// Len returns the number of meaningful bits.
func (b Bitmap) Len() int {
	return b.nbits
}

// Set turns on the given bit. Panics if bit >= Len().
func (b *Bitmap) Set(bit int) {
	b.check(bit)
	b.data |= 1 << uint(wordSize-1-bit)
}

// Clear turns off the given bit. Panics if bit >= Len().
func (b *Bitmap) Clear(bit int) {
	b.check(bit)
	b.data &^= 1 << uint(wordSize-1-bit)
}

// IsSet reports whether the given bit is on. Panics if bit >= Len().
func (b Bitmap) IsSet(bit int) bool {
	b.check(bit)
	return b.data&(1<<uint(wordSize-1-bit)) != 0
}

// ClearAll turns off every bit.
func (b *Bitmap) ClearAll() {
	b.data = 0
}

// ShiftLeft shifts all bits left by n positions. Bits crossing the word
// boundary are discarded, zeroes fill in from the right.
func (b *Bitmap) ShiftLeft(n int) {
	if n >= wordSize {
		b.data = 0
		return
	}
	b.data <<= uint(n)
}

// ShiftRight shifts all bits right by n positions. Bits crossing the word
// boundary are discarded, zeroes fill in from the left.
func (b *Bitmap) ShiftRight(n int) {
	if n >= wordSize {
		b.data = 0
		return
	}
	b.data >>= uint(n)
}

// Or combines other into b bitwise. Both bitmaps are assumed to have the
// same width; that is the caller's responsibility.
func (b *Bitmap) Or(other Bitmap) {
	b.data |= other.data
}

// And intersects other into b bitwise. Both bitmaps are assumed to have
// the same width; that is the caller's responsibility.
func (b *Bitmap) And(other Bitmap) {
	b.data &= other.data
}

// String renders the bitmap as a run of 0s and 1s, leftmost bit first.
func (b Bitmap) String() string {
	var sb strings.Builder
	for i := 0; i < b.nbits; i++ {
		if b.IsSet(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (b Bitmap) check(bit int) {
	if bit < 0 || bit >= b.nbits {
		panic(fmt.Sprintf("frame: bit %d out of range [0, %d)", bit, b.nbits))
	}
}
