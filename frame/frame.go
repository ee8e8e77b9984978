// Package frame provides the in-memory building blocks for a multiplexed
// LED pixel grid: compact bit-vector rows, a fixed-dimension frame buffer
// and a clamped brightness level.
package frame

import (
	"fmt"
	"strings"
)

// MaxWidth and MaxHeight bound frame dimensions so a row always fits one
// storage word and a Frame stays a fixed-footprint value type.
const (
	MaxWidth  = wordSize
	MaxHeight = 8
)

// Frame is an X by Y grid of Bitmap rows, the frame buffer and animation
// keyframe type. Dimensions are fixed at construction and checked there;
// pixel operations delegate to the row bitmaps. Frame is a value type:
// callers copy it, nothing aliases the rows.
type Frame struct {
	width  int
	height int
	rows   [MaxHeight]Bitmap
}

// NewFrame builds a frame from its row bitmaps. All rows must share the
// same width; mismatched combinations panic at construction rather than
// misrender later.
func NewFrame(rows []Bitmap) Frame {
	if len(rows) < 1 || len(rows) > MaxHeight {
		panic(fmt.Sprintf("frame: height %d out of range [1, %d]", len(rows), MaxHeight))
	}
	f := Frame{width: rows[0].Len(), height: len(rows)}
	for i, r := range rows {
		if r.Len() != f.width {
			panic(fmt.Sprintf("frame: row %d width %d does not match %d", i, r.Len(), f.width))
		}
		f.rows[i] = r
	}
	return f
}

// EmptyFrame returns an all-off frame of the given dimensions.
func EmptyFrame(width, height int) Frame {
	if height < 1 || height > MaxHeight {
		panic(fmt.Sprintf("frame: height %d out of range [1, %d]", height, MaxHeight))
	}
	f := Frame{width: width, height: height}
	for i := 0; i < height; i++ {
		f.rows[i] = EmptyBitmap(width)
	}
	return f
}

// Width returns the frame width in pixels.
func (f Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f Frame) Height() int {
	return f.height
}

// Set turns on the pixel at column x, row y. (0,0) is top-left.
func (f *Frame) Set(x, y int) {
	f.checkRow(y)
	f.rows[y].Set(x)
}

// Unset turns off the pixel at column x, row y.
func (f *Frame) Unset(x, y int) {
	f.checkRow(y)
	f.rows[y].Clear(x)
}

// IsSet reports whether the pixel at column x, row y is on.
func (f Frame) IsSet(x, y int) bool {
	f.checkRow(y)
	return f.rows[y].IsSet(x)
}

// Clear turns off every pixel.
func (f *Frame) Clear() {
	for i := 0; i < f.height; i++ {
		f.rows[i].ClearAll()
	}
}

// Or combines other into f row by row.
func (f *Frame) Or(other Frame) {
	for i := 0; i < f.height; i++ {
		f.rows[i].Or(other.rows[i])
	}
}

// And intersects other into f row by row.
func (f *Frame) And(other Frame) {
	for i := 0; i < f.height; i++ {
		f.rows[i].And(other.rows[i])
	}
}

// ShiftLeft shifts the whole frame left by n pixels. Pixels crossing the
// left edge are discarded, the right edge fills with off pixels.
func (f *Frame) ShiftLeft(n int) {
	for i := 0; i < f.height; i++ {
		f.rows[i].ShiftLeft(n)
	}
}

// ShiftRight shifts the whole frame right by n pixels. Pixels crossing the
// right edge are discarded, the left edge fills with off pixels.
func (f *Frame) ShiftRight(n int) {
	for i := 0; i < f.height; i++ {
		f.rows[i].ShiftRight(n)
	}
}

// Equal reports pixel-wise structural equality.
func (f Frame) Equal(other Frame) bool {
	if f.width != other.width || f.height != other.height {
		return false
	}
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.rows[y].IsSet(x) != other.rows[y].IsSet(x) {
				return false
			}
		}
	}
	return true
}

// String renders the frame as rows of 0s and 1s, top row first.
func (f Frame) String() string {
	var sb strings.Builder
	for y := 0; y < f.height; y++ {
		sb.WriteString(f.rows[y].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f Frame) checkRow(y int) {
	if y < 0 || y >= f.height {
		panic(fmt.Sprintf("frame: row %d out of range [0, %d)", y, f.height))
	}
}
