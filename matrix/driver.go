// Package matrix drives a row/column multiplexed LED pixel grid over GPIO.
// It keeps a frame buffer, scans it one row per Render call to exploit
// persistence of vision, approximates brightness with a per-row duty-cycle
// dwell and animates text and frame sequences with a sliding transition.
package matrix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/coreman2200/funtimes-ledmatrix/frame"
)

const (
	// DefaultRefresh is the interval between Render calls in the timed
	// display loops, a 2 kHz scan.
	DefaultRefresh = 500 * time.Microsecond

	// DefaultDwellScale is the brightness constant K: the off-dwell per
	// row is (max-level)*K/max. The stock value is tuned for the default
	// refresh rate; override it in Opts when the scan rate changes.
	DefaultDwellScale = 6 * time.Millisecond
)

// Opts adjusts driver behavior. The zero value picks the defaults.
type Opts struct {
	// Refresh is the yielding wait between scan passes.
	Refresh time.Duration
	// DwellScale is the brightness-to-dwell constant K.
	DwellScale time.Duration
	// Glyph resolves a byte to a frame when animating raw text. Nil
	// disables Scroll and byte animations.
	Glyph func(byte) frame.Frame
	// Clock supplies time; nil means the system clock.
	Clock Clock
}

// LedMatrix owns the row and column output pins of a multiplexed LED grid,
// its frame buffer, the scan position and the brightness level.
//
// Pins move into the driver at construction and must not be shared with
// anything else; two drivers over one physical line is a wiring error the
// driver cannot detect. A single goroutine owns the driver at a time, so
// no locking happens inside.
type LedMatrix struct {
	pinRows []gpio.PinOut
	pinCols []gpio.PinOut

	buffer     frame.Frame
	rowP       int
	brightness frame.Brightness

	refresh    time.Duration
	dwellScale time.Duration
	glyph      func(byte) frame.Frame
	clock      Clock
}

// New builds a driver over the given row and column pins. Rows hold the
// LED cathode lines (active high), columns the anodes (active low). The
// column count is limited to 8 by the frame row storage.
func New(rows, cols []gpio.PinOut, opts *Opts) *LedMatrix {
	if len(rows) == 0 || len(cols) == 0 {
		panic("matrix: need at least one row and one column pin")
	}
	if len(cols) > frame.MaxWidth {
		panic(fmt.Sprintf("matrix: %d columns exceed row storage width %d", len(cols), frame.MaxWidth))
	}
	m := &LedMatrix{
		pinRows:    rows,
		pinCols:    cols,
		buffer:     frame.EmptyFrame(len(cols), len(rows)),
		brightness: frame.DefaultBrightness,
		refresh:    DefaultRefresh,
		dwellScale: DefaultDwellScale,
		clock:      SystemClock{},
	}
	if opts != nil {
		if opts.Refresh > 0 {
			m.refresh = opts.Refresh
		}
		if opts.DwellScale > 0 {
			m.dwellScale = opts.DwellScale
		}
		if opts.Glyph != nil {
			m.glyph = opts.Glyph
		}
		if opts.Clock != nil {
			m.clock = opts.Clock
		}
	}
	return m
}

// Rows returns the grid height.
func (m *LedMatrix) Rows() int { return len(m.pinRows) }

// Cols returns the grid width.
func (m *LedMatrix) Cols() int { return len(m.pinCols) }

// Clear zeroes the frame buffer and forces every row and column line to
// its inactive level, turning all LEDs off.
func (m *LedMatrix) Clear() {
	m.buffer.Clear()
	for _, r := range m.pinRows {
		r.Out(gpio.Low)
	}
	for _, c := range m.pinCols {
		c.Out(gpio.High)
	}
}

// On turns on the pixel at (x, y) in the frame buffer. Nothing reaches the
// hardware until the next Render.
func (m *LedMatrix) On(x, y int) {
	m.buffer.Set(x, y)
}

// Off turns off the pixel at (x, y) in the frame buffer.
func (m *LedMatrix) Off(x, y int) {
	m.buffer.Unset(x, y)
}

// Apply replaces the frame buffer wholesale. The frame dimensions must
// match the grid.
func (m *LedMatrix) Apply(f frame.Frame) {
	if f.Width() != len(m.pinCols) || f.Height() != len(m.pinRows) {
		panic(fmt.Sprintf("matrix: frame %dx%d does not fit %dx%d grid",
			f.Width(), f.Height(), len(m.pinCols), len(m.pinRows)))
	}
	m.buffer = f
}

// Frame returns a copy of the frame buffer.
func (m *LedMatrix) Frame() frame.Frame {
	return m.buffer
}

// SetBrightness replaces the brightness level.
func (m *LedMatrix) SetBrightness(b frame.Brightness) {
	m.brightness = b
}

// IncreaseBrightness raises the level one step, saturating at the top.
func (m *LedMatrix) IncreaseBrightness() {
	m.brightness.Inc(1)
}

// DecreaseBrightness lowers the level one step, saturating at zero.
func (m *LedMatrix) DecreaseBrightness() {
	m.brightness.Dec(1)
}

// Brightness returns the current level.
func (m *LedMatrix) Brightness() frame.Brightness {
	return m.brightness
}

// Render scans exactly one row: deactivate every row, drive each column
// for the active row from the frame buffer, hold the brightness dwell,
// then activate the row and advance the scan position. Showing a full
// frame takes Rows() calls within one persistence-of-vision period.
//
// Pin write failures are dropped on purpose: a failed write affects one
// row for one scan and the buffer is untouched, so the next pass heals it.
func (m *LedMatrix) Render() {
	for _, r := range m.pinRows {
		r.Out(gpio.Low)
	}
	for x, c := range m.pinCols {
		if m.buffer.IsSet(x, m.rowP) {
			c.Out(gpio.Low)
		} else {
			c.Out(gpio.High)
		}
	}

	// The dark hold before activating the row sets apparent brightness.
	m.clock.Dwell(m.dwell())

	m.pinRows[m.rowP].Out(gpio.High)
	m.rowP = (m.rowP + 1) % len(m.pinRows)
}

func (m *LedMatrix) dwell() time.Duration {
	max := int64(frame.MaxBrightness.Level())
	off := max - int64(m.brightness.Level())
	return time.Duration(off * int64(m.dwellScale) / max)
}

// Display shows a frame for the given duration, scanning at the refresh
// tick, then clears the grid. Cancelling ctx abandons the loop mid-frame
// without clearing; the caller owns the cleanup in that case.
func (m *LedMatrix) Display(ctx context.Context, f frame.Frame, d time.Duration) error {
	m.Apply(f)
	end := m.clock.Now().Add(d)
	for m.clock.Now().Before(end) {
		m.Render()
		if err := m.clock.Sleep(ctx, m.refresh); err != nil {
			return err
		}
	}
	m.Clear()
	return nil
}

// Scroll slides text across the grid, deriving the duration from the text
// length at half a second per byte.
func (m *LedMatrix) Scroll(ctx context.Context, text string) error {
	return m.ScrollWithSpeed(ctx, text, time.Duration(len(text)/2)*time.Second)
}

// ScrollWithSpeed slides text across the grid within the given duration.
func (m *LedMatrix) ScrollWithSpeed(ctx context.Context, text string, d time.Duration) error {
	return m.Animate(ctx, []byte(text), EffectSlide, d)
}

// Animate runs an animation over raw bytes, resolving each through the
// configured glyph lookup. ErrTooFast surfaces before any pin write.
func (m *LedMatrix) Animate(ctx context.Context, data []byte, effect Effect, d time.Duration) error {
	if m.glyph == nil {
		return errors.New("matrix: no glyph lookup configured")
	}
	a, err := NewTextAnimation(data, m.glyph, effect, d, m.clock.Now())
	if err != nil {
		return err
	}
	return m.run(ctx, a)
}

// AnimateFrames runs an animation over precomputed frames.
func (m *LedMatrix) AnimateFrames(ctx context.Context, frames []frame.Frame, effect Effect, d time.Duration) error {
	a, err := NewAnimation(frames, effect, d, m.clock.Now())
	if err != nil {
		return err
	}
	return m.run(ctx, a)
}

// run polls the stepper in a cooperative loop: apply new frames as they
// come due, render one row every pass even while waiting so the scan never
// goes dark, and clear once the animation finishes.
func (m *LedMatrix) run(ctx context.Context, a *Animation) error {
	for {
		step := a.Next(m.clock.Now())
		switch step.Kind {
		case Apply:
			m.Apply(step.Frame)
		case Done:
			m.Clear()
			return nil
		}
		m.Render()
		if err := m.clock.Sleep(ctx, m.refresh); err != nil {
			return err
		}
	}
}

// IntoInner decomposes the driver back into its row and column pin sets.
// The driver is inert afterwards.
func (m *LedMatrix) IntoInner() (rows, cols []gpio.PinOut) {
	rows, cols = m.pinRows, m.pinCols
	m.pinRows, m.pinCols = nil, nil
	return rows, cols
}
