package matrix_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-ledmatrix/font"
	"github.com/coreman2200/funtimes-ledmatrix/frame"
	"github.com/coreman2200/funtimes-ledmatrix/matrix"
)

// manualClock drives the scan loops deterministically: Sleep advances
// virtual time instead of suspending, Dwell only records.
type manualClock struct {
	now    time.Time
	sleeps int
	dwells []time.Duration
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.sleeps++
	return nil
}

func (c *manualClock) Dwell(d time.Duration) {
	c.dwells = append(c.dwells, d)
}

func testPins(prefix string, n int) ([]*gpiotest.Pin, []gpio.PinOut) {
	raw := make([]*gpiotest.Pin, n)
	out := make([]gpio.PinOut, n)
	for i := range raw {
		raw[i] = &gpiotest.Pin{N: prefix + string(rune('0'+i)), Num: i}
		out[i] = raw[i]
	}
	return raw, out
}

func testMatrix(t *testing.T) (*matrix.LedMatrix, []*gpiotest.Pin, []*gpiotest.Pin, *manualClock) {
	t.Helper()
	rawRows, rows := testPins("r", 5)
	rawCols, cols := testPins("c", 5)
	clk := &manualClock{now: time.Unix(0, 0)}
	m := matrix.New(rows, cols, &matrix.Opts{Glyph: font.Glyph, Clock: clk})
	return m, rawRows, rawCols, clk
}

func TestRenderDrivesOneRow(t *testing.T) {
	m, rows, cols, clk := testMatrix(t)
	m.On(2, 0)

	m.Render()

	for i, c := range cols {
		want := gpio.High
		if i == 2 {
			want = gpio.Low // active low
		}
		if c.L != want {
			t.Fatalf("col %d level %v, want %v", i, c.L, want)
		}
	}
	if rows[0].L != gpio.High {
		t.Fatal("row 0 must be active after the first render")
	}
	for _, r := range rows[1:] {
		if r.L != gpio.Low {
			t.Fatalf("row %s must stay inactive", r.N)
		}
	}
	if len(clk.dwells) != 1 {
		t.Fatalf("expected one dwell, got %d", len(clk.dwells))
	}

	// The scan position advanced: the next render activates row 1.
	m.Render()
	if rows[0].L != gpio.Low || rows[1].L != gpio.High {
		t.Fatal("scan position did not advance to row 1")
	}
}

func TestRenderDwellTracksBrightness(t *testing.T) {
	m, _, _, clk := testMatrix(t)

	m.SetBrightness(frame.MaxBrightness)
	m.Render()
	if clk.dwells[0] != 0 {
		t.Fatalf("full brightness should not dwell, got %v", clk.dwells[0])
	}

	m.SetBrightness(frame.MinBrightness)
	m.Render()
	if clk.dwells[1] != matrix.DefaultDwellScale {
		t.Fatalf("zero brightness should dwell the full scale, got %v", clk.dwells[1])
	}

	m.SetBrightness(frame.NewBrightness(5))
	m.Render()
	if clk.dwells[2] != matrix.DefaultDwellScale/2 {
		t.Fatalf("mid brightness should dwell half the scale, got %v", clk.dwells[2])
	}
}

func TestBrightnessAdjustSaturates(t *testing.T) {
	m, _, _, _ := testMatrix(t)
	for i := 0; i < 20; i++ {
		m.IncreaseBrightness()
	}
	if m.Brightness() != frame.MaxBrightness {
		t.Fatalf("expected saturation at max, got %d", m.Brightness().Level())
	}
	for i := 0; i < 20; i++ {
		m.DecreaseBrightness()
	}
	if m.Brightness() != frame.MinBrightness {
		t.Fatalf("expected saturation at min, got %d", m.Brightness().Level())
	}
}

func TestClearForcesInactiveLevels(t *testing.T) {
	m, rows, cols, _ := testMatrix(t)
	m.On(1, 1)
	m.Render()
	m.Render()

	m.Clear()

	if !m.Frame().Equal(frame.EmptyFrame(5, 5)) {
		t.Fatal("clear must zero the frame buffer")
	}
	for _, r := range rows {
		if r.L != gpio.Low {
			t.Fatalf("row %s not inactive after clear", r.N)
		}
	}
	for _, c := range cols {
		if c.L != gpio.High {
			t.Fatalf("col %s not inactive after clear", c.N)
		}
	}
}

func TestDisplayScansAndClears(t *testing.T) {
	m, _, _, clk := testMatrix(t)
	f := font.Glyph('A')

	err := m.Display(context.Background(), f, 10*matrix.DefaultRefresh)
	if err != nil {
		t.Fatalf("display: %v", err)
	}
	if clk.sleeps != 10 {
		t.Fatalf("expected 10 refresh ticks, got %d", clk.sleeps)
	}
	if !m.Frame().Equal(frame.EmptyFrame(5, 5)) {
		t.Fatal("display must clear after the duration")
	}
}

func TestDisplayAbandonedByCancel(t *testing.T) {
	m, _, _, _ := testMatrix(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := font.Glyph('A')
	err := m.Display(ctx, f, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Abandonment leaves the buffer mid-frame; cleanup is on the caller.
	if !m.Frame().Equal(f) {
		t.Fatal("cancelled display must not clear the buffer")
	}
}

func TestScrollTextEndToEnd(t *testing.T) {
	m, _, _, _ := testMatrix(t)

	// "Hi" over width-5 glyphs is 2*5 slide steps.
	a, err := matrix.NewTextAnimation([]byte("Hi"), font.Glyph, matrix.EffectSlide, time.Second, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("animation: %v", err)
	}
	if a.Len() != 10 {
		t.Fatalf("expected 10 steps for \"Hi\", got %d", a.Len())
	}

	if err := m.Scroll(context.Background(), "Hi"); err != nil {
		t.Fatalf("scroll: %v", err)
	}
	if !m.Frame().Equal(frame.EmptyFrame(5, 5)) {
		t.Fatal("buffer must be empty after a completed scroll")
	}
}

// countPin records writes so tests can assert nothing touched hardware.
type countPin struct {
	writes int
}

func (p *countPin) String() string                        { return "count" }
func (p *countPin) Name() string                          { return "count" }
func (p *countPin) Number() int                           { return 0 }
func (p *countPin) Function() string                      { return "Out" }
func (p *countPin) Halt() error                           { return nil }
func (p *countPin) Out(gpio.Level) error                  { p.writes++; return nil }
func (p *countPin) PWM(gpio.Duty, physic.Frequency) error { return nil }

func TestAnimateTooFastBeforeHardware(t *testing.T) {
	rows := []gpio.PinOut{&countPin{}, &countPin{}, &countPin{}, &countPin{}, &countPin{}}
	cols := []gpio.PinOut{&countPin{}, &countPin{}, &countPin{}, &countPin{}, &countPin{}}
	clk := &manualClock{now: time.Unix(0, 0)}
	m := matrix.New(rows, cols, &matrix.Opts{Glyph: font.Glyph, Clock: clk})

	err := m.Animate(context.Background(), []byte("Hi"), matrix.EffectSlide, 5*time.Nanosecond)
	if !errors.Is(err, matrix.ErrTooFast) {
		t.Fatalf("expected ErrTooFast, got %v", err)
	}
	for _, p := range append(rows, cols...) {
		if p.(*countPin).writes != 0 {
			t.Fatal("TooFast must surface before any pin write")
		}
	}
}

func TestIntoInnerReleasesPins(t *testing.T) {
	m, rawRows, _, _ := testMatrix(t)
	rows, cols := m.IntoInner()
	if len(rows) != 5 || len(cols) != 5 {
		t.Fatalf("expected 5+5 pins back, got %d+%d", len(rows), len(cols))
	}
	if rows[0] != gpio.PinOut(rawRows[0]) {
		t.Fatal("returned pins must be the originals")
	}
}

func TestApplyRejectsWrongDimensions(t *testing.T) {
	m, _, _, _ := testMatrix(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on dimension mismatch")
		}
	}()
	m.Apply(frame.EmptyFrame(4, 4))
}
