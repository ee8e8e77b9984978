package matrix

import (
	"errors"
	"testing"
	"time"

	"github.com/coreman2200/funtimes-ledmatrix/frame"
)

func letterFrame(pattern uint8) frame.Frame {
	rows := make([]frame.Bitmap, 5)
	for i := range rows {
		rows[i] = frame.NewBitmap(pattern, 5)
	}
	return frame.NewFrame(rows)
}

func TestAnimationNoneSingleFrame(t *testing.T) {
	start := time.Unix(0, 0)
	f := letterFrame(0b10101)
	a, err := NewAnimation([]frame.Frame{f}, EffectNone, time.Second, start)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	step := a.Next(start)
	if step.Kind != Apply {
		t.Fatalf("expected Apply, got %v", step.Kind)
	}
	if !step.Frame.Equal(f) {
		t.Fatalf("None must apply the source frame unshifted:\n%v", step.Frame)
	}
	if got := a.Next(start.Add(time.Second)); got.Kind != Done {
		t.Fatalf("expected Done, got %v", got.Kind)
	}
}

func TestAnimationWaitBeforeDeadline(t *testing.T) {
	start := time.Unix(0, 0)
	a, err := NewAnimation([]frame.Frame{letterFrame(0b11111)}, EffectNone, time.Second, start)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := a.Next(start); got.Kind != Apply {
		t.Fatalf("first step is due at start, got %v", got.Kind)
	}
	// Second step deadline is start+1s; half way there it must hold.
	if got := a.Next(start.Add(500 * time.Millisecond)); got.Kind != Wait {
		t.Fatalf("expected Wait before the deadline, got %v", got.Kind)
	}
}

func TestAnimationSlideStepCountAndFinalFrame(t *testing.T) {
	start := time.Unix(0, 0)
	frames := []frame.Frame{
		letterFrame(0b10000),
		letterFrame(0b01000),
		letterFrame(0b00100),
	}
	a, err := NewAnimation(frames, EffectSlide, 15*time.Second, start)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Len() != 15 {
		t.Fatalf("expected 3*5 steps, got %d", a.Len())
	}

	now := start
	applies := 0
	var last frame.Frame
	for {
		step := a.Next(now)
		switch step.Kind {
		case Apply:
			applies++
			last = step.Frame
		case Done:
			if applies != 15 {
				t.Fatalf("expected 15 Apply events, got %d", applies)
			}
			if !last.Equal(frames[2]) {
				t.Fatalf("final frame must be the last source frame unshifted:\n%v", last)
			}
			return
		case Wait:
			t.Fatal("stepped exactly at deadlines, Wait unexpected")
		}
		now = now.Add(time.Second)
	}
}

func TestAnimationSlideComposesNeighbors(t *testing.T) {
	start := time.Unix(0, 0)
	f0 := letterFrame(0b11111)
	f1 := letterFrame(0b00001)
	a, err := NewAnimation([]frame.Frame{f0, f1}, EffectSlide, 10*time.Second, start)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	now := start
	var got []frame.Frame
	for {
		step := a.Next(now)
		if step.Kind == Done {
			break
		}
		got = append(got, step.Frame)
		now = now.Add(time.Second)
	}

	// Step 5 completes the first frame's slide-in.
	if !got[4].Equal(f0) {
		t.Fatalf("step 5 should show frame 0 unshifted:\n%v", got[4])
	}
	// Step 6 is one pixel into the transition: frame 0 shifted out by
	// one, frame 1's leftmost column entering at the right edge.
	want := f0
	want.ShiftLeft(1)
	in := f1
	in.ShiftRight(4)
	want.Or(in)
	if !got[5].Equal(want) {
		t.Fatalf("step 6 transition mismatch:\ngot\n%v\nwant\n%v", got[5], want)
	}
	if !got[9].Equal(f1) {
		t.Fatalf("final step should show frame 1 unshifted:\n%v", got[9])
	}
}

func TestAnimationTooFast(t *testing.T) {
	start := time.Unix(0, 0)
	frames := []frame.Frame{letterFrame(0b10101), letterFrame(0b01010)}
	_, err := NewAnimation(frames, EffectSlide, 5*time.Nanosecond, start)
	if !errors.Is(err, ErrTooFast) {
		t.Fatalf("expected ErrTooFast, got %v", err)
	}
}

func TestTextAnimationResolvesBytes(t *testing.T) {
	start := time.Unix(0, 0)
	marker := letterFrame(0b10001)
	glyph := func(c byte) frame.Frame {
		if c == 'x' {
			return marker
		}
		return frame.EmptyFrame(5, 5)
	}
	a, err := NewTextAnimation([]byte("x"), glyph, EffectNone, time.Second, start)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	step := a.Next(start)
	if step.Kind != Apply || !step.Frame.Equal(marker) {
		t.Fatalf("glyph lookup not applied: %v\n%v", step.Kind, step.Frame)
	}
}

func TestAnimationEmptySourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty source")
		}
	}()
	_, _ = NewAnimation(nil, EffectSlide, time.Second, time.Unix(0, 0))
}
