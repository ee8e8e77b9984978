package matrix

import (
	"errors"
	"time"

	"github.com/coreman2200/funtimes-ledmatrix/frame"
)

// ErrTooFast means the requested duration is too short to give every
// animation step a non-zero interval. It is returned before anything is
// written to hardware; retry with a longer duration or fewer frames.
var ErrTooFast = errors.New("matrix: animation too fast for the step count")

// Effect selects the transition between animation source frames.
type Effect int

const (
	// EffectNone shows each source frame as-is, one per step.
	EffectNone Effect = iota
	// EffectSlide slides each frame in from the right edge while the
	// previous one exits left, one pixel per step.
	EffectSlide
)

// StepKind tags an animation stepper output.
type StepKind int

const (
	// Wait means the next frame is not due yet; keep scanning.
	Wait StepKind = iota
	// Apply carries new content for the frame buffer.
	Apply
	// Done is terminal. Stepping a finished animation is a caller error.
	Done
)

// Step is one stepper output. Frame is only meaningful for Apply.
type Step struct {
	Kind  StepKind
	Frame frame.Frame
}

// source hides whether the animation input is precomputed frames or raw
// bytes resolved through a glyph lookup.
type source interface {
	len() int
	frame(i int) frame.Frame
}

type frameSource []frame.Frame

func (s frameSource) len() int                { return len(s) }
func (s frameSource) frame(i int) frame.Frame { return s[i] }

type byteSource struct {
	data  []byte
	glyph func(byte) frame.Frame
}

func (s byteSource) len() int                { return len(s.data) }
func (s byteSource) frame(i int) frame.Frame { return s.glyph(s.data[i]) }

// Animation steps a timed sequence of frames derived from a source. It is
// transient: built for one animation run and dropped once Done.
type Animation struct {
	src    source
	width  int
	height int
	effect Effect

	sequence   int // sub-shift offset within the current frame, 0..width-1
	frameIndex int // current source element
	index      int // steps emitted
	length     int // total steps
	wait       time.Duration
	next       time.Time
}

// NewAnimation builds a stepper over precomputed frames. The source must
// not be empty. start anchors the first step deadline.
func NewAnimation(frames []frame.Frame, effect Effect, duration time.Duration, start time.Time) (*Animation, error) {
	return newAnimation(frameSource(frames), effect, duration, start)
}

// NewTextAnimation builds a stepper over raw bytes, resolving each byte to
// a frame through glyph.
func NewTextAnimation(data []byte, glyph func(byte) frame.Frame, effect Effect, duration time.Duration, start time.Time) (*Animation, error) {
	return newAnimation(byteSource{data: data, glyph: glyph}, effect, duration, start)
}

func newAnimation(src source, effect Effect, duration time.Duration, start time.Time) (*Animation, error) {
	if src.len() == 0 {
		panic("matrix: animation needs at least one source frame")
	}
	first := src.frame(0)
	length := src.len()
	if effect == EffectSlide {
		length *= first.Width()
	}
	wait := duration / time.Duration(length)
	if wait <= 0 {
		return nil, ErrTooFast
	}
	return &Animation{
		src:    src,
		width:  first.Width(),
		height: first.Height(),
		effect: effect,
		length: length,
		wait:   wait,
		next:   start,
	}, nil
}

// Len returns the total number of Apply steps the animation will emit.
func (a *Animation) Len() int {
	return a.length
}

// current composes the frame for the present progress point. For the slide
// effect the incoming frame at frameIndex enters from the right while the
// previous one exits left; the very first frame slides in over a blank
// screen. The sliding window completes at sequence == width-1, which leaves
// the frame at frameIndex fully on screen.
func (a *Animation) current() frame.Frame {
	if a.effect == EffectNone {
		return a.src.frame(a.frameIndex)
	}
	in := a.src.frame(a.frameIndex)
	out := frame.EmptyFrame(a.width, a.height)
	if a.frameIndex > 0 {
		out = a.src.frame(a.frameIndex - 1)
	}
	shift := a.sequence + 1
	out.ShiftLeft(shift)
	in.ShiftRight(a.width - shift)
	out.Or(in)
	return out
}

// Next advances the stepper against the supplied time. It returns Wait
// before the step deadline, Apply with the next frame while steps remain,
// and Done once the sequence is exhausted.
func (a *Animation) Next(now time.Time) Step {
	if now.Before(a.next) {
		return Step{Kind: Wait}
	}
	if a.index >= a.length {
		return Step{Kind: Done}
	}
	cur := a.current()
	if a.effect == EffectNone || a.sequence >= a.width-1 {
		a.sequence = 0
		a.frameIndex++
	} else {
		a.sequence++
	}
	a.index++
	a.next = a.next.Add(a.wait)
	return Step{Kind: Apply, Frame: cur}
}
