// Package button is the input glue between two push buttons and the LED
// matrix: each press gets an arrow as visual feedback and nudges the
// brightness one step.
package button

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"

	"github.com/coreman2200/funtimes-ledmatrix/font"
	"github.com/coreman2200/funtimes-ledmatrix/matrix"
)

// pollTimeout bounds each WaitForEdge so the loop can alternate between
// the two buttons and notice context cancellation.
const pollTimeout = 20 * time.Millisecond

// Watcher polls buttons A and B and drives feedback on the matrix. The
// watcher owns the matrix while it runs; nothing else may animate it.
type Watcher struct {
	A      gpio.PinIn
	B      gpio.PinIn
	Matrix *matrix.LedMatrix

	// Hold is how long each arrow stays up. Zero means one second.
	Hold time.Duration
}

// Init configures the button pins for falling-edge detection with the
// internal pull-up, matching buttons that short to ground when pressed.
func (w *Watcher) Init() error {
	for _, p := range []gpio.PinIn{w.A, w.B} {
		if p == nil {
			continue
		}
		if err := p.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			return err
		}
	}
	return nil
}

// Run alternates edge polls over both buttons until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if w.A != nil && w.A.WaitForEdge(pollTimeout) {
			if err := w.press(ctx, "A"); err != nil {
				return err
			}
		}
		if w.B != nil && w.B.WaitForEdge(pollTimeout) {
			if err := w.press(ctx, "B"); err != nil {
				return err
			}
		}
		if w.A == nil && w.B == nil {
			// Nothing to poll; just wait for cancellation.
			<-ctx.Done()
			return ctx.Err()
		}
	}
}

func (w *Watcher) press(ctx context.Context, name string) error {
	hold := w.Hold
	if hold == 0 {
		hold = time.Second
	}
	arrow := font.ArrowLeft
	if name == "B" {
		arrow = font.ArrowRight
	}
	if name == "A" {
		w.Matrix.DecreaseBrightness()
	} else {
		w.Matrix.IncreaseBrightness()
	}
	log.Info().
		Str("button", name).
		Uint8("brightness", w.Matrix.Brightness().Level()).
		Msg("button pressed")
	return w.Matrix.Display(ctx, arrow, hold)
}
