// Package cdev adapts character-device GPIO lines to periph's gpio.PinOut
// so the matrix driver can run on boards whose pins the periph host
// drivers cannot reach (notably the Raspberry Pi 5).
package cdev

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one requested output line. It implements gpio.PinOut.
type Pin struct {
	line   *gpiocdev.Line
	chip   string
	offset int
}

// Open requests the line at offset on the named chip (e.g. "gpiochip0")
// as an output, initially low.
func Open(chip string, offset int) (*Pin, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("cdev: requesting %s line %d: %w", chip, offset, err)
	}
	return &Pin{line: line, chip: chip, offset: offset}, nil
}

func (p *Pin) String() string {
	return fmt.Sprintf("%s/%d", p.chip, p.offset)
}

func (p *Pin) Name() string {
	return p.String()
}

func (p *Pin) Number() int {
	return p.offset
}

func (p *Pin) Function() string {
	return "Out"
}

// Halt drives the line low.
func (p *Pin) Halt() error {
	return p.line.SetValue(0)
}

// Out sets the line level.
func (p *Pin) Out(l gpio.Level) error {
	v := 0
	if l == gpio.High {
		v = 1
	}
	return p.line.SetValue(v)
}

// PWM is not available on character-device lines.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("cdev: PWM not supported")
}

// Close releases the line back to the kernel.
func (p *Pin) Close() error {
	return p.line.Close()
}

var _ gpio.PinOut = (*Pin)(nil)

// OpenAll requests a set of line offsets and returns them as output pins.
// On failure every already-opened line is released.
func OpenAll(chip string, offsets []int) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, 0, len(offsets))
	for _, off := range offsets {
		p, err := Open(chip, off)
		if err != nil {
			for _, prev := range pins {
				_ = prev.(*Pin).Close()
			}
			return nil, err
		}
		pins = append(pins, p)
	}
	return pins, nil
}
