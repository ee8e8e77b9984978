// Package strip mirrors the matrix frame buffer onto a NeoPixel panel
// driven over SPI, with a console preview fallback when no SPI port is
// present. It is an alternate output sink: no multiplexing, one pixel per
// LED, brightness folded into the pixel color.
package strip

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-ledmatrix/frame"
)

// refreshRate is the nominal NeoPixel data rate in kHz terms; the SPI
// clock is derived from it the way nrzled expects.
const refreshRate physic.Frequency = 800

// DefaultOn is the lit-pixel color when none is configured.
var DefaultOn = color.NRGBA{R: 0xff, G: 0x99, B: 0x11, A: 0xff}

// Opts adjusts the mirror.
type Opts struct {
	// Port is the spireg port name, empty for the first one found.
	Port string
	// Serpentine flips the x direction on every odd panel row.
	Serpentine bool
	// On is the color of a lit pixel.
	On color.NRGBA
}

// Mirror converts frames to a one-pixel-per-LED image and hands it to a
// display.Drawer: an nrzled strip over SPI, or a console screen.
type Mirror struct {
	drawer     display.Drawer
	width      int
	height     int
	serpentine bool
	on         color.NRGBA

	// SPI reports whether real hardware is attached; false means the
	// console fallback.
	SPI bool
}

// New opens the SPI port and the NeoPixel strip for a width by height
// panel. When the port cannot be opened the mirror degrades to a console
// preview instead of failing.
func New(width, height int, opts *Opts) (*Mirror, error) {
	m := &Mirror{width: width, height: height, on: DefaultOn}
	port := ""
	if opts != nil {
		m.serpentine = opts.Serpentine
		port = opts.Port
		if opts.On.A != 0 {
			m.on = opts.On
		}
	}

	p, err := spireg.Open(port)
	if err != nil {
		m.drawer = screen.New(width * height)
		return m, nil
	}

	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: width * height,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Halt(); err != nil {
		return nil, err
	}
	m.drawer = d
	m.SPI = true
	return m, nil
}

// Draw pushes one frame at the given brightness.
func (m *Mirror) Draw(f frame.Frame, b frame.Brightness) error {
	im := m.image(f, b)
	return m.drawer.Draw(m.drawer.Bounds(), im, image.Point{})
}

// Halt blanks the strip.
func (m *Mirror) Halt() error {
	return m.drawer.Halt()
}

// image flattens the frame into the 1-by-N strip order.
func (m *Mirror) image(f frame.Frame, b frame.Brightness) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, m.width*m.height, 1))
	on := scale(m.on, b)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			xx := x
			if m.serpentine && y%2 == 1 {
				xx = m.width - 1 - x
			}
			if f.IsSet(x, y) {
				im.SetNRGBA(y*m.width+xx, 0, on)
			} else {
				im.SetNRGBA(y*m.width+xx, 0, color.NRGBA{A: 0xff})
			}
		}
	}
	return im
}

// scale folds the 0..10 brightness level into the pixel color, since a
// strip has no scan cycle to dwell on.
func scale(c color.NRGBA, b frame.Brightness) color.NRGBA {
	lvl := uint32(b.Level())
	max := uint32(frame.MaxBrightness.Level())
	return color.NRGBA{
		R: uint8(uint32(c.R) * lvl / max),
		G: uint8(uint32(c.G) * lvl / max),
		B: uint8(uint32(c.B) * lvl / max),
		A: c.A,
	}
}
