// matrixsim runs an animation headlessly against the NeoPixel mirror,
// which degrades to a console preview when no SPI port exists. Useful for
// checking scroll timing and glyphs without the matrix wired up.
package main

import (
	"flag"
	"image/color"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-ledmatrix/font"
	"github.com/coreman2200/funtimes-ledmatrix/frame"
	"github.com/coreman2200/funtimes-ledmatrix/internal/config"
	"github.com/coreman2200/funtimes-ledmatrix/internal/strip"
	"github.com/coreman2200/funtimes-ledmatrix/matrix"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		text       = flag.String("text", "Hello, World!", "text to animate")
		slide      = flag.Bool("slide", true, "use the slide transition")
		duration   = flag.Duration("duration", 0, "animation duration (0 = half a second per byte)")
		level      = flag.Int("brightness", 5, "brightness level 0..10")
		fps        = flag.Int("fps", 30, "preview frames per second")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err == nil {
		cfg = c
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("periph host init failed")
	}

	opts := &strip.Opts{Port: cfg.Strip.Port, Serpentine: cfg.Strip.Serpentine}
	if cfg.Strip.Color != 0 {
		opts.On = color.NRGBA{
			R: uint8(cfg.Strip.Color >> 16),
			G: uint8(cfg.Strip.Color >> 8),
			B: uint8(cfg.Strip.Color),
			A: 0xff,
		}
	}
	mirror, err := strip.New(5, 5, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("strip setup failed")
	}
	log.Info().Bool("spi", mirror.SPI).Msg("mirror ready")

	effect := matrix.EffectNone
	if *slide {
		effect = matrix.EffectSlide
	}
	d := *duration
	if d == 0 {
		d = time.Duration(len(*text)/2) * time.Second
	}

	a, err := matrix.NewTextAnimation([]byte(*text), font.Glyph, effect, d, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("animation rejected")
	}
	log.Info().Int("steps", a.Len()).Dur("duration", d).Msg("animating")

	b := frame.NewBrightness(uint8(*level))
	tick := time.NewTicker(time.Second / time.Duration(*fps))
	defer tick.Stop()
	for range tick.C {
		step := a.Next(time.Now())
		switch step.Kind {
		case matrix.Apply:
			if err := mirror.Draw(step.Frame, b); err != nil {
				log.Fatal().Err(err).Msg("draw failed")
			}
		case matrix.Done:
			if err := mirror.Halt(); err != nil {
				log.Warn().Err(err).Msg("halt failed")
			}
			log.Info().Msg("done")
			return
		}
	}
}
