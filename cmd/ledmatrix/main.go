package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-ledmatrix/font"
	"github.com/coreman2200/funtimes-ledmatrix/frame"
	"github.com/coreman2200/funtimes-ledmatrix/internal/button"
	"github.com/coreman2200/funtimes-ledmatrix/internal/cdev"
	"github.com/coreman2200/funtimes-ledmatrix/internal/config"
	"github.com/coreman2200/funtimes-ledmatrix/matrix"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", "", "pin backend: gpio | cdev (overrides config)")
		greeting   = flag.String("greeting", "", "text to scroll on startup (overrides config)")
		brightness = flag.Int("brightness", -1, "brightness level 0..10 (overrides config)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *greeting != "" {
		cfg.Greeting = *greeting
	}
	if *brightness >= 0 {
		cfg.Brightness = uint8(*brightness)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("periph host init failed")
	}

	rows, cols, err := openPins(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Driver).Msg("pin setup failed")
	}

	m := matrix.New(rows, cols, &matrix.Opts{
		Refresh:    time.Duration(cfg.RefreshUs) * time.Microsecond,
		DwellScale: time.Duration(cfg.DwellScaleUs) * time.Microsecond,
		Glyph:      font.Glyph,
	})
	m.SetBrightness(frame.NewBrightness(cfg.Brightness))
	m.Clear()

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-ch
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	}()

	if cfg.Greeting != "" {
		log.Info().Str("text", cfg.Greeting).Msg("scrolling greeting")
		if err := m.Scroll(ctx, cfg.Greeting); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("greeting scroll failed")
		}
	}

	w := &button.Watcher{
		A:      inPin(cfg.Buttons.A),
		B:      inPin(cfg.Buttons.B),
		Matrix: m,
	}
	if err := w.Init(); err != nil {
		log.Fatal().Err(err).Msg("button setup failed")
	}
	log.Info().Msg("ready, press buttons")
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("button loop failed")
	}

	// The loop may have been abandoned mid-frame; leave the grid dark.
	m.Clear()
}

// openPins builds the row and column output pins for the configured
// backend.
func openPins(cfg *config.Config) (rows, cols []gpio.PinOut, err error) {
	switch cfg.Driver {
	case "gpio", "":
		if rows, err = outPins(cfg.Pins.Rows); err != nil {
			return nil, nil, err
		}
		if cols, err = outPins(cfg.Pins.Cols); err != nil {
			return nil, nil, err
		}
		return rows, cols, nil
	case "cdev":
		if rows, err = cdev.OpenAll(cfg.Lines.Chip, cfg.Lines.Rows); err != nil {
			return nil, nil, err
		}
		if cols, err = cdev.OpenAll(cfg.Lines.Chip, cfg.Lines.Cols); err != nil {
			return nil, nil, err
		}
		return rows, cols, nil
	default:
		return nil, nil, errors.New("unknown driver " + cfg.Driver + " (use matrixsim for headless runs)")
	}
}

func outPins(names []string) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, 0, len(names))
	for _, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, errors.New("no such pin " + n)
		}
		pins = append(pins, p)
	}
	return pins, nil
}

func inPin(name string) gpio.PinIn {
	if name == "" {
		return nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		log.Warn().Str("pin", name).Msg("button pin not found; disabled")
		return nil
	}
	return p
}
