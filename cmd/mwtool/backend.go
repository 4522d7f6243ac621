package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/exp/slog"

	"github.com/cleetus-j/mwm"
	"github.com/cleetus-j/mwm/internal/board"
	"github.com/cleetus-j/mwm/sim"
)

func openSim(conf board.Config, log *slog.Logger) (*session, error) {
	ee := sim.New(conf.Sim.WriteCycle)
	ee.Float = conf.Sim.Float

	image := conf.Sim.Image
	if image != "" {
		b, err := os.ReadFile(image)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		case len(b) != len(ee.Mem):
			return nil, fmt.Errorf("sim image %s holds %d bytes, want %d", image, len(b), len(ee.Mem))
		default:
			copy(ee.Mem[:], b)
		}
	}

	dev, err := mwm.New(ee, conf.Device(), mwm.WithClock(sim.NewClock()), mwm.WithLogger(log))
	if err != nil {
		return nil, err
	}
	dev.Init()

	save := func() error {
		if image == "" {
			return nil
		}
		return os.WriteFile(image, ee.Mem[:], 0o644)
	}
	return &session{dev: dev, close: save, err: func() error { return nil }}, nil
}
