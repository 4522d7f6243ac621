//go:build linux

package main

import (
	"golang.org/x/exp/slog"

	"github.com/cleetus-j/mwm"
	"github.com/cleetus-j/mwm/cdev"
	"github.com/cleetus-j/mwm/internal/board"
)

func openBackend(conf board.Config, log *slog.Logger) (*session, error) {
	if conf.Backend == board.BackendSim {
		return openSim(conf, log)
	}

	p := conf.Pins
	lines, err := cdev.Open(conf.Chip, cdev.Pins{
		DataIn:          p.DataIn,
		DataOut:         p.DataOut,
		Clock:           p.Clock,
		Select:          p.Select,
		SelectActiveLow: p.SelectActiveLow,
	})
	if err != nil {
		return nil, err
	}

	dev, err := mwm.New(lines, conf.Device(), mwm.WithLogger(log))
	if err != nil {
		lines.Close()
		return nil, err
	}
	dev.Init()

	return &session{dev: dev, close: lines.Close, err: lines.Err}, nil
}
