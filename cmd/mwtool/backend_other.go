//go:build !linux

package main

import (
	"errors"

	"golang.org/x/exp/slog"

	"github.com/cleetus-j/mwm/internal/board"
)

func openBackend(conf board.Config, log *slog.Logger) (*session, error) {
	if conf.Backend == board.BackendSim {
		return openSim(conf, log)
	}
	return nil, errors.New("the cdev backend needs Linux")
}
