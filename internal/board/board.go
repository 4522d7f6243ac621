// Package board loads the wiring and timing of a MicroWire EEPROM from
// a YAML file.
package board

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cleetus-j/mwm"
)

const (
	BackendSim  = "sim"
	BackendCdev = "cdev"
)

// Pins are line offsets on the GPIO chip.
type Pins struct {
	DataIn  int `yaml:"di"`
	DataOut int `yaml:"do"`
	Clock   int `yaml:"sk"`
	Select  int `yaml:"cs"`

	// SelectActiveLow inverts CS, for boards with an inverting buffer.
	SelectActiveLow bool `yaml:"cs_active_low"`
}

// Sim parametrises the device model backend.
type Sim struct {
	WriteCycle int  `yaml:"write_cycle"`
	Float      bool `yaml:"float"`

	// Image keeps the cell array between runs. Empty means the model
	// starts erased every time.
	Image string `yaml:"image"`
}

type Config struct {
	Backend      string        `yaml:"backend"`
	Chip         string        `yaml:"chip"`
	Pins         Pins          `yaml:"pins"`
	ClockHz      uint32        `yaml:"clock_hz"`
	Settle       time.Duration `yaml:"settle"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Sim          Sim           `yaml:"sim"`
}

// Default is a Raspberry Pi header wiring with the firmware's timing.
var Default = Config{
	Backend:      BackendSim,
	Chip:         "gpiochip0",
	Pins:         Pins{DataIn: 17, DataOut: 27, Clock: 22, Select: 23},
	ClockHz:      mwm.DefaultConfig.ClockHz,
	WriteTimeout: mwm.Conf_93C46.WriteTimeout,
	Sim:          Sim{WriteCycle: 16},
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	conf := Default
	if path == "" {
		return conf, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return conf, fmt.Errorf("board config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("board config %s: %w", path, err)
	}
	return conf, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSim, BackendCdev:
	default:
		return fmt.Errorf("unknown backend %q: %w", c.Backend, mwm.ErrInvalidConfig)
	}

	if c.Backend == BackendCdev {
		if c.Chip == "" {
			return fmt.Errorf("cdev backend needs a chip: %w", mwm.ErrInvalidConfig)
		}
		p := c.Pins
		offsets := []int{p.DataIn, p.DataOut, p.Clock, p.Select}
		seen := map[int]bool{}
		for _, o := range offsets {
			if o < 0 {
				return fmt.Errorf("negative line offset %d: %w", o, mwm.ErrInvalidConfig)
			}
			if seen[o] {
				return fmt.Errorf("line %d used twice: %w", o, mwm.ErrInvalidConfig)
			}
			seen[o] = true
		}
	}

	if c.Sim.WriteCycle < 0 {
		return errors.New("sim write_cycle must not be negative")
	}
	return nil
}

// Device returns the driver timing.
func (c Config) Device() mwm.Config {
	return mwm.Config{
		ClockHz:      c.ClockHz,
		Settle:       c.Settle,
		WriteTimeout: c.WriteTimeout,
	}
}
