package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/cleetus-j/mwm"
	"github.com/cleetus-j/mwm/internal/board"
)

var (
	configPath string
	backend    string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "mwtool",
		Short: "Read and write a 93C46 MicroWire EEPROM over bit-banged GPIO",
		Long: `mwtool drives a 93C46 serial EEPROM through four GPIO lines (DI, DO, SK, CS).

The "cdev" backend uses the Linux GPIO character device. The "sim" backend
runs against a software model of the part and needs no hardware.`,
		SilenceUsage: true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "board configuration file (YAML)")
	pf.StringVar(&backend, "backend", "", "line backend: sim or cdev (overrides the config file)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log protocol details")

	rootCmd.AddCommand(selftestCmd(), readCmd(), writeCmd(), dumpCmd(), eraseCmd(), fillCmd())
}

// session is an opened device with its backend.
type session struct {
	dev   *mwm.Device
	close func() error
	err   func() error
}

func (s *session) finish() error {
	err := s.err()
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

func logger() *slog.Logger {
	opts := slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	return slog.New(opts.NewTextHandler(os.Stderr))
}

func open() (*session, error) {
	conf, err := board.Load(configPath)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		conf.Backend = backend
		if err := conf.Validate(); err != nil {
			return nil, err
		}
	}

	log := logger()
	s, err := openBackend(conf, log)
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", conf.Backend, err)
	}
	log.Debug("device ready", "backend", conf.Backend, "settle", s.dev.Settle(), "write_timeout", conf.WriteTimeout)
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
