package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleetus-j/mwm"
	"github.com/cleetus-j/mwm/internal/selftest"
)

func selftestCmd() *cobra.Command {
	addr := addrValue(selftest.DefaultAddr)
	value := byteValue(selftest.DefaultValue)

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Write a byte, read it back and compare",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			ok, err := selftest.Run(cmd.OutOrStdout(), s.dev, mwm.Addr(addr), byte(value))
			if ferr := s.finish(); err == nil {
				err = ferr
			}
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("self test failed")
			}
			return nil
		},
	}
	cmd.Flags().Var(&addr, "addr", "cell to test")
	cmd.Flags().Var(&value, "value", "value to write")
	return cmd
}

func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read ADDR",
		Short: "Read one cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var addr addrValue
			if err := parseArgs(args, &addr); err != nil {
				return err
			}
			s, err := open()
			if err != nil {
				return err
			}
			v := s.dev.ReadByte(mwm.Addr(addr))
			if err := s.finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%02X\n", v)
			return nil
		},
	}
}

func writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write ADDR VALUE",
		Short: "Write one cell and wait for the write cycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				addr  addrValue
				value byteValue
			)
			if err := parseArgs(args, &addr, &value); err != nil {
				return err
			}
			s, err := open()
			if err != nil {
				return err
			}
			err = s.dev.WriteByte(mwm.Addr(addr), byte(value))
			if ferr := s.finish(); err == nil {
				err = ferr
			}
			return err
		},
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Hex dump all cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			buf := make([]byte, mwm.NumCells)
			for a := range buf {
				buf[a] = s.dev.ReadByte(mwm.Addr(a))
			}
			if err := s.finish(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), hex.Dump(buf))
			return nil
		},
	}
}

func eraseCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "erase [ADDR]",
		Short: "Erase one cell, or all cells with --all",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var addr addrValue
			if !all {
				if err := parseArgs(args, &addr); err != nil {
					return err
				}
			}
			s, err := open()
			if err != nil {
				return err
			}
			if all {
				err = s.dev.EraseAll()
			} else {
				err = s.dev.Erase(mwm.Addr(addr))
			}
			if ferr := s.finish(); err == nil {
				err = ferr
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "erase every cell")
	return cmd
}

func fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill VALUE",
		Short: "Write VALUE to every cell in one write cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value byteValue
			if err := parseArgs(args, &value); err != nil {
				return err
			}
			s, err := open()
			if err != nil {
				return err
			}
			err = s.dev.WriteAll(byte(value))
			if ferr := s.finish(); err == nil {
				err = ferr
			}
			return err
		},
	}
}
