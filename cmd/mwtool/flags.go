package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/cleetus-j/mwm"
)

// byteValue parses decimal, 0x hex or 0b binary, like the firmware
// console.
type byteValue byte

var _ pflag.Value = (*byteValue)(nil)

func (b *byteValue) String() string { return fmt.Sprintf("0x%02X", byte(*b)) }
func (b *byteValue) Type() string   { return "byte" }

func (b *byteValue) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return fmt.Errorf("%q is not a byte value", s)
	}
	*b = byteValue(v)
	return nil
}

// addrValue is a byteValue limited to the cell range.
type addrValue mwm.Addr

var _ pflag.Value = (*addrValue)(nil)

func (a *addrValue) String() string { return fmt.Sprintf("0x%02X", uint8(*a)) }
func (a *addrValue) Type() string   { return "addr" }

func (a *addrValue) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || !mwm.Addr(v).Valid() {
		return fmt.Errorf("%q is not an address between 0 and %d", s, mwm.NumCells-1)
	}
	*a = addrValue(v)
	return nil
}

// parseArgs sets each value from the positional args in order.
func parseArgs(args []string, values ...pflag.Value) error {
	for i, v := range values {
		if err := v.Set(args[i]); err != nil {
			return err
		}
	}
	return nil
}
