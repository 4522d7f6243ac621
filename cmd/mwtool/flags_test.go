package main

import "testing"

func TestByteValue(t *testing.T) {
	tests := []struct {
		in   string
		want byte
		fail bool
	}{
		{"0xA5", 0xa5, false},
		{"0Xa5", 0xa5, false},
		{"165", 0xa5, false},
		{"0b10100101", 0xa5, false},
		{"256", 0, true},
		{"-1", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		var b byteValue
		err := b.Set(tt.in)
		if (err != nil) != tt.fail {
			t.Errorf("Set(%q): error %v", tt.in, err)
			continue
		}
		if byte(b) != tt.want {
			t.Errorf("Set(%q) = %#02x, want %#02x", tt.in, byte(b), tt.want)
		}
	}
}

func TestAddrValue(t *testing.T) {
	var a addrValue
	if err := a.Set("0x3f"); err != nil || a != 63 {
		t.Fatalf("Set(0x3f): %v %d", err, a)
	}
	if a.String() != "0x3F" || a.Type() != "addr" {
		t.Fatalf("String %q Type %q", a.String(), a.Type())
	}
	if err := a.Set("0x40"); err == nil {
		t.Fatalf("0x40 accepted")
	}
}
