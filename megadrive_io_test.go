package main

import "testing"

func TestParsePadButtons(t *testing.T) {
	tests := []struct {
		in   string
		want uint8
		ok   bool
	}{
		{"-", 0, true},
		{"", 0, true},
		{"s", PadStart, true},
		{"abc", PadA | PadB | PadC, true},
		{"UDLR", PadUp | PadDown | PadLeft | PadRight, true},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, err := ParsePadButtons(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Errorf("ParsePadButtons(%q) = $%02X, %v", tt.in, got, err)
		}
	}
}

func TestPadMultiplexing(t *testing.T) {
	io := NewIOPorts()
	io.Pads[0].Buttons = PadUp | PadA | PadStart

	io.Write8(0xA10009, MD_IO_TH) // TH as output
	io.Write8(0xA10003, 0)
	if got := io.Read8(0xA10003); got != 0x02 {
		t.Errorf("TH low read = $%02X, want $02", got)
	}
	io.Write8(0xA10003, MD_IO_TH)
	if got := io.Read8(0xA10003); got != 0x7E {
		t.Errorf("TH high read = $%02X, want $7E", got)
	}
	if got := io.Read8(0xA10009); got != MD_IO_TH {
		t.Errorf("ctrl readback = $%02X", got)
	}
}

func TestVersionRegister(t *testing.T) {
	tests := []struct {
		overseas, pal, tmss bool
		want                uint8
	}{
		{false, false, false, 0x20},
		{true, false, false, 0xA0},
		{true, true, false, 0xE0},
		{true, false, true, 0xA1},
	}
	for _, tt := range tests {
		io := &IOPorts{Overseas: tt.overseas, PAL: tt.pal, TMSS: tt.tmss}
		if got := io.Read8(0xA10001); got != tt.want {
			t.Errorf("%+v: version $%02X", tt, got)
		}
	}
}

func TestIOReset(t *testing.T) {
	io := NewIOPorts()
	io.Write8(0xA10009, 0x40)
	io.Reset()
	if got := io.Read8(0xA10009); got != 0 {
		t.Errorf("ctrl after reset = $%02X", got)
	}
}
