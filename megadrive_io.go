// megadrive_io.go - Version register and control pad ports

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

package main

import "fmt"

// Pad buttons, one bit each in Gamepad.Buttons.
const (
	PadUp = 1 << iota
	PadDown
	PadLeft
	PadRight
	PadA
	PadB
	PadC
	PadStart
)

// I/O register indices, (addr >> 1) & 0xF.
const (
	MD_IO_VERSION = 0x0
	MD_IO_DATA1   = 0x1
	MD_IO_DATA2   = 0x2
	MD_IO_DATA3   = 0x3
	MD_IO_CTRL1   = 0x4
	MD_IO_CTRL2   = 0x5
	MD_IO_CTRL3   = 0x6

	MD_IO_TH = 0x40
)

var padButtonLetters = map[rune]uint8{
	'u': PadUp, 'd': PadDown, 'l': PadLeft, 'r': PadRight,
	'a': PadA, 'b': PadB, 'c': PadC, 's': PadStart,
}

// ParsePadButtons reads a button set written as letters from "udlrabcs".
// "-" is the empty set.
func ParsePadButtons(s string) (uint8, error) {
	var buttons uint8
	if s == "-" {
		return 0, nil
	}
	for _, r := range s {
		bit, ok := padButtonLetters[r|0x20]
		if !ok {
			return 0, fmt.Errorf("unknown pad button %q", r)
		}
		buttons |= bit
	}
	return buttons, nil
}

// Gamepad is a 3-button pad. Buttons holds the pressed set.
type Gamepad struct {
	Buttons uint8
}

// read returns the six input lines for the given TH level, active low.
func (p *Gamepad) read(th bool) uint8 {
	var pressed uint8
	b := p.Buttons
	if th {
		// TH high: C B Right Left Down Up
		pressed = b & (PadUp | PadDown | PadLeft | PadRight)
		if b&PadB != 0 {
			pressed |= 1 << 4
		}
		if b&PadC != 0 {
			pressed |= 1 << 5
		}
	} else {
		// TH low: Start A 0 0 Down Up
		pressed = b&(PadUp|PadDown) | 0x0C
		if b&PadA != 0 {
			pressed |= 1 << 4
		}
		if b&PadStart != 0 {
			pressed |= 1 << 5
		}
	}
	return ^pressed & 0x3F
}

type IOPorts struct {
	Overseas bool
	PAL      bool
	TMSS     bool

	Pads [2]Gamepad
	data [3]uint8
	ctrl [3]uint8
}

func NewIOPorts() *IOPorts {
	io := &IOPorts{}
	io.Reset()
	return io
}

func (io *IOPorts) Reset() {
	io.data = [3]uint8{0x7F, 0x7F, 0x7F}
	io.ctrl = [3]uint8{}
}

// Version is the $A10001 register: bit 7 overseas, bit 6 PAL, bit 5 no
// expansion unit, bits 3-0 hardware revision (non-zero with TMSS).
func (io *IOPorts) Version() uint8 {
	v := uint8(0x20)
	if io.Overseas {
		v |= 0x80
	}
	if io.PAL {
		v |= 0x40
	}
	if io.TMSS {
		v |= 0x01
	}
	return v
}

func (io *IOPorts) readData(port int) uint8 {
	out := io.data[port] & io.ctrl[port]
	var in uint8 = 0x7F
	if port < len(io.Pads) {
		th := io.data[port]&MD_IO_TH != 0 || io.ctrl[port]&MD_IO_TH == 0
		in = io.Pads[port].read(th) | MD_IO_TH
	}
	return out | in&^io.ctrl[port]&0x7F | io.data[port]&0x80
}

func (io *IOPorts) Read8(addr uint32) uint8 {
	switch reg := (addr >> 1) & 0xF; reg {
	case MD_IO_VERSION:
		return io.Version()
	case MD_IO_DATA1, MD_IO_DATA2, MD_IO_DATA3:
		return io.readData(int(reg - MD_IO_DATA1))
	case MD_IO_CTRL1, MD_IO_CTRL2, MD_IO_CTRL3:
		return io.ctrl[reg-MD_IO_CTRL1]
	}
	// Serial registers
	return 0x00
}

func (io *IOPorts) Write8(addr uint32, v uint8) {
	switch reg := (addr >> 1) & 0xF; reg {
	case MD_IO_DATA1, MD_IO_DATA2, MD_IO_DATA3:
		io.data[reg-MD_IO_DATA1] = v
	case MD_IO_CTRL1, MD_IO_CTRL2, MD_IO_CTRL3:
		io.ctrl[reg-MD_IO_CTRL1] = v
	}
}
