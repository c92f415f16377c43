// megadrive_z80.go - Z80 address space as seen from the 68000

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

const (
	MD_Z80_RAM_SIZE  = 0x2000
	MD_Z80_YM_BASE   = 0x4000
	MD_Z80_BANK_REG  = 0x6000
	MD_Z80_VDP_BASE  = 0x7F00
	MD_Z80_PSG       = 0x7F11
	MD_Z80_BANK_BASE = 0x8000
)

// Z80Window holds the sound CPU's RAM and the BUSREQ/RESET lines. The sound
// CPU itself is not emulated: the 68000 can load and inspect Z80 RAM and
// reach the YM2612 and PSG through it, which is what boot code and sound
// drivers need from the 68000 side.
type Z80Window struct {
	RAM [MD_Z80_RAM_SIZE]byte

	busReq bool
	reset  bool
	bank   uint32

	YM  *YM2612
	PSG *PSG
}

func NewZ80Window(ym *YM2612, psg *PSG) *Z80Window {
	z := &Z80Window{YM: ym, PSG: psg}
	z.Reset()
	return z
}

// Reset holds the Z80 in reset with its bus released, the power-on state.
func (z *Z80Window) Reset() {
	clear(z.RAM[:])
	z.busReq = false
	z.reset = true
	z.bank = 0
}

// Accessible reports whether the 68000 may use the Z80 bus.
func (z *Z80Window) Accessible() bool {
	return z.busReq || z.reset
}

func (z *Z80Window) BusRequested() bool { return z.busReq }
func (z *Z80Window) InReset() bool      { return z.reset }

// Bank returns the 68000 address the $8000 window points at.
func (z *Z80Window) Bank() uint32 { return z.bank }

func (z *Z80Window) SetBusReq(req bool) {
	z.busReq = req
}

func (z *Z80Window) SetReset(held bool) {
	if held && !z.reset && z.YM != nil {
		z.YM.Reset()
	}
	z.reset = held
}

// BusReqStatus is the byte read at $A11100. Bit 0 is clear once the bus has
// been granted to the 68000.
func (z *Z80Window) BusReqStatus() uint8 {
	if z.busReq && !z.reset {
		return 0xFE
	}
	return 0xFF
}

func (z *Z80Window) Read8(addr uint32) uint8 {
	if !z.Accessible() {
		return 0xFF
	}
	off := addr & 0xFFFF
	switch {
	case off < MD_Z80_YM_BASE:
		return z.RAM[off&(MD_Z80_RAM_SIZE-1)]
	case off < MD_Z80_BANK_REG:
		if z.YM != nil {
			return z.YM.ReadStatus()
		}
	}
	return 0xFF
}

func (z *Z80Window) Write8(addr uint32, v uint8) {
	if !z.Accessible() {
		return
	}
	off := addr & 0xFFFF
	switch {
	case off < MD_Z80_YM_BASE:
		z.RAM[off&(MD_Z80_RAM_SIZE-1)] = v
	case off < MD_Z80_BANK_REG:
		if z.YM != nil {
			z.YM.Write(uint8(off&3), v)
		}
	case off < MD_Z80_BANK_REG+0x100:
		// Serial shift register: each write shifts bit 0 in as address bit 23
		z.bank = (z.bank>>1 | uint32(v&1)<<23) & 0xFF8000
	case off == MD_Z80_PSG:
		if z.PSG != nil {
			z.PSG.Write(v)
		}
	}
}
