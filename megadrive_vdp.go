// megadrive_vdp.go - VDP ports, DMA and interrupt sources

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

/*
megadrive_vdp.go - Video Display Processor bus collaborator

The VDP sits behind ports $C00000 (data), $C00004 (control) and $C00008 (HV
counter). It implements the parts of the chip the 68000 interacts with:

  - 24 registers written through the control port ($8000 | reg<<8 | value)
  - the two-word command latch selecting VRAM, CRAM or VSRAM and an address
  - 64KB VRAM, 64 words of CRAM and 40 words of VSRAM with auto-increment
  - the status word and HV counter
  - DMA from 68000 memory, VRAM fill and VRAM copy
  - the horizontal interrupt line counter (level 4) and vertical
    interrupt (level 6)

Rendering is limited to the backdrop colour from register 7, which is
enough for the presenter to show boot progress and colour tests.
*/

package main

import "fmt"

const (
	VDP_REG_COUNT  = 24
	VDP_VRAM_SIZE  = 0x10000
	VDP_CRAM_SIZE  = 64
	VDP_VSRAM_SIZE = 40

	VDP_REG_MODE1     = 0
	VDP_REG_MODE2     = 1
	VDP_REG_BACKDROP  = 7
	VDP_REG_HINT      = 10
	VDP_REG_MODE4     = 12
	VDP_REG_AUTOINC   = 15
	VDP_REG_DMA_LEN_L = 19
	VDP_REG_DMA_LEN_H = 20
	VDP_REG_DMA_SRC_L = 21
	VDP_REG_DMA_SRC_M = 22
	VDP_REG_DMA_SRC_H = 23

	VDP_MODE1_IE1  = 0x10 // HINT enable
	VDP_MODE2_DISP = 0x40
	VDP_MODE2_IE0  = 0x20 // VINT enable
	VDP_MODE2_M1   = 0x10 // DMA enable
	VDP_MODE2_M2   = 0x08 // 30 row (PAL only)
	VDP_MODE4_H40  = 0x01

	VDP_STATUS_FIFO_EMPTY = 0x0200
	VDP_STATUS_VINT       = 0x0080
	VDP_STATUS_ODD        = 0x0010
	VDP_STATUS_VBLANK     = 0x0008
	VDP_STATUS_HBLANK     = 0x0004
	VDP_STATUS_PAL        = 0x0001
	VDP_STATUS_FIXED      = 0x3400 // upper bits read back from the prefetch queue

	VDP_CODE_VRAM_READ   = 0x0
	VDP_CODE_VRAM_WRITE  = 0x1
	VDP_CODE_CRAM_WRITE  = 0x3
	VDP_CODE_VSRAM_READ  = 0x4
	VDP_CODE_VSRAM_WRITE = 0x5
	VDP_CODE_CRAM_READ   = 0x8
	VDP_CODE_DMA         = 0x20

	VDP_DMA_68K  = 0
	VDP_DMA_FILL = 2
	VDP_DMA_COPY = 3

	VDP_IRQ_HINT = 4
	VDP_IRQ_VINT = 6

	VDP_LINES_NTSC   = 262
	VDP_LINES_PAL    = 313
	VDP_CYCLES_LINE  = 488
	VDP_HBLANK_START = 404 // CPU cycles into the line
	VDP_MAX_WIDTH    = 320
	VDP_MAX_HEIGHT   = 240
)

type VDP struct {
	Regs  [VDP_REG_COUNT]uint8
	VRAM  [VDP_VRAM_SIZE]byte
	CRAM  [VDP_CRAM_SIZE]uint16
	VSRAM [VDP_VSRAM_SIZE]uint16

	PAL bool

	// command latch
	pending bool
	code    uint8
	addr    uint32

	fillPending bool
	readBuffer  uint16

	line        int
	lineCounter int
	hintPending bool
	vintPending bool
	vblank      bool
	hblank      bool
	oddFrame    bool
	frame       uint64

	// LineCycle returns how far the CPU is into the current line.
	LineCycle func() int
	// DMARead fetches a word from 68000 memory for 68K to VDP transfers.
	DMARead func(addr uint32) uint16
	// IRQ raises or clears a 68000 interrupt level.
	IRQ func(level uint8, asserted bool)

	frameBuffer []byte
	Debug       bool
}

func NewVDP(pal bool) *VDP {
	v := &VDP{
		PAL:         pal,
		frameBuffer: make([]byte, VDP_MAX_WIDTH*VDP_MAX_HEIGHT*4),
	}
	v.Reset()
	return v
}

func (v *VDP) Reset() {
	v.Regs = [VDP_REG_COUNT]uint8{}
	clear(v.VRAM[:])
	v.CRAM = [VDP_CRAM_SIZE]uint16{}
	v.VSRAM = [VDP_VSRAM_SIZE]uint16{}
	v.pending = false
	v.code = 0
	v.addr = 0
	v.fillPending = false
	v.readBuffer = 0
	v.line = 0
	v.lineCounter = 0
	v.hintPending = false
	v.vintPending = false
	v.vblank = false
	v.hblank = false
	v.oddFrame = false
	v.frame = 0
	v.updateIRQ()
}

// ------------------------------------------------------------------------------
// Geometry
// ------------------------------------------------------------------------------

func (v *VDP) Width() int {
	if v.Regs[VDP_REG_MODE4]&VDP_MODE4_H40 != 0 {
		return 320
	}
	return 256
}

// ActiveLines is 224, or 240 in V30 mode on PAL.
func (v *VDP) ActiveLines() int {
	if v.PAL && v.Regs[VDP_REG_MODE2]&VDP_MODE2_M2 != 0 {
		return 240
	}
	return 224
}

func (v *VDP) TotalLines() int {
	if v.PAL {
		return VDP_LINES_PAL
	}
	return VDP_LINES_NTSC
}

func (v *VDP) Line() int      { return v.line }
func (v *VDP) Frame() uint64  { return v.frame }
func (v *VDP) InVBlank() bool { return v.vblank }

func (v *VDP) autoIncrement() uint32 {
	return uint32(v.Regs[VDP_REG_AUTOINC])
}

func (v *VDP) dmaEnabled() bool {
	return v.Regs[VDP_REG_MODE2]&VDP_MODE2_M1 != 0
}

// ------------------------------------------------------------------------------
// Interrupts
// ------------------------------------------------------------------------------

func (v *VDP) updateIRQ() {
	if v.IRQ == nil {
		return
	}
	v.IRQ(VDP_IRQ_VINT, v.vintPending && v.Regs[VDP_REG_MODE2]&VDP_MODE2_IE0 != 0)
	v.IRQ(VDP_IRQ_HINT, v.hintPending && v.Regs[VDP_REG_MODE1]&VDP_MODE1_IE1 != 0)
}

// Acknowledge is called from the CPU interrupt acknowledge cycle.
func (v *VDP) Acknowledge(level uint8) {
	switch level {
	case VDP_IRQ_VINT:
		v.vintPending = false
	case VDP_IRQ_HINT:
		v.hintPending = false
	}
	v.updateIRQ()
}

// StartLine advances the VDP to the given line. The line counter reloads
// from register 10 during vertical blank and counts down on active lines,
// raising HINT when it underflows. VINT fires on the first blanked line.
func (v *VDP) StartLine(line int) {
	v.line = line
	active := v.ActiveLines()
	v.hblank = false

	if line == 0 {
		v.vblank = false
		v.frame++
		v.oddFrame = !v.oddFrame
	}

	if line <= active {
		v.lineCounter--
		if v.lineCounter < 0 {
			v.lineCounter = int(v.Regs[VDP_REG_HINT])
			v.hintPending = true
		}
	} else {
		v.lineCounter = int(v.Regs[VDP_REG_HINT])
	}

	if line == active {
		v.vblank = true
		v.vintPending = true
		if v.Debug {
			fmt.Printf("VDP: VINT frame %d\n", v.frame)
		}
	}
	v.updateIRQ()
}

// EnterHBlank marks the end of the visible part of the line.
func (v *VDP) EnterHBlank() {
	v.hblank = true
}

// ------------------------------------------------------------------------------
// Ports
// ------------------------------------------------------------------------------

func (v *VDP) Status() uint16 {
	s := uint16(VDP_STATUS_FIXED | VDP_STATUS_FIFO_EMPTY)
	if v.vintPending {
		s |= VDP_STATUS_VINT
	}
	if v.oddFrame {
		s |= VDP_STATUS_ODD
	}
	if v.vblank || v.Regs[VDP_REG_MODE2]&VDP_MODE2_DISP == 0 {
		s |= VDP_STATUS_VBLANK
	}
	if v.hblank {
		s |= VDP_STATUS_HBLANK
	}
	if v.PAL {
		s |= VDP_STATUS_PAL
	}
	return s
}

// HVCounter packs the external V counter (with the NTSC/PAL jump) and a
// linear H position.
func (v *VDP) HVCounter() uint16 {
	vc := v.line
	jump := 0xEA
	if v.PAL {
		jump = 0x102
		if v.ActiveLines() == 240 {
			jump = 0x10A
		}
	}
	if vc > jump {
		if v.PAL {
			vc -= 0x39
		} else {
			vc -= 6
		}
	}
	var hc int
	if v.LineCycle != nil {
		hc = v.LineCycle() * 0xB6 / VDP_CYCLES_LINE
	}
	return uint16(vc&0xFF)<<8 | uint16(hc&0xFF)
}

func (v *VDP) Read16(port uint32) uint16 {
	switch port & 0x1C {
	case MD_VDP_DATA:
		return v.readData()
	case MD_VDP_CONTROL:
		v.pending = false
		return v.Status()
	case MD_VDP_HV, MD_VDP_HV + 4:
		return v.HVCounter()
	}
	return 0xFFFF
}

func (v *VDP) Read8(port uint32) uint8 {
	w := v.Read16(port &^ 1)
	if port&1 != 0 {
		return uint8(w)
	}
	return uint8(w >> 8)
}

func (v *VDP) Write16(port uint32, value uint16) {
	switch port & 0x1C {
	case MD_VDP_DATA:
		v.writeData(value)
	case MD_VDP_CONTROL:
		v.writeControl(value)
	}
}

// Write8 drives the byte onto both halves of the data bus.
func (v *VDP) Write8(port uint32, value uint8) {
	v.Write16(port&^1, uint16(value)<<8|uint16(value))
}

func (v *VDP) writeControl(value uint16) {
	if v.pending {
		v.pending = false
		v.addr = v.addr&0x3FFF | uint32(value&3)<<14
		v.code = v.code&0x03 | uint8(value>>2)&0x3C
		if v.code&VDP_CODE_DMA != 0 && v.dmaEnabled() {
			v.startDMA()
		}
		return
	}
	if value&0xC000 == 0x8000 {
		reg := (value >> 8) & 0x1F
		if reg < VDP_REG_COUNT {
			v.Regs[reg] = uint8(value)
			v.updateIRQ()
		}
		return
	}
	v.pending = true
	v.addr = v.addr&0xC000 | uint32(value&0x3FFF)
	v.code = v.code&0x3C | uint8(value>>14)
}

func (v *VDP) writeVRAMWord(addr uint32, value uint16) {
	addr &= VDP_VRAM_SIZE - 1
	hi, lo := uint8(value>>8), uint8(value)
	if addr&1 != 0 {
		hi, lo = lo, hi
	}
	v.VRAM[addr&^1] = hi
	v.VRAM[addr|1] = lo
}

func (v *VDP) readVRAMWord(addr uint32) uint16 {
	addr &= VDP_VRAM_SIZE - 2
	return uint16(v.VRAM[addr])<<8 | uint16(v.VRAM[addr+1])
}

func (v *VDP) store(value uint16) {
	switch v.code & 0x0F {
	case VDP_CODE_VRAM_WRITE:
		v.writeVRAMWord(v.addr, value)
	case VDP_CODE_CRAM_WRITE:
		v.CRAM[(v.addr>>1)&(VDP_CRAM_SIZE-1)] = value & 0x0EEE
	case VDP_CODE_VSRAM_WRITE:
		if idx := (v.addr >> 1) & 0x3F; idx < VDP_VSRAM_SIZE {
			v.VSRAM[idx] = value & 0x07FF
		}
	}
	v.addr = (v.addr + v.autoIncrement()) & 0xFFFF
}

func (v *VDP) writeData(value uint16) {
	v.pending = false
	v.store(value)
	if v.fillPending {
		v.fillPending = false
		v.runFill(uint8(value >> 8))
	}
}

func (v *VDP) readData() uint16 {
	v.pending = false
	switch v.code & 0x0F {
	case VDP_CODE_VRAM_READ:
		v.readBuffer = v.readVRAMWord(v.addr)
	case VDP_CODE_CRAM_READ:
		v.readBuffer = v.CRAM[(v.addr>>1)&(VDP_CRAM_SIZE-1)]
	case VDP_CODE_VSRAM_READ:
		if idx := (v.addr >> 1) & 0x3F; idx < VDP_VSRAM_SIZE {
			v.readBuffer = v.VSRAM[idx]
		}
	}
	v.addr = (v.addr + v.autoIncrement()) & 0xFFFF
	return v.readBuffer
}

// ------------------------------------------------------------------------------
// DMA
// ------------------------------------------------------------------------------

func (v *VDP) dmaLength() uint32 {
	n := uint32(v.Regs[VDP_REG_DMA_LEN_H])<<8 | uint32(v.Regs[VDP_REG_DMA_LEN_L])
	if n == 0 {
		n = 0x10000
	}
	return n
}

func (v *VDP) dmaSource() uint32 {
	return uint32(v.Regs[VDP_REG_DMA_SRC_H]&0x7F)<<16 |
		uint32(v.Regs[VDP_REG_DMA_SRC_M])<<8 |
		uint32(v.Regs[VDP_REG_DMA_SRC_L])
}

// DMAMode returns the transfer kind selected by register 23 bits 7-6.
func (v *VDP) DMAMode() int {
	mode := int(v.Regs[VDP_REG_DMA_SRC_H] >> 6)
	if mode < VDP_DMA_FILL {
		return VDP_DMA_68K
	}
	return mode
}

// startDMA runs 68K and copy transfers immediately. A fill waits for the
// next data port write, which supplies the fill byte.
func (v *VDP) startDMA() {
	switch v.DMAMode() {
	case VDP_DMA_68K:
		v.run68KDMA()
	case VDP_DMA_FILL:
		v.fillPending = true
	case VDP_DMA_COPY:
		v.runCopy()
	}
	v.code &^= VDP_CODE_DMA
}

// finishDMA leaves the length registers at zero and the source registers
// pointing past the transfer, as the hardware does.
func (v *VDP) finishDMA(src uint32) {
	v.Regs[VDP_REG_DMA_LEN_L] = 0
	v.Regs[VDP_REG_DMA_LEN_H] = 0
	v.Regs[VDP_REG_DMA_SRC_L] = uint8(src)
	v.Regs[VDP_REG_DMA_SRC_M] = uint8(src >> 8)
}

// run68KDMA copies words from 68000 memory. The source counter wraps
// within a 128KB window.
func (v *VDP) run68KDMA() {
	length := v.dmaLength()
	src := v.dmaSource()
	hi := src & 0x7F0000
	lo := src & 0xFFFF
	if v.Debug {
		fmt.Printf("VDP: DMA 68K $%06X -> %X:$%04X len %d\n", src<<1, v.code&0xF, v.addr, length)
	}
	for i := uint32(0); i < length; i++ {
		var w uint16
		if v.DMARead != nil {
			w = v.DMARead((hi | lo) << 1)
		}
		v.store(w)
		lo = (lo + 1) & 0xFFFF
	}
	v.finishDMA(lo)
}

func (v *VDP) runFill(fill uint8) {
	length := v.dmaLength()
	for i := uint32(0); i < length; i++ {
		v.VRAM[(v.addr^1)&(VDP_VRAM_SIZE-1)] = fill
		v.addr = (v.addr + v.autoIncrement()) & 0xFFFF
	}
	v.finishDMA(v.dmaSource() + length)
}

func (v *VDP) runCopy() {
	length := v.dmaLength()
	src := v.dmaSource() & 0xFFFF
	for i := uint32(0); i < length; i++ {
		v.VRAM[v.addr&(VDP_VRAM_SIZE-1)] = v.VRAM[src]
		src = (src + 1) & 0xFFFF
		v.addr = (v.addr + v.autoIncrement()) & 0xFFFF
	}
	v.finishDMA(src)
}

// ------------------------------------------------------------------------------
// Output
// ------------------------------------------------------------------------------

// CRAMToRGBA expands a 9-bit ----BBB-GGG-RRR- colour.
func CRAMToRGBA(c uint16) (r, g, b uint8) {
	expand := func(n uint16) uint8 { return uint8(n&7) * 36 }
	return expand(c >> 1), expand(c >> 5), expand(c >> 9)
}

// RenderLine fills one line of the frame buffer with the backdrop colour,
// or black while the display is disabled.
func (v *VDP) RenderLine(line int) {
	if line >= v.ActiveLines() {
		return
	}
	var r, g, b uint8
	if v.Regs[VDP_REG_MODE2]&VDP_MODE2_DISP != 0 {
		r, g, b = CRAMToRGBA(v.CRAM[v.Regs[VDP_REG_BACKDROP]&0x3F])
	}
	width := v.Width()
	row := v.frameBuffer[line*VDP_MAX_WIDTH*4:]
	for x := 0; x < VDP_MAX_WIDTH; x++ {
		o := x * 4
		if x >= width {
			row[o], row[o+1], row[o+2] = 0, 0, 0
		} else {
			row[o], row[o+1], row[o+2] = r, g, b
		}
		row[o+3] = 0xFF
	}
}

// FrameBuffer returns the RGBA output, VDP_MAX_WIDTH pixels per row.
func (v *VDP) FrameBuffer() []byte {
	return v.frameBuffer
}
