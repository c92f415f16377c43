// megadrive_machine.go - Mega Drive system: CPU, bus, VDP and sound timing

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
megadrive_machine.go - Mega Drive system wiring

Machine owns every component and drives them from the 68000's cycle count.
A scanline is 488 CPU cycles; the VDP enters horizontal blank 404 cycles in,
and a frame is 262 lines (NTSC) or 313 lines (PAL). Interrupts raised by the
VDP at a line boundary are seen by the CPU at its next instruction boundary.

The PSG and YM2612 are advanced by exactly the cycles the CPU consumed, so
audio stays locked to emulated time regardless of host speed.
*/

package main

import (
	"fmt"
)

type ResetMode int

const (
	ResetSoft ResetMode = iota // reset button: RAM survives
	ResetHard                  // power cycle
)

func (m ResetMode) String() string {
	if m == ResetHard {
		return "hard"
	}
	return "soft"
}

type MachineConfig struct {
	// Region forces the console territory; zero follows the cartridge header.
	Region Region
	// PAL forces 50Hz timing whatever the region.
	PAL bool

	BootROM    []byte
	TMSS       bool
	SampleRate int

	Trace bool
	Debug bool
}

type Machine struct {
	Config MachineConfig

	CPU  *M68KCPU
	Bus  *MegaDriveBus
	VDP  *VDP
	PSG  *PSG
	YM   *YM2612
	IO   *IOPorts
	Z80  *Z80Window
	TMSS *TMSSLatch
	Cart *Cartridge

	Region Region
	PAL    bool

	line      int
	lineStart uint64
	hblank    bool
	Frames    uint64

	// OnFrame runs after the last line of each frame has been rendered.
	OnFrame func(m *Machine)
}

func NewMachine(cfg MachineConfig) (*Machine, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = PSG_SAMPLE_RATE
	}

	tmss := NewTMSSLatch(cfg.TMSS)
	if len(cfg.BootROM) > 0 {
		if err := tmss.LoadBootROM(cfg.BootROM); err != nil {
			return nil, fmt.Errorf("loading boot ROM: %w", err)
		}
	}

	m := &Machine{
		Config: cfg,
		TMSS:   tmss,
		VDP:    NewVDP(cfg.PAL),
		PSG:    NewPSG(MD_MASTER_CLOCK_NTSC, cfg.SampleRate),
		YM:     NewYM2612(),
		IO:     NewIOPorts(),
		Region: cfg.Region,
		PAL:    cfg.PAL,
	}
	m.Z80 = NewZ80Window(m.YM, m.PSG)
	m.Bus = NewMegaDriveBus(m.TMSS, m.Z80, m.IO, m.VDP, m.PSG)
	m.Bus.Debug = cfg.Debug
	m.IO.TMSS = tmss.Enabled

	m.CPU = NewM68KCPU(m.Bus)
	m.CPU.Trace = cfg.Trace
	m.CPU.InterruptAck = m.acknowledge
	m.CPU.ResetHandler = m.resetLine

	m.VDP.Debug = cfg.Debug
	m.VDP.DMARead = m.Bus.Read16
	m.VDP.LineCycle = m.lineCycle
	m.VDP.IRQ = func(level uint8, asserted bool) {
		if asserted {
			m.CPU.RaiseInterrupt(level)
		} else {
			m.CPU.ClearInterrupt(level)
		}
	}

	m.applyRegion()
	return m, nil
}

// acknowledge runs the interrupt acknowledge cycle. The VDP drops the line
// it raised and the CPU autovectors.
func (m *Machine) acknowledge(level uint8) int {
	m.VDP.Acknowledge(level)
	return M68K_AUTOVECTOR
}

// resetLine is the 68000 RESET instruction: peripherals on the reset line
// return to their initial state.
func (m *Machine) resetLine() {
	m.YM.Reset()
	m.IO.Reset()
}

func (m *Machine) applyRegion() {
	region := m.Region
	if region == 0 && m.Cart != nil {
		region = m.Cart.PreferredRegion()
	}
	if region == 0 {
		region = RegionUSA
	}
	pal := m.Config.PAL || region == RegionEurope
	m.PAL = pal
	m.VDP.PAL = pal
	m.IO.PAL = pal
	m.IO.Overseas = region != RegionJapan

	clock := MD_MASTER_CLOCK_NTSC
	if pal {
		clock = MD_MASTER_CLOCK_PAL
	}
	m.PSG.SetClock(clock, m.Config.SampleRate)
}

// LoadCartridge parses the header, installs the image on the bus, sets up
// SRAM and banking, then performs a hard reset.
func (m *Machine) LoadCartridge(rom []byte) error {
	cart, err := NewCartridge(rom)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	m.Cart = cart
	m.Bus.SetROM(cart.storage)
	m.Bus.SRAM = cart.NewSRAMFromHeader()
	m.Bus.Mapper.SRAM = m.Bus.SRAM

	if !cart.ChecksumValid() {
		fmt.Printf("Cartridge: checksum mismatch, header $%04X computed $%04X\n", cart.Header.Checksum, cart.Checksum())
	}
	fmt.Printf("Cartridge: %s\n", cart)

	m.applyRegion()
	m.Reset(ResetHard)
	return nil
}

// Reset reloads SSP and PC from the vector table with SR $2700. A hard reset
// also clears work RAM, Z80 RAM, VDP and sound state, TMSS and the mapper.
func (m *Machine) Reset(mode ResetMode) {
	if mode == ResetHard {
		m.Bus.Reset()
		m.Z80.Reset()
		m.VDP.Reset()
		m.PSG.Reset()
		m.TMSS.Reset()
		m.Frames = 0
	} else {
		m.Z80.SetBusReq(false)
		m.Z80.SetReset(true)
	}
	m.YM.Reset()
	m.IO.Reset()

	m.CPU.Reset()
	m.line = 0
	m.hblank = false
	m.lineStart = m.CPU.Cycles()
	m.VDP.StartLine(0)
}

// RaiseInterrupt asserts a 68000 interrupt level from outside the VDP.
func (m *Machine) RaiseInterrupt(level uint8) {
	m.CPU.RaiseInterrupt(level)
}

func (m *Machine) lineCycle() int {
	return int(m.CPU.Cycles() - m.lineStart)
}

// Line returns the scanline being executed.
func (m *Machine) Line() int {
	return m.line
}

// syncLine delivers the horizontal blank and end of line events the CPU has
// run past.
func (m *Machine) syncLine() {
	for {
		pos := m.lineCycle()
		switch {
		case !m.hblank && pos >= VDP_HBLANK_START:
			m.hblank = true
			m.VDP.EnterHBlank()
		case pos >= VDP_CYCLES_LINE:
			m.nextLine()
		default:
			return
		}
	}
}

func (m *Machine) nextLine() {
	m.VDP.RenderLine(m.line)
	m.lineStart += VDP_CYCLES_LINE
	m.hblank = false
	m.line++
	if m.line >= m.VDP.TotalLines() {
		m.line = 0
		m.Frames++
		if m.OnFrame != nil {
			m.OnFrame(m)
		}
	}
	m.VDP.StartLine(m.line)
}

func (m *Machine) advance(cycles int) {
	m.PSG.Advance(cycles)
	m.YM.Advance(cycles)
}

// Run executes whole instructions for at least budget cycles, delivering
// line events in between, and returns the cycles consumed.
func (m *Machine) Run(budget int) int {
	used := 0
	for used < budget {
		m.syncLine()
		target := VDP_CYCLES_LINE
		if !m.hblank {
			target = VDP_HBLANK_START
		}
		slice := min(target-m.lineCycle(), budget-used)
		n := m.CPU.Run(slice)
		m.advance(n)
		used += n
	}
	m.syncLine()
	return used
}

// Step executes one instruction boundary.
func (m *Machine) Step() int {
	n := m.CPU.Step()
	m.advance(n)
	m.syncLine()
	return n
}

// frameCyclesLeft returns the cycles until the last line of the frame ends.
func (m *Machine) frameCyclesLeft() int {
	return (m.VDP.TotalLines()-m.line)*VDP_CYCLES_LINE - m.lineCycle()
}

// RunFrame runs whole instructions up to the end of the current frame and
// returns the cycles it took. Each frame stops at most one instruction past
// its boundary and the next frame starts from there, so stop points do not
// drift.
func (m *Machine) RunFrame() int {
	start := m.Frames
	used := 0
	for m.Frames == start {
		used += m.Run(max(m.frameCyclesLeft(), 1))
	}
	return used
}

// FrameBuffer returns the RGBA output of the last frame.
func (m *Machine) FrameBuffer() []byte {
	return m.VDP.FrameBuffer()
}

// SetPad sets the pressed buttons of control pad n (0 or 1).
func (m *Machine) SetPad(n int, buttons uint8) {
	m.IO.Pads[n&1].Buttons = buttons
}
