// debug_snapshot.go - Machine state snapshot for save/load and backstep

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

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	snapshotMagic   = "MDSS"
	snapshotVersion = 1
)

// MachineState is the fixed-size part of a snapshot. Every field has a fixed
// encoding so the whole struct goes through encoding/binary in one call.
type MachineState struct {
	Regs             M68KRegisters
	Halted           bool
	Stopped          bool
	PendingIRQ       uint8
	ExcState         uint8
	ExcDepth         uint32
	Cycles           uint64
	InstructionCount uint64

	RAM [MD_RAM_SIZE]byte

	Z80RAM    [MD_Z80_RAM_SIZE]byte
	Z80BusReq bool
	Z80Reset  bool
	Z80Bank   uint32

	VDPRegs     [VDP_REG_COUNT]uint8
	VRAM        [VDP_VRAM_SIZE]byte
	CRAM        [VDP_CRAM_SIZE]uint16
	VSRAM       [VDP_VSRAM_SIZE]uint16
	VDPPending  bool
	VDPCode     uint8
	VDPAddr     uint32
	VDPFill     bool
	VDPLineCtr  int32
	VDPHint     bool
	VDPVint     bool
	VDPVBlank   bool
	VDPOddFrame bool
	VDPFrame    uint64

	YMRegs   [2][256]uint8
	YMAddr   [2]uint8
	YMStatus uint8
	YMTimerA int32
	YMTimerB int32

	PSGTone    [3]uint16
	PSGAtten   [PSG_CHANNELS]uint8
	PSGNoise   uint8
	PSGLatched uint8
	PSGLFSR    uint16

	TMSSSignature  [4]byte
	TMSSCartMapped bool

	MapperBanks [MD_BANK_COUNT]uint8
	SRAMMapped  bool
	SRAMProtect bool

	IOData [3]uint8
	IOCtrl [3]uint8

	Line      int32
	LineCycle int32
	HBlank    bool
	Frames    uint64
}

// MachineSnapshot captures the machine for save/load and backstep. ROM is
// not included; a snapshot restores onto the same cartridge.
type MachineSnapshot struct {
	State MachineState
	SRAM  []byte
}

// Snapshot captures the complete machine state.
func (m *Machine) Snapshot() *MachineSnapshot {
	snap := &MachineSnapshot{}
	s := &snap.State
	cpu := m.CPU

	s.Regs = cpu.Registers()
	s.Halted = cpu.halted
	s.Stopped = cpu.stopped
	s.PendingIRQ = cpu.pendingIRQ
	s.ExcState = uint8(cpu.state)
	s.ExcDepth = uint32(cpu.depth)
	s.Cycles = cpu.cycles
	s.InstructionCount = cpu.InstructionCount

	s.RAM = m.Bus.ram

	s.Z80RAM = m.Z80.RAM
	s.Z80BusReq = m.Z80.busReq
	s.Z80Reset = m.Z80.reset
	s.Z80Bank = m.Z80.bank

	v := m.VDP
	s.VDPRegs = v.Regs
	s.VRAM = v.VRAM
	s.CRAM = v.CRAM
	s.VSRAM = v.VSRAM
	s.VDPPending = v.pending
	s.VDPCode = v.code
	s.VDPAddr = v.addr
	s.VDPFill = v.fillPending
	s.VDPLineCtr = int32(v.lineCounter)
	s.VDPHint = v.hintPending
	s.VDPVint = v.vintPending
	s.VDPVBlank = v.vblank
	s.VDPOddFrame = v.oddFrame
	s.VDPFrame = v.frame

	s.YMRegs = m.YM.Regs
	s.YMAddr = m.YM.addr
	s.YMStatus = m.YM.status
	s.YMTimerA = int32(m.YM.timerA)
	s.YMTimerB = int32(m.YM.timerB)

	m.PSG.mu.Lock()
	s.PSGTone = m.PSG.tone
	s.PSGAtten = m.PSG.atten
	s.PSGNoise = m.PSG.noise
	s.PSGLatched = m.PSG.latched
	s.PSGLFSR = m.PSG.lfsr
	m.PSG.mu.Unlock()

	s.TMSSSignature = m.TMSS.signature
	s.TMSSCartMapped = m.TMSS.cartMapped

	s.MapperBanks = m.Bus.Mapper.banks
	if sram := m.Bus.SRAM; sram != nil {
		s.SRAMMapped = sram.Mapped
		s.SRAMProtect = sram.WriteProtect
		snap.SRAM = append([]byte(nil), sram.data...)
	}

	s.IOData = m.IO.data
	s.IOCtrl = m.IO.ctrl

	s.Line = int32(m.line)
	s.LineCycle = int32(m.lineCycle())
	s.HBlank = m.hblank
	s.Frames = m.Frames
	return snap
}

// Restore puts the machine back into a snapshot's state.
func (m *Machine) Restore(snap *MachineSnapshot) error {
	s := &snap.State
	if m.Bus.SRAM != nil && len(snap.SRAM) != 0 && len(snap.SRAM) != len(m.Bus.SRAM.data) {
		return fmt.Errorf("snapshot SRAM is %d bytes, cartridge has %d", len(snap.SRAM), len(m.Bus.SRAM.data))
	}

	cpu := m.CPU
	cpu.SetRegisters(s.Regs)
	cpu.halted = s.Halted
	cpu.stopped = s.Stopped
	cpu.pendingIRQ = s.PendingIRQ
	cpu.pendingVector = 0
	cpu.pendingReset = false
	cpu.state = M68KExceptionState(s.ExcState)
	cpu.depth = int(s.ExcDepth)
	cpu.cycles = s.Cycles
	cpu.InstructionCount = s.InstructionCount

	m.Bus.ram = s.RAM

	m.Z80.RAM = s.Z80RAM
	m.Z80.busReq = s.Z80BusReq
	m.Z80.reset = s.Z80Reset
	m.Z80.bank = s.Z80Bank

	v := m.VDP
	v.Regs = s.VDPRegs
	v.VRAM = s.VRAM
	v.CRAM = s.CRAM
	v.VSRAM = s.VSRAM
	v.pending = s.VDPPending
	v.code = s.VDPCode
	v.addr = s.VDPAddr
	v.fillPending = s.VDPFill
	v.lineCounter = int(s.VDPLineCtr)
	v.hintPending = s.VDPHint
	v.vintPending = s.VDPVint
	v.vblank = s.VDPVBlank
	v.oddFrame = s.VDPOddFrame
	v.frame = s.VDPFrame
	v.line = int(s.Line)

	m.YM.Regs = s.YMRegs
	m.YM.addr = s.YMAddr
	m.YM.status = s.YMStatus
	m.YM.timerA = int(s.YMTimerA)
	m.YM.timerB = int(s.YMTimerB)
	m.YM.busy = 0

	m.PSG.mu.Lock()
	m.PSG.tone = s.PSGTone
	m.PSG.atten = s.PSGAtten
	m.PSG.noise = s.PSGNoise
	m.PSG.latched = s.PSGLatched
	m.PSG.lfsr = s.PSGLFSR
	m.PSG.mu.Unlock()

	m.TMSS.signature = s.TMSSSignature
	m.TMSS.unlocked = string(s.TMSSSignature[:]) == "SEGA"
	m.TMSS.cartMapped = s.TMSSCartMapped

	m.Bus.Mapper.banks = s.MapperBanks
	if sram := m.Bus.SRAM; sram != nil {
		sram.Mapped = s.SRAMMapped
		sram.WriteProtect = s.SRAMProtect
		if len(snap.SRAM) != 0 {
			copy(sram.data, snap.SRAM)
		}
	}

	m.IO.data = s.IOData
	m.IO.ctrl = s.IOCtrl

	m.line = int(s.Line)
	m.lineStart = s.Cycles - uint64(s.LineCycle)
	m.hblank = s.HBlank
	m.Frames = s.Frames
	return nil
}

// SaveSnapshotToFile writes a snapshot to disk with gzip compression.
func SaveSnapshotToFile(snap *MachineSnapshot, path string) error {
	var buf bytes.Buffer

	// Magic
	buf.WriteString(snapshotMagic)

	// Version
	binary.Write(&buf, binary.LittleEndian, uint32(snapshotVersion))

	gz := gzip.NewWriter(&buf)
	if err := binary.Write(gz, binary.LittleEndian, &snap.State); err != nil {
		return fmt.Errorf("encoding machine state: %w", err)
	}
	if err := binary.Write(gz, binary.LittleEndian, uint32(len(snap.SRAM))); err != nil {
		return fmt.Errorf("encoding SRAM length: %w", err)
	}
	if _, err := gz.Write(snap.SRAM); err != nil {
		return fmt.Errorf("compressing SRAM: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadSnapshotFromFile reads and decompresses a snapshot from disk.
func LoadSnapshotFromFile(path string) (*MachineSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(bytes.NewReader(data))
}

func decodeSnapshot(r io.Reader) (*MachineSnapshot, error) {
	// Magic
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return nil, fmt.Errorf("invalid snapshot magic: %q", string(magic))
	}

	// Version
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", version)
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip reader: %w", err)
	}
	defer gz.Close()

	snap := &MachineSnapshot{}
	if err := binary.Read(gz, binary.LittleEndian, &snap.State); err != nil {
		return nil, fmt.Errorf("decoding machine state: %w", err)
	}
	var sramLen uint32
	if err := binary.Read(gz, binary.LittleEndian, &sramLen); err != nil {
		return nil, fmt.Errorf("reading SRAM length: %w", err)
	}
	if sramLen > MD_CART_END+1 {
		return nil, fmt.Errorf("SRAM length %d exceeds the cartridge window", sramLen)
	}
	if sramLen > 0 {
		snap.SRAM = make([]byte, sramLen)
		if _, err := io.ReadFull(gz, snap.SRAM); err != nil {
			return nil, fmt.Errorf("decompressing SRAM: %w", err)
		}
	}
	return snap, nil
}
