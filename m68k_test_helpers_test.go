// m68k_test_helpers_test.go - Table driven helpers for 68000 tests

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
	"fmt"
	"testing"
)

const (
	m68kTestSSP     = 0x00008000
	m68kTestUSP     = 0x00006000
	m68kTestPC      = 0x00001000
	m68kTestHandler = 0x00004000 // vector n jumps to m68kTestHandler + n*16
)

// m68kTestBus is a flat 16MB big-endian address space with no holes. It has
// no fault reporting, so only alignment errors reach the CPU.
type m68kTestBus struct {
	mem map[uint32]uint8
}

func newM68KTestBus() *m68kTestBus {
	return &m68kTestBus{mem: make(map[uint32]uint8)}
}

func (b *m68kTestBus) Read8(addr uint32) uint8 {
	return b.mem[addr&M68K_ADDRESS_MASK]
}

func (b *m68kTestBus) Write8(addr uint32, value uint8) {
	b.mem[addr&M68K_ADDRESS_MASK] = value
}

func (b *m68kTestBus) Read16(addr uint32) uint16 {
	return uint16(b.Read8(addr))<<8 | uint16(b.Read8(addr+1))
}

func (b *m68kTestBus) Write16(addr uint32, value uint16) {
	b.Write8(addr, uint8(value>>8))
	b.Write8(addr+1, uint8(value))
}

func (b *m68kTestBus) Read32(addr uint32) uint32 {
	return uint32(b.Read16(addr))<<16 | uint32(b.Read16(addr+2))
}

func (b *m68kTestBus) Write32(addr uint32, value uint32) {
	b.Write16(addr, uint16(value>>16))
	b.Write16(addr+2, uint16(value))
}

func (b *m68kTestBus) Reset() {
	clear(b.mem)
}

func m68kVectorHandler(vector uint8) uint32 {
	return m68kTestHandler + uint32(vector)*16
}

// setupTestCPU returns a CPU fresh out of reset in supervisor mode with every
// exception vector pointing at its own handler slot.
func setupTestCPU() *M68KCPU {
	bus := newM68KTestBus()
	bus.Write32(M68K_RESET_SSP, m68kTestSSP)
	bus.Write32(M68K_RESET_VECTOR, m68kTestPC)
	for v := 2; v < 64; v++ {
		bus.Write32(uint32(v)*4, m68kVectorHandler(uint8(v)))
	}
	cpu := NewM68KCPU(bus)
	cpu.Reset()
	cpu.USP = m68kTestUSP
	return cpu
}

// loadProgram writes opcode words at addr.
func loadProgram(cpu *M68KCPU, addr uint32, words ...uint16) {
	for i, w := range words {
		cpu.Write16(addr+uint32(i*2), w)
	}
}

// FlagExpectation defines expected CPU flag states after instruction execution
// Use -1 for "don't care" (flag not checked). A nil expectation skips the
// flag check entirely.
type FlagExpectation struct {
	N int8 // -1 = don't care, 0 = clear, 1 = set
	Z int8
	V int8
	C int8
	X int8
}

func FlagDontCare() *FlagExpectation {
	return &FlagExpectation{N: -1, Z: -1, V: -1, C: -1, X: -1}
}

func FlagsNZ(n, z int8) *FlagExpectation {
	return &FlagExpectation{N: n, Z: z, V: -1, C: -1, X: -1}
}

func FlagsNZVC(n, z, v, c int8) *FlagExpectation {
	return &FlagExpectation{N: n, Z: z, V: v, C: c, X: -1}
}

func FlagsAll(n, z, v, c, x int8) *FlagExpectation {
	return &FlagExpectation{N: n, Z: z, V: v, C: c, X: x}
}

// MemoryExpectation defines expected memory content at a specific address
type MemoryExpectation struct {
	Address uint32
	Size    int // 1=byte, 2=word, 4=long
	Value   uint32
}

// M68KTestCase is one instruction run from a fresh CPU.
type M68KTestCase struct {
	Name string

	Setup func(*M68KCPU)

	DataRegs [8]uint32
	AddrRegs [7]uint32 // A7 stays the reset SSP
	SR       uint16    // 0 keeps the reset SR

	InitialMem map[uint32]uint32 // long values

	Opcodes []uint16

	ExpectedRegs  map[string]uint32
	ExpectedMem   []MemoryExpectation
	ExpectedFlags *FlagExpectation

	// ShouldTrap checks that the step ended in the handler for TrapVector.
	ShouldTrap bool
	TrapVector uint8

	ExpectedPCDelta uint32 // 0 = don't check
	ExpectedCycles  int    // 0 = don't check
}

func RunM68KTests(t *testing.T, tests []M68KTestCase) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			runSingleM68KTest(t, setupTestCPU(), tc)
		})
	}
}

func runSingleM68KTest(t *testing.T, cpu *M68KCPU, tc M68KTestCase) {
	t.Helper()
	cpu.DataRegs = tc.DataRegs
	copy(cpu.AddrRegs[:7], tc.AddrRegs[:])
	if tc.SR != 0 {
		cpu.SetSR(tc.SR)
	}
	for addr, v := range tc.InitialMem {
		cpu.Write32(addr, v)
	}
	if tc.Setup != nil {
		tc.Setup(cpu)
	}
	loadProgram(cpu, cpu.PC, tc.Opcodes...)

	startPC := cpu.PC
	cycles := cpu.Step()

	if tc.ShouldTrap {
		if want := m68kVectorHandler(tc.TrapVector); cpu.PC != want {
			t.Errorf("expected vector %d (PC $%06X), PC is $%06X", tc.TrapVector, want, cpu.PC)
		}
	} else if cpu.PC >= m68kTestHandler && cpu.PC < m68kVectorHandler(64) {
		t.Errorf("unexpected exception, vector %d", (cpu.PC-m68kTestHandler)/16)
	}

	for name, want := range tc.ExpectedRegs {
		if got := getRegisterValue(cpu, name); got != want {
			t.Errorf("%s: got 0x%08X, expected 0x%08X", name, got, want)
		}
	}
	for _, mem := range tc.ExpectedMem {
		var got uint32
		switch mem.Size {
		case 1:
			got = uint32(cpu.Read8(mem.Address))
		case 2:
			got = uint32(cpu.Read16(mem.Address))
		default:
			got = cpu.Read32(mem.Address)
		}
		if got != mem.Value {
			t.Errorf("Memory[0x%06X]: got 0x%X, expected 0x%X", mem.Address, got, mem.Value)
		}
	}
	if tc.ExpectedFlags != nil {
		checkFlags(t, cpu, *tc.ExpectedFlags)
	}

	if tc.ExpectedPCDelta > 0 {
		if delta := cpu.PC - startPC; delta != tc.ExpectedPCDelta {
			t.Errorf("PC delta: got %d, expected %d", delta, tc.ExpectedPCDelta)
		}
	}
	if tc.ExpectedCycles > 0 && cycles != tc.ExpectedCycles {
		t.Errorf("cycles: got %d, expected %d", cycles, tc.ExpectedCycles)
	}
}

func getRegisterValue(cpu *M68KCPU, name string) uint32 {
	var n int
	switch {
	case name == "PC":
		return cpu.PC
	case name == "SR":
		return uint32(cpu.SR)
	case name == "USP":
		return cpu.Registers().USP
	case name == "SSP":
		return cpu.Registers().SSP
	case name == "SP":
		return cpu.AddrRegs[7]
	}
	if _, err := fmt.Sscanf(name[1:], "%d", &n); err != nil || n > 7 {
		panic(fmt.Sprintf("Unknown register: %s", name))
	}
	switch name[0] {
	case 'D':
		return cpu.DataRegs[n]
	case 'A':
		return cpu.AddrRegs[n]
	}
	panic(fmt.Sprintf("Unknown register: %s", name))
}

func checkFlags(t *testing.T, cpu *M68KCPU, expected FlagExpectation) {
	t.Helper()
	for _, f := range []struct {
		name string
		want int8
		mask uint16
	}{
		{"N", expected.N, M68K_SR_N},
		{"Z", expected.Z, M68K_SR_Z},
		{"V", expected.V, M68K_SR_V},
		{"C", expected.C, M68K_SR_C},
		{"X", expected.X, M68K_SR_X},
	} {
		if f.want == -1 {
			continue
		}
		got := int8(0)
		if cpu.SR&f.mask != 0 {
			got = 1
		}
		if got != f.want {
			t.Errorf("%s flag: got %d, expected %d", f.name, got, f.want)
		}
	}
}

// MakeOpcodeMove creates a MOVE opcode
// size: M68K_SIZE_BYTE, M68K_SIZE_WORD, M68K_SIZE_LONG
func MakeOpcodeMove(size, srcMode, srcReg, destMode, destReg uint16) uint16 {
	var sizeField uint16
	switch size {
	case M68K_SIZE_BYTE:
		sizeField = 1
	case M68K_SIZE_WORD:
		sizeField = 3
	case M68K_SIZE_LONG:
		sizeField = 2
	}
	return (sizeField << 12) | (destReg << 9) | (destMode << 6) | (srcMode << 3) | srcReg
}

func MakeOpcodeMoveq(data int8, destReg uint16) uint16 {
	return 0x7000 | (destReg << 9) | uint16(uint8(data))
}

// MakeOpcodeAddSub creates ADD or SUB opcode
// opmode: 0-2 for Dn op <ea>, 4-6 for <ea> op Dn
func MakeOpcodeAddSub(isAdd bool, reg, opmode, mode, eareg uint16) uint16 {
	base := uint16(0x9000)
	if isAdd {
		base = 0xD000
	}
	return base | (reg << 9) | (opmode << 6) | (mode << 3) | eareg
}

func MakeOpcodeBcc(condition, displacement uint16) uint16 {
	return 0x6000 | (condition << 8) | (displacement & 0xFF)
}

func ExpectByte(addr uint32, val uint8) MemoryExpectation {
	return MemoryExpectation{Address: addr, Size: 1, Value: uint32(val)}
}

func ExpectWord(addr uint32, val uint16) MemoryExpectation {
	return MemoryExpectation{Address: addr, Size: 2, Value: uint32(val)}
}

func ExpectLong(addr uint32, val uint32) MemoryExpectation {
	return MemoryExpectation{Address: addr, Size: 4, Value: val}
}

func Reg(name string, value uint32) map[string]uint32 {
	return map[string]uint32{name: value}
}

func TestTableDrivenHelpers(t *testing.T) {
	RunM68KTests(t, []M68KTestCase{
		{
			Name:          "MOVEQ_#5_to_D0",
			Opcodes:       []uint16{MakeOpcodeMoveq(5, 0)},
			ExpectedRegs:  Reg("D0", 5),
			ExpectedFlags: FlagsNZ(0, 0),
		},
		{
			Name:          "MOVEQ_#0_to_D1_sets_Z",
			DataRegs:      [8]uint32{0, 0xFF},
			Opcodes:       []uint16{MakeOpcodeMoveq(0, 1)},
			ExpectedRegs:  Reg("D1", 0),
			ExpectedFlags: FlagsNZ(0, 1),
		},
		{
			Name:          "MOVEQ_#-1_to_D2_sets_N",
			Opcodes:       []uint16{MakeOpcodeMoveq(-1, 2)},
			ExpectedRegs:  Reg("D2", 0xFFFFFFFF),
			ExpectedFlags: FlagsNZ(1, 0),
		},
	})
}
