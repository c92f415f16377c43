// cpu_m68k.go - Motorola 68000 CPU core for the Mega Drive

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
cpu_m68k.go - Motorola 68000 CPU core for the Mega Drive

This module implements the register file, status register handling and
memory access paths of the 68000 found in the Sega Mega Drive. Instruction
decode lives in cpu_m68k_optable.go, effective addresses in cpu_m68k_ea.go,
the handlers in cpu_m68k_ops_*.go and exception processing in
cpu_m68k_exceptions.go.

Architectural Features:
- 8 data registers (D0-D7) and 8 address registers (A0-A7, A7 is the active stack pointer)
- Separate user and supervisor stack pointers swapped on every change of the S bit
- 16-bit status register (system byte + condition codes), implemented bits $A71F
- 24-bit address bus, 16-bit data bus (long accesses are two word cycles)
- Seven interrupt levels, level 7 non-maskable
- Trace mode (T bit) raising vector 9 after every traced instruction

Execution Flow (one Step):
1. Reset request, halt and pending interrupt checks at the instruction boundary
2. Fetch opcode, look up the handler in the 65536 entry table
3. Resolve effective addresses and fetch operands
4. Execute with condition code updates and write back
5. Service any exception the instruction requested, then trace
6. Account cycles

Bus and address errors abandon the instruction at the faulting access. The
access is reported by panicking with an *m68kFault which Step recovers and
turns into a group 0 exception frame.
*/

package main

import (
	"fmt"
	"strings"
)

// ------------------------------------------------------------------------------
// Core System Constants
// ------------------------------------------------------------------------------
const (
	M68K_BYTE_SIZE    = 1
	M68K_WORD_SIZE    = 2
	M68K_LONG_SIZE    = 4
	M68K_ADDRESS_MASK = 0x00FFFFFF // 68000 has a 24-bit address bus
	M68K_RESET_SSP    = 0x00000000
	M68K_RESET_VECTOR = 0x00000004
)

// ------------------------------------------------------------------------------
// Status Register Bit Masks
// ------------------------------------------------------------------------------
const (
	M68K_SR_C     = 0x0001
	M68K_SR_V     = 0x0002
	M68K_SR_Z     = 0x0004
	M68K_SR_N     = 0x0008
	M68K_SR_X     = 0x0010
	M68K_SR_IPL   = 0x0700
	M68K_SR_S     = 0x2000
	M68K_SR_T     = 0x8000
	M68K_SR_CCR   = 0x001F
	M68K_SR_MASK  = 0xA71F // Bits that exist on the 68000
	M68K_SR_RESET = 0x2700
	M68K_SR_SHIFT = 8
)

// ------------------------------------------------------------------------------
// Instruction Format Constants
// ------------------------------------------------------------------------------

// Size Codes for Instructions
const (
	M68K_SIZE_BYTE = iota
	M68K_SIZE_WORD
	M68K_SIZE_LONG
)

// Addressing Mode Codes
const (
	M68K_AM_DR = iota
	M68K_AM_AR
	M68K_AM_AR_IND
	M68K_AM_AR_POST
	M68K_AM_AR_PRE
	M68K_AM_AR_DISP
	M68K_AM_AR_INDEX
	M68K_AM_ABS_SHORT
	M68K_AM_ABS_LONG
	M68K_AM_PC_DISP
	M68K_AM_PC_INDEX
	M68K_AM_IMM
	M68K_AM_INVALID
)

// Extension Word Bit Positions
const (
	M68K_EXT_REG_TYPE_BIT = 15 // Distinguishes address vs data register
	M68K_EXT_SIZE_BIT     = 11 // Determines word vs long index
)

// ------------------------------------------------------------------------------
// Instruction Condition Codes
// ------------------------------------------------------------------------------
const (
	M68K_CC_T  = 0
	M68K_CC_F  = 1
	M68K_CC_HI = 2 // Unsigned: tests C=0 AND Z=0
	M68K_CC_LS = 3 // Unsigned: tests C=1 OR Z=1
	M68K_CC_CC = 4
	M68K_CC_CS = 5
	M68K_CC_NE = 6
	M68K_CC_EQ = 7
	M68K_CC_VC = 8
	M68K_CC_VS = 9
	M68K_CC_PL = 10
	M68K_CC_MI = 11
	M68K_CC_GE = 12 // Signed: tests N=V
	M68K_CC_LT = 13 // Signed: tests N≠V
	M68K_CC_GT = 14 // Signed: tests Z=0 AND N=V
	M68K_CC_LE = 15 // Signed: tests Z=1 OR N≠V
)

// ------------------------------------------------------------------------------
// Exception and Interrupt Constants
// ------------------------------------------------------------------------------
const (
	M68K_VEC_RESET_SSP     = 0
	M68K_VEC_RESET         = 1
	M68K_VEC_BUS_ERROR     = 2
	M68K_VEC_ADDRESS_ERROR = 3
	M68K_VEC_ILLEGAL_INSTR = 4
	M68K_VEC_ZERO_DIVIDE   = 5
	M68K_VEC_CHK           = 6
	M68K_VEC_TRAPV         = 7
	M68K_VEC_PRIVILEGE     = 8
	M68K_VEC_TRACE         = 9
	M68K_VEC_LINE_A        = 10
	M68K_VEC_LINE_F        = 11
	M68K_VEC_UNINITIALISED = 15
	M68K_VEC_SPURIOUS      = 24
	M68K_VEC_LEVEL1        = 25
	M68K_VEC_LEVEL7        = 31 // NMI cannot be masked
	M68K_VEC_TRAP_BASE     = 32
	M68K_VEC_TRAP_LAST     = 47

	M68K_IRQ_NMI = 7

	// InterruptAck return values that are not vector numbers
	M68K_AUTOVECTOR = -1
	M68K_SPURIOUS   = -2
)

// ------------------------------------------------------------------------------
// Cycle Timing Constants
// ------------------------------------------------------------------------------
const (
	M68K_CYCLE_STOPPED   = 4
	M68K_CYCLE_RESET     = 40
	M68K_CYCLE_GROUP0    = 50
	M68K_CYCLE_INTERRUPT = 44
	M68K_CYCLE_TRAP_EXC  = 30 // TRAP, TRAPV, CHK on top of the instruction
	M68K_CYCLE_ILLEGAL   = 34 // Illegal, privilege, line A/F and trace
	M68K_CYCLE_DIV_ZERO  = 34
	M68K_CYCLE_RESET_OP  = 132
)

// ------------------------------------------------------------------------------
// Group 0 Status Word
// ------------------------------------------------------------------------------
const (
	M68K_SSW_READ        = 0x0010
	M68K_SSW_NOT_INSTR   = 0x0008
	M68K_FC_USER_DATA    = 1
	M68K_FC_USER_PROG    = 2
	M68K_FC_SUPER_DATA   = 5
	M68K_FC_SUPER_PROG   = 6
	M68K_FC_INTERRUPT    = 7
	M68K_GROUP0_FRAME_SZ = 14
)

// M68KExceptionState tracks where the exception controller is.
type M68KExceptionState uint8

const (
	M68K_EXC_IDLE M68KExceptionState = iota
	M68K_EXC_PENDING
	M68K_EXC_VECTORING
	M68K_EXC_SERVICING
)

func (s M68KExceptionState) String() string {
	switch s {
	case M68K_EXC_IDLE:
		return "IDLE"
	case M68K_EXC_PENDING:
		return "PENDING"
	case M68K_EXC_VECTORING:
		return "VECTORING"
	case M68K_EXC_SERVICING:
		return "SERVICING"
	}
	return "?"
}

type M68KCPU struct {
	// Hot path registers
	PC       uint32
	SR       uint16
	DataRegs [8]uint32
	AddrRegs [8]uint32

	// Shadow stack pointers, only the inactive one is meaningful
	USP uint32
	SSP uint32

	bus      Bus32
	faultBus faultingBus

	currentIR   uint16
	instrPC     uint32
	instrCycles int
	cycles      uint64

	stopped bool
	halted  bool

	pendingIRQ    uint8 // bit n set = level n asserted
	pendingVector uint8 // instruction-generated exception, 0 = none
	pendingReset  bool
	fetching      bool

	state M68KExceptionState
	depth int

	// InterruptAck is called when an interrupt is taken. It returns a vector
	// number, M68K_AUTOVECTOR or M68K_SPURIOUS.
	InterruptAck func(level uint8) int

	// ResetHandler is called by the RESET instruction to reset external devices.
	ResetHandler func()

	// Trace prints each instruction through the disassembler before it runs.
	Trace bool

	InstructionCount uint64
}

// M68KRegisters is the programmer visible state of the CPU.
type M68KRegisters struct {
	D   [8]uint32
	A   [8]uint32 // A[7] is the active stack pointer
	PC  uint32
	SR  uint16
	USP uint32
	SSP uint32
}

// m68kFault carries a bus or address error out of the faulting access.
type m68kFault struct {
	vector      uint8
	address     uint32
	write       bool
	instruction bool
	fc          uint16
}

func (f *m68kFault) Error() string {
	kind := "bus error"
	if f.vector == M68K_VEC_ADDRESS_ERROR {
		kind = "address error"
	}
	dir := "read"
	if f.write {
		dir = "write"
	}
	return fmt.Sprintf("%s on %s at $%06X", kind, dir, f.address)
}

func NewM68KCPU(bus Bus32) *M68KCPU {
	cpu := &M68KCPU{
		bus: bus,
		SR:  M68K_SR_RESET,
	}
	if fb, ok := bus.(faultingBus); ok {
		cpu.faultBus = fb
	}
	m68kInitOpTable()
	return cpu
}

// Reset performs the reset exception immediately and returns its cycle cost.
func (cpu *M68KCPU) Reset() int {
	return cpu.processReset()
}

// RequestReset latches a reset that is taken at the next instruction boundary.
func (cpu *M68KCPU) RequestReset() {
	cpu.pendingReset = true
}

func (cpu *M68KCPU) Halted() bool                       { return cpu.halted }
func (cpu *M68KCPU) Stopped() bool                      { return cpu.stopped }
func (cpu *M68KCPU) Cycles() uint64                     { return cpu.cycles }
func (cpu *M68KCPU) ExceptionState() M68KExceptionState { return cpu.state }
func (cpu *M68KCPU) ExceptionDepth() int                { return cpu.depth }

// ------------------------------------------------------------------------------
// Status register
// ------------------------------------------------------------------------------

// SetSR writes the status register as an instruction would. In user mode only
// the condition codes change.
func (cpu *M68KCPU) SetSR(value uint16) {
	if cpu.SR&M68K_SR_S == 0 {
		cpu.SetCCR(uint8(value))
		return
	}
	cpu.setSR(value)
}

// setSR writes the whole implemented SR and keeps A7 on the right stack.
func (cpu *M68KCPU) setSR(value uint16) {
	value &= M68K_SR_MASK
	oldS := cpu.SR&M68K_SR_S != 0
	newS := value&M68K_SR_S != 0
	cpu.SR = value
	if oldS != newS {
		cpu.swapStacksForMode(newS)
	}
}

func (cpu *M68KCPU) swapStacksForMode(newSupervisor bool) {
	if newSupervisor {
		cpu.USP = cpu.AddrRegs[7]
		cpu.AddrRegs[7] = cpu.SSP
	} else {
		cpu.SSP = cpu.AddrRegs[7]
		cpu.AddrRegs[7] = cpu.USP
	}
}

func (cpu *M68KCPU) supervisor() bool {
	return cpu.SR&M68K_SR_S != 0
}

func (cpu *M68KCPU) GetCCR() uint8 {
	return uint8(cpu.SR & M68K_SR_CCR)
}

func (cpu *M68KCPU) SetCCR(value uint8) {
	cpu.SR = (cpu.SR &^ M68K_SR_CCR) | uint16(value)&M68K_SR_CCR
}

func (cpu *M68KCPU) interruptMask() uint8 {
	return uint8((cpu.SR & M68K_SR_IPL) >> M68K_SR_SHIFT)
}

func (cpu *M68KCPU) flag(mask uint16) bool {
	return cpu.SR&mask != 0
}

func (cpu *M68KCPU) setFlag(mask uint16, on bool) {
	if on {
		cpu.SR |= mask
	} else {
		cpu.SR &^= mask
	}
}

// SetFlagsNZ sets N and Z from result and clears V and C.
func (cpu *M68KCPU) SetFlagsNZ(result uint32, size int) {
	result &= m68kSizeMask(size)
	cpu.SR &^= M68K_SR_N | M68K_SR_Z | M68K_SR_V | M68K_SR_C
	if result == 0 {
		cpu.SR |= M68K_SR_Z
	}
	if result&m68kSignBit(size) != 0 {
		cpu.SR |= M68K_SR_N
	}
}

func (cpu *M68KCPU) CheckCondition(condition uint8) bool {
	c := cpu.flag(M68K_SR_C)
	v := cpu.flag(M68K_SR_V)
	z := cpu.flag(M68K_SR_Z)
	n := cpu.flag(M68K_SR_N)

	switch condition & 0xF {
	case M68K_CC_T:
		return true
	case M68K_CC_F:
		return false
	case M68K_CC_HI:
		return !c && !z
	case M68K_CC_LS:
		return c || z
	case M68K_CC_CC:
		return !c
	case M68K_CC_CS:
		return c
	case M68K_CC_NE:
		return !z
	case M68K_CC_EQ:
		return z
	case M68K_CC_VC:
		return !v
	case M68K_CC_VS:
		return v
	case M68K_CC_PL:
		return !n
	case M68K_CC_MI:
		return n
	case M68K_CC_GE:
		return n == v
	case M68K_CC_LT:
		return n != v
	case M68K_CC_GT:
		return !z && n == v
	default: // LE
		return z || n != v
	}
}

// ------------------------------------------------------------------------------
// Size helpers
// ------------------------------------------------------------------------------

func m68kSizeBytes(size int) uint32 {
	switch size {
	case M68K_SIZE_BYTE:
		return M68K_BYTE_SIZE
	case M68K_SIZE_WORD:
		return M68K_WORD_SIZE
	}
	return M68K_LONG_SIZE
}

func m68kSizeMask(size int) uint32 {
	switch size {
	case M68K_SIZE_BYTE:
		return 0xFF
	case M68K_SIZE_WORD:
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

func m68kSignBit(size int) uint32 {
	switch size {
	case M68K_SIZE_BYTE:
		return 0x80
	case M68K_SIZE_WORD:
		return 0x8000
	}
	return 0x80000000
}

func m68kSignExtend(value uint32, size int) uint32 {
	switch size {
	case M68K_SIZE_BYTE:
		return uint32(int32(int8(value)))
	case M68K_SIZE_WORD:
		return uint32(int32(int16(value)))
	}
	return value
}

// m68kSizeField decodes the common 2-bit size field at bits 7-6.
func m68kSizeField(opcode uint16) int {
	return int(opcode>>6) & 3
}

// ------------------------------------------------------------------------------
// Register state
// ------------------------------------------------------------------------------

// Registers returns a copy of the programmer visible state. Both shadow stack
// pointers are filled in, the active one from A7.
func (cpu *M68KCPU) Registers() M68KRegisters {
	r := M68KRegisters{
		D:   cpu.DataRegs,
		A:   cpu.AddrRegs,
		PC:  cpu.PC,
		SR:  cpu.SR,
		USP: cpu.USP,
		SSP: cpu.SSP,
	}
	if cpu.supervisor() {
		r.SSP = cpu.AddrRegs[7]
	} else {
		r.USP = cpu.AddrRegs[7]
	}
	return r
}

// SetRegisters restores state captured by Registers.
func (cpu *M68KCPU) SetRegisters(r M68KRegisters) {
	cpu.DataRegs = r.D
	cpu.AddrRegs = r.A
	cpu.PC = r.PC
	cpu.SR = r.SR & M68K_SR_MASK
	cpu.USP = r.USP
	cpu.SSP = r.SSP
	if cpu.supervisor() {
		cpu.AddrRegs[7] = r.SSP
	} else {
		cpu.AddrRegs[7] = r.USP
	}
}

func (cpu *M68KCPU) DumpRegisters() string {
	var sb strings.Builder
	r := cpu.Registers()
	for i := 0; i < 8; i += 4 {
		fmt.Fprintf(&sb, "D%d: %08X  D%d: %08X  D%d: %08X  D%d: %08X\n",
			i, r.D[i], i+1, r.D[i+1], i+2, r.D[i+2], i+3, r.D[i+3])
	}
	for i := 0; i < 8; i += 4 {
		fmt.Fprintf(&sb, "A%d: %08X  A%d: %08X  A%d: %08X  A%d: %08X\n",
			i, r.A[i], i+1, r.A[i+1], i+2, r.A[i+2], i+3, r.A[i+3])
	}
	fmt.Fprintf(&sb, "PC: %08X  SR: %04X  USP: %08X  SSP: %08X\n", r.PC, r.SR, r.USP, r.SSP)
	flags := []byte("TSXNZVC")
	bitsOn := []bool{
		cpu.flag(M68K_SR_T), cpu.flag(M68K_SR_S), cpu.flag(M68K_SR_X),
		cpu.flag(M68K_SR_N), cpu.flag(M68K_SR_Z), cpu.flag(M68K_SR_V), cpu.flag(M68K_SR_C),
	}
	for i, on := range bitsOn {
		if !on {
			flags[i] = '-'
		}
	}
	fmt.Fprintf(&sb, "Flags: %s  IPL: %d  State: %s", flags, cpu.interruptMask(), cpu.state)
	if cpu.stopped {
		sb.WriteString("  STOPPED")
	}
	if cpu.halted {
		sb.WriteString("  HALTED")
	}
	return sb.String()
}

// ------------------------------------------------------------------------------
// Memory access
// ------------------------------------------------------------------------------

// Read8..Write32 go straight to the bus without fault reporting. They serve
// tests, the monitor and scripts.
func (cpu *M68KCPU) Read8(addr uint32) uint8 {
	return cpu.bus.Read8(addr & M68K_ADDRESS_MASK)
}

func (cpu *M68KCPU) Read16(addr uint32) uint16 {
	return cpu.bus.Read16(addr & M68K_ADDRESS_MASK)
}

func (cpu *M68KCPU) Read32(addr uint32) uint32 {
	return uint32(cpu.Read16(addr))<<16 | uint32(cpu.Read16(addr+2))
}

func (cpu *M68KCPU) Write8(addr uint32, value uint8) {
	cpu.bus.Write8(addr&M68K_ADDRESS_MASK, value)
}

func (cpu *M68KCPU) Write16(addr uint32, value uint16) {
	cpu.bus.Write16(addr&M68K_ADDRESS_MASK, value)
}

func (cpu *M68KCPU) Write32(addr uint32, value uint32) {
	cpu.Write16(addr, uint16(value>>16))
	cpu.Write16(addr+2, uint16(value))
}

func (cpu *M68KCPU) functionCode() uint16 {
	fc := uint16(M68K_FC_USER_DATA)
	if cpu.fetching {
		fc = M68K_FC_USER_PROG
	}
	if cpu.supervisor() {
		fc += 4
	}
	return fc
}

func (cpu *M68KCPU) fault(vector uint8, addr uint32, write bool) {
	panic(&m68kFault{
		vector:      vector,
		address:     addr,
		write:       write,
		instruction: cpu.fetching,
		fc:          cpu.functionCode(),
	})
}

func (cpu *M68KCPU) checkFault(f BusFault, addr uint32, write bool) {
	switch f {
	case BusOK:
	case BusFaultMisaligned:
		cpu.fault(M68K_VEC_ADDRESS_ERROR, addr, write)
	default:
		cpu.fault(M68K_VEC_BUS_ERROR, addr, write)
	}
}

func (cpu *M68KCPU) read8(addr uint32) uint8 {
	addr &= M68K_ADDRESS_MASK
	if cpu.faultBus == nil {
		return cpu.bus.Read8(addr)
	}
	v, f := cpu.faultBus.Read8WithFault(addr)
	cpu.checkFault(f, addr, false)
	return v
}

func (cpu *M68KCPU) read16(addr uint32) uint16 {
	addr &= M68K_ADDRESS_MASK
	if addr&1 != 0 {
		cpu.fault(M68K_VEC_ADDRESS_ERROR, addr, false)
	}
	if cpu.faultBus == nil {
		return cpu.bus.Read16(addr)
	}
	v, f := cpu.faultBus.Read16WithFault(addr)
	cpu.checkFault(f, addr, false)
	return v
}

func (cpu *M68KCPU) read32(addr uint32) uint32 {
	if addr&1 != 0 {
		cpu.fault(M68K_VEC_ADDRESS_ERROR, addr&M68K_ADDRESS_MASK, false)
	}
	hi := cpu.read16(addr)
	return uint32(hi)<<16 | uint32(cpu.read16(addr+2))
}

func (cpu *M68KCPU) write8(addr uint32, value uint8) {
	addr &= M68K_ADDRESS_MASK
	if cpu.faultBus == nil {
		cpu.bus.Write8(addr, value)
		return
	}
	cpu.checkFault(cpu.faultBus.Write8WithFault(addr, value), addr, true)
}

func (cpu *M68KCPU) write16(addr uint32, value uint16) {
	addr &= M68K_ADDRESS_MASK
	if addr&1 != 0 {
		cpu.fault(M68K_VEC_ADDRESS_ERROR, addr, true)
	}
	if cpu.faultBus == nil {
		cpu.bus.Write16(addr, value)
		return
	}
	cpu.checkFault(cpu.faultBus.Write16WithFault(addr, value), addr, true)
}

func (cpu *M68KCPU) write32(addr uint32, value uint32) {
	if addr&1 != 0 {
		cpu.fault(M68K_VEC_ADDRESS_ERROR, addr&M68K_ADDRESS_MASK, true)
	}
	cpu.write16(addr, uint16(value>>16))
	cpu.write16(addr+2, uint16(value))
}

func (cpu *M68KCPU) readSized(addr uint32, size int) uint32 {
	switch size {
	case M68K_SIZE_BYTE:
		return uint32(cpu.read8(addr))
	case M68K_SIZE_WORD:
		return uint32(cpu.read16(addr))
	}
	return cpu.read32(addr)
}

func (cpu *M68KCPU) writeSized(addr uint32, value uint32, size int) {
	switch size {
	case M68K_SIZE_BYTE:
		cpu.write8(addr, uint8(value))
	case M68K_SIZE_WORD:
		cpu.write16(addr, uint16(value))
	default:
		cpu.write32(addr, value)
	}
}

// Fetch16 reads the next instruction word and advances PC.
func (cpu *M68KCPU) Fetch16() uint16 {
	cpu.fetching = true
	v := cpu.read16(cpu.PC)
	cpu.fetching = false
	cpu.PC += M68K_WORD_SIZE
	return v
}

func (cpu *M68KCPU) Fetch32() uint32 {
	hi := cpu.Fetch16()
	return uint32(hi)<<16 | uint32(cpu.Fetch16())
}

func (cpu *M68KCPU) Push16(value uint16) {
	cpu.AddrRegs[7] -= M68K_WORD_SIZE
	cpu.write16(cpu.AddrRegs[7], value)
}

func (cpu *M68KCPU) Push32(value uint32) {
	cpu.AddrRegs[7] -= M68K_LONG_SIZE
	cpu.write32(cpu.AddrRegs[7], value)
}

func (cpu *M68KCPU) Pop16() uint16 {
	v := cpu.read16(cpu.AddrRegs[7])
	cpu.AddrRegs[7] += M68K_WORD_SIZE
	return v
}

func (cpu *M68KCPU) Pop32() uint32 {
	v := cpu.read32(cpu.AddrRegs[7])
	cpu.AddrRegs[7] += M68K_LONG_SIZE
	return v
}

// ------------------------------------------------------------------------------
// Execution
// ------------------------------------------------------------------------------

// guarded runs fn and returns the bus or address error it raised, if any.
func (cpu *M68KCPU) guarded(fn func()) (fault *m68kFault) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*m68kFault)
			if !ok {
				panic(r)
			}
			cpu.fetching = false
			fault = f
		}
	}()
	fn()
	return nil
}

// FetchAndDecodeInstruction dispatches cpu.currentIR through the opcode table.
func (cpu *M68KCPU) FetchAndDecodeInstruction() {
	entry := &m68kOpTable[cpu.currentIR]
	cpu.instrCycles += int(entry.cycles)
	entry.handler(cpu, cpu.currentIR)
}

func (cpu *M68KCPU) executeInstruction() {
	cpu.instrPC = cpu.PC
	if cpu.Trace {
		text, _ := DisassembleM68K(cpu.Read16, cpu.PC)
		fmt.Printf("M68K: %06X  %s\n", cpu.PC, text)
	}
	cpu.currentIR = cpu.Fetch16()
	cpu.FetchAndDecodeInstruction()
}

// raiseException requests an instruction-generated exception. It is taken
// when the current instruction has finished.
func (cpu *M68KCPU) raiseException(vector uint8) {
	cpu.pendingVector = vector
	cpu.state = M68K_EXC_PENDING
}

// Step executes one instruction boundary: a reset, an interrupt, an idle STOP
// tick or one instruction with its exceptions. It returns the cycles used.
func (cpu *M68KCPU) Step() int {
	if cpu.pendingReset {
		n := cpu.processReset()
		cpu.cycles += uint64(n)
		return n
	}
	if cpu.halted {
		return 0
	}
	if level := cpu.acceptedInterrupt(); level != 0 {
		n := cpu.ProcessInterrupt(level)
		cpu.cycles += uint64(n)
		return n
	}
	if cpu.stopped {
		cpu.cycles += M68K_CYCLE_STOPPED
		return M68K_CYCLE_STOPPED
	}

	tracing := cpu.SR&M68K_SR_T != 0
	cpu.instrCycles = 0
	cpu.pendingVector = 0

	if f := cpu.guarded(cpu.executeInstruction); f != nil {
		cpu.pendingVector = 0
		cpu.instrCycles += cpu.processGroup0(f)
	} else {
		if v := cpu.pendingVector; v != 0 {
			cpu.pendingVector = 0
			cpu.instrCycles += cpu.ProcessException(v)
			switch v {
			case M68K_VEC_ILLEGAL_INSTR, M68K_VEC_PRIVILEGE, M68K_VEC_LINE_A, M68K_VEC_LINE_F:
				tracing = false
			}
		}
		if tracing && !cpu.halted {
			cpu.instrCycles += cpu.ProcessException(M68K_VEC_TRACE)
		}
	}

	cpu.InstructionCount++
	n := cpu.instrCycles
	cpu.cycles += uint64(n)
	return n
}
