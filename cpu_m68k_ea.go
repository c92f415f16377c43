// cpu_m68k_ea.go - 68000 effective address resolution and timing

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

// ------------------------------------------------------------------------------
// Effective address calculation timing (byte/word, long)
// ------------------------------------------------------------------------------
const (
	M68K_CYCLE_EA_RD   = 0
	M68K_CYCLE_EA_AI   = 4
	M68K_CYCLE_EA_PI   = 4
	M68K_CYCLE_EA_PD   = 6 // Extra internal cycle for the decrement
	M68K_CYCLE_EA_DI   = 8
	M68K_CYCLE_EA_IX   = 10
	M68K_CYCLE_EA_AW   = 8
	M68K_CYCLE_EA_AL   = 12
	M68K_CYCLE_EA_PCDI = 8
	M68K_CYCLE_EA_PCIX = 10
	M68K_CYCLE_EA_IM   = 4
	M68K_CYCLE_EA_LONG = 4 // Second bus cycle for long operands in memory
)

var m68kEACycles = [M68K_AM_INVALID]int{
	M68K_CYCLE_EA_RD, M68K_CYCLE_EA_RD, M68K_CYCLE_EA_AI, M68K_CYCLE_EA_PI,
	M68K_CYCLE_EA_PD, M68K_CYCLE_EA_DI, M68K_CYCLE_EA_IX, M68K_CYCLE_EA_AW,
	M68K_CYCLE_EA_AL, M68K_CYCLE_EA_PCDI, M68K_CYCLE_EA_PCIX, M68K_CYCLE_EA_IM,
}

// Extra cycles for instructions that only compute a control address.
// Entries for modes the instruction cannot use are zero.
var (
	m68kLeaCycles   = [M68K_AM_INVALID]int{0, 0, 0, 0, 0, 4, 8, 4, 8, 4, 8, 0}
	m68kJmpCycles   = [M68K_AM_INVALID]int{0, 0, 0, 0, 0, 2, 6, 2, 4, 2, 6, 0}
	m68kMovemCycles = [M68K_AM_INVALID]int{0, 0, 0, 0, 0, 4, 6, 4, 8, 4, 6, 0}
)

// m68kEAIndex folds the 3-bit mode and register fields into one of the twelve
// addressing modes.
func m68kEAIndex(mode, reg uint16) int {
	if mode < 7 {
		return int(mode)
	}
	switch reg {
	case 0:
		return M68K_AM_ABS_SHORT
	case 1:
		return M68K_AM_ABS_LONG
	case 2:
		return M68K_AM_PC_DISP
	case 3:
		return M68K_AM_PC_INDEX
	case 4:
		return M68K_AM_IMM
	}
	return M68K_AM_INVALID
}

func m68kEACost(idx, size int) int {
	c := m68kEACycles[idx]
	if size == M68K_SIZE_LONG && idx >= M68K_AM_AR_IND {
		c += M68K_CYCLE_EA_LONG
	}
	return c
}

type m68kOperandKind uint8

const (
	m68kOperandDataReg m68kOperandKind = iota
	m68kOperandAddrReg
	m68kOperandMemory
	m68kOperandImmediate
)

// m68kOperand is a resolved effective address. Side effects of (An)+ and
// -(An) have already happened when it is returned, so read-modify-write
// instructions reuse it for the write.
type m68kOperand struct {
	kind   m68kOperandKind
	mode   int
	reg    uint16
	addr   uint32
	imm    uint32
	size   int
	cycles int
}

// resolveEA decodes the mode and register fields, fetches any extension words
// and charges the addressing cycles to the current instruction.
func (cpu *M68KCPU) resolveEA(mode, reg uint16, size int) m68kOperand {
	idx := m68kEAIndex(mode, reg)
	op := m68kOperand{mode: idx, reg: reg, size: size}

	switch idx {
	case M68K_AM_DR:
		op.kind = m68kOperandDataReg
	case M68K_AM_AR:
		op.kind = m68kOperandAddrReg
	case M68K_AM_IMM:
		op.kind = m68kOperandImmediate
		switch size {
		case M68K_SIZE_BYTE:
			op.imm = uint32(cpu.Fetch16() & 0xFF)
		case M68K_SIZE_WORD:
			op.imm = uint32(cpu.Fetch16())
		default:
			op.imm = cpu.Fetch32()
		}
	case M68K_AM_INVALID:
		// The opcode table never routes an invalid mode here.
		op.kind = m68kOperandImmediate
	default:
		op.kind = m68kOperandMemory
		op.addr = cpu.controlAddress(mode, reg, size)
	}

	op.cycles = m68kEACost(idx, size)
	cpu.instrCycles += op.cycles
	return op
}

// controlAddress computes a memory address without charging cycles. size only
// matters for the (An)+ and -(An) step.
func (cpu *M68KCPU) controlAddress(mode, reg uint16, size int) uint32 {
	switch mode {
	case M68K_AM_AR_IND:
		return cpu.AddrRegs[reg]
	case M68K_AM_AR_POST:
		addr := cpu.AddrRegs[reg]
		cpu.AddrRegs[reg] += m68kStep(reg, size)
		return addr
	case M68K_AM_AR_PRE:
		cpu.AddrRegs[reg] -= m68kStep(reg, size)
		return cpu.AddrRegs[reg]
	case M68K_AM_AR_DISP:
		base := cpu.AddrRegs[reg]
		return base + uint32(int32(int16(cpu.Fetch16())))
	case M68K_AM_AR_INDEX:
		return cpu.indexedAddress(cpu.AddrRegs[reg])
	}

	switch reg {
	case 0:
		return uint32(int32(int16(cpu.Fetch16())))
	case 1:
		return cpu.Fetch32()
	case 2:
		base := cpu.PC
		return base + uint32(int32(int16(cpu.Fetch16())))
	case 3:
		return cpu.indexedAddress(cpu.PC)
	}
	return 0
}

// m68kStep is the (An)+ / -(An) increment. A7 stays word aligned for bytes.
func m68kStep(reg uint16, size int) uint32 {
	if size == M68K_SIZE_BYTE && reg == 7 {
		return M68K_WORD_SIZE
	}
	return m68kSizeBytes(size)
}

// indexedAddress decodes a brief extension word: D/A in bit 15, register in
// bits 14-12, W/L in bit 11, signed 8-bit displacement in the low byte.
func (cpu *M68KCPU) indexedAddress(base uint32) uint32 {
	ext := cpu.Fetch16()
	idxReg := (ext >> 12) & 7

	var idx uint32
	if ext>>M68K_EXT_REG_TYPE_BIT&1 != 0 {
		idx = cpu.AddrRegs[idxReg]
	} else {
		idx = cpu.DataRegs[idxReg]
	}
	if ext>>M68K_EXT_SIZE_BIT&1 == 0 {
		idx = uint32(int32(int16(idx)))
	}
	return base + idx + uint32(int32(int8(ext)))
}

func (cpu *M68KCPU) readOperand(op *m68kOperand) uint32 {
	switch op.kind {
	case m68kOperandDataReg:
		return cpu.DataRegs[op.reg] & m68kSizeMask(op.size)
	case m68kOperandAddrReg:
		return cpu.AddrRegs[op.reg] & m68kSizeMask(op.size)
	case m68kOperandImmediate:
		return op.imm
	}
	return cpu.readSized(op.addr, op.size)
}

// writeOperand stores value at the operand. Data register writes only touch
// the low byte or word, address register writes are always 32 bits.
func (cpu *M68KCPU) writeOperand(op *m68kOperand, value uint32) {
	switch op.kind {
	case m68kOperandDataReg:
		mask := m68kSizeMask(op.size)
		cpu.DataRegs[op.reg] = cpu.DataRegs[op.reg]&^mask | value&mask
	case m68kOperandAddrReg:
		cpu.AddrRegs[op.reg] = m68kSignExtend(value, op.size)
	case m68kOperandMemory:
		cpu.writeSized(op.addr, value, op.size)
	}
}

func (op *m68kOperand) isRegister() bool {
	return op.kind == m68kOperandDataReg || op.kind == m68kOperandAddrReg
}
