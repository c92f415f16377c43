// cpu_m68k_ops_move.go - 68000 data movement instructions

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

import "math/bits"

// m68kMoveSize decodes the MOVE size field at bits 13-12 (1=byte, 3=word, 2=long).
func m68kMoveSize(opcode uint16) int {
	switch (opcode >> 12) & 3 {
	case 1:
		return M68K_SIZE_BYTE
	case 3:
		return M68K_SIZE_WORD
	}
	return M68K_SIZE_LONG
}

// rmwCycles charges the extra time of single operand read-modify-write
// instructions (CLR, NEG, NEGX, NOT) over their 4 cycle base.
func (cpu *M68KCPU) rmwCycles(op *m68kOperand, size int) {
	if op.kind == m68kOperandDataReg {
		if size == M68K_SIZE_LONG {
			cpu.instrCycles += 2
		}
		return
	}
	cpu.instrCycles += 4
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 4
	}
}

func (cpu *M68KCPU) ExecMove(opcode uint16) {
	size := m68kMoveSize(opcode)
	src := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	value := cpu.readOperand(&src)

	dstMode := (opcode >> 6) & 7
	dst := cpu.resolveEA(dstMode, (opcode>>9)&7, size)
	if dstMode == M68K_AM_AR_PRE {
		// -(An) costs the same as (An) as a MOVE destination
		cpu.instrCycles -= 2
	}
	cpu.writeOperand(&dst, value)
	cpu.SetFlagsNZ(value, size)
}

// ExecMovea sign extends word sources and leaves the flags alone.
func (cpu *M68KCPU) ExecMovea(opcode uint16) {
	size := m68kMoveSize(opcode)
	src := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	value := cpu.readOperand(&src)
	cpu.AddrRegs[(opcode>>9)&7] = m68kSignExtend(value, size)
}

func (cpu *M68KCPU) ExecMoveq(opcode uint16) {
	value := uint32(int32(int8(opcode)))
	cpu.DataRegs[(opcode>>9)&7] = value
	cpu.SetFlagsNZ(value, M68K_SIZE_LONG)
}

// ExecMoveFromSR is unprivileged on the 68000.
func (cpu *M68KCPU) ExecMoveFromSR(opcode uint16) {
	dst := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	if dst.kind != m68kOperandDataReg {
		cpu.instrCycles += 2
	}
	cpu.writeOperand(&dst, uint32(cpu.SR))
}

func (cpu *M68KCPU) ExecMoveToCCR(opcode uint16) {
	src := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	cpu.SetCCR(uint8(cpu.readOperand(&src)))
}

func (cpu *M68KCPU) ExecMoveToSR(opcode uint16) {
	if !cpu.supervisor() {
		cpu.privilegeViolation()
		return
	}
	src := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	cpu.setSR(uint16(cpu.readOperand(&src)))
}

// ExecMoveUSP transfers between An and the user stack pointer. Bit 3 set
// means USP to An.
func (cpu *M68KCPU) ExecMoveUSP(opcode uint16) {
	if !cpu.supervisor() {
		cpu.privilegeViolation()
		return
	}
	reg := opcode & 7
	if opcode&0x0008 != 0 {
		cpu.AddrRegs[reg] = cpu.USP
	} else {
		cpu.USP = cpu.AddrRegs[reg]
	}
}

// movemReg reads register n of a MOVEM list, 0-7 = D0-D7, 8-15 = A0-A7.
func (cpu *M68KCPU) movemReg(n int) uint32 {
	if n < 8 {
		return cpu.DataRegs[n]
	}
	return cpu.AddrRegs[n-8]
}

func (cpu *M68KCPU) setMovemReg(n int, value uint32) {
	if n < 8 {
		cpu.DataRegs[n] = value
	} else {
		cpu.AddrRegs[n-8] = value
	}
}

func (cpu *M68KCPU) ExecMovem(opcode uint16) {
	mask := cpu.Fetch16()
	size := M68K_SIZE_WORD
	if opcode&0x0040 != 0 {
		size = M68K_SIZE_LONG
	}
	mode := (opcode >> 3) & 7
	reg := opcode & 7
	step := m68kSizeBytes(size)

	perReg := 4
	if size == M68K_SIZE_LONG {
		perReg = 8
	}
	cpu.instrCycles += bits.OnesCount16(mask)*perReg + m68kMovemCycles[m68kEAIndex(mode, reg)]

	if opcode&0x0400 == 0 {
		// Registers to memory
		if mode == M68K_AM_AR_PRE {
			// Mask is reversed: bit 0 is A7, bit 15 is D0. The stored An is
			// its value before the instruction.
			addr := cpu.AddrRegs[reg]
			for i := 0; i < 16; i++ {
				if mask&(1<<i) == 0 {
					continue
				}
				addr -= step
				cpu.writeSized(addr, cpu.movemReg(15-i), size)
			}
			cpu.AddrRegs[reg] = addr
			return
		}
		addr := cpu.controlAddress(mode, reg, size)
		for i := 0; i < 16; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			cpu.writeSized(addr, cpu.movemReg(i), size)
			addr += step
		}
		return
	}

	// Memory to registers, words are sign extended to 32 bits
	cpu.instrCycles += 4
	var addr uint32
	if mode == M68K_AM_AR_POST {
		addr = cpu.AddrRegs[reg]
	} else {
		addr = cpu.controlAddress(mode, reg, size)
	}
	for i := 0; i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		cpu.setMovemReg(i, m68kSignExtend(cpu.readSized(addr, size), size))
		addr += step
	}
	if mode == M68K_AM_AR_POST {
		cpu.AddrRegs[reg] = addr
	}
}

// ExecMovep moves bytes between a data register and alternate memory bytes,
// the layout used by 8-bit peripherals on one half of the data bus.
func (cpu *M68KCPU) ExecMovep(opcode uint16) {
	dreg := (opcode >> 9) & 7
	areg := opcode & 7
	opmode := (opcode >> 6) & 7
	addr := cpu.AddrRegs[areg] + uint32(int32(int16(cpu.Fetch16())))

	switch opmode {
	case 4: // word, memory to register
		hi := uint32(cpu.read8(addr))
		lo := uint32(cpu.read8(addr + 2))
		cpu.DataRegs[dreg] = cpu.DataRegs[dreg]&0xFFFF0000 | hi<<8 | lo
	case 5: // long, memory to register
		cpu.instrCycles += 8
		var v uint32
		for i := uint32(0); i < 4; i++ {
			v = v<<8 | uint32(cpu.read8(addr+i*2))
		}
		cpu.DataRegs[dreg] = v
	case 6: // word, register to memory
		v := cpu.DataRegs[dreg]
		cpu.write8(addr, uint8(v>>8))
		cpu.write8(addr+2, uint8(v))
	case 7: // long, register to memory
		cpu.instrCycles += 8
		v := cpu.DataRegs[dreg]
		for i := uint32(0); i < 4; i++ {
			cpu.write8(addr+i*2, uint8(v>>(24-8*i)))
		}
	}
}

func (cpu *M68KCPU) ExecLea(opcode uint16) {
	mode := (opcode >> 3) & 7
	reg := opcode & 7
	cpu.instrCycles += m68kLeaCycles[m68kEAIndex(mode, reg)]
	cpu.AddrRegs[(opcode>>9)&7] = cpu.controlAddress(mode, reg, M68K_SIZE_LONG)
}

func (cpu *M68KCPU) ExecPea(opcode uint16) {
	mode := (opcode >> 3) & 7
	reg := opcode & 7
	cpu.instrCycles += m68kLeaCycles[m68kEAIndex(mode, reg)]
	cpu.Push32(cpu.controlAddress(mode, reg, M68K_SIZE_LONG))
}

func (cpu *M68KCPU) ExecExg(opcode uint16) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7
	switch (opcode >> 3) & 0x1F {
	case 0x08:
		cpu.DataRegs[rx], cpu.DataRegs[ry] = cpu.DataRegs[ry], cpu.DataRegs[rx]
	case 0x09:
		cpu.AddrRegs[rx], cpu.AddrRegs[ry] = cpu.AddrRegs[ry], cpu.AddrRegs[rx]
	case 0x11:
		cpu.DataRegs[rx], cpu.AddrRegs[ry] = cpu.AddrRegs[ry], cpu.DataRegs[rx]
	}
}

func (cpu *M68KCPU) ExecSwap(opcode uint16) {
	reg := opcode & 7
	v := cpu.DataRegs[reg]
	v = v<<16 | v>>16
	cpu.DataRegs[reg] = v
	cpu.SetFlagsNZ(v, M68K_SIZE_LONG)
}

func (cpu *M68KCPU) ExecExt(opcode uint16) {
	reg := opcode & 7
	if opcode&0x0040 == 0 {
		v := uint32(uint16(int16(int8(cpu.DataRegs[reg]))))
		cpu.DataRegs[reg] = cpu.DataRegs[reg]&0xFFFF0000 | v
		cpu.SetFlagsNZ(v, M68K_SIZE_WORD)
		return
	}
	v := uint32(int32(int16(cpu.DataRegs[reg])))
	cpu.DataRegs[reg] = v
	cpu.SetFlagsNZ(v, M68K_SIZE_LONG)
}

func (cpu *M68KCPU) ExecClr(opcode uint16) {
	size := m68kSizeField(opcode)
	dst := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	cpu.rmwCycles(&dst, size)
	cpu.writeOperand(&dst, 0)
	cpu.SetFlagsNZ(0, size)
}

func (cpu *M68KCPU) ExecTst(opcode uint16) {
	size := m68kSizeField(opcode)
	src := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	cpu.SetFlagsNZ(cpu.readOperand(&src), size)
}

// ExecTas tests a byte and sets its top bit in one indivisible cycle.
func (cpu *M68KCPU) ExecTas(opcode uint16) {
	dst := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_BYTE)
	v := cpu.readOperand(&dst)
	cpu.SetFlagsNZ(v, M68K_SIZE_BYTE)
	if dst.kind != m68kOperandDataReg {
		cpu.instrCycles += 6
	}
	cpu.writeOperand(&dst, v|0x80)
}

func (cpu *M68KCPU) ExecScc(opcode uint16) {
	dst := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_BYTE)
	var v uint32
	taken := cpu.CheckCondition(uint8(opcode >> 8))
	if taken {
		v = 0xFF
	}
	switch {
	case dst.kind != m68kOperandDataReg:
		cpu.instrCycles += 4
	case taken:
		cpu.instrCycles += 2
	}
	cpu.writeOperand(&dst, v)
}
