// cpu_m68k_ops_flow.go - 68000 program control and trap instructions

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

// ExecBcc branches on the condition in bits 11-8. A zero byte displacement
// means a 16-bit displacement word follows. Taken 10, not taken 8 (byte) or
// 12 (word).
func (cpu *M68KCPU) ExecBcc(opcode uint16) {
	base := cpu.PC
	target := base + uint32(int32(int8(opcode)))
	word := uint8(opcode) == 0
	if word {
		target = base + uint32(int32(int16(cpu.Fetch16())))
	}
	if cpu.CheckCondition(uint8(opcode >> 8)) {
		cpu.PC = target
		cpu.instrCycles += 2
		return
	}
	if word {
		cpu.instrCycles += 4
	}
}

func (cpu *M68KCPU) branchTarget(opcode uint16) uint32 {
	base := cpu.PC
	if uint8(opcode) == 0 {
		return base + uint32(int32(int16(cpu.Fetch16())))
	}
	return base + uint32(int32(int8(opcode)))
}

func (cpu *M68KCPU) ExecBra(opcode uint16) {
	cpu.PC = cpu.branchTarget(opcode)
}

func (cpu *M68KCPU) ExecBsr(opcode uint16) {
	target := cpu.branchTarget(opcode)
	cpu.Push32(cpu.PC)
	cpu.PC = target
}

// ExecDbcc: condition true 12 cycles, counter expired 14, loop 10.
func (cpu *M68KCPU) ExecDbcc(opcode uint16) {
	base := cpu.PC
	disp := uint32(int32(int16(cpu.Fetch16())))
	if cpu.CheckCondition(uint8(opcode >> 8)) {
		cpu.instrCycles += 2
		return
	}
	reg := opcode & 7
	count := uint16(cpu.DataRegs[reg]) - 1
	cpu.DataRegs[reg] = cpu.DataRegs[reg]&0xFFFF0000 | uint32(count)
	if count == 0xFFFF {
		cpu.instrCycles += 4
		return
	}
	cpu.PC = base + disp
}

func (cpu *M68KCPU) ExecJmp(opcode uint16) {
	mode := (opcode >> 3) & 7
	reg := opcode & 7
	cpu.instrCycles += m68kJmpCycles[m68kEAIndex(mode, reg)]
	cpu.PC = cpu.controlAddress(mode, reg, M68K_SIZE_LONG)
}

func (cpu *M68KCPU) ExecJsr(opcode uint16) {
	mode := (opcode >> 3) & 7
	reg := opcode & 7
	cpu.instrCycles += m68kJmpCycles[m68kEAIndex(mode, reg)]
	target := cpu.controlAddress(mode, reg, M68K_SIZE_LONG)
	cpu.Push32(cpu.PC)
	cpu.PC = target
}

func (cpu *M68KCPU) ExecRts(opcode uint16) {
	cpu.PC = cpu.Pop32()
}

func (cpu *M68KCPU) ExecRtr(opcode uint16) {
	ccr := cpu.Pop16()
	cpu.PC = cpu.Pop32()
	cpu.SetCCR(uint8(ccr))
}

// ExecRte restores SR, and with it the stack that was active, then PC.
func (cpu *M68KCPU) ExecRte(opcode uint16) {
	if !cpu.supervisor() {
		cpu.privilegeViolation()
		return
	}
	sr := cpu.Pop16()
	pc := cpu.Pop32()
	cpu.setSR(sr)
	cpu.PC = pc
	cpu.returnFromException()
}

func (cpu *M68KCPU) ExecTrap(opcode uint16) {
	cpu.raiseException(M68K_VEC_TRAP_BASE + uint8(opcode&0xF))
}

func (cpu *M68KCPU) ExecTrapv(opcode uint16) {
	if cpu.flag(M68K_SR_V) {
		cpu.raiseException(M68K_VEC_TRAPV)
	}
}

func (cpu *M68KCPU) ExecLink(opcode uint16) {
	reg := opcode & 7
	disp := uint32(int32(int16(cpu.Fetch16())))
	// SP drops before An is read, so LINK A7 stacks the decremented SP.
	cpu.AddrRegs[7] -= M68K_LONG_SIZE
	cpu.write32(cpu.AddrRegs[7], cpu.AddrRegs[reg])
	cpu.AddrRegs[reg] = cpu.AddrRegs[7]
	cpu.AddrRegs[7] += disp
}

func (cpu *M68KCPU) ExecUnlk(opcode uint16) {
	reg := opcode & 7
	cpu.AddrRegs[7] = cpu.AddrRegs[reg]
	cpu.AddrRegs[reg] = cpu.Pop32()
}

func (cpu *M68KCPU) ExecNop(opcode uint16) {}

// ExecStop loads SR and idles until an interrupt above the new mask.
func (cpu *M68KCPU) ExecStop(opcode uint16) {
	if !cpu.supervisor() {
		cpu.privilegeViolation()
		return
	}
	cpu.setSR(cpu.Fetch16())
	cpu.stopped = true
}

// ExecReset asserts the external reset line. The CPU itself is unaffected.
func (cpu *M68KCPU) ExecReset(opcode uint16) {
	if !cpu.supervisor() {
		cpu.privilegeViolation()
		return
	}
	if cpu.ResetHandler != nil {
		cpu.ResetHandler()
	}
}

func (cpu *M68KCPU) ExecIllegal(opcode uint16) {
	cpu.instrCycles = 0
	cpu.raiseException(M68K_VEC_ILLEGAL_INSTR)
}

func (cpu *M68KCPU) ExecLineA(opcode uint16) {
	cpu.instrCycles = 0
	cpu.raiseException(M68K_VEC_LINE_A)
}

func (cpu *M68KCPU) ExecLineF(opcode uint16) {
	cpu.instrCycles = 0
	cpu.raiseException(M68K_VEC_LINE_F)
}
