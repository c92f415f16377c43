// cpu_m68k_test.go - 68000 instruction semantics

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

import "testing"

func TestM68KArithmetic(t *testing.T) {
	RunM68KTests(t, []M68KTestCase{
		{
			Name:          "ADD.L_overflow",
			DataRegs:      [8]uint32{0x7FFFFFFF, 1},
			Opcodes:       []uint16{MakeOpcodeAddSub(true, 0, 2, M68K_AM_DR, 1)},
			ExpectedRegs:  Reg("D0", 0x80000000),
			ExpectedFlags: FlagsAll(1, 0, 1, 0, 0),
		},
		{
			Name:          "SUB.W_borrow_keeps_upper_word",
			DataRegs:      [8]uint32{0xABCD0000, 1},
			Opcodes:       []uint16{MakeOpcodeAddSub(false, 0, 1, M68K_AM_DR, 1)},
			ExpectedRegs:  Reg("D0", 0xABCDFFFF),
			ExpectedFlags: FlagsAll(1, 0, 0, 1, 1),
		},
		{
			Name:          "ADDQ.L_to_An_leaves_flags",
			AddrRegs:      [7]uint32{0xFFFFFFFF},
			Setup:         func(cpu *M68KCPU) { cpu.SetCCR(0x1F) },
			Opcodes:       []uint16{0x5288},
			ExpectedRegs:  Reg("A0", 0),
			ExpectedFlags: FlagsAll(1, 1, 1, 1, 1),
		},
		{
			Name:          "NEG.B",
			DataRegs:      [8]uint32{0x01},
			Opcodes:       []uint16{0x4400},
			ExpectedRegs:  Reg("D0", 0xFF),
			ExpectedFlags: FlagsAll(1, 0, 0, 1, 1),
		},
		{
			Name:          "CMP.W_equal",
			DataRegs:      [8]uint32{5, 5},
			Opcodes:       []uint16{0xB041},
			ExpectedRegs:  Reg("D0", 5),
			ExpectedFlags: FlagsNZVC(0, 1, 0, 0),
		},
		{
			Name:         "MULU.W",
			DataRegs:     [8]uint32{0xFFFF1234, 0x0010},
			Opcodes:      []uint16{0xC0C1},
			ExpectedRegs: Reg("D0", 0x00012340),
		},
		{
			Name:          "DIVU.W_quotient_and_remainder",
			DataRegs:      [8]uint32{100, 7},
			Opcodes:       []uint16{0x80C1},
			ExpectedRegs:  Reg("D0", 0x0002000E),
			ExpectedFlags: FlagsNZVC(0, 0, 0, 0),
		},
		{
			Name:         "DIVU.W_by_zero_traps_and_keeps_dividend",
			DataRegs:     [8]uint32{100, 0},
			Opcodes:      []uint16{0x80C1},
			ShouldTrap:   true,
			TrapVector:   M68K_VEC_ZERO_DIVIDE,
			ExpectedRegs: Reg("D0", 100),
		},
		{
			Name:         "DIVS.W_by_zero_traps",
			DataRegs:     [8]uint32{0xFFFFFF00, 0},
			Opcodes:      []uint16{0x81C1},
			ShouldTrap:   true,
			TrapVector:   M68K_VEC_ZERO_DIVIDE,
			ExpectedRegs: Reg("D0", 0xFFFFFF00),
		},
		{
			Name:          "ABCD",
			DataRegs:      [8]uint32{0x19, 0x01},
			Opcodes:       []uint16{0xC101},
			ExpectedRegs:  Reg("D0", 0x20),
			ExpectedFlags: &FlagExpectation{N: -1, Z: -1, V: -1, C: 0, X: 0},
		},
		{
			Name:       "CHK_out_of_bounds",
			DataRegs:   [8]uint32{10, 5},
			Opcodes:    []uint16{0x4181}, // CHK D1,D0
			ShouldTrap: true,
			TrapVector: M68K_VEC_CHK,
		},
	})
}

func TestM68KLogicAndShifts(t *testing.T) {
	RunM68KTests(t, []M68KTestCase{
		{
			Name:          "CLR.W",
			DataRegs:      [8]uint32{0x12345678},
			Opcodes:       []uint16{0x4240},
			ExpectedRegs:  Reg("D0", 0x12340000),
			ExpectedFlags: FlagsNZVC(0, 1, 0, 0),
		},
		{
			Name:         "AND.B",
			DataRegs:     [8]uint32{0xF0, 0x3C},
			Opcodes:      []uint16{0xC001},
			ExpectedRegs: Reg("D0", 0x30),
		},
		{
			Name:          "EOR.L",
			DataRegs:      [8]uint32{0xFFFF0000, 0xFFFFFFFF},
			Opcodes:       []uint16{0xB380},
			ExpectedRegs:  Reg("D0", 0x0000FFFF),
			ExpectedFlags: FlagsNZVC(0, 0, 0, 0),
		},
		{
			Name:          "NOT.B",
			DataRegs:      [8]uint32{0x1200000F},
			Opcodes:       []uint16{0x4600},
			ExpectedRegs:  Reg("D0", 0x120000F0),
			ExpectedFlags: FlagsNZ(1, 0),
		},
		{
			Name:         "SWAP",
			DataRegs:     [8]uint32{0x12345678},
			Opcodes:      []uint16{0x4840},
			ExpectedRegs: Reg("D0", 0x56781234),
		},
		{
			Name:          "EXT.W",
			DataRegs:      [8]uint32{0x000000FF},
			Opcodes:       []uint16{0x4880},
			ExpectedRegs:  Reg("D0", 0x0000FFFF),
			ExpectedFlags: FlagsNZVC(1, 0, 0, 0),
		},
		{
			Name:          "EXT.L",
			DataRegs:      [8]uint32{0x0000FFFF},
			Opcodes:       []uint16{0x48C0},
			ExpectedRegs:  Reg("D0", 0xFFFFFFFF),
			ExpectedFlags: FlagsNZVC(1, 0, 0, 0),
		},
		{
			Name:          "LSL.W_#1_carries_out",
			DataRegs:      [8]uint32{0x8001},
			Opcodes:       []uint16{0xE348},
			ExpectedRegs:  Reg("D0", 0x0002),
			ExpectedFlags: FlagsAll(0, 0, 0, 1, 1),
		},
		{
			Name:          "ASR.B_#1_keeps_sign",
			DataRegs:      [8]uint32{0x81},
			Opcodes:       []uint16{0xE200},
			ExpectedRegs:  Reg("D0", 0xC0),
			ExpectedFlags: FlagsAll(1, 0, 0, 1, 1),
		},
		{
			Name:          "ROR.W_#8",
			DataRegs:      [8]uint32{0x1234},
			Opcodes:       []uint16{0xE058},
			ExpectedRegs:  Reg("D0", 0x3412),
			ExpectedFlags: FlagsNZVC(0, 0, 0, 0),
		},
		{
			Name:          "SEQ_taken",
			Setup:         func(cpu *M68KCPU) { cpu.SetCCR(M68K_SR_Z) },
			Opcodes:       []uint16{0x57C0},
			ExpectedRegs:  Reg("D0", 0xFF),
			ExpectedFlags: FlagsNZVC(0, 1, 0, 0), // Scc leaves the CCR alone
		},
	})
}

func TestM68KMoves(t *testing.T) {
	RunM68KTests(t, []M68KTestCase{
		{
			Name:          "MOVE.W_postincrement",
			DataRegs:      [8]uint32{0, 0xBEEF},
			AddrRegs:      [7]uint32{0x2000},
			Opcodes:       []uint16{MakeOpcodeMove(M68K_SIZE_WORD, M68K_AM_DR, 1, M68K_AM_AR_POST, 0)},
			ExpectedRegs:  Reg("A0", 0x2002),
			ExpectedMem:   []MemoryExpectation{ExpectWord(0x2000, 0xBEEF)},
			ExpectedFlags: FlagsNZVC(1, 0, 0, 0),
		},
		{
			Name:         "MOVE.B_predecrement_A7_steps_two",
			DataRegs:     [8]uint32{0x5A},
			Opcodes:      []uint16{MakeOpcodeMove(M68K_SIZE_BYTE, M68K_AM_DR, 0, M68K_AM_AR_PRE, 7)},
			ExpectedRegs: Reg("A7", m68kTestSSP-2),
			ExpectedMem:  []MemoryExpectation{ExpectByte(m68kTestSSP-2, 0x5A)},
		},
		{
			Name:            "MOVE.L_immediate",
			Opcodes:         []uint16{0x203C, 0xCAFE, 0xF00D},
			ExpectedRegs:    Reg("D0", 0xCAFEF00D),
			ExpectedFlags:   FlagsNZVC(1, 0, 0, 0),
			ExpectedPCDelta: 6,
			ExpectedCycles:  12,
		},
		{
			Name:         "MOVEA.W_sign_extends",
			DataRegs:     [8]uint32{0x8000},
			Opcodes:      []uint16{0x3040}, // MOVEA.W D0,A0
			ExpectedRegs: Reg("A0", 0xFFFF8000),
		},
		{
			Name:            "LEA_displacement",
			AddrRegs:        [7]uint32{0x3000},
			Opcodes:         []uint16{0x43E8, 0x0004},
			ExpectedRegs:    Reg("A1", 0x3004),
			ExpectedPCDelta: 4,
		},
		{
			Name:     "MOVEM.L_predecrement",
			DataRegs: [8]uint32{0x11111111, 0x22222222},
			Opcodes:  []uint16{0x48E7, 0xC000},
			ExpectedRegs: map[string]uint32{
				"A7": m68kTestSSP - 8,
			},
			ExpectedMem: []MemoryExpectation{
				ExpectLong(m68kTestSSP-8, 0x11111111),
				ExpectLong(m68kTestSSP-4, 0x22222222),
			},
		},
		{
			Name:         "EXG_data_registers",
			DataRegs:     [8]uint32{1, 2},
			Opcodes:      []uint16{0xC141},
			ExpectedRegs: map[string]uint32{"D0": 2, "D1": 1},
		},
		{
			Name:         "MOVE_USP_to_An",
			Opcodes:      []uint16{0x4E68},
			ExpectedRegs: Reg("A0", m68kTestUSP),
		},
		{
			Name:          "indexed_addressing",
			DataRegs:      [8]uint32{0, 0x10},
			AddrRegs:      [7]uint32{0x2000},
			InitialMem:    map[uint32]uint32{0x2014: 0xDEADBEEF},
			Opcodes:       []uint16{0x2030, 0x1004}, // MOVE.L 4(A0,D1.W),D0
			ExpectedRegs:  Reg("D0", 0xDEADBEEF),
			ExpectedFlags: FlagsNZVC(1, 0, 0, 0),
		},
	})
}

func TestM68KFlow(t *testing.T) {
	RunM68KTests(t, []M68KTestCase{
		{
			Name:         "BRA.S",
			Opcodes:      []uint16{0x6004},
			ExpectedRegs: Reg("PC", m68kTestPC+6),
		},
		{
			Name:         "BEQ_not_taken",
			Opcodes:      []uint16{0x6704},
			ExpectedRegs: Reg("PC", m68kTestPC+2),
		},
		{
			Name:    "BSR.S_pushes_return",
			Opcodes: []uint16{0x6108},
			ExpectedRegs: map[string]uint32{
				"PC": m68kTestPC + 10,
				"A7": m68kTestSSP - 4,
			},
			ExpectedMem: []MemoryExpectation{ExpectLong(m68kTestSSP-4, m68kTestPC+2)},
		},
		{
			Name:         "DBF_loops",
			DataRegs:     [8]uint32{2},
			Opcodes:      []uint16{0x51C8, 0xFFFE},
			ExpectedRegs: map[string]uint32{"D0": 1, "PC": m68kTestPC},
		},
		{
			Name:         "DBF_expires",
			DataRegs:     [8]uint32{0xAAAA0000},
			Opcodes:      []uint16{0x51C8, 0xFFFE},
			ExpectedRegs: map[string]uint32{"D0": 0xAAAAFFFF, "PC": m68kTestPC + 4},
		},
		{
			Name:         "JSR_indirect",
			AddrRegs:     [7]uint32{0x3000},
			Opcodes:      []uint16{0x4E90},
			ExpectedRegs: map[string]uint32{"PC": 0x3000, "A7": m68kTestSSP - 4},
		},
		{
			Name:         "LINK_A6",
			AddrRegs:     [7]uint32{6: 0x1234},
			Opcodes:      []uint16{0x4E56, 0xFFF8},
			ExpectedRegs: map[string]uint32{"A6": m68kTestSSP - 4, "A7": m68kTestSSP - 12},
			ExpectedMem:  []MemoryExpectation{ExpectLong(m68kTestSSP-4, 0x1234)},
		},
		{
			Name:         "LINK_A7_stacks_decremented_SP",
			Opcodes:      []uint16{0x4E57, 0xFFF8},
			ExpectedRegs: Reg("A7", m68kTestSSP-12),
			ExpectedMem:  []MemoryExpectation{ExpectLong(m68kTestSSP-4, m68kTestSSP-4)},
		},
		{
			Name: "RTS",
			Setup: func(cpu *M68KCPU) {
				cpu.AddrRegs[7] -= 4
				cpu.Write32(cpu.AddrRegs[7], 0x3456)
			},
			Opcodes:      []uint16{0x4E75},
			ExpectedRegs: map[string]uint32{"PC": 0x3456, "A7": m68kTestSSP},
		},
		{
			Name:       "TRAP_#3",
			Opcodes:    []uint16{0x4E43},
			ShouldTrap: true,
			TrapVector: M68K_VEC_TRAP_BASE + 3,
			ExpectedMem: []MemoryExpectation{
				ExpectWord(m68kTestSSP-6, M68K_SR_RESET),
				ExpectLong(m68kTestSSP-4, m68kTestPC+2),
			},
		},
		{
			Name:        "ILLEGAL_stacks_its_own_address",
			Opcodes:     []uint16{0x4AFC},
			ShouldTrap:  true,
			TrapVector:  M68K_VEC_ILLEGAL_INSTR,
			ExpectedMem: []MemoryExpectation{ExpectLong(m68kTestSSP-4, m68kTestPC)},
		},
		{
			Name:       "line_A",
			Opcodes:    []uint16{0xA123},
			ShouldTrap: true,
			TrapVector: M68K_VEC_LINE_A,
		},
		{
			Name:       "line_F",
			Opcodes:    []uint16{0xF000},
			ShouldTrap: true,
			TrapVector: M68K_VEC_LINE_F,
		},
		{
			Name:       "MOVE_to_SR_in_user_mode",
			Setup:      func(cpu *M68KCPU) { cpu.SetSR(0x0000) },
			Opcodes:    []uint16{0x46FC, 0x2700},
			ShouldTrap: true,
			TrapVector: M68K_VEC_PRIVILEGE,
			ExpectedRegs: map[string]uint32{
				"SP":  m68kTestSSP - 6,
				"USP": m68kTestUSP,
			},
		},
	})
}

func TestM68KSupervisorToggleRestoresA7(t *testing.T) {
	cpu := setupTestCPU()
	for _, sp := range []uint32{m68kTestSSP, 0x00FF0000, 0x12345678} {
		cpu.AddrRegs[7] = sp
		cpu.SetSR(cpu.SR &^ M68K_SR_S)
		if cpu.AddrRegs[7] != m68kTestUSP {
			t.Fatalf("user mode A7 = $%08X, want USP $%08X", cpu.AddrRegs[7], m68kTestUSP)
		}
		// back through an exception since user mode cannot set S
		cpu.setSR(cpu.SR | M68K_SR_S)
		if cpu.AddrRegs[7] != sp {
			t.Fatalf("A7 after round trip = $%08X, want $%08X", cpu.AddrRegs[7], sp)
		}
	}
}

func TestM68KUserModeSRWriteOnlyTouchesCCR(t *testing.T) {
	cpu := setupTestCPU()
	cpu.SetSR(0x0000)
	cpu.SetSR(0x271F)
	if cpu.SR != 0x001F {
		t.Fatalf("SR = $%04X, want $001F", cpu.SR)
	}
	if cpu.supervisor() {
		t.Fatal("user write entered supervisor mode")
	}
}

func TestM68KRunFinishesInstructionPastBudget(t *testing.T) {
	cpu := setupTestCPU()
	prog := make([]uint16, 0, 27)
	for i := 0; i < 24; i++ {
		prog = append(prog, 0x4E71)
	}
	prog = append(prog, 0x203C, 0x1234, 0x5678)
	loadProgram(cpu, m68kTestPC, prog...)

	used := cpu.Run(100)
	if used != 108 {
		t.Fatalf("Run(100) = %d cycles, want 108", used)
	}
	if cpu.DataRegs[0] != 0x12345678 {
		t.Fatalf("MOVE.L did not complete, D0 = $%08X", cpu.DataRegs[0])
	}
	if cpu.PC != m68kTestPC+54 {
		t.Fatalf("PC = $%06X, want $%06X", cpu.PC, m68kTestPC+54)
	}
}

func TestM68KRegistersRoundTrip(t *testing.T) {
	cpu := setupTestCPU()
	regs := cpu.Registers()
	regs.D[3] = 0x33
	regs.A[2] = 0x2222
	regs.USP = 0x5000
	regs.SSP = 0x7000
	regs.A[7] = 0x7000
	regs.SR = 0x2000
	cpu.SetRegisters(regs)
	if cpu.AddrRegs[7] != 0x7000 {
		t.Fatalf("A7 = $%08X, want SSP", cpu.AddrRegs[7])
	}
	got := cpu.Registers()
	if got != regs {
		t.Fatalf("Registers() = %+v, want %+v", got, regs)
	}
}

func TestM68KStopWaitsForInterrupt(t *testing.T) {
	cpu := setupTestCPU()
	loadProgram(cpu, m68kTestPC, 0x4E72, 0x2000)
	cpu.Step()
	if !cpu.Stopped() {
		t.Fatal("STOP did not stop the CPU")
	}
	if n := cpu.Step(); n != M68K_CYCLE_STOPPED {
		t.Fatalf("idle step = %d cycles", n)
	}
	cpu.RaiseInterrupt(4)
	cpu.Step()
	if cpu.Stopped() {
		t.Fatal("interrupt did not wake the CPU")
	}
	if cpu.PC != m68kVectorHandler(M68K_VEC_LEVEL1+3) {
		t.Fatalf("PC = $%06X, want level 4 handler", cpu.PC)
	}
}

func TestM68KTraceRaisesVector9(t *testing.T) {
	cpu := setupTestCPU()
	cpu.SetSR(M68K_SR_RESET | M68K_SR_T)
	loadProgram(cpu, m68kTestPC, 0x4E71)
	cpu.Step()
	if cpu.PC != m68kVectorHandler(M68K_VEC_TRACE) {
		t.Fatalf("PC = $%06X, want trace handler", cpu.PC)
	}
	if cpu.SR&M68K_SR_T != 0 {
		t.Fatal("T still set inside the trace handler")
	}
}

func TestM68KRTERestoresState(t *testing.T) {
	cpu := setupTestCPU()
	loadProgram(cpu, m68kTestPC, 0x4E41)
	loadProgram(cpu, m68kVectorHandler(M68K_VEC_TRAP_BASE+1), 0x4E73)
	cpu.Step()
	if cpu.ExceptionDepth() != 1 {
		t.Fatalf("depth = %d inside handler", cpu.ExceptionDepth())
	}
	cpu.Step()
	if cpu.PC != m68kTestPC+2 || cpu.AddrRegs[7] != m68kTestSSP || cpu.SR != M68K_SR_RESET {
		t.Fatalf("after RTE PC=$%06X A7=$%08X SR=$%04X", cpu.PC, cpu.AddrRegs[7], cpu.SR)
	}
	if cpu.ExceptionState() != M68K_EXC_IDLE {
		t.Fatalf("state = %s", cpu.ExceptionState())
	}
}
