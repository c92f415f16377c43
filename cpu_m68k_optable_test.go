// cpu_m68k_optable_test.go - Dispatch table coverage and decode

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

func TestOpTableHasNoOverlaps(t *testing.T) {
	var table [65536]m68kOpEntry
	if conflicts := buildM68KOpTable(&table, m68kInstructionSet()); len(conflicts) != 0 {
		for _, c := range conflicts[:min(len(conflicts), 10)] {
			t.Error(c)
		}
		t.Fatalf("%d overlapping opcodes", len(conflicts))
	}
}

func TestOpTableEverySlotHasHandler(t *testing.T) {
	m68kInitOpTable()
	for i := range m68kOpTable {
		if m68kOpTable[i].handler == nil {
			t.Fatalf("opcode $%04X has no handler", i)
		}
	}
}

func TestOpTableCoverage(t *testing.T) {
	// Lines A and F never decode to an instruction.
	n := m68kOpTableCoverage()
	if n < 30000 || n > 65536-2*4096 {
		t.Fatalf("%d opcodes decode to instructions", n)
	}
}

func TestInstructionNames(t *testing.T) {
	tests := []struct {
		op   uint16
		want string
	}{
		{0x4E71, "NOP"},
		{0x4E75, "RTS"},
		{0x4AFC, "ILLEGAL"},
		{0x203C, "MOVE.L"},
		{0x3040, "MOVEA.W"},
		{0x7001, "MOVEQ"},
		{0x46FC, "MOVE to SR"},
		{0x003C, "ORI to CCR"},
		{0x4840, "SWAP"},
		{0x4850, "PEA"},
		{0x48E7, "MOVEM"},
		{0x6000, "BRA"},
		{0x6700, "Bcc"},
		{0x51C8, "DBcc"},
		{0x57C0, "Scc"},
		{0xC141, "EXG"},
		{0xC101, "ABCD"},
		{0xD081, "ADD.L"},
		{0xD1C0, "ADDA.L"},
		{0xE348, "LSd.W"},
		{0xE0D0, "ASd"},
		{0xA000, "LINEA"},
		{0xF000, "LINEF"},
		{0x4E7B, "ILLEGAL"}, // MOVEC is 68010+
		{0x41C0, "ILLEGAL"}, // LEA D0 is not a control mode
		{0x1048, "ILLEGAL"}, // MOVE.B A0 source
	}
	for _, tt := range tests {
		if got := M68KInstructionName(tt.op); got != tt.want {
			t.Errorf("$%04X decodes to %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestEAIndex(t *testing.T) {
	tests := []struct {
		mode, reg uint16
		want      int
	}{
		{0, 3, M68K_AM_DR},
		{1, 7, M68K_AM_AR},
		{5, 2, M68K_AM_AR_DISP},
		{7, 0, M68K_AM_ABS_SHORT},
		{7, 1, M68K_AM_ABS_LONG},
		{7, 2, M68K_AM_PC_DISP},
		{7, 3, M68K_AM_PC_INDEX},
		{7, 4, M68K_AM_IMM},
		{7, 5, M68K_AM_INVALID},
	}
	for _, tt := range tests {
		if got := m68kEAIndex(tt.mode, tt.reg); got != tt.want {
			t.Errorf("mode %d reg %d = %d, want %d", tt.mode, tt.reg, got, tt.want)
		}
	}
}

func TestEACosts(t *testing.T) {
	tests := []struct {
		idx, size int
		want      int
	}{
		{M68K_AM_DR, M68K_SIZE_LONG, 0},
		{M68K_AM_AR_IND, M68K_SIZE_WORD, M68K_CYCLE_EA_AI},
		{M68K_AM_AR_IND, M68K_SIZE_LONG, M68K_CYCLE_EA_AI + M68K_CYCLE_EA_LONG},
		{M68K_AM_AR_INDEX, M68K_SIZE_BYTE, M68K_CYCLE_EA_IX},
		{M68K_AM_IMM, M68K_SIZE_LONG, M68K_CYCLE_EA_IM + M68K_CYCLE_EA_LONG},
	}
	for _, tt := range tests {
		if got := m68kEACost(tt.idx, tt.size); got != tt.want {
			t.Errorf("m68kEACost(%d, %d) = %d, want %d", tt.idx, tt.size, got, tt.want)
		}
	}
}

func TestResolveEAPostincrementOnce(t *testing.T) {
	// ADDQ.W #1,(A0)+ reads and writes the same operand
	cpu := setupTestCPU()
	cpu.AddrRegs[0] = 0x2000
	cpu.Write16(0x2000, 0x00FF)
	loadProgram(cpu, m68kTestPC, 0x5258)
	cpu.Step()
	if cpu.AddrRegs[0] != 0x2002 {
		t.Fatalf("A0 = $%08X, want one increment", cpu.AddrRegs[0])
	}
	if v := cpu.Read16(0x2000); v != 0x0100 {
		t.Fatalf("memory = $%04X", v)
	}
}

func TestResolveEAPredecrementOnce(t *testing.T) {
	// NEG.L -(A1)
	cpu := setupTestCPU()
	cpu.AddrRegs[1] = 0x2004
	cpu.Write32(0x2000, 1)
	loadProgram(cpu, m68kTestPC, 0x44A1)
	cpu.Step()
	if cpu.AddrRegs[1] != 0x2000 {
		t.Fatalf("A1 = $%08X, want one decrement", cpu.AddrRegs[1])
	}
	if v := cpu.Read32(0x2000); v != 0xFFFFFFFF {
		t.Fatalf("memory = $%08X", v)
	}
}
