package main

import "testing"

// wordReader serves words placed from base; everything else reads as zero.
func wordReader(base uint32, words ...uint16) func(uint32) uint16 {
	return func(addr uint32) uint16 {
		i := int(addr-base) / 2
		if addr < base || i >= len(words) {
			return 0
		}
		return words[i]
	}
}

func TestDisassembleM68K(t *testing.T) {
	tests := []struct {
		name  string
		addr  uint32
		words []uint16
		want  string
		size  int
	}{
		{"moveq", 0x1000, []uint16{0x7001}, "MOVEQ #1,D0", 2},
		{"moveq negative", 0x1000, []uint16{0x72FF}, "MOVEQ #-1,D1", 2},
		{"move long imm", 0x1000, []uint16{0x203C, 0x1234, 0x5678}, "MOVE.L #$12345678,D0", 6},
		{"move word abs", 0x1000, []uint16{0x33C0, 0x00A1, 0x2000}, "MOVE.W D0,$A12000.L", 6},
		{"bra word", 0x1000, []uint16{0x6000, 0x0010}, "BRA.W $001012", 4},
		{"beq short", 0x1000, []uint16{0x67FE}, "BEQ.S $001000", 2},
		{"dbf", 0x1000, []uint16{0x51C8, 0xFFFC}, "DBF D0,$000FFE", 4},
		{"move to sr", 0x1000, []uint16{0x46FC, 0x2700}, "MOVE #$2700,SR", 4},
		{"ori to ccr", 0x1000, []uint16{0x003C, 0x001F}, "ORI #$1F,CCR", 4},
		{"movem predec", 0x1000, []uint16{0x48E7, 0xFFFE}, "MOVEM.L D0-D7/A0-A6,-(A7)", 4},
		{"movem postinc", 0x1000, []uint16{0x4CDF, 0x7FFF}, "MOVEM.L (A7)+,D0-D7/A0-A6", 4},
		{"lea", 0x1000, []uint16{0x41F9, 0x00FF, 0x0000}, "LEA $FF0000.L,A0", 6},
		{"addq", 0x1000, []uint16{0x5280}, "ADDQ.L #1,D0", 2},
		{"lsl", 0x1000, []uint16{0xE348}, "LSL.W #1,D0", 2},
		{"asl memory", 0x1000, []uint16{0xE1D0}, "ASL.W (A0)", 2},
		{"nop", 0x1000, []uint16{0x4E71}, "NOP", 2},
		{"rts", 0x1000, []uint16{0x4E75}, "RTS", 2},
		{"illegal", 0x1000, []uint16{0x4AFC}, "ILLEGAL", 2},
		{"line a", 0x1000, []uint16{0xA000}, "DC.W $A000", 2},
		{"trap", 0x1000, []uint16{0x4E4F}, "TRAP #15", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := DisassembleM68K(wordReader(tt.addr, tt.words...), tt.addr)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if n != tt.size {
				t.Errorf("size = %d, want %d", n, tt.size)
			}
		})
	}
}

func TestDisassembleM68KLines(t *testing.T) {
	read := wordReader(0x200, 0x203C, 0x1234, 0x5678, 0x4E71, 0x4E75)
	lines := disassembleM68K(read, 0x200, 3)
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0].HexBytes != "203C 1234 5678" || lines[0].Size != 6 {
		t.Errorf("line 0 = %+v", lines[0])
	}
	if lines[1].Address != 0x206 || lines[1].Mnemonic != "NOP" {
		t.Errorf("line 1 = %+v", lines[1])
	}
	if lines[2].Address != 0x208 || lines[2].Mnemonic != "RTS" {
		t.Errorf("line 2 = %+v", lines[2])
	}
}

func TestRegListRanges(t *testing.T) {
	tests := []struct {
		mask     uint16
		reversed bool
		want     string
	}{
		{0x0001, false, "D0"},
		{0x0003, false, "D0-D1"},
		{0x0105, false, "D0/D2/A0"},
		{0x8000, false, "A7"},
		{0x8000, true, "D0"},
		{0x0180, false, "D7/A0"},
	}
	for _, tt := range tests {
		if got := m68kRegList(tt.mask, tt.reversed); got != tt.want {
			t.Errorf("m68kRegList($%04X, %v) = %q, want %q", tt.mask, tt.reversed, got, tt.want)
		}
	}
}
