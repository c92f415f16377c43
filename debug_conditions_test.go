package main

import "testing"

func TestParseCondition(t *testing.T) {
	tests := []struct {
		text string
		want BreakpointCondition
	}{
		{"d0==$FF", BreakpointCondition{Source: CondSourceRegister, RegName: "D0", Op: CondOpEqual, Value: 0xFF}},
		{"a7 != 0", BreakpointCondition{Source: CondSourceRegister, RegName: "A7", Op: CondOpNotEqual}},
		{"[$FF0000]==$42", BreakpointCondition{Source: CondSourceMemory, MemAddr: 0xFF0000, MemSize: 1, Op: CondOpEqual, Value: 0x42}},
		{"[$FF0000].w>$100", BreakpointCondition{Source: CondSourceMemory, MemAddr: 0xFF0000, MemSize: 2, Op: CondOpGreater, Value: 0x100}},
		{"[ff0010].L<=#10", BreakpointCondition{Source: CondSourceMemory, MemAddr: 0xFF0010, MemSize: 4, Op: CondOpLessEqual, Value: 10}},
		{"hitcount>=3", BreakpointCondition{Source: CondSourceHitCount, Op: CondOpGreaterEqual, Value: 3}},
		{"sr<$2700", BreakpointCondition{Source: CondSourceRegister, RegName: "SR", Op: CondOpLess, Value: 0x2700}},
	}
	for _, tt := range tests {
		got, err := ParseCondition(tt.text)
		if err != nil {
			t.Errorf("ParseCondition(%q): %v", tt.text, err)
			continue
		}
		if *got != tt.want {
			t.Errorf("ParseCondition(%q) = %+v, want %+v", tt.text, *got, tt.want)
		}
	}
}

func TestParseConditionErrors(t *testing.T) {
	for _, text := range []string{"", "d0", "d0==zz", "[$FF0000==1", "[$ZZ]==1"} {
		if _, err := ParseCondition(text); err == nil {
			t.Errorf("ParseCondition(%q) accepted", text)
		}
	}
}

func TestFormatCondition(t *testing.T) {
	for text, want := range map[string]string{
		"d0==$10":        "D0==$10",
		"[ff0000].w>5":   "[$FF0000].w>$5",
		"[ff0000].l!=0":  "[$FF0000].l!=$0",
		"hitcount>=#16":  "hitcount>=$10",
		"[$A10003]==$7F": "[$A10003]==$7F",
	} {
		cond, err := ParseCondition(text)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatCondition(cond); got != want {
			t.Errorf("FormatCondition(%q) = %q, want %q", text, got, want)
		}
	}
	if FormatCondition(nil) != "" {
		t.Error("nil condition formats as non-empty")
	}
}

func TestEvaluateCondition(t *testing.T) {
	m := newTestMachine(t, MachineConfig{})
	cpu := NewDebugM68K(m)
	m.CPU.DataRegs[2] = 0x80
	m.Bus.Write32(0xFF0100, 0x12345678)

	tests := []struct {
		text string
		hits uint64
		want bool
	}{
		{"d2==$80", 0, true},
		{"d2<$80", 0, false},
		{"d2<=$80", 0, true},
		{"[$FF0100]==$12", 0, true},
		{"[$FF0100].w==$1234", 0, true},
		{"[$FF0100].l==$12345678", 0, true},
		{"[$FF0102].w>$5000", 0, true},
		{"hitcount>=3", 2, false},
		{"hitcount>=3", 3, true},
	}
	for _, tt := range tests {
		cond, err := ParseCondition(tt.text)
		if err != nil {
			t.Fatal(err)
		}
		if got := evaluateCondition(cond, cpu, tt.hits); got != tt.want {
			t.Errorf("%s (hits %d) = %v, want %v", tt.text, tt.hits, got, tt.want)
		}
	}
	if !evaluateCondition(nil, cpu, 0) {
		t.Error("nil condition must fire")
	}
}
