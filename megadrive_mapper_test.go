package main

import "testing"

func TestSegaMapperBanks(t *testing.T) {
	m := NewSegaMapper()
	m.Enabled = true

	m.Write8(MD_MAPPER_BASE+3, 5) // slot 1
	if got := m.Bank(1); got != 5 {
		t.Fatalf("bank 1 = %d", got)
	}
	if got := m.Translate(0x080010); got != 5<<MD_BANK_SHIFT|0x10 {
		t.Errorf("Translate($080010) = $%06X", got)
	}
	if got := m.Translate(0x000010); got != 0x10 {
		t.Errorf("slot 0 moved: $%06X", got)
	}
	if got := m.Read8(MD_MAPPER_BASE + 3); got != 5 {
		t.Errorf("bank register readback = %d", got)
	}

	m.Reset()
	if got := m.Bank(1); got != 1 {
		t.Errorf("reset bank 1 = %d", got)
	}

	m.Enabled = false
	m.Write8(MD_MAPPER_BASE+3, 7)
	if got := m.Translate(0x080010); got != 0x080010 {
		t.Errorf("disabled mapper translated to $%06X", got)
	}
}

func TestSRAMLanesAndProtect(t *testing.T) {
	s := NewSRAM(0x200001, 0x203FFF, SRAMLaneOdd, true)
	if !s.Visible(0x200001) || s.Visible(0x200000) {
		t.Fatal("odd lane visibility wrong")
	}
	s.Write8(0x200001, 0x42)
	if got := s.Read8(0x200001); got != 0x42 {
		t.Errorf("SRAM read = $%02X", got)
	}
	if got := s.Read8(0x200000); got != 0xFF {
		t.Errorf("even lane read = $%02X", got)
	}

	s.setControl(3)
	s.Write8(0x200001, 0x99)
	if got := s.Read8(0x200001); got != 0x42 {
		t.Errorf("write-protected SRAM changed to $%02X", got)
	}
	if got := s.control(); got != 3 {
		t.Errorf("control = %d", got)
	}

	s.setControl(0)
	if got := s.Read8(0x200001); got != 0xFF {
		t.Errorf("unmapped SRAM read = $%02X", got)
	}
	s.ResetMapping()
	if !s.Mapped || s.WriteProtect {
		t.Error("ResetMapping did not restore boot mapping")
	}
	if s.Data()[1] != 0x42 {
		t.Error("backing store lost the byte")
	}
}

func TestSRAMOnBus(t *testing.T) {
	m := newTestMachine(t, MachineConfig{})
	sram := NewSRAM(0x200000, 0x20FFFF, SRAMLaneBoth, false)
	m.Bus.SRAM = sram
	m.Bus.Mapper.SRAM = sram

	m.Bus.Write16(0x200000, 0x1234)
	if got := m.Bus.Read16(0x200000); got == 0x1234 {
		t.Fatal("SRAM answered before being mapped")
	}
	m.Bus.Write8(MD_MAPPER_BASE+MD_SRAM_CONTROL, 1)
	m.Bus.Write16(0x200000, 0x1234)
	if got := m.Bus.Read16(0x200000); got != 0x1234 {
		t.Errorf("SRAM word = $%04X", got)
	}
	if got := m.Bus.Read8(MD_MAPPER_BASE + MD_SRAM_CONTROL); got != 1 {
		t.Errorf("SRAM control readback = %d", got)
	}
}
