package main

import (
	"encoding/binary"
	"errors"
	"testing"
)

const (
	testROMSize     = 0x10000
	testROMEntry    = 0x200
	testROMStack    = 0x00FFFF00
	testROMHandlers = 0x8000
)

// testROMHandler is the address of the BRA.S * loop serving vector v.
func testROMHandler(v uint8) uint32 {
	return testROMHandlers + uint32(v)*16
}

// buildTestROM returns a 64KB image with a full vector table, a header with
// a valid checksum, and program at $200. Every vector points at its own
// BRA.S * loop.
func buildTestROM(program ...uint16) []byte {
	rom := make([]byte, testROMSize)
	binary.BigEndian.PutUint32(rom[0:], testROMStack)
	binary.BigEndian.PutUint32(rom[4:], testROMEntry)
	for v := uint8(2); v < 64; v++ {
		binary.BigEndian.PutUint32(rom[uint32(v)*4:], testROMHandler(v))
		binary.BigEndian.PutUint16(rom[testROMHandler(v):], 0x60FE)
	}

	copy(rom[MD_HDR_SYSTEM:], "SEGA MEGA DRIVE ")
	copy(rom[MD_HDR_COPYRIGHT:], "(C)TEST 2026.JAN")
	copy(rom[MD_HDR_TITLE_DOM:], "BUS TEST")
	copy(rom[MD_HDR_TITLE_INT:], "BUS TEST OVERSEAS")
	copy(rom[MD_HDR_SERIAL:], "GM 00000000-00")
	copy(rom[MD_HDR_IO:], "J")
	binary.BigEndian.PutUint32(rom[MD_HDR_ROM_START:], 0)
	binary.BigEndian.PutUint32(rom[MD_HDR_ROM_END:], testROMSize-1)
	binary.BigEndian.PutUint32(rom[MD_HDR_RAM_START:], MD_RAM_START)
	binary.BigEndian.PutUint32(rom[MD_HDR_RAM_END:], MD_RAM_END)
	copy(rom[MD_HDR_REGION:], "JUE")

	for i, w := range program {
		binary.BigEndian.PutUint16(rom[testROMEntry+i*2:], w)
	}
	binary.BigEndian.PutUint16(rom[MD_HDR_CHECKSUM:], ComputeChecksum(rom))
	return rom
}

func TestCartridgeHeader(t *testing.T) {
	rom := buildTestROM(0x4E71)
	h, err := ParseCartridgeHeader(rom)
	if err != nil {
		t.Fatalf("ParseCartridgeHeader: %v", err)
	}
	if h.SystemType != "SEGA MEGA DRIVE" {
		t.Errorf("SystemType = %q", h.SystemType)
	}
	if h.OverseasTitle != "BUS TEST OVERSEAS" {
		t.Errorf("OverseasTitle = %q", h.OverseasTitle)
	}
	if h.ROMEnd != testROMSize-1 {
		t.Errorf("ROMEnd = $%X", h.ROMEnd)
	}
	if h.Regions != RegionJapan|RegionUSA|RegionEurope {
		t.Errorf("Regions = %v", h.Regions)
	}
	if h.HasSRAM() {
		t.Error("header without RA block reports SRAM")
	}
}

func TestCartridgeTooSmall(t *testing.T) {
	_, err := NewCartridge(make([]byte, 0x100))
	if !errors.Is(err, ErrROMTooSmall) {
		t.Fatalf("err = %v, want ErrROMTooSmall", err)
	}
	_, err = NewCartridge(make([]byte, MD_ROM_MAX_SIZE+2))
	if !errors.Is(err, ErrROMTooLarge) {
		t.Fatalf("err = %v, want ErrROMTooLarge", err)
	}
}

func TestCartridgeChecksum(t *testing.T) {
	rom := buildTestROM(0x7001, 0x4E75)
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	if !cart.ChecksumValid() {
		t.Fatalf("checksum $%04X, header $%04X", cart.Checksum(), cart.Header.Checksum)
	}
	if cart.Checksum() != ComputeChecksum(rom) {
		t.Errorf("swapped storage sum $%04X differs from image sum $%04X", cart.Checksum(), ComputeChecksum(rom))
	}

	rom[0x300] ^= 0x55
	bad, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	if bad.ChecksumValid() {
		t.Error("corrupted image still passes the checksum")
	}
}

func TestCartridgeChecksumAfterLoad(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x7001, 0x4E75)
	if !m.Cart.ChecksumValid() {
		t.Fatal("freshly loaded cartridge fails its checksum")
	}

	// storage is word swapped: byte $300 holds image byte $301.
	before := m.Bus.Read8(0x301)
	m.Cart.storage[0x300] ^= 0x55
	if m.Bus.Read8(0x301) == before {
		t.Fatal("bus does not see the installed image")
	}
	if m.Cart.ChecksumValid() {
		t.Error("corrupted installed image still passes the checksum")
	}
}

func TestCartridgeBytesRoundTrip(t *testing.T) {
	rom := buildTestROM(0x1234, 0x5678)
	cart, err := NewCartridge(rom[:0x301])
	if err != nil {
		t.Fatal(err)
	}
	out := cart.Bytes()
	if len(out) != 0x301 {
		t.Fatalf("len = %d", len(out))
	}
	for i := range out {
		if out[i] != rom[i] {
			t.Fatalf("byte $%X = $%02X, want $%02X", i, out[i], rom[i])
		}
	}
}

func TestParseRegionCodes(t *testing.T) {
	tests := []struct {
		codes string
		want  Region
	}{
		{"J", RegionJapan},
		{"U", RegionUSA},
		{"E", RegionEurope},
		{"JU", RegionJapan | RegionUSA},
		{"1", RegionJapan},
		{"4", RegionUSA},
		{"8", RegionEurope},
		{"F", RegionJapan | RegionUSA | RegionEurope},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseRegions(tt.codes); got != tt.want {
			t.Errorf("parseRegions(%q) = %v, want %v", tt.codes, got, tt.want)
		}
	}
}

func TestParseRegionFlag(t *testing.T) {
	for in, want := range map[string]Region{"jp": RegionJapan, "US": RegionUSA, "europe": RegionEurope} {
		got, err := ParseRegion(in)
		if err != nil || got != want {
			t.Errorf("ParseRegion(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseRegion("mars"); err == nil {
		t.Error("ParseRegion accepted an unknown region")
	}
}

func TestPreferredRegion(t *testing.T) {
	tests := []struct {
		codes string
		want  Region
	}{
		{"JUE", RegionUSA},
		{"JE", RegionEurope},
		{"J", RegionJapan},
		{"", RegionUSA},
	}
	for _, tt := range tests {
		rom := buildTestROM()
		copy(rom[MD_HDR_REGION:], "   ")
		copy(rom[MD_HDR_REGION:], tt.codes)
		cart, err := NewCartridge(rom)
		if err != nil {
			t.Fatal(err)
		}
		if got := cart.PreferredRegion(); got != tt.want {
			t.Errorf("%q: PreferredRegion = %v, want %v", tt.codes, got, tt.want)
		}
	}
}

func TestCartridgeSRAMHeader(t *testing.T) {
	rom := buildTestROM()
	copy(rom[MD_HDR_SRAM:], "RA")
	rom[MD_HDR_SRAM+2] = 0xF8
	rom[MD_HDR_SRAM+3] = 0x20
	binary.BigEndian.PutUint32(rom[MD_HDR_SRAM_START:], 0x200001)
	binary.BigEndian.PutUint32(rom[MD_HDR_SRAM_END:], 0x203FFF)

	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	if !cart.Header.HasSRAM() {
		t.Fatal("RA block not detected")
	}
	sram := cart.NewSRAMFromHeader()
	if sram == nil {
		t.Fatal("no SRAM built")
	}
	if sram.Start != 0x200000 || sram.End != 0x203FFF || sram.Lanes != SRAMLaneOdd {
		t.Errorf("SRAM $%06X-$%06X lanes %d", sram.Start, sram.End, sram.Lanes)
	}
	if !sram.Mapped {
		t.Error("SRAM above the ROM should be mapped at boot")
	}
}
