// megadrive_mapper.go - Sega mapper bank registers and battery SRAM

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

const (
	MD_BANK_SHIFT = 19 // 512KB banks
	MD_BANK_MASK  = 1<<MD_BANK_SHIFT - 1
	MD_BANK_COUNT = 8

	MD_SRAM_CONTROL = 0x1 // $A130F1
)

// SRAM lane layouts from header byte $1B2 bits 4-3.
const (
	SRAMLaneBoth = iota
	SRAMLaneEven = 2
	SRAMLaneOdd  = 3
)

// SegaMapper implements the $A130F1-$A130FF registers. With banking enabled
// each 512KB slot of the cartridge space selects a ROM bank; slot 0 is fixed.
type SegaMapper struct {
	Enabled bool
	SRAM    *SRAM
	banks   [MD_BANK_COUNT]uint8
}

func NewSegaMapper() *SegaMapper {
	m := &SegaMapper{}
	m.Reset()
	return m
}

func (m *SegaMapper) Reset() {
	for i := range m.banks {
		m.banks[i] = uint8(i)
	}
}

// Bank returns the ROM bank selected for slot n.
func (m *SegaMapper) Bank(n int) uint8 {
	return m.banks[n&(MD_BANK_COUNT-1)]
}

// Translate maps a cartridge address to a ROM offset.
func (m *SegaMapper) Translate(addr uint32) uint32 {
	if !m.Enabled {
		return addr
	}
	slot := (addr >> MD_BANK_SHIFT) & (MD_BANK_COUNT - 1)
	return uint32(m.banks[slot])<<MD_BANK_SHIFT | addr&MD_BANK_MASK
}

func (m *SegaMapper) Read8(addr uint32) uint8 {
	reg := addr & 0xF
	if reg&1 == 0 {
		return 0xFF
	}
	if reg == MD_SRAM_CONTROL {
		if m.SRAM == nil {
			return 0
		}
		return m.SRAM.control()
	}
	return m.banks[reg>>1]
}

func (m *SegaMapper) Write8(addr uint32, v uint8) {
	reg := addr & 0xF
	if reg&1 == 0 {
		return
	}
	if reg == MD_SRAM_CONTROL {
		if m.SRAM != nil {
			m.SRAM.setControl(v)
		}
		return
	}
	if m.Enabled {
		m.banks[reg>>1] = v & 0x3F
	}
}

// SRAM is battery backed cartridge RAM declared by the "RA" header block.
type SRAM struct {
	Start uint32
	End   uint32
	Lanes int

	Mapped       bool
	WriteProtect bool
	mappedAtBoot bool

	data []byte
}

func NewSRAM(start, end uint32, lanes int, mappedAtBoot bool) *SRAM {
	start &^= 1
	s := &SRAM{
		Start:        start,
		End:          end | 1,
		Lanes:        lanes,
		mappedAtBoot: mappedAtBoot,
	}
	s.data = make([]byte, s.End-s.Start+1)
	for i := range s.data {
		s.data[i] = 0xFF
	}
	s.ResetMapping()
	return s
}

// Data exposes the backing store in 68000 address order.
func (s *SRAM) Data() []byte {
	return s.data
}

func (s *SRAM) ResetMapping() {
	s.Mapped = s.mappedAtBoot
	s.WriteProtect = false
}

func (s *SRAM) lane(addr uint32) bool {
	switch s.Lanes {
	case SRAMLaneEven:
		return addr&1 == 0
	case SRAMLaneOdd:
		return addr&1 != 0
	}
	return true
}

// Visible reports whether the SRAM answers at addr.
func (s *SRAM) Visible(addr uint32) bool {
	return s.Mapped && addr >= s.Start && addr <= s.End && s.lane(addr)
}

func (s *SRAM) Read8(addr uint32) uint8 {
	if !s.Visible(addr) {
		return 0xFF
	}
	return s.data[addr-s.Start]
}

func (s *SRAM) Write8(addr uint32, v uint8) {
	if s.WriteProtect || !s.Visible(addr) {
		return
	}
	s.data[addr-s.Start] = v
}

func (s *SRAM) control() uint8 {
	var v uint8
	if s.Mapped {
		v |= 1
	}
	if s.WriteProtect {
		v |= 2
	}
	return v
}

func (s *SRAM) setControl(v uint8) {
	s.Mapped = v&1 != 0
	s.WriteProtect = v&2 != 0
}
