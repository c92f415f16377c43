// megadrive_cartridge.go - Cartridge header, checksum and region parsing

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

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MD_HEADER_SIZE      = 0x200
	MD_ROM_MAX_SIZE     = 0x400000 * 2 // mapper images up to 8MB
	MD_HDR_SYSTEM       = 0x100
	MD_HDR_COPYRIGHT    = 0x110
	MD_HDR_TITLE_DOM    = 0x120
	MD_HDR_TITLE_INT    = 0x150
	MD_HDR_SERIAL       = 0x180
	MD_HDR_CHECKSUM     = 0x18E
	MD_HDR_IO           = 0x190
	MD_HDR_ROM_START    = 0x1A0
	MD_HDR_ROM_END      = 0x1A4
	MD_HDR_RAM_START    = 0x1A8
	MD_HDR_RAM_END      = 0x1AC
	MD_HDR_SRAM         = 0x1B0
	MD_HDR_MODEM        = 0x1BC
	MD_HDR_NOTES        = 0x1C8
	MD_HDR_REGION       = 0x1F0
	MD_HDR_SRAM_TYPE    = 0x1B2
	MD_HDR_SRAM_START   = 0x1B4
	MD_HDR_SRAM_END     = 0x1B8
	MD_SRAM_DEFAULT_BEG = 0x200000
	MD_SRAM_DEFAULT_END = 0x20FFFF
)

var (
	ErrROMTooSmall = errors.New("ROM image smaller than the cartridge header")
	ErrROMTooLarge = errors.New("ROM image larger than the cartridge space")
	ErrBootROMSize = errors.New("boot ROM size must be a power of two up to 16KB")
)

// Region is a bitmask of the territories a cartridge supports.
type Region uint8

const (
	RegionJapan Region = 1 << iota
	RegionUSA
	RegionEurope
)

func (r Region) String() string {
	var parts []string
	if r&RegionJapan != 0 {
		parts = append(parts, "JP")
	}
	if r&RegionUSA != 0 {
		parts = append(parts, "US")
	}
	if r&RegionEurope != 0 {
		parts = append(parts, "EU")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "/")
}

// ParseRegion accepts the flag spellings jp, us and eu.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(s) {
	case "jp", "japan", "j":
		return RegionJapan, nil
	case "us", "usa", "u":
		return RegionUSA, nil
	case "eu", "europe", "e":
		return RegionEurope, nil
	}
	return 0, fmt.Errorf("unknown region %q", s)
}

type CartridgeHeader struct {
	SystemType    string
	Copyright     string
	DomesticTitle string
	OverseasTitle string
	Serial        string
	Checksum      uint16
	IOSupport     string
	ROMStart      uint32
	ROMEnd        uint32
	RAMStart      uint32
	RAMEnd        uint32
	SRAMInfo      [12]byte
	Modem         string
	Notes         string
	RegionCodes   string
	Regions       Region
}

// HasSRAM reports whether the header carries an "RA" backup RAM block.
func (h *CartridgeHeader) HasSRAM() bool {
	return h.SRAMInfo[0] == 'R' && h.SRAMInfo[1] == 'A'
}

// SRAMRange returns the declared backup RAM range and lane layout.
func (h *CartridgeHeader) SRAMRange() (start, end uint32, lanes int) {
	start = binary.BigEndian.Uint32(h.SRAMInfo[4:8])
	end = binary.BigEndian.Uint32(h.SRAMInfo[8:12])
	lanes = int(h.SRAMInfo[2]>>3) & 3
	if start == 0 || end < start || end > MD_CART_END {
		start, end = MD_SRAM_DEFAULT_BEG, MD_SRAM_DEFAULT_END
	}
	return start, end, lanes
}

type Cartridge struct {
	Header  CartridgeHeader
	Size    int
	storage []byte // word swapped, shared with the bus
}

func headerString(rom []byte, off, n int) string {
	return strings.TrimRight(string(rom[off:off+n]), " \x00")
}

// parseRegions understands both the old letter codes (J, U, E) and the
// newer single hex digit bitmask (bit 0 Japan, bit 2 USA, bit 3 Europe).
func parseRegions(codes string) Region {
	var r Region
	codes = strings.TrimSpace(codes)
	if n, err := strconv.ParseUint(codes, 16, 8); err == nil && len(codes) == 1 && codes != "E" {
		if n&1 != 0 {
			r |= RegionJapan
		}
		if n&4 != 0 {
			r |= RegionUSA
		}
		if n&8 != 0 {
			r |= RegionEurope
		}
		return r
	}
	for _, c := range codes {
		switch c {
		case 'J':
			r |= RegionJapan
		case 'U':
			r |= RegionUSA
		case 'E':
			r |= RegionEurope
		}
	}
	return r
}

// ParseCartridgeHeader decodes the big-endian header in the first 512
// bytes of a ROM image.
func ParseCartridgeHeader(rom []byte) (CartridgeHeader, error) {
	if len(rom) < MD_HEADER_SIZE {
		return CartridgeHeader{}, fmt.Errorf("%d bytes: %w", len(rom), ErrROMTooSmall)
	}
	h := CartridgeHeader{
		SystemType:    headerString(rom, MD_HDR_SYSTEM, 16),
		Copyright:     headerString(rom, MD_HDR_COPYRIGHT, 16),
		DomesticTitle: headerString(rom, MD_HDR_TITLE_DOM, 48),
		OverseasTitle: headerString(rom, MD_HDR_TITLE_INT, 48),
		Serial:        headerString(rom, MD_HDR_SERIAL, 14),
		Checksum:      binary.BigEndian.Uint16(rom[MD_HDR_CHECKSUM:]),
		IOSupport:     headerString(rom, MD_HDR_IO, 16),
		ROMStart:      binary.BigEndian.Uint32(rom[MD_HDR_ROM_START:]),
		ROMEnd:        binary.BigEndian.Uint32(rom[MD_HDR_ROM_END:]),
		RAMStart:      binary.BigEndian.Uint32(rom[MD_HDR_RAM_START:]),
		RAMEnd:        binary.BigEndian.Uint32(rom[MD_HDR_RAM_END:]),
		Modem:         headerString(rom, MD_HDR_MODEM, 12),
		Notes:         headerString(rom, MD_HDR_NOTES, 40),
		RegionCodes:   headerString(rom, MD_HDR_REGION, 3),
	}
	copy(h.SRAMInfo[:], rom[MD_HDR_SRAM:MD_HDR_SRAM+12])
	h.Regions = parseRegions(h.RegionCodes)
	return h, nil
}

// ComputeChecksum sums the big-endian words from $200 to the end of the
// image. An odd trailing byte counts as the high half of a word.
func ComputeChecksum(rom []byte) uint16 {
	var sum uint16
	for i := MD_HEADER_SIZE; i < len(rom); i += 2 {
		w := uint16(rom[i]) << 8
		if i+1 < len(rom) {
			w |= uint16(rom[i+1])
		}
		sum += w
	}
	return sum
}

// NewCartridge parses a ROM image and prepares its bus storage.
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) > MD_ROM_MAX_SIZE {
		return nil, fmt.Errorf("%d bytes: %w", len(rom), ErrROMTooLarge)
	}
	h, err := ParseCartridgeHeader(rom)
	if err != nil {
		return nil, err
	}
	return &Cartridge{Header: h, Size: len(rom), storage: swapWords(rom)}, nil
}

// Bytes returns the image in 68000 byte order as it currently stands in the
// bus storage.
func (c *Cartridge) Bytes() []byte {
	out := make([]byte, c.Size)
	for i := range out {
		out[i] = c.storage[i^1]
	}
	return out
}

// Checksum recomputes the checksum over the installed image.
func (c *Cartridge) Checksum() uint16 {
	var sum uint16
	for i := MD_HEADER_SIZE; i < c.Size; i += 2 {
		sum += binary.LittleEndian.Uint16(c.storage[i:])
	}
	return sum
}

// ChecksumValid compares the header checksum with the installed image.
func (c *Cartridge) ChecksumValid() bool {
	return c.Checksum() == c.Header.Checksum
}

// PreferredRegion picks the console territory to emulate when none is forced:
// the first of US, Europe, Japan the cartridge supports.
func (c *Cartridge) PreferredRegion() Region {
	switch r := c.Header.Regions; {
	case r&RegionUSA != 0:
		return RegionUSA
	case r&RegionEurope != 0:
		return RegionEurope
	case r&RegionJapan != 0:
		return RegionJapan
	}
	return RegionUSA
}

// NewSRAMFromHeader builds the backup RAM the header declares, or nil.
func (c *Cartridge) NewSRAMFromHeader() *SRAM {
	if !c.Header.HasSRAM() {
		return nil
	}
	start, end, lanes := c.Header.SRAMRange()
	return NewSRAM(start, end, lanes, start >= uint32(c.Size))
}

func (c *Cartridge) String() string {
	title := c.Header.OverseasTitle
	if title == "" {
		title = c.Header.DomesticTitle
	}
	return fmt.Sprintf("%s [%s] %dKB region %s checksum $%04X", title, c.Header.Serial, c.Size/1024, c.Header.Regions, c.Header.Checksum)
}
