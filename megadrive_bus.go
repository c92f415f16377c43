// megadrive_bus.go - Mega Drive 68000 address decoder

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

/*
megadrive_bus.go - Mega Drive 68000 address decoder

This module implements the 24-bit memory bus the 68000 sees. Address decode
is table driven: 256 pages of 64KB each hold the regions that overlap them,
registered with MapRegion before execution starts and frozen by
SealMappings.

Memory Map:

	$000000-$3FFFFF  Cartridge ROM (boot ROM while TMSS keeps the cartridge off,
	                 SRAM over the declared range, Sega mapper banks above 4MB)
	$A00000-$A0FFFF  Z80 address space (only while the 68000 holds the Z80 bus)
	$A10000-$A1001F  I/O: version register, control pad data and control ports
	$A11000          Memory mode register (write only, ignored)
	$A11100          Z80 BUSREQ
	$A11200          Z80 RESET
	$A130F1-$A130FF  SRAM control and mapper bank registers
	$A14000-$A14003  TMSS "SEGA" register
	$A14101          TMSS cartridge/boot ROM switch
	$C00000-$DFFFFF  VDP ports, mirrored wherever addr & $E700E0 == $C00000
	$E00000-$FFFFFF  64KB work RAM mirrored every 64KB

Everything else raises a bus error. Word and long accesses to odd addresses
raise an address error before any device sees them.

Storage Layout:
ROM, RAM and SRAM are kept word organised in host (little-endian) order, the
layout the rest of the emulator uses for 68000 memory, so a byte at 68000
address a lives at index a^1 and a word is one host uint16.
*/

package main

import (
	"encoding/binary"
	"fmt"
)

const (
	MD_PAGE_SHIFT = 16
	MD_PAGE_COUNT = 256

	MD_CART_START  = 0x000000
	MD_CART_END    = 0x3FFFFF
	MD_Z80_START   = 0xA00000
	MD_Z80_END     = 0xA0FFFF
	MD_IO_START    = 0xA10000
	MD_IO_END      = 0xA1001F
	MD_MEMMODE     = 0xA11000
	MD_Z80_BUSREQ  = 0xA11100
	MD_Z80_RESET   = 0xA11200
	MD_MAPPER_BASE = 0xA130F0
	MD_MAPPER_END  = 0xA130FF
	MD_TMSS_SEGA   = 0xA14000
	MD_TMSS_BANK   = 0xA14100
	MD_VDP_START   = 0xC00000
	MD_VDP_END     = 0xDFFFFF
	MD_VDP_MASK    = 0xE700E0 // address bits that must match for a VDP port
	MD_RAM_START   = 0xE00000
	MD_RAM_END     = 0xFFFFFF
	MD_RAM_SIZE    = 0x10000

	MD_VDP_DATA    = 0x00
	MD_VDP_CONTROL = 0x04
	MD_VDP_HV      = 0x08
	MD_VDP_PSG     = 0x10
	MD_VDP_DEBUG   = 0x18
)

type Bus32 interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, value uint8)
	Read16(addr uint32) uint16
	Write16(addr uint32, value uint16)
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
	Reset()
}

// BusFault is the outcome of a faulting bus access.
type BusFault uint8

const (
	BusOK BusFault = iota
	BusFaultUnmapped
	BusFaultMisaligned
)

func (f BusFault) String() string {
	switch f {
	case BusOK:
		return "ok"
	case BusFaultUnmapped:
		return "unmapped"
	case BusFaultMisaligned:
		return "misaligned"
	}
	return "?"
}

// faultingBus is implemented by buses that report unmapped and misaligned
// accesses so the CPU can raise bus and address errors.
type faultingBus interface {
	Read8WithFault(addr uint32) (uint8, BusFault)
	Read16WithFault(addr uint32) (uint16, BusFault)
	Write8WithFault(addr uint32, value uint8) BusFault
	Write16WithFault(addr uint32, value uint16) BusFault
}

// BusDevice is the bus-facing side of a peripheral. Values are big-endian:
// Read16 returns what the 68000 sees on D15-D0.
type BusDevice interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Write8(addr uint32, value uint8)
	Write16(addr uint32, value uint16)
}

// BusRegion is one decoded address range. The handlers return false when an
// address inside the range has nothing behind it.
type BusRegion struct {
	Name    string
	Start   uint32
	End     uint32
	Owner   string
	Read8   func(addr uint32) (uint8, bool)
	Read16  func(addr uint32) (uint16, bool)
	Write8  func(addr uint32, value uint8) bool
	Write16 func(addr uint32, value uint16) bool
}

func (r *BusRegion) contains(addr uint32) bool {
	return addr >= r.Start && addr <= r.End
}

type MegaDriveBus struct {
	pages  [MD_PAGE_COUNT][]*BusRegion
	sealed bool

	rom     []byte // word swapped
	romMask uint32
	ram     [MD_RAM_SIZE]byte // word swapped

	TMSS   *TMSSLatch
	Mapper *SegaMapper
	SRAM   *SRAM
	Z80    *Z80Window
	IO     *IOPorts
	VDP    BusDevice
	PSG    *PSG

	// Debug logs unmapped accesses.
	Debug bool
}

// NewMegaDriveBus builds the bus with every region mapped. The VDP may be
// attached later through the VDP field.
func NewMegaDriveBus(tmss *TMSSLatch, z80 *Z80Window, io *IOPorts, vdp BusDevice, psg *PSG) *MegaDriveBus {
	bus := &MegaDriveBus{
		TMSS:   tmss,
		Mapper: NewSegaMapper(),
		Z80:    z80,
		IO:     io,
		VDP:    vdp,
		PSG:    psg,
	}
	bus.mapDefaultRegions()
	bus.SealMappings()
	return bus
}

// MapRegion registers r on every page it touches. Mapping after
// SealMappings or overlapping an existing region is a programming error.
func (bus *MegaDriveBus) MapRegion(r *BusRegion) {
	if bus.sealed {
		panic(fmt.Sprintf("MapRegion called after mappings were sealed (%s $%06X-$%06X)", r.Name, r.Start, r.End))
	}
	if r.End < r.Start || r.End > M68K_ADDRESS_MASK {
		panic(fmt.Sprintf("MapRegion: bad range for %s $%06X-$%06X", r.Name, r.Start, r.End))
	}
	for page := r.Start >> MD_PAGE_SHIFT; page <= r.End>>MD_PAGE_SHIFT; page++ {
		for _, other := range bus.pages[page] {
			if r.Start <= other.End && other.Start <= r.End {
				panic(fmt.Sprintf("MapRegion: %s $%06X-$%06X overlaps %s $%06X-$%06X",
					r.Name, r.Start, r.End, other.Name, other.Start, other.End))
			}
		}
		bus.pages[page] = append(bus.pages[page], r)
	}
}

// SealMappings prevents further MapRegion calls.
func (bus *MegaDriveBus) SealMappings() {
	bus.sealed = true
}

// Regions lists the mapped regions in address order.
func (bus *MegaDriveBus) Regions() []*BusRegion {
	var out []*BusRegion
	seen := map[*BusRegion]bool{}
	for _, page := range bus.pages {
		for _, r := range page {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	return out
}

func (bus *MegaDriveBus) region(addr uint32) *BusRegion {
	for _, r := range bus.pages[(addr&M68K_ADDRESS_MASK)>>MD_PAGE_SHIFT] {
		if r.contains(addr) {
			return r
		}
	}
	return nil
}

func (bus *MegaDriveBus) mapDefaultRegions() {
	bus.MapRegion(&BusRegion{
		Name: "cartridge", Owner: "cartridge", Start: MD_CART_START, End: MD_CART_END,
		Read8:   func(addr uint32) (uint8, bool) { return bus.cartRead8(addr), true },
		Read16:  func(addr uint32) (uint16, bool) { return bus.cartRead16(addr), true },
		Write8:  func(addr uint32, v uint8) bool { bus.cartWrite8(addr, v); return true },
		Write16: func(addr uint32, v uint16) bool { bus.cartWrite16(addr, v); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "z80", Owner: "z80", Start: MD_Z80_START, End: MD_Z80_END,
		Read8: func(addr uint32) (uint8, bool) { return bus.Z80.Read8(addr), true },
		Read16: func(addr uint32) (uint16, bool) {
			v := uint16(bus.Z80.Read8(addr))
			return v<<8 | v, true
		},
		Write8:  func(addr uint32, v uint8) bool { bus.Z80.Write8(addr, v); return true },
		Write16: func(addr uint32, v uint16) bool { bus.Z80.Write8(addr, uint8(v>>8)); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "io", Owner: "io", Start: MD_IO_START, End: MD_IO_END,
		Read8: func(addr uint32) (uint8, bool) { return bus.IO.Read8(addr), true },
		Read16: func(addr uint32) (uint16, bool) {
			v := uint16(bus.IO.Read8(addr | 1))
			return v<<8 | v, true
		},
		Write8:  func(addr uint32, v uint8) bool { bus.IO.Write8(addr, v); return true },
		Write16: func(addr uint32, v uint16) bool { bus.IO.Write8(addr|1, uint8(v)); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "memory mode", Owner: "io", Start: MD_MEMMODE, End: MD_MEMMODE + 1,
		Read8:   func(addr uint32) (uint8, bool) { return 0xFF, true },
		Read16:  func(addr uint32) (uint16, bool) { return 0xFFFF, true },
		Write8:  func(addr uint32, v uint8) bool { return true },
		Write16: func(addr uint32, v uint16) bool { return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "z80 busreq", Owner: "z80", Start: MD_Z80_BUSREQ, End: MD_Z80_BUSREQ + 1,
		Read8: func(addr uint32) (uint8, bool) { return bus.Z80.BusReqStatus(), true },
		Read16: func(addr uint32) (uint16, bool) {
			return uint16(bus.Z80.BusReqStatus())<<8 | 0xFF, true
		},
		Write8: func(addr uint32, v uint8) bool {
			if addr&1 == 0 {
				bus.Z80.SetBusReq(v&1 != 0)
			}
			return true
		},
		Write16: func(addr uint32, v uint16) bool { bus.Z80.SetBusReq(v&0x0100 != 0); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "z80 reset", Owner: "z80", Start: MD_Z80_RESET, End: MD_Z80_RESET + 1,
		Read8:  func(addr uint32) (uint8, bool) { return 0xFF, true },
		Read16: func(addr uint32) (uint16, bool) { return 0xFFFF, true },
		Write8: func(addr uint32, v uint8) bool {
			if addr&1 == 0 {
				bus.Z80.SetReset(v&1 == 0)
			}
			return true
		},
		Write16: func(addr uint32, v uint16) bool { bus.Z80.SetReset(v&0x0100 == 0); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "mapper", Owner: "cartridge", Start: MD_MAPPER_BASE, End: MD_MAPPER_END,
		Read8:   func(addr uint32) (uint8, bool) { return bus.Mapper.Read8(addr), true },
		Read16:  func(addr uint32) (uint16, bool) { return uint16(bus.Mapper.Read8(addr | 1)), true },
		Write8:  func(addr uint32, v uint8) bool { bus.Mapper.Write8(addr, v); return true },
		Write16: func(addr uint32, v uint16) bool { bus.Mapper.Write8(addr|1, uint8(v)); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "tmss", Owner: "tmss", Start: MD_TMSS_SEGA, End: MD_TMSS_SEGA + 3,
		Read8:  func(addr uint32) (uint8, bool) { return bus.TMSS.ReadSignature(addr - MD_TMSS_SEGA), true },
		Read16: func(addr uint32) (uint16, bool) { return bus.TMSS.ReadSignatureWord(addr - MD_TMSS_SEGA), true },
		Write8: func(addr uint32, v uint8) bool {
			bus.TMSS.WriteSignature(addr-MD_TMSS_SEGA, v)
			return true
		},
		Write16: func(addr uint32, v uint16) bool {
			bus.TMSS.WriteSignature(addr-MD_TMSS_SEGA, uint8(v>>8))
			bus.TMSS.WriteSignature(addr-MD_TMSS_SEGA+1, uint8(v))
			return true
		},
	})

	bus.MapRegion(&BusRegion{
		Name: "tmss bank", Owner: "tmss", Start: MD_TMSS_BANK, End: MD_TMSS_BANK + 1,
		Read8:  func(addr uint32) (uint8, bool) { return 0xFF, true },
		Read16: func(addr uint32) (uint16, bool) { return 0xFFFF, true },
		Write8: func(addr uint32, v uint8) bool {
			if addr&1 != 0 {
				bus.TMSS.WriteBankSelect(v)
			}
			return true
		},
		Write16: func(addr uint32, v uint16) bool { bus.TMSS.WriteBankSelect(uint8(v)); return true },
	})

	bus.MapRegion(&BusRegion{
		Name: "vdp", Owner: "vdp", Start: MD_VDP_START, End: MD_VDP_END,
		Read8:   bus.vdpRead8,
		Read16:  bus.vdpRead16,
		Write8:  bus.vdpWrite8,
		Write16: bus.vdpWrite16,
	})

	bus.MapRegion(&BusRegion{
		Name: "ram", Owner: "ram", Start: MD_RAM_START, End: MD_RAM_END,
		Read8: func(addr uint32) (uint8, bool) { return bus.ram[(addr&0xFFFF)^1], true },
		Read16: func(addr uint32) (uint16, bool) {
			return binary.LittleEndian.Uint16(bus.ram[addr&0xFFFE:]), true
		},
		Write8: func(addr uint32, v uint8) bool { bus.ram[(addr&0xFFFF)^1] = v; return true },
		Write16: func(addr uint32, v uint16) bool {
			binary.LittleEndian.PutUint16(bus.ram[addr&0xFFFE:], v)
			return true
		},
	})
}

// ------------------------------------------------------------------------------
// Cartridge space
// ------------------------------------------------------------------------------

// SetROM installs word swapped ROM storage. The image is mirrored up to the
// next power of two.
func (bus *MegaDriveBus) SetROM(storage []byte) {
	bus.rom = storage
	size := uint32(1)
	for size < uint32(len(storage)) {
		size <<= 1
	}
	bus.romMask = size - 1
	bus.Mapper.Enabled = len(storage) > MD_CART_END+1
	bus.Mapper.Reset()
}

// ROM returns the word swapped ROM storage.
func (bus *MegaDriveBus) ROM() []byte {
	return bus.rom
}

// RAM returns the word swapped work RAM.
func (bus *MegaDriveBus) RAM() []byte {
	return bus.ram[:]
}

func (bus *MegaDriveBus) romOffset(addr uint32) (uint32, bool) {
	addr = bus.Mapper.Translate(addr)
	off := addr & bus.romMask
	if off >= uint32(len(bus.rom)) {
		return 0, false
	}
	return off, true
}

func (bus *MegaDriveBus) cartRead8(addr uint32) uint8 {
	if bus.TMSS.bootROMVisible() {
		return bus.TMSS.read8(addr)
	}
	if bus.SRAM != nil && bus.SRAM.Visible(addr) {
		return bus.SRAM.Read8(addr)
	}
	off, ok := bus.romOffset(addr)
	if !ok {
		return 0xFF
	}
	return bus.rom[off^1]
}

func (bus *MegaDriveBus) cartRead16(addr uint32) uint16 {
	if bus.TMSS.bootROMVisible() {
		return bus.TMSS.read16(addr)
	}
	if bus.SRAM != nil && bus.SRAM.Visible(addr) {
		return uint16(bus.SRAM.Read8(addr))<<8 | uint16(bus.SRAM.Read8(addr+1))
	}
	off, ok := bus.romOffset(addr)
	if !ok {
		return 0xFFFF
	}
	return binary.LittleEndian.Uint16(bus.rom[off&^1:])
}

// ROM ignores writes, SRAM takes them when mapped and not protected.
func (bus *MegaDriveBus) cartWrite8(addr uint32, v uint8) {
	if bus.SRAM != nil && bus.SRAM.Visible(addr) {
		bus.SRAM.Write8(addr, v)
	}
}

func (bus *MegaDriveBus) cartWrite16(addr uint32, v uint16) {
	if bus.SRAM != nil && bus.SRAM.Visible(addr) {
		bus.SRAM.Write8(addr, uint8(v>>8))
		bus.SRAM.Write8(addr+1, uint8(v))
	}
}

// ------------------------------------------------------------------------------
// VDP ports
// ------------------------------------------------------------------------------

func mdVDPPort(addr uint32) (uint32, bool) {
	if addr&MD_VDP_MASK != MD_VDP_START {
		return 0, false
	}
	return addr & 0x1F, true
}

// vdpUsable reports whether TMSS lets the access through. The first blocked
// access is logged.
func (bus *MegaDriveBus) vdpUsable() bool {
	if bus.TMSS.VDPLocked() {
		bus.TMSS.warnLocked()
		return false
	}
	return bus.VDP != nil
}

func (bus *MegaDriveBus) vdpRead16(addr uint32) (uint16, bool) {
	port, ok := mdVDPPort(addr)
	if !ok {
		return 0, false
	}
	if port >= MD_VDP_PSG || !bus.vdpUsable() {
		return 0xFFFF, true
	}
	return bus.VDP.Read16(port &^ 1), true
}

func (bus *MegaDriveBus) vdpRead8(addr uint32) (uint8, bool) {
	port, ok := mdVDPPort(addr)
	if !ok {
		return 0, false
	}
	if port >= MD_VDP_PSG || !bus.vdpUsable() {
		return 0xFF, true
	}
	return bus.VDP.Read8(port), true
}

func (bus *MegaDriveBus) vdpWrite16(addr uint32, v uint16) bool {
	port, ok := mdVDPPort(addr)
	if !ok {
		return false
	}
	switch {
	case port >= MD_VDP_DEBUG:
	case port >= MD_VDP_PSG:
		if bus.PSG != nil {
			bus.PSG.Write(uint8(v))
		}
	case bus.vdpUsable():
		bus.VDP.Write16(port&^1, v)
	}
	return true
}

func (bus *MegaDriveBus) vdpWrite8(addr uint32, v uint8) bool {
	port, ok := mdVDPPort(addr)
	if !ok {
		return false
	}
	switch {
	case port >= MD_VDP_DEBUG:
	case port >= MD_VDP_PSG:
		if port&1 != 0 && bus.PSG != nil {
			bus.PSG.Write(v)
		}
	case bus.vdpUsable():
		bus.VDP.Write8(port, v)
	}
	return true
}

// ------------------------------------------------------------------------------
// Faulting access
// ------------------------------------------------------------------------------

func (bus *MegaDriveBus) unmapped(kind string, addr uint32) {
	if bus.Debug {
		fmt.Printf("MD bus: unmapped %s at $%06X\n", kind, addr)
	}
}

func (bus *MegaDriveBus) Read8WithFault(addr uint32) (uint8, BusFault) {
	addr &= M68K_ADDRESS_MASK
	if r := bus.region(addr); r != nil {
		if v, ok := r.Read8(addr); ok {
			return v, BusOK
		}
	}
	bus.unmapped("read", addr)
	return 0xFF, BusFaultUnmapped
}

func (bus *MegaDriveBus) Read16WithFault(addr uint32) (uint16, BusFault) {
	addr &= M68K_ADDRESS_MASK
	if addr&1 != 0 {
		return 0xFFFF, BusFaultMisaligned
	}
	if r := bus.region(addr); r != nil {
		if v, ok := r.Read16(addr); ok {
			return v, BusOK
		}
	}
	bus.unmapped("read", addr)
	return 0xFFFF, BusFaultUnmapped
}

func (bus *MegaDriveBus) Write8WithFault(addr uint32, value uint8) BusFault {
	addr &= M68K_ADDRESS_MASK
	if r := bus.region(addr); r != nil && r.Write8(addr, value) {
		return BusOK
	}
	bus.unmapped("write", addr)
	return BusFaultUnmapped
}

func (bus *MegaDriveBus) Write16WithFault(addr uint32, value uint16) BusFault {
	addr &= M68K_ADDRESS_MASK
	if addr&1 != 0 {
		return BusFaultMisaligned
	}
	if r := bus.region(addr); r != nil && r.Write16(addr, value) {
		return BusOK
	}
	bus.unmapped("write", addr)
	return BusFaultUnmapped
}

// ------------------------------------------------------------------------------
// Bus32
// ------------------------------------------------------------------------------

func (bus *MegaDriveBus) Read8(addr uint32) uint8 {
	v, _ := bus.Read8WithFault(addr)
	return v
}

// The Bus32 word and long accessors serve the debugger, scripts and DMA.
// They never raise: an odd address reads as open bus and a write to one is
// dropped, leaving memory as the faulting path would.

func (bus *MegaDriveBus) Read16(addr uint32) uint16 {
	v, _ := bus.Read16WithFault(addr)
	return v
}

func (bus *MegaDriveBus) Read32(addr uint32) uint32 {
	if addr&1 != 0 {
		return 0xFFFFFFFF
	}
	return uint32(bus.Read16(addr))<<16 | uint32(bus.Read16(addr+2))
}

func (bus *MegaDriveBus) Write8(addr uint32, value uint8) {
	bus.Write8WithFault(addr, value)
}

func (bus *MegaDriveBus) Write16(addr uint32, value uint16) {
	bus.Write16WithFault(addr, value)
}

func (bus *MegaDriveBus) Write32(addr uint32, value uint32) {
	if addr&1 != 0 {
		return
	}
	bus.Write16(addr, uint16(value>>16))
	bus.Write16(addr+2, uint16(value))
}

// Reset clears work RAM and returns the bank hardware to power-on state. ROM
// stays installed.
func (bus *MegaDriveBus) Reset() {
	clear(bus.ram[:])
	bus.Mapper.Reset()
	if bus.SRAM != nil {
		bus.SRAM.ResetMapping()
	}
}
