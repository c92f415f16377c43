// megadrive_tmss.go - Trademark Security System latch

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
	"fmt"
)

const (
	MD_BOOTROM_MAX_SIZE = 0x4000
)

// TMSSLatch models the security hardware of later Mega Drive models. While
// the boot ROM is installed and $A14101 bit 0 is clear the boot ROM shadows
// the whole cartridge space. The VDP ignores the 68000 until "SEGA" has been
// written to $A14000.
type TMSSLatch struct {
	Enabled bool

	bootROM    []byte // word swapped
	bootMask   uint32
	signature  [4]byte
	unlocked   bool
	cartMapped bool
	warned     bool
}

func NewTMSSLatch(enabled bool) *TMSSLatch {
	return &TMSSLatch{Enabled: enabled}
}

// LoadBootROM installs a boot ROM image. The size must be a power of two no
// larger than 16KB; the image mirrors across the cartridge space.
func (t *TMSSLatch) LoadBootROM(data []byte) error {
	n := len(data)
	if n < 2 || n > MD_BOOTROM_MAX_SIZE || n&(n-1) != 0 {
		return fmt.Errorf("boot ROM is %d bytes: %w", n, ErrBootROMSize)
	}
	t.bootROM = swapWords(data)
	t.bootMask = uint32(n - 1)
	t.Enabled = true
	return nil
}

func (t *TMSSLatch) HasBootROM() bool {
	return len(t.bootROM) > 0
}

// Unlocked reports whether the "SEGA" signature has been written.
func (t *TMSSLatch) Unlocked() bool {
	return t.unlocked
}

// CartridgeMapped reports whether $A14101 bit 0 has switched the boot ROM out.
func (t *TMSSLatch) CartridgeMapped() bool {
	return t.cartMapped
}

func (t *TMSSLatch) bootROMVisible() bool {
	return t.Enabled && len(t.bootROM) > 0 && !t.cartMapped
}

// VDPLocked reports whether VDP accesses from the 68000 are ignored.
func (t *TMSSLatch) VDPLocked() bool {
	return t.Enabled && !t.unlocked
}

func (t *TMSSLatch) warnLocked() {
	if !t.warned {
		t.warned = true
		fmt.Printf("TMSS: VDP access before \"SEGA\" unlock ignored\n")
	}
}

func (t *TMSSLatch) read8(addr uint32) uint8 {
	return t.bootROM[(addr&t.bootMask)^1]
}

func (t *TMSSLatch) read16(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(t.bootROM[addr&t.bootMask&^1:])
}

func (t *TMSSLatch) ReadSignature(offset uint32) uint8 {
	return t.signature[offset&3]
}

func (t *TMSSLatch) ReadSignatureWord(offset uint32) uint16 {
	offset &= 2
	return uint16(t.signature[offset])<<8 | uint16(t.signature[offset+1])
}

// WriteSignature stores one byte of the $A14000 register. The VDP unlocks
// as soon as the register holds "SEGA".
func (t *TMSSLatch) WriteSignature(offset uint32, v uint8) {
	t.signature[offset&3] = v
	t.unlocked = string(t.signature[:]) == "SEGA"
}

func (t *TMSSLatch) WriteBankSelect(v uint8) {
	t.cartMapped = v&1 != 0
}

// Reset returns the latch to power-on state. The boot ROM stays installed.
func (t *TMSSLatch) Reset() {
	t.signature = [4]byte{}
	t.unlocked = false
	t.cartMapped = false
	t.warned = false
}

// swapWords converts big-endian 68000 data to word swapped host storage.
// An odd trailing byte is padded with zero.
func swapWords(data []byte) []byte {
	out := make([]byte, (len(data)+1)&^1)
	for i := 0; i < len(data); i++ {
		out[i^1] = data[i]
	}
	return out
}
