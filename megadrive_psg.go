// megadrive_psg.go - SN76489 programmable sound generator

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
The PSG is written through VDP port $11 (and $7F11 from the Z80 side). It
has three square wave tone channels with 10-bit periods and a noise channel
driven by a 16-bit LFSR tapped at bits 0 and 3. Attenuation is 4 bits in
2dB steps, 15 is silence.

Samples are rendered as float32 into a ring buffer drained by the audio
backend and optionally copied to a tap for WAV capture.
*/

package main

import (
	"math"
	"sync"
)

const (
	MD_MASTER_CLOCK_NTSC = 53693175
	MD_MASTER_CLOCK_PAL  = 53203424
	MD_CPU_DIVIDER       = 7
	MD_PSG_DIVIDER       = 15
	MD_PSG_TONE_DIVIDER  = 16

	PSG_SAMPLE_RATE = 44100
	PSG_RING_SIZE   = 8192
	PSG_LFSR_RESET  = 0x8000
	PSG_NOISE_TAPS  = 0x0009
	PSG_CHANNELS    = 4
	PSG_NOISE_CH    = 3
	PSG_SILENT      = 0x0F
	PSG_CHANNEL_AMP = 0.25
)

// SampleSource is drained by audio output backends.
type SampleSource interface {
	ReadSample() float32
	ReadSamples(dst []float32) int
}

var psgVolumeTable [16]float32

func init() {
	for i := 0; i < PSG_SILENT; i++ {
		psgVolumeTable[i] = float32(math.Pow(10, -2*float64(i)/20)) * PSG_CHANNEL_AMP
	}
}

type PSG struct {
	mu sync.Mutex

	tone    [3]uint16
	atten   [PSG_CHANNELS]uint8
	noise   uint8
	latched uint8 // channel<<1 | volume flag

	counter  [PSG_CHANNELS]int
	polarity [PSG_CHANNELS]bool
	lfsr     uint16

	// ticks of the /16 tone clock per CPU cycle and per output sample
	ticksPerCycle  float64
	ticksPerSample float64
	pending        float64
	phase          float64

	ring       [PSG_RING_SIZE]float32
	head, tail int
	count      int

	// Tap receives every generated sample when set.
	Tap func(sample float32)
}

// NewPSG returns a PSG clocked from the given master clock.
func NewPSG(masterClock int, sampleRate int) *PSG {
	p := &PSG{}
	p.SetClock(masterClock, sampleRate)
	p.Reset()
	return p
}

// SetClock rescales the output sample rate for a new master clock.
func (p *PSG) SetClock(masterClock int, sampleRate int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	psgClock := float64(masterClock) / MD_PSG_DIVIDER / MD_PSG_TONE_DIVIDER
	p.ticksPerCycle = psgClock / (float64(masterClock) / MD_CPU_DIVIDER)
	p.ticksPerSample = psgClock / float64(sampleRate)
}

func (p *PSG) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tone = [3]uint16{}
	p.atten = [PSG_CHANNELS]uint8{PSG_SILENT, PSG_SILENT, PSG_SILENT, PSG_SILENT}
	p.noise = 0
	p.latched = 0
	p.counter = [PSG_CHANNELS]int{}
	p.polarity = [PSG_CHANNELS]bool{}
	p.lfsr = PSG_LFSR_RESET
	p.pending = 0
	p.phase = 0
	p.head, p.tail, p.count = 0, 0, 0
}

// Write handles a latch/data byte. Bit 7 set latches a channel and register
// type and writes the low four bits; otherwise the byte updates the latched
// register (upper six period bits for tone channels).
func (p *PSG) Write(v uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v&0x80 != 0 {
		p.latched = (v >> 4) & 7
		p.writeLatched(v&0x0F, false)
		return
	}
	p.writeLatched(v&0x3F, true)
}

func (p *PSG) writeLatched(data uint8, high bool) {
	ch := p.latched >> 1
	if p.latched&1 != 0 {
		p.atten[ch] = data & 0x0F
		return
	}
	if ch == PSG_NOISE_CH {
		p.noise = data & 0x07
		p.lfsr = PSG_LFSR_RESET
		return
	}
	if high {
		p.tone[ch] = p.tone[ch]&0x000F | uint16(data)<<4
	} else {
		p.tone[ch] = p.tone[ch]&0x03F0 | uint16(data)
	}
}

// Tone returns the period of tone channel ch.
func (p *PSG) Tone(ch int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tone[ch]
}

// Attenuation returns the 4-bit attenuation of channel ch.
func (p *PSG) Attenuation(ch int) uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.atten[ch]
}

func (p *PSG) noisePeriod() int {
	switch p.noise & 3 {
	case 0:
		return 0x10
	case 1:
		return 0x20
	case 2:
		return 0x40
	}
	return int(p.tone[2])
}

// tick advances every channel by one tone clock.
func (p *PSG) tick() {
	for ch := 0; ch < 3; ch++ {
		p.counter[ch]--
		if p.counter[ch] <= 0 {
			period := int(p.tone[ch])
			if period == 0 {
				period = 1
			}
			p.counter[ch] = period
			p.polarity[ch] = !p.polarity[ch]
		}
	}
	p.counter[PSG_NOISE_CH]--
	if p.counter[PSG_NOISE_CH] <= 0 {
		period := p.noisePeriod()
		if period == 0 {
			period = 1
		}
		p.counter[PSG_NOISE_CH] = period
		p.polarity[PSG_NOISE_CH] = !p.polarity[PSG_NOISE_CH]
		if p.polarity[PSG_NOISE_CH] {
			var in uint16
			if p.noise&4 != 0 {
				in = uint16(bits16Parity(p.lfsr & PSG_NOISE_TAPS))
			} else {
				in = p.lfsr & 1
			}
			p.lfsr = p.lfsr>>1 | in<<15
		}
	}
}

func bits16Parity(v uint16) uint16 {
	v ^= v >> 8
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v & 1
}

func (p *PSG) mix() float32 {
	var out float32
	for ch := 0; ch < 3; ch++ {
		if p.polarity[ch] || p.tone[ch] <= 1 {
			out += psgVolumeTable[p.atten[ch]]
		}
	}
	if p.lfsr&1 != 0 {
		out += psgVolumeTable[p.atten[PSG_NOISE_CH]]
	}
	return out
}

// Advance runs the PSG for the given number of CPU cycles and queues the
// samples that fall inside that time.
func (p *PSG) Advance(cpuCycles int) {
	p.mu.Lock()
	p.pending += float64(cpuCycles) * p.ticksPerCycle
	var out []float32
	for p.pending >= 1 {
		p.tick()
		p.pending--
		p.phase++
		if p.phase >= p.ticksPerSample {
			p.phase -= p.ticksPerSample
			s := p.mix()
			p.push(s)
			if p.Tap != nil {
				out = append(out, s)
			}
		}
	}
	tap := p.Tap
	p.mu.Unlock()
	for _, s := range out {
		tap(s)
	}
}

func (p *PSG) push(s float32) {
	if p.count == PSG_RING_SIZE {
		p.tail = (p.tail + 1) % PSG_RING_SIZE
		p.count--
	}
	p.ring[p.head] = s
	p.head = (p.head + 1) % PSG_RING_SIZE
	p.count++
}

// Buffered returns the number of queued samples.
func (p *PSG) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// ReadSample pops one queued sample, or silence when the ring is empty.
func (p *PSG) ReadSample() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count == 0 {
		return 0
	}
	s := p.ring[p.tail]
	p.tail = (p.tail + 1) % PSG_RING_SIZE
	p.count--
	return s
}

// ReadSamples fills dst from the ring and returns how many samples were
// queued. The rest of dst is zeroed.
func (p *PSG) ReadSamples(dst []float32) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := min(len(dst), p.count)
	for i := 0; i < n; i++ {
		dst[i] = p.ring[p.tail]
		p.tail = (p.tail + 1) % PSG_RING_SIZE
	}
	p.count -= n
	clear(dst[n:])
	return n
}
