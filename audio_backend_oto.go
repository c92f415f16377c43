//go:build !headless

// audio_backend_oto.go - PSG sample output through oto

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
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// PSGPlayer pulls mono float32 samples from a SampleSource on oto's
// goroutine. The emulation side only fills the PSG ring.
type PSGPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	src    atomic.Pointer[SampleSource]
	buf    []float32

	// Underruns counts reads that found fewer samples than oto asked for.
	Underruns atomic.Uint64

	mu      sync.Mutex
	started bool
}

func NewPSGPlayer(sampleRate int) (*PSGPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &PSGPlayer{ctx: ctx, buf: make([]float32, PSG_RING_SIZE)}, nil
}

// Attach connects the sound source and creates the oto player.
func (pp *PSGPlayer) Attach(src SampleSource) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.src.Store(&src)
	if pp.player == nil {
		pp.player = pp.ctx.NewPlayer(pp)
	}
}

func (pp *PSGPlayer) Read(p []byte) (int, error) {
	want := len(p) / 4
	src := pp.src.Load()
	if src == nil || want == 0 {
		clear(p)
		return len(p), nil
	}
	if len(pp.buf) < want {
		pp.buf = make([]float32, want)
	}
	samples := pp.buf[:want]
	if got := (*src).ReadSamples(samples); got < want {
		pp.Underruns.Add(1)
	}
	return copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), want*4)), nil
}

func (pp *PSGPlayer) Start() {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	if !pp.started && pp.player != nil {
		pp.player.Play()
		pp.started = true
	}
}

func (pp *PSGPlayer) Stop() {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	if pp.started {
		pp.player.Pause()
		pp.started = false
	}
}

func (pp *PSGPlayer) Close() {
	pp.Stop()
	pp.mu.Lock()
	defer pp.mu.Unlock()
	if pp.player != nil {
		pp.player.Close()
		pp.player = nil
	}
}

func (pp *PSGPlayer) IsStarted() bool {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	return pp.started
}
