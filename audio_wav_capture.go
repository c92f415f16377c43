// audio_wav_capture.go - PSG output capture to 16-bit mono WAV

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
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth    = 16
	wavPCMFormat   = 1
	wavChunkFrames = 4096
)

// WAVCapture receives samples from the PSG tap and streams them to disk in
// chunks.
type WAVCapture struct {
	file    *os.File
	enc     *wav.Encoder
	buf     *audio.IntBuffer
	written int
	err     error
}

// NewWAVCapture creates path and prepares a mono encoder at sampleRate.
func NewWAVCapture(path string, sampleRate int) (*WAVCapture, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating WAV file: %w", err)
	}
	return &WAVCapture{
		file: f,
		enc:  wav.NewEncoder(f, sampleRate, wavBitDepth, 1, wavPCMFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           make([]int, 0, wavChunkFrames),
			SourceBitDepth: wavBitDepth,
		},
	}, nil
}

// Attach installs the capture as the PSG sample tap.
func (c *WAVCapture) Attach(p *PSG) {
	p.mu.Lock()
	p.Tap = c.Push
	p.mu.Unlock()
}

// Push appends one float sample in [-1, 1].
func (c *WAVCapture) Push(s float32) {
	if c.err != nil {
		return
	}
	s = max(-1, min(1, s))
	c.buf.Data = append(c.buf.Data, int(s*32767))
	if len(c.buf.Data) >= wavChunkFrames {
		c.flush()
	}
}

func (c *WAVCapture) flush() {
	if len(c.buf.Data) == 0 {
		return
	}
	if err := c.enc.Write(c.buf); err != nil {
		c.err = fmt.Errorf("writing WAV data: %w", err)
	}
	c.written += len(c.buf.Data)
	c.buf.Data = c.buf.Data[:0]
}

// Samples returns the number of samples handed to the encoder so far.
func (c *WAVCapture) Samples() int {
	return c.written + len(c.buf.Data)
}

// Close flushes pending samples, finalises the header and closes the file.
func (c *WAVCapture) Close() error {
	c.flush()
	if err := c.enc.Close(); err != nil && c.err == nil {
		c.err = fmt.Errorf("finalising WAV: %w", err)
	}
	if err := c.file.Close(); err != nil && c.err == nil {
		c.err = err
	}
	return c.err
}
