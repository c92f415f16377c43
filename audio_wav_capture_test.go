package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWAVCaptureWritesPCM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	c, err := NewWAVCapture(path, PSG_SAMPLE_RATE)
	if err != nil {
		t.Fatal(err)
	}
	const n = wavChunkFrames + 904
	for i := 0; i < n; i++ {
		c.Push(0.5)
	}
	c.Push(3) // clamped
	if c.Samples() != n+1 {
		t.Fatalf("Samples = %d", c.Samples())
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("header %q", data[:12])
	}
	if len(data) != 44+(n+1)*2 {
		t.Fatalf("file is %d bytes", len(data))
	}
	if s := int16(binary.LittleEndian.Uint16(data[44:])); s != 16383 {
		t.Errorf("first sample = %d", s)
	}
	if s := int16(binary.LittleEndian.Uint16(data[len(data)-2:])); s != 32767 {
		t.Errorf("clamped sample = %d", s)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("decoder rejects the file")
	}
	if dec.SampleRate != PSG_SAMPLE_RATE || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("format %d Hz %d ch %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
}

func TestWAVCaptureFromPSG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psg.wav")
	c, err := NewWAVCapture(path, PSG_SAMPLE_RATE)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPSG(MD_MASTER_CLOCK_NTSC, PSG_SAMPLE_RATE)
	c.Attach(p)
	p.Write(0x90)
	p.Advance(20000)
	if c.Samples() == 0 || c.Samples() != p.Buffered() {
		t.Errorf("captured %d, PSG buffered %d", c.Samples(), p.Buffered())
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWAVCaptureBadPath(t *testing.T) {
	if _, err := NewWAVCapture(filepath.Join(t.TempDir(), "missing", "x.wav"), 44100); err == nil {
		t.Fatal("created a file in a missing directory")
	}
}
