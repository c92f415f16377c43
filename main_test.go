package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions([]string{"game.bin"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.romPath != "game.bin" || opts.region != 0 || opts.pal || opts.tmss {
		t.Errorf("%+v", opts)
	}
	if opts.scale != VIDEO_DEFAULT_SCALE {
		t.Errorf("scale = %d", opts.scale)
	}
}

func TestParseOptionsFlags(t *testing.T) {
	opts, err := parseOptions([]string{
		"-region", "eu", "-pal", "-bootrom", "boot.bin", "-frames", "0x10",
		"-headless", "-scale", "12", "rom.md",
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.region != RegionEurope || !opts.pal {
		t.Errorf("region %v pal %v", opts.region, opts.pal)
	}
	if !opts.tmss {
		t.Error("-bootrom must enable TMSS")
	}
	if opts.frames != 16 {
		t.Errorf("frames = %d", opts.frames)
	}
	if opts.scale != VIDEO_MAX_SCALE {
		t.Errorf("scale = %d", opts.scale)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"a.bin", "b.bin"},
		{"-region", "mars", "a.bin"},
		{"-frames", "lots", "a.bin"},
	} {
		if _, err := parseOptions(args); err == nil {
			t.Errorf("%v accepted", args)
		}
	}
	if _, err := parseOptions([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h returned %v", err)
	}
}

func TestMachineConfigReadsBootROM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boot.bin")
	if err := os.WriteFile(path, make([]byte, 2048), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := parseOptions([]string{"-bootrom", path, "rom.bin"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := opts.machineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.BootROM) != 2048 || !cfg.TMSS || cfg.SampleRate != PSG_SAMPLE_RATE {
		t.Errorf("%d byte boot ROM, TMSS %v, rate %d", len(cfg.BootROM), cfg.TMSS, cfg.SampleRate)
	}

	opts.bootROM = filepath.Join(t.TempDir(), "missing.bin")
	if _, err := opts.machineConfig(); err == nil {
		t.Error("missing boot ROM accepted")
	}
}

func TestRunHeadlessNeedsFrames(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x60FE)
	if err := run(m, &options{headless: true}); err == nil {
		t.Fatal("headless run without -frames accepted")
	}
	if err := run(m, &options{headless: true, frames: 2}); err != nil {
		t.Fatal(err)
	}
	if m.Frames != 2 {
		t.Errorf("Frames = %d", m.Frames)
	}
}

func TestRunScriptOnly(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x60FE)
	path := filepath.Join(t.TempDir(), "s.lua")
	if err := os.WriteFile(path, []byte(`md.frame(1)`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(m, &options{script: path}); err != nil {
		t.Fatal(err)
	}
	if m.Frames != 1 {
		t.Errorf("Frames = %d", m.Frames)
	}
}
