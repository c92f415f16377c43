// main.go - IntuitionDrive entry point

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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nA Sega Mega Drive / Genesis 68000 system emulator.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionDrive")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
}

type options struct {
	romPath  string
	region   Region
	pal      bool
	tmss     bool
	bootROM  string
	frames   uint64
	headless bool
	script   string
	monitor  bool
	wavPath  string
	trace    bool
	debug    bool
	stats    string
	memviz   string
	scale    int
}

// frameCount is a flag.Value that takes decimal, hex (0x) or octal counts.
type frameCount uint64

func (f *frameCount) String() string { return strconv.FormatUint(uint64(*f), 10) }

func (f *frameCount) Set(v string) error {
	n, err := strconv.ParseUint(v, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid frame count %q", v)
	}
	*f = frameCount(n)
	return nil
}

func parseOptions(args []string) (*options, error) {
	opts := &options{}
	var region string
	var frames frameCount

	flagSet := flag.NewFlagSet("intuition_drive", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&region, "region", "auto", "Console region: auto, jp, us or eu")
	flagSet.BoolVar(&opts.pal, "pal", false, "Force 50Hz PAL timing")
	flagSet.BoolVar(&opts.tmss, "tmss", false, "Enable the TMSS lock")
	flagSet.StringVar(&opts.bootROM, "bootrom", "", "TMSS boot ROM image (implies -tmss)")
	flagSet.Var(&frames, "frames", "Stop after this many frames (0 runs forever)")
	flagSet.BoolVar(&opts.headless, "headless", false, "Run without a window or audio")
	flagSet.StringVar(&opts.script, "script", "", "Lua script to run against the machine")
	flagSet.BoolVar(&opts.monitor, "monitor", false, "Start in the machine monitor")
	flagSet.StringVar(&opts.wavPath, "wav", "", "Capture PSG output to a WAV file")
	flagSet.BoolVar(&opts.trace, "trace", false, "Log every executed instruction")
	flagSet.BoolVar(&opts.debug, "debug", false, "Log unmapped and locked bus accesses")
	flagSet.StringVar(&opts.stats, "statsview", "", "Serve runtime statistics on this address (e.g. localhost:18066)")
	flagSet.StringVar(&opts.memviz, "memviz", "", "Write a graphviz dump of the machine on exit")
	flagSet.IntVar(&opts.scale, "scale", VIDEO_DEFAULT_SCALE, "Window scale factor")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./intuition_drive [options] rom.bin")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() != 1 {
		return nil, errors.New("expected exactly one ROM file")
	}
	opts.romPath = flagSet.Arg(0)
	opts.frames = uint64(frames)
	opts.scale = ClampScale(opts.scale)
	opts.tmss = opts.tmss || opts.bootROM != ""

	if region != "auto" {
		r, err := ParseRegion(region)
		if err != nil {
			return nil, err
		}
		opts.region = r
	}
	return opts, nil
}

func (o *options) machineConfig() (MachineConfig, error) {
	cfg := MachineConfig{
		Region:     o.region,
		PAL:        o.pal,
		TMSS:       o.tmss,
		SampleRate: PSG_SAMPLE_RATE,
		Trace:      o.trace,
		Debug:      o.debug,
	}
	if o.bootROM != "" {
		data, err := os.ReadFile(o.bootROM)
		if err != nil {
			return cfg, err
		}
		cfg.BootROM = data
	}
	return cfg, nil
}

func main() {
	boilerPlate()

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Usage: ./intuition_drive [options] rom.bin (-h for help)")
		os.Exit(1)
	}

	cfg, err := opts.machineConfig()
	if err != nil {
		fmt.Printf("Error reading boot ROM: %v\n", err)
		os.Exit(1)
	}
	rom, err := os.ReadFile(opts.romPath)
	if err != nil {
		fmt.Printf("Error reading ROM: %v\n", err)
		os.Exit(1)
	}

	machine, err := NewMachine(cfg)
	if err != nil {
		fmt.Printf("Error creating machine: %v\n", err)
		os.Exit(1)
	}
	if err := machine.LoadCartridge(rom); err != nil {
		fmt.Printf("Error loading cartridge: %v\n", err)
		os.Exit(1)
	}

	if opts.wavPath != "" {
		capture, err := NewWAVCapture(opts.wavPath, cfg.SampleRate)
		if err != nil {
			fmt.Printf("Error creating WAV capture: %v\n", err)
			os.Exit(1)
		}
		capture.Attach(machine.PSG)
		defer func() {
			if err := capture.Close(); err != nil {
				fmt.Printf("Error closing WAV capture: %v\n", err)
			}
		}()
	}

	if opts.stats != "" {
		stats := LaunchStatsview(opts.stats, os.Stdout)
		defer stats.Stop()
	}

	if opts.memviz != "" {
		defer writeMemviz(opts.memviz, machine)
	}

	if !opts.headless {
		player, err := NewPSGPlayer(cfg.SampleRate)
		if err != nil {
			fmt.Printf("Audio unavailable: %v\n", err)
		} else {
			player.Attach(machine.PSG)
			player.Start()
			defer player.Close()
		}
	}

	if err := run(machine, opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run picks the front end. A script runs first; the monitor, a headless
// frame loop or the window follow.
func run(machine *Machine, opts *options) error {
	if opts.script != "" {
		host := NewLuaHost(machine)
		defer host.Close()
		if err := host.RunFile(opts.script); err != nil {
			return err
		}
		if !opts.monitor && opts.frames == 0 {
			return nil
		}
	}

	if opts.monitor {
		mon := NewMachineMonitor(machine)
		mon.Script = func(path string) error {
			host := NewLuaHost(machine)
			defer host.Close()
			return host.RunFile(path)
		}
		return RunMonitorTerminal(mon, os.Stdin, os.Stdout)
	}

	if opts.headless {
		if opts.frames == 0 {
			return errors.New("-headless needs -frames")
		}
		out := NewHeadlessVideoOutput()
		if err := RunHeadless(machine, out, opts.frames); err != nil {
			return err
		}
		fmt.Printf("Ran %d frames, PC $%06X, frame CRC $%08X\n", out.GetFrameCount(), machine.CPU.PC, out.Checksum())
		return nil
	}

	eo, err := NewEbitenOutput()
	if err != nil {
		return err
	}
	eo.SetScale(opts.scale)
	// F12 shows registers, disassembly and monitor output over the game.
	return eo.Run(machine, NewMachineMonitor(machine), opts.frames)
}

func writeMemviz(path string, machine *Machine) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("Error creating memviz output: %v\n", err)
		return
	}
	defer f.Close()
	WriteMachineGraph(f, machine)
}
