package main

import (
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/monitor"
	"github.com/thelolagemann/gbcore/internal/savestate"
	"github.com/thelolagemann/gbcore/pkg/audio"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	state := flag.String("state", "", "The state file to load")
	saveState := flag.String("save-state", "", "Write a state file on exit")
	compress := flag.Bool("compress", true, "Brotli compress saved states")
	cheatFile := flag.String("cheats", "", "Load and enable the cheats in a file")
	sram := flag.String("sram", "", "Battery save file, loaded on start and written on exit")
	frames := flag.Int("frames", 60, "The number of frames to run, 0 runs until interrupted")
	rate := flag.Int("rate", apu.DefaultSampleRate, "The audio sample rate")
	wavFile := flag.String("wav", "", "Record audio to a WAV file")
	plotFile := flag.String("plot", "", "Plot the recorded waveform to an image")
	play := flag.Bool("audio", false, "Play audio through the default device")
	volume := flag.Float64("volume", 1, "Playback volume, 0 to 1")
	mon := flag.Bool("monitor", false, "Start the interactive monitor")
	level := flag.String("log", "info", "The log level")
	debug := flag.Bool("debug", false, "Range check every memory access")
	flag.Parse()

	logger := log.New(log.WithLevel(*level))

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.WithSampleRate(uint32(*rate))}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if *state != "" {
		raw, err := savestate.ReadFile(*state)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithState(raw))
	}
	if *sram != "" {
		if ram, err := os.ReadFile(*sram); err == nil {
			opts = append(opts, gameboy.WithRAM(ram))
		} else if !os.IsNotExist(err) {
			logger.Fatal(err)
		}
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}

	record := *wavFile != "" || *plotFile != ""
	var buf *apu.SampleBuffer
	if record || *play {
		// enough for a few frames of slack
		buf = apu.NewSampleBuffer(*rate / 10)
		opts = append(opts, gameboy.WithSampleBuffer(buf))
	} else {
		opts = append(opts, gameboy.NoAudio())
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	if *cheatFile != "" {
		if err := gb.Cheats.LoadFile(*cheatFile); err != nil {
			logger.Fatal(err)
		}
		for _, c := range gb.Cheats.Cheats() {
			gb.Cheats.Enable(c.Name)
			logger.Infof("enabled cheat %s", c.Name)
		}
	}

	if *mon {
		if err := monitor.New(gb, monitor.WithLogger(logger)).Run(os.Stdin, os.Stdout, true); err != nil {
			logger.Errorf("monitor: %v", err)
		}
	} else {
		var player *audio.Player
		if *play {
			if player, err = audio.NewPlayer(buf, *rate); err != nil {
				logger.Errorf("unable to open audio device %s", err)
			} else {
				player.SetVolume(float32(*volume))
				player.Play()
				defer player.Close()
			}
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)

		var recording []apu.Frame
		start := time.Now()
	loop:
		for n := 0; *frames == 0 || n < *frames; n++ {
			select {
			case <-interrupt:
				break loop
			default:
			}

			// let the device drain the buffer before producing more
			for player != nil && buf.Len() > buf.Cap()/2 {
				time.Sleep(time.Millisecond)
			}
			gb.Frame()

			if record && player == nil {
				for f, ok := buf.Pull(); ok; f, ok = buf.Pull() {
					recording = append(recording, f)
				}
			}
		}
		logger.Infof("ran in %s", time.Since(start))

		if *wavFile != "" {
			if err := audio.SaveWAV(*wavFile, recording, *rate); err != nil {
				logger.Errorf("writing %s: %v", *wavFile, err)
			}
		}
		if *plotFile != "" {
			if err := audio.PlotWaveform(*plotFile, recording, *rate); err != nil {
				logger.Errorf("plotting %s: %v", *plotFile, err)
			}
		}
	}

	if *saveState != "" {
		if err := savestate.WriteFile(*saveState, gb.Save(), *compress); err != nil {
			logger.Errorf("saving state: %v", err)
		}
	}
	if *sram != "" && gb.Cart.Header().CartridgeType.Battery() {
		if err := os.WriteFile(*sram, gb.Cart.SaveRAM(), 0o644); err != nil {
			logger.Errorf("saving ram: %v", err)
		}
	}
}
