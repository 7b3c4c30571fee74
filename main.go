package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/config"
	"putmop/pkg/game/devtools"
	"putmop/pkg/game/gameplay"
	"putmop/pkg/game/layout"
	"putmop/pkg/game/locale"
	"putmop/pkg/game/renderer"
	ebitenrenderer "putmop/pkg/game/renderer/ebiten"
	"putmop/pkg/game/renderer/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file")
	seed := flag.Int64("seed", 0, "layout seed (0 picks one from the clock)")
	width := flag.Int("width", 0, "map width in cells (0 fits the display)")
	height := flag.Int("height", 0, "map height in cells (0 fits the display)")
	backend := flag.String("renderer", config.RendererTUI, "display backend: tui or ebiten")
	logFile := flag.String("log", "", "write the debug log to this file")
	botsMode := flag.String("bots", string(layout.BotsRandom), "bot programs: random or scripted")
	dumpPath := flag.String("dump", "", "write a world dump to this file on exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "renderer":
			cfg.Renderer = *backend
		case "log":
			cfg.LogFile = *logFile
		case "bots":
			cfg.Bots.Mode = *botsMode
		}
	})
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	if err := run(cfg, *dumpPath); err != nil {
		if errors.Is(err, gameplay.ErrFault) {
			fmt.Fprintln(os.Stderr, locale.Get("MEMORY_FAULT", err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		log.Printf("exit: %v", err)
		closeLog()
		os.Exit(1)
	}
	fmt.Println(locale.Get("GOODBYE"))
}

// setupLogging sends the log to path, or discards it: the terminal belongs
// to the renderer.
func setupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func run(cfg config.Config, dumpPath string) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var r renderer.Renderer
	var windowed *ebitenrenderer.EbitenRenderer
	switch cfg.Renderer {
	case config.RendererEbiten:
		windowed = ebitenrenderer.New(cfg.Width, cfg.Height)
		r = windowed
	default:
		r = tui.New()
	}

	if err := r.Init(); err != nil {
		return err
	}
	defer r.Close()

	cols, rows := r.Size()
	if cfg.Width > 0 {
		cols = cfg.Width
	}
	if cfg.Height > 0 {
		rows = cfg.Height
	}

	s, err := gameplay.BuildSession(cfg.LayoutOptions(), engineworld.NewGrid(rows, cols), seed)
	if errors.Is(err, layout.ErrCapacity) {
		return errors.New(locale.Get("TERMINAL_TOO_SMALL", cols, rows))
	}
	if err != nil {
		return err
	}
	log.Printf("session started: %dx%d map, %s renderer", cols, rows, cfg.Renderer)

	if dumpPath != "" {
		defer func() {
			path, err := devtools.DumpWorldToFile(s, dumpPath)
			if err != nil {
				log.Printf("world dump failed: %v", err)
				return
			}
			log.Printf("world dumped to %s", path)
		}()
	}

	if windowed != nil {
		return windowed.Run(func() error { return gameplay.Run(s, windowed) })
	}
	return gameplay.Run(s, r)
}
