package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/milk9111/gravwell/config"
)

func main() {
	configPath := flag.String("config", "gravwell.toml", "path to the TOML config file")
	sceneName := flag.String("scene", "", "scene name in prefabs/scenes (basename, .yaml optional)")
	fps := flag.Int("fps", 30, "frames per second")
	logFile := flag.String("log", "termview.log", "log file (the terminal is used for drawing)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *sceneName != "" {
		cfg.Scene.Initial = *sceneName
	}
	cfg.Logging.File = *logFile

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("create screen", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		log.Fatal("init screen", zap.Error(err))
	}
	defer screen.Fini()

	v := newViewer(screen, cfg, log)
	if err := v.loadScene(cfg.Scene.Initial); err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *fps <= 0 {
		*fps = 30
	}
	v.run(time.Second / time.Duration(*fps))
}
