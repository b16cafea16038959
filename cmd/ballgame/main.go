package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nikodemek/ballgame/core/engine"
	"github.com/Nikodemek/ballgame/internal/audio"
	"github.com/Nikodemek/ballgame/internal/config"
	"github.com/Nikodemek/ballgame/internal/kernel"
	game_log "github.com/Nikodemek/ballgame/internal/log"
	"github.com/Nikodemek/ballgame/internal/term"
	"github.com/Nikodemek/ballgame/internal/ui"
)

const buzzerVolume = 0.3

var (
	cfgPath  = flag.String("config", "ballgame.ini", "INI file with overrides; missing is fine")
	frontend = flag.String("frontend", "", "board to run on: ebiten or term (default from config)")
	level    = flag.String("log", "", "log level: debug, info, warn, error, off")
	logFile  = flag.String("logfile", "", "write the log here instead of stderr")
	writeCfg = flag.Bool("write-config", false, "write the effective config to -config and exit")
	panel    = flag.Bool("panel", false, "open the fyne control panel (build with -tags fyne)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *frontend != "" {
		cfg.Frontend.Kind = *frontend
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if *writeCfg {
		if err := config.Save(*cfgPath, cfg); err != nil {
			log.Fatal(err)
		}
		color.Green("wrote %s", *cfgPath)
		return
	}

	out, closeLog, err := logOutput(cfg.Frontend.Kind)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	logger := game_log.New(out, game_log.LevelFromString(cfg.Log.Level))

	k := kernel.New(cfg.Kernel.Tick, cfg.Kernel.MaxTasks, logger)
	var snd engine.Sounder
	if cfg.Frontend.Sound {
		snd = audio.NewBuzzer(buzzerVolume, logger)
	}

	color.New(color.FgGreen, color.Bold).Printf("Ball The Game %s\n", engine.Version)

	var ctrl *engine.Controller
	switch cfg.Frontend.Kind {
	case "ebiten":
		ctrl, err = runEbiten(cfg, k, snd, logger)
	case "term":
		ctrl, err = runTerm(cfg, k, snd, logger)
	default:
		err = fmt.Errorf("unknown frontend %q", cfg.Frontend.Kind)
	}
	if err != nil {
		log.Fatal(err)
	}
	color.Cyan("last score: %d", ctrl.Score())
}

// logOutput keeps the terminal board clean by discarding the log unless a
// file is given.
func logOutput(kind string) (io.Writer, func(), error) {
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if kind == "term" {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func runEbiten(cfg config.Config, k *kernel.Kernel, snd engine.Sounder, logger *game_log.Logger) (*engine.Controller, error) {
	board := ui.NewBoard(cfg)
	ctrl, err := engine.New(cfg, board.Hardware(k, snd), logger)
	if err != nil {
		return nil, err
	}
	ctrl.ShowWelcome()
	ctx, cancel := context.WithCancel(context.Background())
	keysDone := serveKeys(ctx, ctrl, board.Keys)
	defer shutdown(ctrl, cancel, keysDone)

	game := ui.NewGame(board, ctrl, logger)
	if *panel {
		ui.RunFynePanel(ctrl, board.Keys)
	}
	ebiten.SetWindowSize(game.WindowSize(cfg.Frontend.Scale))
	ebiten.SetWindowTitle("Ball The Game")
	if err := ebiten.RunGame(game); err != nil {
		return ctrl, fmt.Errorf("run game: %w", err)
	}
	return ctrl, nil
}

func runTerm(cfg config.Config, k *kernel.Kernel, snd engine.Sounder, logger *game_log.Logger) (*engine.Controller, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	defer s.Fini()
	s.HideCursor()

	var ctrl *engine.Controller
	board := term.New(s, cfg, func() string { return status(ctrl) }, logger)
	ctrl, err = engine.New(cfg, board.Hardware(k, snd), logger)
	if err != nil {
		return nil, err
	}
	ctrl.ShowWelcome()
	ctx, cancel := context.WithCancel(context.Background())
	keysDone := serveKeys(ctx, ctrl, board)
	defer shutdown(ctrl, cancel, keysDone)
	board.Run(ctx)
	return ctrl, nil
}

func status(ctrl *engine.Controller) string {
	if ctrl == nil {
		return ""
	}
	if ctrl.Running() {
		return fmt.Sprintf("time %d  delay %d", ctrl.Elapsed(), ctrl.Delay())
	}
	return fmt.Sprintf("SCORE %d   space: start/stop  arrows: tilt  q: quit", ctrl.Score())
}

func serveKeys(ctx context.Context, ctrl *engine.Controller, keys engine.Keypad) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.ServeKeys(ctx, keys)
	}()
	return done
}

// shutdown stops the key loop first so it cannot start a new session, then
// stops the running one and waits for its tasks.
func shutdown(ctrl *engine.Controller, cancel context.CancelFunc, keysDone <-chan struct{}) {
	cancel()
	<-keysDone
	ctrl.Stop()
	ctrl.Wait()
}
