package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"chosenoffset.com/blockout/internal/game"
	"chosenoffset.com/blockout/internal/physics/aabb"
	ebitenrender "chosenoffset.com/blockout/internal/render/ebiten"
	"chosenoffset.com/blockout/internal/simulation"
	"chosenoffset.com/blockout/internal/world"
)

func main() {
	if err := run(); err != nil {
		slog.Error("blockout exited", "error", err)
		os.Exit(1)
	}
	slog.Info("shut down cleanly")
}

func run() error {
	configPath := flag.String("config", "blockout.yaml", "simulation rules file (optional)")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the clock")
	screenWidth := flag.Int("width", 1280, "window width")
	screenHeight := flag.Int("height", 720, "window height")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	config, err := simulation.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", *configPath, err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", *seed, "width", *screenWidth, "height", *screenHeight)

	reg, release := world.OpenArena(aabb.New(config.Physics.Gravity, config.Physics.FixedStep), config, rand.New(rand.NewSource(*seed)), logger)
	defer release()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	manager := game.NewManager(renderer, inputMgr, config, reg, logger, *screenWidth, *screenHeight)

	engine.SetWindowSize(*screenWidth, *screenHeight)
	engine.SetWindowTitle("Blockout")
	engine.SetWindowResizable(true)

	if err := engine.RunGame(manager); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
