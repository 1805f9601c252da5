package main

import (
	"flag"
	"log"
	"runtime"

	"VoxelVision/cliente/internal/app"
	"VoxelVision/shared/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	// Raylib exige a thread principal do SO.
	runtime.LockOSThread()
}

func main() {
	seed := flag.Int64("seed", 0, "seed do mundo (0 usa a do config)")
	fullscreen := flag.Bool("fullscreen", false, "inicia em tela cheia")
	debug := flag.Bool("debug", false, "liga o HUD de debug")
	radius := flag.Int("radius", 0, "raio de visão em chunks (0 usa o config)")
	flag.Parse()

	cfg := config.Load()
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *radius > 0 {
		cfg.ViewRadius = int32(*radius)
		if cfg.UnloadRadius <= cfg.ViewRadius {
			cfg.UnloadRadius = cfg.ViewRadius + 2
		}
	}

	log.Printf("[Main] VoxelVision iniciando (seed=%d, raio=%d)", cfg.Seed, cfg.ViewRadius)

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle)
	defer rl.CloseWindow()
	if cfg.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(cfg.TargetFPS)

	a := app.New(cfg)
	defer a.Shutdown()

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		a.Update(dt)
		a.Draw()
	}

	log.Printf("[Main] Saindo")
}
