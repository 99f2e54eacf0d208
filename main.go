package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"

	"snake-sprites/game"
	"snake-sprites/ui"
)

func main() {
	configPath := flag.String("config", "", "JSON config file (defaults are used when empty)")
	frontend := flag.String("frontend", "window", "window or terminal")
	speed := flag.Float64("speed", 0, "game speed multiplier, overrides the config")
	spawnRate := flag.Float64("spawn-rate", 0, "sprite spawn rate, overrides the config")
	seed := flag.Uint64("seed", 0, "sprite placement seed, overrides the config")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()
	defer glog.Flush()

	if *frontend != "window" && *frontend != "terminal" {
		glog.Exitf("unknown frontend %q, want window or terminal", *frontend)
	}

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := game.LoadConfig(*configPath)
		if err != nil {
			glog.Exitf("%v", err)
		}
		cfg = loaded
	}
	if *speed > 0 {
		cfg.GameSpeed = *speed
	}
	if *spawnRate > 0 {
		cfg.SpriteSpawnRate = *spawnRate
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	g, err := game.NewGame(cfg, nil, nil)
	if err != nil {
		glog.Exitf("new game: %v", err)
	}
	clock := game.NewClock(g, cfg.TickInterval())

	sound := ui.NewSound()
	if !*mute {
		if err := sound.Init(); err != nil {
			glog.Warningf("audio disabled: %v", err)
		}
	}
	defer sound.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	simErr := make(chan error, 1)
	go func() {
		err := clock.Run(ctx)
		simErr <- err
		if err != nil {
			cancel()
		}
	}()

	if *frontend == "terminal" {
		err = ui.RunTerminal(ctx, clock, cfg, sound)
	} else {
		err = ui.RunWindow(ctx, clock, cfg, sound)
	}
	if err != nil {
		glog.Errorf("frontend: %v", err)
	}

	cancel()
	if runErr := <-simErr; runErr != nil || err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
