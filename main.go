package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"sightline/internal/sightline"
)

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Loading .env: %v", err)
	}
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *fullscreenFlag {
		if mw, mh := ebiten.Monitor().Size(); mw > 0 && mh > 0 {
			cfg.Width, cfg.Height = mw, mh
		}
		ebiten.SetFullscreen(true)
	}

	seed, err := levelSeed()
	if err != nil {
		return err
	}
	sim, err := sightline.NewSimulation(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	log.Printf("Level seed %d: %dx%d cells, %d walls", seed, sim.Grid().Cols(), sim.Grid().Rows(), len(sim.ListWalls()))

	if *gpuRaysFlag {
		if resolver, err := newOpenCLRayResolver(sim.Grid(), cfg.Rays); err != nil {
			log.Printf("OpenCL ray resolver unavailable, using CPU: %v", err)
		} else {
			log.Printf("OpenCL ray resolver enabled (device: %s)", resolver.DeviceName())
			sim.SetResolver(resolver)
			defer resolver.Close()
		}
	}

	g := newGame(sim, cfg.Width, cfg.Height)
	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording(pgoOutputPath)
		if err != nil {
			return err
		}
		defer stop()
		g.enableAutoWalk(pgoRecordDuration, stop)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(windowTitle)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadConfig starts from the defaults, applies the YAML file named by -config
// or $SIGHTLINE_CONFIG, then the flag overrides.
func loadConfig() (sightline.Config, error) {
	cfg := sightline.DefaultConfig()
	path := *configPathFlag
	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		loaded, err := sightline.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		log.Printf("Loaded config from %s", path)
	}
	if *solidBoundaryFlag {
		cfg.SolidBoundary = true
	}
	return cfg, nil
}

// levelSeed prefers -seed, then $SIGHTLINE_SEED, then the clock.
func levelSeed() (int64, error) {
	if *seedFlag != 0 {
		return *seedFlag, nil
	}
	if v := os.Getenv(envSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s=%q: %w", envSeed, v, err)
		}
		return seed, nil
	}
	return time.Now().UnixNano() + defaultSeedOffset, nil
}
