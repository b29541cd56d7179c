package main

import (
	"image/color"
	"time"
)

// Window and rendering constants. Simulation tuning lives in
// sightline.DefaultConfig and can be overridden with -config.
const (
	windowTitle        = "Ray-Casting"
	defaultSeedOffset  = 1
	autoWalkMinFrames  = 20
	autoWalkFrameRange = 50
	sourceRadius       = 7.5
	rayStrokeWidth     = 1
	pgoRecordDuration  = 15 * time.Second
	pgoOutputPath      = "default.pgo"
	envConfigPath      = "SIGHTLINE_CONFIG"
	envSeed            = "SIGHTLINE_SEED"
)

var (
	wallColor     = color.RGBA{204, 204, 204, 255}
	boundaryColor = color.RGBA{77, 77, 77, 255}
	rayColor      = color.RGBA{242, 242, 102, 255}
	sourceColor   = color.RGBA{255, 255, 255, 255}
	blockedColor  = color.RGBA{255, 80, 80, 255}
)
