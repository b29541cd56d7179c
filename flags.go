package main

import "flag"

// Command-line flags controlling the window, the level seed, and optional
// runtime behavior.
var (
	// configPathFlag points at a YAML file overriding the default tuning.
	configPathFlag = flag.String("config", "", "YAML file overriding simulation settings (default $SIGHTLINE_CONFIG)")

	// seedFlag fixes the level seed; zero picks one from the clock.
	seedFlag = flag.Int64("seed", 0, "level generation seed (0 = time based, default $SIGHTLINE_SEED)")

	// fullscreenFlag sizes the playfield to the primary monitor.
	fullscreenFlag = flag.Bool("fullscreen", false, "run fullscreen at the monitor resolution")

	// solidBoundaryFlag makes the outer wall ring stop rays and movement.
	solidBoundaryFlag = flag.Bool("solid-boundary", false, "treat the boundary wall ring as solid")

	// showWallsFlag toggles rendering of wall geometry.
	showWallsFlag = flag.Bool("show-walls", true, "render wall geometry")

	// debugFlag enables the FPS and tick overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")

	// recordDefaultPGO triggers a scripted walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "walk randomly for 15s while capturing default.pgo")

	gpuRaysFlag = flag.Bool("gpu-rays", false, "resolve rays with OpenCL (requires -tags opencl)")
)
