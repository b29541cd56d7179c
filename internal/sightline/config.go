package sightline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the construction-time constants of a simulation. Values are
// fixed for the lifetime of the run.
type Config struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`

	// Rays is the fan width N.
	Rays int `yaml:"rays"`
	// RayStep is the angle between neighbouring rays, in radians.
	RayStep float64 `yaml:"ray_step"`
	// RaySpeed is the length of every ray direction vector.
	RaySpeed float64 `yaml:"ray_speed"`

	// AngleFactor is the heading change per rotate command, in radians.
	AngleFactor float64 `yaml:"angle_factor"`
	// MoveFactor scales both clearance squares.
	MoveFactor float64 `yaml:"move_factor"`
	// MoveSpeed divides the heading vector for a normal move step.
	MoveSpeed float64 `yaml:"move_speed"`
	// BorderMargin insets the screen for rays and source movement.
	BorderMargin float64 `yaml:"border_margin"`

	BaseMagnify   float64 `yaml:"base_magnify"`
	PrecisionStep float64 `yaml:"precision_step"`
	// RayPrecision multiplies MoveFactor for the ray probe clearance.
	RayPrecision float64 `yaml:"ray_precision"`
	// AllowMovePrecision multiplies MoveFactor for the allow-move check.
	AllowMovePrecision float64 `yaml:"allow_move_precision"`

	SolidBoundary bool `yaml:"solid_boundary"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Width:              1280,
		Height:             720,
		CellSize:           20,
		Rays:               50,
		RayStep:            0.01,
		RaySpeed:           5,
		AngleFactor:        0.01,
		MoveFactor:         0.75,
		MoveSpeed:          20,
		BorderMargin:       5,
		BaseMagnify:        1.5,
		PrecisionStep:      0.5,
		RayPrecision:       2,
		AllowMovePrecision: 15,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrInvalidConfig, c.CellSize)
	case c.Rays <= 0:
		return fmt.Errorf("%w: fan width %d", ErrInvalidConfig, c.Rays)
	case c.PrecisionStep <= 0:
		return fmt.Errorf("%w: precision step %g", ErrInvalidConfig, c.PrecisionStep)
	case c.RaySpeed <= 0:
		return fmt.Errorf("%w: ray speed %g", ErrInvalidConfig, c.RaySpeed)
	case c.MoveSpeed <= 0:
		return fmt.Errorf("%w: move speed %g", ErrInvalidConfig, c.MoveSpeed)
	case c.BaseMagnify < 0:
		return fmt.Errorf("%w: base magnify %g", ErrInvalidConfig, c.BaseMagnify)
	case c.BorderMargin < 0 || 2*c.BorderMargin >= float64(min(c.Width, c.Height)):
		return fmt.Errorf("%w: border margin %g", ErrInvalidConfig, c.BorderMargin)
	}
	return nil
}

// Bounds returns the margin-inset screen rectangle.
func (c Config) Bounds() Bounds {
	return ScreenBounds(float64(c.Width), float64(c.Height), c.BorderMargin)
}

// Search returns the per-ray sweep parameters.
func (c Config) Search() SearchParams {
	return SearchParams{
		BaseMagnify:   c.BaseMagnify,
		PrecisionStep: c.PrecisionStep,
		Clearance:     c.MoveFactor * c.RayPrecision,
	}
}

// MoveClearance is the half-width of the allow-move probe.
func (c Config) MoveClearance() float64 {
	return c.MoveFactor * c.AllowMovePrecision
}
