// Package config loads the gridpath application settings from YAML.
//
// Values absent from the file keep their defaults; command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
)

// ErrInvalidConfig reports a configuration that failed validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Defaults for an interactive board.
const (
	DefaultWidth        = 30
	DefaultHeight       = 20
	DefaultWalls        = 100
	DefaultStepInterval = 50 * time.Millisecond
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultAddr         = ":8080"
)

// Config holds every setting of the CLI, TUI and server.
type Config struct {
	Width                     int           `yaml:"width"`
	Height                    int           `yaml:"height"`
	Walls                     int           `yaml:"walls"`
	Seed                      int64         `yaml:"seed"` // 0 means time-based
	AllowDiagonalThroughWalls bool          `yaml:"allow_diagonal_through_walls"`
	StepInterval              time.Duration `yaml:"step_interval"`
	Layout                    string        `yaml:"layout"` // overrides width, height and walls
	LogLevel                  string        `yaml:"log_level"`
	LogFormat                 string        `yaml:"log_format"`
	Server                    Server        `yaml:"server"`
}

// Server holds the HTTP front end settings.
type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Walls:        DefaultWalls,
		StepInterval: DefaultStepInterval,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Server:       Server{Addr: DefaultAddr},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := cfg.Decode(data); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode merges YAML data into c field by field and validates the result.
func (c *Config) Decode(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return c.Validate()
}

// Validate checks ranges and cross-field constraints.
func (c Config) Validate() error {
	var problems []string
	if c.Layout == "" {
		if err := grid.CheckSize(c.Width, c.Height); err != nil {
			problems = append(problems, fmt.Sprintf("board %dx%d: %v", c.Width, c.Height, err))
		} else if c.Width*c.Height < 2 {
			problems = append(problems, fmt.Sprintf("board %dx%d needs at least two cells", c.Width, c.Height))
		} else if c.Walls < 0 || c.Walls > c.Width*c.Height-2 {
			problems = append(problems, fmt.Sprintf("walls %d out of range [0,%d]", c.Walls, c.Width*c.Height-2))
		}
	} else if _, err := grid.Parse(c.Layout); err != nil {
		problems = append(problems, fmt.Sprintf("layout: %v", err))
	}
	if c.StepInterval < 0 {
		problems = append(problems, "step_interval must not be negative")
	}
	if _, ok := ctxlog.ParseLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	if f := strings.ToLower(c.LogFormat); f != "" && f != "text" && f != "json" {
		problems = append(problems, fmt.Sprintf("unknown log_format %q", c.LogFormat))
	}
	if c.Server.Addr == "" {
		problems = append(problems, "server.addr must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// Rand returns the random source for board generation: seeded with Seed,
// or with the current time when Seed is 0.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// Board builds the initial board: the parsed Layout when set, otherwise a
// generated Width×Height board with Walls random walls drawn from rng.
func (c Config) Board(rng *rand.Rand) (*grid.Grid, error) {
	if c.Layout != "" {
		return grid.Parse(c.Layout)
	}

	return grid.Generate(c.Width, c.Height, c.Walls, rng)
}
