// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	World       WorldConfig       `yaml:"world"`
	Colony      ColonyConfig      `yaml:"colony"`
	Sensing     SensingConfig     `yaml:"sensing"`
	Trail       TrailConfig       `yaml:"trail"`
	Walk        WalkConfig        `yaml:"walk"`
	Avoidance   AvoidanceConfig   `yaml:"avoidance"`
	Food        FoodConfig        `yaml:"food"`
	Obstacle    ObstacleConfig    `yaml:"obstacle"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Scenario    ScenarioConfig    `yaml:"scenario"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation surface dimensions.
// The pheromone field is sized to these at creation and never resized.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// ColonyConfig holds ant batch parameters.
type ColonyConfig struct {
	AntsPerNest int     `yaml:"ants_per_nest"` // Ants created whenever a nest is placed
	AntSpeed    float64 `yaml:"ant_speed"`     // Step length multiplier
}

// SensingConfig holds the distance thresholds used by the ant state machine.
type SensingConfig struct {
	FoodRadius        float64 `yaml:"food_radius"`        // Nearest-food search radius
	ArriveRadius      float64 `yaml:"arrive_radius"`      // Ant-side arrival at food or nest
	NestReach         float64 `yaml:"nest_reach"`         // Nest-side delivery reach
	ObstacleLookahead float64 `yaml:"obstacle_lookahead"` // Distance projected along velocity
}

// TrailConfig holds pheromone deposit and sampling parameters.
type TrailConfig struct {
	SampleRadius float64 `yaml:"sample_radius"` // Distance of the sample ring from the ant
	Directions   int     `yaml:"directions"`    // Evenly spaced samples over 360 degrees
	Deposit      uint32  `yaml:"deposit"`       // Units added per visit
}

// WalkConfig holds random walk parameters.
type WalkConfig struct {
	Jitter float64 `yaml:"jitter"` // Full width of the uniform perturbation per component
}

// AvoidanceConfig holds obstacle avoidance parameters.
type AvoidanceConfig struct {
	TurnAngleDeg float64 `yaml:"turn_angle_deg"`
}

// FoodConfig holds food source parameters.
type FoodConfig struct {
	InitialAmount int `yaml:"initial_amount"`
}

// ObstacleConfig holds obstacle parameters.
type ObstacleConfig struct {
	DefaultSize float64 `yaml:"default_size"` // Diameter of placed obstacles
}

// PathfindingConfig holds optional A* planner parameters.
type PathfindingConfig struct {
	CellSize float64 `yaml:"cell_size"` // Nav grid cell size in world units
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowTicks int `yaml:"stats_window_ticks"`
}

// ScenarioConfig lists entities placed at startup.
type ScenarioConfig struct {
	Nests     []PointConfig `yaml:"nests"`
	Food      []PointConfig `yaml:"food"`
	Obstacles []PointConfig `yaml:"obstacles"`
}

// PointConfig is a world position.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       int     // Effective world width
	WorldH       int     // Effective world height
	WorldW32     float32 // Effective world width as float32
	WorldH32     float32 // Effective world height as float32
	TurnAngleRad float64 // Avoidance.TurnAngleDeg in radians
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := validateDocument(data); err != nil {
			return nil, err
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		return fmt.Errorf("world size must not be negative, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Trail.Directions <= 0 {
		return fmt.Errorf("trail.directions must be positive, got %d", c.Trail.Directions)
	}
	if c.Colony.AntsPerNest < 0 {
		return fmt.Errorf("colony.ants_per_nest must not be negative, got %d", c.Colony.AntsPerNest)
	}
	if c.Pathfinding.CellSize <= 0 {
		return fmt.Errorf("pathfinding.cell_size must be positive, got %g", c.Pathfinding.CellSize)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = worldW
	c.Derived.WorldH = worldH
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
	c.Derived.TurnAngleRad = c.Avoidance.TurnAngleDeg * math.Pi / 180
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
