// Package config holds every tunable constant of the game and loads overrides
// from an INI file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/ini.v1"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Display struct {
	Width  int `ini:"width"`
	Height int `ini:"height"`
}

type Ball struct {
	StartX int `ini:"start_x"`
	StartY int `ini:"start_y"`
	Speed  int `ini:"speed"`
	Radius int `ini:"radius"`
}

// Obstacles configures the pool and the respawn randomizer. Ranges are inclusive.
type Obstacles struct {
	Capacity     int `ini:"capacity"`
	MinClearance int `ini:"min_clearance"`
	WidthMin     int `ini:"width_min"`
	WidthMax     int `ini:"width_max"`
	HeightMin    int `ini:"height_min"`
	HeightMax    int `ini:"height_max"`
	SpeedMin     int `ini:"speed_min"`
	SpeedMax     int `ini:"speed_max"`
	SpawnDelay   int `ini:"spawn_delay"`
}

// Difficulty values are in delay units (see Kernel.SleepDivisor).
type Difficulty struct {
	InitialDelay int `ini:"initial_delay"`
	Every        int `ini:"every"`
	Divisor      int `ini:"divisor"`
	Floor        int `ini:"floor"`
	TickDelay    int `ini:"tick_delay"`
}

type Tilt struct {
	ChannelX     int `ini:"channel_x"`
	ChannelY     int `ini:"channel_y"`
	Deadband     int `ini:"deadband"`
	ScaleX       int `ini:"scale_x"`
	ScaleY       int `ini:"scale_y"`
	MaxStrength  int `ini:"max_strength"`
	IdleDelay    int `ini:"idle_delay"`
	BaseDelay    int `ini:"base_delay"`
	DecayPerStep int `ini:"decay_per_step"`
	MinDelay     int `ini:"min_delay"`
}

type Kernel struct {
	Tick          time.Duration `ini:"tick"`
	SleepDivisor  int           `ini:"sleep_divisor"`
	MaxTasks      int           `ini:"max_tasks"`
	Priority      int           `ini:"priority"`
	TiltStack     int           `ini:"tilt_stack"`
	ObstacleStack int           `ini:"obstacle_stack"`
	TimeStack     int           `ini:"time_stack"`
}

type Indicator struct {
	Enabled      bool `ini:"enabled"`
	ShowOffDelay int  `ini:"show_off_delay"`
}

type Frontend struct {
	Kind  string `ini:"kind"`
	Scale int    `ini:"scale"`
	Sound bool   `ini:"sound"`
	Seed  int64  `ini:"seed"`
}

type Log struct {
	Level string `ini:"level"`
}

type Config struct {
	Display    Display    `ini:"display"`
	Ball       Ball       `ini:"ball"`
	Obstacles  Obstacles  `ini:"obstacles"`
	Difficulty Difficulty `ini:"difficulty"`
	Tilt       Tilt       `ini:"tilt"`
	Kernel     Kernel     `ini:"kernel"`
	Indicator  Indicator  `ini:"indicator"`
	Frontend   Frontend   `ini:"frontend"`
	Log        Log        `ini:"log"`
}

// Default mirrors the values the board firmware shipped with.
func Default() Config {
	return Config{
		Display: Display{Width: 130, Height: 130},
		Ball:    Ball{StartX: 65, StartY: 65, Speed: 5, Radius: 4},
		Obstacles: Obstacles{
			Capacity:     6,
			MinClearance: 30,
			WidthMin:     20,
			WidthMax:     60,
			HeightMin:    1,
			HeightMax:    5,
			SpeedMin:     1,
			SpeedMax:     5,
			SpawnDelay:   500,
		},
		Difficulty: Difficulty{
			InitialDelay: 200,
			Every:        50,
			Divisor:      20,
			Floor:        6,
			TickDelay:    10,
		},
		Tilt: Tilt{
			ChannelX:     1,
			ChannelY:     2,
			Deadband:     30,
			ScaleX:       20,
			ScaleY:       20,
			MaxStrength:  8,
			IdleDelay:    40,
			BaseDelay:    136,
			DecayPerStep: 16,
			MinDelay:     1,
		},
		Kernel: Kernel{
			Tick:          10 * time.Millisecond,
			SleepDivisor:  6,
			MaxTasks:      8,
			Priority:      2,
			TiltStack:     512,
			ObstacleStack: 512,
			TimeStack:     128,
		},
		Indicator: Indicator{Enabled: true, ShowOffDelay: 40},
		Frontend:  Frontend{Kind: "ebiten", Scale: 4, Sound: true},
		Log:       Log{Level: "INFO"},
	}
}

// Load overlays the keys present in the file at path onto Default.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if err := f.MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("map %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating or truncating it.
func Save(path string, cfg Config) error {
	f := ini.Empty()
	if err := ini.ReflectFrom(f, &cfg); err != nil {
		return fmt.Errorf("reflect config: %w", err)
	}
	return f.SaveTo(path)
}

func (c Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"display.width", c.Display.Width},
		{"display.height", c.Display.Height},
		{"ball.speed", c.Ball.Speed},
		{"ball.radius", c.Ball.Radius},
		{"obstacles.capacity", c.Obstacles.Capacity},
		{"obstacles.width_min", c.Obstacles.WidthMin},
		{"obstacles.height_min", c.Obstacles.HeightMin},
		{"obstacles.speed_min", c.Obstacles.SpeedMin},
		{"difficulty.initial_delay", c.Difficulty.InitialDelay},
		{"difficulty.every", c.Difficulty.Every},
		{"difficulty.divisor", c.Difficulty.Divisor},
		{"difficulty.floor", c.Difficulty.Floor},
		{"difficulty.tick_delay", c.Difficulty.TickDelay},
		{"tilt.scale_x", c.Tilt.ScaleX},
		{"tilt.scale_y", c.Tilt.ScaleY},
		{"tilt.max_strength", c.Tilt.MaxStrength},
		{"tilt.min_delay", c.Tilt.MinDelay},
		{"tilt.idle_delay", c.Tilt.IdleDelay},
		{"tilt.base_delay", c.Tilt.BaseDelay},
		{"kernel.sleep_divisor", c.Kernel.SleepDivisor},
		{"kernel.max_tasks", c.Kernel.MaxTasks},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.name, p.v)
		}
	}
	nonNegative := []struct {
		name string
		v    int
	}{
		{"tilt.deadband", c.Tilt.Deadband},
		{"tilt.decay_per_step", c.Tilt.DecayPerStep},
		{"obstacles.spawn_delay", c.Obstacles.SpawnDelay},
		{"obstacles.min_clearance", c.Obstacles.MinClearance},
		{"indicator.show_off_delay", c.Indicator.ShowOffDelay},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalid, p.name, p.v)
		}
	}
	for _, ch := range []struct {
		name string
		v    int
	}{{"tilt.channel_x", c.Tilt.ChannelX}, {"tilt.channel_y", c.Tilt.ChannelY}} {
		if ch.v < 0 || ch.v > math.MaxUint8 {
			return fmt.Errorf("%w: %s %d is not an ADC channel", ErrInvalid, ch.name, ch.v)
		}
	}
	if c.Kernel.Tick <= 0 {
		return fmt.Errorf("%w: kernel.tick must be positive, got %v", ErrInvalid, c.Kernel.Tick)
	}
	if c.Kernel.MaxTasks < 4 {
		return fmt.Errorf("%w: kernel.max_tasks must hold the four game tasks, got %d", ErrInvalid, c.Kernel.MaxTasks)
	}
	if c.Obstacles.WidthMax < c.Obstacles.WidthMin || c.Obstacles.HeightMax < c.Obstacles.HeightMin || c.Obstacles.SpeedMax < c.Obstacles.SpeedMin {
		return fmt.Errorf("%w: obstacle ranges must have max >= min", ErrInvalid)
	}
	if c.Obstacles.WidthMax > c.Display.Width {
		return fmt.Errorf("%w: obstacles.width_max %d exceeds display width %d", ErrInvalid, c.Obstacles.WidthMax, c.Display.Width)
	}
	if c.Ball.Radius >= c.Display.Width || c.Ball.Radius >= c.Display.Height {
		return fmt.Errorf("%w: ball.radius %d does not fit the display", ErrInvalid, c.Ball.Radius)
	}
	if c.Ball.StartX < 0 || c.Ball.StartX > c.Display.Width-c.Ball.Radius-1 ||
		c.Ball.StartY < 0 || c.Ball.StartY > c.Display.Height-c.Ball.Radius-1 {
		return fmt.Errorf("%w: ball start (%d,%d) is off the display", ErrInvalid, c.Ball.StartX, c.Ball.StartY)
	}
	if c.Difficulty.Floor > c.Difficulty.InitialDelay {
		return fmt.Errorf("%w: difficulty.floor %d above initial_delay %d", ErrInvalid, c.Difficulty.Floor, c.Difficulty.InitialDelay)
	}
	if c.Display.Height < 8 {
		return fmt.Errorf("%w: display.height must cover the 8 indicator rows", ErrInvalid)
	}
	return nil
}
