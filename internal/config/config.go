// Package config loads bondgraph settings from YAML, environment and flags.
package config

import (
	"errors"
	"fmt"

	"github.com/olivierh59500/bondgraph-go/internal/camera"
	"github.com/olivierh59500/bondgraph-go/internal/engine"
	"github.com/olivierh59500/bondgraph-go/internal/logging"
	"github.com/olivierh59500/bondgraph-go/internal/physics"
	"github.com/olivierh59500/bondgraph-go/internal/similarity"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full application configuration.
type Config struct {
	Window     WindowConfig       `mapstructure:"window"`
	Log        logging.Config     `mapstructure:"log"`
	Metrics    MetricsConfig      `mapstructure:"metrics"`
	Population PopulationConfig   `mapstructure:"population"`
	Graph      GraphConfig        `mapstructure:"graph"`
	Similarity similarity.Weights `mapstructure:"similarity"`
	Physics    PhysicsConfig      `mapstructure:"physics"`
	Camera     camera.Config      `mapstructure:"camera"`
	Keys       KeyConfig          `mapstructure:"keys"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	TPS    int    `mapstructure:"tps"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// PopulationConfig controls the nodes present at start.
type PopulationConfig struct {
	Initial int   `mapstructure:"initial"`
	Seed    int64 `mapstructure:"seed"` // 0 picks a time based seed
	// ProfilesFile replaces the random generator with profiles read from JSON.
	ProfilesFile string `mapstructure:"profiles_file"`
}

// GraphConfig controls bond construction.
type GraphConfig struct {
	MaxConnections  int  `mapstructure:"max_connections"`
	ParallelScoring bool `mapstructure:"parallel_scoring"`
}

// PhysicsConfig is the integrator tuning plus the frame step cap.
type PhysicsConfig struct {
	physics.Params `mapstructure:",squash"`
	MaxDT          float64 `mapstructure:"max_dt"`
}

// KeyConfig maps commands to key names.
type KeyConfig struct {
	AddNode        string `mapstructure:"add_node"`
	DeleteNode     string `mapstructure:"delete_node"`
	ZeroVelocities string `mapstructure:"zero_velocities"`
	Reset          string `mapstructure:"reset"`
	Pause          string `mapstructure:"pause"`
	Pan            string `mapstructure:"pan"`
}

// Bindings returns the key name for every command.
func (k KeyConfig) Bindings() map[engine.Command]string {
	return map[engine.Command]string{
		engine.CommandAddNode:        k.AddNode,
		engine.CommandDeleteNode:     k.DeleteNode,
		engine.CommandZeroVelocities: k.ZeroVelocities,
		engine.CommandReset:          k.Reset,
		engine.CommandPause:          k.Pause,
		engine.CommandPan:            k.Pan,
	}
}

// Validate checks ranges that would break the simulation.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps %d", c.Window.TPS)
	check(c.Population.Initial >= 0, "population.initial %d", c.Population.Initial)
	check(c.Graph.MaxConnections > 0, "graph.max_connections %d", c.Graph.MaxConnections)
	check(c.Physics.Mass > 0, "physics.mass %g", c.Physics.Mass)
	check(c.Physics.MaxDT > 0, "physics.max_dt %g", c.Physics.MaxDT)
	check(c.Physics.MinDistance > 0, "physics.min_distance %g", c.Physics.MinDistance)
	check(c.Physics.MaxAcceleration > 0, "physics.max_acceleration %g", c.Physics.MaxAcceleration)
	check(c.Camera.MinScale > 0 && c.Camera.MinScale <= c.Camera.MaxScale,
		"camera scale range [%g, %g]", c.Camera.MinScale, c.Camera.MaxScale)
	check(inUnit(c.Camera.ZoomSmoothing) && inUnit(c.Camera.PanSmoothing),
		"camera smoothing %g/%g outside (0, 1]", c.Camera.ZoomSmoothing, c.Camera.PanSmoothing)
	check(c.Similarity.Age >= 0 && c.Similarity.Gender >= 0 && c.Similarity.Occupation >= 0,
		"negative similarity weight")

	seen := make(map[string]engine.Command)
	for cmd, key := range c.Keys.Bindings() {
		if key == "" {
			errs = append(errs, fmt.Errorf("%w: keys.%s is empty", ErrInvalid, cmd))
			continue
		}
		if other, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("%w: key %q bound to %s and %s", ErrInvalid, key, other, cmd))
		}
		seen[key] = cmd
	}
	return errors.Join(errs...)
}

func inUnit(f float64) bool { return f > 0 && f <= 1 }

// EngineOptions converts the configuration to engine options.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Physics = c.Physics.Params
	opts.MaxDT = c.Physics.MaxDT
	opts.Camera = c.Camera
	opts.Weights = c.Similarity
	opts.MaxConnections = c.Graph.MaxConnections
	opts.ParallelScoring = c.Graph.ParallelScoring
	opts.InitialNodes = c.Population.Initial
	if c.Population.Seed != 0 {
		opts.Seed = c.Population.Seed
	}
	return opts
}
