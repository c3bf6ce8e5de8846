package config

import (
	"github.com/olivierh59500/bondgraph-go/internal/camera"
	"github.com/olivierh59500/bondgraph-go/internal/engine"
	"github.com/olivierh59500/bondgraph-go/internal/graph"
	"github.com/olivierh59500/bondgraph-go/internal/logging"
	"github.com/olivierh59500/bondgraph-go/internal/physics"
	"github.com/olivierh59500/bondgraph-go/internal/similarity"
	"github.com/spf13/viper"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultTitle     = "Bond Graph"
	DefaultTPS       = 60
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Window:     WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle, TPS: DefaultTPS},
		Log:        logging.Config{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Graph:      GraphConfig{MaxConnections: graph.MaxConnections, ParallelScoring: true},
		Similarity: similarity.DefaultWeights(),
		Physics:    PhysicsConfig{Params: physics.DefaultParams(), MaxDT: engine.DefaultMaxDT},
		Camera:     camera.DefaultConfig(),
		Keys: KeyConfig{
			AddNode:        "N",
			DeleteNode:     "D",
			ZeroVelocities: "B",
			Reset:          "R",
			Pause:          "S",
			Pan:            "Space",
		},
	}
}

// setDefaults registers every default key so env overrides resolve.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.tps", d.Window.TPS)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("metrics.addr", "")

	v.SetDefault("population.initial", 0)
	v.SetDefault("population.seed", 0)
	v.SetDefault("population.profiles_file", "")

	v.SetDefault("graph.max_connections", d.Graph.MaxConnections)
	v.SetDefault("graph.parallel_scoring", d.Graph.ParallelScoring)

	v.SetDefault("similarity.age_weight", d.Similarity.Age)
	v.SetDefault("similarity.gender_weight", d.Similarity.Gender)
	v.SetDefault("similarity.occupation_weight", d.Similarity.Occupation)
	v.SetDefault("similarity.compare_occupation", d.Similarity.CompareOccupation)
	v.SetDefault("similarity.final_scale", d.Similarity.FinalScale)
	v.SetDefault("similarity.final_offset", d.Similarity.FinalOffset)

	p := d.Physics
	v.SetDefault("physics.repulsion", p.Repulsion)
	v.SetDefault("physics.mass", p.Mass)
	v.SetDefault("physics.acceleration_scale", p.AccelerationScale)
	v.SetDefault("physics.max_acceleration", p.MaxAcceleration)
	v.SetDefault("physics.force_dead_zone", p.ForceDeadZone)
	v.SetDefault("physics.force_blend", p.ForceBlend)
	v.SetDefault("physics.centering", p.Centering)
	v.SetDefault("physics.damping_base", p.DampingBase)
	v.SetDefault("physics.damping_growth", p.DampingGrowth)
	v.SetDefault("physics.damping_max", p.DampingMax)
	v.SetDefault("physics.min_distance", p.MinDistance)
	v.SetDefault("physics.max_dt", p.MaxDT)

	v.SetDefault("camera.min_scale", d.Camera.MinScale)
	v.SetDefault("camera.max_scale", d.Camera.MaxScale)
	v.SetDefault("camera.zoom_sensitivity", d.Camera.ZoomSensitivity)
	v.SetDefault("camera.zoom_smoothing", d.Camera.ZoomSmoothing)
	v.SetDefault("camera.pan_smoothing", d.Camera.PanSmoothing)

	v.SetDefault("keys.add_node", d.Keys.AddNode)
	v.SetDefault("keys.delete_node", d.Keys.DeleteNode)
	v.SetDefault("keys.zero_velocities", d.Keys.ZeroVelocities)
	v.SetDefault("keys.reset", d.Keys.Reset)
	v.SetDefault("keys.pause", d.Keys.Pause)
	v.SetDefault("keys.pan", d.Keys.Pan)
}
