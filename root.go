package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/olivierh59500/bondgraph-go/internal/config"
	"github.com/olivierh59500/bondgraph-go/internal/ebitenhost"
	"github.com/olivierh59500/bondgraph-go/internal/engine"
	"github.com/olivierh59500/bondgraph-go/internal/logging"
	"github.com/olivierh59500/bondgraph-go/internal/metrics"
	"github.com/olivierh59500/bondgraph-go/internal/profile"
)

// newRootCmd builds the command with its flags bound into v.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "bondgraph",
		Short: "Force-directed layout of synthetic user profiles",
		Long: `bondgraph lays out synthetic user profiles as particles bonded to
their most similar peers.

Keys (defaults): N add, D delete, B zero velocities, R reset,
hold S to pause, hold Space and drag to pan. Scroll to zoom.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), v, cfgPath)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "YAML config file")
	f.Int("nodes", 0, "nodes added at start")
	f.Int64("seed", 0, "random seed, 0 for time based")
	f.String("profiles", "", "JSON file of profiles to use instead of generated ones")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.String("log-level", "", "debug, info, warn or error")

	for key, flag := range map[string]string{
		"population.initial":       "nodes",
		"population.seed":          "seed",
		"population.profiles_file": "profiles",
		"metrics.addr":             "metrics-addr",
		"log.level":                "log-level",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

func run(ctx context.Context, v *viper.Viper, cfgPath string) error {
	cfg, err := config.LoadWith(v, cfgPath)
	if err != nil {
		return err
	}

	logger, level, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Addr, logger.Named("metrics")); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	opts := cfg.EngineOptions()
	provider, err := newProvider(cfg, opts.Seed)
	if err != nil {
		return err
	}

	eng := engine.New(opts, provider, logger.Named("engine"), collector)
	surface := ebitenhost.NewSurface(cfg.Window.Width, cfg.Window.Height)
	input, err := ebitenhost.NewInput(cfg.Keys.Bindings())
	if err != nil {
		return err
	}
	if !startEngine(eng, surface, input, logger) {
		if cfg.Metrics.Addr != "" {
			<-ctx.Done()
		}
		return nil
	}

	game := ebitenhost.NewGame(eng, surface, input, logger.Named("host"))

	config.Watch(v, func(c *config.Config) {
		if lvl, err := logging.ParseLevel(c.Log.Level); err == nil {
			level.SetLevel(lvl)
		}
		game.Post(func() { eng.SetCameraConfig(c.Camera) })
		logger.Info("configuration reloaded", zap.String("file", v.ConfigFileUsed()))
	}, func(err error) {
		logger.Warn("ignoring invalid configuration", zap.Error(err))
	})

	go func() {
		<-ctx.Done()
		game.Post(eng.Teardown)
	}()

	logger.Info("starting",
		zap.Int64("seed", opts.Seed),
		zap.Int("nodes", opts.InitialNodes),
		zap.String("profiles", cfg.Population.ProfilesFile))

	return ebitenhost.Run(game, ebitenhost.Window{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		TPS:    cfg.Window.TPS,
	})
}

// startEngine binds eng to the host surface. An unusable surface disables the
// layout without failing the process; metrics keep serving until shutdown.
func startEngine(eng *engine.Engine, surface engine.Surface, input engine.InputSource, log *zap.Logger) bool {
	if err := eng.Initialize(surface, input); err != nil {
		log.Error("layout disabled", zap.Error(err))
		return false
	}
	return true
}

func newProvider(cfg *config.Config, seed int64) (profile.Provider, error) {
	arena := profile.NewArena()
	if cfg.Population.ProfilesFile == "" {
		return profile.NewGenerator(arena, seed), nil
	}
	p, err := profile.LoadFile(cfg.Population.ProfilesFile, arena)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return p, nil
}
