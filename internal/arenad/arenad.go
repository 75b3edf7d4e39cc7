// Package arenad parses arena server configuration and runs the server.
package arenad

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/dragonfly"
	"github.com/oriumgames/arena/stats/sqlite"
)

// Config holds arena server configuration.
type Config struct {
	Address    string     `env:"ARENAD_ADDRESS" envDefault:":19132"`
	Name       string     `env:"ARENAD_NAME" envDefault:"Arena"`
	ArenasFile string     `env:"ARENAD_ARENAS" envDefault:"arenas.jsonc"`
	StatsPath  string     `env:"ARENAD_STATS_PATH" envDefault:"stats.db"`
	LogLevel   slog.Level `env:"ARENAD_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Address, "addr", cfg.Address, "The address the server listens on")
	fs.StringVar(&cfg.ArenasFile, "arenas", cfg.ArenasFile, "The arena definitions file")
	fs.StringVar(&cfg.StatsPath, "stats", cfg.StatsPath, "The statistics database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}

// Run starts the server and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	defs, err := LoadArenas(cfg.ArenasFile)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.StatsPath)
	if err != nil {
		return fmt.Errorf("open statistics: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("close statistics", "error", err)
		}
	}()

	uc := server.DefaultConfig()
	uc.Server.Name = cfg.Name
	uc.Network.Address = cfg.Address
	conf, err := uc.Config(log)
	if err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	srv := conf.New()

	host := dragonfly.NewHost(srv.World(), dragonfly.WithHostLogger(log))
	mgr := arena.NewManager(host, arena.WithLogger(log), arena.WithStats(store))
	mgr.Listen(host.Listen)

	builders, err := Builders(defs, host)
	if err != nil {
		return err
	}
	for _, b := range builders {
		if _, err := mgr.Add(b); err != nil {
			return fmt.Errorf("add arena: %w", err)
		}
	}
	if s, ok := mgr.Runner().(*arena.TickScheduler); ok {
		s.Start()
	}
	defer func() {
		mgr.Close()
		host.Wait()
	}()

	cmd.Register(dragonfly.Commands(host, mgr, store))

	srv.Listen()
	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("close server", "error", err)
		}
	}()

	for p := range srv.Accept() {
		dragonfly.Attach(p, srv.World(), host, mgr)
	}
	return nil
}
