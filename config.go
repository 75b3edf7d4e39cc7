package arena

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the policies of an arena. Arenas are configured from an opaque
// key/value map, read with the same tags as environment variables.
type Config struct {
	// Player limits. Zero maximums mean unlimited.
	MinPlayers     int `env:"MIN_PLAYERS" envDefault:"2"`
	MaxPlayers     int `env:"MAX_PLAYERS"`
	MinTeamPlayers int `env:"MIN_TEAM_PLAYERS" envDefault:"1"`
	MaxTeamPlayers int `env:"MAX_TEAM_PLAYERS"`

	// Readiness policies.
	ReadyRatio       float64 `env:"READY_RATIO" envDefault:"0.5"`
	CheckEachPlayer  bool    `env:"CHECK_EACH_PLAYER"`
	EnforceCountdown bool    `env:"ENFORCE_COUNTDOWN"`
	EvenTeams        bool    `env:"EVEN_TEAMS"`

	// Countdown.
	AutoCountdown  bool `env:"AUTO_COUNTDOWN" envDefault:"true"`
	CountdownTicks int  `env:"COUNTDOWN_TICKS" envDefault:"200"`

	Locked       bool `env:"LOCKED"`
	JoinInBattle bool `env:"JOIN_IN_BATTLE"`

	// Teams are written as "name" or "name:color". FreeForAll replaces them
	// with a single free-for-all team.
	FreeForAll bool     `env:"FREE_FOR_ALL"`
	Teams      []string `env:"TEAMS" envDefault:"red,blue" envSeparator:","`

	// Loadouts lists the selectable loadouts. DefaultLoadout is assigned to
	// participants that did not choose one.
	Loadouts       []string `env:"LOADOUTS" envSeparator:","`
	DefaultLoadout string   `env:"DEFAULT_LOADOUT"`

	// Timings in ticks. A zero TimeLimit disables it.
	RespawnDelay int `env:"RESPAWN_DELAY" envDefault:"60"`
	TimeLimit    int `env:"TIME_LIMIT"`
	EndTicks     int `env:"END_TICKS" envDefault:"100"`

	SpawnStrategy SpawnStrategy `env:"SPAWN_STRATEGY" envDefault:"sequential"`
	DropOnDeath   bool          `env:"DROP_ON_DEATH"`
}

// DefaultConfig returns the configuration with every default applied.
func DefaultConfig() Config {
	cfg, err := ParseConfig(nil)
	if err != nil {
		// Defaults are static; a failure here is a broken tag.
		panic(err)
	}
	return cfg
}

// ParseConfig reads a configuration from key/value settings.
func ParseConfig(kv map[string]string) (Config, error) {
	var cfg Config
	if err := ParseSettings(kv, "", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ParseSettings reads any env tagged struct from key/value settings. Goals and
// modules use it with their own prefix.
func ParseSettings(kv map[string]string, prefix string, target any) error {
	if kv == nil {
		kv = map[string]string{}
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: kv, Prefix: prefix}); err != nil {
		return fmt.Errorf("parse settings: %w", err)
	}
	return nil
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if c.MinPlayers < 0 || c.MaxPlayers < 0 || c.MinTeamPlayers < 0 || c.MaxTeamPlayers < 0 {
		return fmt.Errorf("player limits must not be negative")
	}
	if c.MaxPlayers > 0 && c.MinPlayers > c.MaxPlayers {
		return fmt.Errorf("min players %d exceeds max players %d", c.MinPlayers, c.MaxPlayers)
	}
	if c.ReadyRatio < 0 || c.ReadyRatio > 1 {
		return fmt.Errorf("ready ratio %v out of range [0, 1]", c.ReadyRatio)
	}
	if !c.FreeForAll && len(c.Teams) == 0 {
		return fmt.Errorf("no teams configured")
	}
	if c.DefaultLoadout != "" && len(c.Loadouts) > 0 && !c.HasLoadout(c.DefaultLoadout) {
		return fmt.Errorf("default loadout %q is not a configured loadout", c.DefaultLoadout)
	}
	return nil
}

// HasLoadout reports whether the loadout is selectable.
func (c Config) HasLoadout(name string) bool {
	for _, l := range c.Loadouts {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// BuildTeams creates the teams described by the configuration.
func (c Config) BuildTeams() ([]*Team, error) {
	if c.FreeForAll {
		return []*Team{NewTeam(FreeForAllTeam, ColorWhite, c.MaxPlayers)}, nil
	}
	teams := make([]*Team, 0, len(c.Teams))
	seen := make(map[string]bool)
	for i, entry := range c.Teams {
		name, colorName, _ := strings.Cut(strings.TrimSpace(entry), ":")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("team %d has no name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate team %q", name)
		}
		seen[name] = true

		if colorName == "" {
			colorName = name
		}
		color, ok := ParseColor(colorName)
		if !ok {
			color = Color(i % len(colorNames))
		}
		teams = append(teams, NewTeam(name, color, c.MaxTeamPlayers))
	}
	return teams, nil
}

// ParseSpawns reads spawn pools and regions from key/value settings. Pools are
// written as SPAWN_<POOL>=loc;loc;... and regions as REGION_<NAME>=corner;corner.
// Pool and region names are lower cased.
func ParseSpawns(kv map[string]string) (map[string][]Location, map[string]Region, error) {
	pools := make(map[string][]Location)
	regions := make(map[string]Region)
	for k, v := range kv {
		switch {
		case strings.HasPrefix(k, "SPAWN_"):
			name := strings.ToLower(strings.TrimPrefix(k, "SPAWN_"))
			locs, err := ParseLocations(v)
			if err != nil {
				return nil, nil, fmt.Errorf("spawn pool %s: %w", name, err)
			}
			pools[name] = locs
		case strings.HasPrefix(k, "REGION_"):
			name := strings.ToLower(strings.TrimPrefix(k, "REGION_"))
			r, err := ParseRegion(v)
			if err != nil {
				return nil, nil, fmt.Errorf("region %s: %w", name, err)
			}
			regions[name] = r
		}
	}
	return pools, regions, nil
}
