package module

import (
	"github.com/oriumgames/arena"
)

// CelebrationName is the configuration name of Celebration.
const CelebrationName = "celebration"

// CelebrationConfig configures Celebration.
type CelebrationConfig struct {
	// Ticks is how long the celebration lasts before the arena resets.
	Ticks int `env:"CELEBRATION_TICKS" envDefault:"200"`

	// Interval is the period between celebration announcements.
	Interval int `env:"CELEBRATION_INTERVAL" envDefault:"40"`
}

// Celebration claims the end sequence of decided matches. It announces the
// winners itself, distributes rewards and keeps cheering until the reset.
// Draws are left to the default end sequence.
type Celebration struct {
	cfg    CelebrationConfig
	timers map[string]*arena.TaskHandle
}

// NewCelebration creates the module.
func NewCelebration(cfg CelebrationConfig) *Celebration {
	return &Celebration{cfg: cfg, timers: make(map[string]*arena.TaskHandle)}
}

// ParseCelebration creates the module from key/value settings.
func ParseCelebration(kv map[string]string) (*Celebration, error) {
	var cfg CelebrationConfig
	if err := arena.ParseSettings(kv, Prefix, &cfg); err != nil {
		return nil, err
	}
	return NewCelebration(cfg), nil
}

func (*Celebration) Name() string  { return CelebrationName }
func (*Celebration) Priority() int { return arena.PriorityHigh }

// ClaimEnd claims every end with winners.
func (c *Celebration) ClaimEnd(a *arena.Arena, result *arena.Result) (int, bool) {
	if result.Draw || len(result.WinnerNames()) == 0 {
		return 0, false
	}
	winners := result.WinnerNames()
	for _, w := range winners {
		a.Broadcast(arena.Msg("celebration.victory", w))
	}
	a.DistributeRewards(*result)

	c.timers[a.Name()].Cancel()
	c.timers[a.Name()] = a.Scheduler().ScheduleRepeating(c.cfg.Interval, func() {
		if a.Status() != arena.StatusEnding {
			c.stop(a)
			return
		}
		a.Broadcast(arena.Msg("celebration.cheer", winners[0]))
	})
	return c.cfg.Ticks, true
}

// HandleReset stops the celebration.
func (c *Celebration) HandleReset(a *arena.Arena, _ bool) {
	c.stop(a)
}

func (c *Celebration) stop(a *arena.Arena) {
	c.timers[a.Name()].Cancel()
	delete(c.timers, a.Name())
}
