package module

import (
	"github.com/google/uuid"
	"github.com/oriumgames/arena"
)

// RewardsName is the configuration name of Rewards.
const RewardsName = "rewards"

// Giver delivers a named reward to a participant.
type Giver interface {
	Give(id uuid.UUID, reward string) error
}

// RewardsConfig configures Rewards. Empty rewards are not handed out.
type RewardsConfig struct {
	Win  string `env:"REWARD_WIN"`
	Lose string `env:"REWARD_LOSE"`
	Kill string `env:"REWARD_KILL"`
}

// Rewards hands out rewards at the end of a match.
type Rewards struct {
	cfg   RewardsConfig
	giver Giver
}

// NewRewards creates the module.
func NewRewards(cfg RewardsConfig, giver Giver) *Rewards {
	return &Rewards{cfg: cfg, giver: giver}
}

// ParseRewards creates the module from key/value settings.
func ParseRewards(kv map[string]string, giver Giver) (*Rewards, error) {
	var cfg RewardsConfig
	if err := arena.ParseSettings(kv, Prefix, &cfg); err != nil {
		return nil, err
	}
	return NewRewards(cfg, giver), nil
}

func (*Rewards) Name() string  { return RewardsName }
func (*Rewards) Priority() int { return arena.PriorityLow }

// Reward gives winners and losers their rewards, plus one kill reward per kill.
func (r *Rewards) Reward(a *arena.Arena, result arena.Result) {
	for _, p := range a.Members() {
		reward := r.cfg.Lose
		if result.Won(p) {
			reward = r.cfg.Win
		} else if result.Draw {
			reward = ""
		}
		r.give(a, p, reward)
		if r.cfg.Kill != "" {
			for i := 0; i < p.Stats().Kills; i++ {
				r.give(a, p, r.cfg.Kill)
			}
		}
	}
}

func (r *Rewards) give(a *arena.Arena, p *arena.Participant, reward string) {
	if reward == "" {
		return
	}
	if err := r.giver.Give(p.ID(), reward); err != nil {
		a.Logger().Warn("arena: reward failed", "arena", a.Name(), "participant", p.Name(), "reward", reward, "error", err)
		return
	}
	a.Message(p, arena.Msg("rewards.received", reward))
}
