package dragonfly

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
	"github.com/oriumgames/arena"
)

// statsQueryTimeout bounds a statistics lookup of the stats command.
const statsQueryTimeout = 2 * time.Second

// StatsReader reads persisted statistics. The sqlite store implements it.
type StatsReader interface {
	Load(ctx context.Context, arena string, id uuid.UUID) (arena.StatDelta, error)
	Total(ctx context.Context, id uuid.UUID) (arena.StatDelta, error)
}

// Commands returns the /arena command with its subcommands. The stats
// subcommand is only registered with a non-nil reader.
func Commands(host *Host, mgr *arena.Manager, stats StatsReader) cmd.Command {
	base := commandBase{host: host, mgr: mgr}
	runnables := []cmd.Runnable{
		joinCommand{commandBase: base},
		leaveCommand{commandBase: base},
		readyCommand{commandBase: base},
		loadoutCommand{commandBase: base},
		spectateCommand{commandBase: base},
		listCommand{commandBase: base},
		startCommand{commandBase: base},
		resetCommand{commandBase: base},
	}
	if stats != nil {
		runnables = append(runnables, statsCommand{commandBase: base, stats: stats})
	}
	return cmd.New("arena", "Join and manage arenas.", []string{"a"}, runnables...)
}

type commandBase struct {
	host *Host
	mgr  *arena.Manager
}

// report writes err to the output in the player's language.
func (c commandBase) report(p *player.Player, o *cmd.Output, err error) {
	var ae *arena.Error
	if errors.As(err, &ae) {
		o.Error(c.host.catalog.Render(p.Locale(), ae.Notice()))
		return
	}
	o.Error(err.Error())
}

func identityOf(p *player.Player) arena.Identity {
	return arena.Identity{ID: p.UUID(), Name: p.Name()}
}

type joinCommand struct {
	commandBase
	Sub   cmd.SubCommand       `cmd:"join"`
	Arena string               `cmd:"arena"`
	Team  cmd.Optional[string] `cmd:"team"`
}

func (c joinCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("Player-only command")
		return
	}
	team, _ := c.Team.Load()
	if err := c.mgr.Join(c.Arena, identityOf(p), team); err != nil {
		c.report(p, o, err)
	}
}

type leaveCommand struct {
	commandBase
	Sub cmd.SubCommand `cmd:"leave"`
}

func (c leaveCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("Player-only command")
		return
	}
	if err := c.mgr.Leave("", p.UUID(), arena.LeaveOptions{}); err != nil {
		c.report(p, o, err)
	}
}

type readyCommand struct {
	commandBase
	Sub cmd.SubCommand `cmd:"ready"`
}

func (c readyCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("Player-only command")
		return
	}
	if err := c.mgr.Ready(p.UUID()); err != nil {
		c.report(p, o, err)
	}
}

type loadoutCommand struct {
	commandBase
	Sub  cmd.SubCommand `cmd:"loadout"`
	Name string         `cmd:"name"`
}

func (c loadoutCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("Player-only command")
		return
	}
	if err := c.mgr.ChooseLoadout(p.UUID(), c.Name); err != nil {
		c.report(p, o, err)
	}
}

type spectateCommand struct {
	commandBase
	Sub   cmd.SubCommand `cmd:"spectate"`
	Arena string         `cmd:"arena"`
}

func (c spectateCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("Player-only command")
		return
	}
	if err := c.mgr.Spectate(c.Arena, identityOf(p)); err != nil {
		c.report(p, o, err)
	}
}

type listCommand struct {
	commandBase
	Sub cmd.SubCommand `cmd:"list"`
}

func (c listCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	names := c.mgr.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		_ = c.mgr.Inspect(name, func(a *arena.Arena) {
			lines = append(lines, fmt.Sprintf("%s (%s, %d)", name, a.Status(), len(a.Members())))
		})
	}
	o.Printf("Arenas: %s", strings.Join(lines, ", "))
}

type statsCommand struct {
	commandBase
	stats StatsReader
	Sub   cmd.SubCommand       `cmd:"stats"`
	Arena cmd.Optional[string] `cmd:"arena"`
}

// Run looks the statistics up off the world goroutine and messages the
// player once they are read.
func (c statsCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("Player-only command")
		return
	}
	id := p.UUID()
	name, scoped := c.Arena.Load()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), statsQueryTimeout)
		defer cancel()
		d, err := lookupStats(ctx, c.stats, name, scoped, id)
		if err != nil {
			c.host.log.Error("arena: read statistics", "player", id, "error", err)
			c.host.MessageTo(id, arena.Msg("stats.unavailable"))
			return
		}
		c.host.MessageTo(id, statsSummary(name, scoped, d))
	}()
}

func lookupStats(ctx context.Context, r StatsReader, name string, scoped bool, id uuid.UUID) (arena.StatDelta, error) {
	if scoped {
		return r.Load(ctx, name, id)
	}
	return r.Total(ctx, id)
}

func statsSummary(name string, scoped bool, d arena.StatDelta) arena.Message {
	if !scoped {
		name = "all arenas"
	}
	return arena.Msg("stats.summary", name, d.Kills, d.Deaths, d.Wins, d.Losses, d.Played)
}

type startCommand struct {
	commandBase
	Sub   cmd.SubCommand `cmd:"start"`
	Arena string         `cmd:"arena"`
}

func (c startCommand) Allow(src cmd.Source) bool { return operator(src) }

func (c startCommand) Run(src cmd.Source, o *cmd.Output, _ *world.Tx) {
	r, err := c.mgr.ForceStart(c.Arena)
	if err == nil && r.Err != nil {
		err = r.Err
	}
	if err != nil {
		if p, ok := src.(*player.Player); ok {
			c.report(p, o, err)
			return
		}
		o.Error(err.Error())
		return
	}
	o.Printf("Started %s", c.Arena)
}

type resetCommand struct {
	commandBase
	Sub   cmd.SubCommand     `cmd:"reset"`
	Arena string             `cmd:"arena"`
	Force cmd.Optional[bool] `cmd:"force"`
}

func (c resetCommand) Allow(src cmd.Source) bool { return operator(src) }

func (c resetCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	force, _ := c.Force.Load()
	if err := c.mgr.Reset(c.Arena, force); err != nil {
		o.Error(err.Error())
		return
	}
	o.Printf("Reset %s", c.Arena)
}

// operator allows the console and players in creative mode.
func operator(src cmd.Source) bool {
	p, ok := src.(*player.Player)
	if !ok {
		return true
	}
	return p.GameMode() == world.GameModeCreative
}
