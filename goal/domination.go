package goal

import (
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oriumgames/arena"
)

// DominationName is the configuration name of Domination.
const DominationName = "domination"

// DominationConfig configures Domination.
type DominationConfig struct {
	// Points lists the control points as "x,y,z;x,y,z".
	Points string `env:"POINTS"`

	// ClaimRange is the distance within which a fighter is present at a point.
	ClaimRange float64 `env:"CLAIM_RANGE" envDefault:"3"`

	// ClaimTicks and UnclaimTicks are the time a transition takes.
	ClaimTicks   int `env:"CLAIM_TICKS" envDefault:"60"`
	UnclaimTicks int `env:"UNCLAIM_TICKS" envDefault:"60"`

	// Interval is the period of the evaluation tick.
	Interval int `env:"INTERVAL" envDefault:"20"`

	// Score wins the match once a team reached it.
	Score float64 `env:"SCORE" envDefault:"100"`

	// OnlyWhenLeading awards ticks only to the team owning strictly the most points.
	OnlyWhenLeading bool `env:"ONLY_WHEN_LEADING"`
}

// PointState is the state of a control point.
type PointState int

const (
	PointUnclaimed PointState = iota
	PointClaiming
	PointClaimed
	PointUnclaiming
)

// String returns the string representation of the point state.
func (s PointState) String() string {
	switch s {
	case PointClaiming:
		return "Claiming"
	case PointClaimed:
		return "Claimed"
	case PointUnclaiming:
		return "Unclaiming"
	default:
		return "Unclaimed"
	}
}

// point is the contest record of one control point. It owns at most one
// timer; the timer callback is the only place owner changes.
type point struct {
	loc        arena.Location
	owner      *arena.Team
	contesting *arena.Team
	claiming   bool
	timer      *arena.TaskHandle
}

func (p *point) state() PointState {
	switch {
	case p.timer.Active() && p.claiming:
		return PointClaiming
	case p.timer.Active():
		return PointUnclaiming
	case p.owner != nil:
		return PointClaimed
	default:
		return PointUnclaimed
	}
}

// Domination scores teams for holding control points. Every interval each
// point is evaluated against the teams present at it: a lone team claims an
// unclaimed point, a point whose owner is contested or absent while others
// are present is unclaimed, and owners earn a score tick per point held.
type Domination struct {
	arena.NopGoal
	ender

	cfg    DominationConfig
	points map[cube.Pos]*point
	order  []cube.Pos
	scores map[string]float64
	ticker *arena.TaskHandle
}

// NewDomination creates the goal for the given control points.
func NewDomination(cfg DominationConfig, points ...arena.Location) *Domination {
	d := &Domination{
		cfg:    cfg,
		points: make(map[cube.Pos]*point),
		scores: make(map[string]float64),
	}
	for _, loc := range points {
		pos := loc.Block()
		if _, ok := d.points[pos]; ok {
			continue
		}
		d.points[pos] = &point{loc: loc}
		d.order = append(d.order, pos)
	}
	return d
}

// ParseDomination creates the goal from key/value settings.
func ParseDomination(kv map[string]string) (*Domination, error) {
	var cfg DominationConfig
	if err := arena.ParseSettings(kv, Prefix, &cfg); err != nil {
		return nil, err
	}
	locs, err := arena.ParseLocations(cfg.Points)
	if err != nil {
		return nil, fmt.Errorf("domination points: %w", err)
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("domination needs at least one point")
	}
	return NewDomination(cfg, locs...), nil
}

func (d *Domination) Name() string { return DominationName }

func (d *Domination) Attach(a *arena.Arena) { d.a = a }

// Point returns the state and owner of the control point at pos.
func (d *Domination) Point(pos cube.Pos) (PointState, *arena.Team, bool) {
	p, ok := d.points[pos]
	if !ok {
		return PointUnclaimed, nil, false
	}
	return p.state(), p.owner, true
}

// ActiveTimers returns the number of points with a running transition.
func (d *Domination) ActiveTimers() int {
	n := 0
	for _, p := range d.points {
		if p.timer.Active() {
			n++
		}
	}
	return n
}

func (d *Domination) OnEnter(p *arena.Participant) {
	if t := p.Team(); t != nil {
		if _, ok := d.scores[t.Name()]; !ok {
			d.scores[t.Name()] = 0
		}
	}
}

func (d *Domination) OnStart() {
	d.ender.reset()
	d.clearPoints()
	clear(d.scores)
	for _, t := range d.a.Teams() {
		if t.Len() > 0 {
			d.scores[t.Name()] = 0
		}
	}
	d.ticker.Cancel()
	d.ticker = d.a.Scheduler().ScheduleRepeating(d.cfg.Interval, d.tick)
}

// ShouldEnd reports whether a team reached the score or fewer than two teams
// are left fighting.
func (d *Domination) ShouldEnd() bool {
	if d.a.Status() != arena.StatusFighting {
		return false
	}
	if len(standingTeams(d.a)) < 2 {
		return true
	}
	for _, s := range d.scores {
		if s >= d.cfg.Score {
			return true
		}
	}
	return false
}

func (d *Domination) CommitEnd(force bool) {
	if !force && !d.ShouldEnd() {
		return
	}
	d.ticker.Cancel()
	result := arena.Result{Reason: "domination"}
	if standing := standingTeams(d.a); len(standing) == 1 {
		result.Winners = standing
	} else if len(standing) == 0 {
		result.Draw = true
	} else {
		result.Winners = d.leaders()
	}
	d.commit(result)
}

func (d *Domination) Scores() map[string]float64 {
	out := make(map[string]float64, len(d.scores))
	for k, v := range d.scores {
		out[k] = v
	}
	return out
}

func (d *Domination) Reset(bool) {
	d.ticker.Cancel()
	d.ticker = nil
	d.clearPoints()
	clear(d.scores)
	d.ender.reset()
}

func (d *Domination) clearPoints() {
	for _, p := range d.points {
		p.timer.Cancel()
		p.timer = nil
		p.owner = nil
		p.contesting = nil
		p.claiming = false
	}
}

// leaders returns the teams sharing the highest score.
func (d *Domination) leaders() []*arena.Team {
	var out []*arena.Team
	best := -1.0
	for _, t := range d.a.Teams() {
		s, ok := d.scores[t.Name()]
		if !ok {
			continue
		}
		switch {
		case s > best:
			best = s
			out = []*arena.Team{t}
		case s == best:
			out = append(out, t)
		}
	}
	return out
}

// presence returns the distinct teams with a fighter in range of each point,
// in team order.
func (d *Domination) presence() map[cube.Pos][]*arena.Team {
	out := make(map[cube.Pos][]*arena.Team, len(d.points))
	rangeSq := d.cfg.ClaimRange * d.cfg.ClaimRange
	for _, t := range d.a.Teams() {
		for _, pos := range d.order {
			pt := d.points[pos]
			for _, m := range t.Members() {
				if m.Status() != arena.PlayerFight {
					continue
				}
				loc, ok := d.a.Host().Position(m.ID())
				if !ok || (loc.World != pt.loc.World && loc.World != "" && pt.loc.World != "") {
					continue
				}
				if loc.DistanceSquared(pt.loc) <= rangeSq {
					out[pos] = append(out[pos], t)
					break
				}
			}
		}
	}
	return out
}

// tick evaluates every point and awards score ticks.
func (d *Domination) tick() {
	if d.a.Status() != arena.StatusFighting {
		return
	}
	present := d.presence()
	ticks := make(map[*arena.Team]int)
	for _, pos := range d.order {
		d.evaluate(pos, d.points[pos], present[pos], ticks)
	}
	if d.award(ticks) {
		d.a.ScoresChanged()
	}
	if d.ShouldEnd() {
		d.CommitEnd(false)
	}
}

// evaluate applies the per point rules for one evaluation tick.
func (d *Domination) evaluate(pos cube.Pos, pt *point, present []*arena.Team, ticks map[*arena.Team]int) {
	switch {
	case len(present) == 0:
		if pt.timer.Active() {
			d.cancel(pt)
		}
		if pt.owner != nil {
			ticks[pt.owner]++
		}

	case len(present) == 1 && pt.owner == nil:
		t := present[0]
		switch {
		case !pt.timer.Active():
			d.start(pos, pt, t, true)
		case pt.contesting != t:
			d.start(pos, pt, t, true)
		}

	case len(present) == 1 && pt.owner == present[0]:
		if pt.timer.Active() {
			// Re-secured before the unclaim completed.
			d.cancel(pt)
			d.a.Broadcast(arena.Msg("domination.secured", pt.owner.Name(), pt.loc.String()))
		} else {
			ticks[pt.owner]++
		}

	case pt.owner == nil:
		// Several teams at an unclaimed point.
		if pt.timer.Active() {
			d.cancel(pt)
		}

	default:
		// The owner is contested or absent while others hold the point. A
		// running unclaim keeps running.
		if !pt.timer.Active() {
			d.start(pos, pt, pt.owner, false)
		}
	}
}

// start replaces the point's timer with a claim or unclaim transition.
func (d *Domination) start(pos cube.Pos, pt *point, team *arena.Team, claiming bool) {
	d.cancel(pt)
	pt.contesting = team
	pt.claiming = claiming

	ticks := d.cfg.UnclaimTicks
	msg := arena.Msg("domination.unclaiming", team.Name(), pt.loc.String())
	if claiming {
		ticks = d.cfg.ClaimTicks
		msg = arena.Msg("domination.claiming", team.Name(), pt.loc.String())
	}
	var h *arena.TaskHandle
	h = d.a.Scheduler().ScheduleOnce(ticks, func() { d.fire(pos, h) })
	pt.timer = h
	d.a.Broadcast(msg)
}

func (d *Domination) cancel(pt *point) {
	pt.timer.Cancel()
	pt.timer = nil
	pt.contesting = nil
}

// fire completes a transition. It is the only place point ownership changes.
func (d *Domination) fire(pos cube.Pos, h *arena.TaskHandle) {
	pt, ok := d.points[pos]
	if !ok || pt.timer != h {
		d.a.Logger().Debug("arena: stale control point timer", "arena", d.a.Name(), "point", pos)
		return
	}
	if d.a.Status() != arena.StatusFighting {
		pt.timer = nil
		return
	}
	team := pt.contesting
	pt.timer = nil
	pt.contesting = nil
	if pt.claiming {
		pt.owner = team
		d.a.Broadcast(arena.Msg("domination.claimed", team.Name(), pt.loc.String()))
	} else {
		pt.owner = nil
		d.a.Broadcast(arena.Msg("domination.unclaimed", team.Name(), pt.loc.String()))
	}
	pt.claiming = false
	d.a.ScoresChanged()
}

// award adds score ticks. With OnlyWhenLeading only the team owning strictly
// the most points scores; a tie scores nobody.
func (d *Domination) award(ticks map[*arena.Team]int) bool {
	if len(ticks) == 0 {
		return false
	}
	if d.cfg.OnlyWhenLeading {
		owned := make(map[*arena.Team]int)
		for _, pt := range d.points {
			if pt.owner != nil {
				owned[pt.owner]++
			}
		}
		var leader *arena.Team
		best, tied := -1, false
		for t, n := range owned {
			switch {
			case n > best:
				leader, best, tied = t, n, false
			case n == best:
				tied = true
			}
		}
		if leader == nil || tied {
			return false
		}
		ticks = map[*arena.Team]int{leader: ticks[leader]}
	}
	changed := false
	for t, n := range ticks {
		if n > 0 {
			d.scores[t.Name()] += float64(n)
			changed = true
		}
	}
	return changed
}
