package arena

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Well known spawn pools. Team spawns use the team name as pool.
const (
	PoolLounge    = "lounge"
	PoolSpectator = "spectator"
	PoolExit      = "exit"
)

// TeamLoungePool returns the lounge pool of a team.
func TeamLoungePool(team string) string {
	return team + PoolLounge
}

// SpawnStrategy decides how spawns are chosen from a pool.
type SpawnStrategy int

const (
	// SpawnSequential cycles through the pool in order.
	SpawnSequential SpawnStrategy = iota

	// SpawnRandom picks a uniformly random spawn.
	SpawnRandom

	// SpawnSmart spreads participants with the farthest point heuristic.
	SpawnSmart
)

// String returns the configuration name of the strategy.
func (s SpawnStrategy) String() string {
	switch s {
	case SpawnSequential:
		return "sequential"
	case SpawnRandom:
		return "random"
	case SpawnSmart:
		return "smart"
	default:
		return "unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the strategy can be
// read from configuration.
func (s *SpawnStrategy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "sequential":
		*s = SpawnSequential
	case "random":
		*s = SpawnRandom
	case "smart":
		*s = SpawnSmart
	default:
		return fmt.Errorf("unknown spawn strategy %q", text)
	}
	return nil
}

// SpawnSelector chooses destinations from named pools of spawn locations.
// Regions act as a fallback for pools without fixed spawns.
type SpawnSelector struct {
	pools   map[string][]Location
	regions map[string]Region
	cursor  map[string]int
	rng     *rand.Rand
}

// NewSpawnSelector creates a selector over the given pools and regions.
func NewSpawnSelector(pools map[string][]Location, regions map[string]Region) *SpawnSelector {
	if pools == nil {
		pools = make(map[string][]Location)
	}
	if regions == nil {
		regions = make(map[string]Region)
	}
	return &SpawnSelector{
		pools:   pools,
		regions: regions,
		cursor:  make(map[string]int),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Seed makes random selection deterministic.
func (s *SpawnSelector) Seed(seed uint64) {
	s.rng = rand.New(rand.NewPCG(seed, seed))
}

// Pool returns a copy of the spawns in a pool.
func (s *SpawnSelector) Pool(name string) []Location {
	out := make([]Location, len(s.pools[name]))
	copy(out, s.pools[name])
	return out
}

// Has reports whether a pool has spawns or a region to pick from.
func (s *SpawnSelector) Has(name string) bool {
	if len(s.pools[name]) > 0 {
		return true
	}
	_, ok := s.regions[name]
	return ok
}

// Region returns a named region.
func (s *SpawnSelector) Region(name string) (Region, bool) {
	r, ok := s.regions[name]
	return r, ok
}

// PickSequential returns the next spawn of the pool, wrapping around.
func (s *SpawnSelector) PickSequential(pool string) (Location, error) {
	spawns := s.pools[pool]
	if len(spawns) == 0 {
		return Location{}, noSpawn(pool)
	}
	i := s.cursor[pool] % len(spawns)
	s.cursor[pool] = i + 1
	return spawns[i], nil
}

// PickRandom returns a random spawn of the pool.
func (s *SpawnSelector) PickRandom(pool string) (Location, error) {
	spawns := s.pools[pool]
	if len(spawns) == 0 {
		return Location{}, noSpawn(pool)
	}
	return spawns[s.rng.IntN(len(spawns))], nil
}

// PickSmart returns the spawn of the pool that is farthest from the spawns
// already handed out, measured as the sum of squared distances. Without
// history the first spawn is returned.
func (s *SpawnSelector) PickSmart(pool string, history []Location) (Location, error) {
	spawns := s.pools[pool]
	if len(spawns) == 0 {
		return Location{}, noSpawn(pool)
	}
	if len(history) == 0 {
		return spawns[0], nil
	}
	return spawns[farthest(spawns, nil, history)], nil
}

// PickInsideRegion returns a random position on the floor of a region.
func (s *SpawnSelector) PickInsideRegion(name string) (Location, error) {
	r, ok := s.regions[name]
	if !ok {
		return Location{}, noSpawn(name)
	}
	lo, hi := r.Box.Min(), r.Box.Max()
	return Location{
		World: r.World,
		Pos: mgl64.Vec3{
			lo[0] + s.rng.Float64()*(hi[0]-lo[0]),
			lo[1],
			lo[2] + s.rng.Float64()*(hi[2]-lo[2]),
		},
	}, nil
}

// Pick selects one spawn of the pool with the strategy. Pools without fixed
// spawns fall back to a region of the same name.
func (s *SpawnSelector) Pick(pool string, strategy SpawnStrategy, history []Location) (Location, error) {
	if len(s.pools[pool]) == 0 {
		if _, ok := s.regions[pool]; ok {
			return s.PickInsideRegion(pool)
		}
		return Location{}, noSpawn(pool)
	}
	switch strategy {
	case SpawnRandom:
		return s.PickRandom(pool)
	case SpawnSmart:
		return s.PickSmart(pool, history)
	default:
		return s.PickSequential(pool)
	}
}

// Distribute selects n spawns of the pool at once, used to place a whole
// team. The smart strategy orders the pool by dispersion and wraps around
// when there are more participants than spawns.
func (s *SpawnSelector) Distribute(pool string, strategy SpawnStrategy, n int) ([]Location, error) {
	if n <= 0 {
		return nil, nil
	}
	if strategy == SpawnSmart && len(s.pools[pool]) > 0 {
		return s.DistributeSmart(pool, n)
	}
	out := make([]Location, 0, n)
	for i := 0; i < n; i++ {
		loc, err := s.Pick(pool, strategy, out)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

// DistributeSmart returns n spawns of the pool in smart order, starting from
// the first spawn of the pool.
func (s *SpawnSelector) DistributeSmart(pool string, n int) ([]Location, error) {
	spawns := s.pools[pool]
	if len(spawns) == 0 {
		return nil, noSpawn(pool)
	}
	order := SmartOrder(spawns, 0)
	out := make([]Location, n)
	for i := range out {
		out[i] = order[i%len(order)]
	}
	return out, nil
}

// SmartOrder orders spawns by greedy maximal dispersion. The spawn at index
// first is selected first; each following slot takes the remaining spawn with
// the largest sum of squared distances to all spawns selected so far. Ties go
// to the lowest index.
func SmartOrder(spawns []Location, first int) []Location {
	if len(spawns) == 0 {
		return nil
	}
	if first < 0 || first >= len(spawns) {
		first = 0
	}
	used := make([]bool, len(spawns))
	used[first] = true
	out := make([]Location, 1, len(spawns))
	out[0] = spawns[first]

	for len(out) < len(spawns) {
		i := farthest(spawns, used, out)
		used[i] = true
		out = append(out, spawns[i])
	}
	return out
}

// farthest returns the index of the unused spawn maximising the sum of
// squared distances to the selected locations.
func farthest(spawns []Location, used []bool, selected []Location) int {
	best, bestSum := -1, -1.0
	for i, c := range spawns {
		if used != nil && used[i] {
			continue
		}
		sum := 0.0
		for _, o := range selected {
			sum += c.DistanceSquared(o)
		}
		if sum > bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

func noSpawn(pool string) *Error {
	return &Error{Code: CodeNoSpawn, Message: "no spawn available in pool " + pool, Args: []any{pool}, Cause: ErrNoSpawn}
}
