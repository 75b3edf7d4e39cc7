package arena

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Location is a position in a named world. The empty world name refers to the
// host's default world.
type Location struct {
	World    string
	Pos      mgl64.Vec3
	Rotation cube.Rotation
}

// At returns a location in the default world at the given coordinates.
func At(x, y, z float64) Location {
	return Location{Pos: mgl64.Vec3{x, y, z}}
}

// Block returns the block position the location is in.
func (l Location) Block() cube.Pos {
	return cube.PosFromVec3(l.Pos)
}

// DistanceSquared returns the squared distance between two locations.
// Locations in different worlds are treated as being in the same space.
func (l Location) DistanceSquared(o Location) float64 {
	return l.Pos.Sub(o.Pos).LenSqr()
}

// String returns the location in the same format ParseLocation accepts.
func (l Location) String() string {
	s := fmt.Sprintf("%g,%g,%g", l.Pos[0], l.Pos[1], l.Pos[2])
	if l.Rotation != (cube.Rotation{}) {
		s += fmt.Sprintf(",%g,%g", l.Rotation.Yaw(), l.Rotation.Pitch())
	}
	if l.World != "" {
		s = l.World + "@" + s
	}
	return s
}

// ParseLocation parses a location written as "[world@]x,y,z[,yaw,pitch]".
func ParseLocation(s string) (Location, error) {
	var loc Location
	s = strings.TrimSpace(s)
	if world, rest, ok := strings.Cut(s, "@"); ok {
		loc.World = strings.TrimSpace(world)
		s = rest
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 5 {
		return Location{}, fmt.Errorf("parse location %q: expected 3 or 5 components, got %d", s, len(parts))
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Location{}, fmt.Errorf("parse location %q: %w", s, err)
		}
		values[i] = v
	}

	loc.Pos = mgl64.Vec3{values[0], values[1], values[2]}
	if len(values) == 5 {
		loc.Rotation = cube.Rotation{values[3], values[4]}
	}
	return loc, nil
}

// ParseLocations parses a semicolon separated list of locations.
func ParseLocations(s string) ([]Location, error) {
	var locs []Location
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		loc, err := ParseLocation(part)
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

// Region is an axis aligned box in a named world.
type Region struct {
	World string
	Box   cube.BBox
}

// NewRegion creates a region spanning the two corners.
func NewRegion(world string, a, b mgl64.Vec3) Region {
	return Region{
		World: world,
		Box:   cube.Box(a[0], a[1], a[2], b[0], b[1], b[2]),
	}
}

// ParseRegion parses a region written as "[world@]x1,y1,z1;x2,y2,z2".
func ParseRegion(s string) (Region, error) {
	locs, err := ParseLocations(s)
	if err != nil {
		return Region{}, err
	}
	if len(locs) != 2 {
		return Region{}, fmt.Errorf("parse region %q: expected two corners, got %d", s, len(locs))
	}
	world := locs[0].World
	if world == "" {
		world = locs[1].World
	}
	return NewRegion(world, locs[0].Pos, locs[1].Pos), nil
}

// Contains reports whether the location lies inside the region, borders
// included.
func (r Region) Contains(l Location) bool {
	if r.World != "" && l.World != "" && r.World != l.World {
		return false
	}
	lo, hi := r.Box.Min(), r.Box.Max()
	for i := 0; i < 3; i++ {
		if l.Pos[i] < lo[i] || l.Pos[i] > hi[i] {
			return false
		}
	}
	return true
}
