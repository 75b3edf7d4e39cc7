package arenad

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/df-mc/jsonc"
	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/goal"
	"github.com/oriumgames/arena/module"
)

// Settings keys naming the goal and modules of an arena. Every other key is
// passed through to the arena, goal and module parsers.
const (
	KeyGoal    = "GOAL"
	KeyModules = "MODULES"
)

// LoadArenas reads arena definitions: a JSON object with comments mapping
// arena names to their settings.
func LoadArenas(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arenas: %w", err)
	}
	return ParseArenas(data)
}

// ParseArenas decodes arena definitions. Setting keys are upper-cased.
func ParseArenas(data []byte) (map[string]map[string]string, error) {
	var raw map[string]map[string]string
	if err := jsonc.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode arenas: %w", err)
	}
	defs := make(map[string]map[string]string, len(raw))
	for name, kv := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("decode arenas: empty arena name")
		}
		settings := make(map[string]string, len(kv))
		for k, v := range kv {
			settings[strings.ToUpper(strings.TrimSpace(k))] = v
		}
		defs[name] = settings
	}
	return defs, nil
}

// Builders creates one builder per definition, in name order.
func Builders(defs map[string]map[string]string, giver module.Giver) ([]*arena.Builder, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	builders := make([]*arena.Builder, 0, len(names))
	for _, name := range names {
		kv := defs[name]
		g, err := goal.New(kv[KeyGoal], kv)
		if err != nil {
			return nil, fmt.Errorf("arena %s: %w", name, err)
		}
		mods, err := module.Parse(kv[KeyModules], kv, giver)
		if err != nil {
			return nil, fmt.Errorf("arena %s: %w", name, err)
		}
		builders = append(builders, arena.NewBuilder(name).Settings(kv).Goal(g).Module(mods...))
	}
	return builders, nil
}
