// Package module provides lifecycle extensions for arenas.
package module

import (
	"fmt"
	"strings"

	"github.com/oriumgames/arena"
)

// Prefix is the settings prefix module configuration is read with.
const Prefix = "MODULE_"

// New creates the module with the given name from key/value settings. giver
// delivers rewards and may be nil when no rewards module is configured.
func New(name string, kv map[string]string, giver Giver) (arena.Module, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SpectateName:
		return NewSpectate(), nil
	case RewardsName:
		if giver == nil {
			return nil, fmt.Errorf("rewards module needs a giver")
		}
		return ParseRewards(kv, giver)
	case CelebrationName:
		return ParseCelebration(kv)
	default:
		return nil, fmt.Errorf("unknown module %q", name)
	}
}

// Parse creates every module of a comma separated list.
func Parse(names string, kv map[string]string, giver Giver) ([]arena.Module, error) {
	var out []arena.Module
	for _, name := range strings.Split(names, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m, err := New(name, kv, giver)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
