package dragonfly

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
	"golang.org/x/text/language"
)

type fakeReader struct {
	perArena map[string]arena.StatDelta
	total    arena.StatDelta
}

func (r fakeReader) Load(_ context.Context, name string, _ uuid.UUID) (arena.StatDelta, error) {
	return r.perArena[name], nil
}

func (r fakeReader) Total(context.Context, uuid.UUID) (arena.StatDelta, error) {
	return r.total, nil
}

func TestStatsLookup(t *testing.T) {
	t.Parallel()

	r := fakeReader{
		perArena: map[string]arena.StatDelta{"alpha": {Kills: 3, Played: 1}},
		total:    arena.StatDelta{Kills: 7, Wins: 2, Played: 4},
	}
	c := NewCatalog()
	tests := []struct {
		name   string
		arena  string
		scoped bool
		want   string
	}{
		{"one arena", "alpha", true, "§6alpha§7: kills §f3§7, deaths §f0§7, wins §f0§7, losses §f0§7, played §f1"},
		{"all arenas", "", false, "§6all arenas§7: kills §f7§7, deaths §f0§7, wins §f2§7, losses §f0§7, played §f4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := lookupStats(context.Background(), r, tt.arena, tt.scoped, uuid.New())
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if got := c.Render(language.English, statsSummary(tt.arena, tt.scoped, d)); got != tt.want {
				t.Fatalf("summary = %q, want %q", got, tt.want)
			}
		})
	}
}
