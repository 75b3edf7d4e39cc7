package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestRecordStatisticsAccumulates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	id := uuid.New()

	if err := store.RecordStatistics(ctx, "castle", id, arena.StatDelta{Kills: 2, Deaths: 1, Played: 1, Wins: 1}); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := store.RecordStatistics(ctx, "castle", id, arena.StatDelta{Kills: 1, Deaths: 3, Played: 1, Losses: 1}); err != nil {
		t.Fatalf("record second: %v", err)
	}

	got, err := store.Load(ctx, "castle", id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := arena.StatDelta{Kills: 3, Deaths: 4, Wins: 1, Losses: 1, Played: 2}
	if got != want {
		t.Fatalf("stats = %+v, want %+v", got, want)
	}
}

func TestRecordStatisticsSeparatesArenas(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	id := uuid.New()

	if err := store.RecordStatistics(ctx, "castle", id, arena.StatDelta{Kills: 1, Played: 1}); err != nil {
		t.Fatalf("record castle: %v", err)
	}
	if err := store.RecordStatistics(ctx, "tower", id, arena.StatDelta{Kills: 4, Played: 1}); err != nil {
		t.Fatalf("record tower: %v", err)
	}

	castle, err := store.Load(ctx, "castle", id)
	if err != nil {
		t.Fatalf("load castle: %v", err)
	}
	if castle.Kills != 1 {
		t.Fatalf("castle kills = %d, want 1", castle.Kills)
	}
	total, err := store.Total(ctx, id)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.Kills != 5 || total.Played != 2 {
		t.Fatalf("total = %+v, want 5 kills and 2 played", total)
	}
}

func TestRecordStatisticsSkipsZeroDelta(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	id := uuid.New()

	if err := store.RecordStatistics(ctx, "castle", id, arena.StatDelta{}); err != nil {
		t.Fatalf("record: %v", err)
	}
	var n int
	if err := store.sqlDB.QueryRow("SELECT COUNT(*) FROM player_stats").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows = %d, want 0", n)
	}
}

func TestRecordStatisticsHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.RecordStatistics(ctx, "castle", uuid.New(), arena.StatDelta{Kills: 1}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoadUnknownIsZero(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	got, err := store.Load(context.Background(), "castle", uuid.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("stats = %+v, want zero", got)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.db")
	for i := 0; i < 2; i++ {
		store, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}

func TestUpSection(t *testing.T) {
	t.Parallel()

	got := upSection("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	if got != "\nCREATE TABLE a (x);\n" {
		t.Fatalf("up = %q", got)
	}
	if got := upSection("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("plain = %q", got)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
