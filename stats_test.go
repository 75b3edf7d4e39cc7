package arena_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oriumgames/arena"
	"github.com/oriumgames/arena/internal/arenatest"
	"github.com/oriumgames/arena/internal/mocks"
	"go.uber.org/mock/gomock"
)

// slowSink blocks every write until released.
type slowSink struct {
	release chan struct{}
	mu      sync.Mutex
	written int
}

func (s *slowSink) RecordStatistics(context.Context, string, uuid.UUID, arena.StatDelta) error {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written++
	return nil
}

func TestStatsWriterDoesNotWaitForSink(t *testing.T) {
	t.Parallel()

	sink := &slowSink{release: make(chan struct{})}
	w := arena.NewStatsWriter(sink, arenatest.Discard(), 8)

	returned := make(chan struct{})
	go func() {
		defer close(returned)
		for i := 0; i < 3; i++ {
			if err := w.RecordStatistics(context.Background(), "alpha", uuid.New(), arena.StatDelta{Kills: 1}); err != nil {
				t.Errorf("record: %v", err)
			}
		}
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("record waited for the sink")
	}

	close(sink.release)
	w.Close()
	if sink.written != 3 {
		t.Fatalf("written = %d, want 3 after close", sink.written)
	}
}

func TestStatsWriterReportsBacklog(t *testing.T) {
	t.Parallel()

	sink := &slowSink{release: make(chan struct{})}
	w := arena.NewStatsWriter(sink, arenatest.Discard(), 1)
	defer func() {
		close(sink.release)
		w.Close()
	}()

	var backlog bool
	for i := 0; i < 4 && !backlog; i++ {
		err := w.RecordStatistics(context.Background(), "alpha", uuid.New(), arena.StatDelta{Played: 1})
		backlog = errors.Is(err, arena.ErrStatsBacklog)
	}
	if !backlog {
		t.Fatal("full queue accepted every delta")
	}
}

func TestStatsWriterLogsSinkFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sink := mocks.NewMockStatsSink(ctrl)
	id := uuid.New()
	sink.EXPECT().
		RecordStatistics(gomock.Any(), "alpha", id, arena.StatDelta{Deaths: 1}).
		Return(errors.New("database is locked")).
		Times(1)

	w := arena.NewStatsWriter(sink, arenatest.Discard(), 0)
	if err := w.RecordStatistics(context.Background(), "alpha", id, arena.StatDelta{Deaths: 1}); err != nil {
		t.Fatalf("record: %v", err)
	}
	w.Close()
}

func TestStatsWriterWritesDirectlyAfterClose(t *testing.T) {
	t.Parallel()

	stats := arenatest.NewStats()
	w := arena.NewStatsWriter(stats, arenatest.Discard(), 0)
	w.Close()
	w.Close()

	id := uuid.New()
	if err := w.RecordStatistics(context.Background(), "alpha", id, arena.StatDelta{Wins: 1}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if stats.Totals[id].Wins != 1 {
		t.Fatalf("totals = %+v, want one win", stats.Totals[id])
	}
}

func TestManagerPersistsStatisticsOffLoop(t *testing.T) {
	t.Parallel()

	sink := &slowSink{release: make(chan struct{})}
	m := arena.NewManager(arenatest.NewHost(), arena.WithLogger(arenatest.Discard()), arena.WithStats(sink))
	if _, err := m.Add(arena.NewBuilder("alpha").Settings(arenatest.Settings())); err != nil {
		t.Fatalf("add arena: %v", err)
	}
	red := arena.Identity{ID: uuid.New(), Name: "red"}
	blue := arena.Identity{ID: uuid.New(), Name: "blue"}
	if err := m.Join("alpha", red, "red"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := m.Join("alpha", blue, "blue"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := m.ForceStart("alpha"); err != nil {
		t.Fatalf("force start: %v", err)
	}

	reset := make(chan struct{})
	go func() {
		defer close(reset)
		_ = m.Reset("alpha", true)
	}()
	select {
	case <-reset:
	case <-time.After(time.Second):
		t.Fatal("reset waited for the statistics sink")
	}

	close(sink.release)
	m.Close()
	if sink.written != 2 {
		t.Fatalf("written = %d, want 2", sink.written)
	}
}
