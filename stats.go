package arena

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultStatsBuffer is the number of deltas a StatsWriter queues.
const DefaultStatsBuffer = 1024

// ErrStatsBacklog is returned when a StatsWriter's queue is full and the
// delta was dropped.
var ErrStatsBacklog = errors.New("arena: statistics queue full")

type statsRecord struct {
	arena string
	id    uuid.UUID
	delta StatDelta
}

// StatsWriter hands statistics to a sink on a goroutine of its own, so a slow
// sink never holds up the arena goroutine. It implements StatsSink.
//
// Writes are fire-and-forget: failures are logged by the writer. After Close,
// writes go to the sink synchronously.
type StatsWriter struct {
	sink StatsSink
	log  *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan statsRecord
	done   chan struct{}
}

// NewStatsWriter starts a writer in front of sink. A size below one uses
// DefaultStatsBuffer.
func NewStatsWriter(sink StatsSink, log *slog.Logger, size int) *StatsWriter {
	if log == nil {
		log = slog.Default()
	}
	if size < 1 {
		size = DefaultStatsBuffer
	}
	w := &StatsWriter{
		sink:  sink,
		log:   log,
		queue: make(chan statsRecord, size),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w
}

// RecordStatistics queues the delta. ctx only guards the call itself.
func (w *StatsWriter) RecordStatistics(ctx context.Context, arena string, id uuid.UUID, delta StatDelta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec := statsRecord{arena: arena, id: id, delta: delta}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return w.write(rec)
	}
	select {
	case w.queue <- rec:
		return nil
	default:
		return ErrStatsBacklog
	}
}

// Close writes every queued delta and stops the writer goroutine.
func (w *StatsWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}

func (w *StatsWriter) loop() {
	defer close(w.done)
	for rec := range w.queue {
		if err := w.write(rec); err != nil {
			w.log.Error("arena: persist statistics", "arena", rec.arena, "participant", rec.id, "error", err)
		}
	}
}

func (w *StatsWriter) write(rec statsRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()
	return w.sink.RecordStatistics(ctx, rec.arena, rec.id, rec.delta)
}
