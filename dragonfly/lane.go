package dragonfly

import "sync"

// lane runs submitted calls one after another on a goroutine of its own,
// in submission order. A lane without pending calls holds no goroutine.
type lane struct {
	mu      sync.Mutex
	pending []func()
	active  bool
}

// submit queues fn without blocking.
func (l *lane) submit(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	if l.active {
		l.mu.Unlock()
		return
	}
	l.active = true
	l.mu.Unlock()
	go l.drain()
}

func (l *lane) drain() {
	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			l.active = false
			l.mu.Unlock()
			return
		}
		fn := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()
		fn()
	}
}
