package arena

import "sort"

// Lives is the life map shared by lives based goals. Keys are team names or
// participant keys, depending on the goal. A removed entry means eliminated.
//
// Lives is a helper meant to be embedded by composition; it does no locking
// because all goal state is mutated on the arena goroutine.
type Lives struct {
	m map[string]int
}

// Init sets the entry to n unless it already exists. It reports whether the
// entry was created. Late joiners therefore never reset a running counter.
func (l *Lives) Init(key string, n int) bool {
	if l.m == nil {
		l.m = make(map[string]int)
	}
	if _, ok := l.m[key]; ok {
		return false
	}
	l.m[key] = n
	return true
}

// Set overwrites the entry.
func (l *Lives) Set(key string, n int) {
	if l.m == nil {
		l.m = make(map[string]int)
	}
	l.m[key] = n
}

// Decrement removes one life and returns the lives left. An entry reaching
// zero is removed. Missing entries report zero and stay missing.
func (l *Lives) Decrement(key string) int {
	n, ok := l.m[key]
	if !ok {
		return 0
	}
	n--
	if n <= 0 {
		delete(l.m, key)
		return 0
	}
	l.m[key] = n
	return n
}

// Remove deletes the entry.
func (l *Lives) Remove(key string) {
	delete(l.m, key)
}

// Remaining returns the lives left for key and whether the entry exists.
func (l *Lives) Remaining(key string) (int, bool) {
	n, ok := l.m[key]
	return n, ok
}

// Keys returns the keys that still have lives, sorted.
func (l *Lives) Keys() []string {
	keys := make([]string, 0, len(l.m))
	for k := range l.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries with lives left.
func (l *Lives) Len() int {
	return len(l.m)
}

// Snapshot returns a copy of the life map as scores.
func (l *Lives) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(l.m))
	for k, v := range l.m {
		out[k] = float64(v)
	}
	return out
}

// Clear removes every entry.
func (l *Lives) Clear() {
	clear(l.m)
}
