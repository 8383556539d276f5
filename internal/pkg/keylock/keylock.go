package keylock

import "sync"

// Keyed provides per-key mutual exclusion. Bid placement and settlement for a
// listing take the listing's lock so the read-leader/insert/notify window is
// serialized within the process.
type Keyed struct {
	mu    sync.Mutex
	locks map[uint]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *Keyed {
	return &Keyed{locks: make(map[uint]*entry)}
}

// Lock acquires the mutex for key and returns the unlock func.
func (k *Keyed) Lock(key uint) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
