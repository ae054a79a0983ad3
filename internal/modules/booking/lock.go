package booking

import "sync"

// facilityLocks serializes booking creation per facility. The check-then-
// insert in CreateBooking is not atomic on its own; with a single process
// group and a single database, one writer per facility at a time closes the
// race without a database-level exclusion constraint.
type facilityLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newFacilityLocks() *facilityLocks {
	return &facilityLocks{locks: make(map[int64]*sync.Mutex)}
}

func (f *facilityLocks) Lock(facilityID int64) *sync.Mutex {
	f.mu.Lock()
	l, ok := f.locks[facilityID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[facilityID] = l
	}
	f.mu.Unlock()

	l.Lock()
	return l
}
