package services

import (
	"sync"
)

type complaintLock struct {
	mu   sync.Mutex
	refs int
}

// complaintLocks serializes writes per complaint id so a status transition
// and a notice approval racing on the same row cannot interleave their
// read-modify-write cycles. Entries are refcounted and removed when the last
// holder releases, so the map only holds ids with writes in flight.
var complaintLocks = struct {
	mu    sync.Mutex
	locks map[uint]*complaintLock
}{locks: make(map[uint]*complaintLock)}

// lockComplaint acquires the write lock for a complaint id and returns the
// release function.
func lockComplaint(id uint) func() {
	complaintLocks.mu.Lock()
	l, ok := complaintLocks.locks[id]
	if !ok {
		l = &complaintLock{}
		complaintLocks.locks[id] = l
	}
	l.refs++
	complaintLocks.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		complaintLocks.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(complaintLocks.locks, id)
		}
		complaintLocks.mu.Unlock()
	}
}
