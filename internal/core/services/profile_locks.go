package services

import "sync"

// profileLocks serializes the load, change and save cycles of one profile.
// Every profile document is rewritten whole, so two unsynchronized writers
// would drop each other's changes. The lock is not reentrant: a holder must
// not call another method that locks the same profile.
type profileLocks struct {
	m sync.Map
}

func newProfileLocks() *profileLocks {
	return &profileLocks{}
}

func (l *profileLocks) lock(profileID string) (unlock func()) {
	v, _ := l.m.LoadOrStore(profileID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
