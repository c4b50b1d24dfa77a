package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per user id. All mutations of a user's
// inventory, floors and plots serialize on that user's mutex.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given user id
func (lm *LockManager) GetLock(userID int64) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires a single user's mutex and returns the unlock func
func (lm *LockManager) Lock(userID int64) func() {
	mu := lm.GetLock(userID)
	mu.Lock()
	return mu.Unlock
}

// LockPair acquires two users' mutexes in ascending id order, so concurrent
// cross-user operations (market buy, steal) can never deadlock. Both ids
// may be equal, in which case only one mutex is taken.
func (lm *LockManager) LockPair(a, b int64) func() {
	if a == b {
		return lm.Lock(a)
	}
	if a > b {
		a, b = b, a
	}
	first, second := lm.GetLock(a), lm.GetLock(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
