package syncs

import "sync"

// KeyLock is a per-key mutex: callers using the same key are serialized,
// callers using different keys are not. Entries are dropped once no caller
// holds or waits for them. The zero value is ready to use.
type KeyLock struct {
	locks map[string]*keyEntry
	mu    sync.Mutex
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyLock creates a new [KeyLock].
func NewKeyLock() *KeyLock {
	return &KeyLock{locks: map[string]*keyEntry{}}
}

// Lock acquires the mutex for key, blocking while another caller holds it.
func (kl *KeyLock) Lock(key string) {
	kl.mu.Lock()

	if kl.locks == nil {
		kl.locks = map[string]*keyEntry{}
	}

	e, ok := kl.locks[key]
	if !ok {
		e = &keyEntry{}
		kl.locks[key] = e
	}

	e.refs++
	kl.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that is not locked
// panics, as with [sync.Mutex].
func (kl *KeyLock) Unlock(key string) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.locks[key]
	if !ok {
		panic("syncs: unlock of unlocked key " + key)
	}

	e.refs--
	if e.refs == 0 {
		delete(kl.locks, key)
	}

	e.mu.Unlock()
}

// Do runs fn while holding the lock for key.
func (kl *KeyLock) Do(key string, fn func() error) error {
	kl.Lock(key)
	defer kl.Unlock(key)

	return fn()
}

// Len reports how many keys are held or waited for.
func (kl *KeyLock) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	return len(kl.locks)
}
