package tournamentservice

import "sync"

// aliasLocks hands out one mutex per tournament alias. Entries are dropped
// once nobody holds or waits on them.
type aliasLocks struct {
	mu    sync.Mutex
	locks map[string]*aliasLock
}

type aliasLock struct {
	mu   sync.Mutex
	refs int
}

func newAliasLocks() *aliasLocks {
	return &aliasLocks{locks: make(map[string]*aliasLock)}
}

// lock blocks until alias is free and returns the matching unlock.
func (l *aliasLocks) lock(alias string) func() {
	l.mu.Lock()
	entry, ok := l.locks[alias]
	if !ok {
		entry = &aliasLock{}
		l.locks[alias] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, alias)
		}
		l.mu.Unlock()
	}
}

func (l *aliasLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
