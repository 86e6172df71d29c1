package integration

import (
	"sync"

	"github.com/juju/fslock"
)

// keyedMutex serializes goroutines working on the same key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// lockPath takes the in-process lock for path and then the lock file
// path.lock, which guards against other processes.
func (o *Orchestrator) lockPath(path string) (func(), error) {
	release := o.locks.lock(path)
	fl := fslock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		release()
		return nil, err
	}
	return func() {
		fl.Unlock()
		release()
	}, nil
}
