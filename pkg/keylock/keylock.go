// Package keylock serializa operaciones por clave (ID de factura, ID de producto)
// sin bloquear claves distintas entre sí.
package keylock

import (
	"sort"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock mutex por clave. Las entradas sin referencias se liberan.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New crea un KeyLock vacío.
func New() *KeyLock {
	return &KeyLock{entries: make(map[string]*entry)}
}

// Lock bloquea la clave y devuelve la función que la libera.
func (k *KeyLock) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() { k.release(key, e) }
}

// LockAll bloquea varias claves en orden lexicográfico (sin duplicados) para evitar interbloqueos.
// La función devuelta libera todas en orden inverso.
func (k *KeyLock) LockAll(keys []string) (unlock func()) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, key)
	}
	sort.Strings(uniq)

	unlocks := make([]func(), 0, len(uniq))
	for _, key := range uniq {
		unlocks = append(unlocks, k.Lock(key))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func (k *KeyLock) release(key string, e *entry) {
	e.mu.Unlock()
	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()
}

// size número de claves con referencias vivas (tests).
func (k *KeyLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
