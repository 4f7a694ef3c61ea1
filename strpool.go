package oxyplot

import "sync"

// StringPool interns the string values of a data frame. String fields
// store the pool index of their value, so indices are handed out in order
// of first appearance. A pool may be shared by several frames.
type StringPool struct {
	mu    sync.Mutex
	pool  []string
	index map[string]int
}

func NewStringPool() *StringPool {
	return &StringPool{index: make(map[string]int)}
}

// Add interns s and returns its index.
func (sp *StringPool) Add(s string) int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	sp.pool = append(sp.pool, s)
	sp.index[s] = len(sp.pool) - 1
	return len(sp.pool) - 1
}

// Find returns the index of s or -1 if s was never added.
func (sp *StringPool) Find(s string) int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	return -1
}

// Get returns the string with index i, out of range indices give "--NA--".
func (sp *StringPool) Get(i int) string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if i < 0 || i >= len(sp.pool) {
		return "--NA--"
	}
	return sp.pool[i]
}
