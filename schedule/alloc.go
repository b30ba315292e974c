package schedule

import "github.com/yuezato/xorslp-ec/slp"

// Alloc assigns a fixed number of cache-resident pebble slots to terms
// on demand, evicting according to strategy when capacity is exhausted.
type Alloc struct {
	strategy Strategy
	capacity int
	mapping  map[slp.Term]int
	ru       *RecentlyUse[slp.Term]
	frees    []int
	evictCnt int
}

func NewAlloc(capacity int, strategy Strategy) *Alloc {
	frees := make([]int, capacity)
	for i := range frees {
		frees[i] = capacity - 1 - i
	}
	return &Alloc{
		strategy: strategy,
		capacity: capacity,
		mapping:  make(map[slp.Term]int),
		ru:       NewRecentlyUse[slp.Term](),
		frees:    frees,
	}
}

// Evictions returns the number of forced evictions performed so far.
func (a *Alloc) Evictions() int { return a.evictCnt }

// tryRelease frees a slot via eviction if none is free, returning false
// only when the cache itself holds nothing evictable (impossible once
// any term has been assigned).
func (a *Alloc) tryRelease() bool {
	victim, ok := a.ru.Evict(a.strategy)
	if !ok {
		return false
	}
	slotID := a.mapping[victim]
	delete(a.mapping, victim)
	a.frees = append(a.frees, slotID)
	a.evictCnt++
	return true
}

// Access records a use of t without assigning it a slot, for hot-window
// bookkeeping by callers that just need LRU/MRU position tracking.
func (a *Alloc) Access(t slp.Term) {
	a.ru.Access(t)
}

// Assign returns the pebble slot for t, assigning one (evicting if the
// cache is full) if t is not already resident.
func (a *Alloc) Assign(t slp.Term) int {
	if slot, ok := a.mapping[t]; ok {
		a.ru.Access(t)
		return slot
	}

	if len(a.frees) == 0 {
		if !a.tryRelease() {
			panic("schedule: no pebble available to evict from a non-empty cache")
		}
	}

	slot := a.frees[len(a.frees)-1]
	a.frees = a.frees[:len(a.frees)-1]
	a.mapping[t] = slot
	a.ru.Access(t)
	return slot
}

// Release explicitly frees t's slot, e.g. once its last consumer has
// run and it can never be read again.
func (a *Alloc) Release(t slp.Term) {
	slot, ok := a.mapping[t]
	if !ok {
		return
	}
	delete(a.mapping, t)
	a.ru.Remove(t)
	a.frees = append(a.frees, slot)
}

// Resident reports whether t currently occupies a slot.
func (a *Alloc) Resident(t slp.Term) bool {
	_, ok := a.mapping[t]
	return ok
}

// HotWindow returns up to n of the most recently used resident terms.
func (a *Alloc) HotWindow(n int) []slp.Term {
	return a.ru.Window(n)
}
