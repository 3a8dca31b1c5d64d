package linhash

// Stats is a point-in-time snapshot of the table counters.
type Stats struct {
	CurrMod      int64
	NextMod      int64
	SplitPointer int
	BucketCount  int
	TotalBlocks  int
	UniqueCount  int
	Splits       int
	Rounds       int // completed rounds
	Density      float64
}

// Stats returns the current counters.
func (t *Table) Stats() Stats {
	t.m.Lock()
	defer t.m.Unlock()

	return Stats{
		CurrMod:      t.currMod,
		NextMod:      t.nextMod,
		SplitPointer: t.splitPointer,
		BucketCount:  len(t.buckets),
		TotalBlocks:  t.totalBlocks,
		UniqueCount:  t.uniques,
		Splits:       t.splits,
		Rounds:       t.rounds,
		Density:      t.density(),
	}
}

// Config returns the configuration the table was created with.
func (t *Table) Config() Config {
	return t.cfg
}

// Density returns the fraction of allocated block capacity used by values.
func (t *Table) Density() float64 {
	t.m.Lock()
	defer t.m.Unlock()

	return t.density()
}

// NeedsSplit reports whether the table is above its split threshold.
func (t *Table) NeedsSplit() bool {
	t.m.Lock()
	defer t.m.Unlock()

	return t.needsSplit()
}

// Address returns the bucket key v resolves to.
func (t *Table) Address(v int64) int {
	t.m.Lock()
	defer t.m.Unlock()

	return t.address(v)
}

// Contains reports whether v has been inserted.
func (t *Table) Contains(v int64) bool {
	t.m.Lock()
	defer t.m.Unlock()

	key := t.address(v)
	if key >= len(t.buckets) {
		return false
	}
	return t.buckets[key].contains(v)
}

// Buckets calls fn for every bucket in key order until fn returns false.
// The blocks passed to fn are owned by the table and must not be retained
// or modified, and fn must not call methods on t.
func (t *Table) Buckets(fn func(key int, blocks [][]int64) bool) {
	t.m.Lock()
	defer t.m.Unlock()

	for key, b := range t.buckets {
		if !fn(key, b.blocks) {
			return
		}
	}
}
