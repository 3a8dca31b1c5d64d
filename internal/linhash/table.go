package linhash

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Table is an in-memory linear hash table of int64 values.
//
// Buckets are addressed by value mod currMod, or by value mod nextMod for
// buckets below the split pointer, which have already been split in the
// current round. Growth happens one bucket at a time: whenever the density
// of the table exceeds the configured threshold after an insert, the bucket
// at the split pointer is split into itself and a new sibling at the end of
// the bucket list. When every bucket of the round has been split, the moduli
// double and the split pointer starts over at zero.
//
// Table supports no deletions. All methods are safe for concurrent use, but
// every call holds a single table-wide lock.
type Table struct {
	m   sync.Mutex
	cfg Config

	// buckets is indexed by bucket key; len(buckets) is the bucket count and
	// always lies in [currMod, nextMod].
	buckets []*bucket

	currMod      int64
	nextMod      int64 // always 2*currMod
	splitPointer int

	totalBlocks int
	uniques     int

	splits int
	rounds int
}

// New returns an empty table with two buckets of one block each.
func New(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		cfg:     cfg,
		currMod: 2,
		nextMod: 4,
	}
	t.buckets = []*bucket{
		newBucket(cfg.ValuesPerBlock()),
		newBucket(cfg.ValuesPerBlock()),
	}
	t.totalBlocks = 2

	return t, nil
}

// floorMod returns v mod m in [0, m).
func floorMod(v, m int64) int64 {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

// address returns the bucket key of v under the current round.
func (t *Table) address(v int64) int {
	key := floorMod(v, t.currMod)
	if key < int64(t.splitPointer) {
		key = floorMod(v, t.nextMod)
	}
	return int(key)
}

// bucket returns the bucket for key. A missing bucket is allocated with a
// single empty block.
func (t *Table) bucket(key int) *bucket {
	for len(t.buckets) <= key {
		t.buckets = append(t.buckets, newBucket(t.cfg.ValuesPerBlock()))
		t.totalBlocks++
	}
	return t.buckets[key]
}

// Insert adds v to the table and reports whether v was not present before.
// The occupancy check runs after every call, so a single Insert splits at
// most one bucket even if the table is still above the threshold afterwards.
func (t *Table) Insert(v int64) bool {
	t.m.Lock()
	defer t.m.Unlock()

	b := t.bucket(t.address(v))

	accepted := false
	if !b.contains(v) {
		t.uniques++
		if b.add(v, t.cfg) {
			t.totalBlocks++
		}
		accepted = true
	}

	if t.needsSplit() {
		t.split()
	}

	return accepted
}

func (t *Table) density() float64 {
	used := float64(t.cfg.ValueSize) * float64(t.uniques)
	allocated := float64(t.cfg.CapacityBytes) * float64(t.totalBlocks)
	return used / allocated
}

func (t *Table) needsSplit() bool {
	return t.density() > t.cfg.Threshold
}

// split rehashes the bucket at the split pointer with the finer modulus,
// distributing its values between itself and a new bucket appended at the
// end.
func (t *Table) split() {
	sp := t.splitPointer
	old := t.buckets[sp]
	moved := old.values()

	t.totalBlocks -= old.blockCount()
	t.buckets[sp] = newBucket(t.cfg.ValuesPerBlock())
	t.totalBlocks++

	t.buckets = append(t.buckets, newBucket(t.cfg.ValuesPerBlock()))
	t.totalBlocks++
	sibling := len(t.buckets) - 1

	for _, v := range moved {
		b := t.bucket(int(floorMod(v, t.nextMod)))
		if b.contains(v) {
			continue
		}
		if b.add(v, t.cfg) {
			t.totalBlocks++
		}
	}

	t.splitPointer++
	t.splits++

	log.WithFields(log.Fields{
		"bucket":  sp,
		"sibling": sibling,
		"moved":   len(moved),
		"kept":    t.buckets[sp].len(),
		"blocks":  t.totalBlocks,
	}).Debug("split bucket")

	if len(t.buckets) == int(t.nextMod) {
		t.currMod = t.nextMod
		t.nextMod = 2 * t.currMod
		t.splitPointer = 0
		t.rounds++
		log.Infof("starting round %d, modulus %d, %d buckets", t.rounds, t.currMod, len(t.buckets))
	}
}
