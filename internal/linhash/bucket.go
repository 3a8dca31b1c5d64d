package linhash

// A bucket is an ordered list of fixed-capacity blocks. Values are only ever
// appended to the last block; a new block is started once the last one has
// used up its byte capacity, so every block but the last is always full.
//
// Buckets never shrink. A split replaces the split bucket with a fresh one.
type bucket struct {
	blocks [][]int64
}

// maxBlockHint bounds the capacity reserved up front for a new block; large
// blocks grow through append as values arrive.
const maxBlockHint = 256

func newBlock(perBlock int) []int64 {
	return make([]int64, 0, min(perBlock, maxBlockHint))
}

func newBucket(perBlock int) *bucket {
	return &bucket{blocks: [][]int64{newBlock(perBlock)}}
}

func (b *bucket) blockCount() int {
	return len(b.blocks)
}

func (b *bucket) len() int {
	n := 0
	for _, blk := range b.blocks {
		n += len(blk)
	}
	return n
}

// contains scans all blocks in order.
func (b *bucket) contains(v int64) bool {
	for _, blk := range b.blocks {
		for _, x := range blk {
			if x == v {
				return true
			}
		}
	}
	return false
}

// add appends v to the last block, starting a new block first if the last
// one is at capacity. It reports whether a block was allocated.
func (b *bucket) add(v int64, cfg Config) (grew bool) {
	index := len(b.blocks) - 1
	if cfg.ValueSize*len(b.blocks[index]) >= cfg.CapacityBytes {
		b.blocks = append(b.blocks, newBlock(cfg.ValuesPerBlock()))
		index++
		grew = true
	}
	b.blocks[index] = append(b.blocks[index], v)
	return grew
}

// values returns a copy of all values in block order.
func (b *bucket) values() []int64 {
	out := make([]int64, 0, b.len())
	for _, blk := range b.blocks {
		out = append(out, blk...)
	}
	return out
}
