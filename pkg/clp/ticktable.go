package clp

import (
	"math/big"
	"sort"
)

// TickInfo holds the liquidity bookkeeping recorded at one initialized
// tick.
type TickInfo struct {
	LiquidityGross *big.Int // always > 0 for a tick present in the table
	LiquidityNet   *big.Int // signed delta applied when the tick is crossed upward
}

// TickTable is an ordered map from initialized tick index to its liquidity
// delta, supporting O(log n) predecessor/successor queries. A flat sorted
// slice with binary search is sufficient since the scan window around the
// current tick is the only bulk consumer.
type TickTable struct {
	keys  []int32
	infos map[int32]TickInfo
}

// NewTickTable builds a TickTable from an unordered set of initialized
// ticks. Ticks with non-positive gross liquidity are dropped.
func NewTickTable(entries map[int32]TickInfo) *TickTable {
	t := &TickTable{infos: make(map[int32]TickInfo, len(entries))}
	for tick, info := range entries {
		if info.LiquidityGross == nil || info.LiquidityGross.Sign() <= 0 {
			continue
		}
		t.infos[tick] = info
		t.keys = append(t.keys, tick)
	}
	sort.Slice(t.keys, func(i, j int) bool { return t.keys[i] < t.keys[j] })
	return t
}

// Len reports the number of initialized ticks.
func (t *TickTable) Len() int { return len(t.keys) }

// Get returns the tick info at an exact tick, if initialized.
func (t *TickTable) Get(tick int32) (TickInfo, bool) {
	info, ok := t.infos[tick]
	return info, ok
}

// NextInitializedTickLeft returns the greatest initialized tick <= t, and
// whether one exists.
func (t *TickTable) NextInitializedTickLeft(tick int32) (int32, bool) {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i] > tick })
	if i == 0 {
		return 0, false
	}
	return t.keys[i-1], true
}

// NextInitializedTickRight returns the least initialized tick > t, and
// whether one exists.
func (t *TickTable) NextInitializedTickRight(tick int32) (int32, bool) {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i] > tick })
	if i == len(t.keys) {
		return 0, false
	}
	return t.keys[i], true
}
