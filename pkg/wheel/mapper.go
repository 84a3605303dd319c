package wheel

import (
	"errors"
	"math"
)

// InfiniteOffset is the raw index of logical item 0 in an infinite wheel.
// It sits in the middle of the int range so scrolling backwards from it can
// never reach zero in practice.
const InfiniteOffset = math.MaxInt / 2

// maxInfiniteRaw is the last raw index an infinite wheel may reach.
const maxInfiniteRaw = 2 * InfiniteOffset

// ErrNoItems is returned when wrap arithmetic is attempted over zero items.
var ErrNoItems = errors.New("wheel: wrap mapping needs at least one item")

// ToLogical maps a raw index to a logical index in [0, n-1].
//
// A non-infinite wheel has no wrap and returns raw unchanged; the caller
// keeps raw in range. An infinite wheel returns ErrNoItems when n <= 0.
func ToLogical(raw int, infinite bool, n int) (int, error) {
	if !infinite {
		return raw, nil
	}
	if n <= 0 {
		return 0, ErrNoItems
	}
	return floorMod(raw-InfiniteOffset, n), nil
}

// RawForLogical returns the canonical raw index of a logical index, the
// one in the cycle that starts at InfiniteOffset.
func RawForLogical(index int, infinite bool) int {
	if !infinite {
		return index
	}
	return InfiniteOffset + index
}

// ToRawForTarget returns the raw index nearest to currentRaw that maps to
// targetLogical under infinite wrap. Candidates come from the cycle holding
// currentRaw and its two neighbours; an exact tie resolves forward, to the
// larger raw index. It returns currentRaw when n <= 0.
func ToRawForTarget(currentRaw, targetLogical, n int) int {
	if n <= 0 {
		return currentRaw
	}
	targetLogical = floorMod(targetLogical, n)
	rel := currentRaw - InfiniteOffset
	base := floorDiv(rel, n) * n

	best := base + targetLogical
	bestDist := absInt(best - rel)
	for _, cand := range [...]int{base - n + targetLogical, base + n + targetLogical} {
		dist := absInt(cand - rel)
		if dist < bestDist || (dist == bestDist && cand > best) {
			best, bestDist = cand, dist
		}
	}
	return InfiniteOffset + best
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
