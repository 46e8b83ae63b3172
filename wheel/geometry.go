package wheel

import (
	"errors"
	"math/rand"
)

// ErrInvalidWeight is returned by TotalSlots when the slot map cannot
// yield a usable slot count. A spin must not be started in that case.
var ErrInvalidWeight = errors.New("wheel: invalid segment weights")

const (
	// extraTurns is how many whole revolutions a spin adds on top of
	// the landing angle so the wheel always visibly rotates forward.
	extraTurns = 7

	// jitterFraction bounds the random offset inside a slot, as a
	// fraction of the slot's angular width. Kept under 0.5 so the
	// jittered angle never crosses into a neighboring slot.
	jitterFraction = 0.45
)

// BuildSlotMap assigns each segment a contiguous block of slot ids in
// segment order, one id per unit of weight, starting at 0. Weights
// below 1 count as 1. The blocks partition [0, total) with no gaps.
func BuildSlotMap(segments []Segment) [][]int {
	slotMap := make([][]int, len(segments))
	next := 0
	for i, seg := range segments {
		w := seg.Weight
		if w < 1 {
			w = 1
		}
		block := make([]int, w)
		for j := range block {
			block[j] = next
			next++
		}
		slotMap[i] = block
	}
	return slotMap
}

// TotalSlots sums the slot blocks of a slot map. It fails when the map
// is empty or any block is empty, which would make the slot angle
// undefined.
func TotalSlots(slotMap [][]int) (int, error) {
	if len(slotMap) == 0 {
		return 0, ErrInvalidWeight
	}
	total := 0
	for _, block := range slotMap {
		if len(block) == 0 {
			return 0, ErrInvalidWeight
		}
		total += len(block)
	}
	return total, nil
}

// RotationForSlot maps a slot id to the wheel rotation, in degrees,
// that centers that slot under the pointer. With a non-nil rng the
// angle additionally gets a small jitter inside the slot and extraTurns
// whole revolutions; with nil rng (used for the initial resting
// position) it is exact.
func RotationForSlot(slot, total int, rng *rand.Rand) float64 {
	slotAngle := 360.0 / float64(total)
	deg := slotAngle*float64(slot) + slotAngle/2
	if rng != nil {
		deg += (rng.Float64()*2 - 1) * slotAngle * jitterFraction
		deg += extraTurns * 360
	}
	return deg
}

// SlotForPrize picks the concrete slot to land on for a winning segment
// index: uniform among the segment's slots when rng is non-nil,
// otherwise the first. Reports false when the index is out of range or
// the segment owns no slots.
func SlotForPrize(slotMap [][]int, prize int, rng *rand.Rand) (int, bool) {
	if prize < 0 || prize >= len(slotMap) {
		return 0, false
	}
	block := slotMap[prize]
	if len(block) == 0 {
		return 0, false
	}
	if rng == nil {
		return block[0], true
	}
	return block[rng.Intn(len(block))], true
}
