package service

import (
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	"github.com/AungS8430/schooler/internals/helpers/clock"
)

// CurrentSlot is the first slot with start <= now < end.
func CurrentSlot(slots []model.Slot, now clock.Tod) (model.Slot, bool) {
	cur := now.Minutes()
	for _, s := range slots {
		if cur >= s.Start.Minutes() && cur < s.End.Minutes() {
			return s, true
		}
	}
	return model.Slot{}, false
}

// Progress places now on the slot axis as a percentage in [0,100].
// Inside slot i it is (i + fraction)/n; in the gap after slot i it snaps to (i+1)/n;
// before the first slot it is 0 and anywhere else 100. ok is false when there are no slots.
func Progress(slots []model.Slot, now clock.Tod) (pct float64, ok bool) {
	n := len(slots)
	if n == 0 {
		return 0, false
	}
	cur := now.Minutes()

	for i, s := range slots {
		start, end := s.Start.Minutes(), s.End.Minutes()
		if cur >= start && cur < end {
			frac := float64(cur-start) / float64(end-start)
			return (float64(i) + clamp01(frac)) / float64(n) * 100, true
		}
		if i < n-1 {
			next := slots[i+1].Start.Minutes()
			if cur >= end && cur < next {
				return float64(i+1) / float64(n) * 100, true
			}
		}
	}

	if cur < slots[0].Start.Minutes() {
		return 0, true
	}
	return 100, true
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
