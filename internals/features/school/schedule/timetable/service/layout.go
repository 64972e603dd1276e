package service

import (
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
)

/* ===============================
   Slot-range trimming
=================================*/

func slotIndex(slots []model.Slot) map[string]int {
	idx := make(map[string]int, len(slots))
	for i, s := range slots {
		if _, dup := idx[s.ID]; !dup {
			idx[s.ID] = i
		}
	}
	return idx
}

// LastUsedSlotIndex is the highest slot index referenced by any subject on any day.
// Unknown slot ids are ignored; nothing referenced yields 0.
func LastUsedSlotIndex(slots []model.Slot, tt model.Timetable) int {
	idx := slotIndex(slots)
	last := 0
	for _, subjects := range tt {
		for _, subj := range subjects {
			for _, id := range subj.SlotIDs {
				if i, ok := idx[id]; ok && i > last {
					last = i
				}
			}
		}
	}
	return last
}

// TrimSlots drops the trailing slots no subject uses.
func TrimSlots(slots []model.Slot, tt model.Timetable) []model.Slot {
	if len(slots) == 0 {
		return nil
	}
	return slots[:LastUsedSlotIndex(slots, tt)+1]
}

/* ===============================
   Day-row cell placement
=================================*/

// Cell is one grid cell of a day row. Subject is nil for an empty cell.
type Cell struct {
	Subject   *model.Subject
	SlotIndex int // first trimmed column covered
	Span      int
}

func (c Cell) IsEmpty() bool { return c.Subject == nil }

// PlaceDay lays a day's subjects over the trimmed slots, left to right.
// Every trimmed slot is covered exactly once, so the spans sum to len(trimmed).
func PlaceDay(trimmed []model.Slot, subjects []model.Subject) []Cell {
	idx := slotIndex(trimmed)
	cells := make([]Cell, 0, len(trimmed))

	for cursor := 0; cursor < len(trimmed); {
		subj := firstStartingAt(subjects, trimmed[cursor].ID)
		if subj == nil {
			cells = append(cells, Cell{SlotIndex: cursor, Span: 1})
			cursor++
			continue
		}

		span := spanWithin(subj, idx)
		if span < 1 {
			span = 1
		}
		if rest := len(trimmed) - cursor; span > rest {
			span = rest
		}
		cells = append(cells, Cell{Subject: subj, SlotIndex: cursor, Span: span})
		cursor += span
	}
	return cells
}

func firstStartingAt(subjects []model.Subject, slotID string) *model.Subject {
	for i := range subjects {
		if len(subjects[i].SlotIDs) > 0 && subjects[i].SlotIDs[0] == slotID {
			return &subjects[i]
		}
	}
	return nil
}

// spanWithin counts the distinct slot ids of subj present in the trimmed range.
func spanWithin(subj *model.Subject, idx map[string]int) int {
	seen := make(map[string]struct{}, len(subj.SlotIDs))
	n := 0
	for _, id := range subj.SlotIDs {
		if _, ok := idx[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		n++
	}
	return n
}
