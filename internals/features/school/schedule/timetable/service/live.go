package service

import (
	"time"

	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/dto"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	"github.com/AungS8430/schooler/internals/helpers/clock"
)

// Tick is the live marker at now for a loaded timetable.
func Tick(slots []model.Slot, tt model.Timetable, now time.Time) dto.ProgressEvent {
	trimmed := TrimSlots(slots, tt)
	ev := dto.ProgressEvent{Time: now.Format("15:04"), Day: int(now.Weekday())}
	tod := clock.From(now)
	if cur, ok := CurrentSlot(trimmed, tod); ok {
		ev.CurrentSlotID = cur.ID
	}
	if pct, ok := Progress(trimmed, tod); ok {
		ev.Progress = &pct
	}
	return ev
}
