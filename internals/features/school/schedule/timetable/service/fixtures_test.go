package service

import (
	"time"

	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	"github.com/AungS8430/schooler/internals/helpers/clock"
)

func slot(id, start, end string) model.Slot {
	return model.Slot{ID: id, Start: clock.MustParse(start), End: clock.MustParse(end)}
}

func subject(id string, slotIDs ...string) model.Subject {
	return model.Subject{ID: id, Title: id, SlotIDs: slotIDs}
}

func schoolDay() []model.Slot {
	return []model.Slot{
		slot("s1", "08:00", "08:10"),
		slot("s2", "08:15", "09:05"),
		slot("s3", "09:05", "09:55"),
		slot("s4", "10:05", "10:55"),
		slot("s5", "10:55", "11:45"),
		slot("s6", "11:45", "12:40"),
		slot("s7", "12:40", "13:30"),
		slot("s8", "13:30", "14:20"),
		slot("s9", "14:30", "15:20"),
		slot("s10", "15:20", "16:10"),
		slot("s11", "16:10", "17:00"),
		slot("s12", "17:00", "17:50"),
	}
}

func sampleWeek() model.Timetable {
	lunch := subject("lunch", "s6")
	lunch.IsLunch = true
	lab := subject("labwork6", "s2", "s3", "s4")
	lab.EndsEarly, lab.OverlapsBreak = true, true

	return model.Timetable{
		time.Monday: {
			subject("shr", "s1"),
			subject("english4", "s2", "s3"),
			subject("ece2", "s4", "s5"),
			lunch,
			subject("japanese4", "s7", "s8"),
			subject("calculus2", "s9", "s10"),
		},
		time.Tuesday: {
			subject("shr", "s1"),
			subject("programming4", "s2", "s3", "s4"),
			lab,
			lunch,
			subject("thailang4", "s7", "s8"),
			subject("hpe4", "s9", "s10"),
		},
		time.Thursday: {
			subject("shr", "s1"),
			subject("calculus2", "s2"),
			subject("mathinfo", "s3", "s4", "s5"),
			lunch,
			subject("labwork4", "s7", "s8", "s9"),
			subject("classactivity", "s10"),
		},
	}
}
