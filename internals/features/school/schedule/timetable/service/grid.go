package service

import (
	"time"

	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/dto"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	"github.com/AungS8430/schooler/internals/helpers/clock"
)

// GridOptions controls the live marker. Now is only read when Dynamic is set.
type GridOptions struct {
	Dynamic bool
	Now     time.Time
}

// BuildGrid trims the slots, places every non-empty day and, in live mode,
// computes the current slot and progress marker.
func BuildGrid(slots []model.Slot, tt model.Timetable, opt GridOptions) dto.Grid {
	trimmed := TrimSlots(slots, tt)

	g := dto.Grid{
		Columns: len(trimmed),
		Headers: make([]dto.Header, 0, len(trimmed)),
		Dynamic: opt.Dynamic,
		Today:   -1,
	}
	for _, s := range trimmed {
		g.Headers = append(g.Headers, dto.Header{SlotID: s.ID, Start: s.Start.String(), End: s.End.String()})
	}

	if opt.Dynamic {
		g.Today = int(opt.Now.Weekday())
		now := clock.From(opt.Now)
		if cur, ok := CurrentSlot(trimmed, now); ok {
			g.CurrentSlotID = cur.ID
		}
		if pct, ok := Progress(trimmed, now); ok {
			g.Progress = &pct
		}
	}

	byID := make(map[string]model.Slot, len(slots))
	for _, s := range slots {
		byID[s.ID] = s
	}

	for _, day := range model.Days {
		subjects := tt[day]
		if len(subjects) == 0 {
			continue
		}
		row := dto.Row{Day: int(day), DayName: day.String()}
		for _, cell := range PlaceDay(trimmed, subjects) {
			if cell.IsEmpty() {
				row.Cells = append(row.Cells, dto.Cell{Empty: true, Span: 1})
				continue
			}
			row.Cells = append(row.Cells, dto.Cell{
				Span:      cell.Span,
				SubjectID: cell.Subject.ID,
				SlotIDs:   append([]string(nil), cell.Subject.SlotIDs...),
				Title:     cell.Subject.Title,
				Tone:      tone(cell.Subject, int(day), g),
				Times:     slotTimes(cell.Subject, byID),
				Notes:     notes(cell.Subject),
			})
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

func tone(subj *model.Subject, day int, g dto.Grid) string {
	if !g.Dynamic {
		return dto.ToneSecondary
	}
	return dto.LiveTone(subj.SlotIDs, day, g.Today, g.CurrentSlotID)
}

// slotTimes lists "start - end" for each of the subject's slots, including
// those outside the trimmed range; unknown ids are skipped.
func slotTimes(subj *model.Subject, byID map[string]model.Slot) []string {
	out := make([]string, 0, len(subj.SlotIDs))
	for _, id := range subj.SlotIDs {
		if s, ok := byID[id]; ok {
			out = append(out, s.Start.String()+" - "+s.End.String())
		}
	}
	return out
}

func notes(subj *model.Subject) []string {
	var out []string
	if subj.Classroom != "" {
		out = append(out, "Classroom: "+subj.Classroom)
	}
	if subj.Teacher != "" {
		out = append(out, "Teacher: "+subj.Teacher)
	}
	if subj.Location != "" {
		out = append(out, "Location: "+subj.Location)
	}
	if subj.IsLunch {
		out = append(out, "This is the lunch break.")
	}
	if subj.IsBreak {
		out = append(out, "This is a break period.")
	}
	if subj.EndsEarly {
		out = append(out, "This session ends early.")
	}
	if subj.OverlapsBreak {
		out = append(out, "This session overlaps with a break.")
	}
	return out
}
