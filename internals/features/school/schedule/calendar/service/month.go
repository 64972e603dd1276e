package service

import (
	"time"

	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/dto"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/model"
)

func startOfWeekSunday(d time.Time) time.Time { return d.AddDate(0, 0, -int(d.Weekday())) }
func endOfWeekSaturday(d time.Time) time.Time { return startOfWeekSunday(d).AddDate(0, 0, 6) }

// BuildMonthGrid lays the calendar range out in whole Sunday..Saturday weeks.
// today may be zero.
func BuildMonthGrid(cal model.Calendar, today model.Date) dto.Month {
	m := dto.Month{Start: cal.Start.String(), End: cal.End.String(), Weekdays: dto.Weekdays}
	if cal.Start.IsZero() || cal.End.IsZero() || cal.End.Before(cal.Start.Time) {
		return m
	}

	first := startOfWeekSunday(cal.Start.Time)
	last := endOfWeekSaturday(cal.End.Time)

	var week []dto.Day
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		week = append(week, buildDay(cal, model.Date{Time: cur}, today))
		if len(week) == 7 {
			m.Weeks = append(m.Weeks, week)
			week = nil
		}
	}
	return m
}

func buildDay(cal model.Calendar, day, today model.Date) dto.Day {
	d := dto.Day{
		Date:      day.String(),
		Day:       day.Day(),
		LongLabel: day.Format("Monday, January 2, 2006"),
		Outside:   day.Before(cal.Start.Time) || day.After(cal.End.Time),
		Weekend:   day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		Today:     !today.IsZero() && day.Equal(today.Time),
		Events:    []dto.Event{},
	}
	if d.Day == 1 {
		d.MonthLabel = day.Format("Jan")
	}

	var primary *model.Event
	for i := range cal.Events {
		ev := cal.Events[i]
		if !ev.Covers(day) {
			continue
		}
		d.Events = append(d.Events, toEvent(ev))
		if primary == nil || (primary.Type == model.EventBreak && ev.Type != model.EventBreak) {
			primary = &cal.Events[i]
		}
	}
	if primary != nil {
		p := toEvent(*primary)
		d.Primary = &p
	}
	d.Tone = tone(d, primary)
	return d
}

func tone(d dto.Day, primary *model.Event) string {
	if d.Outside || d.Weekend {
		return dto.ToneMuted
	}
	if primary == nil {
		return dto.ToneBackground
	}
	switch primary.Type {
	case model.EventClass:
		return dto.ToneSecondary
	case model.EventHoliday, model.EventBreak:
		return dto.ToneMuted
	case model.EventExam:
		return dto.ToneDestructive
	case model.EventEvent:
		return dto.ToneAccent
	default:
		return dto.ToneBackground
	}
}

func toEvent(e model.Event) dto.Event {
	return dto.Event{
		ID:          e.ID,
		Type:        string(e.Type),
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start.String(),
		End:         e.End.String(),
	}
}
