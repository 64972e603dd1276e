package service

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/dto"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/model"
)

func date(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func semester() model.Calendar {
	return model.Calendar{
		Start: date("2025-12-01"),
		End:   date("2026-01-14"),
		Events: []model.Event{
			{ID: 0, Type: model.EventBreak, Title: "Semester Break", Start: date("2025-11-20"), End: date("2025-12-02")},
			{ID: 2, Type: model.EventClass, Title: "Friday Class", Start: date("2025-12-02"), End: date("2025-12-02")},
			{ID: 4, Type: model.EventExam, Title: "Midterm Exam", Start: date("2025-12-24"), End: date("2025-12-26")},
			{ID: 5, Type: model.EventEvent, Title: "Exam Prep Days", Start: date("2025-12-29"), End: date("2025-12-30")},
			{ID: 7, Type: model.EventHoliday, Title: "New Year", Start: date("2026-01-01"), End: date("2026-01-01")},
		},
	}
}

func find(t *testing.T, m dto.Month, day string) dto.Day {
	t.Helper()
	for _, d := range m.Days() {
		if d.Date == day {
			return d
		}
	}
	t.Fatalf("day %s not in grid", day)
	return dto.Day{}
}

func TestMonthGridCoversWholeWeeks(t *testing.T) {
	m := BuildMonthGrid(semester(), model.Date{})
	days := m.Days()
	require.NotEmpty(t, days)

	assert.Equal(t, "2025-11-30", days[0].Date) // Sunday before Mon 1 Dec
	assert.Equal(t, "2026-01-17", days[len(days)-1].Date)
	assert.Zero(t, len(days)%7)
	for _, w := range m.Weeks {
		assert.Len(t, w, 7)
	}
}

func TestMonthGridTones(t *testing.T) {
	m := BuildMonthGrid(semester(), date("2025-12-24"))

	cases := map[string]string{
		"2025-11-30": dto.ToneMuted,       // outside
		"2025-12-01": dto.ToneMuted,       // break
		"2025-12-02": dto.ToneSecondary,   // class beats the break
		"2025-12-03": dto.ToneBackground,  // nothing on
		"2025-12-06": dto.ToneMuted,       // Saturday
		"2025-12-25": dto.ToneDestructive, // inside exam range
		"2025-12-26": dto.ToneDestructive, // inclusive end
		"2025-12-29": dto.ToneAccent,
		"2026-01-01": dto.ToneMuted,
		"2026-01-15": dto.ToneMuted,
	}
	for day, want := range cases {
		assert.Equal(t, want, find(t, m, day).Tone, day)
	}

	assert.True(t, find(t, m, "2025-12-24").Today)
	assert.False(t, find(t, m, "2025-12-25").Today)
}

func TestPrimaryEventSkipsBreaks(t *testing.T) {
	m := BuildMonthGrid(semester(), model.Date{})
	d := find(t, m, "2025-12-02")
	require.Len(t, d.Events, 2)
	require.NotNil(t, d.Primary)
	assert.Equal(t, "Friday Class", d.Primary.Title)

	only := find(t, m, "2025-12-01")
	require.NotNil(t, only.Primary)
	assert.Equal(t, "Semester Break", only.Primary.Title)
}

func TestMonthLabelOnFirstDay(t *testing.T) {
	m := BuildMonthGrid(semester(), model.Date{})
	assert.Equal(t, "Dec", find(t, m, "2025-12-01").MonthLabel)
	assert.Equal(t, "Jan", find(t, m, "2026-01-01").MonthLabel)
	assert.Empty(t, find(t, m, "2025-12-02").MonthLabel)
	assert.Equal(t, "Monday, December 1, 2025", find(t, m, "2025-12-01").LongLabel)
}

func TestMonthGridEmptyRange(t *testing.T) {
	assert.Empty(t, BuildMonthGrid(model.Calendar{}, model.Date{}).Weeks)

	inverted := model.Calendar{Start: date("2026-02-01"), End: date("2026-01-01")}
	assert.Empty(t, BuildMonthGrid(inverted, model.Date{}).Weeks)
}

func TestCalendarDecodesAPIShape(t *testing.T) {
	raw := `{"events":[{"id":1,"type":"exam","title":"Final","start":"2026-03-09","end":"2026-03-17","description":null}],"start":"2025-10-01","end":"2026-03-31"}`
	var cal model.Calendar
	require.NoError(t, sonic.UnmarshalString(raw, &cal))
	assert.Equal(t, time.March, cal.Events[0].End.Month())
	assert.True(t, cal.Events[0].Covers(date("2026-03-17")))
	assert.False(t, cal.Events[0].Covers(date("2026-03-18")))
}
