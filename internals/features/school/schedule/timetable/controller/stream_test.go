package controller

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
	"github.com/AungS8430/schooler/internals/helpers/clock"
)

// failAfter accepts n writes, then fails like a closed connection.
type failAfter struct {
	n   int
	buf bytes.Buffer
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, io.ErrClosedPipe
	}
	f.n--
	return f.buf.Write(p)
}

func TestStreamStopsWhenClientLeaves(t *testing.T) {
	ctl := NewTimetableController(nil, nil, nil, time.UTC)
	ctl.Now = func() time.Time { return time.Date(2025, 3, 3, 8, 5, 0, 0, time.UTC) }
	ctl.Interval = time.Millisecond
	sel := service.Selection{
		Class: "C1R1",
		Slots: []model.Slot{
			{ID: "s1", Start: clock.MustParse("08:00"), End: clock.MustParse("08:10")},
			{ID: "s2", Start: clock.MustParse("08:15"), End: clock.MustParse("09:05")},
		},
		Timetable: model.Timetable{
			time.Monday: {{ID: "math", Title: "Math", SlotIDs: []string{"s1", "s2"}}},
		},
	}

	out := &failAfter{n: 2}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finished := make(chan struct{})
	go func() {
		ctl.stream(ctx, cancel, bufio.NewWriter(out), sel)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop")
	}

	events := strings.Count(out.buf.String(), "event: progress\n")
	assert.Equal(t, 2, events)
	assert.Contains(t, out.buf.String(), `"current_slot_id":"s1"`)
}
