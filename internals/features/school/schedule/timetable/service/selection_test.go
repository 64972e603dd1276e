package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
)

type fakeFetcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started map[string]chan struct{}
	fail    map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{gates: map[string]chan struct{}{}, started: map[string]chan struct{}{}, fail: map[string]error{}}
}

// hold makes Timetable(class) block until the returned func is called.
func (f *fakeFetcher) hold(class string) (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, s := make(chan struct{}), make(chan struct{})
	f.gates[class], f.started[class] = g, s
	return s, func() { close(g) }
}

func (f *fakeFetcher) Slots(context.Context, schoolapi.Credentials) ([]model.Slot, error) {
	return schoolDay(), nil
}

func (f *fakeFetcher) Timetable(ctx context.Context, _ schoolapi.Credentials, class string) (model.Timetable, error) {
	f.mu.Lock()
	gate, started, err := f.gates[class], f.started[class], f.fail[class]
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return model.Timetable{
		time.Monday: {subject(class+"-math", "s1", "s2")},
	}, nil
}

var bob = schoolapi.Credentials{Token: "t", Subject: "u-bob"}

func TestSelectCommits(t *testing.T) {
	st := NewSelectionStore(newFakeFetcher())
	sel, err := st.Select(context.Background(), bob, "C2R1")
	require.NoError(t, err)
	assert.Equal(t, "C2R1", sel.Class)

	cur, ok := st.Current(bob.Subject)
	require.True(t, ok)
	assert.Equal(t, "C2R1-math", cur.Timetable[time.Monday][0].ID)
}

func TestStaleSelectionIsDropped(t *testing.T) {
	f := newFakeFetcher()
	st := NewSelectionStore(f)
	started, release := f.hold("C2R1")

	done := make(chan error, 1)
	go func() {
		_, err := st.Select(context.Background(), bob, "C2R1")
		done <- err
	}()
	<-started

	_, err := st.Select(context.Background(), bob, "C2R2")
	require.NoError(t, err)

	release()
	assert.ErrorIs(t, <-done, ErrSuperseded)

	cur, _ := st.Current(bob.Subject)
	assert.Equal(t, "C2R2", cur.Class)
}

func TestFailedSelectionKeepsPrevious(t *testing.T) {
	f := newFakeFetcher()
	f.fail["BROKEN"] = errors.New("boom")
	st := NewSelectionStore(f)

	_, err := st.Select(context.Background(), bob, "C2R1")
	require.NoError(t, err)
	_, err = st.Select(context.Background(), bob, "BROKEN")
	require.Error(t, err)

	cur, _ := st.Current(bob.Subject)
	assert.Equal(t, "C2R1", cur.Class)
}

func TestEnsureDefaultsAndReuses(t *testing.T) {
	st := NewSelectionStore(newFakeFetcher())
	sel, err := st.Ensure(context.Background(), bob, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultClass, sel.Class)

	again, err := st.Ensure(context.Background(), bob, "c2r1")
	require.NoError(t, err)
	assert.Equal(t, sel.LoadedAt, again.LoadedAt)
}

func TestPeekLeavesSelectionAlone(t *testing.T) {
	st := NewSelectionStore(newFakeFetcher())
	_, err := st.Select(context.Background(), bob, "C2R1")
	require.NoError(t, err)

	other, err := st.Peek(context.Background(), bob, "M2R2")
	require.NoError(t, err)
	assert.Equal(t, "M2R2", other.Class)
	assert.Equal(t, "M2R2-math", other.Timetable[time.Monday][0].ID)

	cur, _ := st.Current(bob.Subject)
	assert.Equal(t, "C2R1", cur.Class)

	same, err := st.Peek(context.Background(), bob, "")
	require.NoError(t, err)
	assert.Equal(t, "C2R1", same.Class)
}

func TestPeekWithoutSelectionDoesNotCommitDefault(t *testing.T) {
	st := NewSelectionStore(newFakeFetcher())

	sel, err := st.Peek(context.Background(), bob, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultClass, sel.Class)

	_, has := st.Current(bob.Subject)
	assert.False(t, has)
}
