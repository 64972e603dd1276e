package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
)

// ErrSuperseded means a newer selection for the same user won the race.
var ErrSuperseded = errors.New("timetable: selection superseded by a newer one")

// DefaultClass is used when neither the request nor the user's permissions name one.
const DefaultClass = "C2R1"

// Fetcher is the slice of the API client the store needs.
type Fetcher interface {
	Slots(ctx context.Context, cred schoolapi.Credentials) ([]model.Slot, error)
	Timetable(ctx context.Context, cred schoolapi.Credentials, class string) (model.Timetable, error)
}

// Selection is a loaded class timetable.
type Selection struct {
	Class     string
	Slots     []model.Slot
	Timetable model.Timetable
	LoadedAt  time.Time
}

// SelectionStore keeps each user's selected class. Loads are guarded by
// request tokens so a slow answer for an old class never replaces a newer one.
type SelectionStore struct {
	api    Fetcher
	latest *schoolapi.Latest
	now    func() time.Time

	mu    sync.RWMutex
	views map[string]Selection
}

func NewSelectionStore(api Fetcher) *SelectionStore {
	return &SelectionStore{api: api, latest: schoolapi.NewLatest(), now: time.Now, views: map[string]Selection{}}
}

// Current returns the last committed selection for subject.
func (s *SelectionStore) Current(subject string) (Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[subject]
	return v, ok
}

// Load fetches slots and the timetable for class concurrently without
// touching any selection.
func Load(ctx context.Context, api Fetcher, cred schoolapi.Credentials, class string) (Selection, error) {
	class = strings.TrimSpace(class)

	var (
		wg             sync.WaitGroup
		slots          []model.Slot
		tt             model.Timetable
		slotErr, ttErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		slots, slotErr = api.Slots(ctx, cred)
	}()
	go func() {
		defer wg.Done()
		tt, ttErr = api.Timetable(ctx, cred, class)
	}()
	wg.Wait()

	if err := errors.Join(slotErr, ttErr); err != nil {
		return Selection{}, err
	}
	return Selection{Class: class, Slots: slots, Timetable: tt}, nil
}

// Select loads class for the user and commits it if no newer Select started
// meanwhile. On fetch failure the previous selection stays in place.
func (s *SelectionStore) Select(ctx context.Context, cred schoolapi.Credentials, class string) (Selection, error) {
	tok := s.latest.Begin("timetable:" + cred.Subject)

	sel, err := Load(ctx, s.api, cred, class)
	if err != nil {
		return Selection{}, err
	}
	sel.LoadedAt = s.now()

	committed := s.latest.Commit(tok, func() {
		s.mu.Lock()
		s.views[cred.Subject] = sel
		s.mu.Unlock()
	})
	if !committed {
		return Selection{}, ErrSuperseded
	}
	return sel, nil
}

// Peek returns the current selection when it matches class (or class is
// empty), and otherwise loads class (or DefaultClass) without committing it.
func (s *SelectionStore) Peek(ctx context.Context, cred schoolapi.Credentials, class string) (Selection, error) {
	class = strings.TrimSpace(class)
	if cur, ok := s.Current(cred.Subject); ok && (class == "" || strings.EqualFold(class, cur.Class)) {
		return cur, nil
	}
	if class == "" {
		class = DefaultClass
	}
	sel, err := Load(ctx, s.api, cred, class)
	sel.LoadedAt = s.now()
	return sel, err
}

// Ensure returns the current selection, loading class (or DefaultClass) first
// when the user has none yet or asks for a different class.
func (s *SelectionStore) Ensure(ctx context.Context, cred schoolapi.Credentials, class string) (Selection, error) {
	class = strings.TrimSpace(class)
	if cur, ok := s.Current(cred.Subject); ok && (class == "" || strings.EqualFold(class, cur.Class)) {
		return cur, nil
	}
	if class == "" {
		class = DefaultClass
	}
	sel, err := s.Select(ctx, cred, class)
	if errors.Is(err, ErrSuperseded) {
		if cur, ok := s.Current(cred.Subject); ok {
			return cur, nil
		}
	}
	return sel, err
}
