// Package memory implements every repository on process memory. It backs the
// "memory" database driver and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
)

type state struct {
	seq         int64
	faculties   map[int64]models.Faculty
	courses     map[int64]models.Course
	sessions    map[int64]models.Session
	bookings    map[int64]models.Booking
	timetables  map[int64]models.Timetable
	enrollments map[int64]models.Enrollment
	users       map[int64]models.User
}

func newState() *state {
	return &state{
		faculties:   map[int64]models.Faculty{},
		courses:     map[int64]models.Course{},
		sessions:    map[int64]models.Session{},
		bookings:    map[int64]models.Booking{},
		timetables:  map[int64]models.Timetable{},
		enrollments: map[int64]models.Enrollment{},
		users:       map[int64]models.User{},
	}
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

func (st *state) clone() *state {
	c := newState()
	c.seq = st.seq
	for k, v := range st.faculties {
		c.faculties[k] = v
	}
	for k, v := range st.courses {
		v.Enrollments = cloneIDs(v.Enrollments)
		v.Sessions = cloneIDs(v.Sessions)
		c.courses[k] = v
	}
	for k, v := range st.sessions {
		c.sessions[k] = v
	}
	for k, v := range st.bookings {
		c.bookings[k] = v
	}
	for k, v := range st.timetables {
		v.Sessions = cloneIDs(v.Sessions)
		c.timetables[k] = v
	}
	for k, v := range st.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range st.users {
		v.Enrollments = cloneIDs(v.Enrollments)
		c.users[k] = v
	}
	return c
}

func cloneIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func now() time.Time {
	return time.Now().UTC()
}

// Store holds all entities behind one mutex. Every repository call is
// atomic, so slot and pair checks cannot race.
type Store struct {
	mu    *sync.Mutex
	state *state
	inTx  bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{mu: &sync.Mutex{}, state: newState()}
}

func (s *Store) do(fn func(st *state) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

// WithTx implements repositories.TxManager. fn works on a copy of the
// store which replaces the live state only when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, repos repositories.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: s.mu, state: s.state.clone(), inTx: true}
	if err := fn(ctx, tx.txRepositories()); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (s *Store) txRepositories() repositories.TxRepositories {
	return repositories.TxRepositories{
		Courses:     &courseRepo{s: s},
		Sessions:    &sessionRepo{s: s},
		Timetables:  &timetableRepo{s: s},
		Enrollments: &enrollmentRepo{s: s},
		Users:       &userRepo{s: s},
		Maintenance: &maintenanceRepo{s: s},
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Faculties:   &facultyRepo{s: s},
		Courses:     &courseRepo{s: s},
		Sessions:    &sessionRepo{s: s},
		Bookings:    &bookingRepo{s: s},
		Timetables:  &timetableRepo{s: s},
		Enrollments: &enrollmentRepo{s: s},
		Users:       &userRepo{s: s},
		Maintenance: &maintenanceRepo{s: s},
		Tx:          s,
	}
}

// NewRepositories returns repositories over a fresh store.
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}
