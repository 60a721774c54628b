package memory

import (
	"context"
	"strings"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/helpers"
)

type bookingRepo struct{ s *Store }

func slotHeld(st *state, slot models.BookingSlot, excludeID int64) bool {
	for id, b := range st.bookings {
		if id != excludeID && b.Slot() == slot {
			return true
		}
	}
	return false
}

func (r *bookingRepo) CreateBooking(_ context.Context, booking *models.Booking) error {
	return r.s.do(func(st *state) error {
		if slotHeld(st, booking.Slot(), 0) {
			return repositories.ErrDuplicate
		}
		booking.ID = st.nextID()
		st.bookings[booking.ID] = *booking
		return nil
	})
}

func (r *bookingRepo) GetBookingByID(_ context.Context, id int64) (*models.Booking, error) {
	var out *models.Booking
	err := r.s.do(func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *bookingRepo) GetBookingsByIDs(_ context.Context, ids []int64) ([]*models.Booking, error) {
	out := []*models.Booking{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.bookings) {
			if b := st.bookings[id]; helpers.ContainsID(ids, id) {
				out = append(out, &b)
			}
		}
		return nil
	})
	return out, err
}

func (r *bookingRepo) GetAllBookings(_ context.Context) ([]*models.Booking, error) {
	out := []*models.Booking{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.bookings) {
			b := st.bookings[id]
			out = append(out, &b)
		}
		return nil
	})
	return out, err
}

func (r *bookingRepo) UpdateBooking(_ context.Context, booking *models.Booking) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.bookings[booking.ID]; !ok {
			return repositories.ErrNotFound
		}
		if slotHeld(st, booking.Slot(), booking.ID) {
			return repositories.ErrDuplicate
		}
		st.bookings[booking.ID] = *booking
		return nil
	})
}

func (r *bookingRepo) DeleteBooking(_ context.Context, id int64) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.bookings[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.bookings, id)
		return nil
	})
}

func (r *bookingRepo) SlotTaken(_ context.Context, slot models.BookingSlot, excludeID int64) (bool, error) {
	var taken bool
	err := r.s.do(func(st *state) error {
		taken = slotHeld(st, slot, excludeID)
		return nil
	})
	return taken, err
}

type enrollmentRepo struct{ s *Store }

func pairHeld(st *state, userID, courseID, excludeID int64) bool {
	for id, e := range st.enrollments {
		if id != excludeID && e.UserID == userID && e.CourseID == courseID {
			return true
		}
	}
	return false
}

func (r *enrollmentRepo) CreateEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	return r.s.do(func(st *state) error {
		if pairHeld(st, enrollment.UserID, enrollment.CourseID, 0) {
			return repositories.ErrDuplicate
		}
		enrollment.ID = st.nextID()
		enrollment.CreatedAt, enrollment.UpdatedAt = now(), now()
		st.enrollments[enrollment.ID] = *enrollment
		return nil
	})
}

func (r *enrollmentRepo) GetEnrollmentByID(_ context.Context, id int64) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := r.s.do(func(st *state) error {
		e, ok := st.enrollments[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *enrollmentRepo) FindEnrollment(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	var out *models.Enrollment
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.enrollments) {
			if e := st.enrollments[id]; e.UserID == userID && e.CourseID == courseID {
				out = &e
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return out, err
}

func (r *enrollmentRepo) GetEnrollmentsByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	out := []*models.Enrollment{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.enrollments) {
			if e := st.enrollments[id]; e.CourseID == courseID {
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

func (r *enrollmentRepo) UpdateEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	return r.s.do(func(st *state) error {
		current, ok := st.enrollments[enrollment.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if pairHeld(st, enrollment.UserID, enrollment.CourseID, enrollment.ID) {
			return repositories.ErrDuplicate
		}
		enrollment.CreatedAt = current.CreatedAt
		enrollment.UpdatedAt = now()
		st.enrollments[enrollment.ID] = *enrollment
		return nil
	})
}

func (r *enrollmentRepo) DeleteEnrollment(_ context.Context, id int64) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.enrollments[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.enrollments, id)
		return nil
	})
}

type userRepo struct{ s *Store }

func copyUser(u models.User) *models.User {
	u.Enrollments = cloneIDs(u.Enrollments)
	return &u
}

func (r *userRepo) CreateUser(_ context.Context, user *models.User) error {
	return r.s.do(func(st *state) error {
		user.Email = strings.ToLower(user.Email)
		for _, u := range st.users {
			if u.Email == user.Email {
				return repositories.ErrDuplicate
			}
		}
		user.ID = st.nextID()
		user.Enrollments = []int64{}
		user.CreatedAt, user.UpdatedAt = now(), now()
		st.users[user.ID] = *copyUser(*user)
		return nil
	})
}

func (r *userRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	var out *models.User
	err := r.s.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = copyUser(u)
		return nil
	})
	return out, err
}

func (r *userRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	var out *models.User
	email = strings.ToLower(email)
	err := r.s.do(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				out = copyUser(u)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return out, err
}

func (r *userRepo) GetUsersByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	out := []*models.User{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.users) {
			if helpers.ContainsID(ids, id) {
				out = append(out, copyUser(st.users[id]))
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) UpdateUserRole(_ context.Context, id int64, role models.RoleType) error {
	return r.s.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repositories.ErrNotFound
		}
		u.Role = role
		u.UpdatedAt = now()
		st.users[id] = u
		return nil
	})
}

func (r *userRepo) AddEnrollment(_ context.Context, userID, courseID int64) error {
	return r.s.do(func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return repositories.ErrNotFound
		}
		u.Enrollments = helpers.AddID(cloneIDs(u.Enrollments), courseID)
		u.UpdatedAt = now()
		st.users[userID] = u
		return nil
	})
}

type maintenanceRepo struct{ s *Store }

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *maintenanceRepo) RebuildEnrollmentIndexes(_ context.Context) (repositories.ReconcileStats, error) {
	var stats repositories.ReconcileStats
	err := r.s.do(func(st *state) error {
		byCourse := map[int64][]int64{}
		byUser := map[int64][]int64{}
		for _, id := range sortedKeys(st.enrollments) {
			e := st.enrollments[id]
			byCourse[e.CourseID] = append(byCourse[e.CourseID], e.UserID)
			byUser[e.UserID] = append(byUser[e.UserID], e.CourseID)
		}

		for id, c := range st.courses {
			want := nonNilIDs(byCourse[id])
			if !sameIDs(c.Enrollments, want) {
				c.Enrollments = want
				c.UpdatedAt = now()
				st.courses[id] = c
				stats.Courses++
			}
		}
		for id, u := range st.users {
			want := nonNilIDs(byUser[id])
			if !sameIDs(u.Enrollments, want) {
				u.Enrollments = want
				u.UpdatedAt = now()
				st.users[id] = u
				stats.Users++
			}
		}
		return nil
	})
	return stats, err
}

func (r *maintenanceRepo) PruneDanglingSessions(_ context.Context) (repositories.ReconcileStats, error) {
	var stats repositories.ReconcileStats
	err := r.s.do(func(st *state) error {
		live := func(ids []int64) ([]int64, bool) {
			kept := make([]int64, 0, len(ids))
			for _, id := range ids {
				if _, ok := st.sessions[id]; ok {
					kept = append(kept, id)
				}
			}
			return kept, len(kept) != len(ids)
		}

		for id, c := range st.courses {
			if kept, changed := live(c.Sessions); changed {
				c.Sessions = kept
				c.UpdatedAt = now()
				st.courses[id] = c
				stats.Courses++
			}
		}
		for id, t := range st.timetables {
			if kept, changed := live(t.Sessions); changed {
				t.Sessions = kept
				t.UpdatedAt = now()
				st.timetables[id] = t
				stats.Timetables++
			}
		}
		return nil
	})
	return stats, err
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
