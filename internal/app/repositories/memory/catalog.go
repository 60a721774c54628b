package memory

import (
	"context"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/helpers"
)

type facultyRepo struct{ s *Store }

func (r *facultyRepo) CreateFaculty(_ context.Context, faculty *models.Faculty) error {
	return r.s.do(func(st *state) error {
		faculty.ID = st.nextID()
		faculty.CreatedAt, faculty.UpdatedAt = now(), now()
		st.faculties[faculty.ID] = *faculty
		return nil
	})
}

func (r *facultyRepo) GetFacultyByID(_ context.Context, id int64) (*models.Faculty, error) {
	var out *models.Faculty
	err := r.s.do(func(st *state) error {
		f, ok := st.faculties[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = &f
		return nil
	})
	return out, err
}

func (r *facultyRepo) GetAllFaculties(_ context.Context) ([]*models.Faculty, error) {
	out := []*models.Faculty{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.faculties) {
			f := st.faculties[id]
			out = append(out, &f)
		}
		return nil
	})
	return out, err
}

func (r *facultyRepo) UpdateFaculty(_ context.Context, faculty *models.Faculty) error {
	return r.s.do(func(st *state) error {
		current, ok := st.faculties[faculty.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		faculty.CreatedAt = current.CreatedAt
		faculty.UpdatedAt = now()
		st.faculties[faculty.ID] = *faculty
		return nil
	})
}

func (r *facultyRepo) DeleteFaculty(_ context.Context, id int64) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.faculties[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.faculties, id)
		return nil
	})
}

type courseRepo struct{ s *Store }

func codeTaken(st *state, code string, excludeID int64) bool {
	for id, c := range st.courses {
		if id != excludeID && c.Code == code {
			return true
		}
	}
	return false
}

func copyCourse(c models.Course) *models.Course {
	c.Enrollments = cloneIDs(c.Enrollments)
	c.Sessions = cloneIDs(c.Sessions)
	return &c
}

func (r *courseRepo) CreateCourse(_ context.Context, course *models.Course) error {
	return r.s.do(func(st *state) error {
		if codeTaken(st, course.Code, 0) {
			return repositories.ErrDuplicate
		}
		course.ID = st.nextID()
		course.Enrollments, course.Sessions = []int64{}, []int64{}
		course.CreatedAt, course.UpdatedAt = now(), now()
		st.courses[course.ID] = *copyCourse(*course)
		return nil
	})
}

func (r *courseRepo) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	var out *models.Course
	err := r.s.do(func(st *state) error {
		c, ok := st.courses[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = copyCourse(c)
		return nil
	})
	return out, err
}

func (r *courseRepo) GetAllCourses(_ context.Context) ([]*models.Course, error) {
	out := []*models.Course{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.courses) {
			out = append(out, copyCourse(st.courses[id]))
		}
		return nil
	})
	return out, err
}

func (r *courseRepo) GetCoursesByIDs(_ context.Context, ids []int64) ([]*models.Course, error) {
	out := []*models.Course{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.courses) {
			if helpers.ContainsID(ids, id) {
				out = append(out, copyCourse(st.courses[id]))
			}
		}
		return nil
	})
	return out, err
}

func (r *courseRepo) UpdateCourse(_ context.Context, course *models.Course) error {
	return r.s.do(func(st *state) error {
		current, ok := st.courses[course.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		if codeTaken(st, course.Code, course.ID) {
			return repositories.ErrDuplicate
		}
		current.Name = course.Name
		current.Code = course.Code
		current.Description = course.Description
		current.Credits = course.Credits
		current.FacultyID = course.FacultyID
		current.UpdatedAt = now()
		st.courses[course.ID] = current
		course.UpdatedAt = current.UpdatedAt
		return nil
	})
}

func (r *courseRepo) DeleteCourse(_ context.Context, id int64) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.courses[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.courses, id)
		return nil
	})
}

func (r *courseRepo) AppendSession(_ context.Context, courseID, sessionID int64) error {
	return r.s.do(func(st *state) error {
		c, ok := st.courses[courseID]
		if !ok {
			return repositories.ErrNotFound
		}
		c.Sessions = append(cloneIDs(c.Sessions), sessionID)
		c.UpdatedAt = now()
		st.courses[courseID] = c
		return nil
	})
}

func (r *courseRepo) AddEnrollment(_ context.Context, courseID, userID int64) error {
	return r.s.do(func(st *state) error {
		c, ok := st.courses[courseID]
		if !ok {
			return repositories.ErrNotFound
		}
		c.Enrollments = helpers.AddID(cloneIDs(c.Enrollments), userID)
		c.UpdatedAt = now()
		st.courses[courseID] = c
		return nil
	})
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) CreateSession(_ context.Context, session *models.Session) error {
	return r.s.do(func(st *state) error {
		session.ID = st.nextID()
		session.CreatedAt, session.UpdatedAt = now(), now()
		st.sessions[session.ID] = *session
		return nil
	})
}

func (r *sessionRepo) GetSessionByID(_ context.Context, id int64) (*models.Session, error) {
	var out *models.Session
	err := r.s.do(func(st *state) error {
		s, ok := st.sessions[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *sessionRepo) GetAllSessions(_ context.Context) ([]*models.Session, error) {
	return r.filter(func(models.Session) bool { return true })
}

func (r *sessionRepo) GetSessionsByIDs(_ context.Context, ids []int64) ([]*models.Session, error) {
	out := []*models.Session{}
	err := r.s.do(func(st *state) error {
		for _, id := range ids {
			if s, ok := st.sessions[id]; ok {
				out = append(out, &s)
			}
		}
		return nil
	})
	return out, err
}

func (r *sessionRepo) GetSessionsByCourse(_ context.Context, courseID int64) ([]*models.Session, error) {
	return r.filter(func(s models.Session) bool { return s.CourseID == courseID })
}

func (r *sessionRepo) filter(keep func(models.Session) bool) ([]*models.Session, error) {
	out := []*models.Session{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.sessions) {
			if s := st.sessions[id]; keep(s) {
				out = append(out, &s)
			}
		}
		return nil
	})
	return out, err
}

func (r *sessionRepo) UpdateSession(_ context.Context, session *models.Session) error {
	return r.s.do(func(st *state) error {
		current, ok := st.sessions[session.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		session.CreatedAt = current.CreatedAt
		session.UpdatedAt = now()
		st.sessions[session.ID] = *session
		return nil
	})
}

func (r *sessionRepo) DeleteSession(_ context.Context, id int64) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.sessions[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.sessions, id)
		return nil
	})
}

type timetableRepo struct{ s *Store }

func copyTimetable(t models.Timetable) *models.Timetable {
	t.Sessions = cloneIDs(t.Sessions)
	return &t
}

func (r *timetableRepo) CreateTimetable(_ context.Context, timetable *models.Timetable) error {
	return r.s.do(func(st *state) error {
		timetable.ID = st.nextID()
		timetable.Sessions = []int64{}
		timetable.CreatedAt, timetable.UpdatedAt = now(), now()
		st.timetables[timetable.ID] = *copyTimetable(*timetable)
		return nil
	})
}

func (r *timetableRepo) GetTimetableByID(_ context.Context, id int64) (*models.Timetable, error) {
	var out *models.Timetable
	err := r.s.do(func(st *state) error {
		t, ok := st.timetables[id]
		if !ok {
			return repositories.ErrNotFound
		}
		out = copyTimetable(t)
		return nil
	})
	return out, err
}

func (r *timetableRepo) GetAllTimetables(_ context.Context) ([]*models.Timetable, error) {
	return r.where(func(models.Timetable) bool { return true })
}

func (r *timetableRepo) GetTimetablesWithAnySession(_ context.Context, sessionIDs []int64) ([]*models.Timetable, error) {
	return r.where(func(t models.Timetable) bool {
		for _, id := range t.Sessions {
			if helpers.ContainsID(sessionIDs, id) {
				return true
			}
		}
		return false
	})
}

// where lists the timetables matching keep, by id.
func (r *timetableRepo) where(keep func(models.Timetable) bool) ([]*models.Timetable, error) {
	out := []*models.Timetable{}
	err := r.s.do(func(st *state) error {
		for _, id := range sortedKeys(st.timetables) {
			if t := st.timetables[id]; keep(t) {
				out = append(out, copyTimetable(t))
			}
		}
		return nil
	})
	return out, err
}

func (r *timetableRepo) UpdateTimetable(_ context.Context, timetable *models.Timetable) error {
	return r.s.do(func(st *state) error {
		current, ok := st.timetables[timetable.ID]
		if !ok {
			return repositories.ErrNotFound
		}
		current.Name = timetable.Name
		current.FacultyID = timetable.FacultyID
		current.Department = timetable.Department
		current.AcademicYear = timetable.AcademicYear
		current.Semester = timetable.Semester
		current.Mode = timetable.Mode
		current.UpdatedAt = now()
		st.timetables[timetable.ID] = current
		timetable.UpdatedAt = current.UpdatedAt
		return nil
	})
}

func (r *timetableRepo) DeleteTimetable(_ context.Context, id int64) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.timetables[id]; !ok {
			return repositories.ErrNotFound
		}
		delete(st.timetables, id)
		return nil
	})
}

func (r *timetableRepo) AppendSession(_ context.Context, timetableID, sessionID int64) error {
	return r.s.do(func(st *state) error {
		t, ok := st.timetables[timetableID]
		if !ok {
			return repositories.ErrNotFound
		}
		t.Sessions = append(cloneIDs(t.Sessions), sessionID)
		t.UpdatedAt = now()
		st.timetables[timetableID] = t
		return nil
	})
}
