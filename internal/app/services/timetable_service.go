package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// TimetableService defines the interface for timetable-related operations
type TimetableService interface {
	CreateTimetable(ctx context.Context, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error)
	GetTimetableByID(ctx context.Context, id int64) (*dto.TimetableResponse, error)
	GetAllTimetables(ctx context.Context) ([]*dto.TimetableResponse, error)
	UpdateTimetable(ctx context.Context, id int64, req *dto.UpdateTimetableRequest) (*dto.TimetableResponse, error)
	DeleteTimetable(ctx context.Context, id int64) error
	GetMyTimetables(ctx context.Context, userID int64) (*dto.MyTimetablesResponse, error)
	ExportTimetableCSV(ctx context.Context, id int64, w io.Writer) error
}

// timetableServiceImpl implements the TimetableService interface
type timetableServiceImpl struct {
	timetableRepo repositories.TimetableRepository
	sessionRepo   repositories.SessionRepository
	courseRepo    repositories.CourseRepository
	bookingRepo   repositories.BookingRepository
	userRepo      repositories.UserRepository
}

// NewTimetableService creates a new timetable service instance
func NewTimetableService(repos *repositories.Repositories) TimetableService {
	return &timetableServiceImpl{
		timetableRepo: repos.Timetables,
		sessionRepo:   repos.Sessions,
		courseRepo:    repos.Courses,
		bookingRepo:   repos.Bookings,
		userRepo:      repos.Users,
	}
}

// expand resolves a timetable's session ids. Ids whose session is gone are skipped.
func (s *timetableServiceImpl) expand(ctx context.Context, timetable *models.Timetable) (*dto.TimetableResponse, error) {
	sessions, err := s.sessionRepo.GetSessionsByIDs(ctx, timetable.Sessions)
	if err != nil {
		return nil, fmt.Errorf("error expanding timetable sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*models.Session{}
	}
	return &dto.TimetableResponse{Timetable: *timetable, Sessions: sessions}, nil
}

func (s *timetableServiceImpl) getTimetable(ctx context.Context, id int64) (*models.Timetable, error) {
	timetable, err := s.timetableRepo.GetTimetableByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgTimetableNotFound)
		}
		return nil, fmt.Errorf("error retrieving timetable: %w", err)
	}
	return timetable, nil
}

// CreateTimetable creates a new timetable with no sessions
func (s *timetableServiceImpl) CreateTimetable(ctx context.Context, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error) {
	timetable := &models.Timetable{
		Name:       req.Name,
		FacultyID:  req.FacultyID,
		Department: req.Department,
		Mode:       req.Mode,
		Sessions:   []int64{},
	}
	if req.AcademicYear != nil {
		timetable.AcademicYear = *req.AcademicYear
	}
	if req.Semester != nil {
		timetable.Semester = *req.Semester
	}
	if err := validateTimetable(timetable); err != nil {
		return nil, err
	}

	if err := s.timetableRepo.CreateTimetable(ctx, timetable); err != nil {
		return nil, fmt.Errorf("error creating timetable: %w", err)
	}
	return &dto.TimetableResponse{Timetable: *timetable, Sessions: []*models.Session{}}, nil
}

// GetTimetableByID retrieves a timetable with its sessions expanded
func (s *timetableServiceImpl) GetTimetableByID(ctx context.Context, id int64) (*dto.TimetableResponse, error) {
	timetable, err := s.getTimetable(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, timetable)
}

// GetAllTimetables retrieves all timetables with their sessions expanded
func (s *timetableServiceImpl) GetAllTimetables(ctx context.Context) ([]*dto.TimetableResponse, error) {
	timetables, err := s.timetableRepo.GetAllTimetables(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving timetables: %w", err)
	}

	result := make([]*dto.TimetableResponse, 0, len(timetables))
	for _, t := range timetables {
		expanded, err := s.expand(ctx, t)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded)
	}
	return result, nil
}

// UpdateTimetable applies the supplied fields. The session list is only
// changed through attachment.
func (s *timetableServiceImpl) UpdateTimetable(ctx context.Context, id int64, req *dto.UpdateTimetableRequest) (*dto.TimetableResponse, error) {
	timetable, err := s.getTimetable(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		timetable.Name = *req.Name
	}
	if req.FacultyID != nil {
		timetable.FacultyID = *req.FacultyID
	}
	if req.Department != nil {
		timetable.Department = req.Department
	}
	if req.AcademicYear != nil {
		timetable.AcademicYear = *req.AcademicYear
	}
	if req.Semester != nil {
		timetable.Semester = *req.Semester
	}
	if req.Mode != nil {
		timetable.Mode = req.Mode
	}
	if err := validateTimetable(timetable); err != nil {
		return nil, err
	}

	if err := s.timetableRepo.UpdateTimetable(ctx, timetable); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgTimetableNotFound)
		}
		return nil, fmt.Errorf("error updating timetable: %w", err)
	}
	return s.expand(ctx, timetable)
}

// DeleteTimetable removes a timetable. A missing id is not an error.
func (s *timetableServiceImpl) DeleteTimetable(ctx context.Context, id int64) error {
	if err := s.timetableRepo.DeleteTimetable(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("error deleting timetable: %w", err)
	}
	return nil
}

// GetMyTimetables pairs each course the user is enrolled in with every
// timetable that holds at least one of that course's sessions.
func (s *timetableServiceImpl) GetMyTimetables(ctx context.Context, userID int64) (*dto.MyTimetablesResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	courses, err := s.courseRepo.GetCoursesByIDs(ctx, user.Enrollments)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrolled courses: %w", err)
	}

	resp := &dto.MyTimetablesResponse{Timetables: []dto.CourseTimetable{}}
	for _, course := range courses {
		sessions, err := s.sessionRepo.GetSessionsByCourse(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving course sessions: %w", err)
		}
		if len(sessions) == 0 {
			continue
		}
		ids := make([]int64, 0, len(sessions))
		for _, session := range sessions {
			ids = append(ids, session.ID)
		}

		timetables, err := s.timetableRepo.GetTimetablesWithAnySession(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("error retrieving course timetables: %w", err)
		}
		for _, t := range timetables {
			expanded, err := s.expand(ctx, t)
			if err != nil {
				return nil, err
			}
			resp.Timetables = append(resp.Timetables, dto.CourseTimetable{Course: course.Name, Timetable: expanded})
		}
	}
	return resp, nil
}

// ExportTimetableCSV writes one row per session of the timetable. Missing
// courses or bookings leave their columns empty.
func (s *timetableServiceImpl) ExportTimetableCSV(ctx context.Context, id int64, w io.Writer) error {
	timetable, err := s.getTimetable(ctx, id)
	if err != nil {
		return err
	}
	sessions, err := s.sessionRepo.GetSessionsByIDs(ctx, timetable.Sessions)
	if err != nil {
		return fmt.Errorf("error retrieving timetable sessions: %w", err)
	}

	courseIDs := make([]int64, 0, len(sessions))
	bookingIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		courseIDs = append(courseIDs, session.CourseID)
		bookingIDs = append(bookingIDs, session.BookingID)
	}
	courses, err := s.courseRepo.GetCoursesByIDs(ctx, courseIDs)
	if err != nil {
		return fmt.Errorf("error retrieving courses for export: %w", err)
	}
	bookings, err := s.bookingRepo.GetBookingsByIDs(ctx, bookingIDs)
	if err != nil {
		return fmt.Errorf("error retrieving bookings for export: %w", err)
	}

	courseByID := make(map[int64]*models.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}
	bookingByID := make(map[int64]*models.Booking, len(bookings))
	for _, b := range bookings {
		bookingByID[b.ID] = b
	}

	rows := make([]*dto.TimetableExportRow, 0, len(sessions))
	for _, session := range sessions {
		row := &dto.TimetableExportRow{Session: session.Name}
		if session.Coordinator != nil {
			row.Coordinator = *session.Coordinator
		}
		if c, ok := courseByID[session.CourseID]; ok {
			row.CourseCode = c.Code
		}
		if b, ok := bookingByID[session.BookingID]; ok {
			row.Room = b.Room
			row.Day = b.Day
			row.StartTime = b.StartTime
			row.EndTime = b.EndTime
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("error writing timetable csv: %w", err)
	}
	return nil
}
