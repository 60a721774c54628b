package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

const (
	msgSessionNotFound   = "Session not found"
	msgTimetableNotFound = "Timetable not found"
)

// SessionService defines the interface for session-related operations
type SessionService interface {
	AttachToTimetable(ctx context.Context, timetableID int64, req *dto.AttachSessionRequest) (*models.Session, error)
	AttachToCourse(ctx context.Context, courseID int64, req *dto.AttachSessionRequest) (*models.Session, error)
	GetSessionByID(ctx context.Context, id int64) (*models.Session, error)
	GetAllSessions(ctx context.Context) ([]*models.Session, error)
	UpdateSession(ctx context.Context, id int64, req *dto.UpdateSessionRequest) (*models.Session, error)
	DeleteSession(ctx context.Context, id int64) error
}

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	sessionRepo repositories.SessionRepository
	tx          repositories.TxManager
}

// NewSessionService creates a new session service instance
func NewSessionService(sessionRepo repositories.SessionRepository, tx repositories.TxManager) SessionService {
	return &sessionServiceImpl{sessionRepo: sessionRepo, tx: tx}
}

func newSession(req *dto.AttachSessionRequest, courseID, facultyID int64) *models.Session {
	return &models.Session{
		Name:        req.Name,
		CourseID:    courseID,
		Coordinator: req.Coordinator,
		BookingID:   req.BookingID,
		FacultyID:   facultyID,
	}
}

// AttachToTimetable creates a session owned by the timetable. The session's
// faculty is always the timetable's faculty. The insert and the append to
// the timetable's sessions commit together.
func (s *sessionServiceImpl) AttachToTimetable(ctx context.Context, timetableID int64, req *dto.AttachSessionRequest) (*models.Session, error) {
	var session *models.Session
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		timetable, err := repos.Timetables.GetTimetableByID(ctx, timetableID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NewResourceNotFoundError(msgTimetableNotFound)
			}
			return fmt.Errorf("error retrieving timetable: %w", err)
		}

		session = newSession(req, req.CourseID, timetable.FacultyID)
		if err := validateSession(session); err != nil {
			return err
		}
		if err := repos.Sessions.CreateSession(ctx, session); err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		if err := repos.Timetables.AppendSession(ctx, timetableID, session.ID); err != nil {
			return fmt.Errorf("error appending session to timetable: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("sessionID", session.ID).Int64("timetableID", timetableID).Msg("Session attached to timetable")
	return session, nil
}

// AttachToCourse creates a session owned by the course, taking the course's
// faculty. A course without a faculty cannot own sessions.
func (s *sessionServiceImpl) AttachToCourse(ctx context.Context, courseID int64, req *dto.AttachSessionRequest) (*models.Session, error) {
	var session *models.Session
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		course, err := repos.Courses.GetCourseByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NewResourceNotFoundError(msgCourseNotFound)
			}
			return fmt.Errorf("error retrieving course: %w", err)
		}

		var facultyID int64
		if course.FacultyID != nil {
			facultyID = *course.FacultyID
		}
		session = newSession(req, courseID, facultyID)
		if err := validateSession(session); err != nil {
			return err
		}
		if err := repos.Sessions.CreateSession(ctx, session); err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		if err := repos.Courses.AppendSession(ctx, courseID, session.ID); err != nil {
			return fmt.Errorf("error appending session to course: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("sessionID", session.ID).Int64("courseID", courseID).Msg("Session attached to course")
	return session, nil
}

// GetSessionByID retrieves a session by ID
func (s *sessionServiceImpl) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.sessionRepo.GetSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgSessionNotFound)
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return session, nil
}

// GetAllSessions retrieves all sessions
func (s *sessionServiceImpl) GetAllSessions(ctx context.Context) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.GetAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sessions: %w", err)
	}
	return sessions, nil
}

// UpdateSession applies the supplied fields. Owner session lists are not touched.
func (s *sessionServiceImpl) UpdateSession(ctx context.Context, id int64, req *dto.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.CourseID != nil {
		session.CourseID = *req.CourseID
	}
	if req.Coordinator != nil {
		session.Coordinator = req.Coordinator
	}
	if req.BookingID != nil {
		session.BookingID = *req.BookingID
	}
	if req.FacultyID != nil {
		session.FacultyID = *req.FacultyID
	}
	if err := validateSession(session); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateSession(ctx, session); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgSessionNotFound)
		}
		return nil, fmt.Errorf("error updating session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session after checking it exists. The id stays in
// any owner's sessions until the reconciler prunes it.
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, id int64) error {
	if _, err := s.GetSessionByID(ctx, id); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteSession(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewResourceNotFoundError(msgSessionNotFound)
		}
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
