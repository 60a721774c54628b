package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/helpers"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/metrics"
)

const (
	msgAlreadyEnrolled    = "Already enrolled in this course"
	msgEnrollToView       = "Please enroll to view the sessions"
	msgEnrollmentNotFound = "Enrollment not found"
)

// EnrollmentService defines the interface for enrollment-related operations
type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	GetEnrolledCourseSessions(ctx context.Context, userID, courseID int64) ([]*models.Session, error)
	GetCourseEnrollments(ctx context.Context, courseID int64) ([]*dto.EnrollmentDetail, error)
	UpdateEnrollment(ctx context.Context, courseID, enrollmentID int64, req *dto.UpdateEnrollmentRequest) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, enrollmentID int64) error
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	courseRepo     repositories.CourseRepository
	sessionRepo    repositories.SessionRepository
	enrollmentRepo repositories.EnrollmentRepository
	userRepo       repositories.UserRepository
	tx             repositories.TxManager
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(repos *repositories.Repositories) EnrollmentService {
	return &enrollmentServiceImpl{
		courseRepo:     repos.Courses,
		sessionRepo:    repos.Sessions,
		enrollmentRepo: repos.Enrollments,
		userRepo:       repos.Users,
		tx:             repos.Tx,
	}
}

func alreadyEnrolled(userID, courseID int64) error {
	metrics.EnrollmentConflicts.Inc()
	logger.Info().Int64("userID", userID).Int64("courseID", courseID).Msg("Enrollment rejected, pair already exists")
	return apperrors.NewConflictError(msgAlreadyEnrolled)
}

// Enroll records the enrollment and adds the pair to both derived
// enrollment sets. All three writes commit together.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		if _, err := repos.Courses.GetCourseByID(ctx, courseID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NewResourceNotFoundError(msgCourseNotFound)
			}
			return fmt.Errorf("error retrieving course: %w", err)
		}

		_, err := repos.Enrollments.FindEnrollment(ctx, userID, courseID)
		switch {
		case err == nil:
			return alreadyEnrolled(userID, courseID)
		case !errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("error checking enrollment: %w", err)
		}

		if err := repos.Enrollments.CreateEnrollment(ctx, enrollment); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return alreadyEnrolled(userID, courseID)
			}
			return fmt.Errorf("error creating enrollment: %w", err)
		}
		if err := repos.Users.AddEnrollment(ctx, userID, courseID); err != nil {
			return fmt.Errorf("error updating user enrollments: %w", err)
		}
		if err := repos.Courses.AddEnrollment(ctx, courseID, userID); err != nil {
			return fmt.Errorf("error updating course enrollments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Int64("courseID", courseID).Msg("User enrolled")
	return enrollment, nil
}

// GetEnrolledCourseSessions returns the course's sessions in attachment
// order, but only to users the course lists as enrolled.
func (s *enrollmentServiceImpl) GetEnrolledCourseSessions(ctx context.Context, userID, courseID int64) ([]*models.Session, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgCourseNotFound)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if !helpers.ContainsID(course.Enrollments, userID) {
		return nil, apperrors.NewForbiddenError(msgEnrollToView)
	}

	sessions, err := s.sessionRepo.GetSessionsByIDs(ctx, course.Sessions)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*models.Session{}
	}
	return sessions, nil
}

// GetCourseEnrollments lists the course's enrollment records with users expanded.
func (s *enrollmentServiceImpl) GetCourseEnrollments(ctx context.Context, courseID int64) ([]*dto.EnrollmentDetail, error) {
	enrollments, err := s.enrollmentRepo.GetEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}

	userIDs := make([]int64, 0, len(enrollments))
	for _, e := range enrollments {
		userIDs = append(userIDs, e.UserID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrolled users: %w", err)
	}
	byID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	details := make([]*dto.EnrollmentDetail, 0, len(enrollments))
	for _, e := range enrollments {
		detail := &dto.EnrollmentDetail{ID: e.ID, CourseID: e.CourseID}
		if u, ok := byID[e.UserID]; ok {
			detail.User = &dto.EnrolledUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
		}
		details = append(details, detail)
	}
	return details, nil
}

// UpdateEnrollment reassigns the record to req.UserID under courseID. The
// derived enrollment sets are left as they are; the reconciler repairs them.
func (s *enrollmentServiceImpl) UpdateEnrollment(ctx context.Context, courseID, enrollmentID int64, req *dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgEnrollmentNotFound)
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	enrollment.UserID = req.UserID
	enrollment.CourseID = courseID
	if err := s.enrollmentRepo.UpdateEnrollment(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewResourceNotFoundError(msgEnrollmentNotFound)
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, alreadyEnrolled(enrollment.UserID, courseID)
		}
		return nil, fmt.Errorf("error updating enrollment: %w", err)
	}
	return enrollment, nil
}

// DeleteEnrollment removes the record without checking it exists and
// without touching the derived sets.
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, enrollmentID int64) error {
	if err := s.enrollmentRepo.DeleteEnrollment(ctx, enrollmentID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	return nil
}
