package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

const (
	msgCourseNotFound    = "Course not found"
	msgCourseCodeTaken   = "Course code already exists"
	msgCourseFacultyGone = "Faculty not found"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo  repositories.CourseRepository
	facultyRepo repositories.FacultyRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, facultyRepo repositories.FacultyRepository) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, facultyRepo: facultyRepo}
}

// checkFaculty rejects a reference to a faculty that does not exist.
func (s *courseServiceImpl) checkFaculty(ctx context.Context, facultyID *int64) error {
	if facultyID == nil {
		return nil
	}
	if _, err := s.facultyRepo.GetFacultyByID(ctx, *facultyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewValidationError(msgCourseFacultyGone)
		}
		return fmt.Errorf("error checking course faculty: %w", err)
	}
	return nil
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		FacultyID:   req.FacultyID,
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	if err := s.checkFaculty(ctx, course.FacultyID); err != nil {
		return nil, err
	}

	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewConflictError(msgCourseCodeTaken)
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgCourseNotFound)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetAllCourses retrieves all courses
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse applies the supplied scalar fields to an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Code != nil {
		course.Code = *req.Code
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.FacultyID != nil {
		course.FacultyID = req.FacultyID
		if err := s.checkFaculty(ctx, course.FacultyID); err != nil {
			return nil, err
		}
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.NewConflictError(msgCourseCodeTaken)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewResourceNotFoundError(msgCourseNotFound)
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return course, nil
}

// DeleteCourse removes a course. A missing id is not an error; sessions and
// enrollments pointing at the course are kept.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
