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

const msgFacultyNotFound = "Faculty not found"

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{facultyRepo: facultyRepo}
}

// CreateFaculty creates a new faculty
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error) {
	faculty := &models.Faculty{
		Name:        req.Name,
		Departments: req.Departments,
		Description: req.Description,
	}
	if err := validateFaculty(faculty); err != nil {
		return nil, err
	}

	if err := s.facultyRepo.CreateFaculty(ctx, faculty); err != nil {
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}
	return faculty, nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetFacultyByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgFacultyNotFound)
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	return faculty, nil
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.GetAllFaculties(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}

// UpdateFaculty applies the supplied fields to an existing faculty
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.Faculty, error) {
	faculty, err := s.GetFacultyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		faculty.Name = *req.Name
	}
	if req.Departments != nil {
		faculty.Departments = *req.Departments
	}
	if req.Description != nil {
		faculty.Description = req.Description
	}
	if err := validateFaculty(faculty); err != nil {
		return nil, err
	}

	if err := s.facultyRepo.UpdateFaculty(ctx, faculty); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgFacultyNotFound)
		}
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	return faculty, nil
}

// DeleteFaculty removes a faculty. A missing id is not an error, and
// references held by courses, timetables and sessions are left as they are.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := s.facultyRepo.DeleteFaculty(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	return nil
}
