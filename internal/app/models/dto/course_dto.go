package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required" example:"Distributed Systems"`
	Code        string `json:"code" binding:"required" example:"SE3040"`
	Description string `json:"description" binding:"required"`
	Credits     *int   `json:"credits" binding:"required,min=0" example:"4"`
	FacultyID   *int64 `json:"facultyId" binding:"omitempty,min=1" example:"1"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Code        *string `json:"code" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Credits     *int    `json:"credits" binding:"omitempty,min=0"`
	FacultyID   *int64  `json:"facultyId" binding:"omitempty,min=1"`
}
