package dto

// CreateFacultyRequest represents faculty creation data
type CreateFacultyRequest struct {
	Name        string  `json:"name" binding:"required" example:"Faculty of Computing"`
	Departments string  `json:"departments" binding:"required" example:"Software Engineering"`
	Description *string `json:"description"`
}

// UpdateFacultyRequest represents faculty update data
type UpdateFacultyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Departments *string `json:"departments" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}
