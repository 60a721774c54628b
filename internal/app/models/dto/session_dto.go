package dto

// AttachSessionRequest is the body for creating a session under a course or a
// timetable. The faculty always comes from the owner.
type AttachSessionRequest struct {
	Name        string  `json:"name" binding:"required" example:"Lecture 01"`
	CourseID    int64   `json:"courseId" binding:"omitempty,min=1" example:"1"`
	Coordinator *string `json:"coordinator" example:"Dr. Perera"`
	BookingID   int64   `json:"bookingId" binding:"required,min=1" example:"1"`
}

// UpdateSessionRequest represents session update data
type UpdateSessionRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	CourseID    *int64  `json:"courseId" binding:"omitempty,min=1"`
	Coordinator *string `json:"coordinator"`
	BookingID   *int64  `json:"bookingId" binding:"omitempty,min=1"`
	FacultyID   *int64  `json:"facultyId" binding:"omitempty,min=1"`
}
