package dto

// CreateBookingRequest represents booking creation data
type CreateBookingRequest struct {
	Room      string `json:"room" binding:"required" example:"A401"`
	Day       string `json:"day" binding:"required" example:"Monday"`
	StartTime string `json:"startTime" binding:"required" example:"09:00"`
	EndTime   string `json:"endTime" binding:"required" example:"10:00"`
}

// UpdateBookingRequest carries only the fields to overwrite.
type UpdateBookingRequest struct {
	Room      *string `json:"room" binding:"omitempty,min=1"`
	Day       *string `json:"day" binding:"omitempty,min=1"`
	StartTime *string `json:"startTime" binding:"omitempty,min=1"`
	EndTime   *string `json:"endTime" binding:"omitempty,min=1"`
}
