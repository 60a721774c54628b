package dto

import "github.com/yigit/unischedule/internal/app/models"

// CreateTimetableRequest represents timetable creation data
type CreateTimetableRequest struct {
	Name         string  `json:"name" binding:"required" example:"Y3S1 Weekday"`
	FacultyID    int64   `json:"facultyId" binding:"required,min=1" example:"1"`
	Department   *string `json:"department"`
	AcademicYear *int    `json:"academicYear" binding:"required,min=1" example:"3"`
	Semester     *int    `json:"semester" binding:"required,min=1" example:"1"`
	Mode         *string `json:"mode" example:"weekday"`
}

// UpdateTimetableRequest represents timetable update data
type UpdateTimetableRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1"`
	FacultyID    *int64  `json:"facultyId" binding:"omitempty,min=1"`
	Department   *string `json:"department"`
	AcademicYear *int    `json:"academicYear" binding:"omitempty,min=1"`
	Semester     *int    `json:"semester" binding:"omitempty,min=1"`
	Mode         *string `json:"mode"`
}

// TimetableResponse is a timetable with its sessions expanded.
type TimetableResponse struct {
	models.Timetable
	Sessions []*models.Session `json:"sessions"`
}

// CourseTimetable pairs an enrolled course name with a timetable teaching it.
type CourseTimetable struct {
	Course    string             `json:"course" example:"Distributed Systems"`
	Timetable *TimetableResponse `json:"timetable"`
}

// MyTimetablesResponse lists the timetables relevant to the caller.
type MyTimetablesResponse struct {
	Timetables []CourseTimetable `json:"timetables"`
}

// TimetableExportRow is one CSV line of a timetable export.
type TimetableExportRow struct {
	Session     string `csv:"session"`
	CourseCode  string `csv:"course_code"`
	Coordinator string `csv:"coordinator"`
	Room        string `csv:"room"`
	Day         string `csv:"day"`
	StartTime   string `csv:"start_time"`
	EndTime     string `csv:"end_time"`
}
