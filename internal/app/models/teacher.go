package models

import "time"

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	TeacherID     string     `json:"teacher_id" db:"teacher_id" example:"T100"` // External identifier, also the login name
	Fullname      string     `json:"fullname" db:"fullname" example:"Priya Sharma"`
	DOB           *time.Time `json:"dob" db:"dob" example:"1985-07-15T00:00:00Z"`
	ClassAssigned int        `json:"class_assigned" db:"class_assigned" example:"5"`
	Section       string     `json:"section" db:"section" example:"A"`
	Subject       string     `json:"subject" db:"subject" example:"math"`
}

// TeacherFilter narrows teacher listings; nil/empty fields are ignored
type TeacherFilter struct {
	TeacherID     string
	Fullname      string
	ClassAssigned *int
	Section       string
}
