package dto

// CreateTeacherRequest is the admin form for a new teacher. Every field is
// required; the teacher service reports missing ones together.
type CreateTeacherRequest struct {
	TeacherID     string `json:"teacher_id" example:"T100"`
	Fullname      string `json:"fullname" example:"Priya Sharma"`
	DOB           string `json:"dob" binding:"omitempty,datetime=2006-01-02" example:"1985-07-15"`
	ClassAssigned int    `json:"class_assigned" binding:"omitempty,min=1" example:"5"`
	Section       string `json:"section" binding:"omitempty,section" example:"A"`
	Subject       string `json:"subject" example:"math"`
}

// CreateTeacherResponse is returned with 201 after an insert
type CreateTeacherResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"Teacher added successfully"`
	TeacherID int64  `json:"teacherId" example:"4"`
}

// TeacherQuery binds the listing filters
type TeacherQuery struct {
	TeacherID     string `form:"teacher_id"`
	Fullname      string `form:"fullname"`
	ClassAssigned *int   `form:"class_assigned" binding:"omitempty,min=1"`
	Section       string `form:"section"`
}
