package dto

// CreateStudentRequest is the admin form for a new student. Required fields
// are checked by the student service, which reports them together.
type CreateStudentRequest struct {
	RollNo     string  `json:"roll_no" example:"12"`
	Fullname   string  `json:"fullname" example:"Amit Kumar"`
	FatherName string  `json:"father_name" example:"Rakesh Kumar"`
	MotherName string  `json:"mother_name" example:"Sunita Devi"`
	DOB        string  `json:"dob" binding:"omitempty,datetime=2006-01-02" example:"2012-04-01"`
	ClassID    int     `json:"class_id" binding:"omitempty,min=1" example:"5"`
	Section    string  `json:"section" binding:"omitempty,section" example:"A"`
	Address    string  `json:"address" example:"12 MG Road"`
	Phone      string  `json:"phone" example:"9876543210"`
	Email      *string `json:"email" binding:"omitempty,email" example:"amit@example.com"`
}

// CreateStudentResponse is returned with 201 after an insert
type CreateStudentResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"Student added successfully"`
	StudentID int64  `json:"studentId" example:"17"`
}

// StudentQuery binds the listing filters
type StudentQuery struct {
	RollNo   string `form:"roll_no"`
	Fullname string `form:"fullname"`
	ClassID  *int   `form:"class_id" binding:"omitempty,min=1"`
	Section  string `form:"section"`
}

// StudentSearchQuery binds the natural-key lookup
type StudentSearchQuery struct {
	RollNo  string `form:"roll_no" binding:"required"`
	ClassID int    `form:"class_id" binding:"required,min=1"`
	Section string `form:"section" binding:"required"`
}

// ClassSectionQuery binds the class roster lookup
type ClassSectionQuery struct {
	ClassID int    `form:"class_id" binding:"required,min=1"`
	Section string `form:"section" binding:"required"`
}
