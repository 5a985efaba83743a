package models

import (
	"strings"
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64      `json:"id" db:"id" example:"1"`                    // Store-assigned identifier
	RollNo     string     `json:"roll_no" db:"roll_no" example:"12"`         // Roll number, unique within class and section
	Fullname   string     `json:"fullname" db:"fullname" example:"Amit Kumar"`
	FatherName string     `json:"father_name" db:"father_name" example:"Rakesh Kumar"`
	MotherName string     `json:"mother_name" db:"mother_name" example:"Sunita Devi"`
	DOB        *time.Time `json:"dob" db:"dob" example:"2012-04-01T00:00:00Z"`
	ClassID    int        `json:"class_id" db:"class_id" example:"5"`
	Section    string     `json:"section" db:"section" example:"A"`
	Address    string     `json:"address" db:"address" example:"12 MG Road"`
	Phone      string     `json:"phone" db:"phone" example:"9876543210"`
	Email      *string    `json:"email" db:"email" example:"amit@example.com"`
}

// StudentNaturalKey is the (roll_no, class_id, section) triple that must be unique
type StudentNaturalKey struct {
	RollNo  string
	ClassID int
	Section string
}

// NaturalKey returns the uniqueness key of the student
func (s *Student) NaturalKey() StudentNaturalKey {
	return StudentNaturalKey{RollNo: s.RollNo, ClassID: s.ClassID, Section: s.Section}
}

// InClass reports whether the student belongs to the given class and section
func (s *Student) InClass(classID int, section string) bool {
	return s.ClassID == classID && s.Section == section
}

// StudentFilter narrows student listings; nil/empty fields are ignored.
// Fullname is a partial match.
type StudentFilter struct {
	RollNo   string
	Fullname string
	ClassID  *int
	Section  string
}

// CompareRollNo orders roll numbers numerically when both are digit strings
// of the same shape: shorter first, then lexically.
func CompareRollNo(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
