package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is one of the three fixed session roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole parses a role name as sent by the login form
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// SessionDescriptor is the client-held identity returned by login. Only the
// fields of its role are populated.
type SessionDescriptor struct {
	Role Role `json:"role"`

	// admin
	Username string `json:"username,omitempty"`

	// teacher
	TeacherID     string `json:"teacher_id,omitempty"`
	ClassAssigned int    `json:"class_assigned,omitempty"`
	Subject       string `json:"subject,omitempty"`

	// student
	StudentID  int64      `json:"student_id,omitempty"`
	RollNo     string     `json:"roll_no,omitempty"`
	ClassID    int        `json:"class_id,omitempty"`
	DOB        *time.Time `json:"dob,omitempty"`
	FatherName string     `json:"father_name,omitempty"`
	MotherName string     `json:"mother_name,omitempty"`
	Address    string     `json:"address,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Email      *string    `json:"email,omitempty"`

	// teacher and student
	Fullname string `json:"fullname,omitempty"`
	Section  string `json:"section,omitempty"`
}

// AdminSession builds the descriptor of an admin login
func AdminSession(username string) SessionDescriptor {
	return SessionDescriptor{Role: RoleAdmin, Username: username}
}

// TeacherSession builds the descriptor of a teacher login
func TeacherSession(t *Teacher) SessionDescriptor {
	return SessionDescriptor{
		Role:          RoleTeacher,
		TeacherID:     t.TeacherID,
		Fullname:      t.Fullname,
		ClassAssigned: t.ClassAssigned,
		Section:       t.Section,
		Subject:       t.Subject,
	}
}

// StudentSession builds the descriptor of a student login
func StudentSession(s *Student) SessionDescriptor {
	return SessionDescriptor{
		Role:       RoleStudent,
		StudentID:  s.ID,
		RollNo:     s.RollNo,
		Fullname:   s.Fullname,
		ClassID:    s.ClassID,
		Section:    s.Section,
		DOB:        s.DOB,
		FatherName: s.FatherName,
		MotherName: s.MotherName,
		Address:    s.Address,
		Phone:      s.Phone,
		Email:      s.Email,
	}
}

// SubjectID returns a stable identifier of the session owner, used as the JWT subject
func (d SessionDescriptor) SubjectID() string {
	switch d.Role {
	case RoleAdmin:
		return "admin:" + d.Username
	case RoleTeacher:
		return "teacher:" + d.TeacherID
	case RoleStudent:
		return fmt.Sprintf("student:%d", d.StudentID)
	default:
		return ""
	}
}
