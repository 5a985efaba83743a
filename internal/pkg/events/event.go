package events

import (
	"encoding/json"
	"time"

	"github.com/yigit/marksheet/internal/app/models"
)

// Kind names an event on the wire
type Kind string

// Published event kinds
const (
	KindStudentAdded   Kind = "student:added"
	KindStudentDeleted Kind = "student:deleted"
	KindTeacherAdded   Kind = "teacher:added"
	KindTeacherDeleted Kind = "teacher:deleted"
	KindMarksUpdated   Kind = "marks:updated"
	KindNotification   Kind = "notification"
	// KindSessionRevoked is sent to a socket whose owner was deleted, right before it closes
	KindSessionRevoked Kind = "session:revoked"
)

// Event is one published change. Data is one of the payload types below.
type Event struct {
	Kind Kind
	Data interface{}
	At   time.Time
}

type frame struct {
	Event Kind        `json:"event"`
	Data  interface{} `json:"data"`
}

// MarshalJSON renders the wire form {"event": "<kind>", "data": {...}}
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(frame{Event: e.Kind, Data: e.Data})
}

// StudentAdded payload
type StudentAdded struct {
	ID       int64  `json:"id"`
	RollNo   string `json:"roll_no"`
	Fullname string `json:"fullname"`
	ClassID  int    `json:"class_id"`
	Section  string `json:"section"`
}

// StudentDeleted payload. Class and section let class-scoped
// subscribers decide relevance.
type StudentDeleted struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	ClassID  int    `json:"class_id"`
	Section  string `json:"section"`
}

// TeacherAdded payload
type TeacherAdded struct {
	ID            int64  `json:"id"`
	TeacherID     string `json:"teacher_id"`
	Fullname      string `json:"fullname"`
	ClassAssigned int    `json:"class_assigned"`
	Section       string `json:"section"`
	Subject       string `json:"subject"`
}

// TeacherDeleted payload
type TeacherDeleted struct {
	ID        int64  `json:"id"`
	TeacherID string `json:"teacher_id"`
	Fullname  string `json:"fullname"`
}

// MarksUpdated payload; clients re-fetch the grid
type MarksUpdated struct {
	StudentID int64 `json:"student_id"`
}

// Notification is a human-readable toast
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SessionRevoked tells a client to log in again
type SessionRevoked struct {
	Reason string `json:"reason"`
}

func newEvent(kind Kind, data interface{}) Event {
	return Event{Kind: kind, Data: data, At: time.Now()}
}

// NewStudentAdded builds a student:added event
func NewStudentAdded(s *models.Student) Event {
	return newEvent(KindStudentAdded, StudentAdded{
		ID: s.ID, RollNo: s.RollNo, Fullname: s.Fullname, ClassID: s.ClassID, Section: s.Section,
	})
}

// NewStudentDeleted builds a student:deleted event
func NewStudentDeleted(s *models.Student) Event {
	return newEvent(KindStudentDeleted, StudentDeleted{
		ID: s.ID, Fullname: s.Fullname, ClassID: s.ClassID, Section: s.Section,
	})
}

// NewTeacherAdded builds a teacher:added event
func NewTeacherAdded(t *models.Teacher) Event {
	return newEvent(KindTeacherAdded, TeacherAdded{
		ID: t.ID, TeacherID: t.TeacherID, Fullname: t.Fullname,
		ClassAssigned: t.ClassAssigned, Section: t.Section, Subject: t.Subject,
	})
}

// NewTeacherDeleted builds a teacher:deleted event
func NewTeacherDeleted(t *models.Teacher) Event {
	return newEvent(KindTeacherDeleted, TeacherDeleted{ID: t.ID, TeacherID: t.TeacherID, Fullname: t.Fullname})
}

// NewMarksUpdated builds a marks:updated event
func NewMarksUpdated(studentID int64) Event {
	return newEvent(KindMarksUpdated, MarksUpdated{StudentID: studentID})
}

// NewSessionRevoked builds the frame sent before a revoked socket closes
func NewSessionRevoked(reason string) Event {
	return newEvent(KindSessionRevoked, SessionRevoked{Reason: reason})
}

// NoticeFor derives the notification broadcast after an add or delete.
// Other kinds have none.
func NoticeFor(ev Event) (Event, bool) {
	var msg string
	switch d := ev.Data.(type) {
	case StudentAdded:
		msg = "New student added: " + d.Fullname
	case StudentDeleted:
		msg = "Student deleted: " + d.Fullname
	case TeacherAdded:
		msg = "New teacher added: " + d.Fullname
	case TeacherDeleted:
		msg = "Teacher deleted: " + d.Fullname
	default:
		return Event{}, false
	}
	return newEvent(KindNotification, Notification{Type: "info", Message: msg}), true
}
