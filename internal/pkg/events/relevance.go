package events

import "github.com/yigit/marksheet/internal/app/models"

// RelevantTo returns the filter deciding which events a session's dashboard
// receives. Admins see everything. Teachers see their own class section's
// student changes plus every marks, teacher and notification event. Students
// see their own marks and deletion plus notifications.
func RelevantTo(session models.SessionDescriptor) func(Event) bool {
	switch session.Role {
	case models.RoleAdmin:
		return func(Event) bool { return true }
	case models.RoleTeacher:
		return func(ev Event) bool {
			switch d := ev.Data.(type) {
			case StudentAdded:
				return d.ClassID == session.ClassAssigned && d.Section == session.Section
			case StudentDeleted:
				return d.ClassID == session.ClassAssigned && d.Section == session.Section
			case MarksUpdated, TeacherAdded, TeacherDeleted, Notification, SessionRevoked:
				return true
			}
			return false
		}
	case models.RoleStudent:
		return func(ev Event) bool {
			switch d := ev.Data.(type) {
			case MarksUpdated:
				return d.StudentID == session.StudentID
			case StudentDeleted:
				return d.ID == session.StudentID
			case Notification, SessionRevoked:
				return true
			}
			return false
		}
	}
	return func(Event) bool { return false }
}

// Revokes reports whether ev deletes the entity owning session
func Revokes(session models.SessionDescriptor, ev Event) bool {
	switch d := ev.Data.(type) {
	case StudentDeleted:
		return session.Role == models.RoleStudent && d.ID == session.StudentID
	case TeacherDeleted:
		return session.Role == models.RoleTeacher && d.TeacherID == session.TeacherID
	}
	return false
}
