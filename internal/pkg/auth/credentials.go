package auth

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yigit/marksheet/internal/app/models"
)

// epochYear stands in for a missing date of birth
const epochYear = 1970

// StripWhitespace removes every whitespace rune from s
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// TeacherPassword derives a teacher's password:
// fullname without whitespace + class_assigned + section, e.g. "JohnDoe10A".
func TeacherPassword(t *models.Teacher) string {
	return StripWhitespace(t.Fullname) + strconv.Itoa(t.ClassAssigned) + t.Section
}

// StudentUsername derives a student's login name:
// fullname without whitespace + birth year + class_id + section, e.g. "AmitKumar20125A".
func StudentUsername(s *models.Student) string {
	year := epochYear
	if s.DOB != nil {
		year = s.DOB.Year()
	}
	return StripWhitespace(s.Fullname) + strconv.Itoa(year) + strconv.Itoa(s.ClassID) + s.Section
}

// StudentPassword is the roll number
func StudentPassword(s *models.Student) string {
	return s.RollNo
}
