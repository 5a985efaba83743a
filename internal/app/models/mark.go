package models

import (
	"fmt"
	"strings"
)

// ExamType is one of the six examinations of a school year
type ExamType string

// Exam types in grid order
const (
	ExamUnit1      ExamType = "unit1"
	ExamUnit2      ExamType = "unit2"
	ExamHalfYearly ExamType = "half_yearly"
	ExamUnit3      ExamType = "unit3"
	ExamUnit4      ExamType = "unit4"
	ExamYearly     ExamType = "yearly"
)

// ExamTypes lists every exam type in grid order
var ExamTypes = []ExamType{ExamUnit1, ExamUnit2, ExamHalfYearly, ExamUnit3, ExamUnit4, ExamYearly}

// Valid reports whether e is a known exam type
func (e ExamType) Valid() bool {
	for _, known := range ExamTypes {
		if e == known {
			return true
		}
	}
	return false
}

// Subject is one of the eight graded subjects
type Subject string

// Subjects in grid order
const (
	SubjectMath         Subject = "math"
	SubjectScience      Subject = "science"
	SubjectHindi        Subject = "hindi"
	SubjectEnglish      Subject = "english"
	SubjectSST          Subject = "sst"
	SubjectGK           Subject = "gk"
	SubjectDrawing      Subject = "drawing"
	SubjectMoralScience Subject = "moral_science"
)

// Subjects lists every subject in grid order
var Subjects = []Subject{
	SubjectMath, SubjectScience, SubjectHindi, SubjectEnglish,
	SubjectSST, SubjectGK, SubjectDrawing, SubjectMoralScience,
}

// Valid reports whether s is a known subject
func (s Subject) Valid() bool {
	for _, known := range Subjects {
		if s == known {
			return true
		}
	}
	return false
}

// Mark bounds, inclusive
const (
	MinMark = 0
	MaxMark = 100
)

// GridSize is the number of cells in a student's mark grid
var GridSize = len(ExamTypes) * len(Subjects)

// MarkCell addresses one cell of the grid
type MarkCell struct {
	ExamType ExamType `json:"exam_type"`
	Subject  Subject  `json:"subject"`
}

// Valid reports whether both coordinates are within the enumerations
func (c MarkCell) Valid() bool {
	return c.ExamType.Valid() && c.Subject.Valid()
}

// Key returns the flattened "<exam>_<subject>" form, e.g. "unit1_math"
func (c MarkCell) Key() string {
	return string(c.ExamType) + "_" + string(c.Subject)
}

// ParseMarkKey is the inverse of MarkCell.Key. Exam types and subjects may
// themselves contain underscores, so every exam prefix is tried.
func ParseMarkKey(key string) (MarkCell, error) {
	for _, exam := range ExamTypes {
		rest, ok := strings.CutPrefix(key, string(exam)+"_")
		if !ok {
			continue
		}
		if subject := Subject(rest); subject.Valid() {
			return MarkCell{ExamType: exam, Subject: subject}, nil
		}
	}
	return MarkCell{}, fmt.Errorf("unknown mark key %q", key)
}

// AllCells returns the full grid in exam-major order
func AllCells() []MarkCell {
	cells := make([]MarkCell, 0, GridSize)
	for _, exam := range ExamTypes {
		for _, subject := range Subjects {
			cells = append(cells, MarkCell{ExamType: exam, Subject: subject})
		}
	}
	return cells
}

// MarkKey identifies a stored mark: at most one entry per key
type MarkKey struct {
	StudentID int64 `json:"student_id"`
	MarkCell
}

// MarkEntry is a stored mark. Marks is nil when the cell is ungraded or was
// explicitly cleared.
type MarkEntry struct {
	ID int64 `json:"id"`
	MarkKey
	Marks *int `json:"marks"`
}

// MarkGrid holds one student's marks keyed by cell; absent cells are ungraded
type MarkGrid map[MarkCell]*int

// GridFromEntries groups entries into one grid per student
func GridFromEntries(entries []MarkEntry) map[int64]MarkGrid {
	grids := make(map[int64]MarkGrid)
	for _, e := range entries {
		g, ok := grids[e.StudentID]
		if !ok {
			g = MarkGrid{}
			grids[e.StudentID] = g
		}
		g[e.MarkCell] = e.Marks
	}
	return grids
}

// Flatten returns all 48 "<exam>_<subject>" keys; cells without a mark are nil
func (g MarkGrid) Flatten() map[string]*int {
	flat := make(map[string]*int, GridSize)
	for _, cell := range AllCells() {
		flat[cell.Key()] = g[cell]
	}
	return flat
}

// UnflattenGrid rebuilds a grid from its flattened form. Nil values are kept
// so the result round-trips through Flatten.
func UnflattenGrid(flat map[string]*int) (MarkGrid, error) {
	g := make(MarkGrid, len(flat))
	for key, v := range flat {
		cell, err := ParseMarkKey(key)
		if err != nil {
			return nil, err
		}
		if v != nil {
			g[cell] = v
		}
	}
	return g, nil
}

// IntPtr is a convenience for building marks
func IntPtr(v int) *int {
	return &v
}
