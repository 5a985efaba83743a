package dto

// MarkCellRequest is one cell of an upsert batch. A null mark is stored as null.
type MarkCellRequest struct {
	ExamType string `json:"exam_type" example:"unit1"`
	Subject  string `json:"subject" example:"math"`
	Marks    *int   `json:"marks" example:"80"`
}

// UpsertMarksRequest writes a batch of cells for one student atomically.
// The marks service checks it so a missing field gets the form's message.
type UpsertMarksRequest struct {
	StudentID int64             `json:"student_id" example:"17"`
	MarksData []MarkCellRequest `json:"marksData"`
}
