package services

// Services defined in this package:
// - MarksService: atomic batch upsert and grid reads for student marks
// - StudentService: student admission, removal and lookups
// - TeacherService: teacher admission, removal and lookups
// - AuthService: derived-credential login and session resolution
