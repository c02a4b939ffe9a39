package models

// SubjectResult captures one subject's outcome for a student. GradePoint is
// informational for optional subjects and always zero for continuous
// assessment subjects, which gate the overall result without contributing
// to the average.
type SubjectResult struct {
	SubjectID  string  `json:"subject_id"`
	Total      float64 `json:"total"`
	FullMarks  float64 `json:"full_marks"`
	GradePoint float64 `json:"grade_point"`
	Passed     bool    `json:"passed"`
}

// GradeResult is fully determined by a StudentRecord and the active
// curriculum. It is recomputed on demand and never mutated in place.
type GradeResult struct {
	Serial      int             `json:"serial"`
	Name        string          `json:"name"`
	Subjects    []SubjectResult `json:"subjects"`
	Total       float64         `json:"total"`
	Average     float64         `json:"average"`
	BaseGPA     float64         `json:"base_gpa"`
	Bonus       float64         `json:"bonus"`
	FinalGPA    float64         `json:"final_gpa"`
	LetterGrade string          `json:"letter_grade"`
	Passed      bool            `json:"passed"`
}

// Subject returns the per-subject result for the given subject ID.
func (r GradeResult) Subject(subjectID string) (SubjectResult, bool) {
	for _, s := range r.Subjects {
		if s.SubjectID == subjectID {
			return s, true
		}
	}
	return SubjectResult{}, false
}
