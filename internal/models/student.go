package models

// SubjectScore holds the raw component marks a student earned in one
// subject. Component order follows the subject's curriculum definition
// (e.g. paper I MCQ, paper I written, paper II MCQ, paper II written).
type SubjectScore struct {
	SubjectID  string    `json:"subject_id"`
	Components []float64 `json:"components"`
}

// Total returns the sum of all component marks.
func (s SubjectScore) Total() float64 {
	total := 0.0
	for _, c := range s.Components {
		total += c
	}
	return total
}

// StudentRecord is one roster entry: identity plus a score for every
// subject in the active curriculum, keyed by subject ID. Role (compulsory,
// optional, continuous assessment) lives on the curriculum, not here.
type StudentRecord struct {
	Serial int                     `json:"serial"`
	Name   string                  `json:"name"`
	Scores map[string]SubjectScore `json:"scores"`
}

// Score returns the student's score for a subject along with presence.
func (r StudentRecord) Score(subjectID string) (SubjectScore, bool) {
	score, ok := r.Scores[subjectID]
	return score, ok
}
