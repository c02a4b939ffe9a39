package models

// SubjectAverage is the class-wide mean mark for one subject.
type SubjectAverage struct {
	SubjectID string  `json:"subject_id"`
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
}

// RankedStudent is one row of the top-N ranking by final GPA.
type RankedStudent struct {
	Rank        int     `json:"rank"`
	Serial      int     `json:"serial"`
	Name        string  `json:"name"`
	FinalGPA    float64 `json:"final_gpa"`
	RosterIndex int     `json:"roster_index"`
}

// ClassSummary aggregates a whole roster's results for the dashboard.
type ClassSummary struct {
	TotalStudents   int              `json:"total_students"`
	AverageGPA      float64          `json:"average_gpa"`
	PassRate        float64          `json:"pass_rate"`
	HighestTotal    float64          `json:"highest_total"`
	GradeCounts     map[string]int   `json:"grade_counts"`
	SubjectAverages []SubjectAverage `json:"subject_averages"`
	TopStudents     []RankedStudent  `json:"top_students"`
}
