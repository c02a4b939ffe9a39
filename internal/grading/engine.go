package grading

import (
	"math"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
)

// MaxGPA caps the final GPA after the optional-subject bonus.
const MaxGPA = 5.0

// GradeBand maps a minimum subject percentage to a grade point.
type GradeBand struct {
	MinPercent float64
	Point      float64
}

// LetterBand maps a minimum final GPA to a letter grade.
type LetterBand struct {
	MinGPA float64
	Letter string
}

// GradeBands is the fixed grade point scale, highest band first. The
// formula renderer derives its nested conditionals from the same table the
// engine evaluates, so the two can never drift apart.
var GradeBands = []GradeBand{
	{80, 5.0},
	{70, 4.0},
	{60, 3.5},
	{50, 3.0},
	{40, 2.0},
	{33, 1.0},
}

// LetterBands is the fixed letter grade scale, highest band first. Anything
// below the last band is an F.
var LetterBands = []LetterBand{
	{5.0, "A+"},
	{4.0, "A"},
	{3.5, "A-"},
	{3.0, "B"},
	{2.0, "C"},
	{1.0, "D"},
}

// GradePoint maps obtained marks against a denominator onto the fixed grade
// point scale. fullMarks comes from subject configuration and is validated
// positive before any engine runs.
func GradePoint(obtained, fullMarks float64) float64 {
	percentage := obtained / fullMarks * 100
	for _, band := range GradeBands {
		if percentage >= band.MinPercent {
			return band.Point
		}
	}
	return 0.0
}

// LetterGrade maps a final GPA onto its letter grade.
func LetterGrade(gpa float64) string {
	for _, band := range LetterBands {
		if gpa >= band.MinGPA {
			return band.Letter
		}
	}
	return "F"
}

// Engine converts a student's raw marks into a GradeResult under one
// curriculum revision. It is stateless and safe for concurrent use across
// independent records.
type Engine struct {
	curriculum curriculum.Curriculum
	round      func(float64) float64
}

// NewEngine validates the curriculum and builds an engine for it.
func NewEngine(c curriculum.Curriculum) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		curriculum: c,
		// Half away from zero, like the spreadsheet ROUND function. Static
		// and formula-mode workbooks must agree at 0.005 ties.
		round: func(v float64) float64 { return math.Round(v*100) / 100 },
	}, nil
}

// Curriculum returns the revision the engine was built for.
func (e *Engine) Curriculum() curriculum.Curriculum {
	return e.curriculum
}

// SubjectPasses evaluates one subject's pass condition, independent of
// grade-point calculation.
func (e *Engine) SubjectPasses(sub curriculum.Subject, score models.SubjectScore) bool {
	switch sub.Scheme {
	case curriculum.SchemeSplit:
		return splitIndividualPass(sub, score) || splitCombinedPass(sub, score)
	default:
		return score.Total() >= sub.PassMark
	}
}

// splitIndividualPass requires every component to clear its own minimum.
func splitIndividualPass(sub curriculum.Subject, score models.SubjectScore) bool {
	for i, comp := range sub.Components {
		if component(score, i) < comp.Min {
			return false
		}
	}
	return true
}

// splitCombinedPass requires each kind's combined total to clear the
// configured combined minimum.
func splitCombinedPass(sub curriculum.Subject, score models.SubjectScore) bool {
	for kind, min := range sub.CombinedMin {
		total := 0.0
		for i, comp := range sub.Components {
			if comp.Kind == kind {
				total += component(score, i)
			}
		}
		if total < min {
			return false
		}
	}
	return true
}

// Compute derives the full GradeResult for one record. Grade points are
// reported for every examined subject even when the student fails overall,
// so inspection views can show the informational breakdown behind a zero.
func (e *Engine) Compute(record models.StudentRecord) models.GradeResult {
	result := models.GradeResult{
		Serial: record.Serial,
		Name:   record.Name,
		Passed: true,
	}

	compulsory := e.curriculum.Compulsory()
	gpSum := 0.0
	for _, sub := range e.curriculum.Subjects {
		score, _ := record.Score(sub.ID)
		passed := e.SubjectPasses(sub, score)

		sr := models.SubjectResult{
			SubjectID: sub.ID,
			Total:     score.Total(),
			FullMarks: sub.FullMarks(),
			Passed:    passed,
		}

		switch sub.Role {
		case curriculum.RoleCompulsory:
			sr.GradePoint = GradePoint(sr.Total, sr.FullMarks)
			gpSum += sr.GradePoint
			result.Total += sr.Total
			if !passed {
				result.Passed = false
			}
		case curriculum.RoleOptional:
			sr.GradePoint = GradePoint(sr.Total, sr.FullMarks)
			result.Total += sr.Total
		case curriculum.RoleContinuous:
			if !passed {
				result.Passed = false
			}
		}

		result.Subjects = append(result.Subjects, sr)
	}

	examined := len(e.curriculum.Examined())
	if examined > 0 {
		result.Average = e.round(result.Total / float64(examined))
	}

	n := len(compulsory)
	result.BaseGPA = e.round(gpSum / float64(n))

	if optional, ok := e.curriculum.Optional(); ok {
		if sr, found := result.Subject(optional.ID); found && sr.GradePoint >= 2.0 {
			result.Bonus = (sr.GradePoint - 2.0) / float64(n)
		}
	}

	if !result.Passed {
		result.FinalGPA = 0.0
	} else {
		result.FinalGPA = math.Min(MaxGPA, e.round(gpSum/float64(n)+result.Bonus))
	}
	result.LetterGrade = LetterGrade(result.FinalGPA)

	return result
}

func component(score models.SubjectScore, i int) float64 {
	if i >= len(score.Components) {
		return 0
	}
	return score.Components[i]
}
