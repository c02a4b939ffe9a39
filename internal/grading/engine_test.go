package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
)

func newDakhilEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := curriculum.Builtin("dakhil-2025")
	require.NoError(t, err)
	engine, err := NewEngine(c)
	require.NoError(t, err)
	return engine
}

func newGeneralEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := curriculum.Builtin("general-2024")
	require.NoError(t, err)
	engine, err := NewEngine(c)
	require.NoError(t, err)
	return engine
}

// generalRecord builds a record for the seven single-component subjects.
func generalRecord(t *testing.T, marks map[string]float64) models.StudentRecord {
	t.Helper()
	c, err := curriculum.Builtin("general-2024")
	require.NoError(t, err)

	record := models.StudentRecord{Serial: 1, Name: "Test Student", Scores: make(map[string]models.SubjectScore)}
	for _, sub := range c.Subjects {
		mark, ok := marks[sub.ID]
		require.True(t, ok, "mark for %s", sub.ID)
		record.Scores[sub.ID] = models.SubjectScore{SubjectID: sub.ID, Components: []float64{mark}}
	}
	return record
}

func dakhilRecord(marks map[string][]float64) models.StudentRecord {
	record := models.StudentRecord{Serial: 1, Name: "Test Student", Scores: make(map[string]models.SubjectScore)}
	for id, components := range marks {
		record.Scores[id] = models.SubjectScore{SubjectID: id, Components: components}
	}
	return record
}

func TestGradePointBands(t *testing.T) {
	tests := []struct {
		name      string
		obtained  float64
		fullMarks float64
		want      float64
	}{
		{"exactly 80 percent", 80, 100, 5.0},
		{"just under 80 percent", 79.99, 100, 4.0},
		{"exactly 70 percent", 70, 100, 4.0},
		{"exactly 60 percent", 60, 100, 3.5},
		{"exactly 50 percent", 50, 100, 3.0},
		{"exactly 40 percent", 40, 100, 2.0},
		{"exactly 33 percent", 33, 100, 1.0},
		{"just under 33 percent", 32.99, 100, 0.0},
		{"zero", 0, 100, 0.0},
		{"scaled to 200 marks", 160, 200, 5.0},
		{"scaled to 50 marks", 20, 50, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradePoint(tt.obtained, tt.fullMarks))
		})
	}
}

func TestGradePointMonotonic(t *testing.T) {
	previous := 0.0
	for mark := 0.0; mark <= 100; mark++ {
		point := GradePoint(mark, 100)
		assert.GreaterOrEqual(t, point, previous, "mark %v", mark)
		previous = point
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		gpa  float64
		want string
	}{
		{5.0, "A+"},
		{4.99, "A"},
		{4.0, "A"},
		{3.5, "A-"},
		{3.19, "B"},
		{3.0, "B"},
		{2.0, "C"},
		{1.0, "D"},
		{0.99, "F"},
		{0.0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.gpa), "gpa %v", tt.gpa)
	}
}

func TestComputeAllSubjectsAtHighestBand(t *testing.T) {
	engine := newGeneralEngine(t)

	marks := map[string]float64{}
	for _, sub := range engine.Curriculum().Subjects {
		marks[sub.ID] = 80
	}
	result := engine.Compute(generalRecord(t, marks))

	assert.True(t, result.Passed)
	assert.Equal(t, 5.0, result.FinalGPA)
	assert.Equal(t, "A+", result.LetterGrade)
	assert.Equal(t, 560.0, result.Total)
	assert.Equal(t, 80.0, result.Average)
}

func TestComputeSingleFailZeroesGPA(t *testing.T) {
	engine := newGeneralEngine(t)

	marks := map[string]float64{}
	for _, sub := range engine.Curriculum().Subjects {
		marks[sub.ID] = 100
	}
	marks["ict"] = 32 // one mark under the pass minimum

	result := engine.Compute(generalRecord(t, marks))

	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.FinalGPA)
	assert.Equal(t, "F", result.LetterGrade)

	// The informational breakdown stays intact behind the zero.
	ict, ok := result.Subject("ict")
	require.True(t, ok)
	assert.False(t, ict.Passed)
	assert.Equal(t, 0.0, ict.GradePoint)
	bangla, ok := result.Subject("bangla")
	require.True(t, ok)
	assert.Equal(t, 5.0, bangla.GradePoint)
}

func TestSubjectPassesSplitRoutes(t *testing.T) {
	engine := newDakhilEngine(t)
	bangla, ok := engine.Curriculum().Subject("bangla")
	require.True(t, ok)

	tests := []struct {
		name       string
		components []float64
		want       bool
	}{
		{
			// Paper I MCQ 8 misses the individual minimum of 10, but the
			// combined MCQ total 23 >= 20 and written total 50 >= 46.
			name:       "combined route rescues individual failure",
			components: []float64{8, 25, 15, 25},
			want:       true,
		},
		{
			name:       "individual route passes",
			components: []float64{10, 23, 10, 23},
			want:       true,
		},
		{
			name:       "both routes fail",
			components: []float64{8, 25, 11, 20},
			want:       false,
		},
		{
			name:       "combined mcq short by one",
			components: []float64{9, 25, 10, 25},
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := models.SubjectScore{SubjectID: "bangla", Components: tt.components}
			assert.Equal(t, tt.want, engine.SubjectPasses(bangla, score))
		})
	}
}

func TestSubjectPassesSinglePaperSplit(t *testing.T) {
	engine := newDakhilEngine(t)
	math, ok := engine.Curriculum().Subject("mathematics")
	require.True(t, ok)

	// Single-paper split: the combined route equals the individual one, so
	// the component minimums are the only gate.
	assert.True(t, engine.SubjectPasses(math, models.SubjectScore{Components: []float64{10, 23}}))
	assert.False(t, engine.SubjectPasses(math, models.SubjectScore{Components: []float64{9, 70}}))
	assert.False(t, engine.SubjectPasses(math, models.SubjectScore{Components: []float64{30, 22}}))
}

func TestSubjectPassesICTThreshold(t *testing.T) {
	engine := newDakhilEngine(t)
	ict, ok := engine.Curriculum().Subject("ict")
	require.True(t, ok)

	assert.True(t, engine.SubjectPasses(ict, models.SubjectScore{Components: []float64{8.25}}))
	assert.False(t, engine.SubjectPasses(ict, models.SubjectScore{Components: []float64{8}}))
}

func TestComputeOptionalBonus(t *testing.T) {
	engine := newDakhilEngine(t)

	// Every compulsory subject lands at 55-56 percent (grade point 3.0) so
	// the base GPA is exactly 3.0 across the eight subjects.
	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {55, 55},
		"arabic":       {55, 55},
		"aqaid":        {55},
		"english":      {55, 55},
		"bangla":       {15, 40, 15, 40},
		"mathematics":  {15, 40},
		"history":      {15, 40},
		"ict":          {28},
		"mantiq":       {65}, // 65 percent, grade point 3.5
		"career":       {50},
		"physical":     {50},
	})
	result := engine.Compute(record)

	assert.True(t, result.Passed)
	assert.Equal(t, 3.0, result.BaseGPA)
	assert.Equal(t, 0.1875, result.Bonus)
	assert.Equal(t, 3.19, result.FinalGPA)
	assert.Equal(t, "B", result.LetterGrade)
}

func TestComputeRoundsHalfAwayFromZero(t *testing.T) {
	engine := newDakhilEngine(t)

	// Seven subjects at grade point 3.0 and English at 4.0 put the base GPA
	// on a half-cent tie: 25/8 = 3.125. The workbook's ROUND function rounds
	// ties away from zero, so the engine must report 3.13, not 3.12.
	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {55, 55},
		"arabic":       {55, 55},
		"aqaid":        {55},
		"english":      {70, 70},
		"bangla":       {15, 40, 15, 40},
		"mathematics":  {15, 40},
		"history":      {15, 40},
		"ict":          {28},
		"mantiq":       {35},
		"career":       {50},
		"physical":     {50},
	})
	result := engine.Compute(record)

	assert.True(t, result.Passed)
	assert.Equal(t, 3.13, result.BaseGPA)
	assert.Equal(t, 0.0, result.Bonus)
	assert.Equal(t, 3.13, result.FinalGPA)
}

func TestComputeOptionalBelowBonusFloor(t *testing.T) {
	engine := newDakhilEngine(t)

	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {55, 55},
		"arabic":       {55, 55},
		"aqaid":        {55},
		"english":      {55, 55},
		"bangla":       {15, 40, 15, 40},
		"mathematics":  {15, 40},
		"history":      {15, 40},
		"ict":          {28},
		"mantiq":       {35}, // grade point 1.0, below the bonus floor of 2
		"career":       {50},
		"physical":     {50},
	})
	result := engine.Compute(record)

	assert.Equal(t, 0.0, result.Bonus)
	assert.Equal(t, 3.0, result.FinalGPA)
}

func TestComputeBonusNeverExceedsCap(t *testing.T) {
	engine := newDakhilEngine(t)

	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {100, 100},
		"arabic":       {100, 100},
		"aqaid":        {100},
		"english":      {100, 100},
		"bangla":       {30, 70, 30, 70},
		"mathematics":  {30, 70},
		"history":      {30, 70},
		"ict":          {50},
		"mantiq":       {100},
		"career":       {100},
		"physical":     {100},
	})
	result := engine.Compute(record)

	assert.Equal(t, 5.0, result.BaseGPA)
	assert.Equal(t, 0.375, result.Bonus)
	assert.Equal(t, MaxGPA, result.FinalGPA)
	assert.Equal(t, "A+", result.LetterGrade)
}

func TestComputeContinuousFailGates(t *testing.T) {
	engine := newDakhilEngine(t)

	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {100, 100},
		"arabic":       {100, 100},
		"aqaid":        {100},
		"english":      {100, 100},
		"bangla":       {30, 70, 30, 70},
		"mathematics":  {30, 70},
		"history":      {30, 70},
		"ict":          {50},
		"mantiq":       {100},
		"career":       {20}, // below the continuous-assessment minimum
		"physical":     {100},
	})
	result := engine.Compute(record)

	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.FinalGPA)
	assert.Equal(t, "F", result.LetterGrade)
	// Continuous assessments never join the total.
	assert.Equal(t, 1250.0, result.Total)
}

func TestComputeOptionalNeverGatesPass(t *testing.T) {
	engine := newDakhilEngine(t)

	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {55, 55},
		"arabic":       {55, 55},
		"aqaid":        {55},
		"english":      {55, 55},
		"bangla":       {15, 40, 15, 40},
		"mathematics":  {15, 40},
		"history":      {15, 40},
		"ict":          {28},
		"mantiq":       {0},
		"career":       {50},
		"physical":     {50},
	})
	result := engine.Compute(record)

	assert.True(t, result.Passed)
	assert.Equal(t, 3.0, result.FinalGPA)
}

func TestComputeDeterministic(t *testing.T) {
	engine := newDakhilEngine(t)

	record := dakhilRecord(map[string][]float64{
		"quran_hadith": {85, 80},
		"arabic":       {78, 82},
		"aqaid":        {88},
		"english":      {75, 79},
		"bangla":       {25, 60, 24, 58},
		"mathematics":  {22, 55},
		"history":      {20, 52},
		"ict":          {42},
		"mantiq":       {70},
		"career":       {80},
		"physical":     {85},
	})

	first := engine.Compute(record)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Compute(record))
	}
}

func TestComputeGPAWithinScale(t *testing.T) {
	engine := newDakhilEngine(t)

	// Sweep a grid of uniform percentages through every subject.
	for pct := 0.0; pct <= 100; pct += 5 {
		record := models.StudentRecord{Serial: 1, Name: "Grid", Scores: make(map[string]models.SubjectScore)}
		for _, sub := range engine.Curriculum().Subjects {
			score := models.SubjectScore{SubjectID: sub.ID}
			for _, comp := range sub.Components {
				score.Components = append(score.Components, comp.FullMarks*pct/100)
			}
			record.Scores[sub.ID] = score
		}
		result := engine.Compute(record)
		assert.GreaterOrEqual(t, result.FinalGPA, 0.0, "pct %v", pct)
		assert.LessOrEqual(t, result.FinalGPA, MaxGPA, "pct %v", pct)
		assert.Equal(t, LetterGrade(result.FinalGPA), result.LetterGrade, "pct %v", pct)
	}
}

func TestNewEngineRejectsInvalidCurriculum(t *testing.T) {
	_, err := NewEngine(curriculum.Curriculum{Revision: "empty"})
	require.Error(t, err)
}

func TestComputeMissingScoreCountsAsZero(t *testing.T) {
	engine := newGeneralEngine(t)

	record := models.StudentRecord{Serial: 1, Name: "Partial", Scores: map[string]models.SubjectScore{}}
	result := engine.Compute(record)

	assert.False(t, result.Passed)
	assert.Equal(t, 0.0, result.FinalGPA)
	assert.Equal(t, 0.0, result.Total)
}
