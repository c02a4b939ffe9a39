package roster

import (
	"github.com/noah-isme/dakhil-report-gen/internal/models"
	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

var sampleNames = []string{
	"Ahmed Rahman", "Fatima Khan", "Karim Hassan", "Ayesha Begum",
	"Rahim Uddin", "Nadia Islam", "Jahir Ahmed", "Sadia Sultana",
	"Tarik Hasan", "Ruhi Akter", "Mehedi Hassan", "Lubna Khatun",
	"Fahim Ahmed", "Samira Begum", "Imran Khan", "Rafia Islam",
	"Shakib Rahman", "Nusrat Jahan", "Arif Hossain", "Tasnia Akter",
}

// Component marks per student, flattened in curriculum column order:
// Quran, Hadith, Arabic I/II, Aqaid, English I/II, Bangla I MCQ/Written,
// Bangla II MCQ/Written, Math MCQ/Written, History MCQ/Written, ICT,
// Mantiq, Career, Physical. Row 2 passes Bangla only via the combined
// route; row 9 fails Bangla, Mathematics and ICT.
var dakhilSampleMarks = [][]float64{
	{85, 80, 78, 82, 88, 75, 79, 25, 60, 24, 58, 22, 55, 20, 52, 42, 70, 80, 85},
	{90, 88, 84, 86, 92, 82, 85, 8, 25, 15, 25, 24, 60, 25, 62, 45, 78, 88, 90},
	{70, 68, 65, 70, 72, 62, 66, 18, 45, 17, 44, 15, 40, 14, 38, 35, 55, 70, 72},
	{95, 92, 90, 93, 96, 88, 90, 28, 65, 27, 64, 26, 62, 25, 60, 48, 85, 92, 95},
	{60, 58, 55, 60, 62, 52, 56, 14, 38, 13, 36, 12, 34, 11, 32, 28, 45, 60, 62},
	{82, 80, 76, 78, 85, 72, 75, 22, 54, 21, 52, 20, 50, 19, 48, 40, 66, 78, 82},
	{50, 48, 45, 50, 55, 42, 46, 11, 30, 10, 28, 10, 26, 10, 25, 22, 38, 52, 55},
	{76, 74, 70, 72, 80, 68, 70, 20, 50, 19, 48, 18, 46, 17, 44, 38, 60, 72, 76},
	{45, 40, 38, 42, 48, 35, 38, 7, 20, 8, 22, 8, 20, 7, 19, 7, 30, 45, 48},
	{88, 85, 82, 84, 90, 78, 82, 26, 62, 25, 60, 24, 58, 23, 56, 44, 75, 85, 88},
	{92, 88, 85, 88, 94, 84, 86, 27, 64, 26, 62, 25, 60, 24, 58, 46, 80, 88, 92},
	{66, 62, 60, 64, 68, 58, 60, 16, 42, 15, 40, 14, 38, 13, 36, 32, 50, 65, 68},
	{74, 70, 68, 72, 76, 64, 68, 19, 48, 18, 46, 17, 44, 16, 42, 36, 58, 70, 74},
	{80, 78, 74, 76, 84, 70, 74, 23, 56, 22, 54, 21, 52, 20, 50, 41, 68, 80, 84},
	{55, 52, 50, 54, 58, 46, 50, 12, 32, 11, 30, 11, 28, 10, 26, 24, 40, 55, 58},
	{86, 84, 80, 82, 88, 76, 80, 25, 60, 24, 58, 23, 56, 22, 54, 43, 72, 84, 86},
	{68, 66, 62, 66, 70, 60, 62, 17, 44, 16, 42, 15, 40, 14, 38, 33, 52, 66, 70},
	{84, 82, 78, 80, 86, 74, 78, 24, 58, 23, 56, 22, 54, 21, 52, 42, 70, 82, 86},
	{62, 60, 56, 60, 64, 54, 58, 15, 40, 14, 38, 13, 36, 12, 34, 30, 48, 62, 64},
	{90, 86, 84, 86, 92, 82, 84, 27, 64, 26, 62, 25, 60, 24, 58, 47, 82, 86, 90},
}

// Marks per student for the single-component seven-subject layout:
// Bangla, English, Mathematics, ICT, Physics, Chemistry, Biology.
var generalSampleMarks = [][]float64{
	{85, 78, 92, 88, 75, 82, 80},
	{90, 88, 85, 92, 87, 89, 91},
	{72, 68, 75, 70, 65, 71, 69},
	{95, 92, 98, 94, 90, 93, 96},
	{65, 62, 68, 70, 58, 64, 66},
	{82, 85, 80, 88, 83, 81, 84},
	{55, 58, 52, 60, 50, 54, 57},
	{78, 75, 82, 80, 76, 79, 77},
	{45, 48, 42, 50, 46, 44, 47},
	{88, 90, 85, 87, 89, 86, 91},
	{92, 86, 90, 88, 84, 87, 89},
	{68, 65, 70, 72, 68, 69, 71},
	{75, 72, 78, 80, 74, 76, 77},
	{80, 82, 85, 86, 81, 83, 84},
	{58, 55, 60, 62, 54, 56, 59},
	{87, 85, 88, 90, 86, 87, 89},
	{70, 68, 72, 74, 70, 71, 73},
	{84, 88, 86, 89, 85, 87, 88},
	{62, 60, 65, 68, 63, 64, 66},
	{91, 89, 93, 92, 88, 90, 92},
}

var sampleMarks = map[string][][]float64{
	"dakhil-2025":  dakhilSampleMarks,
	"general-2024": generalSampleMarks,
}

// Sample returns the built-in demonstration roster for the loader's
// curriculum revision.
func (l *Loader) Sample() ([]models.StudentRecord, error) {
	marks, ok := sampleMarks[l.curriculum.Revision]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no sample roster for curriculum "+l.curriculum.Revision)
	}

	records := make([]models.StudentRecord, 0, len(marks))
	for i, row := range marks {
		record := models.StudentRecord{
			Serial: i + 1,
			Name:   sampleNames[i],
			Scores: make(map[string]models.SubjectScore),
		}
		col := 0
		for _, sub := range l.curriculum.Subjects {
			score := models.SubjectScore{SubjectID: sub.ID}
			for range sub.Components {
				score.Components = append(score.Components, row[col])
				col++
			}
			record.Scores[sub.ID] = score
		}
		records = append(records, record)
	}
	return records, nil
}
