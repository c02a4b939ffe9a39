package curriculum

import (
	"fmt"
	"sort"

	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

// Built-in revisions. Each curriculum change ships as a new revision here or
// as an external YAML file; the engine and report builder never change.
var builtin = map[string]Curriculum{
	"dakhil-2025":  dakhil2025(),
	"general-2024": general2024(),
}

// Builtin returns a built-in curriculum revision by name.
func Builtin(revision string) (Curriculum, error) {
	c, ok := builtin[revision]
	if !ok {
		return Curriculum{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown curriculum revision %q", revision))
	}
	return c, nil
}

// Revisions lists the built-in revision names, sorted.
func Revisions() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dakhil2025 is the Dakhil examination layout: combined two-paper subjects
// passed on the 200-mark total, Bangla with the individual-or-combined
// MCQ/written rule, ICT with its historical 8.25 minimum, Mantiq as the
// bonus subject and two pass/fail-only continuous assessments.
func dakhil2025() Curriculum {
	return Curriculum{
		Revision: "dakhil-2025",
		Title:    "Dakhil Examination Result",
		Subjects: []Subject{
			{
				ID: "quran_hadith", Name: "Quran & Hadith", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{
					{Label: "Quran", FullMarks: 100, Kind: KindGeneral},
					{Label: "Hadith", FullMarks: 100, Kind: KindGeneral},
				},
				PassMark: 66,
			},
			{
				ID: "arabic", Name: "Arabic", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{
					{Label: "Arabic I", FullMarks: 100, Kind: KindGeneral},
					{Label: "Arabic II", FullMarks: 100, Kind: KindGeneral},
				},
				PassMark: 66,
			},
			{
				ID: "aqaid", Name: "Aqaid & Fiqh", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{{Label: "Aqaid", FullMarks: 100, Kind: KindGeneral}},
				PassMark:   33,
			},
			{
				ID: "english", Name: "English", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{
					{Label: "English I", FullMarks: 100, Kind: KindGeneral},
					{Label: "English II", FullMarks: 100, Kind: KindGeneral},
				},
				PassMark: 66,
			},
			{
				ID: "bangla", Name: "Bangla", Role: RoleCompulsory, Scheme: SchemeSplit,
				Components: []Component{
					{Label: "Bangla I MCQ", FullMarks: 30, Kind: KindMCQ, Min: 10},
					{Label: "Bangla I Written", FullMarks: 70, Kind: KindWritten, Min: 23},
					{Label: "Bangla II MCQ", FullMarks: 30, Kind: KindMCQ, Min: 10},
					{Label: "Bangla II Written", FullMarks: 70, Kind: KindWritten, Min: 23},
				},
				CombinedMin: map[ComponentKind]float64{KindMCQ: 20, KindWritten: 46},
			},
			{
				ID: "mathematics", Name: "Mathematics", Role: RoleCompulsory, Scheme: SchemeSplit,
				Components: []Component{
					{Label: "Math MCQ", FullMarks: 30, Kind: KindMCQ, Min: 10},
					{Label: "Math Written", FullMarks: 70, Kind: KindWritten, Min: 23},
				},
				// Single paper: the combined route equals the individual one.
				CombinedMin: map[ComponentKind]float64{KindMCQ: 10, KindWritten: 23},
			},
			{
				ID: "history", Name: "Islamic History", Role: RoleCompulsory, Scheme: SchemeSplit,
				Components: []Component{
					{Label: "History MCQ", FullMarks: 30, Kind: KindMCQ, Min: 10},
					{Label: "History Written", FullMarks: 70, Kind: KindWritten, Min: 23},
				},
				CombinedMin: map[ComponentKind]float64{KindMCQ: 10, KindWritten: 23},
			},
			{
				ID: "ict", Name: "ICT", Role: RoleCompulsory, Scheme: SchemeThreshold,
				Components: []Component{{Label: "ICT", FullMarks: 50, Kind: KindGeneral}},
				// Historical minimum: 33% of 25 although the subject is
				// scored out of 50. Carried verbatim; Warnings() flags it.
				PassMark: 8.25,
			},
			{
				ID: "mantiq", Name: "Mantiq", Role: RoleOptional, Scheme: SchemeThreshold,
				Components: []Component{{Label: "Mantiq", FullMarks: 100, Kind: KindGeneral}},
				PassMark:   33,
			},
			{
				ID: "career", Name: "Career Education", Role: RoleContinuous, Scheme: SchemeThreshold,
				Components: []Component{{Label: "Career", FullMarks: 100, Kind: KindGeneral}},
				PassMark:   33,
			},
			{
				ID: "physical", Name: "Physical Education", Role: RoleContinuous, Scheme: SchemeThreshold,
				Components: []Component{{Label: "Physical", FullMarks: 100, Kind: KindGeneral}},
				PassMark:   33,
			},
		},
	}
}

// general2024 is the earlier single-mark layout: seven 100-mark subjects,
// uniform 33 pass mark, no optional or continuous-assessment subjects.
func general2024() Curriculum {
	simple := func(id, name string) Subject {
		return Subject{
			ID: id, Name: name, Role: RoleCompulsory, Scheme: SchemeThreshold,
			Components: []Component{{Label: name, FullMarks: 100, Kind: KindGeneral}},
			PassMark:   33,
		}
	}
	return Curriculum{
		Revision: "general-2024",
		Title:    "Academic Results",
		Subjects: []Subject{
			simple("bangla", "Bangla"),
			simple("english", "English"),
			simple("mathematics", "Mathematics"),
			simple("ict", "ICT"),
			simple("physics", "Physics"),
			simple("chemistry", "Chemistry"),
			simple("biology", "Biology"),
		},
	}
}
