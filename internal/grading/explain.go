package grading

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
)

// CheckLine is one subject's pass analysis for the fail-check view.
type CheckLine struct {
	SubjectID string
	Name      string
	Passed    bool
	Detail    string
}

// Explain replays every pass condition for one record and reports the
// decision per subject with the configured thresholds spelled out. This is
// the debugging view behind "why did this student fail".
func (e *Engine) Explain(record models.StudentRecord) []CheckLine {
	lines := make([]CheckLine, 0, len(e.curriculum.Subjects))
	for _, sub := range e.curriculum.Subjects {
		score, _ := record.Score(sub.ID)
		passed := e.SubjectPasses(sub, score)
		lines = append(lines, CheckLine{
			SubjectID: sub.ID,
			Name:      sub.Name,
			Passed:    passed,
			Detail:    e.explainSubject(sub, score),
		})
	}
	return lines
}

func (e *Engine) explainSubject(sub curriculum.Subject, score models.SubjectScore) string {
	switch sub.Scheme {
	case curriculum.SchemeSplit:
		individual := splitIndividualPass(sub, score)
		combined := splitCombinedPass(sub, score)

		parts := make([]string, 0, len(sub.Components))
		for i, comp := range sub.Components {
			parts = append(parts, fmt.Sprintf("%s %.4g (need %.4g)", comp.Label, component(score, i), comp.Min))
		}
		detail := fmt.Sprintf("individual: %s => %v", strings.Join(parts, ", "), individual)

		parts = parts[:0]
		for _, kind := range sortedKinds(sub.CombinedMin) {
			total := 0.0
			for i, comp := range sub.Components {
				if comp.Kind == kind {
					total += component(score, i)
				}
			}
			parts = append(parts, fmt.Sprintf("%s %.4g (need %.4g)", kind, total, sub.CombinedMin[kind]))
		}
		return fmt.Sprintf("%s; combined: %s => %v", detail, strings.Join(parts, ", "), combined)
	default:
		return fmt.Sprintf("total %.4g (need %.4g)", score.Total(), sub.PassMark)
	}
}

func sortedKinds(minimums map[curriculum.ComponentKind]float64) []curriculum.ComponentKind {
	kinds := make([]curriculum.ComponentKind, 0, len(minimums))
	for kind := range minimums {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
