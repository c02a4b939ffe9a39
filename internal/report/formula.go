package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/grading"
)

// FormulaBuilder renders the grading rules as spreadsheet formulas so the
// workbook recomputes itself when marks are edited in place. Every
// conditional is generated from the same curriculum table and band scale
// the engine evaluates; there is no second copy of the rules.
type FormulaBuilder struct {
	curriculum curriculum.Curriculum
	layout     Layout
}

// NewFormulaBuilder constructs a builder for one curriculum and layout.
func NewFormulaBuilder(c curriculum.Curriculum, layout Layout) *FormulaBuilder {
	return &FormulaBuilder{curriculum: c, layout: layout}
}

// Total sums the examined subjects' mark columns for a sheet row.
// Continuous-assessment columns gate pass/fail only and stay out of the
// total.
func (b *FormulaBuilder) Total(row int) string {
	var cols []int
	for _, sub := range b.curriculum.Examined() {
		cols = append(cols, b.layout.SubjectColumns(sub.ID)...)
	}
	if len(cols) > 1 && contiguous(cols) {
		return fmt.Sprintf("=SUM(%s:%s)",
			b.layout.Cell(cols[0], row), b.layout.Cell(cols[len(cols)-1], row))
	}
	return "=" + b.addExpr(cols, row)
}

// Average divides the row total by the number of examined subjects.
func (b *FormulaBuilder) Average(row int) string {
	n := len(b.curriculum.Examined())
	return fmt.Sprintf("=ROUND(%s/%d,2)", b.layout.Cell(b.layout.TotalCol, row), n)
}

// GPA renders the full grading rule for a sheet row: the fail short-circuit
// across every compulsory and continuous-assessment pass condition, the
// per-subject grade point band chains, the optional-subject bonus and the
// cap at the maximum GPA.
func (b *FormulaBuilder) GPA(row int) string {
	compulsory := b.curriculum.Compulsory()
	n := len(compulsory)

	var fails []string
	for _, sub := range b.curriculum.Subjects {
		if sub.Role == curriculum.RoleOptional {
			continue
		}
		fails = append(fails, b.failCondition(sub, row))
	}

	var points []string
	for _, sub := range compulsory {
		points = append(points, b.gradePointExpr(sub, row))
	}

	mean := fmt.Sprintf("(%s)/%d", strings.Join(points, "+"), n)

	body := mean
	if optional, ok := b.curriculum.Optional(); ok {
		gp := b.gradePointExpr(optional, row)
		bonus := fmt.Sprintf("IF(%s>=2,(%s-2)/%d,0)", gp, gp, n)
		body = mean + "+" + bonus
	}

	return fmt.Sprintf("=IF(OR(%s),0,MIN(%s,ROUND(%s,2)))",
		strings.Join(fails, ","), trimFloat(grading.MaxGPA), body)
}

// Grade maps the row's GPA cell onto the letter scale.
func (b *FormulaBuilder) Grade(row int) string {
	gpaCell := b.layout.Cell(b.layout.GPACol, row)

	expr := `"F"`
	for i := len(grading.LetterBands) - 1; i >= 0; i-- {
		band := grading.LetterBands[i]
		expr = fmt.Sprintf(`IF(%s>=%s,"%s",%s)`, gpaCell, trimFloat(band.MinGPA), band.Letter, expr)
	}
	return "=" + expr
}

// failCondition renders the per-subject fail test, scheme-dependent.
func (b *FormulaBuilder) failCondition(sub curriculum.Subject, row int) string {
	cols := b.layout.SubjectColumns(sub.ID)

	if sub.Scheme == curriculum.SchemeSplit {
		var individual []string
		for i, comp := range sub.Components {
			individual = append(individual, fmt.Sprintf("%s>=%s", b.layout.Cell(cols[i], row), trimFloat(comp.Min)))
		}

		var combined []string
		for _, kind := range sortedKinds(sub.CombinedMin) {
			var kindCols []int
			for i, comp := range sub.Components {
				if comp.Kind == kind {
					kindCols = append(kindCols, cols[i])
				}
			}
			combined = append(combined, fmt.Sprintf("%s>=%s",
				b.addExpr(kindCols, row), trimFloat(sub.CombinedMin[kind])))
		}

		// Either route suffices, so failing means failing both.
		return fmt.Sprintf("NOT(OR(AND(%s),AND(%s)))",
			strings.Join(individual, ","), strings.Join(combined, ","))
	}

	return fmt.Sprintf("%s<%s", b.sumExpr(cols, row), trimFloat(sub.PassMark))
}

// gradePointExpr renders the band chain for one subject with thresholds
// scaled to the subject's full marks.
func (b *FormulaBuilder) gradePointExpr(sub curriculum.Subject, row int) string {
	sum := b.sumExpr(b.layout.SubjectColumns(sub.ID), row)
	full := sub.FullMarks()

	expr := "0"
	for i := len(grading.GradeBands) - 1; i >= 0; i-- {
		band := grading.GradeBands[i]
		threshold := band.MinPercent / 100 * full
		expr = fmt.Sprintf("IF(%s>=%s,%s,%s)", sum, trimFloat(threshold), trimFloat(band.Point), expr)
	}
	return expr
}

// sumExpr renders a subject's component sum: a bare cell for a single
// component, parenthesized explicit addition otherwise. These sums land
// inside the GPA conditional, and excelize's calculation engine rejects
// formulas that combine several SUM ranges within one function argument,
// so no SUM calls are emitted here.
func (b *FormulaBuilder) sumExpr(cols []int, row int) string {
	if len(cols) == 1 {
		return b.layout.Cell(cols[0], row)
	}
	return "(" + b.addExpr(cols, row) + ")"
}

func (b *FormulaBuilder) addExpr(cols []int, row int) string {
	refs := make([]string, 0, len(cols))
	for _, col := range cols {
		refs = append(refs, b.layout.Cell(col, row))
	}
	return strings.Join(refs, "+")
}

func contiguous(cols []int) bool {
	for i := 1; i < len(cols); i++ {
		if cols[i] != cols[i-1]+1 {
			return false
		}
	}
	return true
}

func sortedKinds(minimums map[curriculum.ComponentKind]float64) []curriculum.ComponentKind {
	kinds := make([]curriculum.ComponentKind, 0, len(minimums))
	for kind := range minimums {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
