package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/grading"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
)

const dashboardSheet = "Dashboard"

// buildDashboard renders the summary sheet: headline statistics, the grade
// distribution, subject-wise averages, the top-N ranking and two charts.
// Statistics are formulas over the data-source sheet so they stay live;
// only the top-N row selection is engine-ranked (rank order cannot be
// expressed as a plain cell formula), with each row referencing the data
// sheet so edits still flow through.
func buildDashboard(f *excelize.File, c curriculum.Curriculum, layout Layout, styles *styleSet, summary models.ClassSummary, studentCount, topN int) error {
	if _, err := f.NewSheet(dashboardSheet); err != nil {
		return err
	}

	firstRow := DataStartRow
	lastRow := DataStartRow + studentCount - 1
	dataRange := func(col int) string {
		return fmt.Sprintf("'%s'!%s:%s", layout.SheetName, layout.Cell(col, firstRow), layout.Cell(col, lastRow))
	}

	if err := f.MergeCell(dashboardSheet, "A1", "L2"); err != nil {
		return err
	}
	title := strings.ToUpper(c.Title) + " DASHBOARD"
	if err := f.SetCellValue(dashboardSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(dashboardSheet, "A1", "L2", styles.title); err != nil {
		return err
	}

	if err := f.SetCellValue(dashboardSheet, "A4", "SUMMARY STATISTICS"); err != nil {
		return err
	}
	_ = f.SetCellStyle(dashboardSheet, "A4", "A4", styles.label)

	stats := []struct {
		labelCell, valueCell, label, formula string
		style                               int
	}{
		{"B5", "C5", "Total Students:", fmt.Sprintf("=COUNTA(%s)", dataRange(layout.NameCol)), styles.stat},
		{"E5", "F5", "Average GPA:", fmt.Sprintf("=IFERROR(ROUND(AVERAGE(%s),2),0)", dataRange(layout.GPACol)), styles.stat},
		{"H5", "I5", "Highest Total:", fmt.Sprintf("=MAX(%s)", dataRange(layout.TotalCol)), styles.stat},
		{"K5", "L5", "Pass Rate:", fmt.Sprintf(`=IF(C5>0,COUNTIF(%s,">0")/C5,0)`, dataRange(layout.GPACol)), styles.percent},
	}
	for _, stat := range stats {
		if err := f.SetCellValue(dashboardSheet, stat.labelCell, stat.label); err != nil {
			return err
		}
		_ = f.SetCellStyle(dashboardSheet, stat.labelCell, stat.labelCell, styles.label)
		if err := f.SetCellFormula(dashboardSheet, stat.valueCell, stat.formula); err != nil {
			return err
		}
		_ = f.SetCellStyle(dashboardSheet, stat.valueCell, stat.valueCell, stat.style)
	}

	gradeRows, err := writeGradeDistribution(f, layout, styles, dataRange)
	if err != nil {
		return err
	}
	subjectRows, err := writeSubjectAverages(f, c, layout, styles, dataRange)
	if err != nil {
		return err
	}
	if err := writeTopStudents(f, layout, styles, summary.TopStudents, topN); err != nil {
		return err
	}

	if err := addCharts(f, gradeRows, subjectRows); err != nil {
		return err
	}

	widths := map[string]float64{"A": 15, "B": 12, "D": 15, "E": 12, "G": 8, "H": 18, "I": 10}
	for col, width := range widths {
		_ = f.SetColWidth(dashboardSheet, col, col, width)
	}

	return nil
}

// writeGradeDistribution emits the COUNTIF table for every letter grade and
// returns the number of rows written.
func writeGradeDistribution(f *excelize.File, layout Layout, styles *styleSet, dataRange func(int) string) (int, error) {
	if err := f.SetCellValue(dashboardSheet, "A7", "GRADE DISTRIBUTION"); err != nil {
		return 0, err
	}
	_ = f.SetCellStyle(dashboardSheet, "A7", "A7", styles.label)
	_ = f.SetCellValue(dashboardSheet, "A8", "Grade")
	_ = f.SetCellValue(dashboardSheet, "B8", "Count")
	_ = f.SetCellStyle(dashboardSheet, "A8", "B8", styles.label)

	letters := make([]string, 0, len(grading.LetterBands)+1)
	for _, band := range grading.LetterBands {
		letters = append(letters, band.Letter)
	}
	letters = append(letters, "F")

	row := 9
	for _, letter := range letters {
		if err := f.SetCellValue(dashboardSheet, fmt.Sprintf("A%d", row), letter); err != nil {
			return 0, err
		}
		formula := fmt.Sprintf(`=COUNTIF(%s,"%s")`, dataRange(layout.GradeCol), letter)
		if err := f.SetCellFormula(dashboardSheet, fmt.Sprintf("B%d", row), formula); err != nil {
			return 0, err
		}
		_ = f.SetCellStyle(dashboardSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.center)
		row++
	}
	return len(letters), nil
}

// writeSubjectAverages emits the per-subject class average table. A
// multi-component subject's average is the sum of its per-component
// averages, which equals the average of its totals.
func writeSubjectAverages(f *excelize.File, c curriculum.Curriculum, layout Layout, styles *styleSet, dataRange func(int) string) (int, error) {
	if err := f.SetCellValue(dashboardSheet, "D7", "SUBJECT-WISE AVERAGE"); err != nil {
		return 0, err
	}
	_ = f.SetCellStyle(dashboardSheet, "D7", "D7", styles.label)
	_ = f.SetCellValue(dashboardSheet, "D8", "Subject")
	_ = f.SetCellValue(dashboardSheet, "E8", "Average")
	_ = f.SetCellStyle(dashboardSheet, "D8", "E8", styles.label)

	subjects := c.Examined()
	row := 9
	for _, sub := range subjects {
		if err := f.SetCellValue(dashboardSheet, fmt.Sprintf("D%d", row), sub.Name); err != nil {
			return 0, err
		}
		terms := make([]string, 0, 4)
		for _, col := range layout.SubjectColumns(sub.ID) {
			terms = append(terms, fmt.Sprintf("AVERAGE(%s)", dataRange(col)))
		}
		formula := fmt.Sprintf("=IFERROR(ROUND(%s,2),0)", strings.Join(terms, "+"))
		if err := f.SetCellFormula(dashboardSheet, fmt.Sprintf("E%d", row), formula); err != nil {
			return 0, err
		}
		_ = f.SetCellStyle(dashboardSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.decimal)
		row++
	}
	return len(subjects), nil
}

// writeTopStudents emits the engine-ranked top-N table. Name and GPA cells
// reference the data-source rows so a mark edit updates the displayed GPA
// (the ranking itself reflects generation-time marks).
func writeTopStudents(f *excelize.File, layout Layout, styles *styleSet, top []models.RankedStudent, topN int) error {
	if err := f.SetCellValue(dashboardSheet, "G7", fmt.Sprintf("TOP %d STUDENTS", topN)); err != nil {
		return err
	}
	_ = f.SetCellStyle(dashboardSheet, "G7", "G7", styles.label)
	_ = f.SetCellValue(dashboardSheet, "G8", "Rank")
	_ = f.SetCellValue(dashboardSheet, "H8", "Name")
	_ = f.SetCellValue(dashboardSheet, "I8", "GPA")
	_ = f.SetCellStyle(dashboardSheet, "G8", "I8", styles.label)

	row := 9
	for _, student := range top {
		sourceRow := layout.Row(student.RosterIndex)
		if err := f.SetCellValue(dashboardSheet, fmt.Sprintf("G%d", row), student.Rank); err != nil {
			return err
		}
		nameRef := fmt.Sprintf("='%s'!%s", layout.SheetName, layout.Cell(layout.NameCol, sourceRow))
		if err := f.SetCellFormula(dashboardSheet, fmt.Sprintf("H%d", row), nameRef); err != nil {
			return err
		}
		gpaRef := fmt.Sprintf("='%s'!%s", layout.SheetName, layout.Cell(layout.GPACol, sourceRow))
		if err := f.SetCellFormula(dashboardSheet, fmt.Sprintf("I%d", row), gpaRef); err != nil {
			return err
		}
		_ = f.SetCellStyle(dashboardSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), styles.center)
		_ = f.SetCellStyle(dashboardSheet, fmt.Sprintf("I%d", row), fmt.Sprintf("I%d", row), styles.decimal)
		row++
	}
	return nil
}

func addCharts(f *excelize.File, gradeRows, subjectRows int) error {
	pie := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       dashboardSheet + "!$B$8",
			Categories: fmt.Sprintf("%s!$A$9:$A$%d", dashboardSheet, 8+gradeRows),
			Values:     fmt.Sprintf("%s!$B$9:$B$%d", dashboardSheet, 8+gradeRows),
		}},
		Title: []excelize.RichTextRun{{Text: "Grade Distribution"}},
	}
	if err := f.AddChart(dashboardSheet, "A17", pie); err != nil {
		return fmt.Errorf("add pie chart: %w", err)
	}

	bar := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       dashboardSheet + "!$E$8",
			Categories: fmt.Sprintf("%s!$D$9:$D$%d", dashboardSheet, 8+subjectRows),
			Values:     fmt.Sprintf("%s!$E$9:$E$%d", dashboardSheet, 8+subjectRows),
		}},
		Title: []excelize.RichTextRun{{Text: "Subject-wise Average Scores"}},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Subjects"}}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Average Marks"}}},
	}
	if err := f.AddChart(dashboardSheet, "G17", bar); err != nil {
		return fmt.Errorf("add bar chart: %w", err)
	}

	return nil
}
