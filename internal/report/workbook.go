package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

// BuilderConfig tunes workbook rendering.
type BuilderConfig struct {
	SheetName string
	// Static writes engine-computed values into the computed columns
	// instead of formulas. Formula mode keeps the workbook live when a
	// user edits marks directly in the spreadsheet.
	Static bool
	TopN   int
}

// WorkbookBuilder renders records and results into the report workbook:
// the data-source sheet with raw marks plus computed columns, and the
// dashboard sheet with summary statistics and charts.
type WorkbookBuilder struct {
	curriculum curriculum.Curriculum
	layout     Layout
	formulas   *FormulaBuilder
	cfg        BuilderConfig
}

// NewWorkbookBuilder constructs a builder for one curriculum revision.
func NewWorkbookBuilder(c curriculum.Curriculum, cfg BuilderConfig) *WorkbookBuilder {
	if cfg.SheetName == "" {
		cfg.SheetName = "Data Source"
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	layout := NewLayout(c, cfg.SheetName)
	return &WorkbookBuilder{
		curriculum: c,
		layout:     layout,
		formulas:   NewFormulaBuilder(c, layout),
		cfg:        cfg,
	}
}

// Layout exposes the derived column layout.
func (w *WorkbookBuilder) Layout() Layout {
	return w.layout
}

// Build renders the full workbook. records and results must be aligned by
// index; the summary feeds the dashboard sheet.
func (w *WorkbookBuilder) Build(records []models.StudentRecord, results []models.GradeResult, summary models.ClassSummary) (*excelize.File, error) {
	if len(records) != len(results) {
		return nil, appErrors.Clone(appErrors.ErrInternal, "records and results misaligned")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", w.layout.SheetName); err != nil {
		return nil, fmt.Errorf("rename data sheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("register styles: %w", err)
	}

	if err := w.writeHeader(f, styles); err != nil {
		return nil, err
	}
	for i := range records {
		if err := w.writeRow(f, styles, i, records[i], results[i]); err != nil {
			return nil, err
		}
	}
	w.setColumnWidths(f)

	if err := buildDashboard(f, w.curriculum, w.layout, styles, summary, len(records), w.cfg.TopN); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	// Placeholder kept for parity with the manual workflow: pivot tables
	// are created in the spreadsheet application, not generated here.
	if _, err := f.NewSheet("Pivot"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue("Pivot", "A1", "Pivot tables can be created manually from the "+w.layout.SheetName+" sheet"); err != nil {
		return nil, err
	}

	return f, nil
}

func (w *WorkbookBuilder) writeHeader(f *excelize.File, styles *styleSet) error {
	sheet := w.layout.SheetName
	for i, col := range w.layout.Columns {
		cell := w.layout.Cell(i, 1)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
	}
	last := w.layout.Cell(len(w.layout.Columns)-1, 1)
	return f.SetCellStyle(sheet, "A1", last, styles.header)
}

func (w *WorkbookBuilder) writeRow(f *excelize.File, styles *styleSet, index int, record models.StudentRecord, result models.GradeResult) error {
	sheet := w.layout.SheetName
	row := w.layout.Row(index)

	if err := f.SetCellValue(sheet, w.layout.Cell(w.layout.SerialCol, row), record.Serial); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, w.layout.Cell(w.layout.NameCol, row), record.Name); err != nil {
		return err
	}

	for i, col := range w.layout.Columns {
		if col.SubjectID == "" {
			continue
		}
		score, _ := record.Score(col.SubjectID)
		value := 0.0
		if col.Component < len(score.Components) {
			value = score.Components[col.Component]
		}
		cell := w.layout.Cell(i, row)
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.markStyle(value, col.FullMarks)); err != nil {
			return err
		}
	}

	return w.writeComputed(f, styles, row, result)
}

// writeComputed fills the Total/Average/GPA/Grade columns, either as live
// formulas or as precomputed values from the engine.
func (w *WorkbookBuilder) writeComputed(f *excelize.File, styles *styleSet, row int, result models.GradeResult) error {
	sheet := w.layout.SheetName
	totalCell := w.layout.Cell(w.layout.TotalCol, row)
	avgCell := w.layout.Cell(w.layout.AverageCol, row)
	gpaCell := w.layout.Cell(w.layout.GPACol, row)
	gradeCell := w.layout.Cell(w.layout.GradeCol, row)

	if w.cfg.Static {
		if err := f.SetCellValue(sheet, totalCell, result.Total); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, avgCell, result.Average); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, gpaCell, result.FinalGPA); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, gradeCell, result.LetterGrade); err != nil {
			return err
		}
	} else {
		if err := f.SetCellFormula(sheet, totalCell, w.formulas.Total(row)); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, avgCell, w.formulas.Average(row)); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, gpaCell, w.formulas.GPA(row)); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, gradeCell, w.formulas.Grade(row)); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheet, avgCell, avgCell, styles.decimal); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, gpaCell, gpaCell, styles.decimal); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, gradeCell, gradeCell, styles.center)
}

func (w *WorkbookBuilder) setColumnWidths(f *excelize.File) {
	sheet := w.layout.SheetName
	serial := w.layout.Name(w.layout.SerialCol)
	_ = f.SetColWidth(sheet, serial, serial, 5)
	name := w.layout.Name(w.layout.NameCol)
	_ = f.SetColWidth(sheet, name, name, 18)
	for _, i := range w.layout.MarkColumns() {
		col := w.layout.Name(i)
		_ = f.SetColWidth(sheet, col, col, 12)
	}
	for _, i := range []int{w.layout.TotalCol, w.layout.AverageCol, w.layout.GPACol, w.layout.GradeCol} {
		col := w.layout.Name(i)
		_ = f.SetColWidth(sheet, col, col, 9)
	}
}
