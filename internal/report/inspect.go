package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

// FormulaLimit is the spreadsheet formula length ceiling. Deeply nested
// grading conditionals have historically come close enough to it that the
// length check earns its own inspection command.
const FormulaLimit = 8192

// Inspector re-opens a generated workbook and reads it back: formula text,
// evaluated values, raw marks for one student.
type Inspector struct {
	curriculum curriculum.Curriculum
	layout     Layout
}

// NewInspector constructs an Inspector for a curriculum and sheet name.
func NewInspector(c curriculum.Curriculum, sheetName string) *Inspector {
	return &Inspector{curriculum: c, layout: NewLayout(c, sheetName)}
}

// Open loads a workbook from disk.
func Open(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInput.Code, "open workbook")
	}
	return f, nil
}

// RowFormulas carries the computed-column formula text for one student row.
type RowFormulas struct {
	Row          int
	Name         string
	GPAFormula   string
	GradeFormula string
	Marks        []string
}

// Formulas reads the GPA and Grade formulas for one data row along with the
// raw marks feeding them.
func (i *Inspector) Formulas(f *excelize.File, row int) (RowFormulas, error) {
	sheet := i.layout.SheetName
	out := RowFormulas{Row: row}

	name, err := f.GetCellValue(sheet, i.layout.Cell(i.layout.NameCol, row))
	if err != nil {
		return out, fmt.Errorf("read name: %w", err)
	}
	if name == "" {
		return out, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no student at row %d", row))
	}
	out.Name = name

	if out.GPAFormula, err = f.GetCellFormula(sheet, i.layout.Cell(i.layout.GPACol, row)); err != nil {
		return out, fmt.Errorf("read gpa formula: %w", err)
	}
	if out.GradeFormula, err = f.GetCellFormula(sheet, i.layout.Cell(i.layout.GradeCol, row)); err != nil {
		return out, fmt.Errorf("read grade formula: %w", err)
	}

	for _, col := range i.layout.MarkColumns() {
		value, err := f.GetCellValue(sheet, i.layout.Cell(col, row))
		if err != nil {
			return out, fmt.Errorf("read mark: %w", err)
		}
		out.Marks = append(out.Marks, fmt.Sprintf("%s=%s", i.layout.Columns[col].Header, value))
	}

	return out, nil
}

// RowValue is one student's evaluated GPA and Grade.
type RowValue struct {
	Row    int
	Serial string
	Name   string
	GPA    string
	Grade  string
}

// Values walks every student row and evaluates the GPA and Grade cells.
// Formula cells go through the calculation engine so the command works on a
// freshly generated file with no cached results; static cells come back
// as-is.
func (i *Inspector) Values(f *excelize.File) ([]RowValue, error) {
	sheet := i.layout.SheetName
	var values []RowValue

	for row := DataStartRow; ; row++ {
		name, err := f.GetCellValue(sheet, i.layout.Cell(i.layout.NameCol, row))
		if err != nil {
			return nil, fmt.Errorf("read name: %w", err)
		}
		if name == "" {
			break
		}

		serial, _ := f.GetCellValue(sheet, i.layout.Cell(i.layout.SerialCol, row))
		gpa, err := i.cellValue(f, i.layout.Cell(i.layout.GPACol, row))
		if err != nil {
			return nil, fmt.Errorf("row %d gpa: %w", row, err)
		}
		grade, err := i.cellValue(f, i.layout.Cell(i.layout.GradeCol, row))
		if err != nil {
			return nil, fmt.Errorf("row %d grade: %w", row, err)
		}

		values = append(values, RowValue{Row: row, Serial: serial, Name: name, GPA: gpa, Grade: grade})
	}

	return values, nil
}

func (i *Inspector) cellValue(f *excelize.File, cell string) (string, error) {
	formula, err := f.GetCellFormula(i.layout.SheetName, cell)
	if err != nil {
		return "", err
	}
	if formula == "" {
		return f.GetCellValue(i.layout.SheetName, cell)
	}
	return f.CalcCellValue(i.layout.SheetName, cell)
}

// FormulaLengths reports how close the row's computed formulas run to the
// spreadsheet limit.
type FormulaLengths struct {
	Row      int
	GPALen   int
	GradeLen int
	Limit    int
}

// NearLimit reports whether either formula exceeds half the limit.
func (l FormulaLengths) NearLimit() bool {
	return l.GPALen > l.Limit/2 || l.GradeLen > l.Limit/2
}

// Lengths measures the GPA and Grade formula text for one row.
func (i *Inspector) Lengths(f *excelize.File, row int) (FormulaLengths, error) {
	formulas, err := i.Formulas(f, row)
	if err != nil {
		return FormulaLengths{}, err
	}
	return FormulaLengths{
		Row:      row,
		GPALen:   len(formulas.GPAFormula),
		GradeLen: len(formulas.GradeFormula),
		Limit:    FormulaLimit,
	}, nil
}

// Record reads one student's raw marks back into a StudentRecord so the
// pass conditions can be replayed through the engine.
func (i *Inspector) Record(f *excelize.File, row int) (models.StudentRecord, error) {
	sheet := i.layout.SheetName
	record := models.StudentRecord{Scores: make(map[string]models.SubjectScore)}

	name, err := f.GetCellValue(sheet, i.layout.Cell(i.layout.NameCol, row))
	if err != nil {
		return record, fmt.Errorf("read name: %w", err)
	}
	if name == "" {
		return record, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no student at row %d", row))
	}
	record.Name = name

	serialCell := i.layout.Cell(i.layout.SerialCol, row)
	if serial, err := f.GetCellValue(sheet, serialCell); err == nil {
		fmt.Sscanf(serial, "%d", &record.Serial) //nolint:errcheck
	}

	for _, sub := range i.curriculum.Subjects {
		score := models.SubjectScore{SubjectID: sub.ID}
		for _, col := range i.layout.SubjectColumns(sub.ID) {
			raw, err := f.GetCellValue(sheet, i.layout.Cell(col, row))
			if err != nil {
				return record, fmt.Errorf("read mark: %w", err)
			}
			var value float64
			if raw != "" {
				if _, err := fmt.Sscanf(raw, "%g", &value); err != nil {
					return record, appErrors.Clone(appErrors.ErrInput, fmt.Sprintf(
						"row %d column %s is not numeric: %q", row, i.layout.Columns[col].Header, raw))
				}
			}
			score.Components = append(score.Components, value)
		}
		record.Scores[sub.ID] = score
	}

	return record, nil
}
