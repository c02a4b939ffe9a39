package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
)

// DataStartRow is the first sheet row carrying student data; row 1 is the
// header.
const DataStartRow = 2

// Column describes one data-source sheet column. Mark columns point back at
// their curriculum subject and component; identity and computed columns
// leave SubjectID empty.
type Column struct {
	Header    string
	SubjectID string
	Component int
	FullMarks float64
}

// Layout is the column map of the data-source sheet for one curriculum
// revision: serial, name, one column per subject component in curriculum
// order, then the computed Total, Average, GPA and Grade columns.
type Layout struct {
	SheetName string
	Columns   []Column

	SerialCol  int
	NameCol    int
	TotalCol   int
	AverageCol int
	GPACol     int
	GradeCol   int
}

// NewLayout derives the sheet layout from a curriculum.
func NewLayout(c curriculum.Curriculum, sheetName string) Layout {
	l := Layout{SheetName: sheetName}

	l.SerialCol = l.add(Column{Header: "SL", Component: -1})
	l.NameCol = l.add(Column{Header: "Name", Component: -1})

	for _, sub := range c.Subjects {
		for i, comp := range sub.Components {
			l.add(Column{Header: comp.Label, SubjectID: sub.ID, Component: i, FullMarks: comp.FullMarks})
		}
	}

	l.TotalCol = l.add(Column{Header: "Total", Component: -1})
	l.AverageCol = l.add(Column{Header: "Average", Component: -1})
	l.GPACol = l.add(Column{Header: "GPA", Component: -1})
	l.GradeCol = l.add(Column{Header: "Grade", Component: -1})

	return l
}

func (l *Layout) add(col Column) int {
	l.Columns = append(l.Columns, col)
	return len(l.Columns) - 1
}

// Name returns the spreadsheet column name (A, B, ... AA) for an index.
func (l Layout) Name(col int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return name
}

// Cell returns the cell reference for a column index and sheet row.
func (l Layout) Cell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col+1, row)
	return cell
}

// MarkColumns returns the indices of all raw mark columns.
func (l Layout) MarkColumns() []int {
	var cols []int
	for i, col := range l.Columns {
		if col.SubjectID != "" {
			cols = append(cols, i)
		}
	}
	return cols
}

// SubjectColumns returns the mark column indices for one subject, in
// component order.
func (l Layout) SubjectColumns(subjectID string) []int {
	var cols []int
	for i, col := range l.Columns {
		if col.SubjectID == subjectID {
			cols = append(cols, i)
		}
	}
	return cols
}

// Row converts a zero-based roster index to its sheet row.
func (l Layout) Row(index int) int {
	return DataStartRow + index
}
