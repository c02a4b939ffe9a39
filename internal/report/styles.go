package report

import (
	"github.com/xuri/excelize/v2"
)

// Palette carried over from the original report template.
const (
	colorHeader   = "1F4E78"
	colorMarkHigh = "70AD47"
	colorMarkMid  = "FFF2CC"
	colorMarkLow  = "FFE699"
	colorMarkFail = "FC9999"
)

// styleSet holds the style IDs used across both sheets. Styles are
// registered once per file and reused for every cell.
type styleSet struct {
	header   int
	title    int
	label    int
	stat     int
	center   int
	decimal  int
	percent  int
	markHigh int
	markMid  int
	markLow  int
	markFail int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{}
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, err
	}

	if s.title, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Size: 24, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, err
	}

	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}

	if s.stat, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: colorHeader},
	}); err != nil {
		return nil, err
	}

	if s.center, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}

	twoDecimals := "0.00"
	if s.decimal, err = f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "center"},
		CustomNumFmt: &twoDecimals,
	}); err != nil {
		return nil, err
	}

	percent := "0.0%"
	if s.percent, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 12, Color: colorHeader},
		CustomNumFmt: &percent,
	}); err != nil {
		return nil, err
	}

	fill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
	}
	if s.markHigh, err = fill(colorMarkHigh); err != nil {
		return nil, err
	}
	if s.markMid, err = fill(colorMarkMid); err != nil {
		return nil, err
	}
	if s.markLow, err = fill(colorMarkLow); err != nil {
		return nil, err
	}
	if s.markFail, err = fill(colorMarkFail); err != nil {
		return nil, err
	}

	return s, nil
}

// markStyle picks the threshold-bound fill for a raw mark, scaled to the
// component's full marks so a 42/50 colours like an 84/100.
func (s *styleSet) markStyle(value, fullMarks float64) int {
	pct := value / fullMarks * 100
	switch {
	case pct >= 80:
		return s.markHigh
	case pct >= 60:
		return s.markMid
	case pct >= 40:
		return s.markLow
	default:
		return s.markFail
	}
}
