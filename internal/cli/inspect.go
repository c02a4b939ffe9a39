package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/dakhil-report-gen/internal/report"
)

// openInspector bootstraps the app, opens the workbook and builds an
// inspector for the active curriculum's layout.
func openInspector(cmd *cobra.Command, path string) (*report.Inspector, *excelize.File, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, nil, err
	}
	defer a.close()

	f, err := report.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return report.NewInspector(a.curriculum, a.cfg.Report.SheetName), f, nil
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Read a generated workbook back",
		Long: `Re-open a generated workbook and inspect it.

Commands:
  formulas  Print the GPA and Grade formula text for one student row.
  values    Evaluate and print every student's GPA and Grade.
  length    Measure formula lengths against the spreadsheet limit.`,
	}
	cmd.AddCommand(inspectFormulasCmd(), inspectValuesCmd(), inspectLengthCmd())
	return cmd
}

func inspectFormulasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formulas FILE",
		Short: "Print GPA and Grade formulas for one row",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectFormulas,
	}
	cmd.Flags().Int("row", report.DataStartRow, "Sheet row to inspect")
	return cmd
}

func runInspectFormulas(cmd *cobra.Command, args []string) error {
	inspector, f, err := openInspector(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	row, _ := cmd.Flags().GetInt("row")
	formulas, err := inspector.Formulas(f, row)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Row %d (%s)\n", formulas.Row, formulas.Name)
	fmt.Fprintf(out, "GPA formula:\n%s\n\n", formulas.GPAFormula)
	fmt.Fprintf(out, "Grade formula:\n%s\n\n", formulas.GradeFormula)
	fmt.Fprintln(out, "Raw marks:")
	for _, mark := range formulas.Marks {
		fmt.Fprintf(out, "  %s\n", mark)
	}
	return nil
}

func inspectValuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values FILE",
		Short: "Evaluate and print every student's GPA and Grade",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectValues,
	}
}

func runInspectValues(cmd *cobra.Command, args []string) error {
	inspector, f, err := openInspector(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	values, err := inspector.Values(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, value := range values {
		fmt.Fprintf(out, "Row %d (%s): GPA=%s, Grade=%s\n", value.Row, value.Name, value.GPA, value.Grade)
	}
	return nil
}

func inspectLengthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "length FILE",
		Short: "Measure formula lengths against the spreadsheet limit",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectLength,
	}
	cmd.Flags().Int("row", report.DataStartRow, "Sheet row to measure")
	return cmd
}

func runInspectLength(cmd *cobra.Command, args []string) error {
	inspector, f, err := openInspector(cmd, args[0])
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	row, _ := cmd.Flags().GetInt("row")
	lengths, err := inspector.Lengths(f, row)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "GPA formula length: %d characters\n", lengths.GPALen)
	fmt.Fprintf(out, "Grade formula length: %d characters\n", lengths.GradeLen)
	fmt.Fprintf(out, "Spreadsheet formula limit: %d characters\n", lengths.Limit)
	if lengths.NearLimit() {
		fmt.Fprintln(out, "WARNING: formula length is approaching the limit")
	}
	return nil
}
