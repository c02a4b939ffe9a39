package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/dakhil-report-gen/internal/grading"
	"github.com/noah-isme/dakhil-report-gen/internal/report"
)

func failcheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failcheck FILE",
		Short: "Replay every pass condition for one student row",
		Args:  cobra.ExactArgs(1),
		RunE:  runFailcheck,
	}
	cmd.Flags().Int("row", report.DataStartRow, "Sheet row to analyse")
	return cmd
}

func runFailcheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	f, err := report.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	inspector := report.NewInspector(a.curriculum, a.cfg.Report.SheetName)
	row, _ := cmd.Flags().GetInt("row")
	record, err := inspector.Record(f, row)
	if err != nil {
		return err
	}

	engine, err := grading.NewEngine(a.curriculum)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing row %d (%s)\n\n", row, record.Name)

	failed := 0
	for _, line := range engine.Explain(record) {
		status := "PASS"
		if !line.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%-20s %s  %s\n", line.Name, status, line.Detail)
	}

	result := engine.Compute(record)
	fmt.Fprintln(out)
	if failed == 0 {
		fmt.Fprintf(out, "All pass conditions met. GPA %.2f, grade %s\n", result.FinalGPA, result.LetterGrade)
	} else {
		fmt.Fprintf(out, "%d failing condition(s). GPA %.2f, grade %s\n", failed, result.FinalGPA, result.LetterGrade)
	}
	return nil
}
