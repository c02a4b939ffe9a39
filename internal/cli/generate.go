package cli

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/dakhil-report-gen/internal/grading"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
	"github.com/noah-isme/dakhil-report-gen/internal/roster"
	"github.com/noah-isme/dakhil-report-gen/internal/service"
	"github.com/noah-isme/dakhil-report-gen/pkg/jobs"
	"github.com/noah-isme/dakhil-report-gen/pkg/storage"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Grade a roster and write the report workbook",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("roster", "r", "", "Roster CSV file (omit to use the built-in sample roster)")
	f.StringP("out", "o", "", "Output directory (overrides OUTPUT_DIR)")
	f.StringSliceP("formats", "f", nil, "Artifacts to write: xlsx, csv, pdf")
	f.Bool("static", false, "Write computed values instead of live formulas")
	f.Int("top", 0, "Dashboard top-N ranking size")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	engine, err := grading.NewEngine(a.curriculum)
	if err != nil {
		return err
	}

	loader := roster.NewLoader(a.curriculum, validator.New(), a.logger)
	records, failures, err := loadRecords(cmd, loader)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", failure)
	}

	outDir := a.cfg.Report.OutputDir
	if flagOut, _ := cmd.Flags().GetString("out"); flagOut != "" {
		outDir = flagOut
	}
	store, err := storage.NewLocalStorage(outDir)
	if err != nil {
		return err
	}

	svcCfg := service.ReportConfig{
		SheetName: a.cfg.Report.SheetName,
		Static:    a.cfg.Report.StaticValues,
		Formats:   a.cfg.Report.Formats,
		TopN:      a.cfg.Dashboard.TopN,
	}
	if static, _ := cmd.Flags().GetBool("static"); static {
		svcCfg.Static = true
	}
	if formats, _ := cmd.Flags().GetStringSlice("formats"); len(formats) > 0 {
		svcCfg.Formats = formats
	}
	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		svcCfg.TopN = top
	}

	pool := jobs.NewPool(jobs.PoolConfig{Workers: a.cfg.Report.Workers, Logger: a.logger})
	svc := service.NewReportService(engine, pool, store, svcCfg, a.logger, nil, nil)

	run, err := svc.Generate(cmd.Context(), records)
	if err != nil {
		return err
	}

	a.logger.Info("report generated",
		zap.String("run_id", run.RunID),
		zap.Int("students", len(records)),
		zap.Strings("files", run.Files))
	printSummary(cmd, run.Summary, run.Files)
	return nil
}

func loadRecords(cmd *cobra.Command, loader *roster.Loader) ([]models.StudentRecord, []roster.RecordError, error) {
	path, _ := cmd.Flags().GetString("roster")
	if path == "" {
		records, err := loader.Sample()
		return records, nil, err
	}
	return loader.LoadCSV(path)
}

func printSummary(cmd *cobra.Command, summary models.ClassSummary, files []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  Total Students: %d\n", summary.TotalStudents)
	fmt.Fprintf(out, "  Average Class GPA: %.2f\n", summary.AverageGPA)
	fmt.Fprintf(out, "  Students with A+: %d\n", summary.GradeCounts["A+"])
	fmt.Fprintf(out, "  Pass Rate: %.1f%%\n", summary.PassRate)

	letters := make([]string, 0, len(summary.GradeCounts))
	for letter := range summary.GradeCounts {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	for _, letter := range letters {
		fmt.Fprintf(out, "    %-2s %d\n", letter, summary.GradeCounts[letter])
	}

	for _, file := range files {
		fmt.Fprintf(out, "Saved: %s\n", file)
	}
}
