package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/dakhil-report-gen/internal/grading"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
	"github.com/noah-isme/dakhil-report-gen/internal/report"
	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
	"github.com/noah-isme/dakhil-report-gen/pkg/export"
	"github.com/noah-isme/dakhil-report-gen/pkg/jobs"
)

type artifactStore interface {
	Save(filename string, data []byte) (string, error)
}

type csvRenderer interface {
	Render(sheet export.MarkSheet) ([]byte, error)
}

type pdfRenderer interface {
	Render(sheet export.MarkSheet, title string) ([]byte, error)
}

// ReportConfig tunes report generation.
type ReportConfig struct {
	SheetName string
	Static    bool
	Formats   []string
	TopN      int
}

// GenerateResult captures one generation run.
type GenerateResult struct {
	RunID   string
	Files   []string
	Summary models.ClassSummary
	Results []models.GradeResult
}

// ReportService orchestrates a report run: batch grading over the worker
// pool, summary aggregation and rendering of the requested artifacts.
type ReportService struct {
	engine *grading.Engine
	pool   *jobs.Pool
	store  artifactStore
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	cfg    ReportConfig
}

// NewReportService constructs a ReportService.
func NewReportService(engine *grading.Engine, pool *jobs.Pool, store artifactStore, cfg ReportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pool == nil {
		pool = jobs.NewPool(jobs.PoolConfig{Workers: 1})
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []string{"xlsx"}
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	return &ReportService{
		engine: engine,
		pool:   pool,
		store:  store,
		csv:    csv,
		pdf:    pdf,
		logger: logger,
		cfg:    cfg,
	}
}

// GradeAll computes every student's result. Results are independent, so the
// batch fans out over the pool and lands in roster order.
func (s *ReportService) GradeAll(ctx context.Context, records []models.StudentRecord) ([]models.GradeResult, error) {
	results := make([]models.GradeResult, len(records))
	tasks := make([]jobs.Task, len(records))
	for i := range records {
		i := i
		tasks[i] = func(context.Context) error {
			results[i] = s.engine.Compute(records[i])
			return nil
		}
	}

	for _, err := range s.pool.Run(ctx, tasks) {
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "grading batch interrupted")
		}
	}
	return results, nil
}

// Summarize aggregates a roster's results for the dashboard and the
// console summary.
func (s *ReportService) Summarize(results []models.GradeResult) models.ClassSummary {
	summary := models.ClassSummary{
		TotalStudents: len(results),
		GradeCounts:   make(map[string]int),
	}
	if len(results) == 0 {
		return summary
	}

	gpaSum := 0.0
	passed := 0
	for _, result := range results {
		gpaSum += result.FinalGPA
		if result.Passed {
			passed++
		}
		summary.GradeCounts[result.LetterGrade]++
		if result.Total > summary.HighestTotal {
			summary.HighestTotal = result.Total
		}
	}
	summary.AverageGPA = round2(gpaSum / float64(len(results)))
	summary.PassRate = round2(float64(passed) / float64(len(results)) * 100)

	summary.SubjectAverages = s.subjectAverages(results)
	summary.TopStudents = s.rank(results)

	return summary
}

func (s *ReportService) subjectAverages(results []models.GradeResult) []models.SubjectAverage {
	c := s.engine.Curriculum()
	averages := make([]models.SubjectAverage, 0, len(c.Examined()))
	for _, sub := range c.Examined() {
		sum := 0.0
		for _, result := range results {
			if sr, ok := result.Subject(sub.ID); ok {
				sum += sr.Total
			}
		}
		averages = append(averages, models.SubjectAverage{
			SubjectID: sub.ID,
			Name:      sub.Name,
			Average:   round2(sum / float64(len(results))),
		})
	}
	return averages
}

// rank orders students by final GPA, ties broken by total marks then
// roster order, and keeps the top N.
func (s *ReportService) rank(results []models.GradeResult) []models.RankedStudent {
	indices := make([]int, len(results))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		ra, rb := results[indices[a]], results[indices[b]]
		if ra.FinalGPA != rb.FinalGPA {
			return ra.FinalGPA > rb.FinalGPA
		}
		return ra.Total > rb.Total
	})

	n := s.cfg.TopN
	if n > len(indices) {
		n = len(indices)
	}
	top := make([]models.RankedStudent, 0, n)
	for rank, idx := range indices[:n] {
		top = append(top, models.RankedStudent{
			Rank:        rank + 1,
			Serial:      results[idx].Serial,
			Name:        results[idx].Name,
			FinalGPA:    results[idx].FinalGPA,
			RosterIndex: idx,
		})
	}
	return top
}

// Generate runs the whole pipeline and writes every requested artifact.
func (s *ReportService) Generate(ctx context.Context, records []models.StudentRecord) (*GenerateResult, error) {
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrInput, "no student records to report")
	}

	results, err := s.GradeAll(ctx, records)
	if err != nil {
		return nil, err
	}
	summary := s.Summarize(results)

	run := &GenerateResult{
		RunID:   uuid.NewString()[:8],
		Summary: summary,
		Results: results,
	}

	c := s.engine.Curriculum()
	for _, format := range s.cfg.Formats {
		var payload []byte
		switch strings.ToLower(format) {
		case "xlsx":
			builder := report.NewWorkbookBuilder(c, report.BuilderConfig{
				SheetName: s.cfg.SheetName,
				Static:    s.cfg.Static,
				TopN:      s.cfg.TopN,
			})
			f, err := builder.Build(records, results, summary)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "build workbook")
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "encode workbook")
			}
			payload = buf.Bytes()
		case "csv":
			payload, err = s.csv.Render(s.MarkSheet(results))
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "render csv")
			}
		case "pdf":
			payload, err = s.pdf.Render(s.MarkSheet(results), c.Title)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "render pdf")
			}
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
		}

		path, err := s.store.Save(s.buildFilename(c.Revision, run.RunID, format), payload)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "store artifact")
		}
		s.logger.Info("artifact written",
			zap.String("format", format),
			zap.String("path", path),
			zap.String("run_id", run.RunID))
		run.Files = append(run.Files, path)
	}

	return run, nil
}

// MarkSheet flattens results into the tabular export shape shared by the
// CSV and PDF renderers: one row per student, per-subject totals plus the
// aggregates.
func (s *ReportService) MarkSheet(results []models.GradeResult) export.MarkSheet {
	c := s.engine.Curriculum()
	subjects := c.Examined()

	headers := []string{"SL", "Name"}
	for _, sub := range subjects {
		headers = append(headers, sub.Name)
	}
	headers = append(headers, "Total", "GPA", "Grade")

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		row := []string{strconv.Itoa(result.Serial), result.Name}
		for _, sub := range subjects {
			sr, _ := result.Subject(sub.ID)
			row = append(row, strconv.FormatFloat(sr.Total, 'f', -1, 64))
		}
		row = append(row,
			strconv.FormatFloat(result.Total, 'f', -1, 64),
			strconv.FormatFloat(result.FinalGPA, 'f', 2, 64),
			result.LetterGrade)
		rows = append(rows, row)
	}

	return export.MarkSheet{Headers: headers, Rows: rows}
}

func (s *ReportService) buildFilename(revision, runID, format string) string {
	stamp := time.Now().UTC().Format("20060102-150405")
	return fmt.Sprintf("%s-result-%s-%s.%s", revision, stamp, runID, strings.ToLower(format))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
