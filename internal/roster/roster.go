package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dakhil-report-gen/internal/curriculum"
	"github.com/noah-isme/dakhil-report-gen/internal/models"
	appErrors "github.com/noah-isme/dakhil-report-gen/pkg/errors"
)

// RecordError ties an ingestion failure to its roster position. One
// student's bad data never aborts the batch; the caller gets the valid
// records plus the failures side by side.
type RecordError struct {
	Line   int
	Serial int
	Name   string
	Err    error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Name, e.Err)
}

type identity struct {
	Serial int    `validate:"gt=0"`
	Name   string `validate:"required"`
}

// Loader ingests student records for one curriculum revision and rejects
// malformed input before it can reach the grade engine.
type Loader struct {
	curriculum curriculum.Curriculum
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewLoader constructs a Loader.
func NewLoader(c curriculum.Curriculum, validate *validator.Validate, logger *zap.Logger) *Loader {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{curriculum: c, validate: validate, logger: logger}
}

// Header returns the CSV column layout for the active curriculum: serial,
// name, then one column per subject component in curriculum order.
func (l *Loader) Header() []string {
	header := []string{"Serial", "Name"}
	for _, sub := range l.curriculum.Subjects {
		for _, comp := range sub.Components {
			header = append(header, comp.Label)
		}
	}
	return header
}

// LoadCSV reads records from a CSV file matching Header(). Invalid rows are
// collected as RecordErrors and skipped; the remaining rows are returned.
func (l *Loader) LoadCSV(path string) ([]models.StudentRecord, []RecordError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInput.Code, "open roster file")
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInput.Code, "read roster file")
	}
	if len(rows) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrInput, "roster file is empty")
	}

	header := l.Header()
	start := 0
	if isHeaderRow(rows[0]) {
		start = 1
	}

	var records []models.StudentRecord
	var failures []RecordError
	for i := start; i < len(rows); i++ {
		record, err := l.parseRow(rows[i], len(header))
		if err != nil {
			failure := RecordError{Line: i + 1, Serial: record.Serial, Name: record.Name, Err: err}
			l.logger.Warn("roster record rejected",
				zap.Int("line", failure.Line),
				zap.String("name", failure.Name),
				zap.Error(err))
			failures = append(failures, failure)
			continue
		}
		records = append(records, record)
	}

	return records, failures, nil
}

func (l *Loader) parseRow(row []string, width int) (models.StudentRecord, error) {
	record := models.StudentRecord{Scores: make(map[string]models.SubjectScore)}
	if len(row) < 2 {
		return record, appErrors.Clone(appErrors.ErrInput, "row too short")
	}

	serial, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return record, appErrors.Wrap(err, appErrors.ErrInput.Code, "serial is not a number")
	}
	record.Serial = serial
	record.Name = strings.TrimSpace(row[1])

	if len(row) != width {
		return record, appErrors.Clone(appErrors.ErrInput, fmt.Sprintf("expected %d columns, got %d", width, len(row)))
	}

	col := 2
	for _, sub := range l.curriculum.Subjects {
		score := models.SubjectScore{SubjectID: sub.ID}
		for range sub.Components {
			value, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return record, appErrors.Wrap(err, appErrors.ErrInput.Code, fmt.Sprintf("column %d is not a number", col+1))
			}
			score.Components = append(score.Components, value)
			col++
		}
		record.Scores[sub.ID] = score
	}

	return record, l.Validate(record)
}

// Validate rejects a record the grade engine must never see: missing
// subjects, negative marks, marks above a component's full marks. The
// engine itself stays total over the inputs that survive this gate.
func (l *Loader) Validate(record models.StudentRecord) error {
	if err := l.validate.Struct(identity{Serial: record.Serial, Name: record.Name}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInput.Code, "invalid identity")
	}

	for _, sub := range l.curriculum.Subjects {
		score, ok := record.Score(sub.ID)
		if !ok {
			return appErrors.Clone(appErrors.ErrInput, fmt.Sprintf("missing score for subject %s", sub.ID))
		}
		if len(score.Components) != len(sub.Components) {
			return appErrors.Clone(appErrors.ErrInput, fmt.Sprintf(
				"subject %s expects %d components, got %d", sub.ID, len(sub.Components), len(score.Components)))
		}
		for i, comp := range sub.Components {
			value := score.Components[i]
			if value < 0 || value > comp.FullMarks {
				return appErrors.Clone(appErrors.ErrInput, fmt.Sprintf(
					"subject %s component %s mark %.4g outside [0, %.4g]", sub.ID, comp.Label, value, comp.FullMarks))
			}
		}
	}

	return nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}
