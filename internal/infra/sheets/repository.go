package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"question_qc_bot/internal/domain/review"
	"question_qc_bot/internal/infra/retry"
)

// Repository implements review.Repository over a Google Sheets worksheet.
// The header-to-index mapping is built once at construction and owned by the
// instance; a schema change requires a restart.
type Repository struct {
	api     valuesAPI
	columns map[string]int // header name -> 0-based column index
	retrier *retry.Retrier
	log     *logrus.Entry
}

// NewRepository fetches the header row and resolves all column positions.
func NewRepository(ctx context.Context, api valuesAPI, retrier *retry.Retrier, log *logrus.Entry) (*Repository, error) {
	r := &Repository{api: api, retrier: retrier, log: log}
	rows, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch header row: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty, expected a header row")
	}
	r.columns = make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if _, ok := r.columns[name]; !ok {
			r.columns[name] = i
		}
	}
	log.Infof("resolved %d columns from header row", len(r.columns))
	return r, nil
}

// ScanEligible fetches a full snapshot and filters to rows ready for QC with
// a non-empty solution. Row 1 is the header, so data rows start at 2.
func (r *Repository) ScanEligible(ctx context.Context) ([]*review.Question, error) {
	rows, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch worksheet snapshot: %w", err)
	}
	statusIdx, err := r.resolveColumn(review.ColStatusQC)
	if err != nil {
		return nil, err
	}
	solutionIdx, err := r.resolveColumn(review.ColSolution)
	if err != nil {
		return nil, err
	}

	var eligible []*review.Question
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if review.Status(cell(row, statusIdx)) != review.StatusReadyToQC {
			continue
		}
		if strings.TrimSpace(cell(row, solutionIdx)) == "" {
			continue
		}
		eligible = append(eligible, r.question(i+1, row))
	}
	return eligible, nil
}

func (r *Repository) ReadField(ctx context.Context, rowNumber int, column string) (string, error) {
	idx, err := r.resolveColumn(column)
	if err != nil {
		return "", err
	}
	var value string
	err = r.retrier.Do(ctx, func() error {
		var readErr error
		value, readErr = r.api.Read(ctx, rowNumber, idx+1)
		return readErr
	}, IsQuota)
	if err != nil {
		return "", fmt.Errorf("read row %d column %q: %w", rowNumber, column, err)
	}
	return value, nil
}

func (r *Repository) WriteField(ctx context.Context, rowNumber int, column string, value string) error {
	idx, err := r.resolveColumn(column)
	if err != nil {
		return err
	}
	err = r.retrier.Do(ctx, func() error {
		return r.api.Update(ctx, rowNumber, idx+1, value)
	}, IsQuota)
	if err != nil {
		return fmt.Errorf("write row %d column %q: %w", rowNumber, column, err)
	}
	return nil
}

func (r *Repository) fetch(ctx context.Context) ([][]string, error) {
	var rows [][]string
	err := r.retrier.Do(ctx, func() error {
		var fetchErr error
		rows, fetchErr = r.api.Fetch(ctx)
		return fetchErr
	}, IsQuota)
	return rows, err
}

func (r *Repository) resolveColumn(name string) (int, error) {
	idx, ok := r.columns[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return idx, nil
}

func (r *Repository) question(rowNumber int, row []string) *review.Question {
	return &review.Question{
		RowNumber:     rowNumber,
		ID:            r.field(row, review.ColQuestionID),
		Subject:       r.field(row, review.ColSubject),
		Chapter:       r.field(row, review.ColChapter),
		Topic:         r.field(row, review.ColTopic),
		Body:          r.field(row, review.ColQuestion),
		CorrectOption: r.field(row, review.ColCorrectOption),
		Type:          r.field(row, review.ColQuestionType),
		SolutionLink:  r.field(row, review.ColSolutionLink),
		PIC:           r.field(row, review.ColPIC),
		Options: [5]string{
			r.field(row, review.ColOptionA),
			r.field(row, review.ColOptionB),
			r.field(row, review.ColOptionC),
			r.field(row, review.ColOptionD),
			r.field(row, review.ColOptionE),
		},
		RejectionNotes: r.field(row, review.ColRejectionNotes),
		Status:         review.Status(r.field(row, review.ColStatusQC)),
	}
}

// field reads a named column from a snapshot row. A missing column means the
// field is skipped, not an error for the whole row.
func (r *Repository) field(row []string, column string) string {
	idx, err := r.resolveColumn(column)
	if err != nil {
		r.log.Debugf("column %q not present, field skipped", column)
		return ""
	}
	return cell(row, idx)
}

// cell tolerates short rows; the Sheets API trims trailing empty cells.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
