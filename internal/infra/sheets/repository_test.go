package sheets

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question_qc_bot/internal/domain/review"
	"question_qc_bot/internal/infra/retry"
)

var testHeader = []string{
	review.ColQuestionID, review.ColSubject, review.ColChapter, review.ColTopic,
	review.ColQuestion,
	review.ColOptionA, review.ColOptionB, review.ColOptionC, review.ColOptionD, review.ColOptionE,
	review.ColCorrectOption, review.ColQuestionType,
	review.ColStatusQC, review.ColSolution, review.ColQCResult, review.ColRejectionNotes,
	review.ColSolutionLink, review.ColStartedAt, review.ColApprovedAt, review.ColRejectedAt,
	review.ColPIC,
}

type cellWrite struct {
	row, col int
	value    string
}

// fakeValuesAPI serves a fixed grid and records writes. Errors are popped
// from the front of the queues, one per call.
type fakeValuesAPI struct {
	grid       [][]string
	writes     []cellWrite
	fetchErrs  []error
	updateErrs []error
}

func (f *fakeValuesAPI) Fetch(ctx context.Context) ([][]string, error) {
	if len(f.fetchErrs) > 0 {
		err := f.fetchErrs[0]
		f.fetchErrs = f.fetchErrs[1:]
		return nil, err
	}
	return f.grid, nil
}

func (f *fakeValuesAPI) Read(ctx context.Context, row, col int) (string, error) {
	if row-1 < len(f.grid) && col-1 < len(f.grid[row-1]) {
		return f.grid[row-1][col-1], nil
	}
	return "", nil
}

func (f *fakeValuesAPI) Update(ctx context.Context, row, col int, value string) error {
	if len(f.updateErrs) > 0 {
		err := f.updateErrs[0]
		f.updateErrs = f.updateErrs[1:]
		if err != nil {
			return err
		}
	}
	f.writes = append(f.writes, cellWrite{row: row, col: col, value: value})
	return nil
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

func questionRow(id, status, solution, notes string) []string {
	return []string{
		id, "Matematika", "Aritmetika", "Penjumlahan",
		"<p>2+2=?</p>",
		"2", "3", "4", "5", "None",
		"A", "MCQ",
		status, solution, "", notes,
		"https://example.com/q/" + id, "", "", "",
		"U777",
	}
}

func newTestRepository(t *testing.T, api *fakeValuesAPI) (*Repository, *[]time.Duration) {
	t.Helper()
	var delays []time.Duration
	retrier := retry.New(3)
	retrier.Sleep = func(d time.Duration) { delays = append(delays, d) }
	repo, err := NewRepository(context.Background(), api, retrier, testLog())
	require.NoError(t, err)
	return repo, &delays
}

func TestScanEligibleFiltersRows(t *testing.T) {
	api := &fakeValuesAPI{grid: [][]string{
		testHeader,
		questionRow("42", "Ready to QC", "solution x", ""),      // row 2: eligible
		questionRow("43", "Assigned", "solution y", ""),         // row 3: wrong status
		questionRow("44", "Ready to QC", "  ", ""),              // row 4: blank solution
		questionRow("45", "Ready to QC", "solution z", "typo!"), // row 5: reassigned
	}}
	repo, _ := newTestRepository(t, api)

	questions, err := repo.ScanEligible(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)

	first := questions[0]
	assert.Equal(t, 2, first.RowNumber)
	assert.Equal(t, "42", first.ID)
	assert.Equal(t, "Matematika", first.Subject)
	assert.Equal(t, "<p>2+2=?</p>", first.Body)
	assert.Equal(t, [5]string{"2", "3", "4", "5", "None"}, first.Options)
	assert.Equal(t, "A", first.CorrectOption)
	assert.Equal(t, "U777", first.PIC)
	assert.Equal(t, review.StatusReadyToQC, first.Status)
	assert.False(t, first.Reassigned())

	second := questions[1]
	assert.Equal(t, 5, second.RowNumber)
	assert.Equal(t, "45", second.ID)
	assert.True(t, second.Reassigned())
	assert.Equal(t, "typo!", second.RejectionNotes)
}

func TestScanEligibleToleratesShortRows(t *testing.T) {
	// The API trims trailing empty cells; a row cut short before the
	// status column cannot be eligible and must not panic.
	api := &fakeValuesAPI{grid: [][]string{
		testHeader,
		{"42", "Matematika"},
	}}
	repo, _ := newTestRepository(t, api)

	questions, err := repo.ScanEligible(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestWriteFieldTargetsResolvedColumn(t *testing.T) {
	api := &fakeValuesAPI{grid: [][]string{testHeader, questionRow("42", "Ready to QC", "x", "")}}
	repo, _ := newTestRepository(t, api)

	require.NoError(t, repo.WriteField(context.Background(), 2, review.ColStatusQC, "Assigned"))

	require.Len(t, api.writes, 1)
	// "Status" is the 13th header, so the write goes to 1-based column 13.
	assert.Equal(t, cellWrite{row: 2, col: 13, value: "Assigned"}, api.writes[0])
}

func TestWriteFieldUnknownColumn(t *testing.T) {
	api := &fakeValuesAPI{grid: [][]string{testHeader}}
	repo, _ := newTestRepository(t, api)

	err := repo.WriteField(context.Background(), 2, "No Such Header", "v")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Empty(t, api.writes)
}

func TestWriteFieldRetriesQuotaErrors(t *testing.T) {
	api := &fakeValuesAPI{
		grid:       [][]string{testHeader, questionRow("42", "Ready to QC", "x", "")},
		updateErrs: []error{ErrQuotaExceeded, ErrQuotaExceeded, nil},
	}
	repo, delays := newTestRepository(t, api)

	require.NoError(t, repo.WriteField(context.Background(), 2, review.ColStatusQC, "Assigned"))

	require.Len(t, api.writes, 1)
	// Two quota failures, two backoff delays, success on the third try.
	assert.Len(t, *delays, 2)
}

func TestWriteFieldQuotaBudgetExhausted(t *testing.T) {
	api := &fakeValuesAPI{
		grid:       [][]string{testHeader},
		updateErrs: []error{ErrQuotaExceeded, ErrQuotaExceeded, ErrQuotaExceeded},
	}
	repo, _ := newTestRepository(t, api)

	err := repo.WriteField(context.Background(), 2, review.ColStatusQC, "Assigned")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Empty(t, api.writes)
}

func TestReadField(t *testing.T) {
	api := &fakeValuesAPI{grid: [][]string{testHeader, questionRow("42", "Ready to QC", "x", "")}}
	repo, _ := newTestRepository(t, api)

	value, err := repo.ReadField(context.Background(), 2, review.ColCorrectOption)
	require.NoError(t, err)
	assert.Equal(t, "A", value)
}

func TestNewRepositoryRequiresHeaderRow(t *testing.T) {
	retrier := retry.New(1)
	retrier.Sleep = func(time.Duration) {}
	_, err := NewRepository(context.Background(), &fakeValuesAPI{}, retrier, testLog())
	require.Error(t, err)
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for col, want := range cases {
		assert.Equal(t, want, columnLetter(col), "column %d", col)
	}
}
