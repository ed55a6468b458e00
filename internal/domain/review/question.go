package review

import "strings"

// Column headers of the QC worksheet. All cell access is by exact header
// name; the header row is resolved to indices once at repository construction.
const (
	ColQuestionID     = "Question ID"
	ColSubject        = "Subject"
	ColChapter        = "Chapter"
	ColTopic          = "Topic"
	ColQuestion       = "Question"
	ColOptionA        = "Option A"
	ColOptionB        = "Option B"
	ColOptionC        = "Option C"
	ColOptionD        = "Option D"
	ColOptionE        = "Option E"
	ColCorrectOption  = "Correct Option"
	ColQuestionType   = "Question Type"
	ColStatusQC       = "Status"
	ColSolution       = "Solution including Concepts"
	ColQCResult       = "Hasil QC"
	ColRejectionNotes = "Rejection Notes"
	ColSolutionLink   = "Solution Link"
	ColStartedAt      = "Started At"
	ColApprovedAt     = "Approved At"
	ColRejectedAt     = "Rejected At"
	ColPIC            = "PIC"
)

// Status is the QC lifecycle state of a row.
type Status string

const (
	StatusReadyToQC Status = "Ready to QC"
	StatusAssigned  Status = "Assigned"
	StatusChecked   Status = "Checked"
	StatusReturned  Status = "Question Returned"
)

// Result is the reviewer's verdict written to the QC result column.
type Result string

const (
	ResultApproved Result = "Approved"
	ResultRejected Result = "Rejected"
)

// TypeMultipleChoice is the only question type rendered in full on a card.
const TypeMultipleChoice = "MCQ"

// Question is one row of the QC worksheet. Identity is the row position;
// ID is a display label set by the upstream content pipeline, not a key.
type Question struct {
	RowNumber      int // 1-based sheet position; row 1 is the header
	ID             string
	Subject        string
	Chapter        string
	Topic          string
	Body           string // raw question text, may carry HTML
	Options        [5]string
	CorrectOption  string
	Type           string
	SolutionLink   string
	PIC            string
	RejectionNotes string
	Status         Status
}

// Reassigned reports whether the row went through a rejection before and is
// back for another pass. Such rows get the reassigned card treatment.
func (q *Question) Reassigned() bool {
	return strings.TrimSpace(q.RejectionNotes) != ""
}
