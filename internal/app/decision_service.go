package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"

	"question_qc_bot/internal/domain/messaging"
	"question_qc_bot/internal/domain/review"
)

// DecisionService applies reviewer verdicts: the row write always comes
// first and is attempted independently of the card update, so a messaging
// failure can never lose a decision.
type DecisionService interface {
	ApproveQuestion(ctx context.Context, req ApproveRequest) error
	SubmitRejection(ctx context.Context, req RejectRequest) error
}

// ApproveRequest carries a decoded approve click: the token plus the card's
// location and current blocks so the action row can be swapped in place.
type ApproveRequest struct {
	Token      review.Token
	ReviewerID string
	ChannelID  string
	MessageTS  string
	CardBlocks []slackapi.Block
}

// RejectRequest carries a modal submission. Metadata is the raw private
// metadata; the service decodes it so truncated legacy payloads can still
// land the decision through the degraded path.
type RejectRequest struct {
	Metadata   string
	Reason     string
	ReviewerID string
}

type DecisionServiceImpl struct {
	repo   review.Repository
	client messaging.Client
	log    *logrus.Entry
	now    func() time.Time
}

func NewDecisionService(repo review.Repository, client messaging.Client, log *logrus.Entry) *DecisionServiceImpl {
	return &DecisionServiceImpl{repo: repo, client: client, log: log, now: time.Now}
}

// ApproveQuestion marks the row checked/approved, then replaces the card's
// action row with a static notice. A failed edit falls back to a threaded
// message; messaging failures never undo the row writes.
func (s *DecisionServiceImpl) ApproveQuestion(ctx context.Context, req ApproveRequest) error {
	decidedAt := review.FormatStoreTime(s.now())
	row := req.Token.RowNumber

	s.writeField(ctx, row, review.ColQCResult, string(review.ResultApproved))
	s.writeField(ctx, row, review.ColStatusQC, string(review.StatusChecked))
	s.writeField(ctx, row, review.ColApprovedAt, decidedAt)

	blocks := messaging.ReplaceActions(req.CardBlocks, messaging.ApprovedNotice(req.ReviewerID, decidedAt))
	if err := s.client.UpdateCard(req.ChannelID, req.MessageTS, blocks); err != nil {
		s.log.WithError(err).Errorf("card update failed for question #%s, posting threaded notice", req.Token.QuestionID)
		notice := fmt.Sprintf("✅ Question #%s telah diapprove oleh <@%s>!", req.Token.QuestionID, req.ReviewerID)
		if err := s.client.PostThreadMessage(req.ChannelID, req.MessageTS, notice); err != nil {
			s.log.WithError(err).Error("threaded approval notice failed as well")
		}
	}

	s.log.Infof("question #%s (row %d) approved by %s", req.Token.QuestionID, row, req.ReviewerID)
	return nil
}

// SubmitRejection writes the rejection to the row, then replaces the card
// with a static rejection notice. Metadata that lost the card location goes
// through rejectDegraded instead.
func (s *DecisionServiceImpl) SubmitRejection(ctx context.Context, req RejectRequest) error {
	meta, err := review.DecodeModalMetadata(req.Metadata)
	if errors.Is(err, review.ErrMalformedMetadata) {
		s.log.Warnf("modal metadata %q is missing the card location, using degraded path", req.Metadata)
		return s.rejectDegraded(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("decode modal metadata: %w", err)
	}

	decidedAt := review.FormatStoreTime(s.now())
	row := meta.RowNumber

	s.writeField(ctx, row, review.ColQCResult, string(review.ResultRejected))
	s.writeField(ctx, row, review.ColStatusQC, string(review.StatusReturned))
	s.writeField(ctx, row, review.ColRejectionNotes, req.Reason)
	s.writeField(ctx, row, review.ColRejectedAt, decidedAt)

	notice := fmt.Sprintf("❌ Question #%s telah direject oleh <@%s>.\n*Alasan:* %s",
		meta.QuestionID, req.ReviewerID, req.Reason)
	if meta.MessageTS == "" {
		if err := s.client.PostMessage(meta.ChannelID, notice); err != nil {
			s.log.WithError(err).Error("rejection notice failed")
		}
	} else {
		blocks := messaging.RejectedCard(meta.QuestionID, req.ReviewerID, decidedAt, req.Reason)
		if err := s.client.UpdateCard(meta.ChannelID, meta.MessageTS, blocks); err != nil {
			s.log.WithError(err).Errorf("card update failed for question #%s, posting plain notice", meta.QuestionID)
			if err := s.client.PostMessage(meta.ChannelID, notice); err != nil {
				s.log.WithError(err).Error("plain rejection notice failed as well")
			}
		}
	}

	s.log.Infof("question #%s (row %d) rejected by %s", meta.QuestionID, row, req.ReviewerID)
	return nil
}

// rejectDegraded handles metadata produced before the card location was
// carried along (legacy/compatibility path). The verdict still lands on the
// row; the reviewer is told by DM because the original card is unknown.
func (s *DecisionServiceImpl) rejectDegraded(ctx context.Context, req RejectRequest) error {
	tok, err := review.DecodeToken(req.Metadata)
	if err != nil {
		return fmt.Errorf("decode token from degraded metadata: %w", err)
	}

	s.writeField(ctx, tok.RowNumber, review.ColQCResult, fmt.Sprintf("Rejected: %s", req.Reason))

	dm := fmt.Sprintf("❌ Question #%s telah direject dengan alasan: %s", tok.QuestionID, req.Reason)
	if err := s.client.PostMessage(req.ReviewerID, dm); err != nil {
		s.log.WithError(err).Error("degraded rejection DM failed")
	}

	s.log.Infof("question #%s (row %d) rejected via degraded path by %s", tok.QuestionID, tok.RowNumber, req.ReviewerID)
	return nil
}

// writeField logs and moves on. Every status field is idempotently
// re-writable, so a partial update is left for a later pass instead of
// aborting the ones after it.
func (s *DecisionServiceImpl) writeField(ctx context.Context, row int, column, value string) {
	if err := s.repo.WriteField(ctx, row, column, value); err != nil {
		s.log.WithError(err).Errorf("row %d: write to %q failed", row, column)
	}
}
