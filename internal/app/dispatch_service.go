package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"question_qc_bot/internal/domain/messaging"
	"question_qc_bot/internal/domain/review"
	"question_qc_bot/internal/infra/throttle"
)

// Dispatcher is what the scan scheduler drives. One call is one scan:
// snapshot the store, post a card per eligible row, mark each row assigned.
type Dispatcher interface {
	ScanAndDispatch(ctx context.Context) error
}

// DispatchServiceImpl implements Dispatcher over the row store and the
// messaging client.
type DispatchServiceImpl struct {
	repo      review.Repository
	client    messaging.Client
	pacer     *throttle.Throttle
	qcChannel string // fallback recipient when a row has no PIC
	log       *logrus.Entry
	now       func() time.Time
}

func NewDispatchService(
	repo review.Repository,
	client messaging.Client,
	pacer *throttle.Throttle,
	qcChannel string,
	log *logrus.Entry,
) *DispatchServiceImpl {
	return &DispatchServiceImpl{
		repo:      repo,
		client:    client,
		pacer:     pacer,
		qcChannel: qcChannel,
		log:       log,
		now:       time.Now,
	}
}

// ScanAndDispatch posts one card per eligible row, sequentially and paced.
// A failure on one row is logged and never blocks the rows after it.
func (s *DispatchServiceImpl) ScanAndDispatch(ctx context.Context) error {
	questions, err := s.repo.ScanEligible(ctx)
	if err != nil {
		return fmt.Errorf("scan eligible rows: %w", err)
	}
	if len(questions) == 0 {
		s.log.Debug("no rows ready for QC")
		return nil
	}
	s.log.Infof("found %d rows ready for QC", len(questions))

	for i, q := range questions {
		if i > 0 {
			s.pacer.Pace()
		}
		if err := s.dispatch(ctx, q); err != nil {
			s.log.WithError(err).Errorf("dispatch failed for question #%s (row %d)", q.ID, q.RowNumber)
		}
	}
	return nil
}

func (s *DispatchServiceImpl) dispatch(ctx context.Context, q *review.Question) error {
	fallback, blocks, err := messaging.RenderCard(q)
	if err != nil {
		return fmt.Errorf("render card: %w", err)
	}

	recipient := strings.TrimSpace(q.PIC)
	if recipient == "" {
		recipient = s.qcChannel
	}
	if _, err := s.client.PostCard(recipient, fallback, blocks); err != nil {
		return fmt.Errorf("post review card: %w", err)
	}

	// The card is out; mark the row so the next scan skips it. A failed
	// write here is logged and left for a manual pass, not rolled back.
	if err := s.repo.WriteField(ctx, q.RowNumber, review.ColStatusQC, string(review.StatusAssigned)); err != nil {
		s.log.WithError(err).Errorf("row %d: status write failed after card was posted", q.RowNumber)
	}
	if err := s.repo.WriteField(ctx, q.RowNumber, review.ColStartedAt, review.FormatStoreTime(s.now())); err != nil {
		s.log.WithError(err).Errorf("row %d: started-at write failed", q.RowNumber)
	}

	s.log.Infof("sent question #%s (row %d) for QC", q.ID, q.RowNumber)
	return nil
}
