package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"question_qc_bot/internal/app"
)

// scanTimeout bounds one full scan including per-row pacing delays.
const scanTimeout = 10 * time.Minute

// ScanScheduler drives the poll loop: one scan at startup, then a fixed
// cadence. Scans never overlap; a tick that lands while a scan is still
// running is skipped.
type ScanScheduler struct {
	cronEngine *cron.Cron
	dispatcher app.Dispatcher
	interval   time.Duration
	log        *logrus.Entry
}

func NewScanScheduler(dispatcher app.Dispatcher, interval time.Duration, log *logrus.Entry) *ScanScheduler {
	return &ScanScheduler{
		cronEngine: cron.New(),
		dispatcher: dispatcher,
		interval:   interval,
		log:        log,
	}
}

func (s *ScanScheduler) Start() {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).
		Then(cron.FuncJob(s.runScan))
	s.cronEngine.Schedule(cron.Every(s.interval), job)

	// First scan right away, through the same chain so it cannot overlap
	// the first scheduled tick.
	go job.Run()

	s.cronEngine.Start()
	s.log.Infof("scan scheduler started, cadence %s", s.interval)
}

// runScan is the outermost boundary of one scan cycle: any error or panic
// aborts only this cycle, never the loop.
func (s *ScanScheduler) runScan() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("scan cycle panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	s.log.Debug("scan cycle starting")
	if err := s.dispatcher.ScanAndDispatch(ctx); err != nil {
		s.log.WithError(err).Error("scan cycle failed")
	}
}

// Stop halts scheduling and waits for an in-flight scan to finish.
func (s *ScanScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("scan scheduler stopped")
}
