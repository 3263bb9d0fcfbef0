package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// SummarizeStage produces the structured meeting summary: overview, action
// items per person, any cloud services discussed. The summary lands under the
// operational prefix and, under a distinct suffix, the knowledge-base
// ingestion prefix so it does not clobber the transcript copy already there.
type SummarizeStage struct {
	store       ObjectStore
	meetingRepo repositories.MeetingRepository
	model       Completer
	logger      *zap.Logger
}

// NewSummarizeStage creates the summarization stage
func NewSummarizeStage(store ObjectStore, meetingRepo repositories.MeetingRepository, model Completer, logger *zap.Logger) *SummarizeStage {
	return &SummarizeStage{store: store, meetingRepo: meetingRepo, model: model, logger: logger}
}

func (s *SummarizeStage) Name() string        { return "summarize" }
func (s *SummarizeStage) InputPrefix() string { return PrefixClean }
func (s *SummarizeStage) InputSuffix() string { return ".txt" }

// Handle summarizes one cleaned transcript
func (s *SummarizeStage) Handle(ctx context.Context, key string) error {
	info, err := ParseKey(key)
	if err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	transcript, err := s.store.GetText(ctx, key)
	if err != nil {
		return errors.ErrStorageFailed("get clean transcript", err)
	}

	summary, err := s.model.Complete(ctx, summaryPrompt(transcript), 4000)
	if err != nil {
		return errors.ErrModelFailed(err)
	}

	outKey := info.WithPrefix(PrefixSummary).Key()
	if err := s.store.PutText(ctx, outKey, summary); err != nil {
		return errors.ErrStorageFailed("put summary", err)
	}
	kbKey := info.WithPrefix(PrefixKnowledgeBase).WithExt("summary.txt").Key()
	if err := s.store.PutText(ctx, kbKey, summary); err != nil {
		return errors.ErrStorageFailed("put knowledge-base summary", err)
	}

	if err := s.meetingRepo.UpdateSummaryURL(ctx, info.CallID, info.ScheduledTime, s.store.ObjectURL(outKey)); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	s.logger.Info("summary generated", zap.String("key", outKey))
	return nil
}
