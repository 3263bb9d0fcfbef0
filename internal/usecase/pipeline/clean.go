package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// CleanStage removes filler words and repairs diarization mistakes. Long
// transcripts are cleaned chunk by chunk within the configured character
// budget and stitched back together in order.
type CleanStage struct {
	store       ObjectStore
	meetingRepo repositories.MeetingRepository
	model       Completer
	chunkBudget int
	logger      *zap.Logger
}

// NewCleanStage creates the transcript cleaning stage
func NewCleanStage(store ObjectStore, meetingRepo repositories.MeetingRepository, model Completer, chunkBudget int, logger *zap.Logger) *CleanStage {
	return &CleanStage{
		store:       store,
		meetingRepo: meetingRepo,
		model:       model,
		chunkBudget: chunkBudget,
		logger:      logger,
	}
}

func (s *CleanStage) Name() string        { return "clean" }
func (s *CleanStage) InputPrefix() string { return PrefixDiarized }
func (s *CleanStage) InputSuffix() string { return ".txt" }

// Handle cleans one diarized transcript
func (s *CleanStage) Handle(ctx context.Context, key string) error {
	info, err := ParseKey(key)
	if err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	transcript, err := s.store.GetText(ctx, key)
	if err != nil {
		return errors.ErrStorageFailed("get diarized transcript", err)
	}

	chunks := SplitChunks(transcript, s.chunkBudget)
	cleaned := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := s.model.Complete(ctx, cleaningPrompt(chunk), 10000)
		if err != nil {
			return errors.ErrModelFailed(err)
		}
		cleaned = append(cleaned, strings.TrimSpace(out))
	}

	outKey := info.WithPrefix(PrefixClean).Key()
	if err := s.store.PutText(ctx, outKey, strings.Join(cleaned, "\n")); err != nil {
		return errors.ErrStorageFailed("put clean transcript", err)
	}

	if err := s.meetingRepo.UpdateTranscriptURL(ctx, info.CallID, info.ScheduledTime, s.store.ObjectURL(outKey)); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	s.logger.Info("transcript cleaned",
		zap.String("key", outKey),
		zap.Int("chunks", len(chunks)))
	return nil
}
