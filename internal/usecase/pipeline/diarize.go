package pipeline

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// DiarizeStage asks the model who is behind each spk_N label and rewrites
// the transcript with real names. The named transcript goes to both the
// operational prefix and the knowledge-base ingestion prefix, and the meeting
// row gets the transcript URL plus the label-to-name map.
type DiarizeStage struct {
	store       ObjectStore
	meetingRepo repositories.MeetingRepository
	model       Completer
	logger      *zap.Logger
}

// NewDiarizeStage creates the speaker naming stage
func NewDiarizeStage(store ObjectStore, meetingRepo repositories.MeetingRepository, model Completer, logger *zap.Logger) *DiarizeStage {
	return &DiarizeStage{store: store, meetingRepo: meetingRepo, model: model, logger: logger}
}

func (s *DiarizeStage) Name() string        { return "diarize" }
func (s *DiarizeStage) InputPrefix() string { return PrefixNonDiarized }
func (s *DiarizeStage) InputSuffix() string { return ".txt" }

// Handle names the speakers in one assembled transcript
func (s *DiarizeStage) Handle(ctx context.Context, key string) error {
	info, err := ParseKey(key)
	if err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	transcript, err := s.store.GetText(ctx, key)
	if err != nil {
		return errors.ErrStorageFailed("get assembled transcript", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return errors.ErrStageFailed(s.Name(), errors.ErrInvalidArgument("missing transcript"))
	}

	answer, err := s.model.Complete(ctx, diarizationPrompt(transcript), 4000)
	if err != nil {
		return errors.ErrModelFailed(err)
	}

	speakers, err := parseSpeakerNames(answer)
	if err != nil {
		return errors.ErrModelFailed(err)
	}

	named := replaceSpeakerLabels(transcript, speakers)

	outKey := info.WithPrefix(PrefixDiarized).Key()
	if err := s.store.PutText(ctx, outKey, named); err != nil {
		return errors.ErrStorageFailed("put diarized transcript", err)
	}
	kbKey := info.WithPrefix(PrefixKnowledgeBase).Key()
	if err := s.store.PutText(ctx, kbKey, named); err != nil {
		return errors.ErrStorageFailed("put knowledge-base transcript", err)
	}

	if err := s.meetingRepo.UpdateTranscriptURL(ctx, info.CallID, info.ScheduledTime, s.store.ObjectURL(outKey)); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}
	if err := s.meetingRepo.UpdateParticipants(ctx, info.CallID, info.ScheduledTime, speakers); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	s.logger.Info("transcript diarized",
		zap.String("key", outKey),
		zap.Int("speakers", len(speakers)))
	return nil
}

// parseSpeakerNames decodes the model's {"spk_0": "Name"} answer, tolerating
// code fences or stray text around the JSON object.
func parseSpeakerNames(answer string) (map[string]string, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end <= start {
		return nil, errors.ErrInvalidArgument("no JSON object in speaker answer")
	}

	var speakers map[string]string
	if err := json.Unmarshal([]byte(answer[start:end+1]), &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

// replaceSpeakerLabels swaps each label for its name on word boundaries. A
// name that happens to match another label would itself be rewritten by a
// later replacement; that hazard is inherited unchanged.
func replaceSpeakerLabels(transcript string, speakers map[string]string) string {
	for label, name := range speakers {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(label) + `\b`)
		transcript = pattern.ReplaceAllString(transcript, name)
	}
	return transcript
}
