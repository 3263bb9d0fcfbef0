package pipeline

import (
	"context"
	"net/url"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// AudioStore adds presigned downloads on top of the basic object store; the
// transcription provider fetches the recording itself.
type AudioStore interface {
	ObjectStore
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// TranscribeStage reacts to a finished recording landing under meeting-mp3/.
// It records the audio URL on the meeting row and submits the file for
// transcription with speaker labels and language detection. The provider
// calls back to our webhook when done; nothing waits here.
type TranscribeStage struct {
	store          AudioStore
	meetingRepo    repositories.MeetingRepository
	client         *aai.Client
	webhookBaseURL string
	logger         *zap.Logger
}

// NewTranscribeStage creates the transcription kickoff stage
func NewTranscribeStage(store AudioStore, meetingRepo repositories.MeetingRepository, client *aai.Client, webhookBaseURL string, logger *zap.Logger) *TranscribeStage {
	return &TranscribeStage{
		store:          store,
		meetingRepo:    meetingRepo,
		client:         client,
		webhookBaseURL: webhookBaseURL,
		logger:         logger,
	}
}

func (s *TranscribeStage) Name() string        { return "transcribe" }
func (s *TranscribeStage) InputPrefix() string { return PrefixMeetingAudio }
func (s *TranscribeStage) InputSuffix() string { return ".wav" }

// Handle submits one recording for transcription
func (s *TranscribeStage) Handle(ctx context.Context, key string) error {
	info, err := ParseKey(key)
	if err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	if err := s.meetingRepo.UpdateAudioURL(ctx, info.CallID, info.ScheduledTime, s.store.ObjectURL(key)); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	audioURL, err := s.store.PresignedGetURL(ctx, key, 4*time.Hour)
	if err != nil {
		return errors.ErrStorageFailed("presign recording", err)
	}

	// The webhook needs the storage key back to derive the output key, so it
	// rides along as a query parameter.
	webhookURL := s.webhookBaseURL + "/v1/webhooks/assemblyai?object=" + url.QueryEscape(key)

	var transcriptID string
	submitFn := func() error {
		transcript, err := s.client.Transcripts.SubmitFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
			SpeakerLabels:     aai.Bool(true),
			LanguageDetection: aai.Bool(true),
			WebhookURL:        &webhookURL,
		})
		if err != nil {
			return err
		}
		if transcript.ID != nil {
			transcriptID = *transcript.ID
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		return errors.ErrTranscriptionFailed(err)
	}

	s.logger.Info("transcription submitted",
		zap.String("key", key),
		zap.String("transcript_id", transcriptID))
	return nil
}
