package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
)

// AssembleStage turns the raw transcription JSON archived under
// transcribe-output/ into speaker-turn text under non-diarized-transcript/.
// Provider speaker labels (A, B, ...) are renamed to spk_N in first-seen
// order so the diarization stage always sees the same label shape.
type AssembleStage struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewAssembleStage creates the transcript assembly stage
func NewAssembleStage(store ObjectStore, logger *zap.Logger) *AssembleStage {
	return &AssembleStage{store: store, logger: logger}
}

func (s *AssembleStage) Name() string        { return "assemble" }
func (s *AssembleStage) InputPrefix() string { return PrefixRawTranscript }
func (s *AssembleStage) InputSuffix() string { return ".json" }

type rawTranscript struct {
	Words []rawWord `json:"words"`
}

type rawWord struct {
	Text    string `json:"text"`
	Speaker string `json:"speaker"`
}

// Handle assembles one raw transcript into conversation text
func (s *AssembleStage) Handle(ctx context.Context, key string) error {
	info, err := ParseKey(key)
	if err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	raw, err := s.store.GetText(ctx, key)
	if err != nil {
		return errors.ErrStorageFailed("get raw transcript", err)
	}

	var transcript rawTranscript
	if err := json.Unmarshal([]byte(raw), &transcript); err != nil {
		return errors.ErrStageFailed(s.Name(), err)
	}

	conversation := assembleConversation(transcript.Words)

	outKey := info.WithPrefix(PrefixNonDiarized).WithExt("txt").Key()
	if err := s.store.PutText(ctx, outKey, strings.Join(conversation, "\n")); err != nil {
		return errors.ErrStorageFailed("put assembled transcript", err)
	}

	s.logger.Info("transcript assembled",
		zap.String("key", outKey),
		zap.Int("turns", len(conversation)))
	return nil
}

// assembleConversation merges consecutive words by the same speaker into one
// "spk_N: text" line per turn.
func assembleConversation(words []rawWord) []string {
	labels := map[string]string{}
	var conversation []string
	currentSpeaker := ""
	var current strings.Builder

	for _, w := range words {
		if w.Speaker == "" {
			continue
		}
		label, ok := labels[w.Speaker]
		if !ok {
			label = fmt.Sprintf("spk_%d", len(labels))
			labels[w.Speaker] = label
		}

		if label != currentSpeaker {
			if currentSpeaker != "" {
				conversation = append(conversation, currentSpeaker+": "+current.String())
			}
			currentSpeaker = label
			current.Reset()
			current.WriteString(w.Text)
		} else {
			current.WriteByte(' ')
			current.WriteString(w.Text)
		}
	}
	if currentSpeaker != "" {
		conversation = append(conversation, currentSpeaker+": "+current.String())
	}
	return conversation
}
