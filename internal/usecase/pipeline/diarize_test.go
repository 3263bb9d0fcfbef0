package pipeline

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
)

type fakeCompleter struct {
	answer  string
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, nil
}

type fakeMeetingRepo struct {
	transcriptURL string
	summaryURL    string
	audioURL      string
	participants  map[string]string
}

func (f *fakeMeetingRepo) Create(_ context.Context, _ *entities.Meeting) error { return nil }

func (f *fakeMeetingRepo) Get(_ context.Context, _, _ string) (*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) ListAll(_ context.Context) ([]entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) UpdateTitle(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeMeetingRepo) UpdateAudioURL(_ context.Context, _, _, url string) error {
	f.audioURL = url
	return nil
}

func (f *fakeMeetingRepo) UpdateTranscriptURL(_ context.Context, _, _, url string) error {
	f.transcriptURL = url
	return nil
}

func (f *fakeMeetingRepo) UpdateParticipants(_ context.Context, _, _ string, participants map[string]string) error {
	f.participants = participants
	return nil
}

func (f *fakeMeetingRepo) UpdateSummaryURL(_ context.Context, _, _, url string) error {
	f.summaryURL = url
	return nil
}

func TestParseSpeakerNames(t *testing.T) {
	speakers, err := parseSpeakerNames(`{"spk_0": "Alice", "spk_1": "Bob"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if speakers["spk_0"] != "Alice" || speakers["spk_1"] != "Bob" {
		t.Errorf("speakers = %v", speakers)
	}
}

func TestParseSpeakerNamesToleratesSurroundingText(t *testing.T) {
	speakers, err := parseSpeakerNames("```json\n{\"spk_0\": \"Alice\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if speakers["spk_0"] != "Alice" {
		t.Errorf("speakers = %v", speakers)
	}
}

func TestParseSpeakerNamesRejectsNonJSON(t *testing.T) {
	if _, err := parseSpeakerNames("I could not find any speakers."); err == nil {
		t.Error("expected error for answer without JSON")
	}
}

func TestReplaceSpeakerLabels(t *testing.T) {
	transcript := "spk_0: hello spk_1\nspk_1: hi spk_0\nspk_10: also here"
	speakers := map[string]string{"spk_0": "Alice", "spk_1": "Bob"}

	got := replaceSpeakerLabels(transcript, speakers)

	if got != "Alice: hello Bob\nBob: hi Alice\nspk_10: also here" {
		t.Errorf("replaced transcript = %q", got)
	}
}

func TestReplaceSpeakerLabelsWordBoundary(t *testing.T) {
	// spk_1 must not be rewritten inside spk_10
	got := replaceSpeakerLabels("spk_1 spk_10", map[string]string{"spk_1": "Bob"})
	if got != "Bob spk_10" {
		t.Errorf("replaced transcript = %q", got)
	}
}

func TestDiarizeStageWritesBothCopiesAndUpdatesRow(t *testing.T) {
	store := newFakeStore()
	key := "non-diarized-transcript/12345.1718000000000.txt"
	store.objects[key] = "spk_0: hello\nspk_1: hi"

	repo := &fakeMeetingRepo{}
	model := &fakeCompleter{answer: `{"spk_0": "Alice", "spk_1": "Bob"}`}
	stage := NewDiarizeStage(store, repo, model, zap.NewNop())

	if err := stage.Handle(context.Background(), key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Alice: hello\nBob: hi"
	if got := store.objects["diarized-transcript/12345.1718000000000.txt"]; got != want {
		t.Errorf("diarized copy = %q", got)
	}
	if got := store.objects["knowledge-base/12345.1718000000000.txt"]; got != want {
		t.Errorf("knowledge-base copy = %q", got)
	}
	if repo.transcriptURL != "http://store/bucket/diarized-transcript/12345.1718000000000.txt" {
		t.Errorf("transcript url = %q", repo.transcriptURL)
	}
	if repo.participants["spk_0"] != "Alice" || repo.participants["spk_1"] != "Bob" {
		t.Errorf("participants = %v", repo.participants)
	}
	if len(model.prompts) != 1 {
		t.Errorf("expected 1 model call, got %d", len(model.prompts))
	}
}
