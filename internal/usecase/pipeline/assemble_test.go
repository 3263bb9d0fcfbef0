package pipeline

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type fakeStore struct {
	objects map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (f *fakeStore) GetText(_ context.Context, key string) (string, error) {
	return f.objects[key], nil
}

func (f *fakeStore) PutText(_ context.Context, key, content string) error {
	f.objects[key] = content
	return nil
}

func (f *fakeStore) ObjectURL(key string) string {
	return "http://store/bucket/" + key
}

func TestAssembleConversationMergesSpeakerTurns(t *testing.T) {
	words := []rawWord{
		{Text: "Hello", Speaker: "A"},
		{Text: "everyone", Speaker: "A"},
		{Text: "Hi", Speaker: "B"},
		{Text: "there", Speaker: "B"},
		{Text: "Let's", Speaker: "A"},
		{Text: "start", Speaker: "A"},
	}

	conversation := assembleConversation(words)

	want := []string{
		"spk_0: Hello everyone",
		"spk_1: Hi there",
		"spk_0: Let's start",
	}
	if len(conversation) != len(want) {
		t.Fatalf("got %d turns, want %d: %v", len(conversation), len(want), conversation)
	}
	for i := range want {
		if conversation[i] != want[i] {
			t.Errorf("turn %d = %q, want %q", i, conversation[i], want[i])
		}
	}
}

func TestAssembleConversationLabelsByFirstSeen(t *testing.T) {
	words := []rawWord{
		{Text: "first", Speaker: "C"},
		{Text: "second", Speaker: "A"},
		{Text: "third", Speaker: "C"},
	}

	conversation := assembleConversation(words)

	if conversation[0] != "spk_0: first" {
		t.Errorf("turn 0 = %q", conversation[0])
	}
	if conversation[1] != "spk_1: second" {
		t.Errorf("turn 1 = %q", conversation[1])
	}
	if conversation[2] != "spk_0: third" {
		t.Errorf("turn 2 = %q", conversation[2])
	}
}

func TestAssembleConversationSkipsUnlabeledWords(t *testing.T) {
	words := []rawWord{
		{Text: "labeled", Speaker: "A"},
		{Text: "unlabeled"},
	}

	conversation := assembleConversation(words)
	if len(conversation) != 1 || conversation[0] != "spk_0: labeled" {
		t.Errorf("conversation = %v", conversation)
	}
}

func TestAssembleStageWritesDerivedKey(t *testing.T) {
	store := newFakeStore()
	store.objects["transcribe-output/12345.1718000000000.json"] = `{"words":[{"text":"Hello","speaker":"A"},{"text":"world","speaker":"A"}]}`

	stage := NewAssembleStage(store, zap.NewNop())
	if err := stage.Handle(context.Background(), "transcribe-output/12345.1718000000000.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.objects["non-diarized-transcript/12345.1718000000000.txt"]
	if got != "spk_0: Hello world" {
		t.Errorf("assembled transcript = %q", got)
	}
}
