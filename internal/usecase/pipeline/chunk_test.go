package pipeline

import (
	"strings"
	"testing"
)

func TestSplitChunksShortTextStaysWhole(t *testing.T) {
	text := "spk_0: hello\nspk_1: hi"
	chunks := SplitChunks(text, 1000)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	if chunks := SplitChunks("", 100); chunks != nil {
		t.Errorf("expected nil, got %v", chunks)
	}
}

func TestSplitChunksBreaksOnLines(t *testing.T) {
	lines := []string{
		"spk_0: the first speaker turn in the meeting",
		"spk_1: the second speaker turn in the meeting",
		"spk_0: the third speaker turn in the meeting",
	}
	text := strings.Join(lines, "\n")

	chunks := SplitChunks(text, 60)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	for i, chunk := range chunks {
		if chunk != lines[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunk, lines[i])
		}
	}
}

func TestSplitChunksPreservesContent(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "spk_0: some meeting discussion content here")
	}
	text := strings.Join(lines, "\n")

	chunks := SplitChunks(text, 200)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("chunk exceeds budget: %d chars", len(chunk))
		}
	}
	if rejoined := strings.Join(chunks, "\n"); rejoined != text {
		t.Error("rejoined chunks differ from original text")
	}
}

func TestSplitChunksOversizedLineKeptWhole(t *testing.T) {
	long := strings.Repeat("word ", 100)
	chunks := SplitChunks(long, 50)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != long {
		t.Error("oversized line was altered")
	}
}
