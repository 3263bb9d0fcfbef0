package pipeline

import "testing"

func TestParseKey(t *testing.T) {
	info, err := ParseKey("meeting-mp3/12345.1718000000000.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Prefix != "meeting-mp3" {
		t.Errorf("prefix = %q", info.Prefix)
	}
	if info.CallID != "12345" {
		t.Errorf("call id = %q", info.CallID)
	}
	if info.ScheduledTime != "1718000000000" {
		t.Errorf("scheduled time = %q", info.ScheduledTime)
	}
	if info.Ext != "wav" {
		t.Errorf("ext = %q", info.Ext)
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{
		"",
		"no-prefix.txt",
		"meeting-mp3/",
		"meeting-mp3/missing-time.wav",
	} {
		if _, err := ParseKey(key); err == nil {
			t.Errorf("ParseKey(%q): expected error", key)
		}
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key := "transcribe-output/12345.1718000000000.json"
	info, err := ParseKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := info.Key(); got != key {
		t.Errorf("round trip = %q, want %q", got, key)
	}
}

func TestPrefixSubstitution(t *testing.T) {
	info, err := ParseKey("non-diarized-transcript/12345.1718000000000.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := info.WithPrefix(PrefixDiarized).Key(); got != "diarized-transcript/12345.1718000000000.txt" {
		t.Errorf("diarized key = %q", got)
	}
	if got := info.WithPrefix(PrefixKnowledgeBase).WithExt("summary.txt").Key(); got != "knowledge-base/12345.1718000000000.summary.txt" {
		t.Errorf("knowledge-base summary key = %q", got)
	}
}
