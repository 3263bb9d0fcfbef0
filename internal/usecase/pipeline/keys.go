package pipeline

import (
	"fmt"
	"strings"
)

// Every artifact in a meeting's chain shares one key shape:
// {prefix}/{callId}.{scheduledTime}.{ext}. Each stage derives its output key
// from its input key by swapping the prefix and, sometimes, the extension.
// Losing this convention breaks the whole chain, so all key math lives here.

// Artifact prefixes, in chain order
const (
	PrefixMeetingInvite = "meeting-invite"
	PrefixMeetingAudio  = "meeting-mp3"
	PrefixRawTranscript = "transcribe-output"
	PrefixNonDiarized   = "non-diarized-transcript"
	PrefixDiarized      = "diarized-transcript"
	PrefixClean         = "clean-transcript"
	PrefixSummary       = "call-summary"
	PrefixKnowledgeBase = "knowledge-base"
)

// KeyInfo is the parsed form of an artifact key
type KeyInfo struct {
	Prefix        string
	CallID        string
	ScheduledTime string
	Ext           string
}

// ParseKey splits an artifact key into its prefix and id parts
func ParseKey(key string) (KeyInfo, error) {
	prefix, rest, ok := strings.Cut(key, "/")
	if !ok || rest == "" {
		return KeyInfo{}, fmt.Errorf("key %q has no prefix", key)
	}

	parts := strings.Split(rest, ".")
	if len(parts) < 3 {
		return KeyInfo{}, fmt.Errorf("key %q is not {callId}.{scheduledTime}.{ext}", key)
	}

	return KeyInfo{
		Prefix:        prefix,
		CallID:        parts[0],
		ScheduledTime: parts[1],
		Ext:           parts[len(parts)-1],
	}, nil
}

// Key rebuilds the storage key for this artifact
func (k KeyInfo) Key() string {
	return fmt.Sprintf("%s/%s.%s.%s", k.Prefix, k.CallID, k.ScheduledTime, k.Ext)
}

// WithPrefix returns the same artifact under another prefix
func (k KeyInfo) WithPrefix(prefix string) KeyInfo {
	k.Prefix = prefix
	return k
}

// WithExt returns the same artifact with another extension
func (k KeyInfo) WithExt(ext string) KeyInfo {
	k.Ext = ext
	return k
}
