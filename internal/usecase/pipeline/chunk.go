package pipeline

import "strings"

// SplitChunks splits a transcript into pieces no longer than budget
// characters, breaking only on line boundaries so a speaker turn is never cut
// mid-sentence. A single line longer than the budget becomes its own chunk
// rather than being split.
func SplitChunks(text string, budget int) []string {
	if text == "" {
		return nil
	}
	if budget <= 0 || len(text) <= budget {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if current.Len() > 0 && current.Len()+1+len(line) > budget {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
