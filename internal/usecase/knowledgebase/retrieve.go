package knowledgebase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/search"
)

// Embedder turns text into an embedding vector
type Embedder interface {
	Embed(ctx context.Context, input string) ([]float32, error)
}

// Completer produces a model completion for a prompt
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Searcher runs kNN queries against the retrieval index
type Searcher interface {
	Search(ctx context.Context, index string, vector []float32, k int) ([]search.Hit, error)
}

// Citation points an answer back at the meeting artifact it came from
type Citation struct {
	SourceKey string  `json:"sourceKey"`
	Excerpt   string  `json:"excerpt"`
	Score     float64 `json:"score"`
}

// Answer is the generated response with its supporting citations
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// Retriever answers questions over ingested meeting transcripts and
// summaries: embed the query, pull the top-k nearest documents, ask the model
// to answer from those documents only.
type Retriever struct {
	embedder Embedder
	searcher Searcher
	model    Completer
	index    string
	topK     int
	logger   *zap.Logger
}

// NewRetriever creates a retrieve-and-generate service
func NewRetriever(embedder Embedder, searcher Searcher, model Completer, index string, topK int, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		model:    model,
		index:    index,
		topK:     topK,
		logger:   logger,
	}
}

// RetrieveAndGenerate answers one free-text question
func (r *Retriever) RetrieveAndGenerate(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.ErrInvalidArgument("input text is required")
	}

	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, errors.ErrRetrieveFailed(err)
	}

	hits, err := r.searcher.Search(ctx, r.index, vector, r.topK)
	if err != nil {
		return nil, errors.ErrRetrieveFailed(err)
	}
	if len(hits) == 0 {
		return &Answer{Text: "No relevant meeting content was found for this question."}, nil
	}

	text, err := r.model.Complete(ctx, retrievalPrompt(question, hits), 4000)
	if err != nil {
		return nil, errors.ErrRetrieveFailed(err)
	}

	citations := make([]Citation, 0, len(hits))
	for _, hit := range hits {
		citations = append(citations, Citation{
			SourceKey: hit.SourceKey,
			Excerpt:   excerpt(hit.Text, 240),
			Score:     hit.Score,
		})
	}

	r.logger.Info("retrieve and generate completed",
		zap.Int("hits", len(hits)),
		zap.String("index", r.index))
	return &Answer{Text: strings.TrimSpace(text), Citations: citations}, nil
}

func retrievalPrompt(question string, hits []search.Hit) string {
	var b strings.Builder
	b.WriteString("You are a meeting knowledge assistant. Answer the question using only the meeting excerpts below. If the excerpts do not contain the answer, say so.\n\n")
	for i, hit := range hits {
		fmt.Fprintf(&b, "<excerpt source=\"%s\" number=\"%d\">\n%s\n</excerpt>\n\n", hit.SourceKey, i+1, hit.Text)
	}
	fmt.Fprintf(&b, "<question> %s </question>\n\nAnswer the question directly and mention which excerpt numbers support your answer.", question)
	return b.String()
}

func excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	// Back up to a rune boundary so a multi-byte character is never split.
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
