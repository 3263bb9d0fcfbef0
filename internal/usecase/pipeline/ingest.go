package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/search"
)

// Embedder turns text into an embedding vector
type Embedder interface {
	Embed(ctx context.Context, input string) ([]float32, error)
}

// Indexer writes documents into the retrieval index
type Indexer interface {
	IndexDocument(ctx context.Context, index, docID string, doc search.Document) error
}

// IngestStage indexes everything written under knowledge-base/ so the
// retrieve-and-generate endpoint can find it. The document id is the key
// minus the prefix, making re-ingestion an overwrite.
type IngestStage struct {
	store    ObjectStore
	embedder Embedder
	indexer  Indexer
	index    string
	logger   *zap.Logger
}

// NewIngestStage creates the knowledge-base ingestion stage
func NewIngestStage(store ObjectStore, embedder Embedder, indexer Indexer, index string, logger *zap.Logger) *IngestStage {
	return &IngestStage{
		store:    store,
		embedder: embedder,
		indexer:  indexer,
		index:    index,
		logger:   logger,
	}
}

func (s *IngestStage) Name() string        { return "ingest" }
func (s *IngestStage) InputPrefix() string { return PrefixKnowledgeBase }
func (s *IngestStage) InputSuffix() string { return ".txt" }

// Handle embeds and indexes one knowledge-base document
func (s *IngestStage) Handle(ctx context.Context, key string) error {
	text, err := s.store.GetText(ctx, key)
	if err != nil {
		return errors.ErrStorageFailed("get knowledge-base document", err)
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Info("skipping empty knowledge-base document", zap.String("key", key))
		return nil
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return errors.ErrModelFailed(err)
	}

	docID := strings.TrimPrefix(key, PrefixKnowledgeBase+"/")
	doc := search.Document{
		SourceKey: key,
		Text:      text,
		Embedding: embedding,
	}
	if err := s.indexer.IndexDocument(ctx, s.index, docID, doc); err != nil {
		return errors.ErrSearchFailed("index document", err)
	}

	s.logger.Info("knowledge-base document indexed",
		zap.String("key", key),
		zap.String("index", s.index))
	return nil
}
