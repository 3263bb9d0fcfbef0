package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/storage"
)

// ObjectStore is the slice of the object store the pipeline stages need
type ObjectStore interface {
	GetText(ctx context.Context, key string) (string, error)
	PutText(ctx context.Context, key, content string) error
	ObjectURL(key string) string
}

// Completer produces a model completion for a prompt
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Stage is one step of the artifact chain. A stage claims an event when the
// key sits under its input prefix and carries its input suffix.
type Stage interface {
	Name() string
	InputPrefix() string
	InputSuffix() string
	Handle(ctx context.Context, key string) error
}

// Pipeline routes object-created events to registered stages. Stages for
// different meetings run concurrently; a single meeting's chain is serialized
// naturally because each stage's input is the previous stage's output.
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// New creates an empty pipeline
func New(logger *zap.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Register adds a stage to the routing table
func (p *Pipeline) Register(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Run consumes events until the channel closes or ctx is cancelled. Stage
// failures are logged and dropped; there is no retry or dead-letter, a
// redelivered event just overwrites the same derived keys.
func (p *Pipeline) Run(ctx context.Context, events <-chan storage.ObjectEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			p.dispatch(ctx, event.Key)
		}
	}
}

func (p *Pipeline) dispatch(ctx context.Context, key string) {
	for _, stage := range p.stages {
		if !matches(stage, key) {
			continue
		}
		p.logger.Info("pipeline stage triggered",
			zap.String("stage", stage.Name()),
			zap.String("key", key))
		go func(stage Stage) {
			if err := stage.Handle(ctx, key); err != nil {
				p.logger.Error("pipeline stage failed",
					zap.String("stage", stage.Name()),
					zap.String("key", key),
					zap.Error(err))
			}
		}(stage)
	}
}

func matches(stage Stage, key string) bool {
	return strings.HasPrefix(key, stage.InputPrefix()+"/") &&
		strings.HasSuffix(key, stage.InputSuffix())
}
