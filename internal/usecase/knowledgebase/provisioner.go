package knowledgebase

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/errors"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/infrastructure/external/search"
	"github.com/meeting-summarizer-team/meeting-summarizer/pkg/config"
)

// ControlPlane manages the vector collection and its gating policies
type ControlPlane interface {
	CreateAccessPolicy(ctx context.Context, name string, principalARNs []string) error
	DeleteAccessPolicy(ctx context.Context, name string) error
	CreateSecurityPolicy(ctx context.Context, name, policyType string) error
	DeleteSecurityPolicy(ctx context.Context, name, policyType string) error
	CreateCollection(ctx context.Context, name string) (*search.Collection, error)
	GetCollection(ctx context.Context, name string) (*search.Collection, error)
	DeleteCollection(ctx context.Context, name string) error
}

// IndexAdmin manages the kNN index inside a collection
type IndexAdmin interface {
	CreateVectorIndex(ctx context.Context, index string, dimension int) error
	DeleteIndex(ctx context.Context, index string) error
}

// ParameterStore persists provisioned resource identifiers so the serving
// path can find them without re-provisioning.
type ParameterStore interface {
	PutParameter(ctx context.Context, name, value string) error
	GetParameter(ctx context.Context, name string) (string, error)
	DeleteParameter(ctx context.Context, name string) error
}

// parameter name suffixes under /{namePrefix}-{nameSuffix}/
var parameterNames = []string{
	"collectionId",
	"collectionName",
	"collectionEndpoint",
	"indexName",
	"dataSourcePrefix",
}

// Provisioner drives knowledge-base lifecycle: the collection, its policies,
// the kNN index, and the parameter records the serving path reads. This is
// deploy-time machinery; fixed waits and bounded polling are acceptable here
// and nowhere else.
type Provisioner struct {
	control ControlPlane
	index   IndexAdmin
	params  ParameterStore
	cfg     *config.KnowledgeBaseConfig
	logger  *zap.Logger

	// poll pacing, shortened in tests
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewProvisioner creates a knowledge-base provisioner
func NewProvisioner(control ControlPlane, index IndexAdmin, params ParameterStore, cfg *config.KnowledgeBaseConfig, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		control:      control,
		index:        index,
		params:       params,
		cfg:          cfg,
		logger:       logger,
		pollInterval: 30 * time.Second,
		pollTimeout:  10 * time.Minute,
	}
}

// Name returns the {prefix}-{suffix} name every provisioned resource shares
func (p *Provisioner) Name() string {
	return fmt.Sprintf("%s-%s", p.cfg.NamePrefix, p.cfg.NameSuffix)
}

// IndexName returns the kNN index backing retrieval
func (p *Provisioner) IndexName() string {
	return p.Name()
}

func (p *Provisioner) paramName(key string) string {
	return fmt.Sprintf("/%s/%s", p.Name(), key)
}

// Create provisions everything in dependency order: access policy, network
// policy, encryption policy, collection (polled until ACTIVE), index, and
// finally the parameter records.
func (p *Provisioner) Create(ctx context.Context, principalARNs []string) error {
	name := p.Name()

	if err := p.control.CreateAccessPolicy(ctx, name, principalARNs); err != nil {
		return errors.ErrKnowledgeBaseFailed("access policy", err)
	}
	if err := p.control.CreateSecurityPolicy(ctx, name, "network"); err != nil {
		return errors.ErrKnowledgeBaseFailed("network policy", err)
	}
	if err := p.control.CreateSecurityPolicy(ctx, name, "encryption"); err != nil {
		return errors.ErrKnowledgeBaseFailed("encryption policy", err)
	}

	if _, err := p.control.CreateCollection(ctx, name); err != nil {
		return errors.ErrKnowledgeBaseFailed("create collection", err)
	}

	collection, err := p.waitForCollectionActive(ctx, name)
	if err != nil {
		return errors.ErrKnowledgeBaseFailed("collection activation", err)
	}

	if err := p.index.CreateVectorIndex(ctx, p.IndexName(), p.cfg.EmbeddingDim); err != nil {
		return errors.ErrKnowledgeBaseFailed("create index", err)
	}

	if err := p.storeParameters(ctx, collection); err != nil {
		return err
	}

	p.logger.Info("knowledge base provisioned",
		zap.String("name", name),
		zap.String("collection_id", collection.ID))
	return nil
}

// Update refreshes the stored parameters from the live collection
func (p *Provisioner) Update(ctx context.Context) error {
	collection, err := p.control.GetCollection(ctx, p.Name())
	if err != nil {
		return errors.ErrKnowledgeBaseFailed("get collection", err)
	}
	return p.storeParameters(ctx, collection)
}

// Delete tears everything down in reverse and removes the parameter records
func (p *Provisioner) Delete(ctx context.Context) error {
	name := p.Name()

	if err := p.control.DeleteAccessPolicy(ctx, name); err != nil {
		return errors.ErrKnowledgeBaseFailed("delete access policy", err)
	}
	if err := p.control.DeleteSecurityPolicy(ctx, name, "network"); err != nil {
		return errors.ErrKnowledgeBaseFailed("delete network policy", err)
	}
	if err := p.control.DeleteSecurityPolicy(ctx, name, "encryption"); err != nil {
		return errors.ErrKnowledgeBaseFailed("delete encryption policy", err)
	}
	if err := p.control.DeleteCollection(ctx, name); err != nil {
		return errors.ErrKnowledgeBaseFailed("delete collection", err)
	}
	if err := p.index.DeleteIndex(ctx, p.IndexName()); err != nil {
		return errors.ErrKnowledgeBaseFailed("delete index", err)
	}

	for _, key := range parameterNames {
		if err := p.params.DeleteParameter(ctx, p.paramName(key)); err != nil {
			return errors.ErrCacheFailed("delete parameter "+key, err)
		}
	}

	p.logger.Info("knowledge base deleted", zap.String("name", name))
	return nil
}

func (p *Provisioner) storeParameters(ctx context.Context, collection *search.Collection) error {
	values := map[string]string{
		"collectionId":       collection.ID,
		"collectionName":     collection.Name,
		"collectionEndpoint": collection.CollectionEndpoint,
		"indexName":          p.IndexName(),
		"dataSourcePrefix":   "knowledge-base",
	}
	for key, value := range values {
		if err := p.params.PutParameter(ctx, p.paramName(key), value); err != nil {
			return errors.ErrCacheFailed("put parameter "+key, err)
		}
	}
	return nil
}

func (p *Provisioner) waitForCollectionActive(ctx context.Context, name string) (*search.Collection, error) {
	var collection *search.Collection

	poll := func() error {
		c, err := p.control.GetCollection(ctx, name)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.Status != search.CollectionStatusActive {
			return fmt.Errorf("collection %s is %s", name, c.Status)
		}
		collection = c
		return nil
	}

	bo := backoff.NewConstantBackOff(p.pollInterval)
	if err := backoff.Retry(poll, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.pollTimeout/p.pollInterval)), ctx)); err != nil {
		return nil, err
	}
	return collection, nil
}
