package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vertexinsure/insurance-connector/internal/domain"
	"github.com/vertexinsure/insurance-connector/internal/logger"
	"github.com/vertexinsure/insurance-connector/internal/repository"
)

var (
	// ErrMalformedPayload means the body is not valid JSON.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrInvalidPayload means the body is valid JSON but not an object.
	ErrInvalidPayload = errors.New("payload is not a JSON object")
	// ErrPersistence wraps storage failures; the delivery must be treated as
	// undelivered so the sender redelivers.
	ErrPersistence = errors.New("persistence failure")
)

// ManifestPublisher emits an event per accepted manifest for downstream
// consumers.
type ManifestPublisher interface {
	PublishManifest(ctx context.Context, m domain.OrderManifest) error
}

// ManifestService ingests verified webhook bodies into the manifest store.
// It is stateless and safe for concurrent use.
type ManifestService struct {
	repo repository.ManifestRepo
	pub  ManifestPublisher
}

// NewManifestService wires the service. pub may be nil when event publishing
// is disabled.
func NewManifestService(r repository.ManifestRepo, pub ManifestPublisher) *ManifestService {
	return &ManifestService{repo: r, pub: pub}
}

// Ingest parses rawBody, extracts the manifest fields and persists a single
// record. One attempt only; a decode that succeeds but fails to persist is
// reported as a failure, never as partial success.
func (s *ManifestService) Ingest(ctx context.Context, rawBody []byte) (uuid.UUID, error) {
	payload, err := ParsePayload(rawBody)
	if err != nil {
		return uuid.Nil, err
	}

	m := payload.Manifest()
	m.CreatedAt = time.Now().UTC()

	if err := s.repo.AddManifest(ctx, &m); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.pub != nil {
		// The row is durable; a failed publish is logged, not surfaced.
		// Failing the webhook here would trigger a redelivery and a
		// duplicate row.
		if err := s.pub.PublishManifest(ctx, m); err != nil {
			logger.Warn("manifest publish failed", "id", m.ID, "err", err)
		}
	}

	return m.ID, nil
}

// GetByID loads a persisted manifest, nil when absent.
func (s *ManifestService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderManifest, error) {
	return s.repo.GetManifestById(ctx, id)
}
