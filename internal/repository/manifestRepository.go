package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vertexinsure/insurance-connector/internal/domain"
)

type ManifestRepo interface {
	AddManifest(ctx context.Context, m *domain.OrderManifest) error
	GetManifestById(ctx context.Context, id uuid.UUID) (*domain.OrderManifest, error)
}

// ManifestRepository persists manifests in Postgres. The store is
// append-only: there are no update or delete paths.
type ManifestRepository struct {
	pool *pgxpool.Pool
}

func NewManifestRepository(pool *pgxpool.Pool) *ManifestRepository {
	return &ManifestRepository{pool: pool}
}

// AddManifest inserts one row and assigns m.ID. A single statement on a
// pooled connection: the insert either lands whole or not at all, and
// concurrent requests never share a connection.
func (r *ManifestRepository) AddManifest(ctx context.Context, m *domain.OrderManifest) error {
	id := uuid.New()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO insurance_manifests
			(id, order_id, email, total_price, currency, created_at)
		 VALUES
			($1, $2, $3, $4, $5, $6)`,
		id,
		m.OrderID,
		m.Email,
		m.TotalPrice,
		m.Currency,
		m.CreatedAt,
	)
	if err != nil {
		return err
	}

	m.ID = id
	return nil
}

// GetManifestById returns the manifest with the given id, nil when absent.
func (r *ManifestRepository) GetManifestById(ctx context.Context, id uuid.UUID) (*domain.OrderManifest, error) {
	var m domain.OrderManifest
	err := r.pool.QueryRow(ctx,
		`SELECT id, order_id, email, total_price, currency, created_at
		 FROM insurance_manifests
		 WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.OrderID, &m.Email, &m.TotalPrice, &m.Currency, &m.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
