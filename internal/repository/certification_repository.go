package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serviceconnect/api/internal/domain"
)

// CertificationRepository persists provider certifications.
type CertificationRepository interface {
	Create(ctx context.Context, cert *domain.Certification) error
	GetByID(ctx context.Context, id string) (*domain.Certification, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Certification, error)
	Delete(ctx context.Context, id string) error
}

type certificationRepository struct {
	pool *pgxpool.Pool
}

// NewCertificationRepository constructs repository.
func NewCertificationRepository(pool *pgxpool.Pool) CertificationRepository {
	return &certificationRepository{pool: pool}
}

const selectCertificationSQL = `
        SELECT id, provider_id, name, issuer, issued_at, expires_at, credential_url, created_at
        FROM certifications`

func (r *certificationRepository) Create(ctx context.Context, cert *domain.Certification) error {
	const query = `
        INSERT INTO certifications (provider_id, name, issuer, issued_at, expires_at, credential_url)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		cert.ProviderID,
		cert.Name,
		cert.Issuer,
		cert.IssuedAt,
		cert.ExpiresAt,
		cert.CredentialURL,
	).Scan(&cert.ID, &cert.CreatedAt)
}

func (r *certificationRepository) GetByID(ctx context.Context, id string) (*domain.Certification, error) {
	return scanCertification(r.pool.QueryRow(ctx, selectCertificationSQL+` WHERE id=$1`, id))
}

func (r *certificationRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Certification, error) {
	rows, err := r.pool.Query(ctx, selectCertificationSQL+` WHERE provider_id=$1 ORDER BY created_at DESC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Certification{}
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *cert)
	}
	return result, rows.Err()
}

func (r *certificationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM certifications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCertification(row pgx.Row) (*domain.Certification, error) {
	var cert domain.Certification
	if err := row.Scan(
		&cert.ID,
		&cert.ProviderID,
		&cert.Name,
		&cert.Issuer,
		&cert.IssuedAt,
		&cert.ExpiresAt,
		&cert.CredentialURL,
		&cert.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cert, nil
}
