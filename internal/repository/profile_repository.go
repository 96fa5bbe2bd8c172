package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serviceconnect/api/internal/domain"
)

// ProfileRepository defines persistence access for marketplace profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	// CreateWithProvider writes the profile and its provider row in one transaction.
	CreateWithProvider(ctx context.Context, profile *domain.Profile, provider *domain.Provider) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const insertProfileSQL = `
        INSERT INTO profiles (id, email, full_name, role, phone, location, bio, avatar_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return insertProfile(ctx, r.pool, profile)
}

func (r *profileRepository) CreateWithProvider(ctx context.Context, profile *domain.Profile, provider *domain.Provider) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin profile tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = insertProfile(ctx, tx, profile); err != nil {
		return err
	}
	provider.ProfileID = profile.ID
	if err = insertProvider(ctx, tx, provider); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertProfile(ctx context.Context, q queryRower, profile *domain.Profile) error {
	return q.QueryRow(ctx, insertProfileSQL,
		profile.ID,
		normalizeEmail(profile.Email),
		profile.FullName,
		profile.Role,
		profile.Phone,
		profile.Location,
		profile.Bio,
		profile.AvatarURL,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles SET full_name=$1, phone=$2, location=$3, bio=$4, avatar_url=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.FullName,
		profile.Phone,
		profile.Location,
		profile.Bio,
		profile.AvatarURL,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `
        SELECT id, email, full_name, role, phone, location, bio, avatar_url, created_at, updated_at
        FROM profiles WHERE id=$1`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Role,
		&profile.Phone,
		&profile.Location,
		&profile.Bio,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
