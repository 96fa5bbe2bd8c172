package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serviceconnect/api/internal/domain"
)

// ProviderFilter captures provider directory search parameters.
type ProviderFilter struct {
	CategoryID *string
	Search     string
	Verified   *bool
	Page       Page
}

// ProviderRepository encapsulates provider persistence.
type ProviderRepository interface {
	Update(ctx context.Context, provider *domain.Provider) error
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	GetByProfileID(ctx context.Context, profileID string) (*domain.Provider, error)
	List(ctx context.Context, filter ProviderFilter) ([]domain.Provider, error)
}

type providerRepository struct {
	pool *pgxpool.Pool
}

// NewProviderRepository instantiates repository.
func NewProviderRepository(pool *pgxpool.Pool) ProviderRepository {
	return &providerRepository{pool: pool}
}

const selectProviderSQL = `
        SELECT pv.id, pv.profile_id, pv.business_name, pv.description, pv.category_id, pv.hourly_rate,
               pv.services, pv.rating, pv.review_count, pv.is_verified, pv.created_at, pv.updated_at,
               pr.email, pr.full_name, pr.role, pr.location, pr.avatar_url
        FROM providers pv
        JOIN profiles pr ON pr.id = pv.profile_id`

func insertProvider(ctx context.Context, q queryRower, provider *domain.Provider) error {
	const query = `
        INSERT INTO providers (profile_id, business_name, description, category_id, hourly_rate, services)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, rating, review_count, is_verified, created_at, updated_at`
	services := provider.Services
	if services == nil {
		services = []string{}
	}
	return q.QueryRow(ctx, query,
		provider.ProfileID,
		provider.BusinessName,
		provider.Description,
		provider.CategoryID,
		provider.HourlyRate,
		services,
	).Scan(&provider.ID, &provider.Rating, &provider.ReviewCount, &provider.IsVerified, &provider.CreatedAt, &provider.UpdatedAt)
}

func (r *providerRepository) Update(ctx context.Context, provider *domain.Provider) error {
	const query = `
        UPDATE providers SET business_name=$1, description=$2, category_id=$3, hourly_rate=$4, services=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	services := provider.Services
	if services == nil {
		services = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		provider.BusinessName,
		provider.Description,
		provider.CategoryID,
		provider.HourlyRate,
		services,
		provider.ID,
	).Scan(&provider.UpdatedAt)
}

func (r *providerRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	return r.fetchSingle(ctx, selectProviderSQL+` WHERE pv.id=$1`, id)
}

func (r *providerRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.Provider, error) {
	return r.fetchSingle(ctx, selectProviderSQL+` WHERE pv.profile_id=$1`, profileID)
}

func (r *providerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Provider, error) {
	provider, err := scanProvider(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (r *providerRepository) List(ctx context.Context, filter ProviderFilter) ([]domain.Provider, error) {
	var where whereBuilder
	if filter.CategoryID != nil {
		where.eq("pv.category_id", *filter.CategoryID)
	}
	if filter.Verified != nil {
		where.eq("pv.is_verified", *filter.Verified)
	}
	where.search(filter.Search, "pv.business_name", "pv.description", "pr.full_name")

	query := fmt.Sprintf(`%s WHERE %s ORDER BY pv.rating DESC, pv.created_at DESC %s`,
		selectProviderSQL, where.sql(), where.page(filter.Page))

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Provider{}
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *provider)
	}
	return result, rows.Err()
}

func scanProvider(row pgx.Row) (*domain.Provider, error) {
	var (
		provider domain.Provider
		profile  domain.Profile
	)
	if err := row.Scan(
		&provider.ID,
		&provider.ProfileID,
		&provider.BusinessName,
		&provider.Description,
		&provider.CategoryID,
		&provider.HourlyRate,
		&provider.Services,
		&provider.Rating,
		&provider.ReviewCount,
		&provider.IsVerified,
		&provider.CreatedAt,
		&provider.UpdatedAt,
		&profile.Email,
		&profile.FullName,
		&profile.Role,
		&profile.Location,
		&profile.AvatarURL,
	); err != nil {
		return nil, err
	}
	profile.ID = provider.ProfileID
	provider.Profile = &profile
	return &provider, nil
}
