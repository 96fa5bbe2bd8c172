package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serviceconnect/api/internal/domain"
)

// ProjectFilter captures project listing parameters.
type ProjectFilter struct {
	ClientID   *string
	CategoryID *string
	Statuses   []domain.ProjectStatus
	Search     string
	Page       Page
}

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const selectProjectSQL = `
        SELECT id, client_id, category_id, title, description, budget_min, budget_max,
               location, deadline, status, created_at, updated_at
        FROM projects`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (client_id, category_id, title, description, budget_min, budget_max, location, deadline, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.ClientID,
		project.CategoryID,
		project.Title,
		project.Description,
		project.BudgetMin,
		project.BudgetMax,
		project.Location,
		project.Deadline,
		project.Status,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET category_id=$1, title=$2, description=$3, budget_min=$4, budget_max=$5,
            location=$6, deadline=$7, status=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		project.CategoryID,
		project.Title,
		project.Description,
		project.BudgetMin,
		project.BudgetMax,
		project.Location,
		project.Deadline,
		project.Status,
		project.ID,
	).Scan(&project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, selectProjectSQL+` WHERE id=$1`, id))
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	var where whereBuilder
	if filter.ClientID != nil {
		where.eq("client_id", *filter.ClientID)
	}
	if filter.CategoryID != nil {
		where.eq("category_id", *filter.CategoryID)
	}
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}
	where.in("status", statuses)
	where.search(filter.Search, "title", "description")

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC %s`,
		selectProjectSQL, where.sql(), where.page(filter.Page))

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.ClientID,
		&project.CategoryID,
		&project.Title,
		&project.Description,
		&project.BudgetMin,
		&project.BudgetMax,
		&project.Location,
		&project.Deadline,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}
