package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serviceconnect/api/internal/domain"
)

// MessageFilter narrows a participant's messages.
type MessageFilter struct {
	ParticipantID string
	WithID        *string
	ProjectID     *string
	Page          Page
}

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context, filter MessageFilter) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository constructs repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

const selectMessageSQL = `
        SELECT id, sender_id, recipient_id, project_id, content, is_read, created_at
        FROM messages`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (sender_id, recipient_id, project_id, content)
        VALUES ($1,$2,$3,$4)
        RETURNING id, is_read, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.SenderID,
		msg.RecipientID,
		msg.ProjectID,
		msg.Content,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	return scanMessage(r.pool.QueryRow(ctx, selectMessageSQL+` WHERE id=$1`, id))
}

func (r *messageRepository) List(ctx context.Context, filter MessageFilter) ([]domain.Message, error) {
	var where whereBuilder
	where.raw("(sender_id=$%[1]d OR recipient_id=$%[1]d)", filter.ParticipantID)
	if filter.WithID != nil {
		where.raw("(sender_id=$%[1]d OR recipient_id=$%[1]d)", *filter.WithID)
	}
	if filter.ProjectID != nil {
		where.eq("project_id", *filter.ProjectID)
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at ASC %s`,
		selectMessageSQL, where.sql(), where.page(filter.Page))

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE messages SET is_read=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	if err := row.Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.RecipientID,
		&msg.ProjectID,
		&msg.Content,
		&msg.IsRead,
		&msg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}
