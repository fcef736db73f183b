package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/notification"
	"jobboard/internal/pkg/pagination"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[notification.Notification], error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, kind, title, body, read_at, created_at`

func scanNotification(row database.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.ReadAt, &n.CreatedAt)
	return n, err
}

func scanNotificationRows(rows database.Rows) (notification.Notification, error) {
	return scanNotification(rows)
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return scanNotification(r.db.QueryRow(ctx,
		`INSERT INTO notifications (id, user_id, kind, title, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+notificationColumns,
		n.ID, n.UserID, n.Kind, n.Title, n.Body,
	))
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[notification.Notification], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id`,
		[]any{userID}, p, scanNotificationRows,
	)
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`UPDATE notifications SET read_at = COALESCE(read_at, now()) WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
}
