package usecase

import (
	"context"

	"jobboard/internal/domain/notification"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventNotification = "notification"

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase struct {
	repo   repository.NotificationRepository
	pusher Pusher
	log    *zap.SugaredLogger
}

func NewNotificationUsecase(repo repository.NotificationRepository, pusher Pusher, log *zap.SugaredLogger) *NotificationUsecase {
	if pusher == nil {
		pusher = nopPusher{}
	}
	return &NotificationUsecase{repo: repo, pusher: pusher, log: logger.Component(log, "notifications")}
}

// Notify persists the notification, then pushes it to the user's open sockets.
func (u *NotificationUsecase) Notify(ctx context.Context, userID uuid.UUID, kind, title, body string) (notification.Notification, error) {
	n, err := u.repo.Create(ctx, notification.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		u.log.Warnw("store notification", logger.FieldUserID, userID, logger.FieldError, err)
		return notification.Notification{}, err
	}
	u.pusher.SendToUser(userID, EventNotification, n)
	return n, nil
}

func (u *NotificationUsecase) List(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[notification.Notification], error) {
	return u.repo.ListByUser(ctx, userID, p)
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return translate(u.repo.MarkRead(ctx, id, userID), ErrNotificationNotFound)
}
