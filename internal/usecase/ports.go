package usecase

import (
	"context"
	"io"
	"time"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/notification"

	"github.com/google/uuid"
)

// Locker is a best-effort distributed mutex.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type FileStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// PostingSource is the external store postings are synchronized from.
type PostingSource interface {
	Scan(ctx context.Context, table string, limit int32, cursor string) (jobpost.ExternalPage, error)
	GetItem(ctx context.Context, table, url string) (jobpost.ExternalPosting, error)
}

// Pusher delivers realtime events to connected clients.
type Pusher interface {
	SendToUser(userID uuid.UUID, event string, payload any)
	Broadcast(event string, payload any)
}

type nopPusher struct{}

func (nopPusher) SendToUser(uuid.UUID, string, any) {}
func (nopPusher) Broadcast(string, any)             {}

// Notifier records a notification for a user and pushes it live.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind, title, body string) (notification.Notification, error)
}

// Upload is a file received over HTTP.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
