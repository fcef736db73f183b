package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindApplied     = "job_post_applied"
	KindTFAEnabled  = "tfa_enabled"
	KindTFADisabled = "tfa_disabled"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
