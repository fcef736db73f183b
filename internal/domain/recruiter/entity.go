package recruiter

import (
	"time"

	"github.com/google/uuid"
)

type Firm struct {
	ID          uuid.UUID
	Name        string
	Website     *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
