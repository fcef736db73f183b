package taxonomy

import (
	"time"

	"github.com/google/uuid"
)

type Industry struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// JobRole is a job title category ("Backend Engineer", "Nurse"). Search
// preferences refer to these as jobs.
type JobRole struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Region struct {
	ID        uuid.UUID
	Name      string
	Currency  string
	CreatedAt time.Time
}
