package exclusion

import (
	"github.com/google/uuid"
)

// Kind identifies one of the per-user posting lists whose members are never
// offered as matches again.
type Kind string

const (
	Skipped Kind = "skipped"
	Saved   Kind = "saved"
	Applied Kind = "applied"
)

var Kinds = []Kind{Skipped, Saved, Applied}

func (k Kind) Valid() bool {
	switch k {
	case Skipped, Saved, Applied:
		return true
	}
	return false
}

func (k Kind) Table() string {
	switch k {
	case Skipped:
		return "skipped_job_postings"
	case Saved:
		return "saved_job_postings"
	case Applied:
		return "applied_job_postings"
	}
	return ""
}

type IDSet map[uuid.UUID]struct{}

func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Sets holds the three exclusion lists of one user.
type Sets struct {
	Skipped IDSet
	Saved   IDSet
	Applied IDSet
}

func (s Sets) Contains(id uuid.UUID) bool {
	return s.Skipped.Has(id) || s.Saved.Has(id) || s.Applied.Has(id)
}
