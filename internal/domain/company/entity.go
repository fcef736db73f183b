package company

import (
	"time"

	"github.com/google/uuid"
)

var Sizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}

func IsValidSize(s string) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

type Company struct {
	ID          uuid.UUID
	Name        string
	Website     *string
	Description *string
	Size        *string
	LogoFileKey *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SizeTags is the company-size tag set carried over to postings the company owns.
func (c Company) SizeTags() []string {
	if c.Size == nil || *c.Size == "" {
		return nil
	}
	return []string{*c.Size}
}
