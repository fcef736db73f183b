package usecase

import (
	"context"
	"testing"

	"jobboard/internal/pkg/validation"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionCreate_CurrencyFromTable(t *testing.T) {
	uc := NewRegionUsecase(&mockRegionRepo{})

	r, err := uc.Create(context.Background(), " Germany ", "")
	require.NoError(t, err)
	assert.Equal(t, "Germany", r.Name)
	assert.Equal(t, "EUR", r.Currency)

	r, err = uc.Create(context.Background(), "Lapland", "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", r.Currency)
}

func TestRegionCreate_Validation(t *testing.T) {
	uc := NewRegionUsecase(&mockRegionRepo{})

	_, err := uc.Create(context.Background(), "Atlantis", "")
	require.Error(t, err)
	assert.Contains(t, validation.Fields(err), "currency")

	_, err = uc.Create(context.Background(), "", "XXX")
	fields := validation.Fields(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "currency")
}

func TestRegion_NotFound(t *testing.T) {
	uc := NewRegionUsecase(&mockRegionRepo{})
	_, err := uc.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrRegionNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNamedUsecase_RequiresName(t *testing.T) {
	w := newWorld()
	uc := NewIndustryUsecase(w.industries)

	_, err := uc.Create(context.Background(), "   ")
	assert.True(t, errors.Is(err, validation.ErrValidation))

	got, err := uc.Get(context.Background(), w.industryID)
	require.NoError(t, err)
	assert.Equal(t, "Software", got.Name)
}
