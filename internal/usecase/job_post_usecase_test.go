package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/pkg/validation"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postInput(w *world) jobpost.Input {
	return jobpost.Input{
		Title:           "Platform Engineer",
		ContractType:    jobpost.ContractFullTime,
		ExperienceLevel: jobpost.LevelSenior,
		CompanyID:       &w.companyID,
		RoleIDs:         []uuid.UUID{w.roleID},
		IndustryIDs:     []uuid.UUID{w.industryID},
		RegionIDs:       []uuid.UUID{w.germanyID},
	}
}

func newJobPostFixture(w *world) (*JobPostUsecase, *mockPostRepo) {
	repo := &mockPostRepo{exclusions: newMockExclusionRepo()}
	return NewJobPostUsecase(repo, w.refs), repo
}

func TestJobPostCreate_OwnerMustBeExactlyOne(t *testing.T) {
	w := newWorld()
	uc, repo := newJobPostFixture(w)

	both := postInput(w)
	both.RecruiterFirmID = &w.firmID
	_, err := uc.Create(context.Background(), both)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jobpost.ErrOwnerConflict))
	assert.True(t, errors.Is(err, validation.ErrValidation))

	neither := postInput(w)
	neither.CompanyID = nil
	_, err = uc.Create(context.Background(), neither)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jobpost.ErrOwnerConflict))
	assert.Contains(t, validation.Fields(err), "companyId")

	assert.Empty(t, repo.items)
}

func TestJobPostCreate_FillsCurrencyAndCompanySize(t *testing.T) {
	w := newWorld()
	uc, _ := newJobPostFixture(w)

	jp, err := uc.Create(context.Background(), postInput(w))
	require.NoError(t, err)
	assert.Equal(t, "EUR", jp.Currency)
	assert.Equal(t, []string{"51-200"}, jp.CompanySizes)
	assert.Equal(t, jobpost.DefaultExpirationDays, jp.ExpirationDays)
}

func TestJobPostCreate_ExplicitCurrencyKept(t *testing.T) {
	w := newWorld()
	uc, _ := newJobPostFixture(w)
	in := postInput(w)
	in.Currency = "chf"

	jp, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "CHF", jp.Currency)
}

func TestJobPostCreate_CurrencyRequiredOutsideTable(t *testing.T) {
	w := newWorld()
	uc, _ := newJobPostFixture(w)
	in := postInput(w)
	in.RegionIDs = []uuid.UUID{w.nowhereID}

	_, err := uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, validation.Fields(err), "currency")
}

func TestJobPostCreate_UnknownReferences(t *testing.T) {
	w := newWorld()
	uc, _ := newJobPostFixture(w)

	in := postInput(w)
	missing := uuid.New()
	in.CompanyID = &missing
	_, err := uc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, jobpost.ErrCompanyNotFound))

	in = postInput(w)
	in.CompanyID = nil
	in.RecruiterFirmID = &missing
	_, err = uc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, jobpost.ErrRecruiterFirmNotFound))

	in = postInput(w)
	in.IndustryIDs = append(in.IndustryIDs, missing)
	_, err = uc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, jobpost.ErrIndustryNotFound))
}

func TestJobPostUpdateAndDelete_NotFound(t *testing.T) {
	w := newWorld()
	uc, _ := newJobPostFixture(w)

	_, err := uc.Update(context.Background(), uuid.New(), postInput(w))
	assert.True(t, errors.Is(err, ErrNotFound))

	err = uc.Delete(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, jobpost.ErrNotFound))
}
