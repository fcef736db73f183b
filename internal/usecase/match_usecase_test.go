package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/exclusion"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/preference"
	"jobboard/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchingPosting(w *world, title string, minSalary *int, sizes ...string) jobpost.JobPosting {
	return jobpost.JobPosting{
		ID:              uuid.New(),
		Title:           title,
		ContractType:    jobpost.ContractFullTime,
		ExperienceLevel: jobpost.LevelSenior,
		MinSalary:       minSalary,
		Currency:        "EUR",
		CompanySizes:    sizes,
		CompanyID:       &w.companyID,
		RoleIDs:         []uuid.UUID{w.roleID},
		IndustryIDs:     []uuid.UUID{w.industryID},
		RegionIDs:       []uuid.UUID{w.germanyID},
	}
}

func seniorPreference(w *world, userID uuid.UUID) preference.SearchPreference {
	return preference.SearchPreference{
		UserID:           userID,
		ExperienceLevels: []string{string(jobpost.LevelSenior)},
		IndustryIDs:      []uuid.UUID{w.industryID},
		JobRoleIDs:       []uuid.UUID{w.roleID},
		RegionIDs:        []uuid.UUID{w.germanyID},
	}
}

func newMatchFixture(posts ...jobpost.JobPosting) (*MatchUsecase, *mockPostRepo, *mockPreferenceRepo, *mockExclusionRepo) {
	ex := newMockExclusionRepo()
	repo := &mockPostRepo{items: posts, exclusions: ex}
	prefs := &mockPreferenceRepo{prefs: map[uuid.UUID]preference.SearchPreference{}}
	return NewMatchUsecase(prefs, ex, repo, 10, nil), repo, prefs, ex
}

func titles(page pagination.Page[jobpost.JobPosting]) []string {
	out := make([]string, 0, len(page.Items))
	for _, p := range page.Items {
		out = append(out, p.Title)
	}
	return out
}

func TestGetMatches_EmptyPreferenceReturnsNothing(t *testing.T) {
	w := newWorld()
	uc, repo, _, _ := newMatchFixture(matchingPosting(w, "Go dev", nil))

	page, err := uc.GetMatches(context.Background(), uuid.New(), pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, repo.findCalls)
}

func TestGetMatches_StoredButEmptyPreferenceReturnsNothing(t *testing.T) {
	w := newWorld()
	uc, _, prefs, _ := newMatchFixture(matchingPosting(w, "Go dev", nil))
	userID := uuid.New()
	p := seniorPreference(w, userID)
	p.RegionIDs = nil
	prefs.prefs[userID] = p

	page, err := uc.GetMatches(context.Background(), userID, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestGetMatches_ExcludesSkippedSavedApplied(t *testing.T) {
	w := newWorld()
	a := matchingPosting(w, "skipped", nil)
	b := matchingPosting(w, "saved", nil)
	c := matchingPosting(w, "applied", nil)
	d := matchingPosting(w, "fresh", nil)
	uc, _, prefs, ex := newMatchFixture(a, b, c, d)

	userID := uuid.New()
	prefs.prefs[userID] = seniorPreference(w, userID)
	ctx := context.Background()
	_, _ = ex.Add(ctx, exclusion.Skipped, userID, a.ID)
	_, _ = ex.Add(ctx, exclusion.Saved, userID, b.ID)
	_, _ = ex.Add(ctx, exclusion.Applied, userID, c.ID)

	page, err := uc.GetMatches(ctx, userID, pagination.Params{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, titles(page))

	// another user still sees everything
	other := uuid.New()
	prefs.prefs[other] = seniorPreference(w, other)
	page, err = uc.GetMatches(ctx, other, pagination.Params{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
}

func TestGetMatches_MinSalary(t *testing.T) {
	w := newWorld()
	uc, _, prefs, _ := newMatchFixture(
		matchingPosting(w, "A", nil),
		matchingPosting(w, "B", intPtr(40000)),
		matchingPosting(w, "C", intPtr(60000)),
	)
	userID := uuid.New()
	p := seniorPreference(w, userID)
	p.MinSalary = intPtr(50000)
	prefs.prefs[userID] = p

	page, err := uc.GetMatches(context.Background(), userID, pagination.Params{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, titles(page))
}

func TestGetMatches_AdvancesPastFilteredPage(t *testing.T) {
	w := newWorld()
	first := matchingPosting(w, "first", nil)
	second := matchingPosting(w, "second", nil)
	uc, repo, prefs, ex := newMatchFixture(first, second)

	userID := uuid.New()
	prefs.prefs[userID] = seniorPreference(w, userID)
	_, _ = ex.Add(context.Background(), exclusion.Skipped, userID, first.ID)

	page, err := uc.GetMatches(context.Background(), userID, pagination.Params{Limit: 1, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, titles(page))
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 2, repo.findCalls)
}

func TestGetMatches_CompanySizeFilter(t *testing.T) {
	w := newWorld()
	uc, _, prefs, _ := newMatchFixture(
		matchingPosting(w, "untagged", nil),
		matchingPosting(w, "small", nil, "1-10"),
		matchingPosting(w, "huge", nil, "1000+"),
	)
	userID := uuid.New()
	p := seniorPreference(w, userID)
	p.CompanySizes = []string{"1-10", "11-50"}
	prefs.prefs[userID] = p

	page, err := uc.GetMatches(context.Background(), userID, pagination.Params{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"untagged", "small"}, titles(page))
}

func TestGetMatches_ContractTypeOnlyWhenSet(t *testing.T) {
	w := newWorld()
	partTime := matchingPosting(w, "part", nil)
	partTime.ContractType = jobpost.ContractPartTime
	uc, _, prefs, _ := newMatchFixture(matchingPosting(w, "full", nil), partTime)

	userID := uuid.New()
	p := seniorPreference(w, userID)
	prefs.prefs[userID] = p

	page, err := uc.GetMatches(context.Background(), userID, pagination.Params{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	p.ContractTypes = []string{string(jobpost.ContractPartTime)}
	prefs.prefs[userID] = p
	page, err = uc.GetMatches(context.Background(), userID, pagination.Params{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"part"}, titles(page))
}
