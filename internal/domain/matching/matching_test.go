package matching

import (
	"context"
	"testing"

	"jobboard/internal/domain/exclusion"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/preference"
	"jobboard/internal/pkg/pagination"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCriteria_EmptyPreferenceIsUnsatisfiable(t *testing.T) {
	c := BuildCriteria(preference.SearchPreference{UserID: uuid.New()})

	assert.True(t, c.Unsatisfiable())
	assert.NotNil(t, c.IndustryIDs)
	assert.NotNil(t, c.RoleIDs)
	assert.NotNil(t, c.RegionIDs)
	assert.Empty(t, c.ContractTypes)
}

func TestBuildCriteria_CarriesPreference(t *testing.T) {
	floor := 50000
	p := preference.SearchPreference{
		ContractTypes:    []string{"full_time"},
		ExperienceLevels: []string{"senior"},
		IndustryIDs:      []uuid.UUID{uuid.New()},
		JobRoleIDs:       []uuid.UUID{uuid.New()},
		RegionIDs:        []uuid.UUID{uuid.New()},
		MinSalary:        &floor,
	}

	c := BuildCriteria(p)
	assert.False(t, c.Unsatisfiable())
	assert.Equal(t, p.JobRoleIDs, c.RoleIDs)
	require.NotNil(t, c.MinSalary)
	assert.Equal(t, 50000, *c.MinSalary)
}

func TestCompanySizeCompatible(t *testing.T) {
	cases := []struct {
		name      string
		preferred []string
		tags      []string
		want      bool
	}{
		{"no preference", nil, []string{"1-10"}, true},
		{"untagged posting", []string{"1-10"}, nil, true},
		{"overlap", []string{"1-10", "11-50"}, []string{"11-50"}, true},
		{"no overlap", []string{"1-10"}, []string{"1000+"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompanySizeCompatible(tc.preferred, tc.tags))
		})
	}
}

func TestKeep_DropsExcludedPostings(t *testing.T) {
	skipped, saved, applied, fresh := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	keep := Keep(exclusion.Sets{
		Skipped: exclusion.NewIDSet(skipped),
		Saved:   exclusion.NewIDSet(saved),
		Applied: exclusion.NewIDSet(applied),
	}, nil)

	assert.False(t, keep(jobpost.JobPosting{ID: skipped}))
	assert.False(t, keep(jobpost.JobPosting{ID: saved}))
	assert.False(t, keep(jobpost.JobPosting{ID: applied}))
	assert.True(t, keep(jobpost.JobPosting{ID: fresh}))
}

type pagedSource struct {
	pages [][]int
	calls []int
}

func (s *pagedSource) fetch(_ context.Context, page int) (pagination.Page[int], error) {
	s.calls = append(s.calls, page)
	var items []int
	if page >= 1 && page <= len(s.pages) {
		items = s.pages[page-1]
	}
	p := pagination.NewPage(items, len(s.pages)*2, pagination.Params{Limit: 2, Page: page})
	return p, nil
}

func even(n int) bool { return n%2 == 0 }

func TestAdvancePages_SkipsFullyFilteredPages(t *testing.T) {
	src := &pagedSource{pages: [][]int{{1, 3}, {5, 7}, {9, 10}}}

	got, err := AdvancePages(context.Background(), 1, 0, src.fetch, even)
	require.NoError(t, err)

	assert.Equal(t, []int{10}, got.Items)
	assert.Equal(t, 1, got.Meta.ItemCount)
	assert.Equal(t, 3, got.Meta.CurrentPage)
	assert.Equal(t, []int{1, 2, 3}, src.calls)
}

func TestAdvancePages_ReturnsEmptyLastPageWhenExhausted(t *testing.T) {
	src := &pagedSource{pages: [][]int{{1, 3}, {5, 7}}}

	got, err := AdvancePages(context.Background(), 1, 0, src.fetch, even)
	require.NoError(t, err)

	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Meta.ItemCount)
	assert.Equal(t, 2, got.Meta.CurrentPage)
	assert.Equal(t, []int{1, 2}, src.calls)
}

func TestAdvancePages_StopsAtScanCeiling(t *testing.T) {
	src := &pagedSource{pages: [][]int{{1}, {3}, {5}, {7}, {8}}}

	got, err := AdvancePages(context.Background(), 1, 2, src.fetch, even)
	require.NoError(t, err)

	assert.Empty(t, got.Items)
	assert.Equal(t, []int{1, 2}, src.calls)
}

func TestAdvancePages_PropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(context.Context, int) (pagination.Page[int], error) {
		return pagination.Page[int]{}, boom
	}

	_, err := AdvancePages(context.Background(), 1, 0, fetch, even)
	assert.ErrorIs(t, err, boom)
}

func TestAdvancePages_EmptyCandidateSetFetchesOnce(t *testing.T) {
	src := &pagedSource{}

	got, err := AdvancePages(context.Background(), 0, 0, src.fetch, even)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, []int{1}, src.calls)
}
