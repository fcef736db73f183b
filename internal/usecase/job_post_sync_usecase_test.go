package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/jobpost"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func external(w *world, url, title string) jobpost.ExternalPosting {
	return jobpost.ExternalPosting{
		URL:             url,
		Title:           title,
		ContractType:    string(jobpost.ContractFullTime),
		ExperienceLevel: string(jobpost.LevelSenior),
		Currency:        "EUR",
		CompanyID:       w.companyID.String(),
		RoleIDs:         []string{w.roleID.String()},
		IndustryIDs:     []string{w.industryID.String()},
		RegionIDs:       []string{w.germanyID.String()},
	}
}

func items(ps ...jobpost.ExternalPosting) []jobpost.ExternalItem {
	out := make([]jobpost.ExternalItem, 0, len(ps))
	for _, p := range ps {
		out = append(out, jobpost.ExternalItem{Posting: p})
	}
	return out
}

func newSyncFixture(w *world, src *mockSource) (*JobPostSync, *mockPostRepo, *mockPusher) {
	repo := &mockPostRepo{exclusions: newMockExclusionRepo()}
	pusher := &mockPusher{}
	return NewJobPostSync(src, repo, w.refs, pusher, "postings", 2, nil), repo, pusher
}

func TestSync_TwiceOverSameSourceIsIdempotent(t *testing.T) {
	w := newWorld()
	src := &mockSource{pages: [][]jobpost.ExternalItem{
		items(external(w, "https://jobs.test/1", "one"), external(w, "https://jobs.test/2", "two")),
		items(external(w, "https://jobs.test/3", "three")),
	}}
	s, repo, _ := newSyncFixture(w, src)
	ctx := context.Background()

	first, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Pages)
	assert.Equal(t, 3, first.Created)
	assert.Equal(t, 3, first.Total)

	ids := map[string]string{}
	for _, p := range repo.items {
		ids[*p.URL] = p.ID.String()
	}

	second, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Updated)
	assert.Equal(t, int64(0), second.Deleted)
	assert.Equal(t, first.Total, second.Total)
	for _, p := range repo.items {
		assert.Equal(t, ids[*p.URL], p.ID.String())
	}
}

func TestSync_UpdatesChangedPostingInPlace(t *testing.T) {
	w := newWorld()
	src := &mockSource{pages: [][]jobpost.ExternalItem{items(external(w, "https://jobs.test/1", "Go dev"))}}
	s, repo, _ := newSyncFixture(w, src)
	ctx := context.Background()

	_, err := s.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	id := repo.items[0].ID

	changed := external(w, "https://jobs.test/1", "Senior Go dev")
	changed.MinSalary = intPtr(70000)
	src.pages = [][]jobpost.ExternalItem{items(changed)}

	report, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	require.Len(t, repo.items, 1)
	assert.Equal(t, id, repo.items[0].ID)
	assert.Equal(t, "Senior Go dev", repo.items[0].Title)
	assert.Equal(t, 70000, *repo.items[0].MinSalary)
}

func TestSync_DeletesPostingsMissingFromFullPass(t *testing.T) {
	w := newWorld()
	src := &mockSource{pages: [][]jobpost.ExternalItem{
		items(external(w, "https://jobs.test/1", "one"), external(w, "https://jobs.test/2", "two")),
	}}
	s, repo, _ := newSyncFixture(w, src)
	ctx := context.Background()
	_, err := s.Sync(ctx)
	require.NoError(t, err)

	manual := jobpost.JobPosting{Title: "admin created"}
	repo.items = append(repo.items, manual)

	src.pages = [][]jobpost.ExternalItem{items(external(w, "https://jobs.test/2", "two"))}
	report, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Deleted)
	assert.Equal(t, 2, report.Total)
	_, err = repo.FindByURL(ctx, "https://jobs.test/1")
	assert.Error(t, err)
}

func TestSync_FetchFailureSkipsStaleCleanup(t *testing.T) {
	w := newWorld()
	src := &mockSource{pages: [][]jobpost.ExternalItem{
		items(external(w, "https://jobs.test/1", "one")),
		items(external(w, "https://jobs.test/2", "two")),
	}}
	s, repo, pusher := newSyncFixture(w, src)
	ctx := context.Background()
	_, err := s.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, repo.items, 2)

	src.failAt = 1
	report, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, report.StaleCleanupSkipped)
	assert.Equal(t, int64(0), report.Deleted)
	assert.Len(t, repo.items, 2)
	assert.Equal(t, EventJobPostsSynced, pusher.events[len(pusher.events)-1].event)
}

func TestSync_RegionCurrencyWins(t *testing.T) {
	w := newWorld()
	jp := external(w, "https://jobs.test/jp", "Tokyo")
	jp.Currency = "USD"
	jp.RegionIDs = []string{w.japanID.String(), w.germanyID.String()}
	src := &mockSource{pages: [][]jobpost.ExternalItem{items(jp)}}
	s, repo, _ := newSyncFixture(w, src)

	_, err := s.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "JPY", repo.items[0].Currency)
}

func TestSync_InvalidItemsCountedAndKept(t *testing.T) {
	w := newWorld()
	src := &mockSource{pages: [][]jobpost.ExternalItem{items(external(w, "https://jobs.test/1", "one"))}}
	s, repo, _ := newSyncFixture(w, src)
	ctx := context.Background()
	_, err := s.Sync(ctx)
	require.NoError(t, err)

	broken := external(w, "https://jobs.test/1", "one")
	broken.RecruiterFirmID = w.firmID.String()
	undecodable := jobpost.ExternalItem{
		Posting: jobpost.ExternalPosting{URL: "https://jobs.test/2"},
		Err:     errors.New("cannot unmarshal"),
	}
	src.pages = [][]jobpost.ExternalItem{append(items(broken), undecodable)}

	report, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.Seen)
	assert.Equal(t, int64(0), report.Deleted)
	assert.Len(t, repo.items, 1)
}

func TestSync_UnknownReferenceFailsItem(t *testing.T) {
	w := newWorld()
	bad := external(w, "https://jobs.test/x", "x")
	bad.RoleIDs = []string{"00000000-0000-0000-0000-00000000abcd"}
	src := &mockSource{pages: [][]jobpost.ExternalItem{items(bad, external(w, "https://jobs.test/ok", "ok"))}}
	s, repo, _ := newSyncFixture(w, src)

	report, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Created)
	assert.Len(t, repo.items, 1)
}

func TestSync_RejectsOverlappingRun(t *testing.T) {
	w := newWorld()
	s, _, _ := newSyncFixture(w, &mockSource{})
	s.running.Store(true)

	_, err := s.Sync(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestSyncURL_CreatesThenUpdates(t *testing.T) {
	w := newWorld()
	src := &mockSource{pages: [][]jobpost.ExternalItem{items(external(w, "https://jobs.test/1", "one"))}}
	s, repo, _ := newSyncFixture(w, src)
	ctx := context.Background()

	created, err := s.SyncURL(ctx, "https://jobs.test/1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.SyncURL(ctx, "https://jobs.test/1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.items, 1)
}
