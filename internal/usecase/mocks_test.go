package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/exclusion"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/preference"
	"jobboard/internal/domain/recruiter"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// mockPostRepo keeps postings in insertion order.
type mockPostRepo struct {
	items      []jobpost.JobPosting
	exclusions *mockExclusionRepo
	findCalls  int
}

func (m *mockPostRepo) index(id uuid.UUID) int {
	for i, p := range m.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *mockPostRepo) FindByID(_ context.Context, id uuid.UUID) (jobpost.JobPosting, error) {
	if i := m.index(id); i >= 0 {
		return m.items[i], nil
	}
	return jobpost.JobPosting{}, repository.ErrNotFound
}

func (m *mockPostRepo) FindByURL(_ context.Context, url string) (jobpost.JobPosting, error) {
	for _, p := range m.items {
		if p.URL != nil && *p.URL == url {
			return p, nil
		}
	}
	return jobpost.JobPosting{}, repository.ErrNotFound
}

func (m *mockPostRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.index(id) >= 0, nil
}

func (m *mockPostRepo) List(_ context.Context, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	return paginate(m.items, p), nil
}

func (m *mockPostRepo) FindMatching(_ context.Context, c matching.Criteria, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	m.findCalls++
	var out []jobpost.JobPosting
	for _, jp := range m.items {
		if matchesCriteria(jp, c) {
			out = append(out, jp)
		}
	}
	return paginate(out, p), nil
}

func (m *mockPostRepo) ListByExclusion(_ context.Context, userID uuid.UUID, kind exclusion.Kind, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	sets, _ := m.exclusions.Sets(context.Background(), userID)
	set := map[exclusion.Kind]exclusion.IDSet{
		exclusion.Skipped: sets.Skipped,
		exclusion.Saved:   sets.Saved,
		exclusion.Applied: sets.Applied,
	}[kind]
	var out []jobpost.JobPosting
	for _, jp := range m.items {
		if set.Has(jp.ID) {
			out = append(out, jp)
		}
	}
	return paginate(out, p), nil
}

func (m *mockPostRepo) Create(_ context.Context, in jobpost.Input) (jobpost.JobPosting, error) {
	jp := fromInput(uuid.New(), in)
	m.items = append(m.items, jp)
	return jp, nil
}

func (m *mockPostRepo) Update(_ context.Context, id uuid.UUID, in jobpost.Input) (jobpost.JobPosting, error) {
	i := m.index(id)
	if i < 0 {
		return jobpost.JobPosting{}, repository.ErrNotFound
	}
	jp := fromInput(id, in)
	jp.CreatedAt = m.items[i].CreatedAt
	m.items[i] = jp
	return jp, nil
}

func (m *mockPostRepo) Delete(_ context.Context, id uuid.UUID) error {
	i := m.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *mockPostRepo) DeleteStale(_ context.Context, seen []string) (int64, error) {
	keep := make(map[string]struct{}, len(seen))
	for _, u := range seen {
		keep[u] = struct{}{}
	}
	var (
		out     []jobpost.JobPosting
		deleted int64
	)
	for _, jp := range m.items {
		if jp.URL != nil {
			if _, ok := keep[*jp.URL]; !ok {
				deleted++
				continue
			}
		}
		out = append(out, jp)
	}
	m.items = out
	return deleted, nil
}

func (m *mockPostRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var (
		out     []jobpost.JobPosting
		deleted int64
	)
	for _, jp := range m.items {
		if jp.ExpiresAt().Before(now) {
			deleted++
			continue
		}
		out = append(out, jp)
	}
	m.items = out
	return deleted, nil
}

func (m *mockPostRepo) Count(context.Context) (int, error) {
	return len(m.items), nil
}

func fromInput(id uuid.UUID, in jobpost.Input) jobpost.JobPosting {
	return jobpost.JobPosting{
		ID:              id,
		Title:           in.Title,
		URL:             in.URL,
		ContractType:    in.ContractType,
		ExperienceLevel: in.ExperienceLevel,
		MinSalary:       in.MinSalary,
		MaxSalary:       in.MaxSalary,
		Currency:        in.Currency,
		Description:     in.Description,
		Languages:       in.Languages,
		CompanySizes:    in.CompanySizes,
		ExpirationDays:  in.ExpirationDays,
		CompanyID:       in.CompanyID,
		RecruiterFirmID: in.RecruiterFirmID,
		RoleIDs:         in.RoleIDs,
		IndustryIDs:     in.IndustryIDs,
		RegionIDs:       in.RegionIDs,
		CreatedAt:       time.Now(),
	}
}

func matchesCriteria(jp jobpost.JobPosting, c matching.Criteria) bool {
	if len(c.ContractTypes) > 0 && !containsString(c.ContractTypes, string(jp.ContractType)) {
		return false
	}
	if !containsString(c.ExperienceLevels, string(jp.ExperienceLevel)) {
		return false
	}
	if !overlaps(c.IndustryIDs, jp.IndustryIDs) || !overlaps(c.RoleIDs, jp.RoleIDs) || !overlaps(c.RegionIDs, jp.RegionIDs) {
		return false
	}
	if c.MinSalary != nil && jp.MinSalary != nil && *jp.MinSalary < *c.MinSalary {
		return false
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(a, b []uuid.UUID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func paginate[T any](all []T, p pagination.Params) pagination.Page[T] {
	p = p.Normalize()
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return pagination.NewPage(append([]T(nil), all[start:end]...), len(all), p)
}

type mockExclusionRepo struct {
	sets map[uuid.UUID]exclusion.Sets
}

func newMockExclusionRepo() *mockExclusionRepo {
	return &mockExclusionRepo{sets: map[uuid.UUID]exclusion.Sets{}}
}

func (m *mockExclusionRepo) get(userID uuid.UUID) exclusion.Sets {
	s, ok := m.sets[userID]
	if !ok {
		s = exclusion.Sets{Skipped: exclusion.NewIDSet(), Saved: exclusion.NewIDSet(), Applied: exclusion.NewIDSet()}
		m.sets[userID] = s
	}
	return s
}

func (m *mockExclusionRepo) set(kind exclusion.Kind, userID uuid.UUID) exclusion.IDSet {
	s := m.get(userID)
	switch kind {
	case exclusion.Skipped:
		return s.Skipped
	case exclusion.Saved:
		return s.Saved
	default:
		return s.Applied
	}
}

func (m *mockExclusionRepo) Sets(_ context.Context, userID uuid.UUID) (exclusion.Sets, error) {
	return m.get(userID), nil
}

func (m *mockExclusionRepo) Exists(_ context.Context, kind exclusion.Kind, userID, postID uuid.UUID) (bool, error) {
	return m.set(kind, userID).Has(postID), nil
}

func (m *mockExclusionRepo) Add(_ context.Context, kind exclusion.Kind, userID, postID uuid.UUID) (bool, error) {
	s := m.set(kind, userID)
	if s.Has(postID) {
		return false, nil
	}
	s[postID] = struct{}{}
	return true, nil
}

func (m *mockExclusionRepo) Remove(_ context.Context, kind exclusion.Kind, userID, postID uuid.UUID) error {
	delete(m.set(kind, userID), postID)
	return nil
}

type mockPreferenceRepo struct {
	prefs map[uuid.UUID]preference.SearchPreference
}

func (m *mockPreferenceRepo) FindByUserID(_ context.Context, userID uuid.UUID) (preference.SearchPreference, error) {
	p, ok := m.prefs[userID]
	if !ok {
		return preference.SearchPreference{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockPreferenceRepo) Upsert(_ context.Context, p preference.SearchPreference) (preference.SearchPreference, error) {
	if m.prefs == nil {
		m.prefs = map[uuid.UUID]preference.SearchPreference{}
	}
	m.prefs[p.UserID] = p
	return p, nil
}

type mockCompanyRepo struct {
	items map[uuid.UUID]company.Company
}

func (m *mockCompanyRepo) List(_ context.Context, p pagination.Params) (pagination.Page[company.Company], error) {
	var all []company.Company
	for _, c := range m.items {
		all = append(all, c)
	}
	return paginate(all, p), nil
}

func (m *mockCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	c, ok := m.items[id]
	if !ok {
		return company.Company{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCompanyRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockCompanyRepo) Create(_ context.Context, in repository.CompanyInput) (company.Company, error) {
	c := company.Company{ID: uuid.New(), Name: in.Name, Website: in.Website, Description: in.Description, Size: in.Size}
	if m.items == nil {
		m.items = map[uuid.UUID]company.Company{}
	}
	m.items[c.ID] = c
	return c, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, id uuid.UUID, in repository.CompanyInput) (company.Company, error) {
	c, ok := m.items[id]
	if !ok {
		return company.Company{}, repository.ErrNotFound
	}
	c.Name, c.Website, c.Description, c.Size = in.Name, in.Website, in.Description, in.Size
	m.items[id] = c
	return c, nil
}

func (m *mockCompanyRepo) SetLogoFileKey(_ context.Context, id uuid.UUID, key *string) error {
	c, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LogoFileKey = key
	m.items[id] = c
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockFirmRepo struct {
	items map[uuid.UUID]recruiter.Firm
}

func (m *mockFirmRepo) List(_ context.Context, p pagination.Params) (pagination.Page[recruiter.Firm], error) {
	var all []recruiter.Firm
	for _, f := range m.items {
		all = append(all, f)
	}
	return paginate(all, p), nil
}

func (m *mockFirmRepo) FindByID(_ context.Context, id uuid.UUID) (recruiter.Firm, error) {
	f, ok := m.items[id]
	if !ok {
		return recruiter.Firm{}, repository.ErrNotFound
	}
	return f, nil
}

func (m *mockFirmRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockFirmRepo) Create(context.Context, repository.RecruiterFirmInput) (recruiter.Firm, error) {
	return recruiter.Firm{}, errors.New("not implemented")
}

func (m *mockFirmRepo) Update(context.Context, uuid.UUID, repository.RecruiterFirmInput) (recruiter.Firm, error) {
	return recruiter.Firm{}, errors.New("not implemented")
}

func (m *mockFirmRepo) Delete(context.Context, uuid.UUID) error {
	return errors.New("not implemented")
}

// mockNamedRepo serves industries and roles.
type mockNamedRepo[T any] struct {
	ids map[uuid.UUID]T
}

func (m *mockNamedRepo[T]) List(_ context.Context, p pagination.Params) (pagination.Page[T], error) {
	var all []T
	for _, v := range m.ids {
		all = append(all, v)
	}
	return paginate(all, p), nil
}

func (m *mockNamedRepo[T]) FindByID(_ context.Context, id uuid.UUID) (T, error) {
	v, ok := m.ids[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return v, nil
}

func (m *mockNamedRepo[T]) FindByIDs(_ context.Context, ids []uuid.UUID) ([]T, error) {
	out := []T{}
	for _, id := range ids {
		if v, ok := m.ids[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockNamedRepo[T]) Create(context.Context, string) (T, error) {
	var zero T
	return zero, errors.New("not implemented")
}

func (m *mockNamedRepo[T]) Update(context.Context, uuid.UUID, string) (T, error) {
	var zero T
	return zero, errors.New("not implemented")
}

func (m *mockNamedRepo[T]) Delete(context.Context, uuid.UUID) error {
	return errors.New("not implemented")
}

type mockRegionRepo struct {
	items map[uuid.UUID]taxonomy.Region
}

func (m *mockRegionRepo) List(_ context.Context, p pagination.Params) (pagination.Page[taxonomy.Region], error) {
	var all []taxonomy.Region
	for _, r := range m.items {
		all = append(all, r)
	}
	return paginate(all, p), nil
}

func (m *mockRegionRepo) FindByID(_ context.Context, id uuid.UUID) (taxonomy.Region, error) {
	r, ok := m.items[id]
	if !ok {
		return taxonomy.Region{}, repository.ErrNotFound
	}
	return r, nil
}

func (m *mockRegionRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]taxonomy.Region, error) {
	out := []taxonomy.Region{}
	for _, id := range ids {
		if r, ok := m.items[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegionRepo) Create(_ context.Context, name, currency string) (taxonomy.Region, error) {
	r := taxonomy.Region{ID: uuid.New(), Name: name, Currency: currency}
	if m.items == nil {
		m.items = map[uuid.UUID]taxonomy.Region{}
	}
	m.items[r.ID] = r
	return r, nil
}

func (m *mockRegionRepo) Update(_ context.Context, id uuid.UUID, name, currency string) (taxonomy.Region, error) {
	if _, ok := m.items[id]; !ok {
		return taxonomy.Region{}, repository.ErrNotFound
	}
	r := taxonomy.Region{ID: id, Name: name, Currency: currency}
	m.items[id] = r
	return r, nil
}

func (m *mockRegionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// mockSource serves fixed pages; failAt makes the scan of that page index fail.
type mockSource struct {
	pages  [][]jobpost.ExternalItem
	failAt int
}

func (m *mockSource) Scan(_ context.Context, _ string, _ int32, cursor string) (jobpost.ExternalPage, error) {
	i := 0
	if cursor != "" {
		for i < len(m.pages) && cursorFor(i) != cursor {
			i++
		}
	}
	if m.failAt > 0 && i == m.failAt {
		return jobpost.ExternalPage{}, errors.New("throughput exceeded")
	}
	if i >= len(m.pages) {
		return jobpost.ExternalPage{}, nil
	}
	page := jobpost.ExternalPage{Items: m.pages[i]}
	if i+1 < len(m.pages) {
		page.Next = cursorFor(i + 1)
	}
	return page, nil
}

func (m *mockSource) GetItem(_ context.Context, _ string, url string) (jobpost.ExternalPosting, error) {
	for _, page := range m.pages {
		for _, it := range page {
			if it.Posting.URL == url {
				return it.Posting, nil
			}
		}
	}
	return jobpost.ExternalPosting{}, errors.New("item not found")
}

func cursorFor(i int) string {
	return "page-" + string(rune('a'+i))
}

type mockLocker struct {
	held     map[string]bool
	unlocked []string
	err      error
}

func (m *mockLocker) Lock(_ context.Context, key string, _ time.Duration) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.held == nil {
		m.held = map[string]bool{}
	}
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *mockLocker) Unlock(_ context.Context, key string) error {
	delete(m.held, key)
	m.unlocked = append(m.unlocked, key)
	return nil
}

type pushed struct {
	userID uuid.UUID
	event  string
}

type mockPusher struct {
	mu     sync.Mutex
	events []pushed
}

func (m *mockPusher) SendToUser(userID uuid.UUID, event string, _ any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, pushed{userID: userID, event: event})
}

func (m *mockPusher) Broadcast(event string, _ any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, pushed{event: event})
}

type mockNotificationRepo struct {
	items []notification.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	m.items = append(m.items, n)
	return n, nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[notification.Notification], error) {
	var out []notification.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return paginate(out, p), nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for i, n := range m.items {
		if n.ID == id && n.UserID == userID {
			now := time.Now()
			m.items[i].ReadAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockStorage struct {
	objects map[string]int64
	deleted []string
}

func (m *mockStorage) Put(_ context.Context, key, _ string, body io.Reader, size int64) error {
	if m.objects == nil {
		m.objects = map[string]int64{}
	}
	_, _ = io.Copy(io.Discard, body)
	m.objects[key] = size
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.test/" + key + "?sig=x", nil
}

// world is a small reference dataset shared by the matching and sync tests.
type world struct {
	companyID  uuid.UUID
	firmID     uuid.UUID
	industryID uuid.UUID
	roleID     uuid.UUID
	germanyID  uuid.UUID
	japanID    uuid.UUID
	nowhereID  uuid.UUID

	companies  *mockCompanyRepo
	firms      *mockFirmRepo
	industries *mockNamedRepo[taxonomy.Industry]
	roles      *mockNamedRepo[taxonomy.JobRole]
	regions    *mockRegionRepo
	refs       *References
}

func newWorld() *world {
	w := &world{
		companyID:  uuid.New(),
		firmID:     uuid.New(),
		industryID: uuid.New(),
		roleID:     uuid.New(),
		germanyID:  uuid.New(),
		japanID:    uuid.New(),
		nowhereID:  uuid.New(),
	}
	size := "51-200"
	w.companies = &mockCompanyRepo{items: map[uuid.UUID]company.Company{
		w.companyID: {ID: w.companyID, Name: "Acme", Size: &size},
	}}
	w.firms = &mockFirmRepo{items: map[uuid.UUID]recruiter.Firm{
		w.firmID: {ID: w.firmID, Name: "Hunters"},
	}}
	w.industries = &mockNamedRepo[taxonomy.Industry]{ids: map[uuid.UUID]taxonomy.Industry{
		w.industryID: {ID: w.industryID, Name: "Software"},
	}}
	w.roles = &mockNamedRepo[taxonomy.JobRole]{ids: map[uuid.UUID]taxonomy.JobRole{
		w.roleID: {ID: w.roleID, Name: "Backend Engineer"},
	}}
	w.regions = &mockRegionRepo{items: map[uuid.UUID]taxonomy.Region{
		w.germanyID: {ID: w.germanyID, Name: "Germany", Currency: "EUR"},
		w.japanID:   {ID: w.japanID, Name: "Japan", Currency: "JPY"},
		w.nowhereID: {ID: w.nowhereID, Name: "Atlantis", Currency: "USD"},
	}}
	w.refs = NewReferences(w.companies, w.firms, w.roles, w.industries, w.regions)
	return w
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
