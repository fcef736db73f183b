package usecase

import (
	"context"
	"sync/atomic"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	DefaultSyncPageSize int32 = 100
	EventJobPostsSynced       = "job_posts_synced"
)

var ErrSyncInProgress = errors.New("job post sync already running")

type SyncReport struct {
	Pages   int   `json:"pages"`
	Seen    int   `json:"seen"`
	Created int   `json:"created"`
	Updated int   `json:"updated"`
	Failed  int   `json:"failed"`
	Deleted int64 `json:"deleted"`
	Total   int   `json:"total"`

	// StaleCleanupSkipped is set when a page fetch failed; postings missing
	// from an incomplete pass are kept.
	StaleCleanupSkipped bool `json:"staleCleanupSkipped"`
}

// JobPostSync reconciles the external posting table into Postgres by url.
type JobPostSync struct {
	source   PostingSource
	posts    repository.JobPostingRepository
	refs     *References
	pusher   Pusher
	table    string
	pageSize int32
	log      *zap.SugaredLogger

	running atomic.Bool
}

func NewJobPostSync(
	source PostingSource,
	posts repository.JobPostingRepository,
	refs *References,
	pusher Pusher,
	table string,
	pageSize int32,
	log *zap.SugaredLogger,
) *JobPostSync {
	if pageSize <= 0 {
		pageSize = DefaultSyncPageSize
	}
	if pusher == nil {
		pusher = nopPusher{}
	}
	return &JobPostSync{
		source:   source,
		posts:    posts,
		refs:     refs,
		pusher:   pusher,
		table:    table,
		pageSize: pageSize,
		log:      logger.Component(log, "job_post_sync"),
	}
}

// Sync runs one full pass. Item failures are counted and logged; a page fetch
// failure ends paging and disables stale deletion for this pass.
func (s *JobPostSync) Sync(ctx context.Context) (SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return SyncReport{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	var (
		report      SyncReport
		cursor      string
		fetchFailed bool
		seen        = make(map[string]struct{})
	)

	for {
		page, err := s.source.Scan(ctx, s.table, s.pageSize, cursor)
		if err != nil {
			s.log.Errorw("fetch page failed", logger.FieldPage, report.Pages+1, logger.FieldError, err)
			fetchFailed = true
			break
		}
		report.Pages++

		for _, item := range page.Items {
			if item.Posting.URL != "" {
				seen[item.Posting.URL] = struct{}{}
			}
			if item.Err != nil {
				report.Failed++
				s.log.Warnw("skip undecodable item", logger.FieldSourceURL, item.Posting.URL, logger.FieldError, item.Err)
				continue
			}
			created, err := s.upsert(ctx, item.Posting)
			if err != nil {
				report.Failed++
				s.log.Warnw("skip item", logger.FieldSourceURL, item.Posting.URL, logger.FieldError, err)
				continue
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
		}

		if page.Next == "" {
			break
		}
		cursor = page.Next
	}
	report.Seen = len(seen)

	if fetchFailed {
		report.StaleCleanupSkipped = true
		s.log.Warnw("stale cleanup skipped after incomplete pass", logger.FieldCount, report.Seen)
	} else {
		urls := make([]string, 0, len(seen))
		for u := range seen {
			urls = append(urls, u)
		}
		n, err := s.posts.DeleteStale(ctx, urls)
		if err != nil {
			return report, errors.Wrap(err, "delete stale postings")
		}
		report.Deleted = n
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return report, errors.Wrap(err, "count postings")
	}
	report.Total = total

	s.log.Infow("sync finished",
		"pages", report.Pages,
		"created", report.Created,
		"updated", report.Updated,
		"failed", report.Failed,
		"deleted", report.Deleted,
		"stale_cleanup_skipped", report.StaleCleanupSkipped,
		logger.FieldCount, report.Total,
	)
	s.pusher.Broadcast(EventJobPostsSynced, report)
	return report, nil
}

// SyncURL pulls a single item by url. It reports whether a posting was created.
func (s *JobPostSync) SyncURL(ctx context.Context, url string) (bool, error) {
	ext, err := s.source.GetItem(ctx, s.table, url)
	if err != nil {
		return false, err
	}
	return s.upsert(ctx, ext)
}

func (s *JobPostSync) upsert(ctx context.Context, ext jobpost.ExternalPosting) (bool, error) {
	in, err := s.toInput(ctx, ext)
	if err != nil {
		return false, err
	}

	existing, err := s.posts.FindByURL(ctx, ext.URL)
	switch {
	case err == nil:
		if _, err := s.posts.Update(ctx, existing.ID, in); err != nil {
			return false, errors.Wrap(err, "update posting")
		}
		return false, nil
	case errors.Is(err, repository.ErrNotFound):
		if _, err := s.posts.Create(ctx, in); err != nil {
			return false, errors.Wrap(err, "create posting")
		}
		return true, nil
	default:
		return false, err
	}
}

// toInput converts an external record. The currency of the first region found
// in the static region table wins over the record's own currency field.
func (s *JobPostSync) toInput(ctx context.Context, ext jobpost.ExternalPosting) (jobpost.Input, error) {
	v := validation.New()
	if ext.URL == "" {
		v.Add("url", "is required")
	}

	companyID, err := optionalID(ext.CompanyID)
	if err != nil {
		v.Add("companyId", "is not a valid id")
	}
	firmID, err := optionalID(ext.RecruiterFirmID)
	if err != nil {
		v.Add("recruiterFirmId", "is not a valid id")
	}
	roleIDs, err := parseIDs(ext.RoleIDs)
	if err != nil {
		v.Add("roleIds", "contains an invalid id")
	}
	industryIDs, err := parseIDs(ext.IndustryIDs)
	if err != nil {
		v.Add("industryIds", "contains an invalid id")
	}
	regionIDs, err := parseIDs(ext.RegionIDs)
	if err != nil {
		v.Add("regionIds", "contains an invalid id")
	}
	if err := v.Err(); err != nil {
		return jobpost.Input{}, err
	}

	url := ext.URL
	in := jobpost.Input{
		Title:            ext.Title,
		URL:              &url,
		ContractType:     jobpost.ContractType(ext.ContractType),
		ExperienceLevel:  jobpost.ExperienceLevel(ext.ExperienceLevel),
		MinSalary:        ext.MinSalary,
		MaxSalary:        ext.MaxSalary,
		Currency:         ext.Currency,
		Description:      ext.Description,
		Responsibilities: ext.Responsibilities,
		Requirements:     ext.Requirements,
		Benefits:         ext.Benefits,
		VisaSponsorship:  ext.VisaSponsorship,
		RequiresTravel:   ext.RequiresTravel,
		Languages:        ext.Languages,
		CompanySizes:     ext.CompanySizes,
		ExpirationDays:   ext.ExpirationDays,
		CompanyID:        companyID,
		RecruiterFirmID:  firmID,
		RoleIDs:          roleIDs,
		IndustryIDs:      industryIDs,
		RegionIDs:        regionIDs,
	}

	c, err := s.refs.CurrencyFor(ctx, in.RegionIDs)
	if err != nil {
		return jobpost.Input{}, err
	}
	if c != "" {
		in.Currency = c
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return jobpost.Input{}, err
	}
	if _, err := s.refs.Resolve(ctx, &in); err != nil {
		return jobpost.Input{}, err
	}
	return in, nil
}
