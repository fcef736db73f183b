package usecase

import (
	"context"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/preference"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxPageScan = 50

type MatchUsecase struct {
	prefs      repository.PreferenceRepository
	exclusions repository.ExclusionRepository
	posts      repository.JobPostingRepository
	maxScan    int
	log        *zap.SugaredLogger
}

func NewMatchUsecase(
	prefs repository.PreferenceRepository,
	exclusions repository.ExclusionRepository,
	posts repository.JobPostingRepository,
	maxScan int,
	log *zap.SugaredLogger,
) *MatchUsecase {
	if maxScan <= 0 {
		maxScan = DefaultMaxPageScan
	}
	return &MatchUsecase{
		prefs:      prefs,
		exclusions: exclusions,
		posts:      posts,
		maxScan:    maxScan,
		log:        logger.Component(log, "match"),
	}
}

// GetMatches returns the first non-empty page at or after p.Page of postings
// that fit the user's preference and are not skipped, saved or applied. The
// page is empty only when candidates run out or the scan ceiling is hit.
func (u *MatchUsecase) GetMatches(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	p = p.Normalize()

	excluded, err := u.exclusions.Sets(ctx, userID)
	if err != nil {
		return pagination.Page[jobpost.JobPosting]{}, errors.Wrap(err, "load exclusions")
	}

	pref, err := u.prefs.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		pref = preference.Empty(userID)
	} else if err != nil {
		return pagination.Page[jobpost.JobPosting]{}, errors.Wrap(err, "load preference")
	}

	criteria := matching.BuildCriteria(pref)
	if criteria.Unsatisfiable() {
		return pagination.NewPage[jobpost.JobPosting](nil, 0, p), nil
	}

	fetch := func(ctx context.Context, page int) (pagination.Page[jobpost.JobPosting], error) {
		return u.posts.FindMatching(ctx, criteria, pagination.Params{Limit: p.Limit, Page: page})
	}
	out, err := matching.AdvancePages(ctx, p.Page, u.maxScan, fetch, matching.Keep(excluded, pref.CompanySizes))
	if err != nil {
		return pagination.Page[jobpost.JobPosting]{}, err
	}

	u.log.Debugw("matches resolved",
		logger.FieldUserID, userID,
		logger.FieldPage, out.Meta.CurrentPage,
		logger.FieldCount, out.Meta.ItemCount,
	)
	return out, nil
}
