package usecase

import (
	"context"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type JobPostUsecase struct {
	posts repository.JobPostingRepository
	refs  *References
}

func NewJobPostUsecase(posts repository.JobPostingRepository, refs *References) *JobPostUsecase {
	return &JobPostUsecase{posts: posts, refs: refs}
}

func (u *JobPostUsecase) List(ctx context.Context, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	return u.posts.List(ctx, p)
}

func (u *JobPostUsecase) Get(ctx context.Context, id uuid.UUID) (jobpost.JobPosting, error) {
	jp, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return jobpost.JobPosting{}, translate(err, jobpost.ErrNotFound)
	}
	return jp, nil
}

func (u *JobPostUsecase) Create(ctx context.Context, in jobpost.Input) (jobpost.JobPosting, error) {
	if err := u.prepare(ctx, &in); err != nil {
		return jobpost.JobPosting{}, err
	}
	jp, err := u.posts.Create(ctx, in)
	if err != nil {
		return jobpost.JobPosting{}, translate(err, jobpost.ErrNotFound)
	}
	return jp, nil
}

func (u *JobPostUsecase) Update(ctx context.Context, id uuid.UUID, in jobpost.Input) (jobpost.JobPosting, error) {
	if err := u.prepare(ctx, &in); err != nil {
		return jobpost.JobPosting{}, err
	}
	jp, err := u.posts.Update(ctx, id, in)
	if err != nil {
		return jobpost.JobPosting{}, translate(err, jobpost.ErrNotFound)
	}
	return jp, nil
}

func (u *JobPostUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(u.posts.Delete(ctx, id), jobpost.ErrNotFound)
}

// prepare fills the currency from the posting's regions when none was given,
// validates, then checks every reference.
func (u *JobPostUsecase) prepare(ctx context.Context, in *jobpost.Input) error {
	in.Normalize()
	if in.Currency == "" {
		c, err := u.refs.CurrencyFor(ctx, in.RegionIDs)
		if err != nil {
			return err
		}
		in.Currency = c
	}
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := u.refs.Resolve(ctx, in)
	return err
}
