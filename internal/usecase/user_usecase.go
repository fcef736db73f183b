package usecase

import (
	"context"
	"path"

	"jobboard/internal/domain/exclusion"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/preference"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"
	ucuser "jobboard/internal/usecase/user"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound = user.ErrNotFound
	ErrCVNotFound   = errors.New("no cv uploaded")
)

const maxCVSize = 10 << 20

var cvTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

type User struct {
	svc        *ucuser.Service
	users      repository.UserRepository
	posts      repository.JobPostingRepository
	exclusions repository.ExclusionRepository
	refs       *References
	files      FileStorage
	notifier   Notifier
	log        *zap.SugaredLogger
}

type UserDeps struct {
	Users       repository.UserRepository
	Preferences repository.PreferenceRepository
	Posts       repository.JobPostingRepository
	Exclusions  repository.ExclusionRepository
	References  *References
	Files       FileStorage
	Notifier    Notifier
}

func NewUserUsecase(d UserDeps, log *zap.SugaredLogger) *User {
	return &User{
		svc:        ucuser.NewService(d.Users, d.Preferences),
		users:      d.Users,
		posts:      d.Posts,
		exclusions: d.Exclusions,
		refs:       d.References,
		files:      d.Files,
		notifier:   d.Notifier,
		log:        logger.Component(log, "users"),
	}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.svc.GetMe(ctx, userID)
	return usr, translate(err, ErrUserNotFound)
}

func (u *User) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error) {
	usr, err := u.svc.UpdateMe(ctx, userID, in)
	return usr, translate(err, ErrUserNotFound)
}

func (u *User) GetPreferences(ctx context.Context, userID uuid.UUID) (preference.SearchPreference, error) {
	return u.svc.GetPreferences(ctx, userID)
}

// SavePreferences upserts the preference after checking every referenced
// industry, role and region exists.
func (u *User) SavePreferences(ctx context.Context, p preference.SearchPreference) (preference.SearchPreference, error) {
	p.IndustryIDs = dedupe(p.IndustryIDs)
	p.JobRoleIDs = dedupe(p.JobRoleIDs)
	p.RegionIDs = dedupe(p.RegionIDs)

	industries, err := u.refs.industries.FindByIDs(ctx, p.IndustryIDs)
	if err != nil {
		return preference.SearchPreference{}, err
	}
	if len(industries) != len(p.IndustryIDs) {
		return preference.SearchPreference{}, notFound(ErrIndustryNotFound)
	}
	roles, err := u.refs.roles.FindByIDs(ctx, p.JobRoleIDs)
	if err != nil {
		return preference.SearchPreference{}, err
	}
	if len(roles) != len(p.JobRoleIDs) {
		return preference.SearchPreference{}, notFound(ErrRoleNotFound)
	}
	regions, err := u.refs.regions.FindByIDs(ctx, p.RegionIDs)
	if err != nil {
		return preference.SearchPreference{}, err
	}
	if len(regions) != len(p.RegionIDs) {
		return preference.SearchPreference{}, notFound(ErrRegionNotFound)
	}

	saved, err := u.svc.SavePreferences(ctx, p)
	return saved, translate(err, ErrUserNotFound)
}

func (u *User) Skip(ctx context.Context, userID, postID uuid.UUID) error {
	_, err := u.addExclusion(ctx, exclusion.Skipped, userID, postID)
	return err
}

func (u *User) Save(ctx context.Context, userID, postID uuid.UUID) error {
	_, err := u.addExclusion(ctx, exclusion.Saved, userID, postID)
	return err
}

func (u *User) Unsave(ctx context.Context, userID, postID uuid.UUID) error {
	return u.exclusions.Remove(ctx, exclusion.Saved, userID, postID)
}

// Apply records the application and notifies the user the first time.
func (u *User) Apply(ctx context.Context, userID, postID uuid.UUID) error {
	added, err := u.addExclusion(ctx, exclusion.Applied, userID, postID)
	if err != nil || !added {
		return err
	}
	if u.notifier == nil {
		return nil
	}
	jp, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		u.log.Warnw("load applied posting", logger.FieldJobPostID, postID, logger.FieldError, err)
		return nil
	}
	if _, err := u.notifier.Notify(ctx, userID, notification.KindApplied, "Application recorded", jp.Title); err != nil {
		u.log.Warnw("notify application", logger.FieldUserID, userID, logger.FieldError, err)
	}
	return nil
}

func (u *User) ListSaved(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	return u.posts.ListByExclusion(ctx, userID, exclusion.Saved, p)
}

func (u *User) ListApplied(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	return u.posts.ListByExclusion(ctx, userID, exclusion.Applied, p)
}

func (u *User) addExclusion(ctx context.Context, kind exclusion.Kind, userID, postID uuid.UUID) (bool, error) {
	ok, err := u.posts.Exists(ctx, postID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, notFound(jobpost.ErrNotFound)
	}
	added, err := u.exclusions.Add(ctx, kind, userID, postID)
	if err != nil {
		return false, translate(err, jobpost.ErrNotFound)
	}
	return added, nil
}

// UploadCV stores the file and replaces the previous CV.
func (u *User) UploadCV(ctx context.Context, userID uuid.UUID, up Upload) error {
	if u.files == nil {
		return errors.Mark(errors.New("file storage not configured"), ErrUnavailable)
	}
	ext, ok := cvTypes[up.ContentType]
	v := validation.New()
	if !ok {
		v.Add("file", "must be a pdf, doc or docx document")
	}
	if up.Size <= 0 || up.Size > maxCVSize {
		v.Add("file", "must be between 1 byte and 10 MiB")
	}
	if err := v.Err(); err != nil {
		return err
	}

	usr, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return translate(err, ErrUserNotFound)
	}

	key := path.Join("cvs", userID.String(), uuid.NewString()+ext)
	if err := u.files.Put(ctx, key, up.ContentType, up.Body, up.Size); err != nil {
		return errors.Wrap(err, "store cv")
	}
	if err := u.users.SetCVFileKey(ctx, userID, &key); err != nil {
		return translate(err, ErrUserNotFound)
	}
	if usr.CVFileKey != nil {
		if err := u.files.Delete(ctx, *usr.CVFileKey); err != nil {
			u.log.Warnw("delete previous cv", logger.FieldKey, *usr.CVFileKey, logger.FieldError, err)
		}
	}
	return nil
}

// CVURL returns a presigned download URL for the user's CV.
func (u *User) CVURL(ctx context.Context, userID uuid.UUID) (string, error) {
	usr, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", translate(err, ErrUserNotFound)
	}
	if usr.CVFileKey == nil {
		return "", notFound(ErrCVNotFound)
	}
	if u.files == nil {
		return "", errors.Mark(errors.New("file storage not configured"), ErrUnavailable)
	}
	return u.files.PresignGet(ctx, *usr.CVFileKey, 0)
}

func (u *User) List(ctx context.Context, p pagination.Params) (pagination.Page[user.User], error) {
	page, err := u.users.List(ctx, p)
	if err != nil {
		return pagination.Page[user.User]{}, err
	}
	return pagination.Map(page, user.User.Sanitized), nil
}

func (u *User) Delete(ctx context.Context, id uuid.UUID) error {
	usr, err := u.users.FindByID(ctx, id)
	if err != nil {
		return translate(err, ErrUserNotFound)
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return translate(err, ErrUserNotFound)
	}
	if usr.CVFileKey != nil && u.files != nil {
		if err := u.files.Delete(ctx, *usr.CVFileKey); err != nil {
			u.log.Warnw("delete cv of removed user", logger.FieldKey, *usr.CVFileKey, logger.FieldError, err)
		}
	}
	return nil
}
