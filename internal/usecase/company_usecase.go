package usecase

import (
	"context"
	"path"
	"strings"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/recruiter"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrRecruiterFirmNotFound = errors.New("recruiter firm not found")
)

const maxLogoSize = 2 << 20

var logoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type CompanyUsecase struct {
	companies repository.CompanyRepository
	files     FileStorage
	log       *zap.SugaredLogger
}

func NewCompanyUsecase(companies repository.CompanyRepository, files FileStorage, log *zap.SugaredLogger) *CompanyUsecase {
	return &CompanyUsecase{companies: companies, files: files, log: logger.Component(log, "companies")}
}

func (u *CompanyUsecase) List(ctx context.Context, p pagination.Params) (pagination.Page[company.Company], error) {
	return u.companies.List(ctx, p)
}

func (u *CompanyUsecase) Get(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := u.companies.FindByID(ctx, id)
	return c, translate(err, ErrCompanyNotFound)
}

func (u *CompanyUsecase) Create(ctx context.Context, in repository.CompanyInput) (company.Company, error) {
	in, err := validateCompany(in)
	if err != nil {
		return company.Company{}, err
	}
	c, err := u.companies.Create(ctx, in)
	return c, translate(err, ErrCompanyNotFound)
}

func (u *CompanyUsecase) Update(ctx context.Context, id uuid.UUID, in repository.CompanyInput) (company.Company, error) {
	in, err := validateCompany(in)
	if err != nil {
		return company.Company{}, err
	}
	c, err := u.companies.Update(ctx, id, in)
	return c, translate(err, ErrCompanyNotFound)
}

func (u *CompanyUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return translate(err, ErrCompanyNotFound)
	}
	if err := u.companies.Delete(ctx, id); err != nil {
		return translate(err, ErrCompanyNotFound)
	}
	if c.LogoFileKey != nil && u.files != nil {
		if err := u.files.Delete(ctx, *c.LogoFileKey); err != nil {
			u.log.Warnw("delete company logo", logger.FieldKey, *c.LogoFileKey, logger.FieldError, err)
		}
	}
	return nil
}

// UploadLogo stores the image and replaces any previous logo.
func (u *CompanyUsecase) UploadLogo(ctx context.Context, id uuid.UUID, up Upload) (company.Company, error) {
	if u.files == nil {
		return company.Company{}, errors.Mark(errors.New("file storage not configured"), ErrUnavailable)
	}
	ext, ok := logoTypes[up.ContentType]
	v := validation.New()
	if !ok {
		v.Add("file", "must be a png, jpeg, webp or svg image")
	}
	if up.Size <= 0 || up.Size > maxLogoSize {
		v.Add("file", "must be between 1 byte and 2 MiB")
	}
	if err := v.Err(); err != nil {
		return company.Company{}, err
	}

	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return company.Company{}, translate(err, ErrCompanyNotFound)
	}

	key := path.Join("logos", id.String(), uuid.NewString()+ext)
	if err := u.files.Put(ctx, key, up.ContentType, up.Body, up.Size); err != nil {
		return company.Company{}, errors.Wrap(err, "store logo")
	}
	if err := u.companies.SetLogoFileKey(ctx, id, &key); err != nil {
		return company.Company{}, translate(err, ErrCompanyNotFound)
	}
	if c.LogoFileKey != nil {
		if err := u.files.Delete(ctx, *c.LogoFileKey); err != nil {
			u.log.Warnw("delete previous logo", logger.FieldKey, *c.LogoFileKey, logger.FieldError, err)
		}
	}
	c.LogoFileKey = &key
	return c, nil
}

// LogoURL presigns the stored logo.
func (u *CompanyUsecase) LogoURL(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return "", translate(err, ErrCompanyNotFound)
	}
	if c.LogoFileKey == nil {
		return "", notFound(errors.New("company has no logo"))
	}
	if u.files == nil {
		return "", errors.Mark(errors.New("file storage not configured"), ErrUnavailable)
	}
	return u.files.PresignGet(ctx, *c.LogoFileKey, 0)
}

func validateCompany(in repository.CompanyInput) (repository.CompanyInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Website = trimmed(in.Website)
	in.Description = trimmed(in.Description)
	in.Size = trimmed(in.Size)

	v := validation.New()
	if in.Name == "" {
		v.Add("name", "is required")
	}
	if in.Size != nil && !company.IsValidSize(*in.Size) {
		v.Add("size", "must be one of "+strings.Join(company.Sizes, ", "))
	}
	return in, v.Err()
}

type RecruiterFirmUsecase struct {
	firms repository.RecruiterFirmRepository
}

func NewRecruiterFirmUsecase(firms repository.RecruiterFirmRepository) *RecruiterFirmUsecase {
	return &RecruiterFirmUsecase{firms: firms}
}

func (u *RecruiterFirmUsecase) List(ctx context.Context, p pagination.Params) (pagination.Page[recruiter.Firm], error) {
	return u.firms.List(ctx, p)
}

func (u *RecruiterFirmUsecase) Get(ctx context.Context, id uuid.UUID) (recruiter.Firm, error) {
	f, err := u.firms.FindByID(ctx, id)
	return f, translate(err, ErrRecruiterFirmNotFound)
}

func (u *RecruiterFirmUsecase) Create(ctx context.Context, in repository.RecruiterFirmInput) (recruiter.Firm, error) {
	in, err := validateFirm(in)
	if err != nil {
		return recruiter.Firm{}, err
	}
	f, err := u.firms.Create(ctx, in)
	return f, translate(err, ErrRecruiterFirmNotFound)
}

func (u *RecruiterFirmUsecase) Update(ctx context.Context, id uuid.UUID, in repository.RecruiterFirmInput) (recruiter.Firm, error) {
	in, err := validateFirm(in)
	if err != nil {
		return recruiter.Firm{}, err
	}
	f, err := u.firms.Update(ctx, id, in)
	return f, translate(err, ErrRecruiterFirmNotFound)
}

func (u *RecruiterFirmUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(u.firms.Delete(ctx, id), ErrRecruiterFirmNotFound)
}

func validateFirm(in repository.RecruiterFirmInput) (repository.RecruiterFirmInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Website = trimmed(in.Website)
	in.Description = trimmed(in.Description)
	if in.Name == "" {
		v := validation.New()
		v.Add("name", "is required")
		return in, v
	}
	return in, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
