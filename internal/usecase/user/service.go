package user

import (
	"context"
	"strings"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/preference"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type UpdateMeInput struct {
	FullName *string
}

// Service owns a user's profile and stored search preference.
type Service struct {
	users repository.UserRepository
	prefs repository.PreferenceRepository
}

func NewService(users repository.UserRepository, prefs repository.PreferenceRepository) *Service {
	return &Service{users: users, prefs: prefs}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return usr.Sanitized(), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	var name *string
	if in.FullName != nil {
		n := strings.TrimSpace(*in.FullName)
		if len(n) > 200 {
			v := validation.New()
			v.Add("fullName", "must be at most 200 characters")
			return user.User{}, v
		}
		if n != "" {
			name = &n
		}
	}
	updated, err := s.users.UpdateProfile(ctx, userID, name)
	if err != nil {
		return user.User{}, err
	}
	return updated.Sanitized(), nil
}

// GetPreferences returns the stored preference, or an empty one.
func (s *Service) GetPreferences(ctx context.Context, userID uuid.UUID) (preference.SearchPreference, error) {
	p, err := s.prefs.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return preference.Empty(userID), nil
	}
	return p, err
}

// SavePreferences validates enum values and upserts. Reference ids are
// checked by the caller.
func (s *Service) SavePreferences(ctx context.Context, p preference.SearchPreference) (preference.SearchPreference, error) {
	p = normalizePreference(p)
	if err := validatePreference(p); err != nil {
		return preference.SearchPreference{}, err
	}
	return s.prefs.Upsert(ctx, p)
}

func normalizePreference(p preference.SearchPreference) preference.SearchPreference {
	clean := func(in []string, lower bool) []string {
		out := make([]string, 0, len(in))
		seen := make(map[string]struct{}, len(in))
		for _, v := range in {
			v = strings.TrimSpace(v)
			if lower {
				v = strings.ToLower(v)
			}
			if _, ok := seen[v]; ok || v == "" {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		return out
	}
	p.ContractTypes = clean(p.ContractTypes, true)
	p.ExperienceLevels = clean(p.ExperienceLevels, true)
	p.Languages = clean(p.Languages, true)
	p.CompanySizes = clean(p.CompanySizes, false)
	if p.IndustryIDs == nil {
		p.IndustryIDs = []uuid.UUID{}
	}
	if p.JobRoleIDs == nil {
		p.JobRoleIDs = []uuid.UUID{}
	}
	if p.RegionIDs == nil {
		p.RegionIDs = []uuid.UUID{}
	}
	return p
}

func validatePreference(p preference.SearchPreference) error {
	v := validation.New()
	for _, c := range p.ContractTypes {
		if !jobpost.ContractType(c).Valid() {
			v.Add("contractTypes", "unknown contract type "+c)
		}
	}
	for _, l := range p.ExperienceLevels {
		if !jobpost.ExperienceLevel(l).Valid() {
			v.Add("experienceLevels", "unknown experience level "+l)
		}
	}
	for _, sz := range p.CompanySizes {
		if !company.IsValidSize(sz) {
			v.Add("companySizes", "unknown company size "+sz)
		}
	}
	if p.MinSalary != nil && *p.MinSalary < 0 {
		v.Add("minSalary", "must not be negative")
	}
	return v.Err()
}
