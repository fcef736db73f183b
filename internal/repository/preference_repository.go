package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/preference"

	"github.com/google/uuid"
)

type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (preference.SearchPreference, error)
	Upsert(ctx context.Context, p preference.SearchPreference) (preference.SearchPreference, error)
}

type PostgresPreferenceRepository struct {
	db database.DB
}

func NewPostgresPreferenceRepository(db database.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

func (r *PostgresPreferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (preference.SearchPreference, error) {
	var (
		p                          preference.SearchPreference
		contractTypes, levels      string
		industries, roles, regions string
		languages, sizes           string
	)
	err := r.db.QueryRow(ctx,
		`SELECT user_id,
			array_to_string(contract_types, ','), array_to_string(experience_levels, ','), min_salary,
			array_to_string(industry_ids, ','), array_to_string(role_ids, ','), array_to_string(region_ids, ','),
			needs_visa_sponsorship, willing_to_travel,
			array_to_string(languages, ','), array_to_string(company_sizes, ','),
			updated_at
		 FROM search_preferences WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID,
		&contractTypes, &levels, &p.MinSalary,
		&industries, &roles, &regions,
		&p.NeedsVisaSponsorship, &p.WillingToTravel,
		&languages, &sizes,
		&p.UpdatedAt,
	)
	if err != nil {
		return preference.SearchPreference{}, notFoundIfNoRows(err)
	}

	p.ContractTypes = splitList(contractTypes)
	p.ExperienceLevels = splitList(levels)
	p.Languages = splitList(languages)
	p.CompanySizes = splitList(sizes)
	if p.IndustryIDs, err = splitIDs(industries); err != nil {
		return preference.SearchPreference{}, err
	}
	if p.JobRoleIDs, err = splitIDs(roles); err != nil {
		return preference.SearchPreference{}, err
	}
	if p.RegionIDs, err = splitIDs(regions); err != nil {
		return preference.SearchPreference{}, err
	}
	return p, nil
}

func (r *PostgresPreferenceRepository) Upsert(ctx context.Context, p preference.SearchPreference) (preference.SearchPreference, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO search_preferences (
			user_id, contract_types, experience_levels, min_salary,
			industry_ids, role_ids, region_ids,
			needs_visa_sponsorship, willing_to_travel, languages, company_sizes, updated_at
		) VALUES ($1, $2::text[], $3::text[], $4, $5::text[]::uuid[], $6::text[]::uuid[], $7::text[]::uuid[], $8, $9, $10::text[], $11::text[], now())
		ON CONFLICT (user_id) DO UPDATE SET
			contract_types = EXCLUDED.contract_types,
			experience_levels = EXCLUDED.experience_levels,
			min_salary = EXCLUDED.min_salary,
			industry_ids = EXCLUDED.industry_ids,
			role_ids = EXCLUDED.role_ids,
			region_ids = EXCLUDED.region_ids,
			needs_visa_sponsorship = EXCLUDED.needs_visa_sponsorship,
			willing_to_travel = EXCLUDED.willing_to_travel,
			languages = EXCLUDED.languages,
			company_sizes = EXCLUDED.company_sizes,
			updated_at = now()`,
		p.UserID, nonNil(p.ContractTypes), nonNil(p.ExperienceLevels), p.MinSalary,
		idStrings(p.IndustryIDs), idStrings(p.JobRoleIDs), idStrings(p.RegionIDs),
		p.NeedsVisaSponsorship, p.WillingToTravel, nonNil(p.Languages), nonNil(p.CompanySizes),
	)
	if err != nil {
		return preference.SearchPreference{}, err
	}
	return r.FindByUserID(ctx, p.UserID)
}
