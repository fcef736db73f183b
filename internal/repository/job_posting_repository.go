package repository

import (
	"context"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/exclusion"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/matching"
	"jobboard/internal/pkg/pagination"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type JobPostingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (jobpost.JobPosting, error)
	FindByURL(ctx context.Context, url string) (jobpost.JobPosting, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
	FindMatching(ctx context.Context, c matching.Criteria, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
	ListByExclusion(ctx context.Context, userID uuid.UUID, kind exclusion.Kind, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
	Create(ctx context.Context, in jobpost.Input) (jobpost.JobPosting, error)
	Update(ctx context.Context, id uuid.UUID, in jobpost.Input) (jobpost.JobPosting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteStale(ctx context.Context, seenURLs []string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

const jobPostingColumns = `p.id, p.title, p.url, p.contract_type, p.experience_level,
	p.min_salary, p.max_salary, p.currency,
	p.description, p.responsibilities, p.requirements, p.benefits,
	p.visa_sponsorship, p.requires_travel,
	array_to_string(p.languages, ','), array_to_string(p.company_sizes, ','),
	p.expiration_days, p.company_id, p.recruiter_firm_id,
	COALESCE((SELECT string_agg(x.role_id::text, ',') FROM job_posting_roles x WHERE x.job_posting_id = p.id), ''),
	COALESCE((SELECT string_agg(x.industry_id::text, ',') FROM job_posting_industries x WHERE x.job_posting_id = p.id), ''),
	COALESCE((SELECT string_agg(x.region_id::text, ',') FROM job_posting_regions x WHERE x.job_posting_id = p.id), ''),
	p.created_at, p.updated_at`

func scanJobPosting(row database.Row) (jobpost.JobPosting, error) {
	var (
		jp                              jobpost.JobPosting
		contractType, level             string
		languages, sizes                string
		companyID, firmID               uuid.NullUUID
		roleIDs, industryIDs, regionIDs string
	)
	if err := row.Scan(
		&jp.ID, &jp.Title, &jp.URL, &contractType, &level,
		&jp.MinSalary, &jp.MaxSalary, &jp.Currency,
		&jp.Description, &jp.Responsibilities, &jp.Requirements, &jp.Benefits,
		&jp.VisaSponsorship, &jp.RequiresTravel,
		&languages, &sizes,
		&jp.ExpirationDays, &companyID, &firmID,
		&roleIDs, &industryIDs, &regionIDs,
		&jp.CreatedAt, &jp.UpdatedAt,
	); err != nil {
		return jobpost.JobPosting{}, err
	}

	jp.ContractType = jobpost.ContractType(contractType)
	jp.ExperienceLevel = jobpost.ExperienceLevel(level)
	jp.Currency = strings.TrimSpace(jp.Currency)
	jp.Languages = splitList(languages)
	jp.CompanySizes = splitList(sizes)
	jp.CompanyID = uuidPtr(companyID)
	jp.RecruiterFirmID = uuidPtr(firmID)

	var err error
	if jp.RoleIDs, err = splitIDs(roleIDs); err != nil {
		return jobpost.JobPosting{}, err
	}
	if jp.IndustryIDs, err = splitIDs(industryIDs); err != nil {
		return jobpost.JobPosting{}, err
	}
	if jp.RegionIDs, err = splitIDs(regionIDs); err != nil {
		return jobpost.JobPosting{}, err
	}
	return jp, nil
}

func scanJobPostingRows(rows database.Rows) (jobpost.JobPosting, error) {
	return scanJobPosting(rows)
}

func (r *PostgresJobPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (jobpost.JobPosting, error) {
	return r.findOne(ctx, r.db, `p.id = $1`, id)
}

func (r *PostgresJobPostingRepository) FindByURL(ctx context.Context, url string) (jobpost.JobPosting, error) {
	return r.findOne(ctx, r.db, `p.url = $1`, url)
}

func (r *PostgresJobPostingRepository) findOne(ctx context.Context, q database.Querier, where string, arg any) (jobpost.JobPosting, error) {
	jp, err := scanJobPosting(q.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings p WHERE `+where, arg))
	if err != nil {
		return jobpost.JobPosting{}, notFoundIfNoRows(err)
	}
	return jp, nil
}

func (r *PostgresJobPostingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_postings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobPostingRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	return r.page(ctx, "TRUE", nil, p)
}

// FindMatching pages through postings accepted by c, newest first.
func (r *PostgresJobPostingRepository) FindMatching(ctx context.Context, c matching.Criteria, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	where, args := criteriaWhere(c)
	return r.page(ctx, where, args, p)
}

func (r *PostgresJobPostingRepository) ListByExclusion(ctx context.Context, userID uuid.UUID, kind exclusion.Kind, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	if !kind.Valid() {
		return pagination.Page[jobpost.JobPosting]{}, errors.Newf("unknown exclusion kind %q", kind)
	}
	where := `p.id IN (SELECT e.job_posting_id FROM ` + kind.Table() + ` e WHERE e.user_id = $1)`
	return r.page(ctx, where, []any{userID}, p)
}

func (r *PostgresJobPostingRepository) page(ctx context.Context, where string, args []any, p pagination.Params) (pagination.Page[jobpost.JobPosting], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM job_postings p WHERE `+where,
		`SELECT `+jobPostingColumns+` FROM job_postings p WHERE `+where+` ORDER BY p.created_at DESC, p.id`,
		args, p, scanJobPostingRows,
	)
}

// criteriaWhere renders the candidate filter. Set filters other than contract
// type are always emitted, so an empty list yields "= ANY('{}')" and matches
// nothing.
func criteriaWhere(c matching.Criteria) (string, []any) {
	var a argList
	conds := make([]string, 0, 6)

	if len(c.ContractTypes) > 0 {
		conds = append(conds, `p.contract_type = ANY(`+a.add(nonNil(c.ContractTypes))+`::text[])`)
	}
	conds = append(conds, `p.experience_level = ANY(`+a.add(nonNil(c.ExperienceLevels))+`::text[])`)
	conds = append(conds,
		`EXISTS (SELECT 1 FROM job_posting_industries x WHERE x.job_posting_id = p.id AND x.industry_id = ANY(`+a.add(idStrings(c.IndustryIDs))+`::text[]::uuid[]))`)
	conds = append(conds,
		`EXISTS (SELECT 1 FROM job_posting_roles x WHERE x.job_posting_id = p.id AND x.role_id = ANY(`+a.add(idStrings(c.RoleIDs))+`::text[]::uuid[]))`)
	conds = append(conds,
		`EXISTS (SELECT 1 FROM job_posting_regions x WHERE x.job_posting_id = p.id AND x.region_id = ANY(`+a.add(idStrings(c.RegionIDs))+`::text[]::uuid[]))`)
	if c.MinSalary != nil {
		conds = append(conds, `(p.min_salary >= `+a.add(*c.MinSalary)+` OR p.min_salary IS NULL)`)
	}

	return strings.Join(conds, " AND "), a.args
}

func (r *PostgresJobPostingRepository) Create(ctx context.Context, in jobpost.Input) (jobpost.JobPosting, error) {
	id := uuid.New()
	var out jobpost.JobPosting
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		if _, err := q.Exec(ctx,
			`INSERT INTO job_postings (
				id, title, url, contract_type, experience_level, min_salary, max_salary, currency,
				description, responsibilities, requirements, benefits,
				visa_sponsorship, requires_travel, languages, company_sizes, expiration_days,
				company_id, recruiter_firm_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15::text[], $16::text[], $17, $18, $19)`,
			id, in.Title, in.URL, string(in.ContractType), string(in.ExperienceLevel), in.MinSalary, in.MaxSalary, in.Currency,
			in.Description, in.Responsibilities, in.Requirements, in.Benefits,
			in.VisaSponsorship, in.RequiresTravel, nonNil(in.Languages), nonNil(in.CompanySizes), in.ExpirationDays,
			nullUUID(in.CompanyID), nullUUID(in.RecruiterFirmID),
		); err != nil {
			return errors.Wrap(err, "insert job posting")
		}
		if err := replaceLinks(ctx, q, id, in); err != nil {
			return err
		}
		var err error
		out, err = r.findOne(ctx, q, `p.id = $1`, id)
		return err
	})
	if err != nil {
		return jobpost.JobPosting{}, err
	}
	return out, nil
}

func (r *PostgresJobPostingRepository) Update(ctx context.Context, id uuid.UUID, in jobpost.Input) (jobpost.JobPosting, error) {
	var out jobpost.JobPosting
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		n, err := q.Exec(ctx,
			`UPDATE job_postings SET
				title = $2, url = $3, contract_type = $4, experience_level = $5,
				min_salary = $6, max_salary = $7, currency = $8,
				description = $9, responsibilities = $10, requirements = $11, benefits = $12,
				visa_sponsorship = $13, requires_travel = $14, languages = $15::text[], company_sizes = $16::text[],
				expiration_days = $17, company_id = $18, recruiter_firm_id = $19, updated_at = now()
			WHERE id = $1`,
			id, in.Title, in.URL, string(in.ContractType), string(in.ExperienceLevel), in.MinSalary, in.MaxSalary, in.Currency,
			in.Description, in.Responsibilities, in.Requirements, in.Benefits,
			in.VisaSponsorship, in.RequiresTravel, nonNil(in.Languages), nonNil(in.CompanySizes), in.ExpirationDays,
			nullUUID(in.CompanyID), nullUUID(in.RecruiterFirmID),
		)
		if err := affectedOrNotFound(n, err); err != nil {
			return err
		}
		for _, table := range []string{"job_posting_roles", "job_posting_industries", "job_posting_regions"} {
			if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE job_posting_id = $1`, id); err != nil {
				return errors.Wrapf(err, "clear %s", table)
			}
		}
		if err := replaceLinks(ctx, q, id, in); err != nil {
			return err
		}
		out, err = r.findOne(ctx, q, `p.id = $1`, id)
		return err
	})
	if err != nil {
		return jobpost.JobPosting{}, err
	}
	return out, nil
}

func replaceLinks(ctx context.Context, q database.Querier, id uuid.UUID, in jobpost.Input) error {
	links := []struct {
		table, column string
		ids           []uuid.UUID
	}{
		{"job_posting_roles", "role_id", in.RoleIDs},
		{"job_posting_industries", "industry_id", in.IndustryIDs},
		{"job_posting_regions", "region_id", in.RegionIDs},
	}
	for _, l := range links {
		if len(l.ids) == 0 {
			continue
		}
		if _, err := q.Exec(ctx,
			`INSERT INTO `+l.table+` (job_posting_id, `+l.column+`)
			 SELECT $1, v::uuid FROM unnest($2::text[]) AS v
			 ON CONFLICT DO NOTHING`,
			id, idStrings(l.ids),
		); err != nil {
			return errors.Wrapf(err, "link %s", l.table)
		}
	}
	return nil
}

func (r *PostgresJobPostingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id))
}

// DeleteStale removes synced postings (non-null url) whose url is not in seenURLs.
func (r *PostgresJobPostingRepository) DeleteStale(ctx context.Context, seenURLs []string) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM job_postings WHERE url IS NOT NULL AND NOT (url = ANY($1::text[]))`,
		nonNil(seenURLs),
	)
}

func (r *PostgresJobPostingRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM job_postings WHERE created_at + make_interval(days => expiration_days) < $1`,
		now.UTC(),
	)
}

func (r *PostgresJobPostingRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM job_postings`)
}
