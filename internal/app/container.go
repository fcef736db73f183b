package app

import (
	"context"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/dynamo"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/tfa"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"
	"jobboard/internal/ws"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Repositories struct {
	Users          *repository.PostgresUserRepository
	Preferences    *repository.PostgresPreferenceRepository
	Exclusions     *repository.PostgresExclusionRepository
	Posts          *repository.PostgresJobPostingRepository
	Companies      *repository.PostgresCompanyRepository
	RecruiterFirms *repository.PostgresRecruiterFirmRepository
	Notifications  *repository.PostgresNotificationRepository
	Regions        *repository.PostgresRegionRepository
}

type Usecases struct {
	Auth           *usecase.Auth
	Users          *usecase.User
	Matches        *usecase.MatchUsecase
	Companies      *usecase.CompanyUsecase
	RecruiterFirms *usecase.RecruiterFirmUsecase
	Industries     *usecase.NamedUsecase[taxonomy.Industry]
	Roles          *usecase.NamedUsecase[taxonomy.JobRole]
	Regions        *usecase.RegionUsecase
	JobPosts       *usecase.JobPostUsecase
	Sync           *usecase.JobPostSync
	Cleanup        *usecase.ExpiredPostingsCleanup
	Notifications  *usecase.NotificationUsecase
}

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Log    *zap.SugaredLogger

	DB     database.DB
	Redis  *cache.Redis
	Source *dynamo.Source
	Files  usecase.FileStorage
	JWT    *jwt.HMACService
	Hub    *ws.Hub

	Repos    Repositories
	Usecases Usecases
}

func NewContainer(cfg config.Config, log *zap.SugaredLogger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	awsCfg, err := dynamo.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "load aws config")
	}

	c := &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  cache.NewRedis(ctx, cfg.Redis, log),
		Source: dynamo.NewSource(dynamo.NewClient(awsCfg, cfg.AWS.Endpoint)),
		JWT:    jwt.NewHMACService(cfg.JWT),
		Hub:    ws.NewHub(log),
	}
	if cfg.Storage.Bucket != "" {
		c.Files = storage.NewS3FromConfig(awsCfg, cfg.AWS.Endpoint, cfg.Storage.Bucket, cfg.Storage.PresignTTL)
	} else {
		log.Warn("STORAGE_BUCKET not set, cv and logo uploads are disabled")
	}

	c.wire()
	return c, nil
}

func (c *Container) wire() {
	cfg := c.Config

	industries := repository.NewPostgresIndustryRepository(c.DB)
	roles := repository.NewPostgresRoleRepository(c.DB)
	c.Repos = Repositories{
		Users:          repository.NewPostgresUserRepository(c.DB),
		Preferences:    repository.NewPostgresPreferenceRepository(c.DB),
		Exclusions:     repository.NewPostgresExclusionRepository(c.DB),
		Posts:          repository.NewPostgresJobPostingRepository(c.DB),
		Companies:      repository.NewPostgresCompanyRepository(c.DB),
		RecruiterFirms: repository.NewPostgresRecruiterFirmRepository(c.DB),
		Notifications:  repository.NewPostgresNotificationRepository(c.DB),
		Regions:        repository.NewPostgresRegionRepository(c.DB),
	}
	r := c.Repos

	refs := usecase.NewReferences(r.Companies, r.RecruiterFirms, roles, industries, r.Regions)
	notifications := usecase.NewNotificationUsecase(r.Notifications, c.Hub, c.Log)

	authSvc := ucauth.NewService(
		r.Users,
		c.Redis,
		tfa.New(cfg.Auth.TFAIssuer),
		cfg.Auth.LoginMaxAttempts,
		cfg.Auth.LoginAttemptWindow,
		c.Log,
	)

	c.Usecases = Usecases{
		Auth: usecase.NewAuthUsecase(authSvc, r.Users, c.JWT, oauth.NewGoogle(cfg.OAuth), c.Redis, notifications),
		Users: usecase.NewUserUsecase(usecase.UserDeps{
			Users:       r.Users,
			Preferences: r.Preferences,
			Posts:       r.Posts,
			Exclusions:  r.Exclusions,
			References:  refs,
			Files:       c.Files,
			Notifier:    notifications,
		}, c.Log),
		Matches:        usecase.NewMatchUsecase(r.Preferences, r.Exclusions, r.Posts, cfg.Match.MaxPageScan, c.Log),
		Companies:      usecase.NewCompanyUsecase(r.Companies, c.Files, c.Log),
		RecruiterFirms: usecase.NewRecruiterFirmUsecase(r.RecruiterFirms),
		Industries:     usecase.NewIndustryUsecase(industries),
		Roles:          usecase.NewRoleUsecase(roles),
		Regions:        usecase.NewRegionUsecase(r.Regions),
		JobPosts:       usecase.NewJobPostUsecase(r.Posts, refs),
		Sync:           usecase.NewJobPostSync(c.Source, r.Posts, refs, c.Hub, cfg.Sync.DynamoTable, cfg.Sync.PageSize, c.Log),
		Cleanup:        usecase.NewExpiredPostingsCleanup(r.Posts, c.Redis, cfg.Cleanup.LockTTL, c.Log),
		Notifications:  notifications,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs error
	if c.Redis != nil {
		errs = errors.CombineErrors(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = errors.CombineErrors(errs, c.DB.Close())
	}
	return errs
}
