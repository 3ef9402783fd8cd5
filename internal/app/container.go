package app

import (
	"context"
	"log"
	"os"
	"time"

	"joblens/internal/config"
	"joblens/internal/database"
	"joblens/internal/database/migration"
	dbpostgres "joblens/internal/database/postgres"
	"joblens/internal/domain/corpus"
	"joblens/internal/infrastructure/cache"
	"joblens/internal/infrastructure/jobsource"
	"joblens/internal/infrastructure/oracle"
	"joblens/internal/pkg/jwt"
	"joblens/internal/repository"
	"joblens/internal/usecase"
)

// Container wires every collaborator once at startup. The term weight table
// is loaded synchronously here so the first request never pays for it.
type Container struct {
	Config  config.Config
	Logger  *log.Logger
	DB      database.DB
	Redis   *cache.Redis
	Weights corpus.Table

	JWT jwt.Service

	AuthUC usecase.AuthUsecase
	UserUC usecase.UserUsecase
	JobsUC usecase.JobListUsecase
	RecsUC usecase.RecommendationUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "./migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.TTL, logger)

	weights := corpus.Load(cfg.Matching.CorpusPath, logger)
	logger.Printf("[App] term weight table loaded: %d terms", len(weights))

	matchOracle := oracle.NewClient(cfg.Matching.MLServiceURL, logger)

	var source jobsource.Source = jobsource.NewHTTPSource(cfg.Matching.JobsAPIBaseURL, logger)
	source = jobsource.NewCachedSource(source, redis, cfg.Redis.TTL, logger)

	users := repository.NewPostgresUserRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Redis:   redis,
		Weights: weights,
		JWT:     jwtSvc,
		AuthUC:  usecase.NewAuthUsecase(users, jwtSvc),
		UserUC:  usecase.NewUserUsecase(users, profiles, redis),
		JobsUC:  usecase.NewJobListUsecase(source, logger),
		RecsUC:  usecase.NewRecommendationUsecase(profiles, source, matchOracle, weights, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
