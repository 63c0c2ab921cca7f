package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pitchmatch/internal/config"
	"pitchmatch/internal/database"
	"pitchmatch/internal/database/migration"
	dbpostgres "pitchmatch/internal/database/postgres"
	"pitchmatch/internal/database/seeder"
	"pitchmatch/internal/domain/matching"
	"pitchmatch/internal/infrastructure/cache"
	"pitchmatch/internal/infrastructure/extraction"
	"pitchmatch/internal/pkg/jwt"
	"pitchmatch/internal/repository"
	"pitchmatch/internal/usecase"
	"pitchmatch/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency. It is built once at process
// start and handed to the HTTP server, the scheduler and the CLI.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	JWT   *jwt.HMACService
	Hub   *ws.Hub

	Startups  repository.StartupProfileRepository
	Investors repository.InvestorProfileRepository
	Matches   repository.MatchRepository

	Matching *usecase.Matching
	Batch    *usecase.Batch
	Board    *usecase.MatchBoard
	Profiles *usecase.Profile
	Analysis *usecase.DeckAnalysis
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger.Named("cache")),
		JWT:    jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0),
		Hub:    ws.NewHub(logger.Named("ws")),
	}

	engine, err := newEngine(cfg.Matching, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	analyzer, err := newAnalyzer(ctx, cfg.Extraction, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Startups = repository.NewPostgresStartupProfileRepository(db)
	c.Investors = repository.NewPostgresInvestorProfileRepository(db)
	c.Matches = repository.NewPostgresMatchRepository(db)

	c.Matching = usecase.NewMatchingUsecase(
		c.Startups, c.Investors, c.Matches, engine, c.Cache,
		ws.NewNotifier(c.Hub, logger.Named("ws")),
		logger.Named("matching"),
	)
	c.Batch = usecase.NewBatchUsecase(c.Startups, c.Matching, cfg.Matching.BatchWorkers, cfg.Matching.BatchTimeout, logger.Named("batch"))
	c.Board = usecase.NewMatchBoardUsecase(c.Matches, c.Cache, logger.Named("board"))
	c.Profiles = usecase.NewProfileUsecase(c.Startups, c.Investors, c.Matching, logger.Named("profile"))
	c.Analysis = usecase.NewDeckAnalysisUsecase(analyzer, c.Startups, c.Investors, c.Matching, cfg.Extraction.Timeout, logger.Named("analysis"))

	return c, nil
}

// Migrate applies the embedded schema migrations.
func (c *Container) Migrate(ctx context.Context) (int, error) {
	r := migration.Runner{Logger: c.Logger.Named("migration")}
	return r.Run(ctx, c.DB.SQLDB())
}

// Seed inserts the demo profiles.
func (c *Container) Seed(ctx context.Context) error {
	return seeder.RunAll(ctx, c.DB, c.Logger.Named("seeder"), seeder.DemoProfiles()...)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

func newEngine(cfg config.MatchingConfig, logger *zap.Logger) (*matching.Engine, error) {
	if cfg.TaxonomyFile == "" {
		return matching.NewEngine(), nil
	}
	tax, err := matching.LoadTaxonomyFile(cfg.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	logger.Info("taxonomy loaded", zap.String("file", cfg.TaxonomyFile))
	return matching.NewEngine(matching.WithTaxonomy(tax)), nil
}

// newAnalyzer returns a nil interface when no API key is configured so the
// analysis usecase reports a configuration error per request.
func newAnalyzer(ctx context.Context, cfg config.ExtractionConfig, logger *zap.Logger) (usecase.DeckAnalyzer, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, deck analysis disabled")
		return nil, nil
	}
	gen, err := extraction.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("init gemini: %w", err)
	}
	return extraction.NewDeckAnalyzer(gen, logger.Named("extraction")), nil
}
