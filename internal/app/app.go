package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/playrift/esports-ingest/external/liquipedia"
	"github.com/playrift/esports-ingest/internal/config"
	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
	cacherepo "github.com/playrift/esports-ingest/internal/infrastructure/repository/cache"
	"github.com/playrift/esports-ingest/internal/infrastructure/repository/memory"
	"github.com/playrift/esports-ingest/internal/infrastructure/repository/postgres"
	"github.com/playrift/esports-ingest/internal/interfaces/httpapi"
	basecache "github.com/playrift/esports-ingest/internal/platform/cache"
	idgen "github.com/playrift/esports-ingest/internal/platform/id"
	"github.com/playrift/esports-ingest/internal/platform/logging"
	"github.com/playrift/esports-ingest/internal/platform/resilience"
	"github.com/playrift/esports-ingest/internal/usecase"

	_ "github.com/lib/pq"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, error) {
	leagueRepo, teamRepo, matchRepo, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	idGen := idgen.NewRandomGenerator()

	client := liquipedia.NewClient(liquipedia.ClientConfig{
		BaseURL:      cfg.LiquipediaBaseURL,
		UserAgent:    cfg.LiquipediaUserAgent,
		AcceptGzip:   cfg.LiquipediaAcceptGzip,
		Timeout:      cfg.LiquipediaTimeout,
		MaxRetries:   cfg.LiquipediaMaxRetries,
		PageCacheTTL: cfg.LiquipediaPageCacheTTL,
		Logger:       appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LiquipediaCircuitEnabled,
			FailureThreshold: cfg.LiquipediaCircuitFailureCount,
			OpenTimeout:      cfg.LiquipediaCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LiquipediaCircuitHalfOpenMaxReq,
		},
	})
	extractor := liquipedia.NewExtractor(liquipedia.ExtractorConfig{
		Origin: cfg.LiquipediaOrigin,
		Logger: appLogger,
	})
	provider := liquipedia.NewProvider(client, extractor, liquipedia.Pages{
		Tournaments: cfg.LiquipediaTournamentsPage,
		Teams:       cfg.LiquipediaTeamsPage,
		Matches:     cfg.LiquipediaMatchesPage,
	})

	reconciler := usecase.NewReconciler(leagueRepo, teamRepo, matchRepo, idGen, appLogger)
	importSvc := usecase.NewImportService(provider, reconciler, matchRepo, idGen, appLogger)
	leagueSvc := usecase.NewLeagueService(leagueRepo, teamRepo, matchRepo)

	handler := httpapi.NewHandler(leagueSvc, importSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRepositories wires postgres-backed repositories when DB_URL is set
// and falls back to seeded in-memory ones otherwise. A non-zero
// APP_READ_CACHE_TTL layers a read cache over the postgres repositories.
func buildRepositories(cfg config.Config, logger *slog.Logger) (league.Repository, team.Repository, match.Repository, error) {
	if cfg.DBURL == "" {
		logger.Info("db url not configured, using in-memory repositories")
		return memory.NewLeagueRepository(memory.SeedLeagues()),
			memory.NewTeamRepository(memory.SeedTeams()),
			memory.NewMatchRepository(memory.SeedMatches()),
			nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.DBBootstrapSeed {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
			return nil, nil, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	var (
		leagueRepo league.Repository = postgres.NewLeagueRepository(db)
		teamRepo   team.Repository   = postgres.NewTeamRepository(db)
		matchRepo  match.Repository  = postgres.NewMatchRepository(db)
	)

	if cfg.ReadCacheTTL > 0 {
		store := basecache.NewStore(cfg.ReadCacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		matchRepo = cacherepo.NewMatchRepository(matchRepo, store)
	}

	return leagueRepo, teamRepo, matchRepo, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}
