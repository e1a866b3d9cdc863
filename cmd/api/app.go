package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/mishabitos-api/internal/adapters/handler/http"
	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/repository"
	"github.com/comitanigiacomo/mishabitos-api/internal/config"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/services"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/workers"
)

type storage struct {
	habits      domain.HabitRepository
	completions domain.CompletionRepository
	users       domain.UserRepository
}

type appOptions struct {
	cfg   *config.Config
	store storage
	// db and redis may be nil. Without redis there is no caching, no rate
	// limiting and no background stats worker.
	db    adapterHTTP.Pinger
	redis *redis.Client
	rates services.RateProvider
}

type application struct {
	router *gin.Engine
	worker *workers.StatsWorker
}

func newApplication(opts appOptions) *application {
	habitRepo := opts.store.habits

	var (
		statsCache domain.StatsCache
		refresher  services.StatsRefresher
		worker     *workers.StatsWorker
	)
	if opts.redis != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, opts.redis)
		statsCache = cache.NewRedisStatsCache(opts.redis, cache.DefaultStatsTTL)
		worker = workers.NewStatsWorker(habitRepo, opts.store.completions, statsCache)
		refresher = worker
	}

	tokenService := services.NewTokenService(
		opts.cfg.Auth.JWTSecret,
		opts.cfg.Auth.Issuer,
		opts.cfg.Auth.TokenDuration,
		opts.store.users,
	)

	authService := services.NewAuthService(opts.store.users, tokenService)
	habitService := services.NewHabitService(habitRepo, opts.store.completions, statsCache)
	completionService := services.NewCompletionService(opts.store.completions, habitRepo, statsCache, refresher)
	statsService := services.NewStatsService(habitRepo, opts.store.completions, statsCache)
	rateService := services.NewRateService(opts.rates, opts.cfg.Rates.CacheTTL)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		RateHandler:       adapterHTTP.NewRateHandler(rateService),
		TokenValidator:    tokenService,
		DB:                opts.db,
		Redis:             opts.redis,
		RateLimit:         opts.cfg.Server.RateLimit,
		StartTime:         time.Now(),
	})

	return &application{router: router, worker: worker}
}
