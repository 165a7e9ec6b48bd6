package main

import (
	"github.com/netvlyx/netvlyx/internal/cache"
	"github.com/netvlyx/netvlyx/internal/config"
	"github.com/netvlyx/netvlyx/internal/database"
	"github.com/netvlyx/netvlyx/internal/fetch"
	"github.com/netvlyx/netvlyx/internal/handlers"
	"github.com/netvlyx/netvlyx/internal/links"
	"github.com/netvlyx/netvlyx/internal/scraper"
	"github.com/netvlyx/netvlyx/internal/services"
	"github.com/netvlyx/netvlyx/pkg/logger"
)

var (
	appLogger        logger.Logger
	appConfig        *config.Config
	db               database.Database
	memoryCache      *cache.LRUCache
	handler          *handlers.Handler
	serviceContainer *services.Container
)

func initializeLogger() {
	appLogger = logger.New()
}

func initializeConfig() {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		appLogger.Fatalf("[App] failed to load configuration: %v", err)
	}
}

func initializeDatabase() {
	var err error
	db, err = database.NewBolt(appConfig.DatabasePath)
	if err != nil {
		appLogger.Fatalf("[App] failed to initialize database: %v", err)
	}
	appLogger.Infof("[App] BoltHold database initialized at %s", appConfig.DatabasePath)
}

func initializeServices() {
	memoryCache = cache.New(appConfig.CacheSize, appConfig.CacheTTL)

	classifier := links.NewClassifier(appConfig.IsDomainAllowed, memoryCache)

	fetcher := fetch.New(appLogger,
		fetch.WithProxyEndpoints(appConfig.ProxyEndpoints),
		fetch.WithScrapeService(appConfig.ScrapeServiceURL, nil),
	)

	pageScraper := scraper.New(appLogger, classifier)

	extractor := services.NewExtractor(fetcher, pageScraper, memoryCache, appLogger)
	tmdbService := services.NewTMDB(appConfig.TMDBAPIKey, memoryCache, db, appConfig.CacheTTL, appLogger)

	serviceContainer = &services.Container{
		TMDB:       tmdbService,
		Extractor:  extractor,
		Reports:    services.NewReports(db, appLogger),
		Visitors:   services.NewVisitors(db, appLogger),
		Classifier: classifier,
		Cache:      memoryCache,
		DB:         db,
		Logger:     appLogger,
	}

	handler = handlers.New(serviceContainer, appConfig)

	appLogger.Infof("[App] services initialized successfully")
}
