package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admindash/internal/cache"
	intconfig "admindash/internal/config"
	"admindash/internal/enrich"
	router "admindash/internal/http"
	"admindash/internal/http/handlers"
	"admindash/internal/llm"
	"admindash/internal/repositories"
	"admindash/internal/services"
	"admindash/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(gin.Mode())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := env.Validate(gin.Mode()); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := intconfig.ConnectDB(env.MySQLDSN)
	if err != nil {
		logger.Fatal("mysql connection failed", zap.Error(err))
	}
	defer intconfig.CloseDB()

	mdb, err := intconfig.ConnectMongo(env.MongoURI, env.MongoDatabase)
	if err != nil {
		logger.Fatal("mongo connection failed", zap.Error(err))
	}
	defer intconfig.CloseMongo()

	directory := repositories.UserDirectory{
		BaseURL:    env.SupabaseURL,
		ServiceKey: env.SupabaseServiceKey,
	}
	if sb, err := intconfig.NewSupabase(env); err != nil {
		logger.Warn("identity provider not configured, user lookups will fail", zap.Error(err))
	} else {
		directory.Admin = sb.Auth
	}

	store := cache.Shared()
	projects := repositories.ProjectRepository{DB: db}
	images := repositories.ImageRepository{DB: db}
	logs := repositories.LogRepository{DB: db}
	usage := repositories.UsageRepository{DB: db}
	accounts := repositories.AuthorizedUserRepository{DB: db}
	submissions := repositories.SubmissionRepository{DB: db}
	blogs := repositories.BlogRepository{Coll: mdb.Collection("blogs")}
	scraper := repositories.NewScraperClient(env.ScraperURL, env.ScraperAPIKey)

	resolver := enrich.Resolver{
		Users:       directory,
		Projects:    projects,
		Blogs:       blogs,
		Concurrency: env.UserLookupConcurrency,
		Logger:      logger,
	}
	users := services.UserService{Directory: directory, Cache: store}

	deps := handlers.API{
		Blogs:       services.BlogService{Blogs: blogs, Resolver: resolver, Cache: store},
		Projects:    services.ProjectService{Projects: projects, Images: images, Usage: usage, Resolver: resolver},
		Images:      services.ImageService{Images: images, Resolver: resolver},
		Logs:        services.LogService{Logs: logs, Resolver: resolver},
		Crawl:       services.CrawlService{Tasks: scraper, Resolver: resolver},
		Users:       users,
		Submissions: services.SubmissionService{Submissions: submissions},
		Analytics: services.AnalyticsService{
			Users:       users,
			Projects:    projects,
			Images:      images,
			Blogs:       blogs,
			Submissions: submissions,
			Accounts:    accounts,
			UsageRows:   usage,
		},
		Auth:          services.AuthService{Users: accounts, Secret: []byte(env.JWTSecret)},
		Cache:         store,
		LLM:           llm.DefaultRegistry(&http.Client{Timeout: 5 * time.Minute}),
		DB:            db,
		Mongo:         mdb,
		SecureCookies: gin.Mode() == gin.ReleaseMode,
	}

	r := router.NewRouter(env, deps)

	// WriteTimeout stays open for AI playground streams.
	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
