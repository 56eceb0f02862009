package handlers

import (
	"database/sql"

	"admindash/internal/cache"
	"admindash/internal/llm"
	"admindash/internal/services"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// API holds the services handlers call. Services are values; handlers copy them to
// attach the request id.
type API struct {
	Blogs       services.BlogService
	Projects    services.ProjectService
	Images      services.ImageService
	Logs        services.LogService
	Crawl       services.CrawlService
	Users       services.UserService
	Submissions services.SubmissionService
	Analytics   services.AnalyticsService
	Auth        services.AuthService
	Cache       cache.Store
	LLM         *llm.Registry

	// DB is checked by /db-check; nil falls back to the process pool.
	DB *sql.DB
	// Mongo is pinged by /db-check; nil falls back to the process database.
	Mongo *mongo.Database
	// SecureCookies marks the session cookie Secure (release mode).
	SecureCookies bool
}
