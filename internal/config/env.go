package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is the development signing secret. Release builds refuse it.
const DefaultJWTSecret = "change-me"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in release mode")

type Env struct {
	AppAddr string `yaml:"app_addr"`
	GinMode string `yaml:"gin_mode"`

	MySQLDSN      string `yaml:"mysql_dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	SupabaseURL        string `yaml:"supabase_url"`
	SupabaseServiceKey string `yaml:"supabase_service_role_key"`

	ScraperURL    string `yaml:"scraper_url"`
	ScraperAPIKey string `yaml:"scraper_api_key"`

	JWTSecret   string   `yaml:"jwt_secret"`
	CORSOrigins []string `yaml:"cors_allowed_origins"`

	// UserLookupConcurrency bounds parallel identity-provider lookups per request.
	UserLookupConcurrency int `yaml:"user_lookup_concurrency"`
}

func defaultEnv() Env {
	return Env{
		AppAddr:       ":8080",
		MySQLDSN:      "root:@tcp(127.0.0.1:3306)/admin_dashboard?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		MongoURI:      "mongodb://127.0.0.1:27017",
		MongoDatabase: "content",
		JWTSecret:     DefaultJWTSecret,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		UserLookupConcurrency: 8,
	}
}

// LoadEnv reads defaults, then CONFIG_FILE (yaml) when set, then environment variables.
func LoadEnv() Env {
	env := defaultEnv()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &env); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load config file %s: %v\n", path, err)
		}
	}
	applyEnvVars(&env)
	if len(env.CORSOrigins) == 0 {
		env.CORSOrigins = defaultEnv().CORSOrigins
	}
	if env.UserLookupConcurrency < 1 {
		env.UserLookupConcurrency = 1
	}
	return env
}

// Validate rejects settings that are only acceptable during development.
func (e Env) Validate(mode string) error {
	if mode != gin.ReleaseMode {
		return nil
	}
	if s := strings.TrimSpace(e.JWTSecret); s == "" || s == DefaultJWTSecret {
		return ErrInsecureJWTSecret
	}
	return nil
}

func loadFile(path string, env *Env) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, env)
}

func applyEnvVars(env *Env) {
	setString(&env.AppAddr, "APP_ADDR")
	setString(&env.GinMode, "GIN_MODE")
	setString(&env.MySQLDSN, "MYSQL_DSN")
	setString(&env.MongoURI, "MONGO_URI")
	setString(&env.MongoDatabase, "MONGO_DATABASE")
	setString(&env.SupabaseURL, "SUPABASE_URL")
	setString(&env.SupabaseServiceKey, "SUPABASE_SERVICE_ROLE_KEY")
	setString(&env.ScraperURL, "SCRAPER_URL")
	setString(&env.ScraperAPIKey, "SCRAPER_API_KEY")
	setString(&env.JWTSecret, "JWT_SECRET")

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		env.CORSOrigins = origins
	}
	if v := strings.TrimSpace(os.Getenv("USER_LOOKUP_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			env.UserLookupConcurrency = n
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
