package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// costs.  The JWT secret and the database coordinates are injected into
// their consumers at startup and never read from the environment again.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign auth tokens
	TokenTTLDays  int    // auth token time-to-live in days
	BcryptCost    int    // bcrypt cost for password hashing
	TMDBAPIKey    string // API key for the external movie catalog
	TMDBBaseURL   string // base URL of the external movie catalog API
	UploadDir     string // directory where profile photos are stored
	PublicBaseURL string // base URL prepended to relative photo paths
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional variables
// fall back to sensible defaults for local development.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		TokenTTLDays: intOr("TOKEN_TTL_DAYS", 30),
		BcryptCost:   intOr("BCRYPT_COST", 10),
		TMDBAPIKey:   must("TMDB_API_KEY"),
		TMDBBaseURL:  getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		UploadDir:    getenv("UPLOAD_DIR", "uploads"),
	}
	cfg.PublicBaseURL = getenv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr reads an integer variable, falling back to def when the variable is
// unset.  A value that does not parse as an integer is a fatal error rather
// than a silent fallback.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
