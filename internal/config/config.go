package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	// App
	Env      string // dev / staging / prod
	HTTPAddr string

	// Auth / Security
	JWTSecret            string
	JWTIssuer            string
	JWTExpiration        time.Duration
	CookieExpirationDays int
	BcryptCost           int

	// Store
	Store         string // postgres | memory
	DBAddr        string
	DBAutoMigrate bool

	// Redis is optional; without it denylist and limiter run in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Mail. An empty SMTPHost selects the log-only mailer.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPInsecure bool
	MailFrom     string

	PasswordResetTokenTTL time.Duration
	PasswordResetBaseURL  string

	// Listings
	ListDefaultLimit int
	ListMaxLimit     int

	// Rate limiting on credential endpoints
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	// Image storage. An empty S3Bucket selects local disk.
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
	PublicBaseURL     string
	UploadDir         string
	UploadMaxBytes    int64

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Optional bootstrap admin, created at startup when absent.
	SeedAdminEmail    string
	SeedAdminPassword string
}

func (c *Config) IsProd() bool { return c.Env == "prod" }

func Load() (*Config, error) {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	cfg := &Config{
		Env:       getEnv("ENV", "dev"),
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		JWTIssuer: getEnv("JWT_ISSUER", "bootcamp-service"),
		Store:     strings.ToLower(getEnv("STORE", StorePostgres)),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@bootcamp.local"),

		PasswordResetBaseURL: os.Getenv("PASSWORD_RESET_BASE_URL"),

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		UploadDir:         getEnv("UPLOAD_DIR", "public/uploads/images"),

		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	switch cfg.Store {
	case StorePostgres:
		cfg.DBAddr = os.Getenv("DB_ADDR")
		if cfg.DBAddr == "" {
			return nil, fmt.Errorf("missing required env var: DB_ADDR")
		}
		if !strings.HasPrefix(cfg.DBAddr, "postgres://") && !strings.HasPrefix(cfg.DBAddr, "postgresql://") {
			return nil, fmt.Errorf("DB_ADDR must be a postgres:// URL")
		}
	case StoreMemory:
		cfg.DBAddr = os.Getenv("DB_ADDR")
	default:
		return nil, fmt.Errorf("invalid STORE %q (want postgres or memory)", cfg.Store)
	}

	if (cfg.SeedAdminEmail == "") != (cfg.SeedAdminPassword == "") {
		return nil, fmt.Errorf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together")
	}

	if cfg.PasswordResetBaseURL != "" && !strings.Contains(cfg.PasswordResetBaseURL, "token=") {
		return nil, fmt.Errorf("PASSWORD_RESET_BASE_URL must contain `token=`")
	}

	var err error
	if cfg.JWTExpiration, err = getDuration("JWT_EXPIRATION", 720*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PasswordResetTokenTTL, err = getDuration("PASSWORD_RESET_TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RLWindow, err = getDuration("RL_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.HTTPReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPIdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}

	if cfg.CookieExpirationDays, err = getInt("COOKIE_EXPIRATION_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.ListDefaultLimit, err = getInt("LIST_DEFAULT_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.ListMaxLimit, err = getInt("LIST_MAX_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.ListDefaultLimit < 1 || cfg.ListMaxLimit < cfg.ListDefaultLimit {
		return nil, fmt.Errorf("LIST_DEFAULT_LIMIT must be >= 1 and <= LIST_MAX_LIMIT")
	}
	if cfg.RLLimit, err = getInt("RL_LIMIT", 100); err != nil {
		return nil, err
	}

	maxBytes, err := getInt("UPLOAD_MAX_BYTES", 1000000)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	if cfg.DBAutoMigrate, err = getBool("DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.RLEnabled, err = getBool("RL_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.SMTPInsecure, err = getBool("SMTP_INSECURE", false); err != nil {
		return nil, err
	}
	if cfg.S3UsePathStyle, err = getBool("S3_USE_PATH_STYLE", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool for %s: %q: %w", key, v, err)
	}
	return b, nil
}
