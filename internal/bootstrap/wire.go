package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/auth"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/bootcamp"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/course"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/email"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/memory"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/storage"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/logger"
	http_handlers "github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB   func(addr string) (*sql.DB, error)
	Migrate func(ctx context.Context, db *sql.DB) error

	NewRedis func(addr, password string, db int) *redis.Client

	NewS3 func(ctx context.Context, cfg storage.S3Config) (bootcamp.ImageStore, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

// credential endpoint limits, per caller and route
var credentialLimits = map[string]struct {
	limit  int
	window time.Duration
}{
	"register":       {5, time.Minute},
	"login":          {10, time.Minute},
	"forgotPassword": {3, 10 * time.Minute},
}

type userStore interface {
	auth.UserRepo
	bootcamp.OwnerDirectory
}

type courseStore interface {
	course.Repo
	bootcamp.CourseRemover
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 1) store
	var (
		users     userStore
		bootcamps bootcamp.Repo
		courses   courseStore
		pinger    http_handlers.Pinger
	)
	switch cfg.Store {
	case config.StoreMemory:
		logger.Logger.Warn().Msg("using in-memory store; data is lost on restart")
		users = memory.NewUserRepo()
		bootcamps = memory.NewBootcampRepo()
		courses = memory.NewCourseRepo()
	default:
		db, err := deps.NewDB(cfg.DBAddr)
		if err != nil {
			return fail(err)
		}
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })

		if cfg.DBAutoMigrate && deps.Migrate != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			err := deps.Migrate(ctx, db)
			cancel()
			if err != nil {
				return fail(err)
			}
			logger.Logger.Info().Msg("migrations applied")
		}

		users = postgres.NewUserRepo(db)
		bootcamps = postgres.NewBootcampRepo(db)
		courses = postgres.NewCourseRepo(db)
		pinger = db
	}

	// 2) redis (best-effort)
	var redisCli *redis.Client
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; denylist and limiter in memory")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var (
		denylist auth.TokenDenylist
		limiter  middleware.RateLimiter
	)
	if redisCli != nil {
		denylist = redis.NewDenylist(redisCli)
		limiter = redis.NewFixedWindowLimiter(redisCli)
	} else {
		denylist = memory.NewDenylist()
		limiter = memory.NewFixedWindowLimiter()
	}

	// 3) mail
	var mailer auth.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			Insecure: cfg.SMTPInsecure,
		}, logger.Component("smtp_sender"))
	} else {
		if cfg.IsProd() {
			logger.Logger.Warn().Msg("SMTP_HOST not set; reset mail is only logged")
		}
		mailer = email.NewLogMailer(logger.Component("log_mailer"))
	}

	// 4) image storage
	var (
		images  bootcamp.ImageStore
		uploads http.Handler
	)
	if cfg.S3Bucket != "" && deps.NewS3 != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		images, err = deps.NewS3(ctx, storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
		cancel()
		if err != nil {
			return fail(err)
		}
	} else {
		local := storage.NewLocalImageStore(cfg.UploadDir, strings.TrimRight(cfg.PublicBaseURL, "/")+"/uploads")
		images = local
		uploads = http.FileServer(http.Dir(local.Dir()))
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 6) services
	authSvc := auth.NewService(
		users,
		hasher,
		signer,
		denylist,
		mailer,
		auth.SystemClock{},
		auth.Config{
			SessionTTL:           cfg.JWTExpiration,
			PasswordResetTTL:     cfg.PasswordResetTokenTTL,
			PasswordResetBaseURL: cfg.PasswordResetBaseURL,
		},
	)

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		middleware.AuthEventsTotal.WithLabelValues(action, fields["result"]).Inc()

		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	if cfg.SeedAdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := SeedAdmin(ctx, users, hasher, cfg.SeedAdminEmail, cfg.SeedAdminPassword, logger.Component("seed"))
		cancel()
		if err != nil {
			return fail(err)
		}
	}

	defaults := query.Defaults{
		Sort:     "-createdAt",
		Limit:    cfg.ListDefaultLimit,
		MaxLimit: cfg.ListMaxLimit,
	}
	bootcampSvc := bootcamp.NewService(bootcamps, courses, users, images, bootcamp.Config{
		Defaults:       defaults,
		MaxUploadBytes: cfg.UploadMaxBytes,
	})
	courseSvc := course.NewService(courses, bootcamps, defaults)

	// 7) handlers + middleware
	secureCookies := cfg.Env != "dev"
	cookieTTL := time.Duration(cfg.CookieExpirationDays) * 24 * time.Hour

	authMW := middleware.Authenticate(authSvc, response.WriteError)
	publisherMW := middleware.Authorize(authSvc, response.WriteError, string(domain.RolePublisher), string(domain.RoleAdmin))

	routerDeps := router.Deps{
		Health:      http_handlers.NewHealthHandler(pinger),
		Auth:        http_handlers.NewAuthHandler(authSvc, cookieTTL, secureCookies),
		Bootcamps:   http_handlers.NewBootcampHandler(bootcampSvc, cfg.UploadMaxBytes),
		Courses:     http_handlers.NewCourseHandler(courseSvc),
		AuthMW:      authMW,
		PublisherMW: publisherMW,
		Metrics:     promhttp.Handler(),
		Uploads:     uploads,
	}

	// rate limit (fail-open)
	if cfg.RLEnabled {
		routerDeps.GlobalRL = httprate.Limit(
			cfg.RLLimit,
			cfg.RLWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.WriteError(w, r, domain.ErrRateLimited("global"))
			}),
		)
		routerDeps.CredentialRL = func(key string) router.Middleware {
			l := credentialLimits[key]
			return middleware.RateLimitFixedWindow(
				limiter,
				middleware.FixedWindowConfig{
					RouteKey: "auth." + key,
					Limit:    l.limit,
					Window:   l.window,
				},
				response.WriteError,
			)
		}
	}

	// 8) router
	mux, err := deps.NewRouter(routerDeps)
	if err != nil {
		return fail(err)
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		Migrate:    postgres.RunMigrations,
		NewRedis:   redis.New,
		NewS3: func(ctx context.Context, cfg storage.S3Config) (bootcamp.ImageStore, error) {
			return storage.NewS3ImageStore(ctx, cfg, logger.Component("s3_image_store"))
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
