package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)

	// Password reset
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type BootcampHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)
}

type CourseHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListForBootcamp(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Middleware = func(http.Handler) http.Handler

type Deps struct {
	Health    HealthHandler
	Auth      AuthHandler
	Bootcamps BootcampHandler
	Courses   CourseHandler

	AuthMW      Middleware
	PublisherMW Middleware // publisher or admin; runs after AuthMW

	// Optional
	GlobalRL     Middleware                       // per-IP limit for every route
	CredentialRL func(routeKey string) Middleware // per-route fixed window on credential endpoints
	Metrics      http.Handler
	Uploads      http.Handler // serves locally stored images under /uploads/
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Bootcamps == nil {
		return nil, fmt.Errorf("nil Bootcamps handler")
	}
	if deps.Courses == nil {
		return nil, fmt.Errorf("nil Courses handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.PublisherMW == nil {
		return nil, fmt.Errorf("nil Publisher middleware")
	}

	rl := func(key string) Middleware {
		if deps.CredentialRL == nil {
			return passthrough
		}
		return deps.CredentialRL(key)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	if deps.GlobalRL != nil {
		r.Use(deps.GlobalRL)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, domain.ErrRouteNotFound())
	})

	r.Get("/healthz", deps.Health.Healthz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	if deps.Uploads != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", deps.Uploads))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rl("register")).Post("/register", deps.Auth.Register)
			r.With(rl("login")).Post("/login", deps.Auth.Login)
			r.With(rl("forgotPassword")).Post("/forgotPassword", deps.Auth.ForgotPassword)
			r.Post("/resetPassword", deps.Auth.ResetPassword)
			r.Put("/resetPassword/{token}", deps.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMW)
				r.Post("/logout", deps.Auth.Logout)
				r.Get("/profile", deps.Auth.Profile)
				r.Patch("/update/profile", deps.Auth.UpdateProfile)
				r.Patch("/update/password", deps.Auth.UpdatePassword)
			})
		})

		r.Route("/bootcamp", func(r chi.Router) {
			r.Get("/", deps.Bootcamps.List)
			r.Get("/{id}", deps.Bootcamps.Get)
			r.Get("/{bootcampId}/courses", deps.Courses.ListForBootcamp)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMW)
				r.With(deps.PublisherMW).Post("/", deps.Bootcamps.Create)
				r.Patch("/{id}", deps.Bootcamps.Update)
				r.Delete("/{id}", deps.Bootcamps.Delete)
				r.Put("/{id}/photo", deps.Bootcamps.UploadPhoto)
				r.With(deps.PublisherMW).Post("/{bootcampId}/courses", deps.Courses.Create)
			})
		})

		r.Route("/course", func(r chi.Router) {
			r.Get("/", deps.Courses.List)
			r.Get("/{id}", deps.Courses.Get)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMW)
				r.Patch("/{id}", deps.Courses.Update)
				r.Delete("/{id}", deps.Courses.Delete)
			})
		})
	})

	return r, nil
}

func passthrough(next http.Handler) http.Handler { return next }
