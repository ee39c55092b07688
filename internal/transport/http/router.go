package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/planventure-api/internal/application/identity"
	"github.com/planventure-api/internal/application/trip"
	"github.com/planventure-api/internal/application/verification"
	"github.com/planventure-api/internal/config"
	"github.com/planventure-api/internal/transport/http/handler"
	appmiddleware "github.com/planventure-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.UserRepo)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		UserRepo:     deps.UserRepo,
		TokenSigner:  deps.JWTProvider,
		EmailTimeout: cfg.EmailVerificationTimeout,
		ResetTTL:     cfg.ResetTokenTTL,
	})
	identitySvc := identity.NewService(identity.ServiceDeps{
		UserRepo:    deps.UserRepo,
		Tokens:      deps.JWTProvider,
		Workflow:    verificationSvc,
		Mailer:      deps.Mailer,
		FrontendURL: cfg.FrontendURL,
	})
	tripSvc := trip.NewService(deps.TripRepo, deps.S3Store)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(identitySvc)
	userH := handler.NewUserHandler(deps.UserRepo)
	tripH := handler.NewTripHandler(tripSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────────
	r.Get("/", healthH.Home)
	r.Get("/health", healthH.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/signup", authH.Register)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)
			r.Post("/refresh", authH.Refresh)
			r.Get("/verify-email", authH.VerifyEmail)
			r.Post("/verify-email", authH.VerifyEmail)
			r.With(sensitiveRL.Limit).Post("/resend-verification", authH.ResendVerification)
			r.With(sensitiveRL.Limit).Post("/forgot-password", authH.RequestPasswordReset)
			r.With(sensitiveRL.Limit).Post("/reset-password", authH.ResetPassword)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/me", userH.Me)
			r.Get("/users/{id}", userH.Get)

			r.Route("/trips", func(r chi.Router) {
				r.Post("/", tripH.Create)
				r.Get("/", tripH.List)
				r.Get("/{id}", tripH.Get)
				r.Put("/{id}", tripH.Update)
				r.Delete("/{id}", tripH.Delete)
				r.Post("/{id}/cover", tripH.UploadCover)
				r.Get("/{id}/cover", tripH.GetCover)
				r.Delete("/{id}/cover", tripH.DeleteCover)
			})
		})
	})

	return r
}
