// Package server implements the HTTP surface of the recipes backend on a chi router.
// The same router serves API Gateway through the Lambda adapter and the local dev server.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/app"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
)

// Options configures the router.
type Options struct {
	// RequestTimeout bounds each request. Zero disables the timeout middleware.
	RequestTimeout time.Duration
	// AllowedOrigin is returned in Access-Control-Allow-Origin.
	AllowedOrigin string
	// DecodeBearerClaims lets protected routes take the owner from the bearer ID token when no
	// API Gateway authorizer claims are present. Only the local dev server enables it.
	DecodeBearerClaims bool
	// RequestIDExtractor supplies a platform request ID, e.g. the Lambda AWS request ID.
	RequestIDExtractor RequestIDExtractor
}

// Router wraps the chi mux and the service it dispatches to.
type Router struct {
	router *chi.Mux
	svc    *app.Service
	opts   Options
}

// NewRouter creates a new chi router with routes configured.
func NewRouter(svc *app.Service, opts Options) *Router {
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = constants.DefaultAllowedOrigin
	}

	r := chi.NewRouter()
	router := &Router{
		router: r,
		svc:    svc,
		opts:   opts,
	}

	r.Use(router.corsMiddleware)
	r.Use(setContentTypeJSONMiddleware)
	r.Use(router.requestIDMiddleware)
	if opts.RequestTimeout > 0 {
		r.Use(router.requestTimeoutMiddleware(opts.RequestTimeout))
	}
	r.Use(router.requestLoggingMiddleware)

	r.Get("/health", router.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", router.handleSignUp)
		r.Delete("/", router.handleDeleteAccount)
		r.Post("/confirm", router.handleConfirmSignUp)
		r.Post("/confirm/resend", router.handleResendConfirmation)
		r.Post("/login", router.handleSignIn)
		r.Post("/logout", router.handleSignOut)
		r.Post("/password/change", router.handleChangePassword)
		r.Post("/password/forgot", router.handleForgotPassword)
		r.Post("/password/confirm", router.handleConfirmForgotPassword)
		r.Put("/profile", router.handleUpdateProfile)
		r.Get("/authorize", router.handleAuthorize)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Use(router.ownerMiddleware)
		r.Get("/", router.handleListRecipes)
		r.Post("/", router.handleCreateRecipe)
		r.Get("/slug/{slug}", router.handleGetRecipeBySlug)
		r.Get("/{id}", router.handleGetRecipe)
		r.Put("/{id}", router.handleUpdateRecipe)
		r.Delete("/{id}", router.handleDeleteRecipe)
		r.Post("/{id}/image", router.handleUploadRecipeImage)
	})

	return router
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Handler returns an http.Handler for the router.
func (r *Router) Handler() http.Handler {
	return r.router
}
