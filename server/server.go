// Package server is the HTTP boundary. It translates requests and responses
// and delegates to the registration/login flows and the comment store.
package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/reelnotes/reelnotes/auth"
	"github.com/reelnotes/reelnotes/comments"
	"github.com/reelnotes/reelnotes/internal/config"
	"github.com/reelnotes/reelnotes/token"
	"github.com/reelnotes/reelnotes/users"
	"github.com/rs/zerolog/log"
)

// Repos holds the repository dependencies for the Server.
type Repos struct {
	Users    users.Repo
	Comments comments.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config *config.Config
	auth   *auth.Service
	issuer *token.Issuer
	repos  Repos
}

func New(cfg *config.Config, repos Repos) (*Server, error) {
	if repos.Users == nil {
		return nil, errors.New("[Server New] users repo is required")
	}
	if repos.Comments == nil {
		return nil, errors.New("[Server New] comments repo is required")
	}

	issuer, err := token.NewIssuer(token.NewHMACSigner(cfg.JWTSecret), token.WithTTL(cfg.TokenTTL))
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create token issuer")
	}

	authService, err := auth.NewService(repos.Users, auth.NewBcryptHasher(cfg.BcryptCost), issuer)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create auth service")
	}

	s := &Server{
		env:    cfg.Env,
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   authService,
		issuer: issuer,
		repos:  repos,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST /register", ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST /login", ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("POST /comments", ChainMiddleware(s.CreateCommentHandler(), append(s.APIMiddleware(), s.RequireAuth())...))
	s.RegisterRouteHandler("GET /comments/{movieId}", ChainMiddleware(s.ListCommentsHandler(), s.APIMiddleware()...))

	// Browsers preflight cross-origin requests carrying JSON bodies or an
	// Authorization header. Method-qualified patterns never match OPTIONS,
	// so each route needs an explicit preflight registration for the CORS
	// middleware to run.
	for _, pattern := range []string{"/register", "/login", "/comments", "/comments/{movieId}"} {
		s.RegisterRouteHandler("OPTIONS "+pattern, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
	}
}

// PreflightHandler terminates OPTIONS requests the CORS middleware did not
// already answer (same-origin or disallowed-origin preflights).
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Info().Str("route", route).Msg("registered route")
	}
}
