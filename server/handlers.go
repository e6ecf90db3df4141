package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/reelnotes/reelnotes/auth"
	"github.com/reelnotes/reelnotes/comments"
	"github.com/reelnotes/reelnotes/users"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type createCommentRequest struct {
	Title   string `json:"title"`
	Body    string `json:"comment"`
	MovieID int64  `json:"movieId"`
}

// RegisterHandler creates a new user account
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
}

// LoginHandler authenticates a user and returns a signed bearer token
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		signed, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Message: "Login successful",
			Token:   signed,
		})
	}
}

// CreateCommentHandler stores a comment. Author identity comes from the
// verified token claims, not from the request body.
func (s *Server) CreateCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}

		// A token outlives the store it was issued against, so confirm the
		// subject still resolves to a stored user before accepting.
		if _, err := s.repos.Users.GetByID(r.Context(), claims.Subject); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}
			log.Error().Err(err).Msg("author lookup failed")
			writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
			return
		}

		var req createCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Title == "" || req.Body == "" {
			writeError(w, http.StatusBadRequest, "title and comment are required")
			return
		}
		if req.MovieID <= 0 {
			writeError(w, http.StatusBadRequest, "movieId is required")
			return
		}

		comment := &comments.Comment{
			Title:    req.Title,
			Body:     req.Body,
			PostedAt: time.Now(),
			UserID:   claims.Subject,
			Name:     claims.Name,
			Email:    claims.Email,
			MovieID:  req.MovieID,
		}

		if err := s.repos.Comments.Create(r.Context(), comment); err != nil {
			log.Error().Err(err).Msg("comment create failed")
			writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
			return
		}

		writeJSON(w, http.StatusCreated, comment)
	}
}

// ListCommentsHandler returns all comments for a movie
func (s *Server) ListCommentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := strconv.ParseInt(r.PathValue("movieId"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid movie id")
			return
		}

		list, err := s.repos.Comments.ListByMovie(r.Context(), movieID)
		if err != nil {
			log.Error().Err(err).Msg("comment list failed")
			writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// writeAuthError maps flow errors to HTTP responses. Errors carry no
// plaintext passwords or signing secrets, and login failures stay generic.
func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case auth.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		log.Error().Err(err).Msg("auth flow failed")
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
