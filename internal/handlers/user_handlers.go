package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// RegisterRequest represents a request to create a new user. PasswordHash is
// the client-precomputed opaque hash, never a plaintext password.
type RegisterRequest struct {
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"password_hash"`
}

// LoginRequest represents a login attempt with the precomputed hash.
type LoginRequest struct {
	UserID       string `json:"user_id"`
	PasswordHash string `json:"password_hash"`
}

// LoginResponse carries the issued token on success.
type LoginResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

// HandleRegister creates a new user account.
func (s *Server) HandleRegister() http.HandlerFunc {
	return s.instrument("register_user", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding register request: %v", err)
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		user, err := s.Service.RegisterUser(r.Context(), req.Email, req.DisplayName, req.PasswordHash)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, user)
	})
}

// HandleLogin authenticates a user and issues a JWT.
func (s *Server) HandleLogin() http.HandlerFunc {
	return s.instrument("login_user", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding login request: %v", err)
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		user, err := s.Service.Authenticate(r.Context(), req.UserID, req.PasswordHash)
		if err != nil {
			s.respondError(w, err)
			return
		}

		token, err := s.Auth.GenerateToken(user.UserID)
		if err != nil {
			log.Printf("Error generating token for %s: %v", user.UserID, err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		s.respondJSON(w, http.StatusOK, LoginResponse{
			UserID:      user.UserID,
			DisplayName: user.DisplayName,
			Token:       token,
		})
	})
}
