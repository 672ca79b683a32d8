package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"stock-board/internal/middleware"
)

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	PostTitle string `json:"post_title"`
	PostURL   string `json:"post_url,omitempty"`
	Content   string `json:"content"`
}

// CreateCommentRequest represents a request to create a new comment
type CreateCommentRequest struct {
	PostID   string `json:"post_id"`
	ParentID string `json:"parent_id,omitempty"` // Optional, for nested replies
	Content  string `json:"content"`
}

// RepairThreadRequest names the post whose closure should be recomputed
type RepairThreadRequest struct {
	PostID string `json:"post_id"`
}

// HandleCreatePost creates a post authored by the authenticated caller.
func (s *Server) HandleCreatePost() http.HandlerFunc {
	return s.instrument("create_post", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding create post request: %v", err)
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		post, err := s.Service.CreatePost(r.Context(), userID, req.PostTitle, req.PostURL, req.Content)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, post)
	})
}

// HandleCreateComment attaches a comment (or nested reply) to a post.
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return s.instrument("create_comment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding create comment request: %v", err)
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		comment, err := s.Service.CreateComment(r.Context(), userID, req.PostID, req.ParentID, req.Content)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, comment)
	})
}

// HandleRepairThread recomputes a post's all_comment_ids on demand.
func (s *Server) HandleRepairThread() http.HandlerFunc {
	return s.instrument("repair_thread", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RepairThreadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding repair thread request: %v", err)
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		closure, err := s.Service.RepairThread(r.Context(), req.PostID)
		if err != nil {
			s.respondError(w, err)
			return
		}

		ids := make([]string, len(closure))
		for i, id := range closure {
			ids[i] = id.Hex()
		}
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"post_id":         req.PostID,
			"all_comment_ids": ids,
		})
	})
}
