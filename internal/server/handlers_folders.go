package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/devlens/devlens/internal/server/middleware"
	"github.com/devlens/devlens/internal/talent"
)

// CreateFolderRequest is the body of POST /folders
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// EditFolderRequest is the body of PUT /folders/{id}
type EditFolderRequest struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// AddCandidateRequest is the body of POST /folders/{id}/candidates
type AddCandidateRequest struct {
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Seniority string `json:"seniority,omitempty"`
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pipeline, err := s.store.GetPipeline(r.Context(), id.Key())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	folders := pipeline.Folders
	if folders == nil {
		folders = []talent.Folder{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"folders": folders,
		"count":   len(folders),
	})
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Folder name is required")
		return
	}

	pipeline, err := s.store.GetPipeline(r.Context(), id.Key())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	folder := pipeline.CreateFolder(req.Name)

	if err := s.store.UpsertPipeline(r.Context(), id.Key(), pipeline); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, folder)
}

func (s *Server) handleEditFolder(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("id")

	var req EditFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pipeline, err := s.store.GetPipeline(r.Context(), id.Key())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if pipeline.FindFolder(folderID) == nil {
		s.errorResponse(w, http.StatusNotFound, "Folder not found")
		return
	}
	pipeline.EditFolder(folderID, req.Name, req.Color)

	if err := s.store.UpsertPipeline(r.Context(), id.Key(), pipeline); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, pipeline.FindFolder(folderID))
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("id")

	pipeline, err := s.store.GetPipeline(r.Context(), id.Key())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Deleting an unknown folder is a no-op, matching the store
	// semantics; the write still happens so the call stays idempotent.
	pipeline.DeleteFolder(folderID)

	if err := s.store.UpsertPipeline(r.Context(), id.Key(), pipeline); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("id")

	var req AddCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		s.errorResponse(w, http.StatusBadRequest, "Username is required")
		return
	}

	pipeline, err := s.store.GetPipeline(r.Context(), id.Key())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	candidate := talent.Candidate{
		Username:  req.Username,
		Name:      req.Name,
		Avatar:    req.Avatar,
		Seniority: req.Seniority,
		AddedAt:   time.Now().UTC(),
	}

	if !pipeline.AddCandidate(folderID, candidate) {
		s.errorResponse(w, http.StatusNotFound, "Folder not found")
		return
	}

	if err := s.store.UpsertPipeline(r.Context(), id.Key(), pipeline); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, candidate)
}

func (s *Server) handleRemoveCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	folderID := r.PathValue("id")
	username := r.PathValue("username")

	pipeline, err := s.store.GetPipeline(r.Context(), id.Key())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	pipeline.RemoveCandidate(folderID, username)

	if err := s.store.UpsertPipeline(r.Context(), id.Key(), pipeline); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
