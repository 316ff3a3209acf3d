package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/slicecfg/internal/profile"
	"github.com/me/slicecfg/internal/store"
	"github.com/me/slicecfg/pkg/model"
)

// resolveConfig picks the configuration for a profile request: an explicit
// config wins, then a quality preset, then the defaults.
func resolveConfig(req *model.CreateProfileRequest) (*model.SlicerConfiguration, error) {
	switch {
	case req.Config != nil:
		return profile.DecodeMap(req.Config)
	case req.Quality != nil:
		return model.NewPreset(*req.Quality), nil
	default:
		return model.NewSlicerConfiguration(nil), nil
	}
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.CreateProfileRequest
	if !decodeBody(w, r, reqID, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("Invalid profile",
			model.FieldError{Field: "name", Message: "required"}))
		return
	}

	cfg, err := resolveConfig(&req)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, configError(err))
		return
	}

	now := time.Now().UTC()
	p := &model.Profile{
		ID:          "prof_" + uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Config:      *cfg,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateProfile(r.Context(), p); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			respondError(w, reqID, http.StatusConflict, model.NewConflictError("profile", p.Name))
			return
		}
		s.respondInternal(w, reqID, err)
		return
	}

	s.logger.Info("profile created", "id", p.ID, "name", p.Name, "slicer", p.Config.Slicer().Name())
	respondCreated(w, reqID, p)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	opts := listOptions(r)

	profiles, total, err := s.store.ListProfiles(r.Context(), opts)
	if err != nil {
		s.respondInternal(w, reqID, err)
		return
	}
	if profiles == nil {
		profiles = []*model.Profile{}
	}

	respondList(w, reqID, profiles, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+opts.Limit < total,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	p, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.respondInternal(w, reqID, err)
		return
	}
	if p == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("profile", id))
		return
	}
	respondOK(w, reqID, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	p, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.respondInternal(w, reqID, err)
		return
	}
	if p == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("profile", id))
		return
	}

	var req model.CreateProfileRequest
	if !decodeBody(w, r, reqID, &req) {
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		p.Name = name
	}
	p.Description = req.Description

	// Without config or quality the stored configuration is kept.
	if req.Config != nil || req.Quality != nil {
		cfg, err := resolveConfig(&req)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest, configError(err))
			return
		}
		p.Config = *cfg
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateName):
			respondError(w, reqID, http.StatusConflict, model.NewConflictError("profile", p.Name))
		case store.IsNotFound(err):
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("profile", id))
		default:
			s.respondInternal(w, reqID, err)
		}
		return
	}

	s.logger.Info("profile updated", "id", p.ID, "name", p.Name)
	respondOK(w, reqID, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteProfile(r.Context(), id); err != nil {
		if store.IsNotFound(err) {
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("profile", id))
			return
		}
		s.respondInternal(w, reqID, err)
		return
	}

	s.logger.Info("profile deleted", "id", id)
	respondOK(w, reqID, map[string]any{"id": id, "deleted": true})
}
