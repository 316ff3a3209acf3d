package server

import (
	"net/http"
	"strings"

	"github.com/me/slicecfg/internal/slicejob"
	"github.com/me/slicecfg/pkg/model"
)

type jobResponse struct {
	ID        string         `json:"id"`
	ProfileID string         `json:"profile_id,omitempty"`
	Input     string         `json:"input"`
	Output    string         `json:"output"`
	Payload   map[string]any `json:"payload"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.JobRequest
	if !decodeBody(w, r, reqID, &req) {
		return
	}

	var details []model.FieldError
	if strings.TrimSpace(req.Input) == "" {
		details = append(details, model.FieldError{Field: "input", Message: "required"})
	}
	if strings.TrimSpace(req.Output) == "" {
		details = append(details, model.FieldError{Field: "output", Message: "required"})
	}
	if req.ProfileID != "" && req.Quality != nil {
		details = append(details, model.FieldError{Field: "quality", Message: "cannot be combined with profile_id"})
	}
	if len(details) > 0 {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("Invalid job request", details...))
		return
	}

	cfg := model.NewSlicerConfiguration(nil)
	switch {
	case req.ProfileID != "":
		p, err := s.store.GetProfile(r.Context(), req.ProfileID)
		if err != nil {
			s.respondInternal(w, reqID, err)
			return
		}
		if p == nil {
			respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("profile", req.ProfileID))
			return
		}
		cfg = &p.Config
	case req.Quality != nil:
		cfg = model.NewPreset(*req.Quality)
	}

	job := slicejob.NewJob(*cfg, req.Input, req.Output)
	s.metrics.JobBuilt(cfg.Slicer().Name())
	s.logger.Info("job built", "job_id", job.ID, "slicer", cfg.Slicer().Name(), "output", job.Output)

	respondCreated(w, reqID, jobResponse{
		ID:        job.ID,
		ProfileID: req.ProfileID,
		Input:     job.Input,
		Output:    job.Output,
		Payload:   job.Payload(),
	})
}
