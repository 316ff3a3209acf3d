package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/me/slicecfg/pkg/model"
)

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	views := make([]model.PresetView, 0, len(model.Qualities))
	for _, q := range model.Qualities {
		views = append(views, model.PresetView{Quality: q, Config: *model.NewPreset(q)})
		s.metrics.PresetServed(q.String())
	}
	respondOK(w, reqID, views)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	q, err := model.ParseQuality(chi.URLParam(r, "quality"))
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, asValidationError(err))
		return
	}
	s.metrics.PresetServed(q.String())
	respondOK(w, reqID, model.PresetView{Quality: q, Config: *model.NewPreset(q)})
}
