package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "slicecfg API",
		Version:     "v1",
		Description: "Slicer configuration presets, stored profiles and slice job payloads",
		Endpoints: []endpointInfo{
			{"/api/v1/presets", []string{"GET"}, "All quality presets"},
			{"/api/v1/presets/{quality}", []string{"GET"}, "One preset: low, medium or high"},
			{"/api/v1/profiles", []string{"GET", "POST"}, "Stored profile management. GET accepts limit, offset and slicer"},
			{"/api/v1/profiles/{id}", []string{"GET", "PUT", "DELETE"}, "Single profile operations"},
			{"/api/v1/jobs", []string{"POST"}, "Build a slice job payload from a profile or preset"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
