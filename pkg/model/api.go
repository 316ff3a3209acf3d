package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds pagination metadata for list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ListOptions configures profile listing.
type ListOptions struct {
	Limit  int
	Offset int
	Slicer string // Optional engine filter (wire name)
}

// DefaultListOptions returns the default page.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// Clamp enforces limits (max 100, min 1).
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// PresetView pairs a quality tier with its configuration in API responses.
type PresetView struct {
	Quality Quality             `json:"quality"`
	Config  SlicerConfiguration `json:"config"`
}

// CreateProfileRequest is the body of POST /api/v1/profiles and PUT /api/v1/profiles/{id}.
// Config takes precedence over Quality; with neither the defaults are stored.
type CreateProfileRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Quality     *Quality       `json:"quality,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

// JobRequest is the body of POST /api/v1/jobs.
type JobRequest struct {
	ProfileID string   `json:"profile_id,omitempty"`
	Quality   *Quality `json:"quality,omitempty"`
	Input     string   `json:"input"`
	Output    string   `json:"output"`
}
