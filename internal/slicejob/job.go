// Package slicejob hands a slicer configuration to an external slicing engine.
package slicejob

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/me/slicecfg/pkg/model"
)

// Job pairs a configuration with the model to slice and the toolpath to write.
type Job struct {
	ID     string
	Config model.SlicerConfiguration
	Input  string
	Output string
}

// NewJob creates a job with a fresh ID. cfg is copied.
func NewJob(cfg model.SlicerConfiguration, input, output string) *Job {
	return &Job{
		ID:     "job_" + uuid.New().String(),
		Config: cfg,
		Input:  input,
		Output: output,
	}
}

// Payload returns the serialized configuration with "path" set to the output file.
func (j *Job) Payload() map[string]any {
	payload := j.Config.ToJSON()
	payload["path"] = j.Output
	return payload
}

// absolute returns a copy of the job with Input and Output made absolute.
func (j *Job) absolute() (*Job, error) {
	out := *j
	for _, p := range []*string{&out.Input, &out.Output} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return nil, fmt.Errorf("job %s: resolve %s: %w", j.ID, *p, err)
		}
		*p = abs
	}
	return &out, nil
}
