package jobstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// Status is the lifecycle state of a job.
type Status string

// Job statuses.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether the job has finished.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one asynchronous extraction.
type Job struct {
	ID          string                  `json:"job_id"`
	URL         string                  `json:"url"`
	Status      Status                  `json:"status"`
	Result      *model.AggregatedResult `json:"result"`
	Error       string                  `json:"error,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	CompletedAt *time.Time              `json:"completed_at"`
}

// NewJob returns a pending job for url with a fresh random ID.
func NewJob(url string) *Job {
	return &Job{
		ID:        uuid.NewString(),
		URL:       url,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Finish records the crawl outcome. A result without Success marks the
// job failed with the result's error.
func (j *Job) Finish(result *model.AggregatedResult) {
	now := time.Now().UTC()
	j.CompletedAt = &now
	j.Result = result

	if result == nil || !result.Success {
		j.Status = StatusFailed
		if result != nil {
			j.Error = result.Error
		}
		return
	}
	j.Status = StatusCompleted
}
