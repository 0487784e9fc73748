package connector

import (
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/google/uuid"
)

// SearchRequest carries one inbound provider search
type SearchRequest struct {
	Provider connector.Provider
	Query    string
	Filters  map[string]string
	Location *connector.GeoPoint
}

// SearchResponse is the result of one provider search
type SearchResponse struct {
	Data          []connector.NormalizedResult `json:"data"`
	Source        connector.Provider           `json:"source"`
	Cached        bool                         `json:"cached"`
	UsingMockData bool                         `json:"using_mock_data"`
	Message       string                       `json:"message,omitempty"`
}

// ProviderStatus reports credential configuration for one provider
type ProviderStatus struct {
	Provider          connector.Provider `json:"provider"`
	DisplayName       string             `json:"display_name"`
	Configured        bool               `json:"configured"`
	HasEnvironmentKey bool               `json:"has_environment_key"`
	HasUserToken      bool               `json:"has_user_token"`
	Status            string             `json:"status"`
}

// SyncJobResponse is the external representation of a sync job
type SyncJobResponse struct {
	ID               uuid.UUID               `json:"id"`
	Provider         connector.Provider      `json:"provider"`
	JobType          connector.SyncJobType   `json:"job_type"`
	Status           connector.SyncJobStatus `json:"status"`
	Progress         int                     `json:"progress"`
	ProcessedRecords int                     `json:"processed_records"`
	TotalRecords     *int                    `json:"total_records,omitempty"`
	ErrorMessage     string                  `json:"error_message,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// NewSyncJobResponse maps a domain job to its response shape
func NewSyncJobResponse(job *connector.SyncJob) SyncJobResponse {
	return SyncJobResponse{
		ID:               job.ID,
		Provider:         job.Provider,
		JobType:          job.JobType,
		Status:           job.Status,
		Progress:         job.Progress,
		ProcessedRecords: job.ProcessedRecords,
		TotalRecords:     job.TotalRecords,
		ErrorMessage:     job.ErrorMessage,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}
