package dto

// SearchRequest is the body of a provider search call
type SearchRequest struct {
	Query    string            `json:"query" binding:"required,min=1,max=256"`
	Filters  map[string]string `json:"filters" binding:"omitempty,max=16"`
	Location *GeoPointRequest  `json:"location" binding:"omitempty"`
}

// GeoPointRequest is a latitude/longitude pair in a request body
type GeoPointRequest struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// ProviderURI binds the provider path parameter
type ProviderURI struct {
	Provider string `uri:"provider" binding:"required"`
}

// StartSyncRequest is the body of a sync job creation call
type StartSyncRequest struct {
	JobType string `json:"job_type" binding:"required,oneof=contacts companies full_import"`
}

// JobURI binds the job ID path parameter
type JobURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListJobsRequest binds sync job list query parameters
type ListJobsRequest struct {
	Provider string `form:"provider" binding:"omitempty,provider"`
	Status   string `form:"status" binding:"omitempty,oneof=queued running completed failed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
