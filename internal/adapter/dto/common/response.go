package common

import "github.com/johnquangdev/fathom-relay/internal/domain/entities"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a webhook acknowledgement
type StatusResponse struct {
	Status   string                   `json:"status"`
	Analysis *entities.AnalysisResult `json:"analysis,omitempty"`
	Message  string                   `json:"message,omitempty"`
}
