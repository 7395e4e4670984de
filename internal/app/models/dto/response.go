package dto

// MessageResponse is a bare {"message": ...} body
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status string `json:"status"`
}
