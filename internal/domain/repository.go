package domain

// RequestRepository defines the interface for request-history persistence
type RequestRepository interface {
	// Create creates a new request record
	Create(request *Request) error

	// Update updates an existing request record
	Update(request *Request) error

	// FindByID finds a request by ID
	FindByID(id string) (*Request, error)

	// FindRecent finds the most recent requests, newest first
	FindRecent(limit int) ([]*Request, error)

	// FindByStatus finds requests by status, newest first
	FindByStatus(status RequestStatus, limit int) ([]*Request, error)

	// CountByStatus returns the number of requests by status
	CountByStatus(status RequestStatus) (int64, error)

	// GetStats returns request statistics
	GetStats() (*RequestStats, error)
}

// RequestStats represents request statistics
type RequestStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Rejected  int64 `json:"rejected"`
	Failed    int64 `json:"failed"`
}
