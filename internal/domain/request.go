package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the terminal or pending state of a request
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestCompleted RequestStatus = "completed"
	RequestRejected  RequestStatus = "rejected" // refused by the download policy
	RequestFailed    RequestStatus = "failed"
)

// Request is one user-initiated download request, persisted for history.
// Sessions stay in memory; this record only captures intake and outcome.
type Request struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	UserID       int64         `json:"user_id" gorm:"index"`
	URL          string        `json:"url" gorm:"not null"`
	Platform     Platform      `json:"platform"`
	AudioOnly    bool          `json:"audio_only"`
	FormatID     string        `json:"format_id,omitempty"`
	Status       RequestStatus `json:"status" gorm:"not null;index"`
	ErrorMessage string        `json:"error_message,omitempty"`
	SizeBytes    int64         `json:"size_bytes,omitempty"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// NewRequest creates a pending request record for a download.
func NewRequest(userID int64, url string, platform Platform, audioOnly bool, formatID string) *Request {
	return &Request{
		ID:        uuid.New().String(),
		UserID:    userID,
		URL:       url,
		Platform:  platform,
		AudioOnly: audioOnly,
		FormatID:  formatID,
		Status:    RequestPending,
		CreatedAt: time.Now(),
	}
}

// MarkCompleted marks the request as successfully delivered.
func (r *Request) MarkCompleted(sizeBytes int64) {
	r.Status = RequestCompleted
	r.SizeBytes = sizeBytes
	now := time.Now()
	r.CompletedAt = &now
}

// MarkRejected marks the request as refused by the download policy.
func (r *Request) MarkRejected(reason string) {
	r.Status = RequestRejected
	r.ErrorMessage = reason
	now := time.Now()
	r.CompletedAt = &now
}

// MarkFailed marks the request as failed.
func (r *Request) MarkFailed(err error) {
	r.Status = RequestFailed
	r.ErrorMessage = err.Error()
	now := time.Now()
	r.CompletedAt = &now
}

// IsTerminal checks if the request reached a terminal state
func (r *Request) IsTerminal() bool {
	return r.Status != RequestPending
}
