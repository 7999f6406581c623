package domain

import "errors"

var (
	// ErrSessionNotFound signals a callback referencing a user with no
	// pending session. The only remedy is to resend the URL.
	ErrSessionNotFound = errors.New("session not found")

	// ErrArtifactMissing signals a fetch that reported success without
	// leaving a recognizable media file behind.
	ErrArtifactMissing = errors.New("download completed but file not found")
)

// PolicyRejectionError carries the user-facing reason a download was refused
// by the duration/size policy.
type PolicyRejectionError struct {
	Reason string
}

func (e *PolicyRejectionError) Error() string {
	return e.Reason
}

// IsPolicyRejection reports whether err is (or wraps) a policy rejection.
func IsPolicyRejection(err error) bool {
	var rejection *PolicyRejectionError
	return errors.As(err, &rejection)
}
