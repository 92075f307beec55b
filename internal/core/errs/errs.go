package errs

import "github.com/pkg/errors"

// Sentinel errors classifying every failure the use cases can return.
// Adapters wrap the underlying cause around one of these; controllers
// pick the HTTP status with errors.Is and never echo the cause.
var (
	ErrValidation  = errors.New("invalid input")
	ErrAuth        = errors.New("authentication failed")
	ErrForbidden   = errors.New("not authorized")
	ErrNotFound    = errors.New("post not found")
	ErrUpload      = errors.New("image upload failed")
	ErrPersistence = errors.New("persistence failed")
)
