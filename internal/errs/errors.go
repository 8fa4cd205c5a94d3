package errs

import (
	"errors"
	"net/http"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrInvalidInput       = Error("invalid input")
	ErrNameRequired       = Error("name is required")
	ErrInvalidCoordinates = Error("coordinates must be non-negative numbers")
	ErrInvalidConfidence  = Error("confidence must be one of high, medium, low")
	ErrCompleteRequired   = Error("complete is required")
	ErrContractorRequired = Error("contractor is required")
	ErrInvalidImportFile  = Error("import file must have id and image_url columns")

	ErrUnauthenticated = Error("not authenticated")
	ErrInvalidToken    = Error("invalid token")

	ErrWhiteboardNotFound        = Error("whiteboard not found")
	ErrWhiteboardOrChunkNotFound = Error("whiteboard or chunk not found")

	ErrStorageUnavailable = Error("storage unavailable")
	ErrCorruptState       = Error("stored data is corrupt")
	ErrExport             = Error("error generating csv")
	ErrArchiveDisabled    = Error("export archiving is not configured")
	ErrUnableToUploadFile = Error("unable to upload file")
)

var invalidInput = []error{
	ErrInvalidRequestBody,
	ErrInvalidInput,
	ErrNameRequired,
	ErrInvalidCoordinates,
	ErrInvalidConfidence,
	ErrCompleteRequired,
	ErrContractorRequired,
	ErrInvalidImportFile,
}

// serverSide is ordered outermost first: ErrExport wraps storage failures.
var serverSide = []error{
	ErrExport,
	ErrArchiveDisabled,
	ErrUnableToUploadFile,
	ErrCorruptState,
	ErrStorageUnavailable,
}

// ServerCause returns the outermost server-side sentinel in err's chain, or
// nil when there is none. Clients see only this; wrapped driver and file
// system details stay in the logs.
func ServerCause(err error) error {
	for _, target := range serverSide {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// IsInvalidInput reports whether err belongs to the InvalidInput kind.
func IsInvalidInput(err error) bool {
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err belongs to the NotFound kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWhiteboardNotFound) || errors.Is(err, ErrWhiteboardOrChunkNotFound)
}

// IsUnauthenticated reports whether err belongs to the Unauthenticated kind.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrInvalidToken)
}

// StatusCode maps an error to the HTTP status the REST surface reports for it.
// StorageUnavailable, CorruptState, export failures and anything unknown are 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsInvalidInput(err):
		return http.StatusBadRequest
	case IsUnauthenticated(err):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
