package validators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCreateChunk checks the chunk body and returns one error per
// broken rule, translated to the errs taxonomy.
func ValidateCreateChunk(request *models.CreateChunkRequest) []error {
	var errors []error
	if request == nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}

	err := validate.Struct(request)
	if err == nil {
		return nil
	}
	return translate(err)
}

func ValidateSetComplete(request *models.SetCompleteRequest) []error {
	var errors []error
	if request == nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}
	if request.Complete == nil {
		errors = append(errors, errs.ErrCompleteRequired)
	}
	return errors
}

func translate(err error) []error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []error{errs.ErrInvalidRequestBody}
	}

	var out []error
	seen := map[error]bool{}
	for _, fieldError := range fieldErrors {
		var mapped error
		switch {
		case fieldError.StructField() == "Confidence":
			mapped = errs.ErrInvalidConfidence
		case strings.Contains(fieldError.StructNamespace(), "Coordinates"):
			mapped = errs.ErrInvalidCoordinates
		default:
			mapped = errs.ErrInvalidInput
		}
		if !seen[mapped] {
			seen[mapped] = true
			out = append(out, mapped)
		}
	}
	return out
}
