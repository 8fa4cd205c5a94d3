package validators

import (
	"strings"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
)

// ValidateName returns the trimmed contractor name, or ErrNameRequired.
func ValidateName(request *models.AuthRequest) (string, []error) {
	var errors []error
	if request == nil {
		errors = append(errors, errs.ErrNameRequired)
		return "", errors
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		errors = append(errors, errs.ErrNameRequired)
		return "", errors
	}
	return name, nil
}
