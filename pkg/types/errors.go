package types

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNominationNotFound   = errors.New("nomination not found")
	ErrEntrepreneurNotFound = errors.New("entrepreneur not found")
	ErrEntrepreneurExists   = errors.New("an entrepreneur already references this nomination")
	ErrInvalidStatus        = errors.New("invalid nomination status")
	ErrInvalidTransition    = errors.New("nomination status transition not allowed")
	ErrCategoryExists       = errors.New("industry category already exists")
	ErrUploadInProgress     = errors.New("an upload for this image slot is already in progress")
	ErrUnsupportedImage     = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds the upload size limit")
	ErrUnauthenticated      = errors.New("unauthenticated")
)

// ValidationError carries per-field messages keyed by form field name.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func FieldErrorsOf(err error) (map[string]string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.FieldErrors, true
	}
	return nil, false
}
