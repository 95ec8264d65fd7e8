package contract

import "errors"

var (
	ErrNotFound                = errors.New("farmer not found")
	ErrMissingProfileData      = errors.New("name and location are required to create a farmer")
	ErrStorage                 = errors.New("storage failure")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrValidation              = errors.New("validation failed")
)
