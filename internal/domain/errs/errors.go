package errs

import "errors"

var (
	ErrCameraNotFound   = errors.New("camera not found")
	ErrConfigNotFound   = errors.New("storage config not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	ErrInvalidPolicy = errors.New("recording interval and retention must be positive")
)
