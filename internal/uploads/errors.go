package uploads

import "errors"

// Domain errors for upload operations.
var (
	ErrNotFound  = errors.New("upload not found")
	ErrDuplicate = errors.New("upload already exists")
)
