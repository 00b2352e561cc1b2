package stories

import "errors"

var (
	ErrNotFound     = errors.New("story not found")
	ErrInvalidInput = errors.New("invalid story input")
	ErrNoImage      = errors.New("story has no image")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
)
