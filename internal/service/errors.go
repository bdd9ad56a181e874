package service

import "errors"

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized") // 401 Unauthorized
)

// Upload validation errors (client input)
var (
	ErrMissingFile  = errors.New("no file provided")                // 400
	ErrNotAnImage   = errors.New("file must be an image")           // 400
	ErrFileTooLarge = errors.New("file size must be less than 5MB") // 400
)
