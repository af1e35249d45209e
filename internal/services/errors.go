package services

import "errors"

var (
	// ErrValidation marks requests rejected before any collaborator is called.
	ErrValidation = errors.New("validation error")

	// access code validation outcomes
	ErrAccountNotFound   = errors.New("phone number not correct")
	ErrInvalidAccessCode = errors.New("invalid access code")

	// ErrMalformedGeneration is returned when the model output does not match
	// the {"data": [...]} contract.
	ErrMalformedGeneration = errors.New("malformed generated content")
)
