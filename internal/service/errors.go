package service

import "errors"

var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrLastJob indicates a refusal to delete the only remaining job.
	ErrLastJob = errors.New("cannot delete the last job")

	// ErrLastPerson indicates a refusal to delete the only remaining person.
	ErrLastPerson = errors.New("cannot delete the last person")

	// ErrCardRequired indicates a credit expense without a card.
	ErrCardRequired = errors.New("credit payments require a card")

	// ErrInvalid indicates a record that fails validation.
	ErrInvalid = errors.New("invalid record")
)
