package mail

import "errors"

var (
	// ErrNoRecipient indicates no recipient was set on To, Cc or Bcc.
	ErrNoRecipient = errors.New("mail: email must have at least one recipient")

	// ErrNoBody indicates neither an HTML nor a text body was set.
	ErrNoBody = errors.New("mail: email must have at least one body")

	// ErrInvalidAddress indicates an address failed syntactic validation.
	ErrInvalidAddress = errors.New("mail: invalid email address")
)
