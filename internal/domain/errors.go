package domain

import "errors"

// ErrInvalidInput matches every request validation failure.
var ErrInvalidInput = errors.New("invalid input")

// MissingFieldsMessage is returned when diameter or velocity is absent or not a number.
const MissingFieldsMessage = "Valid 'diameter' and 'velocity' values are required (in MKS units)."

// OutOfRangeMessage is returned when finite inputs overflow the calculation.
const OutOfRangeMessage = "Input values are too large to simulate (in MKS units)."

// InputError is a validation failure with a caller-facing message.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
