package errors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidSignature  = errors.New("invalid event signature")
	ErrDataIntegrity     = errors.New("event payload integrity violation")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDelivery          = errors.New("notification delivery failed")
	ErrInvalidLineItem   = errors.New("invalid line item")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)
