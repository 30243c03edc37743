package domain

import "errors"

var (
	ErrMalformedRoundID   = errors.New("malformed round id")
	ErrInvalidSerialInput = errors.New("invalid serial input")
	ErrInvalidClockConfig = errors.New("invalid round clock config")
	ErrArchiveUnavailable = errors.New("round archive unavailable")
	ErrReplayTooLarge     = errors.New("replay window too large")
)
