package domain

import (
	"fmt"
	"strings"
	"time"
)

// Prediction is the round following a user supplied serial.
type Prediction struct {
	Base    RoundID `json:"base"`
	Next    RoundID `json:"next"`
	Outcome Outcome `json:"outcome"`
}

// PredictNext combines the 15 character prefix of current with the user's 1 to
// 3 serial digits and returns the round after it. It never touches clock
// state or history.
func PredictNext(current RoundID, input string, now time.Time) (Prediction, error) {
	digits := strings.TrimSpace(input)
	if digits == "" || len(digits) > serialDigits {
		return Prediction{}, fmt.Errorf("%w: want 1 to %d digits, got %q", ErrInvalidSerialInput, serialDigits, input)
	}
	if _, err := parseDigits(digits); err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrInvalidSerialInput, err)
	}

	prefix, err := current.Prefix()
	if err != nil {
		return Prediction{}, err
	}

	base := RoundID(prefix + strings.Repeat("0", serialDigits-len(digits)) + digits)
	next, err := NextSerial(base)
	if err != nil {
		return Prediction{}, err
	}

	return Prediction{
		Base:    base,
		Next:    next,
		Outcome: OutcomeFor(next, now),
	}, nil
}
