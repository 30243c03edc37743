package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// RoundIDLength is the length of a well-formed round id: a 14 character
	// block timestamp followed by a 4 digit serial field.
	RoundIDLength = 18

	timestampLayout  = "20060102150405"
	timestampLength  = len(timestampLayout)
	serialFieldWidth = RoundIDLength - timestampLength
	prefixLength     = RoundIDLength - serialDigits
	serialDigits     = 3
)

// RoundID identifies a round, e.g. "202501010000300781".
type RoundID string

func (id RoundID) String() string {
	return string(id)
}

// Valid reports whether id has the fixed 18 character layout.
func (id RoundID) Valid() bool {
	return len(id) == RoundIDLength
}

// Prefix returns the leading 15 characters kept by NextSerial.
func (id RoundID) Prefix() (string, error) {
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q has %d characters, want %d", ErrMalformedRoundID, string(id), len(id), RoundIDLength)
	}

	return string(id[:prefixLength]), nil
}

// Serial returns the whole serial field of a well-formed id.
func (id RoundID) Serial() (int, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("%w: %q has %d characters, want %d", ErrMalformedRoundID, string(id), len(id), RoundIDLength)
	}

	serial, err := parseDigits(string(id[timestampLength:]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedRoundID, string(id), err)
	}

	return serial, nil
}

// FormatRoundID builds the id of the round that started at ts. Seconds are
// floored to the round duration block; serial is zero padded to 4 digits and
// never wrapped.
func FormatRoundID(ts time.Time, duration time.Duration, serial int) RoundID {
	block := int(duration / time.Second)
	if block <= 0 {
		block = 1
	}

	floored := ts.Add(-time.Duration(ts.Second()%block)*time.Second - time.Duration(ts.Nanosecond()))
	return RoundID(floored.Format(timestampLayout) + fmt.Sprintf("%0*d", serialFieldWidth, serial))
}

// NextSerial increments the low three serial digits of id and keeps the first
// 15 characters untouched. The increment never carries into the timestamp, so
// a trailing "999" becomes "1000" and the result grows to 19 characters.
func NextSerial(id RoundID) (RoundID, error) {
	prefix, err := id.Prefix()
	if err != nil {
		return "", err
	}

	serial, err := parseDigits(string(id[prefixLength:]))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedRoundID, string(id), err)
	}

	return RoundID(prefix + fmt.Sprintf("%0*d", serialDigits, serial+1)), nil
}

func parseDigits(raw string) (int, error) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, fmt.Errorf("%q is not a decimal number", raw)
	}

	return strconv.Atoi(raw)
}
