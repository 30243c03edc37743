package domain

import (
	"strings"
	"time"
)

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulusLog = 31

	seedWidth = 7
)

// SeedFor extracts the generator seed from the last 7 characters of id. Like
// a lenient integer parse, leading spaces and a plus sign are skipped and the
// seed is the run of digits that follows, so "0012ab" seeds 12. The second
// return value is false when that run is empty; the seed is then the Unix
// millisecond time of now and the outcome is no longer reproducible. A minus
// sign also falls back since the generator is only defined for non-negative
// seeds.
func SeedFor(id RoundID, now time.Time) (int64, bool) {
	raw := string(id)
	if len(raw) > seedWidth {
		raw = raw[len(raw)-seedWidth:]
	}

	seed, ok := leadingDigits(raw)
	if !ok {
		return now.UnixMilli(), false
	}

	return seed, true
}

func leadingDigits(raw string) (int64, bool) {
	raw = strings.TrimLeft(raw, " \t\n\r\v\f")
	raw = strings.TrimPrefix(raw, "+")

	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	var seed int64
	for _, digit := range raw[:end] {
		seed = seed*10 + int64(digit-'0')
	}

	return seed, true
}

// lcgStep runs one step of seed' = (1103515245*seed + 12345) mod 2^31. The
// wrapping uint64 product keeps the low 31 bits exact for any seed.
func lcgStep(seed int64) uint64 {
	return (lcgMultiplier*uint64(seed) + lcgIncrement) & (1<<lcgModulusLog - 1)
}

// DigitFor returns floor(seed'/2^31 * 10) for the seed of id. Each call
// reseeds; there is no generator state shared between ids.
func DigitFor(id RoundID, now time.Time) int {
	seed, _ := SeedFor(id, now)
	return digitFromSeed(seed)
}

func digitFromSeed(seed int64) int {
	return int((lcgStep(seed) * 10) >> lcgModulusLog)
}

type Category string

const (
	CategorySmall Category = "Small"
	CategoryBig   Category = "Big"
)

type Color string

const (
	ColorRed         Color = "red"
	ColorGreen       Color = "green"
	ColorRedViolet   Color = "red-violet"
	ColorGreenViolet Color = "green-violet"
)

// Dual reports whether the color carries the violet secondary tag.
func (c Color) Dual() bool {
	return strings.HasSuffix(string(c), "-violet")
}

var digitColors = [10]Color{
	ColorRedViolet,
	ColorGreen,
	ColorRed,
	ColorGreen,
	ColorRed,
	ColorGreenViolet,
	ColorRed,
	ColorGreen,
	ColorRed,
	ColorGreen,
}

// Outcome is the classified result of a round.
type Outcome struct {
	Digit    int      `json:"digit"`
	Category Category `json:"category"`
	Color    Color    `json:"color"`
}

// Classify maps a digit in [0,9] to its category and color tag. Digits outside
// that range classify to the zero Outcome with only Digit set.
func Classify(digit int) Outcome {
	if digit < 0 || digit > 9 {
		return Outcome{Digit: digit}
	}

	category := CategorySmall
	if digit >= 5 {
		category = CategoryBig
	}

	return Outcome{
		Digit:    digit,
		Category: category,
		Color:    digitColors[digit],
	}
}

// OutcomeFor derives and classifies the outcome of id.
func OutcomeFor(id RoundID, now time.Time) Outcome {
	return Classify(DigitFor(id, now))
}
