package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeedForUsesLastSevenCharacters(t *testing.T) {
	t.Parallel()

	seed, ok := SeedFor("202501010000000042", time.Time{})
	assert.True(t, ok)
	assert.Equal(t, int64(42), seed)

	seed, ok = SeedFor("202501010000301902", time.Time{})
	assert.True(t, ok)
	assert.Equal(t, int64(301902), seed)
}

func TestSeedForFallsBackToWallClockOnMalformedInput(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []RoundID{"20250101000abcdefg", "20250101000-123456", "20250101000  \t x12"} {
		seed, ok := SeedFor(id, now)
		assert.False(t, ok, "tail of %q has no leading digits", id)
		assert.Equal(t, now.UnixMilli(), seed)
	}

	seed, ok := SeedFor("", now)
	assert.False(t, ok)
	assert.Equal(t, now.UnixMilli(), seed)
}

func TestSeedForParsesLeadingDigitsOfTail(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		id   RoundID
		want int64
	}{
		{id: "2025010100000012ab", want: 12},
		{id: "2025010100000abcde", want: 0},
		{id: "20250101000  +42xy", want: 42},
		{id: "12x", want: 12},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.id), func(t *testing.T) {
			t.Parallel()

			seed, ok := SeedFor(tc.id, now)
			assert.True(t, ok)
			assert.Equal(t, tc.want, seed)
			assert.Equal(t, DigitFor(tc.id, now.Add(time.Hour)), DigitFor(tc.id, now))
		})
	}
}

func TestDigitForMatchesReferenceFormula(t *testing.T) {
	t.Parallel()

	reference := func(seed int64) int {
		next := (1103515245*seed + 12345) % (1 << 31)
		return int(float64(next) / float64(1<<31) * 10)
	}

	assert.Equal(t, reference(42), DigitFor("202501010000000042", time.Time{}))
	assert.Equal(t, 5, DigitFor("202501010000000042", time.Time{}))
	assert.Equal(t, 3, DigitFor("202501010000000781", time.Time{}))
	assert.Equal(t, 8, DigitFor("202501010000000782", time.Time{}))
	assert.Equal(t, 0, DigitFor("202501010000000000", time.Time{}))
}

func TestDigitForIsExactForLargeSeeds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, DigitFor("202501010009999999", time.Time{}))
}

func TestDigitForIsDeterministic(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for serial := 0; serial < 500; serial++ {
		id := FormatRoundID(ts, 30*time.Second, serial)
		first := DigitFor(id, time.Now())
		assert.Equal(t, first, DigitFor(id, time.Now().Add(time.Hour)))
		assert.GreaterOrEqual(t, first, 0)
		assert.LessOrEqual(t, first, 9)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		digit    int
		category Category
		color    Color
	}{
		{0, CategorySmall, ColorRedViolet},
		{1, CategorySmall, ColorGreen},
		{2, CategorySmall, ColorRed},
		{3, CategorySmall, ColorGreen},
		{4, CategorySmall, ColorRed},
		{5, CategoryBig, ColorGreenViolet},
		{6, CategoryBig, ColorRed},
		{7, CategoryBig, ColorGreen},
		{8, CategoryBig, ColorRed},
		{9, CategoryBig, ColorGreen},
	}

	for _, tc := range tests {
		got := Classify(tc.digit)
		assert.Equal(t, tc.digit, got.Digit)
		assert.Equal(t, tc.category, got.Category, "digit %d", tc.digit)
		assert.Equal(t, tc.color, got.Color, "digit %d", tc.digit)
		assert.Equal(t, tc.digit == 0 || tc.digit == 5, got.Color.Dual(), "digit %d", tc.digit)
	}

	assert.Equal(t, Outcome{Digit: 10}, Classify(10))
}

func TestOutcomeForBigDualDigit(t *testing.T) {
	t.Parallel()

	got := OutcomeFor("202501010000000005", time.Time{})
	assert.Equal(t, Outcome{Digit: 5, Category: CategoryBig, Color: ColorGreenViolet}, got)
}
