package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2021-06-01", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2021-06-01T10:30:00Z", time.Date(2021, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2021-06-01T12:30:00+02:00", time.Date(2021, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2021-06-01T10:30:00", time.Date(2021, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"1964-05", time.Date(1964, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"1964", time.Date(1964, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("01/06/2021")
	assert.Error(t, err)
}

func TestAddDaysAndHours(t *testing.T) {
	base := time.Date(2021, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2022, 1, 14, 0, 0, 0, 0, time.UTC), AddDays(base, 15))
	assert.Equal(t, time.Date(2021, 12, 29, 0, 0, 0, 0, time.UTC), AddDays(base, -1))
	assert.Equal(t, time.Date(2021, 12, 30, 12, 0, 0, 0, time.UTC), AddDays(base, 0.5))
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), AddHours(base, 48))
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2022, 3, 4, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2022-03-04T00:00:00.000Z", iso(StartOfDay(at)))
	assert.Equal(t, "2022-03-04T23:59:59.999Z", iso(EndOfDay(at)))
}

func TestIsAtLeastYearsOld(t *testing.T) {
	birth := time.Date(1972, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("day before birthday", func(t *testing.T) {
		assert.False(t, IsAtLeastYearsOld(birth, time.Date(2022, 3, 9, 23, 0, 0, 0, time.UTC), 50))
	})
	t.Run("on birthday the millisecond offset holds it back", func(t *testing.T) {
		assert.False(t, IsAtLeastYearsOld(birth, time.Date(2022, 3, 10, 12, 0, 0, 0, time.UTC), 50))
	})
	t.Run("day after birthday", func(t *testing.T) {
		assert.True(t, IsAtLeastYearsOld(birth, time.Date(2022, 3, 11, 0, 0, 0, 0, time.UTC), 50))
	})
	t.Run("birth after as-of date", func(t *testing.T) {
		assert.False(t, IsAtLeastYearsOld(birth, time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), 1))
	})
	t.Run("unreadable birth date", func(t *testing.T) {
		assert.False(t, holderOver50("sometime", time.Now()))
	})
}
