package ubs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isoDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectInterval(t *testing.T) {
	start := isoDate(2024, time.May, 1)

	cases := []struct {
		name string
		days int
		want int
	}{
		{"single day", 1, 7},
		{"exactly a week", 7, 7},
		{"just over a week", 8, 30},
		{"a month", 30, 30},
		{"a quarter", 91, 180},
		{"a year", 365, 365},
		{"three years", 1095, 1095},
		{"beyond the largest window", 2000, 1095},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end := start.AddDate(0, 0, tc.days-1)
			assert.Equal(t, tc.want, SelectInterval(start, end))
		})
	}
}

func TestSelectIntervalPicksSmallestCover(t *testing.T) {
	start := isoDate(2024, time.January, 1)
	largest := chartIntervals[len(chartIntervals)-1]

	for span := 1; span <= largest+5; span++ {
		got := SelectInterval(start, start.AddDate(0, 0, span-1))

		if span > largest {
			assert.Equalf(t, largest, got, "span %d days", span)
			continue
		}
		assert.GreaterOrEqualf(t, got, span, "span %d days", span)
		for _, interval := range chartIntervals {
			if interval >= span {
				assert.Equalf(t, interval, got, "span %d days", span)
				break
			}
		}
	}
}

func TestSelectIntervalIgnoresTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	start := time.Date(2024, time.May, 1, 23, 30, 0, 0, loc)
	end := time.Date(2024, time.May, 2, 0, 15, 0, 0, loc)
	assert.Equal(t, 7, SelectInterval(start, end))
}
