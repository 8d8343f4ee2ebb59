package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTimeBlocks(t *testing.T) {
	blocks := AllTimeBlocks()
	require.Len(t, blocks, BlocksPerDay)

	assert.Equal(t, "00:00:00-00:15:00", blocks[0])
	assert.Equal(t, "06:15:00-06:30:00", blocks[25])
	assert.Equal(t, "23:45:00-00:00:00", blocks[95])

	// Zero-padding keeps the list lexicographically sorted up to the
	// midnight-wrapping last block.
	for i := 1; i < BlocksPerDay-1; i++ {
		assert.Less(t, blocks[i-1], blocks[i])
	}
}

func TestNormalizeBlock(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"00:00:00-00:15:00", "00:00:00-00:15:00"},
		{"0:15-0:30", "00:15:00-00:30:00"},
		{"00:15:00 - 00:30:00", "00:15:00-00:30:00"},
		{"9:45-10:00", "09:45:00-10:00:00"},
		{"23:45-24:00", "23:45:00-00:00:00"},
	}
	for _, tc := range tests {
		got, err := NormalizeBlock(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestNormalizeBlockRejectsNonCanonical(t *testing.T) {
	for _, raw := range []string{"", "00:00:00", "00:00-00:20", "07:10-07:25", "9 to 10", "25:00-25:15"} {
		_, err := NormalizeBlock(raw)
		assert.Error(t, err, raw)
	}
}

func TestBlockIndex(t *testing.T) {
	assert.Equal(t, 0, BlockIndex("00:00:00-00:15:00"))
	assert.Equal(t, 95, BlockIndex("23:45:00-00:00:00"))
	assert.Equal(t, -1, BlockIndex("not a block"))
}

func TestBlockStartHelpers(t *testing.T) {
	assert.Equal(t, "06", BlockStartHour("06:15:00-06:30:00"))
	assert.Equal(t, "06:15", BlockStart("06:15:00-06:30:00"))
	assert.Equal(t, "", BlockStartHour(""))
	assert.Equal(t, 1, MinuteSlot("06:15:00-06:30:00"))
	assert.Equal(t, -1, MinuteSlot("bogus"))
}

func TestISOWeekKey(t *testing.T) {
	// Jan 1st 2024 is a Monday, ISO week 1.
	assert.Equal(t, "2024-W01", ISOWeekKey(Date(2024, time.January, 1)))
	// Dec 30th 2024 belongs to ISO week 1 of 2025.
	assert.Equal(t, "2025-W01", ISOWeekKey(Date(2024, time.December, 30)))
}

func TestDaysBetween(t *testing.T) {
	a := Date(2024, time.March, 1)
	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, 31, DaysBetween(a, Date(2024, time.April, 1)))
}
