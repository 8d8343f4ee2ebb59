package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Canonical 15-minute time blocks
// -----------------------------------------------------------------------------
// Every trading day has exactly 96 blocks of the fixed lexicographic form
// "HH:MM:SS-HH:MM:SS". Zero-padding is what makes lexicographic and
// chronological order coincide, so ingestion must normalize every block
// through this package before a record enters the store.
// -----------------------------------------------------------------------------

const BlocksPerDay = 96

// canonicalBlocks is built once at init; index = blockIndex (0..95).
var canonicalBlocks []string

// canonicalSet maps block -> index for O(1) validation.
var canonicalSet map[string]int

func init() {
	canonicalBlocks = make([]string, 0, BlocksPerDay)
	canonicalSet = make(map[string]int, BlocksPerDay)
	for i := 0; i < BlocksPerDay; i++ {
		startMin := i * 15
		endMin := startMin + 15
		block := fmt.Sprintf("%02d:%02d:00-%02d:%02d:00",
			startMin/60, startMin%60, (endMin/60)%24, endMin%60)
		canonicalBlocks = append(canonicalBlocks, block)
		canonicalSet[block] = i
	}
}

// -----------------------------------------------------------------------------

// AllTimeBlocks returns the 96 canonical blocks in chronological order.
// The returned slice is shared; callers must not mutate it.
func AllTimeBlocks() []string {
	return canonicalBlocks
}

// -----------------------------------------------------------------------------

// IsCanonicalBlock reports whether block is one of the 96 canonical forms.
func IsCanonicalBlock(block string) bool {
	_, ok := canonicalSet[block]
	return ok
}

// -----------------------------------------------------------------------------

// BlockIndex returns the 0..95 index of a canonical block, or -1.
func BlockIndex(block string) int {
	if i, ok := canonicalSet[block]; ok {
		return i
	}
	return -1
}

// -----------------------------------------------------------------------------

// NormalizeBlock rewrites a loosely formatted block string ("0:15-0:30",
// "00:15:00 - 00:30:00") into canonical form. Returns an error when the
// string cannot be mapped onto a canonical block.
func NormalizeBlock(raw string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return "", fmt.Errorf("time block %q: expected start-end", raw)
	}

	start, err := normalizeClock(parts[0])
	if err != nil {
		return "", fmt.Errorf("time block %q: %w", raw, err)
	}
	end, err := normalizeClock(parts[1])
	if err != nil {
		return "", fmt.Errorf("time block %q: %w", raw, err)
	}

	block := start + ":00-" + end + ":00"
	// "24:00" end markers appear in some exports for the last block of day
	block = strings.Replace(block, "24:00:00", "00:00:00", 1)
	if !IsCanonicalBlock(block) {
		return "", fmt.Errorf("time block %q: not a canonical 15-minute block", raw)
	}
	return block, nil
}

// normalizeClock turns "H", "H:MM" or "HH:MM:SS" into zero-padded "HH:MM".
func normalizeClock(s string) (string, error) {
	fields := strings.Split(s, ":")
	if len(fields) < 1 || len(fields) > 3 {
		return "", fmt.Errorf("bad clock value %q", s)
	}

	h, err := strconv.Atoi(fields[0])
	if err != nil || h < 0 || h > 24 {
		return "", fmt.Errorf("bad hour in %q", s)
	}

	m := 0
	if len(fields) >= 2 {
		m, err = strconv.Atoi(fields[1])
		if err != nil || m < 0 || m > 59 {
			return "", fmt.Errorf("bad minute in %q", s)
		}
	}

	return fmt.Sprintf("%02d:%02d", h%24, m), nil
}

// -----------------------------------------------------------------------------

// BlockStartHour returns the two-digit start hour of a block ("06" for
// "06:15:00-06:30:00"), or "" for malformed input.
func BlockStartHour(block string) string {
	if len(block) < 2 {
		return ""
	}
	return block[:2]
}

// -----------------------------------------------------------------------------

// BlockStart returns the "HH:MM" start of a block, or "" for malformed input.
func BlockStart(block string) string {
	if len(block) < 5 {
		return ""
	}
	return block[:5]
}

// -----------------------------------------------------------------------------

// MinuteSlot returns 0..3 for the quarter-hour a block starts at, or -1.
func MinuteSlot(block string) int {
	i := BlockIndex(block)
	if i < 0 {
		return -1
	}
	return i % 4
}
