package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalTable(t *testing.T) {
	want := []time.Duration{
		1 * time.Minute,
		10 * time.Minute,
		24 * time.Hour,
		3 * 24 * time.Hour,
		7 * 24 * time.Hour,
		14 * 24 * time.Hour,
	}
	for level, d := range want {
		assert.Equal(t, d, IntervalFor(int32(level)), "level %d", level)
	}
}

func TestIntervalMonotonic(t *testing.T) {
	for level := int32(1); level <= MaxLevel; level++ {
		assert.GreaterOrEqual(t, IntervalFor(level), IntervalFor(level-1))
	}
}

func TestIntervalOutOfRangeFallsBackToMastered(t *testing.T) {
	assert.Equal(t, IntervalFor(MaxLevel), IntervalFor(-1))
	assert.Equal(t, IntervalFor(MaxLevel), IntervalFor(6))
	assert.Equal(t, IntervalFor(MaxLevel), IntervalFor(99))
}

func TestNextReviewAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	require.Equal(t, now.Add(24*time.Hour), NextReviewAt(2, now))
	require.Equal(t, now.Add(14*24*time.Hour), NextReviewAt(9, now))
}

func TestNextLevelStaysInRange(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		for _, correct := range []bool{true, false} {
			next := NextLevel(level, correct)
			assert.GreaterOrEqual(t, next, MinLevel)
			assert.LessOrEqual(t, next, MaxLevel)
		}
	}
}

func TestNextLevelSaturates(t *testing.T) {
	assert.Equal(t, MaxLevel, NextLevel(MaxLevel, true))
	assert.Equal(t, MinLevel, NextLevel(MinLevel, false))
	assert.Equal(t, int32(3), NextLevel(2, true))
	assert.Equal(t, int32(1), NextLevel(2, false))
}

func TestNextLevelClampsInput(t *testing.T) {
	assert.Equal(t, MaxLevel, NextLevel(12, true))
	assert.Equal(t, MinLevel, NextLevel(-3, false))
}

func TestNextLevelGraded(t *testing.T) {
	cases := []struct {
		name    string
		current int32
		quality int32
		want    int32
	}{
		{"perfect recall promotes", 2, 5, 3},
		{"threshold quality promotes", 2, 3, 3},
		{"hesitant recall holds", 2, 2, 2},
		{"barely recalled holds", 2, 1, 2},
		{"blackout demotes", 2, 0, 1},
		{"promotion saturates", 5, 5, 5},
		{"demotion saturates", 0, 0, 0},
		{"quality above scale clamps to promote", 4, 9, 5},
		{"quality below scale clamps to demote", 4, -2, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextLevelGraded(tc.current, tc.quality))
		})
	}
}
