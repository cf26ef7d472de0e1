package srs

// clampLevel forces a level into [MinLevel, MaxLevel]. Persisted rows
// should already be in range; inputs from the wire may not be.
func clampLevel(level int32) int32 {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// NextLevel advances or demotes a mastery level by one, saturating at
// the scale boundaries.
func NextLevel(current int32, correct bool) int32 {
	current = clampLevel(current)
	if correct {
		return clampLevel(current + 1)
	}
	return clampLevel(current - 1)
}

// NextLevelGraded applies a graded 0-5 quality score: 3 and above
// promotes, 1-2 holds, 0 demotes. Quality values outside 0-5 are
// clamped rather than rejected, mirroring the level clamping policy.
func NextLevelGraded(current, quality int32) int32 {
	current = clampLevel(current)
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}
	switch {
	case quality >= 3:
		return clampLevel(current + 1)
	case quality >= 1:
		return current
	default:
		return clampLevel(current - 1)
	}
}
