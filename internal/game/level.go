package game

import "skyland/internal/catalog"

// LevelForStars returns the highest level whose threshold the star
// count has reached. The table is a step function; thresholds are
// inclusive and never interpolated.
func LevelForStars(levels []catalog.Level, stars int) catalog.Level {
	best := levels[0]
	for _, l := range levels {
		if l.RequiredStars <= stars {
			best = l
		}
	}
	return best
}

// Progress reports where the star count sits inside its level band.
func Progress(levels []catalog.Level, stars int) LevelProgress {
	cur := LevelForStars(levels, stars)
	out := LevelProgress{
		Level:          cur.Level,
		Title:          cur.Title,
		StarsIntoLevel: stars - cur.RequiredStars,
	}
	for _, l := range levels {
		if l.RequiredStars > stars {
			span := l.RequiredStars - cur.RequiredStars
			out.StarsToNext = l.RequiredStars - stars
			if span > 0 {
				out.PercentToNext = float64(out.StarsIntoLevel) / float64(span) * 100
			}
			return out
		}
	}
	// Top of the ladder.
	out.PercentToNext = 100
	return out
}

// CheckLevelUp is a pure diff of two lookups.
func CheckLevelUp(levels []catalog.Level, oldStars, newStars int) LevelChange {
	oldLevel := LevelForStars(levels, oldStars).Level
	newLevel := LevelForStars(levels, newStars).Level
	return LevelChange{
		LeveledUp: newLevel > oldLevel,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
	}
}
