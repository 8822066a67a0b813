package tetris

// points awarded for clearing 1, 2, 3 or 4 rows at once.
var lineScore = [4]uint{10, 30, 60, 100}

// monoBonus is added for each cleared row made of a single color.
const monoBonus = 20

// linesPerLevel is the number of cleared rows needed to level up.
const linesPerLevel = 10

// ScoreDelta returns the points for clearing rows rows at once, mono of
// them single colored, at the given level.
func ScoreDelta(rows, mono int, level uint) uint {
	if rows <= 0 {
		return 0
	}
	base := lineScore[min(rows, len(lineScore))-1]
	return (base + monoBonus*uint(mono)) * level
}

// LevelFor returns the level reached after clearing lines rows.
func LevelFor(d Difficulty, lines uint) uint {
	return d.baseLevel() + lines/linesPerLevel
}

// FallSpeed returns the number of ticks a piece waits before falling one
// row at the given level. It never goes below the configured minimum.
func (c Config) FallSpeed(level uint) int {
	return max(c.MinFallSpeed, c.StartFallSpeed-int(level-1))
}
