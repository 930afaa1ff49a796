package domain

const (
	PointsPerLevel = 100
	WeeklyGoal     = 5
)

// Standing is the slice of the user profile the data store reads and patches.
type Standing struct {
	UserID          string
	SparkPoints     int
	Level           int
	CompletedQuests int
	Streak          int
	CurrentMood     string
}

// StandingPatch is handed back to the session store; nil fields are untouched.
type StandingPatch struct {
	SparkPoints     *int
	Level           *int
	CompletedQuests *int
	CurrentMood     *string
}

func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// AddPoints adds delta (which may be negative) and recomputes the level.
// Points never drop below zero.
func (s Standing) AddPoints(delta int) StandingPatch {
	points := s.SparkPoints + delta
	if points < 0 {
		points = 0
	}
	level := LevelForPoints(points)
	return StandingPatch{SparkPoints: &points, Level: &level}
}

func (s Standing) CompleteQuest(points int) StandingPatch {
	patch := s.AddPoints(points)
	completed := s.CompletedQuests + 1
	patch.CompletedQuests = &completed
	return patch
}

func (p StandingPatch) Apply(s Standing) Standing {
	out := s
	if p.SparkPoints != nil {
		out.SparkPoints = *p.SparkPoints
	}
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.CompletedQuests != nil {
		out.CompletedQuests = *p.CompletedQuests
	}
	if p.CurrentMood != nil {
		out.CurrentMood = *p.CurrentMood
	}
	return out
}

type LevelProgress struct {
	Level   int
	Current int
	Needed  int
	Percent float64
}

// Progress is the position inside the current level as shown on the rewards screen.
func (s Standing) Progress() LevelProgress {
	level := s.Level
	if level < 1 {
		level = 1
	}
	current := s.SparkPoints - (level-1)*PointsPerLevel
	if current < 0 {
		current = 0
	}
	pct := float64(current) / float64(PointsPerLevel) * 100
	if pct > 100 {
		pct = 100
	}
	return LevelProgress{Level: level, Current: current, Needed: PointsPerLevel, Percent: pct}
}
