package entity

import "time"

type ExerciseType string

const (
	ExerciseSquat    ExerciseType = "squat"
	ExerciseArmRaise ExerciseType = "arm-raise"
	ExerciseShoulder ExerciseType = "shoulder"
)

func (e ExerciseType) IsValid() bool {
	switch e {
	case ExerciseSquat, ExerciseArmRaise, ExerciseShoulder:
		return true
	default:
		return false
	}
}

func (e ExerciseType) String() string {
	return string(e)
}

type PerformanceRating string

const (
	RatingExcellent        PerformanceRating = "excellent"
	RatingGood             PerformanceRating = "good"
	RatingNeedsImprovement PerformanceRating = "needs-improvement"
)

// SessionMetrics is the cumulative per-session scoreboard pushed to clients
// after every frame and persisted when the session ends.
type SessionMetrics struct {
	TotalReps             int     `json:"totalReps"`
	CorrectReps           int     `json:"correctReps"`
	IncorrectReps         int     `json:"incorrectReps"`
	PostureAccuracy       float64 `json:"postureAccuracy"`
	MisalignmentsCount    int     `json:"misalignmentsCount"`
	IncorrectFormAlerts   int     `json:"incorrectFormAlerts"`
	AverageJointDeviation float64 `json:"averageJointDeviation"`
}

// NewSessionMetrics seeds the scoreboard with the defaults a fresh session
// reports before any frame arrives.
func NewSessionMetrics() SessionMetrics {
	return SessionMetrics{
		PostureAccuracy:       95.0,
		AverageJointDeviation: 2.5,
	}
}

type WorkoutSession struct {
	ID                    string     `db:"id"`
	UserID                string     `db:"user_id"`
	Exercise              string     `db:"exercise"`
	TotalReps             int        `db:"total_reps"`
	CorrectReps           int        `db:"correct_reps"`
	IncorrectReps         int        `db:"incorrect_reps"`
	PostureAccuracy       float64    `db:"posture_accuracy"`
	MisalignmentsCount    int        `db:"misalignments_count"`
	IncorrectFormAlerts   int        `db:"incorrect_form_alerts"`
	AverageJointDeviation float64    `db:"average_joint_deviation"`
	PerformanceRating     string     `db:"performance_rating"`
	StartedAt             time.Time  `db:"started_at"`
	EndedAt               *time.Time `db:"ended_at"`
}
