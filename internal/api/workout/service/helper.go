package workoutService

import (
	"fmt"

	"RehabSense/internal/entity"
)

// performanceRating grades the session from posture accuracy and the share
// of correct repetitions.
func performanceRating(metrics entity.SessionMetrics) entity.PerformanceRating {
	if metrics.TotalReps == 0 {
		return entity.RatingNeedsImprovement
	}

	correctRatio := float64(metrics.CorrectReps) / float64(metrics.TotalReps)

	switch {
	case metrics.PostureAccuracy >= 90.0 && correctRatio >= 0.85:
		return entity.RatingExcellent
	case metrics.PostureAccuracy >= 75.0 && correctRatio >= 0.70:
		return entity.RatingGood
	default:
		return entity.RatingNeedsImprovement
	}
}

func feedbackMessage(metrics entity.SessionMetrics, rating entity.PerformanceRating) string {
	if metrics.TotalReps == 0 {
		return "Start your exercise! Keep your form correct."
	}

	switch rating {
	case entity.RatingExcellent:
		return fmt.Sprintf("Excellent form! %d/%d reps were perfect. Keep it up!", metrics.CorrectReps, metrics.TotalReps)
	case entity.RatingGood:
		return fmt.Sprintf("Good work! %d/%d reps were correct. Focus on maintaining form.", metrics.CorrectReps, metrics.TotalReps)
	default:
		return fmt.Sprintf("Keep practicing! %d/%d reps were correct. Focus on your posture.", metrics.CorrectReps, metrics.TotalReps)
	}
}

func metricAlerts(metrics entity.SessionMetrics) []string {
	alerts := make([]string, 0, 2)

	if metrics.MisalignmentsCount > 0 {
		alerts = append(alerts, fmt.Sprintf("Detected %d posture misalignments", metrics.MisalignmentsCount))
	}
	if metrics.IncorrectFormAlerts > 0 {
		alerts = append(alerts, fmt.Sprintf("%d incorrect form alerts", metrics.IncorrectFormAlerts))
	}

	return alerts
}
