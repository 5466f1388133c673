package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RehabSense/internal/entity"
)

func TestPostureAnalyzer_PerfectSquatFrame(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	result := analyzer.RecordAndScore(AngleSet{"left_knee": 90.0})

	assert.Equal(t, 100.0, result.PostureAccuracy)
	assert.Equal(t, 0.0, result.AverageJointDeviation)
	assert.Equal(t, 0, result.MisalignmentsCount)
	assert.Empty(t, result.Alerts)
}

func TestPostureAnalyzer_MisalignedKneeNoAlertAtBoundary(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	// Deviation 20 over a 10 degree knee threshold: misaligned, but the
	// severe threshold is strictly greater than 20, so no alert.
	result := analyzer.RecordAndScore(AngleSet{"left_knee": 70.0})

	assert.Equal(t, 1, result.MisalignmentsCount)
	assert.Equal(t, 0, result.IncorrectFormAlerts)
	assert.Equal(t, 0.0, result.PostureAccuracy, "deviation 20 >= max 15 clamps the score")

	require.Len(t, result.Misalignments, 1)
	assert.Equal(t, "left_knee", result.Misalignments[0].Joint)
	assert.Equal(t, 20.0, result.Misalignments[0].Deviation)
	assert.Equal(t, 90.0, result.Misalignments[0].Ideal)
	assert.Equal(t, 70.0, result.Misalignments[0].Actual)
}

func TestPostureAnalyzer_SevereMisalignmentAlert(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	// Deviation 25 > 2x the 10 degree knee threshold.
	result := analyzer.RecordAndScore(AngleSet{"left_knee": 65.0})

	assert.Equal(t, 1, result.MisalignmentsCount)
	assert.Equal(t, 1, result.IncorrectFormAlerts)
	require.Len(t, result.Alerts, 1)
	assert.Contains(t, result.Alerts[0], "left_knee")
}

func TestPostureAnalyzer_AnglesOutsideProfileIgnored(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseShoulder)

	// Elbow angles are not part of the shoulder rotation profile.
	result := analyzer.RecordAndScore(AngleSet{
		"left_shoulder": 45.0,
		"left_elbow":    10.0,
	})

	assert.Equal(t, 100.0, result.PostureAccuracy)
	assert.Equal(t, 0, result.MisalignmentsCount)
}

func TestPostureAnalyzer_UnknownExerciseScoresHundred(t *testing.T) {
	// With an empty ideal profile no deviations are ever computed, so the
	// score stays at 100. The workout service rejects unknown exercises at
	// session start; this pins the permissive resolver behavior.
	analyzer := NewPostureAnalyzer(entity.ExerciseType("deadlift"))

	result := analyzer.RecordAndScore(AngleSet{"left_knee": 10.0})

	assert.Equal(t, 100.0, result.PostureAccuracy)
	assert.Equal(t, 0, result.MisalignmentsCount)
}

func TestPostureAnalyzer_CheckFormHasNoSideEffects(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)
	badFrame := AngleSet{"left_knee": 60.0}

	for i := 0; i < 5; i++ {
		assert.False(t, analyzer.CheckForm(badFrame))
	}

	summary := analyzer.Summary()
	assert.Equal(t, 0, summary.MisalignmentsCount, "CheckForm must not touch cumulative counters")
	assert.Equal(t, 0, summary.IncorrectFormAlerts)
	assert.Equal(t, 0.0, summary.AverageJointDeviation)
}

func TestPostureAnalyzer_RecordAndScoreAccumulates(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	analyzer.RecordAndScore(AngleSet{"left_knee": 65.0})
	analyzer.RecordAndScore(AngleSet{"left_knee": 65.0})

	summary := analyzer.Summary()
	assert.Equal(t, 2, summary.MisalignmentsCount)
	assert.Equal(t, 2, summary.IncorrectFormAlerts)
	assert.Equal(t, 25.0, summary.AverageJointDeviation)
}

func TestPostureAnalyzer_CheckFormVerdicts(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	assert.True(t, analyzer.CheckForm(AngleSet{"left_knee": 92.0, "right_knee": 88.0}))
	assert.False(t, analyzer.CheckForm(AngleSet{"left_knee": 70.0}))
	// No scoreable angles at all: zero deviation, full accuracy.
	assert.True(t, analyzer.CheckForm(AngleSet{}))
}

func TestPostureAnalyzer_DeviationHistoryBounded(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	// 60 frames deviating by 10 each, then one perfect frame. A bounded
	// 50-sample window must reflect the newest sample.
	for i := 0; i < 60; i++ {
		analyzer.RecordAndScore(AngleSet{"left_knee": 100.0})
	}
	analyzer.RecordAndScore(AngleSet{"left_knee": 90.0})

	assert.Len(t, analyzer.jointDeviations, deviationHistorySize)
	assert.InDelta(t, (49*10.0)/50.0, analyzer.Summary().AverageJointDeviation, 1e-9)
}

func TestPostureAnalyzer_Reset(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)
	analyzer.RecordAndScore(AngleSet{"left_knee": 65.0})

	analyzer.Reset()

	summary := analyzer.Summary()
	assert.Equal(t, PostureSummary{}, summary)
}

func TestPostureAnalyzer_ScoreRounding(t *testing.T) {
	analyzer := NewPostureAnalyzer(entity.ExerciseSquat)

	// Deviation 5 -> accuracy 100*(1-5/15) = 66.666... -> 66.67.
	result := analyzer.Score(AngleSet{"left_knee": 95.0})

	assert.Equal(t, 66.67, result.PostureAccuracy)
	assert.Equal(t, 5.0, result.AverageJointDeviation)
}
