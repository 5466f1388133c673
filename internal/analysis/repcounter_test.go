package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RehabSense/internal/entity"
)

func squatFrame(kneeAngle float64) AngleSet {
	return AngleSet{"left_knee": kneeAngle, "right_knee": kneeAngle}
}

func TestRepCounter_SingleSquatRep(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	var status RepStatus
	for _, angle := range []float64{170, 150, 100, 80, 95, 130, 160} {
		status = counter.Update(squatFrame(angle), true)
	}

	assert.Equal(t, 1, status.TotalReps)
	assert.Equal(t, 1, status.CorrectReps)
	assert.Equal(t, 0, status.IncorrectReps)
	assert.Equal(t, RepStateUp, status.State)
	require.NotNil(t, status.CurrentAngle)
	assert.Equal(t, 160.0, *status.CurrentAngle)
}

func TestRepCounter_IncorrectFormRep(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	counter.Update(squatFrame(100), false)
	status := counter.Update(squatFrame(160), false)

	assert.Equal(t, 1, status.TotalReps)
	assert.Equal(t, 0, status.CorrectReps)
	assert.Equal(t, 1, status.IncorrectReps)
}

func TestRepCounter_CorrectnessSampledAtCompletion(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	// Form breaks down during the descent but recovers by the time the rep
	// completes; the verdict on the completing frame decides.
	counter.Update(squatFrame(100), false)
	counter.Update(squatFrame(80), false)
	status := counter.Update(squatFrame(150), true)

	assert.Equal(t, 1, status.CorrectReps)
	assert.Equal(t, 0, status.IncorrectReps)
}

func TestRepCounter_TotalInvariant(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	angles := []float64{170, 110, 150, 90, 160, 100, 125, 119, 121, 80, 130}
	for i, angle := range angles {
		status := counter.Update(squatFrame(angle), i%2 == 0)
		assert.Equal(t, status.TotalReps, status.CorrectReps+status.IncorrectReps)
	}
}

func TestRepCounter_NoPrimaryAngleLeavesStateUntouched(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)
	counter.Update(squatFrame(100), true)

	// Hip-only frame: no knee angles, so no transition and no counters.
	status := counter.Update(AngleSet{"left_hip": 90.0}, true)

	assert.Equal(t, RepStateDown, status.State)
	assert.Equal(t, 0, status.TotalReps)
}

func TestRepCounter_SingleSidedPrimaryAngle(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	counter.Update(AngleSet{"left_knee": 100.0}, true)
	status := counter.Update(AngleSet{"left_knee": 150.0}, true)

	assert.Equal(t, 1, status.TotalReps)
}

func TestRepCounter_ArmRaiseThreshold(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseArmRaise)

	// 100 is above the 90 degree arm-raise threshold, so still up.
	status := counter.Update(AngleSet{"left_shoulder": 100.0, "right_shoulder": 100.0}, true)
	assert.Equal(t, RepStateUp, status.State)

	status = counter.Update(AngleSet{"left_shoulder": 40.0, "right_shoulder": 40.0}, true)
	assert.Equal(t, RepStateDown, status.State)

	status = counter.Update(AngleSet{"left_shoulder": 120.0, "right_shoulder": 120.0}, true)
	assert.Equal(t, 1, status.TotalReps)
	assert.Equal(t, RepStateUp, status.State)
}

func TestRepCounter_ExactThresholdDoesNotTransition(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	// Both transitions are strict inequalities.
	status := counter.Update(squatFrame(120.0), true)
	assert.Equal(t, RepStateUp, status.State)

	counter.Update(squatFrame(100.0), true)
	status = counter.Update(squatFrame(120.0), true)
	assert.Equal(t, RepStateDown, status.State)
	assert.Equal(t, 0, status.TotalReps)
}

func TestRepCounter_AngleHistoryBounded(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)

	for i := 0; i < 25; i++ {
		counter.Update(squatFrame(150.0+float64(i)), true)
	}

	assert.Len(t, counter.angleHistory, angleHistorySize)
	require.NotNil(t, counter.Status().CurrentAngle)
	assert.Equal(t, 174.0, *counter.Status().CurrentAngle)
}

func TestRepCounter_Reset(t *testing.T) {
	counter := NewRepCounter(entity.ExerciseSquat)
	counter.Update(squatFrame(100), true)
	counter.Update(squatFrame(160), true)

	counter.Reset()

	status := counter.Status()
	assert.Equal(t, 0, status.TotalReps)
	assert.Equal(t, RepStateUp, status.State)
	assert.Nil(t, status.CurrentAngle)
}
