package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RehabSense/internal/entity"
)

// standingKeypoints is a rough upright body in normalized image coordinates
// (y grows downward).
func standingKeypoints() entity.Keypoints {
	return entity.Keypoints{
		entity.KeypointLeftShoulder:  {X: 0.40, Y: 0.20, Visibility: 1},
		entity.KeypointRightShoulder: {X: 0.60, Y: 0.20, Visibility: 1},
		entity.KeypointLeftElbow:     {X: 0.35, Y: 0.40, Visibility: 1},
		entity.KeypointRightElbow:    {X: 0.65, Y: 0.40, Visibility: 1},
		entity.KeypointLeftWrist:     {X: 0.30, Y: 0.60, Visibility: 1},
		entity.KeypointRightWrist:    {X: 0.70, Y: 0.60, Visibility: 1},
		entity.KeypointLeftHip:       {X: 0.45, Y: 0.50, Visibility: 1},
		entity.KeypointRightHip:      {X: 0.55, Y: 0.50, Visibility: 1},
		entity.KeypointLeftKnee:      {X: 0.43, Y: 0.70, Visibility: 1},
		entity.KeypointRightKnee:     {X: 0.57, Y: 0.70, Visibility: 1},
		entity.KeypointLeftAnkle:     {X: 0.42, Y: 0.90, Visibility: 1},
		entity.KeypointRightAnkle:    {X: 0.58, Y: 0.90, Visibility: 1},
	}
}

func TestResolveAngles_Squat(t *testing.T) {
	angles := ResolveAngles(entity.ExerciseSquat, standingKeypoints())

	for _, name := range []string{"left_knee", "right_knee", "left_hip", "right_hip"} {
		angle, ok := angles[name]
		require.True(t, ok, "expected %s to be computed", name)
		assert.GreaterOrEqual(t, angle, 0.0)
		assert.LessOrEqual(t, angle, 180.0)
	}
	assert.Len(t, angles, 4)
}

func TestResolveAngles_ArmRaiseMissingWrist(t *testing.T) {
	keypoints := standingKeypoints()
	delete(keypoints, entity.KeypointLeftWrist)

	angles := ResolveAngles(entity.ExerciseArmRaise, keypoints)

	_, hasLeftElbow := angles["left_elbow"]
	assert.False(t, hasLeftElbow, "left_elbow requires left_wrist")

	_, hasLeftShoulder := angles["left_shoulder"]
	assert.True(t, hasLeftShoulder)

	_, hasRightElbow := angles["right_elbow"]
	assert.True(t, hasRightElbow)
}

func TestResolveAngles_ShoulderRotation(t *testing.T) {
	angles := ResolveAngles(entity.ExerciseShoulder, standingKeypoints())

	assert.Len(t, angles, 2)
	assert.Contains(t, angles, "left_shoulder")
	assert.Contains(t, angles, "right_shoulder")
}

func TestResolveAngles_UnknownExercise(t *testing.T) {
	angles := ResolveAngles(entity.ExerciseType("deadlift"), standingKeypoints())
	assert.Empty(t, angles)
}

func TestResolveAngles_DegenerateKeypoints(t *testing.T) {
	// Knee coincides with hip: the left knee angle is unscoreable, the rest
	// of the frame still resolves.
	keypoints := standingKeypoints()
	keypoints[entity.KeypointLeftKnee] = keypoints[entity.KeypointLeftHip]

	angles := ResolveAngles(entity.ExerciseSquat, keypoints)

	assert.NotContains(t, angles, "left_knee")
	assert.Contains(t, angles, "right_knee")
}

func TestResolveAngles_EmptyKeypoints(t *testing.T) {
	angles := ResolveAngles(entity.ExerciseSquat, entity.Keypoints{})
	assert.Empty(t, angles)
}
