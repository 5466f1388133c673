package analysis

import (
	"RehabSense/internal/entity"
	"RehabSense/pkg/geometry"
)

// AngleSet holds the joint angles computed for one frame, in degrees.
// An angle whose required keypoints were missing (or degenerate) is absent
// from the map; absence means "insufficient data", not a posture fault.
type AngleSet map[string]float64

// angleSpec names one joint angle and the keypoint triple that defines it.
// The angle is measured at vertex.
type angleSpec struct {
	name   string
	first  string
	vertex string
	last   string
}

var exerciseAngles = map[entity.ExerciseType][]angleSpec{
	entity.ExerciseSquat: {
		{name: "left_knee", first: entity.KeypointLeftHip, vertex: entity.KeypointLeftKnee, last: entity.KeypointLeftAnkle},
		{name: "right_knee", first: entity.KeypointRightHip, vertex: entity.KeypointRightKnee, last: entity.KeypointRightAnkle},
		{name: "left_hip", first: entity.KeypointLeftShoulder, vertex: entity.KeypointLeftHip, last: entity.KeypointLeftKnee},
		{name: "right_hip", first: entity.KeypointRightShoulder, vertex: entity.KeypointRightHip, last: entity.KeypointRightKnee},
	},
	entity.ExerciseArmRaise: {
		{name: "left_shoulder", first: entity.KeypointLeftElbow, vertex: entity.KeypointLeftShoulder, last: entity.KeypointLeftHip},
		{name: "right_shoulder", first: entity.KeypointRightElbow, vertex: entity.KeypointRightShoulder, last: entity.KeypointRightHip},
		{name: "left_elbow", first: entity.KeypointLeftShoulder, vertex: entity.KeypointLeftElbow, last: entity.KeypointLeftWrist},
		{name: "right_elbow", first: entity.KeypointRightShoulder, vertex: entity.KeypointRightElbow, last: entity.KeypointRightWrist},
	},
	entity.ExerciseShoulder: {
		{name: "left_shoulder", first: entity.KeypointLeftElbow, vertex: entity.KeypointLeftShoulder, last: entity.KeypointLeftHip},
		{name: "right_shoulder", first: entity.KeypointRightElbow, vertex: entity.KeypointRightShoulder, last: entity.KeypointRightHip},
	},
}

// ResolveAngles computes the fixed set of joint angles relevant to an
// exercise from one frame's keypoints. An unrecognized exercise yields an
// empty set; callers validate exercise identifiers at session start.
func ResolveAngles(exercise entity.ExerciseType, keypoints entity.Keypoints) AngleSet {
	angles := make(AngleSet)

	for _, spec := range exerciseAngles[exercise] {
		first, ok := keypoints[spec.first]
		if !ok {
			continue
		}
		vertex, ok := keypoints[spec.vertex]
		if !ok {
			continue
		}
		last, ok := keypoints[spec.last]
		if !ok {
			continue
		}

		angle, err := geometry.Angle(toPoint(first), toPoint(vertex), toPoint(last))
		if err != nil {
			// Degenerate keypoints make this joint unscoreable this frame.
			continue
		}

		angles[spec.name] = angle
	}

	return angles
}

func toPoint(k entity.Keypoint) geometry.Point3 {
	return geometry.Point3{X: k.X, Y: k.Y, Z: k.Z}
}
