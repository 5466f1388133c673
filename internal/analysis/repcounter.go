package analysis

import "RehabSense/internal/entity"

type RepState string

const (
	RepStateUp   RepState = "up"
	RepStateDown RepState = "down"
)

const angleHistorySize = 10

// transitionThresholds drives the up/down hysteresis per exercise.
var transitionThresholds = map[entity.ExerciseType]float64{
	entity.ExerciseSquat:    120.0,
	entity.ExerciseArmRaise: 90.0,
	entity.ExerciseShoulder: 120.0,
}

const defaultTransitionThreshold = 120.0

// RepStatus is the counter's externally visible state after an update.
type RepStatus struct {
	TotalReps     int      `json:"totalReps"`
	CorrectReps   int      `json:"correctReps"`
	IncorrectReps int      `json:"incorrectReps"`
	State         RepState `json:"state"`
	CurrentAngle  *float64 `json:"currentAngle"`
}

// RepCounter detects completed repetitions from the exercise's primary angle
// using a two-state hysteresis: one crossing below the threshold and back
// above it counts one rep. Rapid oscillation around the threshold can
// over-count; this is a known limitation of the detector. Owned by exactly
// one session, not safe for concurrent use.
type RepCounter struct {
	exercise  entity.ExerciseType
	threshold float64

	totalReps     int
	correctReps   int
	incorrectReps int
	state         RepState
	angleHistory  []float64
	repStartAngle *float64
}

func NewRepCounter(exercise entity.ExerciseType) *RepCounter {
	threshold, ok := transitionThresholds[exercise]
	if !ok {
		threshold = defaultTransitionThreshold
	}

	return &RepCounter{
		exercise:  exercise,
		threshold: threshold,
		state:     RepStateUp,
	}
}

// Update consumes one frame's angles and the form verdict for that frame.
// When neither side of the exercise's primary pair is present the status is
// returned unchanged.
func (r *RepCounter) Update(angles AngleSet, isCorrectForm bool) RepStatus {
	primaryAngle, ok := r.primaryAngle(angles)
	if !ok {
		return r.Status()
	}

	r.angleHistory = append(r.angleHistory, primaryAngle)
	if len(r.angleHistory) > angleHistorySize {
		r.angleHistory = r.angleHistory[1:]
	}

	switch r.state {
	case RepStateUp:
		if primaryAngle < r.threshold {
			r.state = RepStateDown
			start := primaryAngle
			r.repStartAngle = &start
		}
	case RepStateDown:
		if primaryAngle > r.threshold {
			r.totalReps++
			if isCorrectForm {
				r.correctReps++
			} else {
				r.incorrectReps++
			}
			r.state = RepStateUp
			r.repStartAngle = nil
		}
	}

	return r.Status()
}

// primaryAngle is the mean of whichever of the exercise's paired angles are
// present: knees for squat, shoulders for arm-raise and shoulder rotation.
func (r *RepCounter) primaryAngle(angles AngleSet) (float64, bool) {
	var left, right string
	switch r.exercise {
	case entity.ExerciseSquat:
		left, right = "left_knee", "right_knee"
	case entity.ExerciseArmRaise, entity.ExerciseShoulder:
		left, right = "left_shoulder", "right_shoulder"
	default:
		return 0, false
	}

	sum := 0.0
	count := 0
	if v, ok := angles[left]; ok {
		sum += v
		count++
	}
	if v, ok := angles[right]; ok {
		sum += v
		count++
	}

	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func (r *RepCounter) Status() RepStatus {
	status := RepStatus{
		TotalReps:     r.totalReps,
		CorrectReps:   r.correctReps,
		IncorrectReps: r.incorrectReps,
		State:         r.state,
	}

	if len(r.angleHistory) > 0 {
		last := r.angleHistory[len(r.angleHistory)-1]
		status.CurrentAngle = &last
	}

	return status
}

func (r *RepCounter) Reset() {
	r.totalReps = 0
	r.correctReps = 0
	r.incorrectReps = 0
	r.state = RepStateUp
	r.angleHistory = nil
	r.repStartAngle = nil
}
